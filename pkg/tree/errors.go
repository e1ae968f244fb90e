package tree

import (
	"errors"
)

var (
	ErrNil           = errors.New("nil err")
	ErrNodeNotFound  = errors.New("node not found err")
	ErrNoMatch       = errors.New("no node match err")
	ErrToEntryFn     = errors.New("to-entry fn must be a function err")
	ErrComparator    = errors.New("comparator required err")
	ErrKeyNotFound   = errors.New("key not found err")
	ErrMalformedNode = errors.New("malformed parent link err")
)
