package store

import "errors"

// ErrStoreClosed is returned once a store no longer accepts actions.
var ErrStoreClosed = errors.New("store closed")
