package domain

import "errors"

var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrDuplicateKey     = errors.New("duplicate key")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrUnknown          = errors.New("unknown error")
)
