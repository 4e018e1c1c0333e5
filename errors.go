package localstore

import "errors"

var (
	// ErrDecode reports an envelope whose tag is unknown or whose args do
	// not match the tag's wire shape.
	ErrDecode = errors.New("cannot decode envelope")

	// ErrBackendNil is returned by NewClient when no backend is configured.
	ErrBackendNil = errors.New("backend cannot be nil")
)
