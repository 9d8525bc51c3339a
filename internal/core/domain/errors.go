package domain

import "errors"

var ErrNotImplemented = errors.New("method not implemented by this collection")
var ErrNotFound = errors.New("entity not found")
var ErrInvalidArgument = errors.New("invalid argument")
var ErrUnauthorized = errors.New("unauthorized")
var ErrDuplicate = errors.New("entity already exists")
var ErrConflict = errors.New("entity is referenced by other data")
var ErrLookup = errors.New("identifier resolution failed")
var ErrBatchLookup = errors.New("batch identifier resolution failed")
var ErrInvalidRole = errors.New("unrecognized role")
var ErrUnknownCollection = errors.New("unknown collection")
