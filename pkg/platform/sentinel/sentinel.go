package sentinel

import "errors"

// ErrNotFound is returned (optionally wrapped) by stores when an entity does
// not exist, so callers can branch on the fact rather than the message. Any
// other store error is an infrastructure failure.
var ErrNotFound = errors.New("not found")
