package client

import "errors"

var (
	ErrUnavailable     = errors.New("server unavailable")
	ErrUnauthenticated = errors.New("not logged in")
)
