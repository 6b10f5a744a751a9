package core

import "errors"

var (
	// ErrConnectivity marks a backend that could not be reached or timed out.
	ErrConnectivity = errors.New("backend unreachable")
	// ErrEncoding marks a work item that cannot be represented on the wire.
	ErrEncoding = errors.New("work item encoding failed")
	// ErrNotFound marks a missing pod or autoscaler resource.
	ErrNotFound = errors.New("resource not found")
)
