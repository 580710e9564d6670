package server

import "context"

// Server exposes the HTTP API for uploads, podcast retrieval and meeting control.
type Server interface {
	Listen(addr string) error
	Shutdown(ctx context.Context) error
}
