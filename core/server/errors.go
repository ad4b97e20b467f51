package server

import "errors"

var (
	ErrMissingAddress = errors.New("server: address is required")
	ErrAlreadyRunning = errors.New("server: already running")
	ErrListen         = errors.New("server: listen failed")
	ErrShutdown       = errors.New("server: graceful shutdown failed")
	ErrLoadCert       = errors.New("server: load TLS certificate")
)
