// Package timeouts defines shared timeout constants used across the console.
package timeouts

import "time"

// BackendRequest caps a single call from the console to the condominium
// REST backend. Config may override it.
const BackendRequest = 15 * time.Second

// SessionStore caps a single read or write against the session backend.
const SessionStore = 2 * time.Second

// SessionSweep is the interval between expired-session cleanups in
// backends that do not expire keys on their own.
const SessionSweep = 10 * time.Minute

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
