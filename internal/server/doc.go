// Package server runs the SQL trainer's HTTP server together with its
// background workers.
//
// It owns the process lifecycle: startup, signal handling, and graceful
// shutdown of the listener followed by the workers.
package server
