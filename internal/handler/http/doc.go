// Package http implements the web layer of the SQL trainer.
// It provides middleware, page and JSON handlers, cookie based sessions and
// one-shot flash messages. Tracing, access logging, compression and
// panic recovery are handled at this layer before requests are forwarded to
// the service layer.
package http
