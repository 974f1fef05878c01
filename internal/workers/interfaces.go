// Package workers runs the server's periodic maintenance jobs, such as
// removing expired password reset tokens.
package workers

import "context"

// Worker is a background job started with the server. Run blocks until ctx
// is cancelled.
type Worker interface {
	Run(ctx context.Context)
}
