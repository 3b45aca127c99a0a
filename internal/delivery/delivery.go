// Package delivery defines the contract every transport entrypoint
// implements, so main can start them uniformly.
package delivery

import "context"

// Delivery is a serving entrypoint (HTTP today). Serve blocks until the
// entrypoint stops.
type Delivery interface {
	Serve(ctx context.Context) error
}
