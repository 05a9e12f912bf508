package health

import "context"

// BackendPinger checks vector backend availability.
type BackendPinger interface {
	Ping(ctx context.Context) error
}

// CachePinger checks result-cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}
