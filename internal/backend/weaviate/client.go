// Package weaviate adapts the Weaviate vector database as the similarity
// search backend. Embedding generation happens backend-side (multi2vec with
// the forwarded Cohere key); this package only dispatches queries.
package weaviate

import (
	"context"
	"fmt"
	"sync"

	wvt "github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/grpc"
	"go.uber.org/zap"

	"github.com/forkful/foodsearch/internal/domain"
)

// Config holds connection parameters for the Weaviate backend.
type Config struct {
	Host         string
	Port         int
	GRPCPort     int
	Scheme       string
	CohereAPIKey string
}

// Conn owns the process-wide backend handle. The client is created on first
// use and reused for the life of the process. A creation attempt whose
// readiness check fails caches nothing, so the next call starts from scratch.
type Conn struct {
	cfg    Config
	logger *zap.Logger

	mu     sync.Mutex
	client *wvt.Client
}

// NewConn creates a connection manager. No network activity happens until
// the first Client call.
func NewConn(cfg Config, logger *zap.Logger) *Conn {
	return &Conn{cfg: cfg, logger: logger}
}

// Client returns the shared backend handle, creating and verifying it on
// first call. Safe for concurrent use: first callers serialize on the
// creation lock, exactly one creates, and all observe the same handle.
func (c *Conn) Client(ctx context.Context) (*wvt.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}

	headers := map[string]string{}
	if c.cfg.CohereAPIKey != "" {
		headers["X-Cohere-Api-Key"] = c.cfg.CohereAPIKey
	}

	var grpcCfg *grpc.Config
	if c.cfg.GRPCPort > 0 {
		grpcCfg = &grpc.Config{
			Host:    fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.GRPCPort),
			Secured: c.cfg.Scheme == "https",
		}
	}

	client, err := wvt.NewClient(wvt.Config{
		Host:       fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port),
		Scheme:     c.cfg.Scheme,
		Headers:    headers,
		GrpcConfig: grpcCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create client: %v", domain.ErrBackendUnavailable, err)
	}

	ready, err := client.Misc().ReadyChecker().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: readiness check: %v", domain.ErrBackendUnavailable, err)
	}
	if !ready {
		return nil, fmt.Errorf("%w: backend reports not ready", domain.ErrBackendUnavailable)
	}

	c.logger.Info("Connected to Weaviate",
		zap.String("host", c.cfg.Host),
		zap.Int("port", c.cfg.Port),
		zap.String("scheme", c.cfg.Scheme),
	)

	c.client = client
	return c.client, nil
}

// Ping verifies backend readiness for health reporting.
func (c *Conn) Ping(ctx context.Context) error {
	client, err := c.Client(ctx)
	if err != nil {
		return err
	}

	ready, err := client.Misc().ReadyChecker().Do(ctx)
	if err != nil {
		return fmt.Errorf("%w: readiness check: %v", domain.ErrBackendUnavailable, err)
	}
	if !ready {
		return fmt.Errorf("%w: backend reports not ready", domain.ErrBackendUnavailable)
	}
	return nil
}
