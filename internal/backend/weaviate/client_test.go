package weaviate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	wvt "github.com/weaviate/weaviate-go-client/v4/weaviate"
	"go.uber.org/zap"

	"github.com/forkful/foodsearch/internal/domain"
)

// fakeBackend serves the readiness endpoint the client probes on creation.
type fakeBackend struct {
	srv        *httptest.Server
	readyCalls atomic.Int64
	failing    atomic.Bool
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	f := &fakeBackend{}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/.well-known/ready" {
			f.readyCalls.Add(1)
			if f.failing.Load() {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeBackend) conn(t *testing.T) *Conn {
	t.Helper()
	u, err := url.Parse(f.srv.URL)
	if err != nil {
		t.Fatalf("parse test server url: %v", err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatalf("parse test server port: %v", err)
	}
	return NewConn(Config{Host: u.Hostname(), Port: port, Scheme: "http"}, zap.NewNop())
}

func TestClient_SingleCreationUnderConcurrency(t *testing.T) {
	backend := newFakeBackend(t)
	conn := backend.conn(t)

	const callers = 16
	clients := make([]*wvt.Client, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			clients[i], errs[i] = conn.Client(context.Background())
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d: unexpected error: %v", i, errs[i])
		}
		if clients[i] != clients[0] {
			t.Fatalf("caller %d received a different handle", i)
		}
	}

	if got := backend.readyCalls.Load(); got != 1 {
		t.Errorf("expected exactly 1 readiness check, got %d", got)
	}
}

func TestClient_NotReadyIsNotCached(t *testing.T) {
	backend := newFakeBackend(t)
	backend.failing.Store(true)
	conn := backend.conn(t)

	_, err := conn.Client(context.Background())
	if !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}

	// Backend recovers; the next call must retry creation from scratch.
	backend.failing.Store(false)

	client, err := conn.Client(context.Background())
	if err != nil {
		t.Fatalf("expected successful retry, got %v", err)
	}
	if client == nil {
		t.Fatal("expected a handle after recovery")
	}

	if got := backend.readyCalls.Load(); got != 2 {
		t.Errorf("expected 2 readiness checks (fail + retry), got %d", got)
	}
}

func TestClient_ReusedAfterCreation(t *testing.T) {
	backend := newFakeBackend(t)
	conn := backend.conn(t)

	first, err := conn.Client(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := conn.Client(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Error("expected the same handle across calls")
	}
	if got := backend.readyCalls.Load(); got != 1 {
		t.Errorf("creation must verify readiness exactly once, got %d checks", got)
	}
}

func TestPing_ReportsUnavailable(t *testing.T) {
	backend := newFakeBackend(t)
	conn := backend.conn(t)

	if err := conn.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}

	backend.failing.Store(true)
	if err := conn.Ping(context.Background()); !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}
