package server

import (
	"context"
	"sync"

	"github.com/teemow/groupware-mcp/internal/config"
	"github.com/teemow/groupware-mcp/internal/groupware"
	"github.com/teemow/groupware-mcp/internal/instrumentation"
)

// ServerContext holds the shared state for the MCP server: the gateway
// to the groupware backend, the effective configuration and the
// instrumentation provider.
type ServerContext struct {
	ctx      context.Context
	cancel   context.CancelFunc
	config   config.Config
	gateway  groupware.Gateway
	provider *instrumentation.Provider
	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new server context. The gateway is selected
// once here: a live client when the configuration carries complete
// credentials, the deterministic offline gateway otherwise.
func NewServerContext(ctx context.Context, cfg config.Config) (*ServerContext, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:     shutdownCtx,
		cancel:  cancel,
		config:  cfg,
		gateway: groupware.New(cfg),
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Config returns the effective configuration.
func (sc *ServerContext) Config() config.Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.config
}

// Gateway returns the groupware gateway.
func (sc *ServerContext) Gateway() groupware.Gateway {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.gateway
}

// SetGateway replaces the groupware gateway. Used by tests to inject a
// controlled gateway.
func (sc *ServerContext) SetGateway(gw groupware.Gateway) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.gateway = gw
}

// SetInstrumentation attaches the instrumentation provider and hands the
// metrics recorder to the live gateway so credential exchanges are counted.
func (sc *ServerContext) SetInstrumentation(provider *instrumentation.Provider) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.provider = provider
	if client, ok := sc.gateway.(*groupware.Client); ok && provider != nil {
		client.SetMetrics(provider.Metrics())
	}
}

// Metrics returns the metrics recorder, or nil when instrumentation was
// never attached.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	if sc.provider == nil {
		return nil
	}
	return sc.provider.Metrics()
}

// OfflineMode reports whether the context serves synthetic data.
func (sc *ServerContext) OfflineMode() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.config.MockMode()
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
