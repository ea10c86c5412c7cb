package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dentalvoice/frontdesk/internal/appointment"
	"github.com/dentalvoice/frontdesk/internal/dispatch"
	"github.com/dentalvoice/frontdesk/internal/instrumentation"
	"github.com/dentalvoice/frontdesk/internal/profile"
)

// ServerContext wires the scheduling stack together for the MCP
// server: the appointment service, the dispatcher that runs calls
// concurrently with the conversation, and the patient profile store.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	service    *appointment.Service
	dispatcher *dispatch.Dispatcher
	profiles   *profile.Store
	identifier *profile.Identifier
	sessions   *SessionManager
	provider   *instrumentation.Provider
	audit      *instrumentation.AuditLogger
	logger     *slog.Logger

	mu       sync.RWMutex
	shutdown bool
}

// ServerContextConfig assembles a ServerContext.
type ServerContextConfig struct {
	// Service executes scheduling operations. Required.
	Service *appointment.Service

	// Dispatcher runs function calls in the background. Required.
	Dispatcher *dispatch.Dispatcher

	// Profiles is the patient store; a disabled store is fine.
	Profiles *profile.Store

	// Provider supplies metrics; optional.
	Provider *instrumentation.Provider

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// NewServerContext creates a server context bound to ctx. Cancelling
// ctx or calling Shutdown tears it down.
func NewServerContext(ctx context.Context, cfg ServerContextConfig) *ServerContext {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	profiles := cfg.Profiles
	if profiles == nil {
		profiles = profile.NewStore(nil, logger)
	}

	shutdownCtx, cancel := context.WithCancel(ctx)
	return &ServerContext{
		ctx:        shutdownCtx,
		cancel:     cancel,
		service:    cfg.Service,
		dispatcher: cfg.Dispatcher,
		profiles:   profiles,
		identifier: profile.NewIdentifier(profiles, logger),
		sessions:   NewSessionManager(DefaultSessionTimeout, logger),
		provider:   cfg.Provider,
		audit:      instrumentation.NewAuditLogger(logger),
		logger:     logger,
	}
}

// Context returns the server's lifetime context.
func (sc *ServerContext) Context() context.Context { return sc.ctx }

// Service returns the appointment service.
func (sc *ServerContext) Service() *appointment.Service { return sc.service }

// Dispatcher returns the function-call dispatcher.
func (sc *ServerContext) Dispatcher() *dispatch.Dispatcher { return sc.dispatcher }

// Profiles returns the patient profile store.
func (sc *ServerContext) Profiles() *profile.Store { return sc.profiles }

// Identifier returns the caller identification service.
func (sc *ServerContext) Identifier() *profile.Identifier { return sc.identifier }

// Sessions returns the per-conversation session manager.
func (sc *ServerContext) Sessions() *SessionManager { return sc.sessions }

// Metrics returns the metrics recorder, or nil when instrumentation is
// not configured.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	if sc.provider == nil {
		return nil
	}
	return sc.provider.Metrics()
}

// AuditLogger returns the audit logger for tool invocations.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger { return sc.audit }

// Logger returns the server logger.
func (sc *ServerContext) Logger() *slog.Logger { return sc.logger }

// IsShutdown reports whether Shutdown has been called.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown stops the server context. It waits for in-flight dispatched
// calls so background calendar writes are never abandoned.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	if sc.shutdown {
		sc.mu.Unlock()
		return nil
	}
	sc.shutdown = true
	sc.mu.Unlock()

	if sc.dispatcher != nil {
		sc.dispatcher.Wait()
	}
	sc.sessions.Stop()
	sc.cancel()
	return nil
}
