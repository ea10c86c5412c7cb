package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/dentalvoice/frontdesk/internal/appointment"
	"github.com/dentalvoice/frontdesk/internal/availability"
	"github.com/dentalvoice/frontdesk/internal/calendar"
	"github.com/dentalvoice/frontdesk/internal/config"
	"github.com/dentalvoice/frontdesk/internal/dispatch"
	"github.com/dentalvoice/frontdesk/internal/instrumentation"
	"github.com/dentalvoice/frontdesk/internal/logging"
	"github.com/dentalvoice/frontdesk/internal/profile"
	"github.com/dentalvoice/frontdesk/internal/server"
	"github.com/dentalvoice/frontdesk/internal/tools/patient_tools"
	"github.com/dentalvoice/frontdesk/internal/tools/scheduling_tools"
)

func newServeCmd() *cobra.Command {
	var (
		debugMode      bool
		transport      string
		httpAddr       string
		envFile        string
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP scheduling server",
		Long: `Start the Model Context Protocol (MCP) server that exposes the clinic's
scheduling tools to the voice agent.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport

Configuration is read from the environment, optionally seeded from an
.env file (--env-file):

  GOOGLE_APPLICATION_CREDENTIALS  path to a service-account key file
  GOOGLE_CREDENTIALS_JSON         raw service-account key (takes precedence)
  GOOGLE_CALENDAR_ID              clinic calendar (default "primary")
  CLINIC_TIMEZONE                 default "Europe/Athens"
  CLINIC_OPEN_HOUR, CLINIC_CLOSE_HOUR, CLINIC_SLOT_MINUTES
  CLINIC_FEEDBACK_FUNCTIONS       comma list of functions that get a
                                  spoken acknowledgement (default: all)
  REDIS_URL or REDIS_ADDR         patient profile store (optional)

Without calendar credentials the server still starts and the scheduling
tools report the calendar as unavailable. Without Redis every caller is
treated as new.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			// Flags win over the environment when explicitly set.
			if cmd.Flags().Changed("http-addr") {
				cfg.ListenAddr = httpAddr
			}
			if cmd.Flags().Changed("metrics-addr") {
				cfg.MetricsAddr = metricsAddr
			}
			return runServe(transport, debugMode, metricsEnabled, cfg)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", config.DefaultListenAddr, "HTTP server address (for streamable-http transport). Can also use FRONTDESK_LISTEN_ADDR env var.")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Path to an .env file with configuration")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", config.DefaultMetricsAddr, "Metrics server address. Can also use FRONTDESK_METRICS_ADDR env var.")

	return cmd
}

func runServe(transport string, debugMode, metricsEnabled bool, cfg config.Config) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := newLogger(debugMode)
	slog.SetDefault(logger)

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Error("instrumentation shutdown failed", logging.Err(err))
		}
	}()

	// Start metrics server if enabled and not in stdio mode
	var metricsServer *server.MetricsServer
	if transport != "stdio" && metricsEnabled && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    cfg.MetricsAddr,
			Enabled:                 true,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
		go func() {
			if err := metricsServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", logging.Err(err))
			}
		}()
	}

	// Calendar gateway. Missing credentials degrade gracefully: the
	// service answers every scheduling call with a spoken apology
	// instead of refusing to start.
	var gateway appointment.Gateway
	client, err := calendar.NewClient(shutdownCtx, calendar.Config{
		CredentialsPath: cfg.Calendar.CredentialsPath,
		CredentialsJSON: []byte(cfg.Calendar.CredentialsJSON),
		CalendarID:      cfg.Calendar.CalendarID,
		TimeZone:        cfg.Calendar.Timezone,
	})
	switch {
	case err == nil:
		gateway = client
		logger.Info("calendar gateway ready",
			slog.String("calendar_id", client.CalendarID()))
	case errors.Is(err, calendar.ErrNotConfigured):
		logger.Warn("no calendar credentials configured, scheduling tools will report the calendar unavailable")
	default:
		return fmt.Errorf("failed to create calendar client: %w", err)
	}

	// Patient profile store. Optional: without Redis the identifier
	// treats every caller as new.
	opts, err := cfg.Redis.Options()
	if err != nil {
		return err
	}
	var profiles *profile.Store
	if opts != nil {
		redis.SetLogger(logging.NewPrintfLogger(logger, slog.LevelWarn))
		rdb := redis.NewClient(opts)
		profiles = profile.NewStore(rdb, logger)
		pingCtx, cancelPing := context.WithTimeout(shutdownCtx, 5*time.Second)
		if err := profiles.Ping(pingCtx); err != nil {
			logger.Warn("profile store unreachable, caller recognition degraded", logging.Err(err))
		}
		cancelPing()
	} else {
		profiles = profile.NewStore(nil, logger)
		logger.Info("no Redis configured, callers are treated as new")
	}

	// Create MCP server
	mcpSrv := mcpserver.NewMCPServer("frontdesk", version,
		mcpserver.WithToolCapabilities(true),
	)

	calc := availability.NewCalculator(cfg.Clinic.WorkingHours(), cfg.Clinic.SlotDuration)
	svc := appointment.NewService(gateway, calc, cfg.Location(), logger)
	dispatcher := dispatch.NewDispatcher(dispatch.Config{
		Service:     svc,
		Speech:      newSpeechNotifier(mcpSrv, logger),
		AckMessages: ackMessages(cfg.Clinic.FeedbackFunctions),
		Metrics:     provider.Metrics(),
		Logger:      logger,
	})

	serverContext := server.NewServerContext(shutdownCtx, server.ServerContextConfig{
		Service:    svc,
		Dispatcher: dispatcher,
		Profiles:   profiles,
		Provider:   provider,
		Logger:     logger,
	})
	defer func() {
		if metricsServer != nil {
			stopCtx, cancelStop := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancelStop()
			if err := metricsServer.Shutdown(stopCtx); err != nil {
				logger.Error("metrics server shutdown failed", logging.Err(err))
			}
		}
		if err := serverContext.Shutdown(); err != nil {
			logger.Error("server context shutdown failed", logging.Err(err))
		}
	}()

	if err := registerAllTools(mcpSrv, serverContext); err != nil {
		return err
	}

	switch transport {
	case "stdio":
		return runStdioServer(mcpSrv)
	case "streamable-http":
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, serverContext, cfg.ListenAddr, logger)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", transport)
	}
}

// speechNotifier delivers acknowledgement utterances to the MCP
// client as a notification on the calling session, so the voice agent
// can speak them while the scheduling operation is still running.
// Calls without a client session (stdio startup, tests) fall back to
// the log.
type speechNotifier struct {
	srv    *mcpserver.MCPServer
	logger *slog.Logger
}

func newSpeechNotifier(srv *mcpserver.MCPServer, logger *slog.Logger) *speechNotifier {
	return &speechNotifier{srv: srv, logger: logger}
}

func (s *speechNotifier) Speak(ctx context.Context, utterance string) {
	err := s.srv.SendNotificationToClient(ctx, "notifications/frontdesk/speech",
		map[string]any{"utterance": utterance})
	if err != nil {
		s.logger.Info("acknowledgement", slog.String("utterance", utterance))
	}
}

// ackMessages restricts spoken acknowledgements to the configured
// feedback functions. An empty set keeps the dispatcher defaults;
// functions left out of a configured set are silenced.
func ackMessages(feedback []string) map[string]string {
	if len(feedback) == 0 {
		return nil
	}
	defaults := dispatch.DefaultAckMessages()
	msgs := make(map[string]string, len(defaults))
	for fn := range defaults {
		msgs[fn] = ""
	}
	for _, fn := range feedback {
		if m, ok := defaults[fn]; ok {
			msgs[fn] = m
		} else {
			msgs[fn] = dispatch.DefaultAckUtterance
		}
	}
	return msgs
}

// newLogger builds the process logger. Logs always go to stderr: the
// stdio transport owns stdout for the MCP protocol stream.
func newLogger(debugMode bool) *slog.Logger {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// registerAllTools registers all MCP tools
func registerAllTools(mcpSrv *mcpserver.MCPServer, ctx *server.ServerContext) error {
	type toolRegistration struct {
		name     string
		register func() error
	}

	registrations := []toolRegistration{
		{
			name: "Scheduling",
			register: func() error {
				return scheduling_tools.RegisterSchedulingTools(mcpSrv, ctx)
			},
		},
		{
			name: "Patient",
			register: func() error {
				return patient_tools.RegisterPatientTools(mcpSrv, ctx)
			},
		},
	}

	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s: %w", reg.name, err)
		}
	}

	return nil
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

func runStreamableHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, serverContext *server.ServerContext, addr string, logger *slog.Logger) error {
	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv)

	healthChecker := server.NewHealthChecker(serverContext)

	mux := http.NewServeMux()
	mux.Handle("/mcp", streamable)
	healthChecker.RegisterHealthEndpoints(mux)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting streamable HTTP server",
		slog.String("addr", addr),
		slog.String("mcp_endpoint", "/mcp"),
		slog.String("health_endpoints", "/healthz, /readyz"))

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping HTTP server")
		healthChecker.SetReady(false)
		stopCtx, cancelStop := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancelStop()
		if err := httpServer.Shutdown(stopCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
	}

	logger.Info("HTTP server stopped")
	return nil
}
