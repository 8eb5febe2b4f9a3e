package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/groupware-mcp/internal/config"
	"github.com/teemow/groupware-mcp/internal/instrumentation"
	"github.com/teemow/groupware-mcp/internal/server"
	"github.com/teemow/groupware-mcp/internal/tools"
	"github.com/teemow/groupware-mcp/internal/tools/calendar_tools"
	"github.com/teemow/groupware-mcp/internal/tools/contact_tools"
	"github.com/teemow/groupware-mcp/internal/tools/mail_tools"
	"github.com/teemow/groupware-mcp/internal/tools/task_tools"
)

// MetricsConfig holds configuration for the metrics server
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server (default: true)
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

func newServeCmd() *cobra.Command {
	var (
		transport  string
		httpAddr   string
		configFile string
		backendURL string
		username   string
		password   string
		apiKey     string
		offline    bool
		// Metrics server configuration
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server to provide calendar,
contacts, tasks and email tools for AI assistants.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport

Backend Configuration:
  The groupware backend is configured via flags, environment variables
  (GROUPWARE_URL, GROUPWARE_USERNAME, GROUPWARE_PASSWORD,
  GROUPWARE_API_KEY) or a YAML config file. Flags and environment
  variables take precedence over file values.

Offline Mode:
  Without complete credentials, or with --offline, the server runs
  against a deterministic in-memory backend. Created entities are
  retained for the lifetime of the process and found by subsequent
  searches, so MCP clients can be integration-tested without a
  groupware server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromEnv()
			if backendURL != "" {
				cfg.URL = backendURL
			}
			if username != "" {
				cfg.Username = username
			}
			if password != "" {
				cfg.Password = password
			}
			if apiKey != "" {
				cfg.APIKey = apiKey
			}
			if offline {
				cfg.Offline = true
			}
			if configFile != "" {
				if err := cfg.LoadFile(configFile); err != nil {
					return err
				}
			}

			metricsConfig := MetricsConfig{
				Enabled: metricsEnabled,
				Addr:    metricsAddr,
			}
			if addr := os.Getenv("METRICS_ADDR"); addr != "" && !cmd.Flags().Changed("metrics-addr") {
				metricsConfig.Addr = addr
			}

			return runServe(transport, httpAddr, cfg, metricsConfig)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "HTTP server address (for streamable-http transport)")
	cmd.Flags().StringVar(&configFile, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&backendURL, "url", "", "Groupware backend base URL. Can also use GROUPWARE_URL env var.")
	cmd.Flags().StringVar(&username, "username", "", "Backend username for HTTP Basic authentication. Can also use GROUPWARE_USERNAME env var.")
	cmd.Flags().StringVar(&password, "password", "", "Backend password. Can also use GROUPWARE_PASSWORD env var.")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Optional backend API key. Can also use GROUPWARE_API_KEY env var.")
	cmd.Flags().BoolVar(&offline, "offline", false, "Force the deterministic offline backend even when credentials are present")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

func runServe(transport, httpAddr string, cfg config.Config, metricsConfig MetricsConfig) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			if transport != "stdio" {
				log.Printf("Error during instrumentation shutdown: %v", err)
			}
		}
	}()

	// Create server context; gateway selection (live or offline) happens here
	serverContext, err := server.NewServerContext(shutdownCtx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	if provider.Enabled() {
		serverContext.SetInstrumentation(provider)
	}
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			if transport != "stdio" {
				log.Printf("Error during server context shutdown: %v", err)
			}
		}
	}()

	// Start metrics server if enabled and not in stdio mode
	var metricsServer *server.MetricsServer
	if transport != "stdio" && metricsConfig.Enabled && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    metricsConfig.Addr,
			Enabled:                 true,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		go func() {
			if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
				log.Printf("Metrics server error: %v", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				log.Printf("Error during metrics server shutdown: %v", err)
			}
		}()
	}

	// Create MCP server
	mcpSrv := mcpserver.NewMCPServer("groupware-mcp", version,
		mcpserver.WithToolCapabilities(true),
	)

	// Log the mode for visibility (only for non-stdio transports)
	if transport != "stdio" {
		if serverContext.OfflineMode() {
			log.Println("Starting server in OFFLINE mode (no backend credentials configured)")
		} else {
			log.Printf("Starting server against groupware backend %s", cfg.URL)
		}
	}

	// Register all tools
	registry := tools.NewRegistry()
	if err := registerAllTools(registry, serverContext); err != nil {
		return err
	}
	registry.Attach(mcpSrv)

	// Start the appropriate server based on transport type
	switch transport {
	case "stdio":
		return runStdioServer(mcpSrv)
	case "streamable-http":
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, serverContext, httpAddr, metricsConfig)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", transport)
	}
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

// registerAllTools registers all MCP tools on the registry
func registerAllTools(registry *tools.Registry, ctx *server.ServerContext) error {
	// Define all tool registrations
	type toolRegistration struct {
		name     string
		register func() error
	}

	registrations := []toolRegistration{
		{
			name: "Calendar",
			register: func() error {
				return calendar_tools.RegisterCalendarTools(registry, ctx)
			},
		},
		{
			name: "Contacts",
			register: func() error {
				return contact_tools.RegisterContactTools(registry, ctx)
			},
		},
		{
			name: "Tasks",
			register: func() error {
				return task_tools.RegisterTaskTools(registry, ctx)
			},
		},
		{
			name: "Mail",
			register: func() error {
				return mail_tools.RegisterMailTools(registry, ctx)
			},
		},
	}

	// Register all tools
	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s: %w", reg.name, err)
		}
	}

	return nil
}

// statusRecorder captures the response status for request metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func httpMetricsMiddleware(metrics *instrumentation.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		metrics.RecordHTTPRequest(r.Context(), r.Method, r.URL.Path, recorder.status, time.Since(start))
	})
}

func runStreamableHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, serverContext *server.ServerContext, addr string, metricsConfig MetricsConfig) error {
	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithEndpointPath("/mcp"),
	)

	healthChecker := server.NewHealthChecker(serverContext)

	mux := http.NewServeMux()
	mux.Handle("/mcp", streamable)
	healthChecker.RegisterHealthEndpoints(mux)

	var handler http.Handler = mux
	if metrics := serverContext.Metrics(); metrics != nil {
		handler = httpMetricsMiddleware(metrics, mux)
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Printf("Starting groupware-mcp server with streamable-http transport on %s\n", addr)
	fmt.Printf("  HTTP endpoint: /mcp\n")
	fmt.Printf("  Health endpoints: /healthz, /readyz\n")
	if metricsConfig.Enabled {
		fmt.Printf("  Metrics endpoint: %s/metrics\n", metricsConfig.Addr)
	}

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		fmt.Println("Shutdown signal received, stopping HTTP server...")
		healthChecker.SetReady(false)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
		fmt.Println("HTTP server stopped normally")
	}

	fmt.Println("HTTP server gracefully stopped")
	return nil
}
