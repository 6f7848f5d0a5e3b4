package server

import (
	"context"
	stdErrors "errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hashicorp/go-hclog"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	"github.com/mozilla-ai/dixa-mcp/internal/api"
	"github.com/mozilla-ai/dixa-mcp/internal/contracts"
	"github.com/mozilla-ai/dixa-mcp/internal/credentials"
	"github.com/mozilla-ai/dixa-mcp/internal/errors"
)

// MCPEndpointPath is where the MCP streamable HTTP transport is mounted.
const MCPEndpointPath = "/mcp"

var errorHandlerOnce sync.Once

// APIServer serves the MCP streamable HTTP transport and the REST tool API on one address.
// NewAPIServer should be used to create instances of APIServer.
type APIServer struct {
	// Logger for HTTP server operations.
	logger hclog.Logger

	// Catalogue lists and calls the enabled tools.
	catalogue contracts.ToolCatalogue

	// MCPHandler serves the MCP streamable HTTP transport.
	mcpHandler http.Handler

	// Addr specifies the network address to bind.
	addr string

	// CORS configuration for cross-origin requests.
	cors CORSConfig

	// ShutdownTimeout specifies how long to wait for graceful shutdown.
	shutdownTimeout time.Duration
}

// NewAPIServer creates a new HTTP server with the provided dependencies and options.
// Applies default options first, then user-provided options to ensure all fields have valid values.
func NewAPIServer(deps APIDependencies, opt ...APIOption) (*APIServer, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies for API server: %w", err)
	}

	apiOpts, err := NewAPIOptions(opt...)
	if err != nil {
		return nil, fmt.Errorf("invalid API options: %w", err)
	}

	// The bearer token of each MCP request becomes its request-scoped API key.
	streamable := mcpserver.NewStreamableHTTPServer(
		deps.MCPServer,
		mcpserver.WithEndpointPath(MCPEndpointPath),
		mcpserver.WithHTTPContextFunc(credentials.HTTPContextFunc),
	)

	return &APIServer{
		logger:          deps.Logger.Named("api"),
		catalogue:       deps.Catalogue,
		mcpHandler:      streamable,
		addr:            deps.Addr,
		cors:            apiOpts.CORS,
		shutdownTimeout: apiOpts.ShutdownTimeout,
	}, nil
}

// Handler builds the router serving /mcp and the /api/v1 routes.
func (a *APIServer) Handler() (http.Handler, error) {
	mux := chi.NewMux()
	mux.Use(middleware.StripSlashes)

	// Add CORS middleware if enabled.
	if a.cors.Enabled {
		a.applyCORS(mux)
	}

	mux.Use(credentials.Middleware)
	mux.Handle(MCPEndpointPath, a.mcpHandler)

	config := huma.DefaultConfig("dixa-mcp", api.APIVersion)
	config.Transformers = append(config.Transformers, api.Transformers()...)
	router := humachi.New(mux, config)

	// Configure the error handling wrapping, which Huma holds globally.
	errorHandlerOnce.Do(func() {
		huma.NewErrorWithContext = errorHandler(a.logger)
	})

	apiPathPrefix, err := api.RegisterRoutes(router, a.catalogue)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("Registered API routes", "prefix", apiPathPrefix, "mcp", MCPEndpointPath)

	return mux, nil
}

// Start starts the HTTP server and blocks until the context is canceled or an error occurs.
func (a *APIServer) Start(ctx context.Context) error {
	handler, err := a.Handler()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              a.addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("Starting HTTP server", "address", a.addr)
		if a.cors.Enabled {
			a.logger.Info("CORS enabled", "origins", a.cors.AllowOrigins)
		}
		if err := srv.ListenAndServe(); err != nil && !stdErrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Handle graceful shutdown.
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()
		a.logger.Info("Shutting down HTTP server...")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
		a.logger.Info("Shutdown complete")
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// applyCORS applies CORS middleware to the router based on the configured options.
func (a *APIServer) applyCORS(mux *chi.Mux) {
	a.logger.Info("Enabling CORS", "origins", a.cors.AllowOrigins)

	corsOptions := cors.Options{
		AllowedOrigins:   make([]string, 0, len(a.cors.AllowOrigins)),
		AllowedMethods:   a.cors.AllowMethods,
		AllowedHeaders:   a.cors.AllowedHeaders,
		ExposedHeaders:   a.cors.ExposedHeaders,
		AllowCredentials: a.cors.AllowCredentials,
		MaxAge:           int(a.cors.MaxAge.Seconds()),
	}

	// A wildcard replaces every other origin and forbids credentials.
	for _, origin := range a.cors.AllowOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			corsOptions.AllowedOrigins = []string{"*"}
			corsOptions.AllowCredentials = false
			break
		}
		corsOptions.AllowedOrigins = append(corsOptions.AllowedOrigins, origin)
	}

	mux.Use(cors.Handler(corsOptions))
}

// mapError maps application domain errors to appropriate HTTP status codes.
//
// This function is the central place where domain errors from internal/errors are converted to HTTP responses.
// When adding new errors to internal/errors/errors.go, you MUST add them here to prevent them from falling
// through to the default case which returns HTTP 500.
//
// Mapping guidelines:
//   - 400: Invalid tool arguments
//   - 401: No usable API key
//   - 404: Unknown or disabled tool
//   - 502: Dixa answered with an error, or could not be reached
//   - 500: Unexpected internal errors (default case)
//
// Don't forget to add test cases to TestMapError (internal/server/api_server_test.go).
func mapError(logger hclog.Logger, err error) huma.StatusError {
	switch {
	case stdErrors.Is(err, errors.ErrValidation):
		return huma.Error400BadRequest(err.Error())
	case stdErrors.Is(err, errors.ErrConfiguration):
		return huma.Error401Unauthorized(err.Error())
	case stdErrors.Is(err, errors.ErrToolNotFound):
		return huma.Error404NotFound(err.Error())
	case stdErrors.Is(err, errors.ErrRemote):
		logger.Warn("Dixa API returned an error", "error", err)
		return huma.Error502BadGateway(err.Error())
	case stdErrors.Is(err, errors.ErrTransport):
		logger.Error("Dixa API unreachable", "error", err)
		return huma.Error502BadGateway(err.Error())
	default:
		logger.Error("Unexpected error calling tool", "error", err)
		return huma.Error500InternalServerError("Internal server error", err)
	}
}

// errorHandler wraps error handling for the application when converting to API friendly errors.
// It allows the logger to be supplied to functions that resolve huma.StatusError.
// Client errors raised by Huma itself (e.g. a malformed request body) keep their status and details.
func errorHandler(logger hclog.Logger) func(_ huma.Context, status int, msg string, errs ...error) huma.StatusError {
	return func(_ huma.Context, status int, msg string, errs ...error) huma.StatusError {
		if status != http.StatusInternalServerError {
			return huma.NewError(status, msg, errs...)
		}

		switch len(errs) {
		case 0:
			return huma.NewError(status, msg)
		case 1:
			return mapError(logger, errs[0])
		default:
			return mapError(logger, stdErrors.Join(errs...))
		}
	}
}
