package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/baditaflorin/go_entity_resolution/internal/core/domain"
	"github.com/baditaflorin/go_entity_resolution/pkg/resolution"
	"github.com/baditaflorin/l"
	"github.com/caarlos0/env/v11"
	"github.com/valyala/fasthttp"
)

// Config is read from the environment; flags override it.
type Config struct {
	Port           int           `env:"RESOLUTION_PORT" envDefault:"8080"`
	ReadTimeout    time.Duration `env:"RESOLUTION_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout   time.Duration `env:"RESOLUTION_WRITE_TIMEOUT" envDefault:"30s"`
	MaxRequestSize int           `env:"RESOLUTION_MAX_REQUEST_SIZE" envDefault:"10485760"`
	Concurrency    int           `env:"RESOLUTION_CONCURRENCY" envDefault:"0"`
	WarmUp         bool          `env:"RESOLUTION_WARM_UP" envDefault:"true"`
	LogFile        string        `env:"RESOLUTION_LOG_FILE" envDefault:""`
}

var (
	// Shared resolver instance
	resolver *resolution.Resolution

	// Logger instance
	logger l.Logger
)

// ResolveRequest carries a registry and the source lists to resolve it against.
type ResolveRequest struct {
	Registry []domain.CanonicalRecord `json:"registry"`
	Sources  []domain.SourceList      `json:"sources"`
}

// DedupRequest carries registry records to group by identity.
type DedupRequest struct {
	Records []domain.CanonicalRecord `json:"records"`
}

// NameRequest carries a single organization name.
type NameRequest struct {
	Name string `json:"name"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func main() {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing environment: %v\n", err)
		os.Exit(1)
	}

	// Flags override environment values
	port := flag.Int("port", cfg.Port, "HTTP server port")
	readTimeout := flag.Duration("read-timeout", cfg.ReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", cfg.WriteTimeout, "HTTP write timeout")
	maxRequestSize := flag.Int("max-request-size", cfg.MaxRequestSize, "Maximum request size in bytes")
	concurrency := flag.Int("concurrency", cfg.Concurrency, "Maximum number of concurrent requests (0 = GOMAXPROCS)")
	warmUp := flag.Bool("warm-up", cfg.WarmUp, "Perform system warm-up on startup")
	logFile := flag.String("log-file", cfg.LogFile, "Log file path (empty = stdout)")
	flag.Parse()

	// Set up logger
	var err error
	logger, err = createLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("Starting resolution HTTP server",
		"port", *port,
		"read_timeout", *readTimeout,
		"write_timeout", *writeTimeout,
		"max_request_size", *maxRequestSize,
		"concurrency", *concurrency,
	)

	// Initialize the resolver
	initResolver(*warmUp)

	// Create HTTP server with fasthttp
	server := &fasthttp.Server{
		Handler:               requestHandler,
		ReadTimeout:           *readTimeout,
		WriteTimeout:          *writeTimeout,
		MaxRequestBodySize:    *maxRequestSize,
		Concurrency:           *concurrency,
		DisableKeepalive:      false,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxConnsPerIP:         0, // unlimited
		MaxRequestsPerConn:    0, // unlimited
		MaxIdleWorkerDuration: 10 * time.Second,
		Logger:                nil, // we'll handle logging ourselves
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			logger.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	// Start server
	logger.Info("Server listening", "address", fmt.Sprintf(":%d", *port))
	if err := server.ListenAndServe(fmt.Sprintf(":%d", *port)); err != nil {
		logger.Error("Server error", "error", err)
	}

	<-idleConnsClosed
	logger.Info("Server stopped")
}

// initResolver initializes the shared resolver
func initResolver(warmUp bool) {
	opts := []resolution.Option{
		resolution.WithLogger(logger),
	}

	if warmUp {
		opts = append(opts, resolution.WithWarmUp())
	}

	var err error
	resolver, err = resolution.New(opts...)
	if err != nil {
		logger.Error("Failed to initialize resolver", "error", err)
		os.Exit(1)
	}

	logger.Info("Resolver initialized successfully",
		"warm_up", warmUp,
		"cpus", runtime.NumCPU(),
	)
}

// requestHandler is the main fasthttp request handler
func requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	// Set common headers
	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "ResolutionServer")

	// Route based on path
	switch string(ctx.Path()) {
	case "/health":
		handleHealthCheck(ctx)
	case "/resolve":
		handleResolve(ctx)
	case "/dedup":
		handleDedup(ctx)
	case "/classify":
		handleClassify(ctx)
	case "/aliases":
		handleAliases(ctx)
	case "/normalize":
		handleNormalize(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		writeJSONError(ctx, "Not found")
	}

	// Log request
	duration := time.Since(startTime)
	logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", duration,
	)
}

// handleHealthCheck responds to health check requests
func handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	response := map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}
	writeJSONResponse(ctx, response)
}

// handleResolve runs the full resolution pipeline over the posted registry
// and source lists.
func handleResolve(ctx *fasthttp.RequestCtx) {
	// Only accept POST requests
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	// Parse request
	var req ResolveRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	// Validate request
	if len(req.Registry) == 0 {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "A non-empty registry is required")
		return
	}

	// Create context with timeout
	c, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// Run the pipeline
	result, err := resolver.Resolve(c, req.Registry, req.Sources)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		writeJSONError(ctx, "Resolution failed: "+err.Error())
		return
	}

	// Write response
	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, result)
}

// handleDedup groups the posted registry records by identity key.
func handleDedup(ctx *fasthttp.RequestCtx) {
	// Only accept POST requests
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	// Parse request
	var req DedupRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	groups := resolver.Dedup(req.Records)

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, map[string]interface{}{
		"input_count": len(req.Records),
		"group_count": len(groups),
		"groups":      groups,
	})
}

// handleClassify reports subunit and branch status of a name.
func handleClassify(ctx *fasthttp.RequestCtx) {
	// Only accept POST requests
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	req, ok := parseNameRequest(ctx)
	if !ok {
		return
	}

	cls := resolver.Classify(req.Name)

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, map[string]interface{}{
		"name":       req.Name,
		"is_subunit": cls.IsSubunit,
		"is_branch":  cls.IsBranch,
	})
}

// handleAliases returns the generated alias surface forms for a name.
func handleAliases(ctx *fasthttp.RequestCtx) {
	// Only accept POST requests
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	req, ok := parseNameRequest(ctx)
	if !ok {
		return
	}

	aliases := resolver.Aliases(req.Name)

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, map[string]interface{}{
		"name":    req.Name,
		"aliases": aliases,
	})
}

// handleNormalize returns the registry matching key for a name.
func handleNormalize(ctx *fasthttp.RequestCtx) {
	// Only accept POST requests
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	req, ok := parseNameRequest(ctx)
	if !ok {
		return
	}

	key := resolver.NormalizeKey(req.Name)

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, map[string]interface{}{
		"name": req.Name,
		"key":  key,
	})
}

// Helper functions

// parseNameRequest parses and validates a single-name request body.
func parseNameRequest(ctx *fasthttp.RequestCtx) (NameRequest, bool) {
	var req NameRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return req, false
	}

	if req.Name == "" {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "A name is required")
		return req, false
	}

	return req, true
}

// writeJSONResponse writes a JSON response to the context
func writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		logger.Error("Error marshaling JSON response", "error", err)
		writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	errResponse := ErrorResponse{
		Error: message,
	}

	response, err := json.Marshal(errResponse)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetBody(response)
}

// createLogger creates and configures a logger
func createLogger(logFile string) (l.Logger, error) {
	// Create a logger factory
	factory := l.NewStandardFactory()

	// Configure the logger
	var output io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	// Create the logger
	logger, err := factory.CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  true,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,       // 1MB
		MaxFileSize: 100 * 1024 * 1024, // 100MB
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}
