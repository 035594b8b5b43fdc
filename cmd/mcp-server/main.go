package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"sora-video-mcp/pkg/service/bootstrap"
	"sora-video-mcp/pkg/service/config"
)

// Build-time variables set via ldflags
var (
	// Version is the semantic version of the application
	Version = "dev"
	// GitCommit is the git commit SHA at build time
	GitCommit = "unknown"
	// BuildTime is the time of the build
	BuildTime = "unknown"
)

var (
	flagEnvFile  string
	flagLogLevel string
	flagBaseURL  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sora-video-mcp",
		Short: "MCP server exposing the Sora video generation API as tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
		SilenceUsage: true,
	}
	rootCmd.Flags().StringVar(&flagEnvFile, "env-file", "", "Path to .env file")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&flagBaseURL, "base-url", "", "Override the video API base URL")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s (commit: %s, built: %s)\n", Version, GitCommit, BuildTime)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServer() error {
	cfg, err := config.Load(flagEnvFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagBaseURL != "" {
		cfg.BaseURL = flagBaseURL
	}
	cfg.ServiceVersion = Version

	setupLogging(cfg.LogLevel)

	log.Info().
		Str("version", Version).
		Str("service", cfg.ServiceName).
		Msg("Starting Sora video MCP server")

	if cfg.APIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY is not set; every tool call will fail until it is provided")
	}

	slogLogger := createSlogLogger(cfg.LogLevel)

	bootstrapper := bootstrap.NewBootstrapper(slogLogger, cfg)
	mcpServer := bootstrapper.CreateMCPServer()
	bootstrapper.RegisterComponents(mcpServer)

	return serveWithShutdown(mcpServer)
}

// serveWithShutdown runs the stdio transport until the host disconnects
// or a shutdown signal arrives.
func serveWithShutdown(mcpServer *server.MCPServer) error {
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ServeStdio(mcpServer)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		return nil
	case err := <-serverErr:
		if err != nil {
			log.Error().Err(err).Msg("Server failed")
			return err
		}
		return nil
	}
}

// createSlogLogger creates the structured logger injected into services.
// MCP owns stdout, so all logging goes to stderr.
func createSlogLogger(logLevel string) *slog.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseSlogLevel(logLevel),
	})
	return slog.New(handler)
}

func parseSlogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupLogging configures the process-level zerolog logger.
func setupLogging(level string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	})
}
