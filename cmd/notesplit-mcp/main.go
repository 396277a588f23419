package main

import (
	"fmt"
	"os"

	"github.com/ironsheep/notesplit/internal/config"
	"github.com/ironsheep/notesplit/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("notesplit-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("notesplit-mcp - MCP server for extracting diagrams from note pages")
			fmt.Println()
			fmt.Println("Usage: notesplit-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  NOTESPLIT_LOG_LEVEL=debug    Log level (debug, info, warn, error)")
			fmt.Println("  NOTESPLIT_CONFIG=path        YAML configuration file")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Logging goes to stderr (stdout is for MCP protocol)
	level, err := config.ParseLevel(os.Getenv(config.LogLevelEnv))
	logger := config.NewLogger(os.Stderr, level)
	if err != nil {
		logger.Warn("ignoring log level", "error", err)
	}

	if err := config.LoadDotEnv(); err != nil {
		logger.Error("failed to load .env", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load(os.Getenv("NOTESPLIT_CONFIG"))
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	server.Version = Version
	logger.Debug("starting notesplit MCP server", "version", Version, "built", BuildTime, "commit", GitCommit)

	srv := server.New(cfg, logger)
	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
