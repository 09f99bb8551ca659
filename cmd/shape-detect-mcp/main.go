package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ironsheep/shape-detect-mcp/internal/config"
	"github.com/ironsheep/shape-detect-mcp/internal/logging"
	"github.com/ironsheep/shape-detect-mcp/internal/server"
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
			fmt.Printf("shape-detect-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(2)
	}

	// Logs go to stderr (stdout is for MCP protocol and detect output)
	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging error: %v\n", err)
		os.Exit(2)
	}

	server.Version = Version
	srv := server.New(cfg, logger)
	log := logging.Component(logger, "main")

	if len(os.Args) > 1 && os.Args[1] == "detect" {
		if len(os.Args) != 3 {
			fmt.Fprintln(os.Stderr, "Usage: shape-detect-mcp detect <image-path>")
			os.Exit(2)
		}

		res, err := srv.DetectFile(os.Args[2], nil, cfg.MaxDimension)
		if err != nil {
			log.Error().Err(err).Str("path", os.Args[2]).Msg("detection failed")
			os.Exit(1)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			log.Error().Err(err).Msg("failed to write result")
			os.Exit(1)
		}
		return
	}

	log.Debug().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("shape detect MCP server starting")

	if err := srv.Run(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func printHelp() {
	fmt.Println("shape-detect-mcp - MCP server for geometric shape detection")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  shape-detect-mcp [options]        Serve MCP over stdin/stdout")
	fmt.Println("  shape-detect-mcp detect <image>   Print detected shapes as JSON")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Printf("  %s=debug          Log level (debug, info, warn, error)\n", config.EnvLogLevel)
	fmt.Printf("  %s=console       Log format (console, json)\n", config.EnvLogFormat)
	fmt.Printf("  %s=0          Downscale images larger than this before detection\n", config.EnvMaxDimension)
	fmt.Printf("  %s=100,127,150,180  Fallback threshold ladder\n", config.EnvFixedThresholds)
	fmt.Println()
	fmt.Println("Configure the server in your MCP client (e.g., Claude Desktop).")
}
