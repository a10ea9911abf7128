// Package main is the entry point for the clientive CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/clientive/clientive/internal/app"
	"github.com/clientive/clientive/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, cli.ErrorMessage(err))
		os.Exit(1)
	}
}

func run() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	container, err := app.New(cwd)
	if err != nil {
		// A broken config file should not block help or version output
		if canRunWithoutConfig(os.Args[1:]) {
			return cli.NewRootCommand(nil, version).Execute()
		}
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() { _ = container.Close() }()

	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.ExecuteContext(context.Background())
}

func canRunWithoutConfig(args []string) bool {
	if len(args) == 0 {
		return true
	}
	if args[0] == "help" {
		return true
	}
	for _, arg := range args {
		if arg == "--version" || arg == "-v" || arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}
