// scss-language-server serves SCSS symbols to editors over stdio.
package main

import (
	"fmt"
	"os"

	"bennypowers.dev/sls/internal/log"
	"bennypowers.dev/sls/internal/version"
	"bennypowers.dev/sls/lsp"
)

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-v" {
			fmt.Println(version.GetFullVersion())
			return
		}
	}

	if err := run(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}

func run() error {
	// Create and run the LSP server
	server, err := lsp.NewServer()
	if err != nil {
		return fmt.Errorf("failed to create LSP server: %w", err)
	}
	defer func() { _ = server.Close() }()

	// Run with stdio transport (for VSCode and other editors)
	if err := server.RunStdio(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
