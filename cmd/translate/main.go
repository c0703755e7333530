// Command anydialect is the operator CLI: local translations, audit
// inspection and test tokens.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/anydialect-backend/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.CreateRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
