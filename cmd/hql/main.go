// Package main provides the hql command-line tool.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tangwind/spring-data-jpa/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
