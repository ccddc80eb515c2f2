// Package main starts the roster service process lifecycle.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	rostercmd "github.com/louisbranch/realmkeep/internal/cmd/roster"
)

func main() {
	cfg, err := rostercmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rostercmd.Run(ctx, cfg); err != nil {
		log.Fatalf("roster: %v", err)
	}
}
