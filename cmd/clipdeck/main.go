// Package main runs the clipdeck CLI: project management for the local
// video editing store.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	clipdeckcmd "github.com/louisbranch/clipdeck/internal/cmd/clipdeck"
)

func main() {
	cfg, args, err := clipdeckcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[CLIPDECK] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := clipdeckcmd.Run(ctx, cfg, args, os.Stdout); err != nil {
		log.Fatalf("clipdeck: %v", err)
	}
}
