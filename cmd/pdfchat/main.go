package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := &cli.Command{
		Name:  "pdfchat",
		Usage: "ingest a PDF and chat with it through retrieval augmented generation",
		Commands: []*cli.Command{
			ingestCommand(),
			chatCommand(),
		},
	}

	if err := root.Run(ctx, os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
