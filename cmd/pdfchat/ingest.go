package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

func ingestCommand() *cli.Command {
	return &cli.Command{
		Name:      "ingest",
		Usage:     "extract, chunk, embed and store a PDF",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to a YAML config file",
			},
			&cli.BoolFlag{
				Name:  "clear",
				Usage: "remove previously stored entries before writing new ones",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Action: runIngest,
	}
}

func runIngest(ctx context.Context, cmd *cli.Command) error {
	var bar *progressbar.ProgressBar
	app, err := buildApp(ctx, cmd, func(done, total int) {
		if bar == nil {
			bar = getProgressBar(total, " Embedding chunks")
		}
		bar.Set(done)
	})
	if err != nil {
		return err
	}
	defer app.Close()

	path := cmd.Args().First()
	if path == "" {
		path = app.config.Ingest.PDFPath
	}

	stats, err := app.ingestion.Run(ctx, path, cmd.Bool("clear"))
	if bar != nil {
		bar.Finish()
		fmt.Println()
	}
	if err != nil {
		return err
	}

	color.Green("✓ Ingested %s\n", stats.Source)
	fmt.Printf("  pages: %d\n", stats.Pages)
	fmt.Printf("  chunks: %d\n", stats.Chunks)
	fmt.Printf("  chunk size (min/avg/max): %d/%d/%d\n", stats.MinChunk, stats.AvgChunk, stats.MaxChunk)
	fmt.Printf("  elapsed: %s\n", stats.Elapsed.Round(time.Millisecond))

	return nil
}
