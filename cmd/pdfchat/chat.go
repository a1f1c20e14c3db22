package main

import (
	"bufio"
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"pdfchat/pkg/config"
	"pdfchat/pkg/llm"
)

func chatCommand() *cli.Command {
	return &cli.Command{
		Name:  "chat",
		Usage: "ask questions about the ingested document",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to a YAML config file",
			},
			&cli.StringFlag{
				Name:  "query",
				Usage: "ask a single question and exit",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Action: runChat,
	}
}

func runChat(ctx context.Context, cmd *cli.Command) error {
	app, err := buildApp(ctx, cmd, nil)
	if err != nil {
		return err
	}
	defer app.Close()

	if question := cmd.String("query"); question != "" {
		answer, err := app.query.Ask(ctx, question)
		if err != nil {
			return err
		}
		fmt.Println(answer.Text)
		return nil
	}

	return chatLoop(ctx, app)
}

func chatLoop(ctx context.Context, app *app) error {
	printHeader(app.config)

	scanner := bufio.NewScanner(os.Stdin)
	userPrompt := color.New(color.FgGreen).PrintfFunc()
	assistantPrompt := color.New(color.FgCyan).PrintfFunc()

	for {
		userPrompt("\nYou: ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "sair", "exit", "quit", "q":
			return nil
		case "help", "ajuda", "?":
			printHelp()
			continue
		case "info":
			printInfo(ctx, app)
			continue
		case "clear", "cls":
			clearScreen()
			printHeader(app.config)
			continue
		}

		spinner := getSpinner(" Thinking...")
		answer, err := app.query.Ask(ctx, input)
		spinner.Finish()

		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			// A failed question should not end the session
			color.Red("Error: %v\n", err)
			continue
		}

		assistantPrompt("\nAssistant: ")
		fmt.Println(answer.Text)
	}

	return nil
}

func rule() string {
	return strings.Repeat("=", 60)
}

func printHeader(cfg *config.Config) {
	fmt.Println()
	fmt.Println(rule())
	color.Cyan("  CHAT WITH YOUR PDF")
	fmt.Println(rule())
	fmt.Printf("Provider: %s\n", strings.ToUpper(cfg.LLM.Provider))
	fmt.Printf("Collection: %s\n", cfg.Database.TableName)
	fmt.Printf("Search K: %d\n", cfg.Search.K)
	fmt.Println(rule())
	fmt.Println("Ask a question about the document and press Enter.")
	fmt.Println("Type 'help' for commands, or 'sair', 'exit', 'quit', 'q' to leave.")
	fmt.Println(rule())
}

func printHelp() {
	fmt.Println()
	fmt.Println(rule())
	color.Cyan("  COMMANDS")
	fmt.Println(rule())
	fmt.Println("help, ajuda, ?        show this help")
	fmt.Println("info                  show provider and store details")
	fmt.Println("clear, cls            clean the screen")
	fmt.Println("sair, exit, quit, q   leave the chat")
	fmt.Println()
	fmt.Println("Anything else is sent as a question about the document.")
	fmt.Println(rule())
}

func printInfo(ctx context.Context, app *app) {
	cfg := app.config

	fmt.Println()
	fmt.Println(rule())
	color.Cyan("  SYSTEM INFO")
	fmt.Println(rule())
	fmt.Printf("Provider: %s\n", strings.ToUpper(cfg.LLM.Provider))
	if cfg.LLM.Provider == llm.ProviderGoogle {
		fmt.Printf("Chat model: %s\n", cfg.LLM.GoogleChatModel)
		fmt.Printf("Embedding model: %s\n", cfg.LLM.GoogleEmbeddingModel)
	} else {
		fmt.Printf("Chat model: %s\n", cfg.LLM.OpenAIChatModel)
		fmt.Printf("Embedding model: %s\n", cfg.LLM.OpenAIEmbeddingModel)
	}
	fmt.Printf("Database: %s\n", databaseLocation(cfg.Database.URL))
	fmt.Printf("Collection: %s\n", cfg.Database.TableName)
	fmt.Printf("Chunk size: %d\n", cfg.Ingest.ChunkSize)
	fmt.Printf("Chunk overlap: %d\n", cfg.Ingest.ChunkOverlap)
	fmt.Printf("Search K: %d\n", cfg.Search.K)

	if count, err := app.store.Count(ctx); err == nil {
		fmt.Printf("Stored chunks: %d\n", count)
	}
	if err := app.store.Health(ctx); err != nil {
		color.Red("Store health: %v", err)
	} else {
		color.Green("Store health: ok")
	}
	fmt.Println(rule())
}

// databaseLocation renders the connection target without credentials.
func databaseLocation(connString string) string {
	u, err := url.Parse(connString)
	if err != nil {
		return "unknown"
	}
	return u.Host + u.Path
}

func clearScreen() {
	fmt.Print("\033[H\033[2J")
}
