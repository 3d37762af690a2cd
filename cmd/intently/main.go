// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/intently"
	"github.com/poiesic/intently/ai"
	"github.com/poiesic/intently/core"
	"github.com/poiesic/intently/storage"
	"github.com/poiesic/intently/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "intently",
		Usage: "Semantic intent matcher for question/answer knowledge bases",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "seed",
				Usage:  "Load question/answer pairs from a JSON file into the knowledge store",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to a JSON file of {question, answer} objects",
						Required: true,
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Resolve a single query against the knowledge base",
				ArgsUsage: "<query>",
				Action:    askCommand,
				Flags:     askFlags(),
			},
			{
				Name:   "chat",
				Usage:  "Interactively resolve queries read from stdin",
				Action: chatCommand,
				Flags:  askFlags(),
			},
			{
				Name:   "entries",
				Usage:  "List stored question/answer pairs in insertion order",
				Action: entriesCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// askFlags are shared between the ask and chat commands.
func askFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.Float64Flag{
			Name:  "threshold",
			Usage: "Minimum similarity for a match, in [-1, 1]",
			Value: 0.6,
		},
		&cli.StringFlag{
			Name:  "fallback",
			Usage: "Reply used when no entry clears the threshold",
			Value: intently.DefaultFallback,
		},
	}
}

// seedEntry is the JSON shape of one seed file element.
type seedEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func seedCommand(c *cli.Context) error {
	ctx := context.Background()

	data, err := os.ReadFile(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var seeds []seedEntry
	if err := json.Unmarshal(data, &seeds); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}
	if len(seeds) == 0 {
		return fmt.Errorf("seed file contains no entries")
	}

	// Seeding never embeds, so no provider configuration is needed
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewEntryRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	added := 0
	skipped := 0
	for _, seed := range seeds {
		entry := &core.KnowledgeEntry{
			Id:       core.IDFromContent(seed.Question),
			Question: seed.Question,
			Answer:   seed.Answer,
		}
		if err := core.ValidateKnowledgeEntry(entry); err != nil {
			return fmt.Errorf("invalid seed entry %q: %w", seed.Question, err)
		}
		if addErr := repo.AddEntries(ctx, entry); addErr != nil {
			if errors.Is(addErr, storage.ErrDuplicateKey) {
				skipped++
				continue
			}
			return fmt.Errorf("failed to store entry %q: %w", seed.Question, addErr)
		}
		added++
	}

	fmt.Fprintf(os.Stderr, "Seeded %d entries (%d duplicates skipped)\n", added, skipped)
	return nil
}

func askCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a query argument is required")
	}

	ctx := context.Background()

	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	if err := assistant.Warmup(ctx); err != nil {
		return fmt.Errorf("failed to warm up knowledge base: %w", err)
	}

	answer, err := assistant.Answer(ctx, query)
	if err != nil {
		return err
	}

	fmt.Println(answer)
	return nil
}

func chatCommand(c *cli.Context) error {
	ctx := context.Background()

	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	if err := assistant.Warmup(ctx); err != nil {
		return fmt.Errorf("failed to warm up knowledge base: %w", err)
	}

	fmt.Fprintln(os.Stderr, "Ready. Type a question, or an empty line to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(os.Stderr, "> ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			break
		}

		answer, err := assistant.Answer(ctx, query)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		fmt.Println(answer)
	}
	return scanner.Err()
}

func entriesCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewEntryRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	entries, err := repo.ListEntries(ctx)
	if err != nil {
		return fmt.Errorf("failed to list entries: %w", err)
	}

	for i, entry := range entries {
		fmt.Printf("%d. Q: %s\n   A: %s\n", i+1, entry.Question, entry.Answer)
	}
	fmt.Fprintf(os.Stderr, "%d entries\n", len(entries))
	return nil
}

// openAssistant builds an assistant from the shared ask/chat flags.
func openAssistant(c *cli.Context) (*intently.Assistant, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	assistant, err := intently.NewAssistant(c.String("db"),
		intently.WithAIConfig(aiConfig),
		intently.WithThreshold(float32(c.Float64("threshold"))),
		intently.WithFallback(c.String("fallback")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open assistant: %w", err)
	}
	return assistant, nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
