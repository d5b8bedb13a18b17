package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/carpick/carpick/internal/app"
	"github.com/carpick/carpick/internal/catalog"
	"github.com/carpick/carpick/internal/facts"
	"github.com/carpick/carpick/internal/lexicon"
	"github.com/carpick/carpick/internal/llm"
	"github.com/carpick/carpick/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func init() {
	playCmd.Flags().Int64("seed", 0, "Seed for round generation (0 = time-seeded)")
	playCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")
}

// runPlay opens the store, loads the photo index, and launches the TUI.
// It also backs the bare `carpick` invocation.
func runPlay(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Open store for event logging.
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	// Load the lexicon and the photo index.
	lex, err := lexicon.Ensure(cfg.Paths.LexiconPath())
	if err != nil {
		return fmt.Errorf("load lexicon: %w", err)
	}
	ix, err := catalog.NewBuilder(lex, appLogger()).
		LoadOrBuild(cfg.Paths.DataDir, cfg.Paths.IndexPath(), false)
	if err != nil {
		return fmt.Errorf("load index: %w", err)
	}

	opts := app.Options{
		DataDir:   cfg.Paths.DataDir,
		Index:     ix,
		EventRepo: st.Events(),
		Strict:    cfg.Quiz.StrictScoring,
		Version:   version,
	}

	seed, _ := cmd.Flags().GetInt64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts.RNG = rand.New(rand.NewSource(seed))
	opts.SkipWelcome, _ = cmd.Flags().GetBool("no-splash")

	// Build the facts service (optional — play works without it).
	svc, err := newFactsService(ctx, st.Events())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Car facts will be unavailable.")
	} else {
		opts.FactsService = svc
	}

	return app.Run(opts)
}

// newFactsService builds the fact generator behind the first configured
// LLM provider: CARPICK_* variables first, then generic API key discovery.
func newFactsService(ctx context.Context, events store.EventRepo) (*facts.Service, error) {
	cfg := llm.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}

	provider, err := llm.NewProvider(ctx, cfg, events)
	if err != nil {
		return nil, err
	}
	return facts.NewService(provider, facts.DefaultConfig()), nil
}
