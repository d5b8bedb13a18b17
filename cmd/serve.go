package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/carpick/carpick/internal/catalog"
	"github.com/carpick/carpick/internal/lexicon"
	"github.com/carpick/carpick/internal/server"
	"github.com/carpick/carpick/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP quiz API",
	Long: `Serve the quiz over HTTP: session lifecycle, rounds, answers,
photo thumbnails, and car facts.

Set CARPICK_ADMIN_TOKEN to enable POST /admin/rebuild. The lexicon
artifact is watched while serving; edits rebuild the index in place.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := appLogger()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	lex, err := lexicon.Ensure(cfg.Paths.LexiconPath())
	if err != nil {
		return fmt.Errorf("load lexicon: %w", err)
	}
	ix, err := catalog.NewBuilder(lex, log).
		LoadOrBuild(cfg.Paths.DataDir, cfg.Paths.IndexPath(), false)
	if err != nil {
		return fmt.Errorf("load index: %w", err)
	}
	log.Info("index loaded",
		zap.Int("records", ix.Len()),
		zap.Int("distinct", ix.DistinctTriples()),
		zap.Int("misses", ix.Misses))

	library := server.NewLibrary(cfg.Paths.DataDir, cfg.Paths.IndexPath(), lex, ix, log)

	opts := server.Options{
		Config:     cfg,
		Library:    library,
		Events:     st.Events(),
		Logger:     log,
		AdminToken: os.Getenv("CARPICK_ADMIN_TOKEN"),
	}

	svc, err := newFactsService(cmd.Context(), st.Events())
	if err != nil {
		log.Info("car facts disabled", zap.Error(err))
	} else {
		opts.Facts = svc
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Lexicon edits swap the live tables without a restart.
	watcher, err := lexicon.NewWatcher(cfg.Paths.LexiconPath(), func(l *lexicon.Lexicon) {
		if err := library.SetLexicon(l); err != nil {
			log.Warn("lexicon swap failed", zap.Error(err))
		}
	}, log)
	if err != nil {
		return fmt.Errorf("lexicon watcher: %w", err)
	}
	if err := watcher.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.New(opts).ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		return nil
	}
}
