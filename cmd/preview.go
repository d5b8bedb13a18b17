package cmd

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/carpick/carpick/internal/catalog"
	"github.com/carpick/carpick/internal/lexicon"
	"github.com/carpick/carpick/internal/quiz"
	"github.com/carpick/carpick/internal/ui/photo"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview generated rounds on plain stdout (no database)",
	Long: `Generate and interactively answer rounds straight from the index.

This is a stateless developer tool — no database, no event logging.
Useful for checking distractor quality and how photos render.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Int("rounds", 5, "Number of rounds to generate")
	previewCmd.Flags().Int64("seed", 0, "Seed for round generation (0 = time-seeded)")
	previewCmd.Flags().Bool("no-art", false, "Skip photo rendering")
}

func runPreview(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("rounds")
	seed, _ := cmd.Flags().GetInt64("seed")
	noArt, _ := cmd.Flags().GetBool("no-art")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	lex, err := lexicon.Ensure(cfg.Paths.LexiconPath())
	if err != nil {
		return fmt.Errorf("load lexicon: %w", err)
	}
	ix, err := catalog.NewBuilder(lex, appLogger()).
		LoadOrBuild(cfg.Paths.DataDir, cfg.Paths.IndexPath(), false)
	if err != nil {
		return fmt.Errorf("load index: %w", err)
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gen := quiz.NewGenerator(rand.New(rand.NewSource(seed)))
	eval := quiz.Evaluator{Strict: cfg.Quiz.StrictScoring}
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Printf("Library: %d photos, %d distinct cars\n", ix.Len(), ix.DistinctTriples())
	fmt.Printf("Generating %d rounds (seed %d)...\n\n", count, seed)

	var correct, answered int

	for i := 1; i <= count; i++ {
		round, err := gen.Round(ix)
		if err != nil {
			return fmt.Errorf("generate round: %w", err)
		}

		fmt.Printf("── Round %d/%d ──\n", i, count)
		if !noArt {
			path := filepath.Join(cfg.Paths.DataDir, filepath.FromSlash(round.Target.ImagePath))
			art, err := photo.RenderFile(path, 72, 18)
			if err != nil {
				fmt.Printf("(photo unavailable: %v)\n", err)
			} else {
				fmt.Println(art)
			}
		}
		for j, c := range round.Choices {
			fmt.Printf("  %2d) %s\n", j+1, c.Label())
		}

		// Read answer.
		fmt.Print("\nYour pick (1-10): ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			fmt.Println("(skipped)")
			fmt.Println()
			continue
		}
		pick, err := strconv.Atoi(answer)
		if err != nil || pick < 1 || pick > len(round.Choices) {
			fmt.Println("(not a valid choice, skipped)")
			fmt.Println()
			continue
		}

		answered++
		ok, err := eval.Evaluate(round, round.Choices[pick-1])
		if err != nil {
			return err
		}
		if ok {
			correct++
			fmt.Println("\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Printf("\033[31m✗ Wrong.\033[0m It was the %s\n", round.Target.Label())
		}
		fmt.Println()
	}

	fmt.Printf("── Summary: %d/%d correct ──\n", correct, answered)
	return nil
}
