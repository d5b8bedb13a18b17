package cmd

import (
	"context"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/carpick/carpick/internal/store"
	"github.com/carpick/carpick/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime quiz statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("hardest")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := context.Background()
		repo := st.Events()

		lifetime, err := repo.LifetimeStats(ctx)
		if err != nil {
			return fmt.Errorf("query lifetime stats: %w", err)
		}
		if lifetime.Rounds == 0 {
			fmt.Println("No rounds recorded yet. Start with: carpick play")
			return nil
		}

		heading := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		dim := lipgloss.NewStyle().Foreground(theme.TextDim)

		fmt.Println(heading.Render("Lifetime"))
		fmt.Println(strings.Repeat("─", 64))
		fmt.Printf("Rounds: %d   Correct: %d   Accuracy: %s   Sessions: %d\n\n",
			lifetime.Rounds, lifetime.Correct,
			renderAccuracy(lifetime.Accuracy()), lifetime.Sessions)

		byMake, err := repo.MakeBreakdown(ctx)
		if err != nil {
			return fmt.Errorf("query make breakdown: %w", err)
		}
		if len(byMake) > 0 {
			fmt.Println(heading.Render("By Make"))
			fmt.Println(strings.Repeat("─", 64))
			fmt.Printf("%-24s  %8s  %8s  %9s\n", "Make", "Rounds", "Correct", "Accuracy")
			for _, m := range byMake {
				acc := float64(m.Correct) / float64(m.Rounds)
				fmt.Printf("%-24s  %8d  %8d  %8.1f%%\n",
					m.Make, m.Rounds, m.Correct, acc*100)
			}
			fmt.Println()
		}

		hardest, err := repo.HardestCars(ctx, limit)
		if err != nil {
			return fmt.Errorf("query hardest cars: %w", err)
		}
		if len(hardest) > 0 {
			fmt.Println(heading.Render("Hardest Cars"))
			fmt.Println(strings.Repeat("─", 64))
			fmt.Printf("%-32s  %8s  %8s  %9s\n", "Car", "Rounds", "Correct", "Accuracy")
			for _, c := range hardest {
				acc := float64(c.Correct) / float64(c.Rounds)
				label := fmt.Sprintf("%s %s %d", c.Make, c.Model, c.Year)
				if len(label) > 32 {
					label = label[:29] + "..."
				}
				fmt.Printf("%-32s  %8d  %8d  %8.1f%%\n",
					label, c.Rounds, c.Correct, acc*100)
			}
		} else {
			fmt.Println(dim.Render("No car has been answered twice yet."))
		}

		return nil
	},
}

// renderAccuracy colors a 0..1 hit rate: green above 80%, red below 40%.
func renderAccuracy(acc float64) string {
	text := fmt.Sprintf("%.1f%%", acc*100)
	switch {
	case acc >= 0.8:
		return lipgloss.NewStyle().Foreground(theme.Success).Render(text)
	case acc < 0.4:
		return lipgloss.NewStyle().Foreground(theme.Error).Render(text)
	default:
		return text
	}
}

func init() {
	statsCmd.Flags().Int("hardest", 10, "Number of hardest cars to show")
}
