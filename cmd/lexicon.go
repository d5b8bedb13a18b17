package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/carpick/carpick/internal/lexicon"
)

var lexiconCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Manage the make lexicon used to parse filenames",
}

var lexiconListCmd = &cobra.Command{
	Use:   "list",
	Short: "List canonical makes and their aliases",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		lex, err := lexicon.Ensure(cfg.Paths.LexiconPath())
		if err != nil {
			return fmt.Errorf("load lexicon: %w", err)
		}

		canonicals := lex.Canonicals()

		// Header.
		fmt.Printf("%-20s  %s\n", "Make", "Aliases")
		fmt.Println(strings.Repeat("─", 72))

		for _, c := range canonicals {
			aliases := lex.Aliases(c)
			fmt.Printf("%-20s  %s\n", c, strings.Join(aliases, ", "))
		}

		fmt.Printf("\n%d makes (lexicon version %s)\n", len(canonicals), lex.Version())
		return nil
	},
}

var lexiconAddCmd = &cobra.Command{
	Use:   "add <make> [alias...]",
	Short: "Add a make (or extra aliases for an existing one)",
	Long: `Add a canonical make with optional aliases, then save the lexicon.

Aliases map filename tokens to the canonical name, so photos named
"vw_golf_2015.jpg" resolve once "vw" is an alias of "Volkswagen".
The index artifact is keyed by lexicon version; run
  carpick index build
afterwards to pick up the change.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		path := cfg.Paths.LexiconPath()
		lex, err := lexicon.Ensure(path)
		if err != nil {
			return fmt.Errorf("load lexicon: %w", err)
		}

		canonical := args[0]
		aliases := args[1:]
		lex.Add(canonical, aliases...)

		if err := lex.Save(path); err != nil {
			return fmt.Errorf("save lexicon: %w", err)
		}

		fmt.Printf("Added %q", canonical)
		if len(aliases) > 0 {
			fmt.Printf(" with aliases %s", strings.Join(aliases, ", "))
		}
		fmt.Printf("\nLexicon version is now %s. Rebuild with: carpick index build\n", lex.Version())
		return nil
	},
}

func init() {
	lexiconCmd.AddCommand(lexiconListCmd)
	lexiconCmd.AddCommand(lexiconAddCmd)
}
