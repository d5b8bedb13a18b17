package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/carpick/carpick/internal/catalog"
	"github.com/carpick/carpick/internal/lexicon"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the car photo index",
}

var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Scan the photo directory and write the index artifact",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		lex, err := lexicon.Ensure(cfg.Paths.LexiconPath())
		if err != nil {
			return fmt.Errorf("load lexicon: %w", err)
		}

		ix, err := catalog.NewBuilder(lex, appLogger()).
			LoadOrBuild(cfg.Paths.DataDir, cfg.Paths.IndexPath(), force)
		if err != nil {
			return fmt.Errorf("build index: %w", err)
		}

		fmt.Printf("Indexed %d photos from %s\n", ix.Len(), cfg.Paths.DataDir)
		fmt.Printf("  %d distinct cars\n", ix.DistinctTriples())
		if ix.Misses > 0 {
			fmt.Printf("  %d files skipped (unparseable names)\n", ix.Misses)
		}
		fmt.Printf("Artifact: %s\n", cfg.Paths.IndexPath())
		return nil
	},
}

var indexShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List the indexed cars",
	RunE: func(cmd *cobra.Command, args []string) error {
		makeFilter, _ := cmd.Flags().GetString("make")

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

		records := make([]catalog.Record, 0, len(ix.Records))
		for _, r := range ix.Records {
			if makeFilter != "" && !strings.EqualFold(r.Make, makeFilter) {
				continue
			}
			records = append(records, r)
		}
		if len(records) == 0 {
			if makeFilter != "" {
				return fmt.Errorf("no indexed cars for make %q", makeFilter)
			}
			fmt.Println("The index is empty. Add photos and run: carpick index build")
			return nil
		}

		sort.Slice(records, func(i, j int) bool {
			if records[i].Make != records[j].Make {
				return records[i].Make < records[j].Make
			}
			if records[i].Model != records[j].Model {
				return records[i].Model < records[j].Model
			}
			return records[i].Year < records[j].Year
		})

		// Header.
		fmt.Printf("%-16s  %-24s  %5s  %s\n", "Make", "Model", "Year", "Path")
		fmt.Println(strings.Repeat("─", 90))

		for _, r := range records {
			model := r.Model
			if len(model) > 24 {
				model = model[:21] + "..."
			}
			fmt.Printf("%-16s  %-24s  %5d  %s\n", r.Make, model, r.Year, r.ImagePath)
		}

		shown := &catalog.Index{Records: records}
		fmt.Printf("\n%d photos, %d distinct cars", shown.Len(), shown.DistinctTriples())
		if makeFilter == "" && ix.Misses > 0 {
			fmt.Printf(", %d unrecognized files", ix.Misses)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	indexBuildCmd.Flags().Bool("force", false, "Rebuild even if the cached artifact is fresh")
	indexShowCmd.Flags().String("make", "", "Filter by manufacturer")

	indexCmd.AddCommand(indexBuildCmd)
	indexCmd.AddCommand(indexShowCmd)
}
