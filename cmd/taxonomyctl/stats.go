package main

import (
	"fmt"
	"io"

	"birdcall-quiz/internal/config"
	"birdcall-quiz/internal/database"
	"birdcall-quiz/internal/repository"
	"birdcall-quiz/internal/taxonomy"

	"github.com/spf13/cobra"
)

func statsCommand(cfg *config.Config) *cobra.Command {
	var (
		top    int
		source string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print record, species and family counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if source == "" {
				source = cfg.Taxonomy.Source
			}

			var src taxonomy.Source
			switch source {
			case config.TaxonomySourceSQL:
				db, err := database.Open(cfg.Taxonomy.SQLDriver, cfg.Taxonomy.SQLDSN)
				if err != nil {
					return err
				}
				defer db.Close()
				src = repository.NewSpeciesRepository(db)
			case config.TaxonomySourceJSON:
				src = taxonomy.JSONSource{Path: cfg.Taxonomy.JSONPath}
			default:
				return fmt.Errorf("unsupported taxonomy source: %q", source)
			}

			store, err := taxonomy.Load(cmd.Context(), src)
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), store.Stats(top))
			return nil
		},
	}
	cmd.Flags().IntVar(&top, "top", 10, "number of largest families to list")
	cmd.Flags().StringVar(&source, "source", "", "json or sql (default taxonomy.source)")
	return cmd
}

func printStats(w io.Writer, st taxonomy.Stats) {
	fmt.Fprintf(w, "records:    %d\n", st.Records)
	fmt.Fprintf(w, "species:    %d\n", st.Species)
	fmt.Fprintf(w, "subspecies: %d\n", st.Subspecies)
	fmt.Fprintf(w, "families:   %d\n", st.Families)
	fmt.Fprintf(w, "orders:     %d\n", st.Orders)
	if len(st.TopFamilies) == 0 {
		return
	}
	fmt.Fprintln(w, "largest families:")
	for i, f := range st.TopFamilies {
		fmt.Fprintf(w, "%3d. %s (%s) %d\n", i+1, f.FamilyLocalized, f.Family, f.SpeciesCount)
	}
}
