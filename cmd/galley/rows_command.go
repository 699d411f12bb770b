package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"galley/internal/store"
)

func newRowsCommand(ctx *commandContext) *cobra.Command {
	var entityID string

	cmd := &cobra.Command{
		Use:   "rows",
		Short: "Inspect the content rows linked to an entity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				cmdCtx := cmd.Context()
				reports, err := st.ReportsForEntity(cmdCtx, entityID)
				if err != nil {
					return err
				}
				marketing, err := st.MarketingAssetsForEntity(cmdCtx, entityID)
				if err != nil {
					return err
				}
				covers, err := st.CoversForEntity(cmdCtx, entityID)
				if err != nil {
					return err
				}
				pages, err := st.LandingPagesForEntity(cmdCtx, entityID)
				if err != nil {
					return err
				}

				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]any{
						"entity_id":        entityID,
						"reports":          len(reports),
						"marketing_assets": len(marketing),
						"covers":           len(covers),
						"landing_pages":    len(pages),
					})
				}

				out := cmd.OutOrStdout()
				if len(reports) > 0 {
					rows := make([][]string, 0, len(reports))
					for _, r := range reports {
						rows = append(rows, []string{r.Status, r.Title, r.DocumentURL})
					}
					fmt.Fprintln(out, renderTable(
						[]string{"Status", "Title", "Document"},
						rows,
						[]columnAlignment{alignLeft, alignLeft, alignLeft}))
				}
				if len(marketing) > 0 {
					rows := make([][]string, 0, len(marketing))
					for _, a := range marketing {
						rows = append(rows, []string{a.Kind, a.Title, a.AssetURL})
					}
					fmt.Fprintln(out, renderTable(
						[]string{"Kind", "Title", "Asset"},
						rows,
						[]columnAlignment{alignLeft, alignLeft, alignLeft}))
				}
				if len(covers) > 0 {
					rows := make([][]string, 0, len(covers))
					for _, c := range covers {
						rows = append(rows, []string{c.CoverType, yesNo(c.IsPrimary), c.ImageURL})
					}
					fmt.Fprintln(out, renderTable(
						[]string{"Type", "Primary", "Image"},
						rows,
						[]columnAlignment{alignLeft, alignLeft, alignLeft}))
				}
				for _, p := range pages {
					fmt.Fprintf(out, "Landing page: /%s (%s)\n", p.Slug, p.Title)
				}
				if len(reports)+len(marketing)+len(covers)+len(pages) == 0 {
					fmt.Fprintf(out, "No content rows linked to entity %s\n", entityID)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&entityID, "entity", "", "Owning entity identifier (required)")
	_ = cmd.MarkFlagRequired("entity")
	return cmd
}
