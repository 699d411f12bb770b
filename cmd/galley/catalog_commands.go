package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"galley/internal/catalog"
	"galley/internal/fileutil"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Catalog manifest utilities",
	}
	catalogCmd.AddCommand(newCatalogListCommand(ctx))
	catalogCmd.AddCommand(newCatalogValidateCommand(ctx))
	return catalogCmd
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog packages",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.catalogService()
			if err != nil {
				return err
			}
			entries, err := svc.Entries()
			if err != nil {
				return err
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, map[string]any{"entries": entries})
			}

			rows := make([][]string, 0, len(entries))
			for i := range entries {
				entry := &entries[i]
				rows = append(rows, []string{
					entry.Key,
					entry.Title,
					strings.Join(entry.AliasFilenames, ", "),
					entryCategories(entry),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Key", "Title", "Aliases", "Categories"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

// entryCategories summarizes which content categories an entry declares.
func entryCategories(entry *catalog.Entry) string {
	var parts []string
	if entry.HasReports() {
		parts = append(parts, "reports")
	}
	if len(entry.Videos) > 0 || entry.MarketingHTMLRef != "" {
		parts = append(parts, "marketing")
	}
	if len(entry.Covers) > 0 || entry.CoversHTMLRef != "" || entry.CoverImageFilenameOverride != "" {
		parts = append(parts, "covers")
	}
	if entry.LandingPage != nil {
		parts = append(parts, "landing")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func newCatalogValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the catalog manifest and its asset refs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			svc, err := ctx.catalogService()
			if err != nil {
				return err
			}
			entries, err := svc.Entries()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			missing := 0
			for i := range entries {
				entry := &entries[i]
				for _, ref := range entryAssetRefs(entry) {
					path := filepath.Join(cfg.Paths.AssetsDir, filepath.FromSlash(ref))
					if !fileutil.Exists(path) {
						missing++
						fmt.Fprintf(out, "Missing asset for %s: %s\n", entry.Key, ref)
					}
				}
			}
			fmt.Fprintf(out, "Manifest valid: %d packages, %d missing assets\n", len(entries), missing)
			if missing > 0 {
				return fmt.Errorf("%d asset refs do not resolve", missing)
			}
			return nil
		},
	}
}

// entryAssetRefs gathers every asset ref an entry declares, relative to the
// asset tree root.
func entryAssetRefs(entry *catalog.Entry) []string {
	var refs []string
	add := func(ref string) {
		if strings.TrimSpace(ref) != "" {
			refs = append(refs, ref)
		}
	}
	add(entry.ReportRef)
	add(entry.PreviewRef)
	add(entry.MarketingHTMLRef)
	add(entry.CoversHTMLRef)
	for _, video := range entry.Videos {
		add(video.File)
		add(video.Poster)
	}
	for _, cover := range entry.Covers {
		add(cover.File)
	}
	if entry.LandingPage != nil {
		add(entry.LandingPage.File)
	}
	return refs
}
