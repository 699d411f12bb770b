package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"galley/internal/config"
	"galley/internal/importer"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var (
		entityID       string
		versionID      string
		sourceFilename string
		packageKey     string
		categoriesFlag string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Provision precanned content onto an entity",
		Long: "Resolves a catalog package for the submission (explicit key first, " +
			"filename matching second) and provisions the enabled content categories. " +
			"Rerunning an import replaces the rows of the previous run.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withImporter(func(imp *importer.Importer, cfg *config.Config) error {
				categories, err := parseCategories(categoriesFlag, cfg)
				if err != nil {
					return err
				}
				result, err := imp.Import(cmd.Context(), importer.Request{
					EntityID:       entityID,
					VersionID:      versionID,
					SourceFilename: sourceFilename,
					PackageKey:     packageKey,
					Categories:     categories,
				})
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					if result == nil {
						return writeJSON(cmd, map[string]any{"matched": false})
					}
					return writeJSON(cmd, map[string]any{"matched": true, "result": result})
				}

				out := cmd.OutOrStdout()
				if result == nil {
					fmt.Fprintln(out, "No catalog package matched the submission")
					return nil
				}
				fmt.Fprintln(out, colorize(out, ansiGreen,
					fmt.Sprintf("Provisioned %q (package %s)", result.Title, result.PackageKey)))
				fmt.Fprintln(out, renderTable(
					[]string{"Category", "Linked"},
					[][]string{
						{"Reports", fmt.Sprintf("%d", result.ReportsLinked)},
						{"Marketing assets", fmt.Sprintf("%d", result.MarketingAssetsLinked)},
						{"Covers", fmt.Sprintf("%d", result.CoversLinked)},
						{"Landing page", yesNo(result.LandingPageLinked)},
					},
					[]columnAlignment{alignLeft, alignRight},
				))
				if result.LandingPageSlug != "" {
					fmt.Fprintf(out, "Landing page slug: %s\n", result.LandingPageSlug)
				}
				if result.PrimaryCoverImageURL != "" {
					fmt.Fprintf(out, "Primary cover: %s\n", result.PrimaryCoverImageURL)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&entityID, "entity", "", "Owning entity identifier (required)")
	cmd.Flags().StringVar(&versionID, "version", "", "Manuscript version identifier")
	cmd.Flags().StringVar(&sourceFilename, "filename", "", "Submitted manuscript filename used for matching")
	cmd.Flags().StringVar(&packageKey, "key", "", "Explicit catalog package key (skips filename matching)")
	cmd.Flags().StringVar(&categoriesFlag, "categories", "", "Comma-separated category subset (reports,marketing,covers,landing); default from config")
	_ = cmd.MarkFlagRequired("entity")
	return cmd
}

// parseCategories maps the --categories flag onto a category set. An empty
// flag falls back to the configured toggles.
func parseCategories(flag string, cfg *config.Config) (importer.Categories, error) {
	flag = strings.TrimSpace(flag)
	if flag == "" {
		return importer.CategoriesFromConfig(cfg), nil
	}
	var categories importer.Categories
	for _, name := range strings.Split(flag, ",") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "reports":
			categories.Reports = true
		case "marketing":
			categories.Marketing = true
		case "covers":
			categories.Covers = true
		case "landing", "landing-pages", "landing_pages":
			categories.LandingPages = true
		case "":
		default:
			return importer.Categories{}, fmt.Errorf("unknown category %q (valid: reports, marketing, covers, landing)", name)
		}
	}
	return categories, nil
}
