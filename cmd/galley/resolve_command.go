package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <filename>",
		Short: "Resolve a filename against the catalog and the uploads covers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			catalogSvc, err := ctx.catalogService()
			if err != nil {
				return err
			}
			entry, err := catalogSvc.ResolveByFilename(filename)
			if err != nil {
				return err
			}

			finder, err := ctx.coverFinder()
			if err != nil {
				return err
			}
			cover, score, err := finder.Resolve(filename)
			if err != nil {
				return err
			}

			if ctx.jsonOutput() {
				payload := map[string]any{
					"filename":    filename,
					"matched":     entry != nil,
					"cover":       cover,
					"cover_score": score,
				}
				if entry != nil {
					payload["package_key"] = entry.Key
					payload["title"] = entry.Title
				}
				return writeJSON(cmd, payload)
			}

			out := cmd.OutOrStdout()
			if entry == nil {
				fmt.Fprintf(out, "No catalog package matches %q\n", filename)
			} else {
				fmt.Fprintf(out, "Package: %s (%s)\n", entry.Key, entry.Title)
			}
			if cover == "" {
				fmt.Fprintln(out, "Standalone cover: none")
			} else {
				fmt.Fprintf(out, "Standalone cover: %s (score %d)\n", cover, score)
			}
			return nil
		},
	}
	return cmd
}
