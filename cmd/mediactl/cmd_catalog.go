package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	domain "github.com/emerginginv/media-api/internal/domain/media"
)

func newListCmd(global *globalOptions) *cobra.Command {
	var (
		category string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, cleanup, err := serviceFactory(cmd.Context(), global)
			if err != nil {
				return err
			}
			defer cleanup()

			assets, err := svc.ListByCategory(cmd.Context(), category, limit)
			if err != nil {
				return err
			}
			return printAssets(cmd.OutOrStdout(), global, assets)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only list this category")
	cmd.Flags().IntVarP(&limit, "limit", "n", domain.DefaultListLimit, "Maximum number of entries")
	return cmd
}

func newFeaturedCmd(global *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "featured",
		Short: "List featured catalog entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, cleanup, err := serviceFactory(cmd.Context(), global)
			if err != nil {
				return err
			}
			defer cleanup()

			assets, err := svc.ListFeatured(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return printAssets(cmd.OutOrStdout(), global, assets)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", domain.DefaultFeaturedLimit, "Maximum number of entries")
	return cmd
}

func newDeleteCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete assets and their stored objects",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := serviceFactory(cmd.Context(), global)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			failed := 0
			for _, id := range args {
				if err := svc.Delete(cmd.Context(), id); err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "fail  %s: %v\n", id, err)
					continue
				}
				if !global.json {
					fmt.Fprintf(out, "deleted %s\n", id)
				}
			}
			if global.json {
				if err := writeJSON(out, map[string]any{"deleted": len(args) - failed, "failed": failed}); err != nil {
					return err
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d deletes failed", failed, len(args))
			}
			return nil
		},
	}
}

func newCategoriesCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Show categories with their asset counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, cleanup, err := serviceFactory(cmd.Context(), global)
			if err != nil {
				return err
			}
			defer cleanup()

			categories, err := svc.Categories(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if global.json {
				return writeJSON(out, map[string]any{"data": categories})
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tASSETS")
			for _, c := range categories {
				fmt.Fprintf(w, "%s\t%s\t%d\n", c.ID, c.Name, c.AssetCount)
			}
			return w.Flush()
		},
	}
}

func printAssets(out io.Writer, global *globalOptions, assets []domain.Asset) error {
	if global.json {
		return writeJSON(out, map[string]any{"data": assets, "count": len(assets)})
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCATEGORY\tFEATURED\tSIZE\tNAME\tURL")
	for _, a := range assets {
		fmt.Fprintf(w, "%s\t%s\t%t\t%d\t%s\t%s\n", a.ID, a.Category, a.IsFeatured, a.FileSize, a.OriginalName, a.PublicURL)
	}
	return w.Flush()
}
