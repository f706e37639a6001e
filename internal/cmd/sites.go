package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/waymarkhq/waymark/pkg/errors"
	"github.com/waymarkhq/waymark/pkg/sites"
)

func newSitesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sites",
		Short: "Inspect and merge canonical site hierarchies",
	}
	cmd.AddCommand(newSitesListCommand())
	cmd.AddCommand(newSitesMergeCommand())
	return cmd
}

func newSitesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the canonical hierarchy as breadcrumbs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache := sites.NewCache(sites.NewDocumentSource(os.DirFS("."), cfg.SitesPath))
			forest, err := cache.Forest(cmd.Context())
			if err != nil {
				return err
			}
			for _, flat := range sites.FlattenForest(forest) {
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", flat.Type, flat.Breadcrumb())
			}
			return nil
		},
	}
}

func newSitesMergeCommand() *cobra.Command {
	var country string

	cmd := &cobra.Command{
		Use:   "merge <observed.json>",
		Short: "Preview folding an observed hierarchy into a canonical country",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cache := sites.NewCache(sites.NewDocumentSource(os.DirFS("."), cfg.SitesPath))
			canonical, err := cache.Country(cmd.Context(), country)
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return errors.WrapIO("read", args[0], err)
			}
			var observed []*sites.Site
			if err := json.Unmarshal(raw, &observed); err != nil {
				return errors.WrapParse("json", args[0], err)
			}

			merged := sites.MergeObserved(canonical, observed, country)
			encoded, err := yaml.Marshal(merged)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(encoded))
			return nil
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "canonical country to fold into")
	_ = cmd.MarkFlagRequired("country")
	return cmd
}
