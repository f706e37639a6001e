package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/waymarkhq/waymark/internal/extract"
	"github.com/waymarkhq/waymark/pkg/errors"
	"github.com/waymarkhq/waymark/pkg/reconcile"
	"github.com/waymarkhq/waymark/pkg/sites"
	"github.com/waymarkhq/waymark/pkg/trips"
	"github.com/waymarkhq/waymark/pkg/trips/memory"
)

// entityOut is the printable projection of a merged entity.
type entityOut struct {
	ID     string              `yaml:"id"`
	Kind   trips.Kind          `yaml:"kind"`
	Name   string              `yaml:"name"`
	Status reconcile.Status    `yaml:"status,omitempty"`
	Refs   reconcile.RefSet    `yaml:"refs,omitempty"`
	Data   any                 `yaml:"data,omitempty"`
}

func newIngestCommand() *cobra.Command {
	var tripID string

	cmd := &cobra.Command{
		Use:   "ingest <payload.json> [payload.json...]",
		Short: "Apply extraction payloads to a trip and print the merged result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cache := sites.NewCache(sites.NewDocumentSource(os.DirFS("."), cfg.SitesPath))
			service := trips.NewService(memory.New(), cache)

			var (
				merged  []*trips.Entity
				folded  []*sites.Site
				skipped int
			)
			for _, path := range args {
				raw, err := os.ReadFile(path)
				if err != nil {
					return errors.WrapIO("read", path, err)
				}
				env, err := extract.ValidatePayload(raw)
				if err != nil {
					return err
				}

				result, err := service.Apply(ctx, tripID, extract.Decode(ctx, env))
				if err != nil {
					return err
				}
				merged = append(merged, result.Created...)
				merged = append(merged, result.Updated...)
				folded = append(folded, result.Sites...)
				skipped += result.Skipped
			}

			return printApplied(cmd, tripID, merged, folded, skipped)
		},
	}

	cmd.Flags().StringVar(&tripID, "trip", "default", "trip to apply the payloads to")
	return cmd
}

// printApplied renders the outcome of applying one or more bundles as YAML.
func printApplied(cmd *cobra.Command, tripID string, merged []*trips.Entity, folded []*sites.Site, skipped int) error {
	out := struct {
		Trip     string      `yaml:"trip"`
		Entities []entityOut `yaml:"entities"`
		Sites    []string    `yaml:"sites,omitempty"`
		Skipped  int         `yaml:"skipped,omitempty"`
	}{Trip: tripID, Skipped: skipped}

	for _, entity := range merged {
		out.Entities = append(out.Entities, entityOut{
			ID:     entity.ID,
			Kind:   entity.Kind,
			Name:   entity.Name,
			Status: entity.Status,
			Refs:   entity.Refs,
			Data:   entity.Data.ToAny(),
		})
	}
	for _, flat := range sites.FlattenForest(folded) {
		out.Sites = append(out.Sites, flat.Breadcrumb())
	}

	encoded, err := yaml.Marshal(out)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(encoded))
	return nil
}
