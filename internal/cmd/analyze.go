package cmd

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/waymarkhq/waymark/internal/extract"
	"github.com/waymarkhq/waymark/pkg/errors"
	"github.com/waymarkhq/waymark/pkg/sites"
	"github.com/waymarkhq/waymark/pkg/trips"
	"github.com/waymarkhq/waymark/pkg/trips/memory"
)

func newAnalyzeCommand() *cobra.Command {
	var tripID string

	cmd := &cobra.Command{
		Use:   "analyze <text-file>",
		Short: "Extract trip facts from free text with Gemini and apply them",
		Long: `Analyze runs a text document through the extraction model, then applies
the resulting facts to the trip exactly as an ingested payload would be.
Requires GOOGLE_API_KEY.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return errors.WrapIO("read", args[0], err)
			}

			analyzer := extract.NewAnalyzer(cfg.GeminiAPIKey, cfg.GeminiModel, nil, nil)
			analysis, err := analyzer.AnalyzeText(ctx, string(raw))
			if err != nil {
				return err
			}

			// The model's output is an analysis blob without an envelope, so
			// one is synthesized here. It goes through the same decode path
			// as webhook payloads.
			env := &extract.Envelope{
				InputType:        "manual",
				RecommendationID: uuid.NewString(),
				Timestamp:        time.Now().UTC().Format(time.RFC3339),
				Analysis:         analysis,
			}

			cache := sites.NewCache(sites.NewDocumentSource(os.DirFS("."), cfg.SitesPath))
			service := trips.NewService(memory.New(), cache)

			result, err := service.Apply(ctx, tripID, extract.Decode(ctx, env))
			if err != nil {
				return err
			}

			merged := append(result.Created, result.Updated...)
			return printApplied(cmd, tripID, merged, result.Sites, result.Skipped)
		},
	}

	cmd.Flags().StringVar(&tripID, "trip", "default", "trip to apply the extracted facts to")
	return cmd
}
