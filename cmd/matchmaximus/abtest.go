package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nkumar09/matchmaximus/internal/bio"
	"github.com/nkumar09/matchmaximus/internal/config"
	"github.com/nkumar09/matchmaximus/internal/provider"
	"github.com/nkumar09/matchmaximus/internal/selector"
	"github.com/nkumar09/matchmaximus/internal/session"
	"github.com/nkumar09/matchmaximus/internal/store"
)

var abtestProfileFlag string

var abtestCmd = &cobra.Command{
	Use:   "abtest",
	Short: "Generate two profile variants for A/B comparison",
	Long: `Runs the bio chain twice to produce two independent variants, pairs
each with the photo selection (variant B in reversed order), and persists
both as one A/B test record in the session folder.`,
	RunE: runABTest,
}

func init() {
	abtestCmd.Flags().StringVarP(&abtestProfileFlag, "profile", "p", "", "User profile JSON file (default: config)")
	rootCmd.AddCommand(abtestCmd)
}

func runABTest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if abtestProfileFlag != "" {
		cfg.ProfileFile = abtestProfileFlag
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}

	profile, err := bio.LoadProfile(cfg.ProfileFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	gemini, err := provider.NewGemini(ctx, cfg.APIKey)
	if err != nil {
		return err
	}

	sess := session.New(cfg.OutputDir)

	// One photo selection serves both arms; the generative bio chain is the
	// source of variation, variant B additionally reverses the photo order.
	photos, err := selectPhotos(ctx, gemini, cfg)
	if err != nil {
		return err
	}

	variants := make([]store.Variant, 2)
	for i := range variants {
		log.Info().Str("variant", variantName(i)).Msg("Generating profile variant")

		text, err := generateBioChain(ctx, gemini, profile)
		if err != nil {
			return fmt.Errorf("variant %s: %w", variantName(i), err)
		}
		variants[i] = store.Variant{Bio: text, Photos: photos}
	}
	variants[1].Photos = reverseResults(photos)

	path, err := store.SaveABTest(sess, variants[0], variants[1])
	if err != nil {
		return err
	}

	fmt.Printf("\nA/B test profiles saved to %s\n", path)
	return nil
}

// generateBioChain runs bio -> tone -> platform for one variant.
func generateBioChain(ctx context.Context, gemini *provider.Gemini, profile *bio.Profile) (string, error) {
	draft, err := bio.Generate(ctx, gemini, profile)
	if err != nil {
		return "", err
	}
	toned, err := bio.AdjustTone(ctx, gemini, draft, profile.PreferredTone)
	if err != nil {
		return "", err
	}
	return bio.OptimizeForPlatform(ctx, gemini, toned, profile)
}

func variantName(i int) string {
	if i == 0 {
		return "A"
	}
	return "B"
}

func reverseResults(results []selector.Result) []selector.Result {
	out := make([]selector.Result, len(results))
	for i, r := range results {
		out[len(results)-1-i] = r
	}
	return out
}
