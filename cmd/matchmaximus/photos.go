package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nkumar09/matchmaximus/internal/config"
	"github.com/nkumar09/matchmaximus/internal/provider"
	"github.com/nkumar09/matchmaximus/internal/scoring"
	"github.com/nkumar09/matchmaximus/internal/selector"
	"github.com/nkumar09/matchmaximus/internal/session"
	"github.com/nkumar09/matchmaximus/internal/store"
)

var (
	photosDirFlag     string
	photosMaxFlag     int
	photosTopKFlag    int
	photosWorkersFlag int
	photosTimeoutFlag time.Duration
)

var photosCmd = &cobra.Command{
	Use:   "photos",
	Short: "Evaluate and select the best candidate photos",
	Long: `Scores every supported image in the candidate directory against the
configured visual criteria, captions it, derives improvement tips, and
persists the ranked selection with thumbnails into a session folder.`,
	RunE: runPhotos,
}

func init() {
	photosCmd.Flags().StringVarP(&photosDirFlag, "directory", "d", "", "Directory containing candidate photos (default: config)")
	photosCmd.Flags().IntVar(&photosMaxFlag, "max-images", 0, "Maximum candidates to evaluate (default: config)")
	photosCmd.Flags().IntVarP(&photosTopKFlag, "top-k", "k", 0, "How many photos to select (default: config)")
	photosCmd.Flags().IntVar(&photosWorkersFlag, "workers", 0, "Worker pool size (default: config)")
	photosCmd.Flags().DurationVar(&photosTimeoutFlag, "timeout", 0, "Per-image timeout (default: config)")
	rootCmd.AddCommand(photosCmd)
}

func runPhotos(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyPhotoFlags(cfg)
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}

	ctx := context.Background()
	gemini, err := provider.NewGemini(ctx, cfg.APIKey)
	if err != nil {
		return err
	}

	sess := session.New(cfg.OutputDir)
	results, err := selectPhotos(ctx, gemini, cfg)
	if err != nil {
		return err
	}

	printSelection(results)

	if _, err := store.SaveSelection(sess, results, cfg.ImageDir); err != nil {
		return err
	}
	return nil
}

func applyPhotoFlags(cfg *config.Config) {
	if photosDirFlag != "" {
		cfg.ImageDir = photosDirFlag
	}
	if photosMaxFlag > 0 {
		cfg.MaxImages = photosMaxFlag
	}
	if photosTopKFlag > 0 {
		cfg.TopK = photosTopKFlag
	}
	if photosWorkersFlag > 0 {
		cfg.Workers = photosWorkersFlag
	}
	if photosTimeoutFlag > 0 {
		cfg.Timeout = photosTimeoutFlag
	}
}

func selectPhotos(ctx context.Context, gemini *provider.Gemini, cfg *config.Config) ([]selector.Result, error) {
	weights, err := scoring.NewWeights(scoring.DefaultCategories())
	if err != nil {
		return nil, err
	}

	sel := selector.New(gemini, gemini, gemini, weights)
	return sel.SelectBest(ctx, cfg.ImageDir, selector.Options{
		MaxImages: cfg.MaxImages,
		TopK:      cfg.TopK,
		Workers:   cfg.Workers,
		Timeout:   cfg.Timeout,
	})
}

func printSelection(results []selector.Result) {
	if len(results) == 0 {
		log.Warn().Msg("No suitable images found")
		return
	}

	fmt.Println("\nTop selected images:")
	for _, r := range results {
		fmt.Printf("%s -> score %.1f\n", r.Filename, r.Score)
		fmt.Printf("   %s\n", r.Caption)
		for _, tip := range r.Tips {
			fmt.Printf("   tip: %s\n", tip)
		}
	}
}
