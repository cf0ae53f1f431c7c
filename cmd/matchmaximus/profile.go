package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nkumar09/matchmaximus/internal/bio"
	"github.com/nkumar09/matchmaximus/internal/config"
	"github.com/nkumar09/matchmaximus/internal/provider"
	"github.com/nkumar09/matchmaximus/internal/session"
	"github.com/nkumar09/matchmaximus/internal/store"
)

var profileFileFlag string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Run the full profile generation workflow",
	Long: `Generates a dating bio from the user profile, adjusts its tone,
optimizes it for the target platform, then runs photo selection. All
artifacts from the run share one session folder.`,
	RunE: runProfile,
}

func init() {
	profileCmd.Flags().StringVarP(&profileFileFlag, "profile", "p", "", "User profile JSON file (default: config)")
	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if profileFileFlag != "" {
		cfg.ProfileFile = profileFileFlag
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

	log.Info().Str("name", profile.Name).Msg("Generating dating bio")
	draft, err := bio.Generate(ctx, gemini, profile)
	if err != nil {
		return fmt.Errorf("bio generation: %w", err)
	}
	if _, err := store.SaveText(sess, "bio", draft); err != nil {
		return err
	}

	toned, err := bio.AdjustTone(ctx, gemini, draft, profile.PreferredTone)
	if err != nil {
		return err
	}
	if _, err := store.SaveText(sess, "tone", toned); err != nil {
		return err
	}

	final, err := bio.OptimizeForPlatform(ctx, gemini, toned, profile)
	if err != nil {
		return err
	}
	if _, err := store.SaveText(sess, "platform", final); err != nil {
		return err
	}

	fmt.Println("\nFinal bio:")
	fmt.Println(final)

	log.Info().Msg("Running photo selection")
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
