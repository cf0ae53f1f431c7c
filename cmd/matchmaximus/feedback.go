package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nkumar09/matchmaximus/internal/config"
	"github.com/nkumar09/matchmaximus/internal/feedback"
	"github.com/nkumar09/matchmaximus/internal/session"
	"github.com/nkumar09/matchmaximus/internal/store"
)

var feedbackFileFlag string

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Analyze profile performance feedback",
	Long: `Reads swipe and match counts for the profile, computes the engagement
score, prints improvement suggestions, and persists the summary into the
session folder alongside the other run artifacts.`,
	RunE: runFeedback,
}

func init() {
	feedbackCmd.Flags().StringVarP(&feedbackFileFlag, "feedback", "f", "", "Performance feedback JSON file (default: config)")
	rootCmd.AddCommand(feedbackCmd)
}

func runFeedback(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if feedbackFileFlag != "" {
		cfg.FeedbackFile = feedbackFileFlag
	}

	report, err := feedback.LoadReport(cfg.FeedbackFile)
	if err != nil {
		return err
	}
	metadata, err := feedback.LoadMetadata(cfg.MetadataFile)
	if err != nil {
		return err
	}

	summary := feedback.Analyze(report, metadata)
	printFeedback(summary)

	sess := session.New(cfg.OutputDir)
	if _, err := store.SaveFeedback(sess, summary); err != nil {
		return err
	}
	return nil
}

func printFeedback(s feedback.Summary) {
	fmt.Println("\nProfile Feedback Summary")
	fmt.Println("------------------------")
	fmt.Printf("Platform: %s\n", s.Platform)
	fmt.Printf("Total Swipes: %d\n", s.Swipes)
	fmt.Printf("Matches: %d\n", s.Matches)
	fmt.Printf("Engagement Score: %.2f%%\n", s.EngagementScorePercent)
	fmt.Println("\nSuggestions:")
	for _, sug := range s.Suggestions {
		fmt.Printf("- %s\n", sug)
	}
}
