// Package feedback analyzes profile performance data: swipes and matches per
// platform, an engagement score, and deterministic improvement suggestions.
// All analysis is pure; loading tolerates missing input files.
package feedback

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/rs/zerolog/log"
)

// Report is the raw performance feedback for one platform.
type Report struct {
	Platform string `json:"platform"`
	Swipes   int    `json:"swipes"`
	Matches  int    `json:"matches"`
}

// Empty reports whether the record carries no data at all.
func (r Report) Empty() bool {
	return r.Platform == "" && r.Swipes == 0 && r.Matches == 0
}

// Metadata holds per-platform benchmark figures.
type Metadata map[string]PlatformStats

// PlatformStats is the benchmark record for one platform.
type PlatformStats struct {
	AverageEngagementRate float64 `json:"average_engagement_rate"`
}

// Summary is the persisted analysis result.
type Summary struct {
	GeneratedAt            string   `json:"generated_at"`
	Platform               string   `json:"platform"`
	Swipes                 int      `json:"swipes"`
	Matches                int      `json:"matches"`
	EngagementScorePercent float64  `json:"engagement_score_percent"`
	Suggestions            []string `json:"suggestions"`
}

// LoadReport reads the performance feedback record. A missing file yields an
// empty report with a warn log; malformed JSON is an error.
func LoadReport(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("path", path).Msg("Feedback file not found")
			return Report{}, nil
		}
		return Report{}, fmt.Errorf("failed to read feedback: %w", err)
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return Report{}, fmt.Errorf("invalid feedback JSON: %w", err)
	}
	return r, nil
}

// LoadMetadata reads the per-platform benchmark file. Missing is tolerated
// the same way as LoadReport.
func LoadMetadata(path string) (Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("path", path).Msg("Platform metadata file not found")
			return Metadata{}, nil
		}
		return nil, fmt.Errorf("failed to read platform metadata: %w", err)
	}

	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid platform metadata JSON: %w", err)
	}
	return m, nil
}

// EngagementScore is matches over swipes as a percentage, rounded to two
// decimals. An empty report scores 0; a report with zero swipes counts them
// as one so the ratio stays defined.
func (r Report) EngagementScore() float64 {
	if r.Empty() {
		return 0
	}
	swipes := r.Swipes
	if swipes == 0 {
		swipes = 1
	}
	score := float64(r.Matches) / float64(swipes) * 100
	return math.Round(score*100) / 100
}

// Analyze produces the full summary for persistence. GeneratedAt is left for
// the store to stamp with the session timestamp.
func Analyze(r Report, m Metadata) Summary {
	return Summary{
		Platform:               platformName(r),
		Swipes:                 r.Swipes,
		Matches:                r.Matches,
		EngagementScorePercent: r.EngagementScore(),
		Suggestions:            suggestions(r, m),
	}
}

func platformName(r Report) string {
	if r.Platform == "" {
		return "unknown"
	}
	return r.Platform
}

// suggestions derives the tiered recommendation list. Deterministic: benchmark
// comparison first when metadata knows the platform, then exactly one tier
// suggestion block.
func suggestions(r Report, m Metadata) []string {
	if r.Empty() {
		return []string{"No feedback data to analyze."}
	}

	score := r.EngagementScore()
	out := []string{}

	if stats, ok := m[r.Platform]; ok && stats.AverageEngagementRate > 0 {
		if score < stats.AverageEngagementRate {
			out = append(out, fmt.Sprintf(
				"You're below %s's average engagement rate (%.1f%%). Try improving your first photo or bio hook.",
				r.Platform, stats.AverageEngagementRate))
		} else {
			out = append(out, fmt.Sprintf(
				"You're performing better than average on %s. Keep it up!", r.Platform))
		}
	}

	switch {
	case score < 10:
		out = append(out,
			"Try using a different primary photo: smiling or candid works best.",
			"Consider shortening your bio or using simpler, playful language.")
	case score < 25:
		out = append(out,
			"Your profile is decent. Try rotating a new photo or tweaking one line in your bio.")
	default:
		out = append(out,
			"Strong engagement! You could test alternate versions just for fun.")
	}

	return out
}
