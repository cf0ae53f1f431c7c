// Package bio is thin glue over the text provider: bio writing, tone
// adjustment, and platform-length optimization. No pipeline logic lives here;
// each function formats one prompt and returns the provider's text.
package bio

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/nkumar09/matchmaximus/internal/provider"
)

// Profile is the user record the bio prompts are built from.
type Profile struct {
	Name          string   `json:"name"`
	Age           int      `json:"age"`
	Location      string   `json:"location"`
	Interests     []string `json:"interests"`
	Traits        []string `json:"personality_traits"`
	Goal          string   `json:"goal"`
	PreferredTone string   `json:"preferred_tone"`
	Platform      string   `json:"platform"`
	MaxBioLength  int      `json:"max_bio_length"`
}

// LoadProfile reads the user-profile JSON record.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("invalid profile JSON: %w", err)
	}

	if p.PreferredTone == "" {
		p.PreferredTone = "casual"
	}
	if p.Platform == "" {
		p.Platform = "Tinder"
	}
	if p.MaxBioLength <= 0 {
		p.MaxBioLength = 500
	}

	return &p, nil
}

// Generate writes a first-draft dating bio for the profile.
func Generate(ctx context.Context, enricher provider.Enricher, p *Profile) (string, error) {
	prompt := fmt.Sprintf(
		"Write a dating profile bio for %s, a %d-year-old from %s. "+
			"The bio should reflect these traits: %s, mention interests like %s, "+
			"and align with the goal: '%s'. Keep the tone %s, and format it as a "+
			"short, engaging paragraph under %d characters.",
		p.Name, p.Age, p.Location,
		strings.Join(p.Traits, ", "), strings.Join(p.Interests, ", "),
		p.Goal, p.PreferredTone, p.MaxBioLength,
	)

	text, err := enricher.Enrich(ctx, "You are an expert at writing attractive dating bios.", prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// AdjustTone rewrites the bio to match the preferred tone.
func AdjustTone(ctx context.Context, enricher provider.Enricher, bioText, tone string) (string, error) {
	prompt := fmt.Sprintf(
		"You are rewriting a short dating profile bio to match a %s tone. "+
			"Write like a real person, not a professional writer. Avoid fancy words "+
			"or trying too hard. Here's the original bio:\n\n%q\n\n"+
			"Rewrite it to sound more human, keeping the meaning intact.",
		tone, bioText,
	)

	text, err := enricher.Enrich(ctx, "You're just a regular person helping a friend improve their dating bio.", prompt)
	if err != nil {
		log.Warn().Err(err).Msg("Tone adjustment failed, keeping original bio")
		return bioText, nil
	}
	return strings.TrimSpace(text), nil
}

// OptimizeForPlatform trims the bio to the platform's character budget.
func OptimizeForPlatform(ctx context.Context, enricher provider.Enricher, bioText string, p *Profile) (string, error) {
	prompt := fmt.Sprintf(
		"You're helping someone get better matches on %s. Take this dating bio and "+
			"make sure it fits within %d characters. Keep it friendly, relaxed, and "+
			"like something a real person would write. Only make small edits if "+
			"needed. No emojis unless already present.\n\nBio:\n%q",
		p.Platform, p.MaxBioLength, bioText,
	)

	system := fmt.Sprintf("You are optimizing bios for %s's algorithm and character limits.", p.Platform)
	text, err := enricher.Enrich(ctx, system, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("Platform optimization failed, keeping previous bio")
		return bioText, nil
	}
	return strings.TrimSpace(text), nil
}
