// Package tips derives short, actionable photo-improvement tips from a
// caption. The primary path asks the text provider; a deterministic
// keyword-rule fallback guarantees at least one tip when the provider fails.
package tips

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/nkumar09/matchmaximus/internal/provider"
)

// MaxTips caps the number of tips returned for one photo.
const MaxTips = 3

// Instruction is the fixed template for the tip-generation call.
const Instruction = "You are an expert in online dating profiles. Based on the " +
	"photo description you are given, generate 3 short, actionable tips to " +
	"improve the photo for a dating profile. Focus on pose, facial expression, " +
	"outfit, and background. Each tip should be 1 friendly sentence, written in " +
	"the second person. Reply with one tip per line."

// Synthesize returns 0-3 tips for the caption. The enricher path is primary;
// if the call fails the deterministic rule fallback runs instead, so the
// result is never nil and holds at least one tip on the fallback path. Tips
// keep the order they were produced in.
func Synthesize(ctx context.Context, enricher provider.Enricher, caption string) []string {
	raw, err := enricher.Enrich(ctx, Instruction, "Photo Description: "+caption)
	if err != nil {
		log.Warn().Err(err).Msg("Tip generation failed, using rule fallback")
		return Fallback(caption)
	}

	return Parse(raw)
}

// Parse splits an LLM tip response into discrete tips: leading list markers
// stripped, lines shorter than 4 words discarded as headers or boilerplate,
// truncated to MaxTips. An empty result is valid. Only the prefix is trimmed
// so a tip keeps its closing punctuation and any number it ends with.
func Parse(raw string) []string {
	tips := []string{}
	for _, line := range strings.Split(raw, "\n") {
		tip := strings.TrimLeft(strings.TrimSpace(line), "•-*1234567890. \t")
		if tip == "" {
			continue
		}
		if len(strings.Fields(tip)) < 4 {
			continue
		}
		tips = append(tips, tip)
		if len(tips) == MaxTips {
			break
		}
	}
	return tips
}
