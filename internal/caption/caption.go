// Package caption implements the two-stage caption pipeline: a base caption
// from the vision provider, enriched for dating-profile use by the text
// provider, with the base caption as the fallback of record.
package caption

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/nkumar09/matchmaximus/internal/provider"
)

// EnrichInstruction is the fixed template for the enrichment stage.
const EnrichInstruction = "You are an expert dating profile assistant. " +
	"Given a plain, brief image description, rewrite it into a detailed, " +
	"human-like sentence for a dating app. Mention the person's outfit, " +
	"expression, vibe, and setting if possible. Reply with the rich caption only."

// Record holds both stages of a candidate's caption. Enriched equals Base
// when enrichment fell back.
type Record struct {
	Base     string
	Enriched string
}

// Generate produces the caption of record for one normalized image.
//
// A captioner failure fails the whole image unit: the error propagates so the
// dispatcher excludes the candidate. An enricher failure is recoverable: the
// base caption is used unchanged and the unit continues.
func Generate(ctx context.Context, captioner provider.Captioner, enricher provider.Enricher, img image.Image, captureContext string) (Record, error) {
	base, err := captioner.Caption(ctx, img)
	if err != nil {
		return Record{}, fmt.Errorf("caption stage: %w", err)
	}

	text := fmt.Sprintf("Description: %q", base)
	if captureContext != "" {
		text += fmt.Sprintf(" (%s)", captureContext)
	}

	enriched, err := enricher.Enrich(ctx, EnrichInstruction, text)
	if err != nil {
		log.Warn().Err(err).Msg("Caption enrichment failed, using base caption")
		return Record{Base: base, Enriched: base}, nil
	}

	enriched = cleanCaption(enriched)
	if enriched == "" {
		return Record{Base: base, Enriched: base}, nil
	}

	return Record{Base: base, Enriched: enriched}, nil
}

// cleanCaption strips quotation characters and surrounding whitespace from
// the enriched text.
func cleanCaption(s string) string {
	s = strings.NewReplacer(`"`, "", "“", "", "”", "").Replace(s)
	return strings.TrimSpace(s)
}
