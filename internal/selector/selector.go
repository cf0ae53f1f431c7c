// Package selector runs the per-image evaluation pipeline across a bounded
// worker pool, isolates per-image failures, and ranks the survivors.
package selector

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nkumar09/matchmaximus/internal/caption"
	"github.com/nkumar09/matchmaximus/internal/imaging"
	"github.com/nkumar09/matchmaximus/internal/provider"
	"github.com/nkumar09/matchmaximus/internal/scoring"
	"github.com/nkumar09/matchmaximus/internal/tips"
)

// Defaults for batch dispatch.
const (
	DefaultMaxImages = 6
	DefaultTopK      = 3
	DefaultWorkers   = 4
	DefaultTimeout   = 2 * time.Minute
)

// Result is the per-image outcome placed in the ranked output list.
type Result struct {
	Filename string   `json:"filename"`
	Score    float64  `json:"score"`
	Caption  string   `json:"caption"`
	Tips     []string `json:"tips"`
}

// Options tunes one batch invocation. Zero values fall back to the defaults.
type Options struct {
	// MaxImages caps how many files are dispatched; extras are dropped
	// before dispatch, not after scoring.
	MaxImages int

	// TopK truncates the ranked result list.
	TopK int

	// Workers bounds the worker pool.
	Workers int

	// Timeout applies per image unit; expiry excludes the unit.
	Timeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxImages <= 0 {
		o.MaxImages = DefaultMaxImages
	}
	if o.TopK <= 0 {
		o.TopK = DefaultTopK
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}

// Selector evaluates candidate photos with the capability providers and the
// configured category weights.
type Selector struct {
	scorer    provider.AlignmentScorer
	captioner provider.Captioner
	enricher  provider.Enricher
	weights   *scoring.Weights
}

// New builds a Selector. The providers must be safe for concurrent use; the
// Gemini client is.
func New(scorer provider.AlignmentScorer, captioner provider.Captioner, enricher provider.Enricher, weights *scoring.Weights) *Selector {
	return &Selector{
		scorer:    scorer,
		captioner: captioner,
		enricher:  enricher,
		weights:   weights,
	}
}

// SelectBest scans dir for candidate images, evaluates up to MaxImages of
// them in parallel, and returns the survivors sorted by score descending,
// truncated to TopK. Equal scores keep their dispatch order (stable sort).
//
// A missing or empty directory yields an empty result, not an error. Failures
// inside one image's unit never escape: the image is logged and excluded.
func (s *Selector) SelectBest(ctx context.Context, dir string, opts Options) ([]Result, error) {
	opts = opts.withDefaults()

	files, err := imaging.ListImages(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn().Str("directory", dir).Msg("Image directory not found")
			return []Result{}, nil
		}
		return nil, err
	}
	if len(files) == 0 {
		log.Warn().Str("directory", dir).Msg("No image files found")
		return []Result{}, nil
	}

	if len(files) > opts.MaxImages {
		log.Info().
			Int("total", len(files)).
			Int("max_images", opts.MaxImages).
			Msg("Capping candidate batch before dispatch")
		files = files[:opts.MaxImages]
	}

	batchID := uuid.NewString()
	log.Info().
		Str("batch_id", batchID).
		Int("candidates", len(files)).
		Int("workers", opts.Workers).
		Msg("Dispatching image evaluation batch")

	// Results are index-addressed so workers never contend; compaction below
	// preserves dispatch order for the stable tie-break.
	results := make([]*Result, len(files))

	var wg sync.WaitGroup
	sem := make(chan struct{}, opts.Workers)

	for i, name := range files {
		wg.Add(1)
		go func(idx int, filename string) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Error().
						Str("batch_id", batchID).
						Str("file", filename).
						Interface("panic", r).
						Msg("Image unit panicked, excluding")
				}
			}()

			sem <- struct{}{}
			defer func() { <-sem }()

			unitCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
			defer cancel()

			res, err := s.processOne(unitCtx, dir, filename)
			if err != nil {
				log.Warn().
					Err(err).
					Str("batch_id", batchID).
					Str("file", filename).
					Msg("Error processing image, excluding from results")
				return
			}
			results[idx] = res
		}(i, name)
	}

	wg.Wait()

	out := make([]Result, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	if len(out) > opts.TopK {
		out = out[:opts.TopK]
	}

	log.Info().
		Str("batch_id", batchID).
		Int("dispatched", len(files)).
		Int("selected", len(out)).
		Msg("Image selection complete")

	return out, nil
}

// processOne runs the full pipeline for one candidate: normalize, score,
// caption/enrich, tips.
func (s *Selector) processOne(ctx context.Context, dir, filename string) (*Result, error) {
	candidate, err := imaging.Normalize(filepath.Join(dir, filename))
	if err != nil {
		return nil, err
	}

	dist, err := s.scorer.Score(ctx, candidate.Image, s.weights.Prompts())
	if err != nil {
		return nil, fmt.Errorf("alignment scoring: %w", err)
	}
	score := s.weights.Aggregate(dist)

	rec, err := caption.Generate(ctx, s.captioner, s.enricher, candidate.Image, imaging.CaptureContext(candidate.Path))
	if err != nil {
		return nil, err
	}

	tipSet := tips.Synthesize(ctx, s.enricher, rec.Enriched)

	log.Debug().
		Str("file", filename).
		Float64("score", score).
		Int("tips", len(tipSet)).
		Msg("Image unit complete")

	return &Result{
		Filename: candidate.Filename,
		Score:    score,
		Caption:  rec.Enriched,
		Tips:     tipSet,
	}, nil
}
