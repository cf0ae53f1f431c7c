// Package store persists run artifacts into the session directory: the
// versioned photo-selection record with its thumbnails, and the text
// artifacts produced by the bio components. Everything a run writes shares
// one timestamped directory owned by the session.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/nkumar09/matchmaximus/internal/feedback"
	"github.com/nkumar09/matchmaximus/internal/imaging"
	"github.com/nkumar09/matchmaximus/internal/selector"
	"github.com/nkumar09/matchmaximus/internal/session"
)

// ThumbPrefix names persisted thumbnails: thumbs/thumb_<filename>.
const ThumbPrefix = "thumb_"

// PersistenceError reports a failed artifact write. Thumbnail failures are
// per-image and never surface as one; losing the JSON selection record does.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("cannot persist %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// SelectionDocument is the JSON selection record written once per invocation.
type SelectionDocument struct {
	GeneratedAt    string            `json:"generated_at"`
	PrimaryImage   *string           `json:"primary_image"`
	SelectedImages []selector.Result `json:"selected_images"`
}

// SaveSelection writes photos_<timestamp>.json plus one bounded thumbnail per
// selected image under thumbs/. The JSON document is the run's primary
// record: its write failure is returned. Thumbnail failures are logged and
// skipped, never aborting the others.
//
// An empty batch is persisted as a valid record with a null primary image.
func SaveSelection(sess *session.Session, results []selector.Result, imageDir string) (string, error) {
	dir, err := sess.Dir()
	if err != nil {
		return "", &PersistenceError{Path: "session directory", Err: err}
	}

	doc := SelectionDocument{
		GeneratedAt:    sess.Timestamp(),
		SelectedImages: results,
	}
	if doc.SelectedImages == nil {
		doc.SelectedImages = []selector.Result{}
	}
	if len(results) > 0 {
		doc.PrimaryImage = &results[0].Filename
	}

	path := filepath.Join(dir, fmt.Sprintf("photos_%s.json", sess.Timestamp()))
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", &PersistenceError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", &PersistenceError{Path: path, Err: err}
	}

	log.Info().
		Str("path", path).
		Int("selected", len(results)).
		Msg("Image selection saved")

	saveThumbnails(dir, results, imageDir)

	return path, nil
}

// saveThumbnails writes thumbs/thumb_<filename> for every selected image.
// Each failure is scoped to its own image.
func saveThumbnails(sessionDir string, results []selector.Result, imageDir string) {
	if len(results) == 0 {
		return
	}

	thumbsDir := filepath.Join(sessionDir, "thumbs")
	if err := os.MkdirAll(thumbsDir, 0o755); err != nil {
		log.Error().Err(err).Str("dir", thumbsDir).Msg("Cannot create thumbs directory, skipping thumbnails")
		return
	}

	for _, r := range results {
		if err := writeThumbnail(thumbsDir, imageDir, r.Filename); err != nil {
			log.Warn().Err(err).Str("file", r.Filename).Msg("Thumbnail failure, skipping")
		}
	}
}

func writeThumbnail(thumbsDir, imageDir, filename string) error {
	candidate, err := imaging.Normalize(filepath.Join(imageDir, filename))
	if err != nil {
		return err
	}

	dst := filepath.Join(thumbsDir, ThumbPrefix+filename)
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create thumbnail file: %w", err)
	}
	defer f.Close()

	thumb := imaging.Thumbnail(candidate.Image)
	if err := imaging.EncodeThumbnail(f, thumb, filename); err != nil {
		os.Remove(dst)
		return err
	}

	log.Debug().Str("path", dst).Msg("Thumbnail saved")
	return nil
}

// Variant is one arm of an A/B comparison: a bio plus its photo ranking.
type Variant struct {
	Bio    string            `json:"bio"`
	Photos []selector.Result `json:"photos"`
}

// ABTestDocument pairs the two generated profile variants.
type ABTestDocument struct {
	GeneratedAt string  `json:"generated_at"`
	VariantA    Variant `json:"variant_A"`
	VariantB    Variant `json:"variant_B"`
}

// SaveABTest writes ab_test_<timestamp>.json into the shared session
// directory.
func SaveABTest(sess *session.Session, variantA, variantB Variant) (string, error) {
	doc := ABTestDocument{
		GeneratedAt: sess.Timestamp(),
		VariantA:    variantA,
		VariantB:    variantB,
	}
	return saveJSON(sess, fmt.Sprintf("ab_test_%s.json", sess.Timestamp()), doc)
}

// SaveFeedback writes feedback_<timestamp>.json into the shared session
// directory, stamping the summary with the session timestamp.
func SaveFeedback(sess *session.Session, summary feedback.Summary) (string, error) {
	summary.GeneratedAt = sess.Timestamp()
	return saveJSON(sess, fmt.Sprintf("feedback_%s.json", sess.Timestamp()), summary)
}

func saveJSON(sess *session.Session, filename string, doc any) (string, error) {
	dir, err := sess.Dir()
	if err != nil {
		return "", &PersistenceError{Path: "session directory", Err: err}
	}

	path := filepath.Join(dir, filename)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", &PersistenceError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", &PersistenceError{Path: path, Err: err}
	}

	log.Info().Str("path", path).Msg("Artifact saved")
	return path, nil
}

// SaveText persists a text artifact (bio, tone-adjusted bio, platform bio)
// into the shared session directory as <kind>_<timestamp>.txt.
func SaveText(sess *session.Session, kind, text string) (string, error) {
	dir, err := sess.Dir()
	if err != nil {
		return "", &PersistenceError{Path: "session directory", Err: err}
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", kind, sess.Timestamp()))
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", &PersistenceError{Path: path, Err: err}
	}

	log.Info().Str("path", path).Str("kind", kind).Msg("Artifact saved")
	return path, nil
}
