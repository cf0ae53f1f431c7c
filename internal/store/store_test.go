package store

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/nkumar09/matchmaximus/internal/feedback"
	"github.com/nkumar09/matchmaximus/internal/selector"
	"github.com/nkumar09/matchmaximus/internal/session"
)

func writePNG(t *testing.T, dir, name string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 120, B: 210, A: 255})
		}
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func readDocument(t *testing.T, path string) SelectionDocument {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var doc SelectionDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal %s: %v", path, err)
	}
	return doc
}

func TestSaveSelectionWritesRecordAndThumbnails(t *testing.T) {
	imageDir := t.TempDir()
	writePNG(t, imageDir, "first.png")
	writePNG(t, imageDir, "second.png")

	sess := session.New(t.TempDir())
	results := []selector.Result{
		{Filename: "first.png", Score: 87.5, Caption: "caption one", Tips: []string{"tip"}},
		{Filename: "second.png", Score: 60.0, Caption: "caption two", Tips: []string{}},
	}

	path, err := SaveSelection(sess, results, imageDir)
	if err != nil {
		t.Fatalf("SaveSelection() error = %v", err)
	}

	doc := readDocument(t, path)
	if doc.PrimaryImage == nil || *doc.PrimaryImage != "first.png" {
		t.Errorf("primary_image = %v, want first.png", doc.PrimaryImage)
	}
	if len(doc.SelectedImages) != 2 {
		t.Fatalf("selected_images length = %d, want 2", len(doc.SelectedImages))
	}
	if doc.GeneratedAt != sess.Timestamp() {
		t.Errorf("generated_at = %q, want session timestamp %q", doc.GeneratedAt, sess.Timestamp())
	}

	sessionDir, _ := sess.Dir()
	for _, name := range []string{"first.png", "second.png"} {
		thumb := filepath.Join(sessionDir, "thumbs", ThumbPrefix+name)
		if _, err := os.Stat(thumb); err != nil {
			t.Errorf("thumbnail %s not written: %v", thumb, err)
		}
	}
}

func TestSaveSelectionEmptyBatch(t *testing.T) {
	sess := session.New(t.TempDir())

	path, err := SaveSelection(sess, nil, t.TempDir())
	if err != nil {
		t.Fatalf("SaveSelection() error = %v, empty batch must persist a valid record", err)
	}

	doc := readDocument(t, path)
	if doc.PrimaryImage != nil {
		t.Errorf("primary_image = %q, want null", *doc.PrimaryImage)
	}
	if doc.SelectedImages == nil || len(doc.SelectedImages) != 0 {
		t.Errorf("selected_images = %v, want empty array", doc.SelectedImages)
	}

	// No thumbs directory for an empty batch.
	sessionDir, _ := sess.Dir()
	if _, err := os.Stat(filepath.Join(sessionDir, "thumbs")); !os.IsNotExist(err) {
		t.Error("thumbs directory created for empty batch")
	}
}

func TestSaveSelectionThumbnailFailureIsNonFatal(t *testing.T) {
	imageDir := t.TempDir()
	writePNG(t, imageDir, "good.png")
	// "gone.png" is selected but its source file is missing.

	sess := session.New(t.TempDir())
	results := []selector.Result{
		{Filename: "gone.png", Score: 90, Caption: "c", Tips: []string{}},
		{Filename: "good.png", Score: 80, Caption: "c", Tips: []string{}},
	}

	path, err := SaveSelection(sess, results, imageDir)
	if err != nil {
		t.Fatalf("SaveSelection() error = %v, thumbnail failure must not abort persistence", err)
	}

	doc := readDocument(t, path)
	if len(doc.SelectedImages) != 2 {
		t.Errorf("selected_images length = %d, want 2 (JSON unaffected by thumbnail failure)", len(doc.SelectedImages))
	}

	sessionDir, _ := sess.Dir()
	if _, err := os.Stat(filepath.Join(sessionDir, "thumbs", ThumbPrefix+"good.png")); err != nil {
		t.Errorf("sibling thumbnail not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(sessionDir, "thumbs", ThumbPrefix+"gone.png")); !os.IsNotExist(err) {
		t.Error("thumbnail for missing source unexpectedly present")
	}
}

func TestSaveFeedbackSharesSessionDirectory(t *testing.T) {
	sess := session.New(t.TempDir())

	summary := feedback.Summary{
		Platform:               "Tinder",
		Swipes:                 40,
		Matches:                10,
		EngagementScorePercent: 25.0,
		Suggestions:            []string{"a suggestion"},
	}

	path, err := SaveFeedback(sess, summary)
	if err != nil {
		t.Fatalf("SaveFeedback() error = %v", err)
	}
	if filepath.Base(path) != "feedback_"+sess.Timestamp()+".json" {
		t.Errorf("feedback artifact name = %q, want feedback_<timestamp>.json", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got feedback.Summary
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.GeneratedAt != sess.Timestamp() {
		t.Errorf("generated_at = %q, want session timestamp %q", got.GeneratedAt, sess.Timestamp())
	}
	if got.EngagementScorePercent != 25.0 || len(got.Suggestions) != 1 {
		t.Errorf("persisted summary = %+v, want round-tripped analysis", got)
	}

	selPath, err := SaveSelection(sess, nil, t.TempDir())
	if err != nil {
		t.Fatalf("SaveSelection() error = %v", err)
	}
	if filepath.Dir(path) != filepath.Dir(selPath) {
		t.Errorf("artifacts in different directories: %q vs %q", path, selPath)
	}
}

func TestSaveABTestWritesBothVariants(t *testing.T) {
	sess := session.New(t.TempDir())

	a := Variant{Bio: "variant a bio", Photos: []selector.Result{
		{Filename: "x.png", Score: 90, Caption: "c", Tips: []string{}},
		{Filename: "y.png", Score: 80, Caption: "c", Tips: []string{}},
	}}
	b := Variant{Bio: "variant b bio", Photos: []selector.Result{a.Photos[1], a.Photos[0]}}

	path, err := SaveABTest(sess, a, b)
	if err != nil {
		t.Fatalf("SaveABTest() error = %v", err)
	}
	if filepath.Base(path) != "ab_test_"+sess.Timestamp()+".json" {
		t.Errorf("artifact name = %q, want ab_test_<timestamp>.json", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc ABTestDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.GeneratedAt != sess.Timestamp() {
		t.Errorf("generated_at = %q, want session timestamp %q", doc.GeneratedAt, sess.Timestamp())
	}
	if doc.VariantA.Bio != "variant a bio" || doc.VariantB.Bio != "variant b bio" {
		t.Errorf("variant bios = %q / %q, want both preserved", doc.VariantA.Bio, doc.VariantB.Bio)
	}
	if len(doc.VariantB.Photos) != 2 || doc.VariantB.Photos[0].Filename != "y.png" {
		t.Errorf("variant_B photos = %+v, want reversed order preserved", doc.VariantB.Photos)
	}
}

func TestSaveTextSharesSessionDirectory(t *testing.T) {
	sess := session.New(t.TempDir())

	bioPath, err := SaveText(sess, "bio", "a bio")
	if err != nil {
		t.Fatalf("SaveText() error = %v", err)
	}
	selPath, err := SaveSelection(sess, nil, t.TempDir())
	if err != nil {
		t.Fatalf("SaveSelection() error = %v", err)
	}

	if filepath.Dir(bioPath) != filepath.Dir(selPath) {
		t.Errorf("artifacts in different directories: %q vs %q", bioPath, selPath)
	}
}
