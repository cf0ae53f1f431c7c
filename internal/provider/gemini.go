package provider

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/nkumar09/matchmaximus/internal/jsonutil"
)

// Gemini model IDs.
const (
	// ModelGemini25Flash is stable, balanced performance.
	ModelGemini25Flash = "gemini-2.5-flash"

	// ModelGemini25FlashLite is for high-throughput, lowest cost.
	ModelGemini25FlashLite = "gemini-2.5-flash-lite"
)

// DefaultModelName is the default Gemini model to use.
// Can be overridden via the MATCHMAXIMUS_MODEL environment variable.
const DefaultModelName = ModelGemini25Flash

// GetModelName returns the Gemini model to use, resolved from:
//  1. MATCHMAXIMUS_MODEL environment variable (if set)
//  2. Default: gemini-2.5-flash
func GetModelName() string {
	if env := os.Getenv("MATCHMAXIMUS_MODEL"); env != "" {
		return env
	}
	return DefaultModelName
}

const scoringSystemInstruction = `You are a vision-language alignment model. ` +
	`Given one photo and a list of descriptive prompts, estimate how well the photo ` +
	`matches each prompt. Respond with ONLY a JSON array of objects with keys ` +
	`"prompt" and "probability". Probabilities must be non-negative and sum to 1 ` +
	`across all listed prompts. Include every prompt exactly once.`

// Gemini implements AlignmentScorer, Captioner, and Enricher against the
// Gemini API. A single client is safe for concurrent use across pipeline
// workers.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini-backed provider using the given API key.
func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Gemini{client: client, model: GetModelName()}, nil
}

// Score sends the image and prompt list to Gemini and parses the returned
// probability distribution. The result is mapped onto the requested prompt
// order and renormalized so downstream code always sees a proper distribution.
func (g *Gemini) Score(ctx context.Context, img image.Image, prompts []string) ([]PromptScore, error) {
	var sb strings.Builder
	sb.WriteString("Prompts:\n")
	for i, p := range prompts {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, p)
	}

	raw, err := g.generate(ctx, img, sb.String(), scoringSystemInstruction)
	if err != nil {
		return nil, &Error{Op: "score", Err: err}
	}

	type pair struct {
		Prompt      string  `json:"prompt"`
		Probability float64 `json:"probability"`
	}
	pairs, err := jsonutil.Decode[[]pair](raw)
	if err != nil {
		return nil, &Error{Op: "score", Err: fmt.Errorf("alignment response: %w", err)}
	}

	byPrompt := make(map[string]float64, len(pairs))
	for _, p := range pairs {
		if p.Probability > 0 {
			byPrompt[strings.TrimSpace(p.Prompt)] += p.Probability
		}
	}

	dist := make([]PromptScore, len(prompts))
	var sum float64
	for i, p := range prompts {
		dist[i] = PromptScore{Prompt: p, Probability: byPrompt[p]}
		sum += byPrompt[p]
	}
	if sum > 0 {
		for i := range dist {
			dist[i].Probability /= sum
		}
	}

	log.Debug().
		Int("prompts", len(prompts)).
		Int("returned", len(pairs)).
		Msg("Alignment distribution parsed")

	return dist, nil
}

// Caption asks Gemini for a plain one-sentence description of the image.
func (g *Gemini) Caption(ctx context.Context, img image.Image) (string, error) {
	const instruction = "Describe this photo in one plain, factual sentence: the person, " +
		"their expression, outfit, pose, and setting. No preamble, no markdown."

	text, err := g.generate(ctx, img, instruction, "")
	if err != nil {
		return "", &Error{Op: "caption", Err: err}
	}

	caption := strings.TrimSpace(text)
	if caption == "" {
		return "", &Error{Op: "caption", Err: fmt.Errorf("empty caption response")}
	}

	return capitalize(caption), nil
}

// Enrich sends a text-only request combining the instruction and input text.
func (g *Gemini) Enrich(ctx context.Context, instruction, text string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: instruction}},
		},
	}

	contents := []*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: text}}}}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", &Error{Op: "enrich", Err: fmt.Errorf("failed to generate content: %w", err)}
	}
	if resp == nil {
		return "", &Error{Op: "enrich", Err: fmt.Errorf("received empty response from Gemini API")}
	}

	return resp.Text(), nil
}

// generate sends one image plus a text prompt and returns the response text.
func (g *Gemini) generate(ctx context.Context, img image.Image, prompt, system string) (string, error) {
	data, err := encodeJPEG(img)
	if err != nil {
		return "", err
	}

	var config *genai.GenerateContentConfig
	if system != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: system}},
			},
		}
	}

	parts := []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: data}},
		{Text: prompt},
	}

	contents := []*genai.Content{{Role: "user", Parts: parts}}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("received empty response from Gemini API")
	}

	return resp.Text(), nil
}

// encodeJPEG encodes the normalized image for inline upload.
func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
