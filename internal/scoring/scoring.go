package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/nkumar09/matchmaximus/internal/provider"
)

// entry is one category membership of a prompt.
type entry struct {
	category string
	weight   float64
}

type options struct {
	strict bool
}

// Option configures weight-table construction.
type Option func(*options)

// Strict rejects configurations where a prompt appears in more than one
// category. The default is permissive: every matching category weight is
// summed into the aggregate, which makes overlapping prompts count more.
func Strict() Option {
	return func(o *options) { o.strict = true }
}

// Weights is the prompt-to-weight index built once at pipeline construction.
// Lookups are O(1) per prompt; overlap behavior is explicit rather than an
// accident of iteration order.
type Weights struct {
	index   map[string][]entry
	prompts []string
}

// NewWeights builds the lookup index from category tables.
func NewWeights(categories []Category, opts ...Option) (*Weights, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	w := &Weights{index: make(map[string][]entry)}
	for _, cat := range categories {
		for prompt, weight := range cat.Prompts {
			if weight <= 0 {
				return nil, fmt.Errorf("category %q: prompt %q has non-positive weight %v", cat.Name, prompt, weight)
			}
			if o.strict && len(w.index[prompt]) > 0 {
				return nil, fmt.Errorf("prompt %q appears in categories %q and %q", prompt, w.index[prompt][0].category, cat.Name)
			}
			w.index[prompt] = append(w.index[prompt], entry{category: cat.Name, weight: weight})
		}
	}

	for prompt := range w.index {
		w.prompts = append(w.prompts, prompt)
	}
	sort.Strings(w.prompts)

	return w, nil
}

// Prompts returns the full prompt set to feed the alignment scorer, in a
// deterministic order.
func (w *Weights) Prompts() []string {
	out := make([]string, len(w.prompts))
	copy(out, w.prompts)
	return out
}

// Aggregate reduces an alignment distribution to one scalar in [0, 100].
//
// For every (prompt, probability) pair, every category weight containing the
// prompt contributes probability*weight to the total and weight to the weight
// sum; the score is the weighted mean scaled to a percentage and rounded to
// one decimal. Prompts absent from all tables contribute nothing. A zero
// weight sum yields 0.0, not an error.
func (w *Weights) Aggregate(dist []provider.PromptScore) float64 {
	var total, weightSum float64
	for _, ps := range dist {
		for _, e := range w.index[ps.Prompt] {
			total += ps.Probability * e.weight
			weightSum += e.weight
		}
	}

	if weightSum <= 0 {
		return 0.0
	}

	return math.Round(total/weightSum*100*10) / 10
}
