// Package scoring converts raw alignment distributions into a single weighted
// aggregate score using per-category prompt weight tables.
package scoring

// Category groups descriptive prompt phrases under one visual quality, each
// with a positive weight controlling its influence on the aggregate score.
type Category struct {
	Name    string
	Prompts map[string]float64
}

// DefaultCategories is the built-in weight configuration. Operators tune the
// weights to decide which visual qualities matter most without touching the
// alignment model.
func DefaultCategories() []Category {
	return []Category{
		{
			Name: "expression",
			Prompts: map[string]float64{
				"natural smile":                     2,
				"friendly looking person":           1.5,
				"natural and confident expression":  1.5,
				"eye contact with camera":           1,
			},
		},
		{
			Name: "composition",
			Prompts: map[string]float64{
				"clear profile photo":    2,
				"sharp focus face":       1.5,
				"professional headshot":  1,
			},
		},
		{
			Name: "lighting",
			Prompts: map[string]float64{
				"outdoor lighting":     1,
				"indoor soft lighting": 1,
				"bright background":    1,
			},
		},
		{
			Name: "background",
			Prompts: map[string]float64{
				"tidy background": 1,
			},
		},
	}
}
