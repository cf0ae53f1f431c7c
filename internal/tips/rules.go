package tips

import "strings"

// rule maps caption keywords to one tip. Rules in the same group are mutually
// exclusive: only the first match in a group fires.
type rule struct {
	group    string
	keywords []string
	tip      string
}

// fallbackRules is evaluated top to bottom over the lower-cased caption.
// Ordering is part of the contract: tips come out in rule order.
var fallbackRules = []rule{
	{
		group:    "expression",
		keywords: []string{"smile"},
		tip:      "Your smile creates instant warmth — let this be your primary photo.",
	},
	{
		group:    "expression",
		keywords: []string{"neutral", "serious"},
		tip:      "Consider a gentle smile to make the profile feel more welcoming.",
	},
	{
		keywords: []string{"t-shirt", "jeans", "hoodie", "shorts"},
		tip:      "Casual outfit is relatable — include one polished look for variety.",
	},
	{
		keywords: []string{"shirt", "jacket", "coat", "blazer"},
		tip:      "Sharp outfit adds sophistication — great for first impression.",
	},
	{
		keywords: []string{"park", "tree", "greenery", "sunlight", "balcony"},
		tip:      "Natural settings radiate trust — maintain soft, even lighting like this.",
	},
	{
		keywords: []string{"city", "street", "building", "crosswalk"},
		tip:      "Urban backdrop projects confidence — try a candid walking shot for energy.",
	},
	{
		keywords: []string{"hands in pocket", "relaxed posture"},
		tip:      "Relaxed stance works — experiment with visible hand gestures for openness.",
	},
	{
		keywords: []string{"wall", "plain background"},
		tip:      "Neutral background keeps focus on you — try textured walls for depth.",
	},
	{
		keywords: []string{"plants", "potted plants"},
		tip:      "Plants add freshness — ensure they don't distract from your face.",
	},
}

// genericTip is the default when no rule matches. The fallback is total.
const genericTip = "Solid photo! Ensure you're well-lit, expressive, and the clear focal point."

// Fallback derives tips from the caption with the keyword rule table. It
// always returns at least one tip and never fails, for any caption including
// the empty string.
func Fallback(caption string) []string {
	c := strings.ToLower(caption)

	var tips []string
	matched := map[string]bool{}
	for _, r := range fallbackRules {
		if r.group != "" && matched[r.group] {
			continue
		}
		for _, kw := range r.keywords {
			if strings.Contains(c, kw) {
				tips = append(tips, r.tip)
				if r.group != "" {
					matched[r.group] = true
				}
				break
			}
		}
	}

	if len(tips) == 0 {
		return []string{genericTip}
	}
	if len(tips) > MaxTips {
		tips = tips[:MaxTips]
	}
	return tips
}
