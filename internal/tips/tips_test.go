package tips

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

type fakeEnricher struct {
	response string
	err      error
}

func (f *fakeEnricher) Enrich(ctx context.Context, instruction, text string) (string, error) {
	return f.response, f.err
}

func TestParseStripsMarkersAndFiltersShortLines(t *testing.T) {
	raw := strings.Join([]string{
		"Tips:",
		"1. Try a warmer smile to look more approachable.",
		"- Wear a jacket that contrasts with the background.",
		"• Step into softer natural light for your next shot.",
	}, "\n")

	got := Parse(raw)
	want := []string{
		"Try a warmer smile to look more approachable.",
		"Wear a jacket that contrasts with the background.",
		"Step into softer natural light for your next shot.",
	}

	if len(got) != len(want) {
		t.Fatalf("Parse() returned %d tips, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Parse()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseTrimsPrefixOnly(t *testing.T) {
	// Marker stripping must not eat a tip's closing punctuation or a number
	// it happens to end with.
	tests := []struct {
		raw  string
		want string
	}{
		{"1. Try a warmer smile to look more approachable.", "Try a warmer smile to look more approachable."},
		{"2. Keep the camera at eye level, around 45", "Keep the camera at eye level, around 45"},
		{"  - Hold the phone at arm's length, about 30 cm.", "Hold the phone at arm's length, about 30 cm."},
	}

	for _, tt := range tests {
		got := Parse(tt.raw)
		if len(got) != 1 || got[0] != tt.want {
			t.Errorf("Parse(%q) = %v, want [%q]", tt.raw, got, tt.want)
		}
	}
}

func TestParseTruncatesToThree(t *testing.T) {
	var lines []string
	for i := 0; i < 6; i++ {
		lines = append(lines, fmt.Sprintf("%d. This is a sufficiently long tip number %d.", i+1, i+1))
	}

	got := Parse(strings.Join(lines, "\n"))
	if len(got) != MaxTips {
		t.Errorf("Parse() returned %d tips, want %d", len(got), MaxTips)
	}
}

func TestParseEmptyResponse(t *testing.T) {
	if got := Parse(""); len(got) != 0 {
		t.Errorf("Parse(\"\") = %v, want empty", got)
	}
	if got := Parse("Tips:\nOK\nShort one"); len(got) != 0 {
		t.Errorf("Parse(headers only) = %v, want empty", got)
	}
}

func TestSynthesizeUsesFallbackOnProviderFailure(t *testing.T) {
	enricher := &fakeEnricher{err: fmt.Errorf("quota exceeded")}

	got := Synthesize(context.Background(), enricher, "a man with a natural smile in a park")
	if len(got) == 0 {
		t.Fatal("Synthesize() returned no tips on provider failure, fallback must be total")
	}
}

func TestSynthesizeDoesNotFallBackOnShortResult(t *testing.T) {
	// A successful call returning fewer than 3 tips is not a fallback trigger.
	enricher := &fakeEnricher{response: "1. Try a warmer smile to look more approachable."}

	got := Synthesize(context.Background(), enricher, "a man smiling near a brick wall")
	if len(got) != 1 {
		t.Fatalf("Synthesize() = %v, want exactly the single parsed tip", got)
	}
}

func TestFallbackTotality(t *testing.T) {
	captions := []string{
		"",
		"completely unrelated text about quantum physics",
		"a person with a natural smile wearing a hoodie in a park",
	}

	for _, c := range captions {
		got := Fallback(c)
		if len(got) < 1 {
			t.Errorf("Fallback(%q) returned no tips, want at least one", c)
		}
		if len(got) > MaxTips {
			t.Errorf("Fallback(%q) returned %d tips, want at most %d", c, len(got), MaxTips)
		}
	}
}

func TestFallbackGenericWhenNoRuleMatches(t *testing.T) {
	got := Fallback("zzz")
	if len(got) != 1 || got[0] != genericTip {
		t.Errorf("Fallback() = %v, want only the generic tip", got)
	}
}

func TestFallbackExpressionRulesMutuallyExclusive(t *testing.T) {
	// "smile" wins over "serious" when both appear; only one expression tip.
	got := Fallback("a serious person breaking into a smile")

	var expressionTips int
	for _, tip := range got {
		if strings.Contains(tip, "smile") || strings.Contains(tip, "welcoming") {
			expressionTips++
		}
	}
	if expressionTips != 1 {
		t.Errorf("Fallback() produced %d expression tips, want 1: %v", expressionTips, got)
	}
}

func TestFallbackPreservesRuleOrder(t *testing.T) {
	got := Fallback("smiling in jeans against a city skyline")
	want := []string{
		"Your smile creates instant warmth — let this be your primary photo.",
		"Casual outfit is relatable — include one polished look for variety.",
		"Urban backdrop projects confidence — try a candid walking shot for energy.",
	}

	if len(got) != len(want) {
		t.Fatalf("Fallback() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Fallback()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
