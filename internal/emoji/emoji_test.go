package emoji

import (
	"testing"

	"github.com/yildizm/scrollmark/internal/metrics"
)

func TestGetEmojiFallback(t *testing.T) {
	defer SetEmojiDisabled(false)

	SetEmojiDisabled(false)
	if got := GetEmoji("success"); got != "✅" {
		t.Errorf("Expected emoji, got %q", got)
	}

	SetEmojiDisabled(true)
	if !IsEmojiDisabled() {
		t.Fatal("Expected emoji to be disabled")
	}
	if got := GetEmoji("success"); got != "[OK]" {
		t.Errorf("Expected fallback, got %q", got)
	}
	if got := GetEmoji("nope"); got != "[?]" {
		t.Errorf("Expected unknown marker, got %q", got)
	}
}

func TestForDomainCoversAllDomains(t *testing.T) {
	defer SetEmojiDisabled(false)
	SetEmojiDisabled(true)

	for _, d := range metrics.Domains {
		if got := ForDomain(d); got == "[?]" {
			t.Errorf("%s has no symbol", d)
		}
	}
}

func TestForTrend(t *testing.T) {
	defer SetEmojiDisabled(false)
	SetEmojiDisabled(true)

	cases := map[string]string{"up": "[+]", "down": "[-]", "": "•"}
	for trend, want := range cases {
		if got := ForTrend(trend); got != want {
			t.Errorf("ForTrend(%q) = %q, want %q", trend, got, want)
		}
	}
}
