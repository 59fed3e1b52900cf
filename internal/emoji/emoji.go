package emoji

import "github.com/yildizm/scrollmark/internal/metrics"

// EmojiMap holds emoji and fallback mappings
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"error":        {"❌", "[ERR]"},
	"warning":      {"⚠️", "[WRN]"},
	"info":         {"ℹ️", "[INF]"},
	"success":      {"✅", "[OK]"},
	"insight":      {"💡", "[INS]"},
	"statistics":   {"📊", "[STATS]"},
	"upload":       {"📁", "[CSV]"},
	"rocket":       {"🚀", "[RUN]"},
	"help":         {"❓", "[?]"},
	"target":       {"🎯", "[>]"},
	"door":         {"🚪", "[EXIT]"},
	"trend_up":     {"📈", "[+]"},
	"trend_down":   {"📉", "[-]"},
	"engagement":   {"💬", "[ENG]"},
	"buyer_intent": {"🛒", "[BUY]"},
	"advocates":    {"🤝", "[ADV]"},
	"publishing":   {"🗓️", "[PUB]"},
	"diagnostics":  {"🩺", "[DIA]"},
	"sentiment":    {"🙂", "[SEN]"},
	"virality":     {"🔥", "[VIR]"},
}

var domainKeys = map[metrics.Domain]string{
	metrics.DomainEngagement:  "engagement",
	metrics.DomainBuyerIntent: "buyer_intent",
	metrics.DomainAdvocates:   "advocates",
	metrics.DomainPublishing:  "publishing",
	metrics.DomainDiagnostics: "diagnostics",
	metrics.DomainSentiment:   "sentiment",
	metrics.DomainVirality:    "virality",
}

var emojiDisabled bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled = disabled
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled {
			return mapping[1] // fallback
		}
		return mapping[0] // emoji
	}
	return "[?]" // unknown key
}

// ForDomain returns the symbol shown next to a panel title
func ForDomain(d metrics.Domain) string {
	return GetEmoji(domainKeys[d])
}

// ForTrend maps an up/down trend marker; anything else is treated as flat
func ForTrend(trend string) string {
	switch trend {
	case "up":
		return GetEmoji("trend_up")
	case "down":
		return GetEmoji("trend_down")
	}
	return "•"
}
