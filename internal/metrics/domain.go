package metrics

import "fmt"

// Domain names one top-level section of an analysis result
type Domain string

const (
	DomainEngagement  Domain = "engagement_metrics"
	DomainBuyerIntent Domain = "buyer_intent_discovery"
	DomainAdvocates   Domain = "advocate_identification"
	DomainPublishing  Domain = "publishing_recommendations"
	DomainDiagnostics Domain = "diagnostic_metrics"
	DomainSentiment   Domain = "sentiment_analysis"
	DomainVirality    Domain = "virality_score"
)

// Domains lists every domain in dashboard tab order
var Domains = []Domain{
	DomainEngagement,
	DomainBuyerIntent,
	DomainAdvocates,
	DomainPublishing,
	DomainDiagnostics,
	DomainSentiment,
	DomainVirality,
}

var domainTitles = map[Domain]string{
	DomainEngagement:  "Engagement",
	DomainBuyerIntent: "Buyer Intent",
	DomainAdvocates:   "Advocates",
	DomainPublishing:  "Publishing",
	DomainDiagnostics: "Diagnostics",
	DomainSentiment:   "Sentiment",
	DomainVirality:    "Virality",
}

// Title returns the short display name used for tabs and report headings
func (d Domain) Title() string {
	if t, ok := domainTitles[d]; ok {
		return t
	}
	return string(d)
}

// Valid reports whether d is one of the seven known domains
func (d Domain) Valid() bool {
	_, ok := domainTitles[d]
	return ok
}

// ParseDomain accepts either the wire key or the tab slug
// (engagement, buyer-intent, advocates, publishing, diagnostics, sentiment, virality).
func ParseDomain(s string) (Domain, error) {
	if d := Domain(s); d.Valid() {
		return d, nil
	}
	if d, ok := domainSlugs[s]; ok {
		return d, nil
	}
	return "", fmt.Errorf("unknown metric domain %q", s)
}

var domainSlugs = map[string]Domain{
	"engagement":   DomainEngagement,
	"buyer-intent": DomainBuyerIntent,
	"advocates":    DomainAdvocates,
	"publishing":   DomainPublishing,
	"diagnostics":  DomainDiagnostics,
	"sentiment":    DomainSentiment,
	"virality":     DomainVirality,
}
