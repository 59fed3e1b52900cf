package metrics

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Result is a complete analysis response. It is only ever built by Decode,
// so a non-nil *Result always carries all seven domains.
type Result struct {
	Engagement  *Engagement  `json:"engagement_metrics"`
	BuyerIntent *BuyerIntent `json:"buyer_intent_discovery"`
	Advocates   *Advocates   `json:"advocate_identification"`
	Publishing  *Publishing  `json:"publishing_recommendations"`
	Diagnostics *Diagnostics `json:"diagnostic_metrics"`
	Sentiment   *Sentiment   `json:"sentiment_analysis"`
	Virality    *Virality    `json:"virality_score"`

	raw     json.RawMessage
	domains map[Domain]json.RawMessage
}

// ErrIncomplete reports a response that parsed but lacks one or more domains
var ErrIncomplete = errors.New("analysis result is incomplete")

// MissingDomainsError lists the absent sections
type MissingDomainsError struct {
	Missing []Domain
}

func (e *MissingDomainsError) Error() string {
	names := make([]string, len(e.Missing))
	for i, d := range e.Missing {
		names[i] = string(d)
	}
	return fmt.Sprintf("%s: missing %s", ErrIncomplete, strings.Join(names, ", "))
}

func (e *MissingDomainsError) Unwrap() error { return ErrIncomplete }

// Decode parses and validates a response body
func Decode(data []byte) (*Result, error) {
	var sections map[Domain]json.RawMessage
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("decode analysis result: %w", err)
	}

	var missing []Domain
	for _, d := range Domains {
		raw, ok := sections[d]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			missing = append(missing, d)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingDomainsError{Missing: missing}
	}

	r := &Result{
		raw:     append(json.RawMessage(nil), data...),
		domains: make(map[Domain]json.RawMessage, len(Domains)),
	}
	for _, d := range Domains {
		if err := json.Unmarshal(sections[d], r.target(d)); err != nil {
			return nil, fmt.Errorf("decode %s: %w", d, err)
		}
		r.domains[d] = sections[d]
	}
	return r, nil
}

// target returns the field a domain decodes into
func (r *Result) target(d Domain) any {
	switch d {
	case DomainEngagement:
		r.Engagement = &Engagement{}
		return r.Engagement
	case DomainBuyerIntent:
		r.BuyerIntent = &BuyerIntent{}
		return r.BuyerIntent
	case DomainAdvocates:
		r.Advocates = &Advocates{}
		return r.Advocates
	case DomainPublishing:
		r.Publishing = &Publishing{}
		return r.Publishing
	case DomainDiagnostics:
		r.Diagnostics = &Diagnostics{}
		return r.Diagnostics
	case DomainSentiment:
		r.Sentiment = &Sentiment{}
		return r.Sentiment
	case DomainVirality:
		r.Virality = &Virality{}
		return r.Virality
	}
	return nil
}

// Raw returns the response body exactly as received
func (r *Result) Raw() json.RawMessage {
	return r.raw
}

// DomainJSON returns one section exactly as received
func (r *Result) DomainJSON(d Domain) (json.RawMessage, bool) {
	raw, ok := r.domains[d]
	return raw, ok
}
