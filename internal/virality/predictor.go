// Package virality scores draft posts. The score is simulated: it is a
// random number in a fixed band and is always presented as such.
package virality

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/yildizm/scrollmark/internal/config"
)

// ErrEmptyContent is returned for blank drafts
var ErrEmptyContent = errors.New("post content is empty")

// Prediction is one simulated score
type Prediction struct {
	Score     int  `json:"score"`
	Simulated bool `json:"simulated"`
}

// Predictor produces simulated virality scores in [Min, Max)
type Predictor struct {
	Delay time.Duration
	Min   int
	Max   int

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a predictor from the virality settings
func New(cfg config.ViralityConfig) *Predictor {
	return NewWithSource(cfg, rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource creates a predictor with a fixed random source
func NewWithSource(cfg config.ViralityConfig, src rand.Source) *Predictor {
	return &Predictor{
		Delay: cfg.Delay,
		Min:   cfg.MinScore,
		Max:   cfg.MaxScore,
		rng:   rand.New(src), // #nosec G404 - cosmetic score, not security sensitive
	}
}

// Predict waits Delay, then returns a score. It returns early with the
// context's error if ctx is cancelled during the wait.
func (p *Predictor) Predict(ctx context.Context, content string) (Prediction, error) {
	if strings.TrimSpace(content) == "" {
		return Prediction{}, ErrEmptyContent
	}

	if p.Delay > 0 {
		timer := time.NewTimer(p.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Prediction{}, ctx.Err()
		case <-timer.C:
		}
	}

	score := p.Min
	if span := p.Max - p.Min; span > 0 {
		p.mu.Lock()
		score += p.rng.Intn(span)
		p.mu.Unlock()
	}

	return Prediction{Score: score, Simulated: true}, nil
}
