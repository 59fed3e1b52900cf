package virality

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/yildizm/scrollmark/internal/config"
)

func TestPredictRange(t *testing.T) {
	p := NewWithSource(config.ViralityConfig{MinScore: 60, MaxScore: 100}, rand.NewSource(1))

	for i := 0; i < 500; i++ {
		pred, err := p.Predict(context.Background(), "Behind the scenes of our launch")
		if err != nil {
			t.Fatalf("Predict: %v", err)
		}
		if pred.Score < 60 || pred.Score >= 100 {
			t.Fatalf("score out of range: %d", pred.Score)
		}
		if !pred.Simulated {
			t.Fatal("predictions must be marked simulated")
		}
	}
}

func TestPredictEmptyContent(t *testing.T) {
	p := New(config.DefaultConfig().Virality)
	for _, content := range []string{"", "   ", "\n\t"} {
		if _, err := p.Predict(context.Background(), content); !errors.Is(err, ErrEmptyContent) {
			t.Errorf("Predict(%q): expected ErrEmptyContent, got %v", content, err)
		}
	}
}

func TestPredictHonoursDelayAndCancel(t *testing.T) {
	p := NewWithSource(config.ViralityConfig{Delay: time.Hour, MinScore: 60, MaxScore: 100}, rand.NewSource(1))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := p.Predict(ctx, "draft")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("Predict should return as soon as the context is done")
	}
}

func TestPredictEmptyRange(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.ViralityConfig
		want int
	}{
		{"zero config", config.ViralityConfig{}, 0},
		{"inverted", config.ViralityConfig{MinScore: 80, MaxScore: 70}, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, err := NewWithSource(tt.cfg, rand.NewSource(1)).Predict(context.Background(), "draft")
			if err != nil {
				t.Fatalf("Predict: %v", err)
			}
			if pred.Score != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, pred.Score)
			}
		})
	}
}
