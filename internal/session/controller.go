package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/yildizm/scrollmark/internal/logger"
	"github.com/yildizm/scrollmark/internal/metrics"
)

var (
	// ErrReadFile wraps failures to read the selected file when an attempt starts
	ErrReadFile = errors.New("failed to read selected file")

	// ErrNoResult is recorded when an analyzer reports neither a result nor an error
	ErrNoResult = errors.New("analysis returned no result")
)

// Analyzer turns CSV text into a complete result. backend.Client satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, csvData string) (*metrics.Result, error)
}

// Controller owns one Session and serializes every transition on it. It is
// safe for concurrent use; at most one attempt is in flight at a time.
type Controller struct {
	mu   sync.Mutex
	sess Session

	analyzer Analyzer
	sim      Simulator
	readFile func(string) ([]byte, error)
	log      *logger.Logger

	subMu   sync.Mutex
	subs    map[int]chan Session
	nextSub int

	wg sync.WaitGroup
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the logger used for attempt lifecycle messages
func WithLogger(l *logger.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l.WithComponent("session")
		}
	}
}

// WithReadFile replaces os.ReadFile, mainly for tests
func WithReadFile(fn func(string) ([]byte, error)) Option {
	return func(c *Controller) {
		if fn != nil {
			c.readFile = fn
		}
	}
}

// NewController creates a controller with an empty session
func NewController(analyzer Analyzer, sim Simulator, opts ...Option) *Controller {
	c := &Controller{
		analyzer: analyzer,
		sim:      sim,
		readFile: os.ReadFile,
		log:      logger.Nop(),
		subs:     make(map[int]chan Session),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns the current session value
func (c *Controller) Snapshot() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess
}

// Select chooses the file for the next attempt
func (c *Controller) Select(path string) (Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := c.sess.Select(path)
	if err != nil {
		return c.sess, err
	}
	c.setLocked(next)
	c.log.InfoWithFields("file selected", []logger.Field{logger.Session(next.ID), logger.F("file", next.File.Name)})
	return next, nil
}

// Reset clears the session so a new upload can begin
func (c *Controller) Reset() (Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := c.sess.Reset()
	if err != nil {
		return c.sess, err
	}
	c.setLocked(next)
	c.log.Info("session reset")
	return next, nil
}

// Start begins an attempt in the background and returns immediately with
// the Analyzing session. Use Subscribe or Snapshot to follow it.
func (c *Controller) Start(ctx context.Context) (Session, error) {
	started, err := c.begin()
	if err != nil {
		return started, err
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.run(ctx, started)
	}()
	return started, nil
}

// Analyze runs one attempt to completion on the calling goroutine. The
// returned error is either a precondition error or the attempt's failure.
func (c *Controller) Analyze(ctx context.Context) (Session, error) {
	started, err := c.begin()
	if err != nil {
		return started, err
	}
	final := c.run(ctx, started)
	return final, final.Err
}

// Wait blocks until every background attempt has settled
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Subscribe returns a channel that always holds the most recent session
// after each transition. Slow readers skip intermediate progress values but
// never miss the latest state.
func (c *Controller) Subscribe() (<-chan Session, func()) {
	ch := make(chan Session, 1)

	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	c.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.subMu.Lock()
			delete(c.subs, id)
			c.subMu.Unlock()
		})
	}
}

func (c *Controller) begin() (Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := c.sess.Start()
	if err != nil {
		return c.sess, err
	}
	c.setLocked(next)
	c.log.InfoWithFields("analysis started", []logger.Field{
		logger.Session(next.ID),
		logger.Attempt(next.Attempt),
		logger.F("file", next.File.Name),
	})
	return next, nil
}

// run performs one attempt. The simulator is always stopped before the
// outcome is applied, whichever way fetch returns.
func (c *Controller) run(ctx context.Context, started Session) Session {
	attempt := started.Attempt
	begin := time.Now()

	var (
		result *metrics.Result
		err    error
	)
	func() {
		stop := c.sim.Start(func() bool {
			c.mu.Lock()
			defer c.mu.Unlock()
			next, more := c.sess.Advance(attempt, c.sim.Step, c.sim.Ceiling)
			if next.Progress != c.sess.Progress {
				c.setLocked(next)
			}
			return more
		})
		defer stop()
		result, err = c.fetch(ctx, started.File.Path)
	}()
	if err == nil && result == nil {
		err = ErrNoResult
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	fields := []logger.Field{logger.Session(started.ID), logger.Attempt(attempt), logger.Duration(time.Since(begin))}
	if err != nil {
		c.setLocked(c.sess.Fail(attempt, err))
		c.log.ErrorWithFields("analysis failed", append(fields, logger.Error(err)))
	} else {
		c.setLocked(c.sess.Succeed(attempt, result))
		c.log.InfoWithFields("analysis complete", fields)
	}
	return c.sess
}

func (c *Controller) fetch(ctx context.Context, path string) (*metrics.Result, error) {
	data, err := c.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFile, err)
	}
	return c.analyzer.Analyze(ctx, string(data))
}

// setLocked stores s and notifies subscribers; c.mu must be held so that
// notifications go out in transition order.
func (c *Controller) setLocked(s Session) {
	c.sess = s

	c.subMu.Lock()
	defer c.subMu.Unlock()
	for _, ch := range c.subs {
		select {
		case ch <- s:
		default:
			// replace the stale value nobody has read yet
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s:
			default:
			}
		}
	}
}
