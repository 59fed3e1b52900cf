package session

import (
	"errors"
	"path/filepath"

	"github.com/oklog/ulid/v2"

	"github.com/yildizm/scrollmark/internal/metrics"
)

// Status is where a session sits in Idle → Analyzing → {Succeeded, Failed}
type Status int

const (
	StatusIdle Status = iota
	StatusAnalyzing
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusAnalyzing:
		return "analyzing"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText lets snapshots carry the status by name
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

var (
	ErrNoFile = errors.New("no file selected")
	ErrBusy   = errors.New("analysis already in progress")
	ErrLoaded = errors.New("a result is already loaded; reset to start a new upload")
)

// FileRef is a selected file. Its contents are only read when an attempt starts.
type FileRef struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// Session is one upload's state. It is a value: every transition returns a
// new Session and leaves the receiver untouched.
type Session struct {
	ID       string
	File     *FileRef
	Status   Status
	Progress int
	Result   *metrics.Result
	Err      error

	// Attempt increases on every Start and is never reset, so late events
	// from an earlier attempt can always be told apart.
	Attempt int
}

// Loaded reports whether a result is present. Only Succeed sets one.
func (s Session) Loaded() bool {
	return s.Result != nil
}

// Analyzing reports whether a request is outstanding
func (s Session) Analyzing() bool {
	return s.Status == StatusAnalyzing
}

// CanAnalyze is true iff a file is selected, nothing is in flight and no
// result is loaded. It drives the enabled state of the analyze action.
func (s Session) CanAnalyze() bool {
	return s.File != nil && !s.Analyzing() && !s.Loaded()
}

// Select replaces the chosen file and begins a fresh session. It is ignored
// while an attempt is in flight or once a result is loaded.
func (s Session) Select(path string) (Session, error) {
	if s.Analyzing() {
		return s, ErrBusy
	}
	if s.Loaded() {
		return s, ErrLoaded
	}
	return Session{
		ID:      ulid.Make().String(),
		File:    &FileRef{Path: path, Name: filepath.Base(path)},
		Status:  StatusIdle,
		Attempt: s.Attempt,
	}, nil
}

// Start begins a new attempt with progress at 0
func (s Session) Start() (Session, error) {
	switch {
	case s.File == nil:
		return s, ErrNoFile
	case s.Analyzing():
		return s, ErrBusy
	case s.Loaded():
		return s, ErrLoaded
	}
	next := s
	next.Status = StatusAnalyzing
	next.Progress = 0
	next.Err = nil
	next.Attempt = s.Attempt + 1
	return next, nil
}

// Advance applies one simulated tick for attempt. The second return value
// reports whether another tick could still move the bar; false means the
// caller should stop ticking.
func (s Session) Advance(attempt, step, ceiling int) (Session, bool) {
	if attempt != s.Attempt || !s.Analyzing() {
		return s, false
	}
	next := s.Progress + step
	if next > ceiling {
		return s, false
	}
	s.Progress = next
	return s, next+step <= ceiling
}

// Succeed stores the result for attempt and completes the bar
func (s Session) Succeed(attempt int, result *metrics.Result) Session {
	if attempt != s.Attempt || !s.Analyzing() || result == nil {
		return s
	}
	s.Status = StatusSucceeded
	s.Progress = 100
	s.Result = result
	s.Err = nil
	return s
}

// Fail records err for attempt. The file stays selected so the same upload
// can be retried.
func (s Session) Fail(attempt int, err error) Session {
	if attempt != s.Attempt || !s.Analyzing() {
		return s
	}
	s.Status = StatusFailed
	s.Progress = 0
	s.Result = nil
	s.Err = err
	return s
}

// Reset discards the file and any result so a new upload can begin. It is
// refused while an attempt is in flight.
func (s Session) Reset() (Session, error) {
	if s.Analyzing() {
		return s, ErrBusy
	}
	return Session{Attempt: s.Attempt}, nil
}
