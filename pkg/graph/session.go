package graph

import (
	"context"
	"fmt"
	"sync"
)

// Analyzer computes graphs and comparisons. *Client implements it.
type Analyzer interface {
	ComputeGraph(ctx context.Context, req GraphRequest) (Result, error)
	ComputeComparison(ctx context.Context, req ComparisonRequest) (Result, error)
}

// Session holds the current graph of one analyst. Updates are serialized;
// a rejected or failed update leaves the current graph untouched.
type Session struct {
	mu       sync.Mutex
	analyzer Analyzer
	current  *Result
}

// NewSession creates an idle session.
func NewSession(analyzer Analyzer) *Session {
	return &Session{analyzer: analyzer}
}

// Update recomputes the graph for req and makes it current. Invalid
// selections fail with ErrInvalidSelection and empty graphs with
// ErrEmptyResult; in both cases and on load errors the previous graph stays
// current.
func (s *Session) Update(ctx context.Context, req GraphRequest) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.analyzer.ComputeGraph(ctx, req)
	if err != nil {
		return Result{}, err
	}
	return s.swap(res)
}

// Compare recomputes a comparison and makes it current, under the same
// rules as Update.
func (s *Session) Compare(ctx context.Context, req ComparisonRequest) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.analyzer.ComputeComparison(ctx, req)
	if err != nil {
		return Result{}, err
	}
	return s.swap(res)
}

func (s *Session) swap(res Result) (Result, error) {
	if res.Empty() {
		return Result{}, fmt.Errorf("%w: dataset %s, team %q, meeting %q",
			ErrEmptyResult, res.Dataset, res.Selection.Team, res.Selection.Meeting)
	}
	s.current = &res
	return res, nil
}

// Current returns the current graph, or false while the session is idle.
func (s *Session) Current() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return Result{}, false
	}
	return *s.current, true
}
