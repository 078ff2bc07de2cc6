// Package mock provides test doubles for studypal interfaces using function
// fields.
package mock

import (
	"context"

	"github.com/fwojciec/studypal"
)

// Interface compliance checks.
var (
	_ studypal.ChatService      = (*ChatService)(nil)
	_ studypal.CanvasSolver     = (*CanvasSolver)(nil)
	_ studypal.Presenter        = (*Presenter)(nil)
	_ studypal.PresentationFeed = (*PresentationFeed)(nil)
)

// ChatService is a test double for studypal.ChatService.
type ChatService struct {
	StreamFn        func(ctx context.Context, req studypal.ChatRequest) (studypal.Stream, error)
	NewSessionFn    func(ctx context.Context) (string, error)
	DeleteSessionFn func(ctx context.Context, id string) error
}

// Stream delegates to StreamFn.
func (s *ChatService) Stream(ctx context.Context, req studypal.ChatRequest) (studypal.Stream, error) {
	return s.StreamFn(ctx, req)
}

// NewSession delegates to NewSessionFn.
func (s *ChatService) NewSession(ctx context.Context) (string, error) {
	return s.NewSessionFn(ctx)
}

// DeleteSession delegates to DeleteSessionFn.
func (s *ChatService) DeleteSession(ctx context.Context, id string) error {
	return s.DeleteSessionFn(ctx, id)
}

// CanvasSolver is a test double for studypal.CanvasSolver.
type CanvasSolver struct {
	SolveFn func(ctx context.Context, image string) (studypal.Solution, error)
}

// Solve delegates to SolveFn.
func (s *CanvasSolver) Solve(ctx context.Context, image string) (studypal.Solution, error) {
	return s.SolveFn(ctx, image)
}

// Presenter is a test double for studypal.Presenter.
type Presenter struct {
	OpenFn func(ctx context.Context, sessionID string) (studypal.PresentationFeed, error)
}

// Open delegates to OpenFn.
func (p *Presenter) Open(ctx context.Context, sessionID string) (studypal.PresentationFeed, error) {
	return p.OpenFn(ctx, sessionID)
}

// PresentationFeed is a test double for studypal.PresentationFeed.
// CloseFn is nil-safe.
type PresentationFeed struct {
	StartFn func(ctx context.Context, req studypal.PresentationRequest) error
	NextFn  func() (studypal.PresentationMessage, error)
	CloseFn func() error
}

// Start delegates to StartFn.
func (f *PresentationFeed) Start(ctx context.Context, req studypal.PresentationRequest) error {
	return f.StartFn(ctx, req)
}

// Next delegates to NextFn.
func (f *PresentationFeed) Next() (studypal.PresentationMessage, error) {
	return f.NextFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (f *PresentationFeed) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
