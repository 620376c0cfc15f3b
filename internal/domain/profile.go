package domain

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type profileContextKey string

const ContextProfileKey profileContextKey = "performanceProfile"

type Span struct {
	Name       string    `json:"name"`
	startTs    time.Time `json:"-"`
	subProfile *Profile  `json:"-"`

	SubSpans []*Span `json:"subSpans,omitempty"`
	Elapsed  *int64  `json:"elapsed"`
}

// Profile is a list of timed spans for one request
type Profile struct {
	mu      *sync.Mutex
	Spans   []*Span `json:"spans"`
	startTs time.Time
	TotalMs *int64 `json:"totalMs"`
}

func NewProfile() (newProfile *Profile, endNewProfile func()) {
	newProfile = &Profile{
		mu:      &sync.Mutex{},
		Spans:   []*Span{},
		startTs: time.Now(),
	}
	return newProfile, newProfile.End
}

// GetProfile returns the profile stored on ctx. a detached profile is
// returned when there is none, so callers can always record spans
func GetProfile(ctx context.Context) *Profile {
	if profile, ok := ctx.Value(ContextProfileKey).(*Profile); ok && profile != nil {
		return profile
	}
	profile, _ := NewProfile()
	return profile
}

func WithProfile(ctx context.Context, profile *Profile) context.Context {
	return context.WithValue(ctx, ContextProfileKey, profile)
}

func (p *Profile) End() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.Spans) > 0 {
		p.Spans[len(p.Spans)-1].End()
	}
	if p.TotalMs == nil {
		t := time.Since(p.startTs).Milliseconds()
		p.TotalMs = &t
	}
}

func NewSpan(name string) (*Span, func()) {
	newSpan := &Span{
		Name:    name,
		startTs: time.Now(),
	}
	return newSpan, newSpan.End
}

func (s *Span) End() {
	if s.Elapsed == nil {
		t := time.Since(s.startTs).Milliseconds()
		s.Elapsed = &t
	}
	if s.subProfile != nil {
		s.SubSpans = s.subProfile.Spans
	}
}

func (p *Profile) AddSpan(s *Span) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Spans = append(p.Spans, s)
}

// StartNewSpan ends the last span and begins a new one
func (p *Profile) StartNewSpan(name string) (newSpan *Span, endSpan func()) {
	newSpan, endSpan = NewSpan(name)
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.Spans) > 0 {
		p.Spans[len(p.Spans)-1].End()
	}
	p.Spans = append(p.Spans, newSpan)
	return newSpan, endSpan
}

func (s *Span) NewSubProfile() (*Profile, func()) {
	if s.subProfile != nil {
		panic("attempting to override existing subprofile")
	}
	newProfile, end := NewProfile()
	s.subProfile = newProfile
	return newProfile, end
}

func (p *Profile) ToJsonBytes() ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return json.Marshal(p)
}

func NewCtxWithSubProfile(ctx context.Context, parentSpan *Span) context.Context {
	newProfile, _ := parentSpan.NewSubProfile()
	return WithProfile(ctx, newProfile)
}
