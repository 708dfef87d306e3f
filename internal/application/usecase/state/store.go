package state

import (
	"context"
	"encoding/json"
	"reflect"
	"sync"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/domain/content"
	"github.com/khoahotran/portfolio/internal/domain/event"
	"github.com/khoahotran/portfolio/internal/domain/storage"
	"github.com/khoahotran/portfolio/pkg/logger"
)

// Store owns the live portfolio state and mirrors each section to storage.
// Storage failures never fail an operation: they are logged and the in-memory
// state stays authoritative.
type Store struct {
	mu       sync.RWMutex
	current  content.State
	defaults content.Snapshot
	storage  storage.Storage
	events   event.Publisher
	logger   logger.Logger
}

func NewStore(st storage.Storage, defaults content.Snapshot, events event.Publisher, log logger.Logger) *Store {
	return &Store{
		current:  defaults.State.Clone(),
		defaults: defaults,
		storage:  st,
		events:   events,
		logger:   log,
	}
}

// Init hydrates from storage and then applies the version sync.
func (s *Store) Init(ctx context.Context) {
	s.Load(ctx)
	s.SyncVersion(ctx)
}

// Load replaces the in-memory state with whatever storage holds, falling back to
// the build defaults key by key.
func (s *Store) Load(ctx context.Context) {
	d := s.defaults.State.Clone()
	next := content.State{
		Profile:      loadJSON(ctx, s, storage.KeyProfile, d.Profile),
		Projects:     loadJSON(ctx, s, storage.KeyProjects, d.Projects),
		Skills:       loadJSON(ctx, s, storage.KeySkills, d.Skills),
		Experiences:  loadJSON(ctx, s, storage.KeyExperiences, d.Experiences),
		ProfileImage: d.ProfileImage,
		ResumeURL:    d.ResumeURL,
	}
	if v, ok := s.readRaw(ctx, storage.KeyProfileImage); ok {
		// An empty stored image means none.
		next.ProfileImage = nil
		if v != "" {
			next.ProfileImage = &v
		}
	}
	if v, ok := s.readRaw(ctx, storage.KeyResumeURL); ok {
		next.ResumeURL = v
	}

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()
}

// Current returns a copy of the live state.
func (s *Store) Current() content.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Snapshot stamps a copy of the live state with lastUpdated.
func (s *Store) Snapshot(lastUpdated int64) content.Snapshot {
	return content.Snapshot{LastUpdated: lastUpdated, State: s.Current()}
}

func (s *Store) Defaults() content.Snapshot {
	return content.Snapshot{LastUpdated: s.defaults.LastUpdated, State: s.defaults.State.Clone()}
}

// Update applies fn to a copy of the state and commits the result. Sections that
// changed are written to storage and announced as one content.saved event.
func (s *Store) Update(ctx context.Context, fn func(content.State) (content.State, error)) (content.State, error) {
	s.mu.Lock()
	prev := s.current
	next, err := fn(prev.Clone())
	if err != nil {
		s.mu.Unlock()
		return content.State{}, err
	}
	changed := changedSections(prev, next)
	s.current = next
	for _, sec := range changed {
		s.persist(ctx, next, sec)
	}
	out := next.Clone()
	s.mu.Unlock()

	if len(changed) > 0 {
		names := make([]string, len(changed))
		for i, sec := range changed {
			names[i] = string(sec)
		}
		s.publish(ctx, event.New(event.TypeSaved, names...))
	}
	return out, nil
}

// Reset restores the build defaults and marks storage as up to date with this build.
func (s *Store) Reset(ctx context.Context) content.State {
	s.replaceWithDefaults(ctx)
	s.publish(ctx, event.New(event.TypeReset))
	return s.Current()
}

func (s *Store) replaceWithDefaults(ctx context.Context) {
	s.mu.Lock()
	s.current = s.defaults.State.Clone()
	for _, sec := range content.AllSections {
		s.persist(ctx, s.current, sec)
	}
	s.mu.Unlock()
	s.writeRaw(ctx, storage.KeyLastUpdated, formatStamp(s.defaults.LastUpdated))
}

func (s *Store) persist(ctx context.Context, st content.State, sec content.Section) {
	switch sec {
	case content.SectionProfile:
		s.writeJSON(ctx, storage.KeyProfile, st.Profile)
	case content.SectionProjects:
		s.writeJSON(ctx, storage.KeyProjects, nonNil(st.Projects))
	case content.SectionSkills:
		s.writeJSON(ctx, storage.KeySkills, nonNil(st.Skills))
	case content.SectionExperiences:
		s.writeJSON(ctx, storage.KeyExperiences, nonNil(st.Experiences))
	case content.SectionProfileImage:
		if st.ProfileImage == nil || *st.ProfileImage == "" {
			s.removeKey(ctx, storage.KeyProfileImage)
		} else {
			s.writeRaw(ctx, storage.KeyProfileImage, *st.ProfileImage)
		}
	case content.SectionResume:
		if st.HasResume() {
			s.writeRaw(ctx, storage.KeyResumeURL, st.ResumeURL)
		} else {
			s.removeKey(ctx, storage.KeyResumeURL)
		}
	}
}

func changedSections(prev, next content.State) []content.Section {
	var out []content.Section
	if !reflect.DeepEqual(prev.Profile, next.Profile) {
		out = append(out, content.SectionProfile)
	}
	if !reflect.DeepEqual(nonNil(prev.Projects), nonNil(next.Projects)) {
		out = append(out, content.SectionProjects)
	}
	if !reflect.DeepEqual(nonNil(prev.Skills), nonNil(next.Skills)) {
		out = append(out, content.SectionSkills)
	}
	if !reflect.DeepEqual(nonNil(prev.Experiences), nonNil(next.Experiences)) {
		out = append(out, content.SectionExperiences)
	}
	if !reflect.DeepEqual(prev.ProfileImage, next.ProfileImage) {
		out = append(out, content.SectionProfileImage)
	}
	if prev.ResumeURL != next.ResumeURL {
		out = append(out, content.SectionResume)
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func loadJSON[T any](ctx context.Context, s *Store, key string, fallback T) T {
	raw, ok := s.readRaw(ctx, key)
	if !ok {
		return fallback
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		s.logger.Warn("Stored value is not valid JSON, using default", zap.String("key", key), zap.Error(err))
		return fallback
	}
	return v
}

func (s *Store) readRaw(ctx context.Context, key string) (string, bool) {
	v, found, err := s.storage.Get(ctx, key)
	if err != nil {
		s.logger.Warn("Error reading key from storage", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return v, found
}

func (s *Store) writeJSON(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("Failed to encode value for storage", err, zap.String("key", key))
		return
	}
	s.writeRaw(ctx, key, string(b))
}

func (s *Store) writeRaw(ctx context.Context, key, value string) {
	if err := s.storage.Set(ctx, key, value); err != nil {
		s.logger.Warn("Error writing key to storage", zap.String("key", key), zap.Error(err))
	}
}

func (s *Store) removeKey(ctx context.Context, key string) {
	if err := s.storage.Remove(ctx, key); err != nil {
		s.logger.Warn("Error removing key from storage", zap.String("key", key), zap.Error(err))
	}
}

func (s *Store) publish(ctx context.Context, e event.ContentEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, e); err != nil {
		s.logger.Warn("Failed to publish content event", zap.String("type", string(e.Type)), zap.Error(err))
	}
}
