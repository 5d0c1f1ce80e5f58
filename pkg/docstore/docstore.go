package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/vitaehub/vitaehub/pkg/types"
)

// Remote is the preferred backend for CV documents. Get returns (nil, nil)
// when no document exists for the user.
type Remote interface {
	Get(ctx context.Context, userID string) (*types.CVDocument, error)
	Create(ctx context.Context, userID string, doc *types.CVDocument) error
	SetWithMerge(ctx context.Context, userID string, doc *types.CVDocument) error
}

var (
	ErrMissingUser  = errors.New("docstore: empty user id")
	ErrNotLoaded    = errors.New("docstore: no document loaded for user")
	ErrInvalidSkill = errors.New("docstore: skill level out of range")
)

type remoteState int32

const (
	remoteAvailable remoteState = iota
	remoteDisabled
)

func (s remoteState) String() string {
	if s == remoteAvailable {
		return "remote-available"
	}
	return "remote-disabled"
}

// session is one user's editing session: the adopted in-memory document
// (the guaranteed floor under total storage failure) and the remote circuit
// state. The circuit transitions to remote-disabled on the first observed
// remote failure and is reset only by the next Load.
type session struct {
	mu    sync.Mutex
	doc   *types.CVDocument
	state remoteState
}

// RemoteResultObserver receives the outcome of every attempted remote write.
// Callers that care (metrics, sync indicators) can observe it; everyone else
// keeps getting the lenient always-succeeds save behavior.
type RemoteResultObserver func(userID string, err error)

type Store struct {
	remote   Remote
	cache    types.Cache
	observer RemoteResultObserver
	sessions cmap.ConcurrentMap[string, *session]
}

type Option func(*Store)

func WithRemoteResultObserver(fn RemoteResultObserver) Option {
	return func(s *Store) {
		s.observer = fn
	}
}

func New(remote Remote, cache types.Cache, opts ...Option) *Store {
	s := &Store{
		remote:   remote,
		cache:    cache,
		sessions: cmap.New[*session](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func cacheKey(userID string) string {
	return "cv:data:" + userID
}

func (s *Store) getSession(userID string) *session {
	if sess, ok := s.sessions.Get(userID); ok {
		return sess
	}
	sess := &session{state: remoteAvailable}
	s.sessions.SetIfAbsent(userID, sess)
	sess, _ = s.sessions.Get(userID)
	return sess
}

// Load resolves the user's document: remote first, local cache as fallback,
// a generated default as the floor. It never returns without a usable
// document; the only error is the empty-user precondition. Load is also the
// sole reset point for the remote circuit.
func (s *Store) Load(ctx context.Context, profile types.UserProfile) (*types.CVDocument, error) {
	if profile.UserID == "" {
		return nil, ErrMissingUser
	}

	sess := s.getSession(profile.UserID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	doc, err := s.remote.Get(ctx, profile.UserID)
	if err != nil {
		sess.state = remoteDisabled
		slog.Warn("remote document read failed, falling back to local cache",
			slog.String("user_id", profile.UserID), slog.String("error", err.Error()))
		sess.doc = s.loadFromCache(ctx, profile)
		return sess.doc.Clone(), nil
	}

	if doc != nil {
		sess.state = remoteAvailable
		sess.doc = doc
		s.mirrorToCache(ctx, profile.UserID, doc)
		return sess.doc.Clone(), nil
	}

	// Remote reachable but empty: create the default document there.
	def := DefaultDocument(profile)
	if err := s.remote.Create(ctx, profile.UserID, def); err != nil {
		sess.state = remoteDisabled
		slog.Warn("remote document create failed, remote writes disabled for this session",
			slog.String("user_id", profile.UserID), slog.String("error", err.Error()))
	} else {
		sess.state = remoteAvailable
	}
	sess.doc = def
	s.mirrorToCache(ctx, profile.UserID, def)
	return sess.doc.Clone(), nil
}

func (s *Store) loadFromCache(ctx context.Context, profile types.UserProfile) *types.CVDocument {
	cached, err := s.cache.Get(ctx, cacheKey(profile.UserID))
	if err != nil {
		slog.Warn("local cache read failed", slog.String("user_id", profile.UserID), slog.String("error", err.Error()))
	}
	if cached != "" {
		var doc types.CVDocument
		if err := json.Unmarshal([]byte(cached), &doc); err == nil {
			return &doc
		}
		slog.Warn("local cache held an unreadable document, regenerating default", slog.String("user_id", profile.UserID))
	}

	def := DefaultDocument(profile)
	s.mirrorToCache(ctx, profile.UserID, def)
	return def
}

func (s *Store) mirrorToCache(ctx context.Context, userID string, doc *types.CVDocument) {
	raw, err := json.Marshal(doc)
	if err != nil {
		slog.Error("cv document marshal failed", slog.String("user_id", userID), slog.String("error", err.Error()))
		return
	}
	if err := s.cache.SetEx(ctx, cacheKey(userID), string(raw), 0); err != nil {
		slog.Warn("local cache write failed", slog.String("user_id", userID), slog.String("error", err.Error()))
	}
}

// Save commits the full document: local cache synchronously, then a remote
// merge-write when the circuit is closed. Storage failures never surface to
// the caller; a remote failure opens the circuit for the rest of the
// session. The remote outcome goes to the observer when one is registered.
func (s *Store) Save(ctx context.Context, userID string, doc *types.CVDocument) error {
	if userID == "" {
		return ErrMissingUser
	}
	if doc == nil {
		return ErrNotLoaded
	}

	sess := s.getSession(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.doc = doc.Clone()
	return s.save(ctx, sess, userID, sess.doc)
}

func (s *Store) save(ctx context.Context, sess *session, userID string, doc *types.CVDocument) error {
	doc.LastUpdated = time.Now().Unix()
	s.mirrorToCache(ctx, userID, doc)

	if sess.state == remoteAvailable {
		err := s.remote.SetWithMerge(ctx, userID, doc)
		if err != nil {
			sess.state = remoteDisabled
			slog.Warn("remote document write failed, remote writes disabled for this session",
				slog.String("user_id", userID), slog.String("error", err.Error()))
		}
		if s.observer != nil {
			s.observer(userID, err)
		}
	}
	return nil
}

// RemoteEnabled reports the circuit state of the user's session.
func (s *Store) RemoteEnabled(userID string) bool {
	sess, ok := s.sessions.Get(userID)
	if !ok {
		return true
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.state == remoteAvailable
}

// Document returns the current in-memory document, if one was loaded.
func (s *Store) Document(userID string) (*types.CVDocument, bool) {
	sess, ok := s.sessions.Get(userID)
	if !ok {
		return nil, false
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.doc == nil {
		return nil, false
	}
	return sess.doc.Clone(), true
}

// mutate applies one change to a snapshot of the in-memory document, adopts
// the result immediately (optimistic update) and then saves the full
// document. The updated document is returned even when remote persistence
// is degraded.
func (s *Store) mutate(ctx context.Context, userID string, apply func(doc *types.CVDocument) error) (*types.CVDocument, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}

	sess := s.getSession(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.doc == nil {
		return nil, ErrNotLoaded
	}

	next := sess.doc.Clone()
	if err := apply(next); err != nil {
		return nil, err
	}

	sess.doc = next
	if err := s.save(ctx, sess, userID, next); err != nil {
		return nil, err
	}
	return next.Clone(), nil
}

func (s *Store) UpdatePersonalInfo(ctx context.Context, userID string, info types.PersonalInfo) (*types.CVDocument, error) {
	return s.mutate(ctx, userID, func(doc *types.CVDocument) error {
		doc.PersonalInfo = info
		return nil
	})
}

func (s *Store) UpdateSummary(ctx context.Context, userID string, summary string) (*types.CVDocument, error) {
	return s.mutate(ctx, userID, func(doc *types.CVDocument) error {
		doc.Summary = summary
		return nil
	})
}

func (s *Store) AddEducation(ctx context.Context, userID string, edu types.Education) (*types.CVDocument, error) {
	return s.mutate(ctx, userID, func(doc *types.CVDocument) error {
		edu.ID = NewEducationID()
		doc.Education = append(doc.Education, edu)
		return nil
	})
}

// RemoveEducation filters by id equality. An absent id leaves the document
// unchanged but the save still runs, matching the full-snapshot write model.
func (s *Store) RemoveEducation(ctx context.Context, userID string, id string) (*types.CVDocument, error) {
	return s.mutate(ctx, userID, func(doc *types.CVDocument) error {
		kept := doc.Education[:0]
		for _, e := range doc.Education {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		doc.Education = kept
		return nil
	})
}

func (s *Store) AddSkill(ctx context.Context, userID string, skill types.Skill) (*types.CVDocument, error) {
	if err := skill.Validate(); err != nil {
		return nil, ErrInvalidSkill
	}
	return s.mutate(ctx, userID, func(doc *types.CVDocument) error {
		skill.ID = NewSkillID()
		doc.Skills = append(doc.Skills, skill)
		return nil
	})
}

func (s *Store) RemoveSkill(ctx context.Context, userID string, id string) (*types.CVDocument, error) {
	return s.mutate(ctx, userID, func(doc *types.CVDocument) error {
		kept := doc.Skills[:0]
		for _, sk := range doc.Skills {
			if sk.ID != id {
				kept = append(kept, sk)
			}
		}
		doc.Skills = kept
		return nil
	})
}
