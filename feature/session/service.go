package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"loot-splitter/core/notify"
	"loot-splitter/core/settlement"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	// ErrForbidden is returned when a member attempts a leader-only action or
	// addresses another session.
	ErrForbidden = errors.New("forbidden")
	// ErrRateLimited is returned when a member updates too often.
	ErrRateLimited = errors.New("too many updates")
	// ErrInvalidName is returned for blank member names.
	ErrInvalidName = errors.New("member name is required")
	// ErrConflict is returned when the session keeps changing while it is settled.
	ErrConflict = errors.New("session changed during calculation")
)

// calculateAttempts bounds how often Calculate recomputes after a concurrent edit.
const calculateAttempts = 3

// Settler computes a settlement plan.
type Settler interface {
	Settle(ctx context.Context, partyLog string, players []settlement.PlayerInput) (*settlement.Result, error)
}

// Joined is returned to a member entering a session.
type Joined struct {
	Session  *Session `json:"session"`
	MemberID string   `json:"member_id"`
	Token    string   `json:"token"`
}

// Event is pushed to realtime subscribers.
type Event struct {
	Type    string   `json:"type"`
	Session *Session `json:"session"`
}

// Event types.
const (
	EventSnapshot   = "snapshot"
	EventUpdated    = "updated"
	EventCalculated = "calculated"
)

// MemberUpdate holds the fields a member may change. Nil fields are left untouched.
type MemberUpdate struct {
	Name *string `json:"name"`
	Log  *string `json:"log"`
}

// Service manages live sessions.
type Service struct {
	store    *Store
	hub      *Hub
	tokens   *Tokens
	settler  Settler
	notifier notify.Publisher
	cfg      Config
	logger   *zap.Logger

	limitMu  sync.Mutex
	limiters *cache.Cache
}

// NewService creates a new session service.
func NewService(cfg Config, store *Store, hub *Hub, tokens *Tokens, settler Settler, notifier notify.Publisher, logger *zap.Logger) *Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Service{
		store:    store,
		hub:      hub,
		tokens:   tokens,
		settler:  settler,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
		limiters: cache.New(cfg.TTL(), time.Hour),
	}
}

// Create opens a session led by a new member called name.
func (s *Service) Create(ctx context.Context, name, partyLog string) (*Joined, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	now := time.Now().UTC()
	leader := Member{ID: uuid.NewString(), Name: name, JoinedAt: now}
	sess := &Session{
		ID:        uuid.NewString(),
		LeaderID:  leader.ID,
		PartyLog:  partyLog,
		Members:   []Member{leader},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.cfg.TTL()),
	}

	if err := s.store.Create(sess); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.tokens.Issue(sess, leader.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("Session created", zap.String("session", sess.ID), zap.Int("sessions", s.store.Count()))
	return &Joined{Session: sess, MemberID: leader.ID, Token: token}, nil
}

// Join adds a member called name to session id.
func (s *Service) Join(ctx context.Context, id, name string) (*Joined, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	member := Member{ID: uuid.NewString(), Name: name, JoinedAt: time.Now().UTC()}
	sess, err := s.store.Update(id, func(sess *Session) error {
		sess.Members = append(sess.Members, member)
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(sess, member.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.broadcast(EventUpdated, sess)
	return &Joined{Session: sess, MemberID: member.ID, Token: token}, nil
}

// Authenticate verifies a member token.
func (s *Service) Authenticate(token string) (*Claims, error) {
	return s.tokens.Parse(token)
}

// Get returns the session the caller belongs to.
func (s *Service) Get(ctx context.Context, claims *Claims, id string) (*Session, error) {
	if err := s.authorize(claims, id); err != nil {
		return nil, err
	}
	sess, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if _, ok := sess.Member(claims.MemberID); !ok {
		return nil, ErrForbidden
	}
	return sess, nil
}

// UpdateMember changes the caller's own name or session log.
func (s *Service) UpdateMember(ctx context.Context, claims *Claims, id string, upd MemberUpdate) (*Session, error) {
	if err := s.authorize(claims, id); err != nil {
		return nil, err
	}
	if !s.limiter(claims).Allow() {
		return nil, ErrRateLimited
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, ErrInvalidName
	}

	sess, err := s.store.Update(id, func(sess *Session) error {
		m, ok := sess.Member(claims.MemberID)
		if !ok {
			return ErrForbidden
		}
		if upd.Name != nil {
			m.Name = strings.TrimSpace(*upd.Name)
		}
		if upd.Log != nil {
			m.Log = *upd.Log
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcast(EventUpdated, sess)
	return sess, nil
}

// UpdatePartyLog replaces the party summary log. Leader only.
func (s *Service) UpdatePartyLog(ctx context.Context, claims *Claims, id, partyLog string) (*Session, error) {
	if err := s.authorize(claims, id); err != nil {
		return nil, err
	}

	sess, err := s.store.Update(id, func(sess *Session) error {
		if !sess.IsLeader(claims.MemberID) {
			return ErrForbidden
		}
		sess.PartyLog = partyLog
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcast(EventUpdated, sess)
	return sess, nil
}

// Calculate settles the session and publishes the result to every member. Leader only.
func (s *Service) Calculate(ctx context.Context, claims *Claims, id string) (*Session, error) {
	if err := s.authorize(claims, id); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < calculateAttempts; attempt++ {
		current, err := s.store.Get(id)
		if err != nil {
			return nil, err
		}
		if !current.IsLeader(claims.MemberID) {
			return nil, ErrForbidden
		}

		result, err := s.settler.Settle(ctx, current.PartyLog, current.Players())
		if err != nil {
			return nil, err
		}

		sess, err := s.store.Update(id, func(sess *Session) error {
			if sess.Version != current.Version {
				return ErrConflict
			}
			sess.Result = result
			return nil
		})
		if errors.Is(err, ErrConflict) {
			s.logger.Debug("Session changed during calculation", zap.String("session", id), zap.Int("attempt", attempt+1))
			continue
		}
		if err != nil {
			return nil, err
		}

		s.publishResult(ctx, sess, result)
		return sess, nil
	}

	return nil, ErrConflict
}

func (s *Service) publishResult(ctx context.Context, sess *Session, result *settlement.Result) {
	s.broadcast(EventCalculated, sess)
	if err := s.notifier.Publish(ctx, "Session "+sess.ID, result); err != nil {
		s.logger.Warn("Result publishing failed", zap.String("session", sess.ID), zap.Error(err))
	}
}

// Subscribe attaches a realtime subscriber after checking the caller's membership.
// The current snapshot is queued as the first message.
func (s *Service) Subscribe(ctx context.Context, claims *Claims, id string) (*Subscriber, error) {
	sess, err := s.Get(ctx, claims, id)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(Event{Type: EventSnapshot, Session: sess})
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return s.hub.Subscribe(id, payload), nil
}

// Unsubscribe detaches a realtime subscriber.
func (s *Service) Unsubscribe(sub *Subscriber) {
	s.hub.Unsubscribe(sub)
}

func (s *Service) authorize(claims *Claims, id string) error {
	if claims == nil || claims.SessionID != id {
		return ErrForbidden
	}
	return nil
}

func (s *Service) limiter(claims *Claims) *rate.Limiter {
	key := claims.SessionID + "/" + claims.MemberID

	s.limitMu.Lock()
	defer s.limitMu.Unlock()

	if v, ok := s.limiters.Get(key); ok {
		return v.(*rate.Limiter)
	}

	perMinute := s.cfg.UpdatesPerMinute
	if perMinute <= 0 {
		perMinute = 30
	}
	l := rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
	s.limiters.SetDefault(key, l)
	return l
}

func (s *Service) broadcast(eventType string, sess *Session) {
	payload, err := json.Marshal(Event{Type: eventType, Session: sess})
	if err != nil {
		s.logger.Error("Failed to encode session event", zap.Error(err))
		return
	}
	n := s.hub.Publish(sess.ID, payload)
	s.logger.Debug("Session event published",
		zap.String("session", sess.ID),
		zap.String("type", eventType),
		zap.Int("subscribers", n),
	)
}
