package share

import (
	"context"
	"fmt"
	"time"

	"loot-splitter/core/settlement"

	"go.uber.org/zap"
)

// Settler computes a settlement plan.
type Settler interface {
	Settle(ctx context.Context, partyLog string, players []settlement.PlayerInput) (*settlement.Result, error)
}

// Link is a stored share state.
type Link struct {
	Code  string `json:"code"`
	State string `json:"state"`
}

// Service encodes, stores and settles shared states.
type Service struct {
	codec   *Codec
	store   Store
	settler Settler
	ttl     time.Duration
	logger  *zap.Logger
}

// NewService creates a new share service.
func NewService(codec *Codec, store Store, settler Settler, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{
		codec:   codec,
		store:   store,
		settler: settler,
		ttl:     ttl,
		logger:  logger,
	}
}

// Encode returns the share string for s.
func (s *Service) Encode(state State) (string, error) {
	return s.codec.Encode(state)
}

// Decode parses a share string.
func (s *Service) Decode(encoded string) (State, error) {
	return s.codec.Decode(encoded)
}

// Create encodes state and stores it under a new short code.
func (s *Service) Create(ctx context.Context, state State) (Link, error) {
	encoded, err := s.codec.Encode(state)
	if err != nil {
		return Link{}, err
	}

	code := NewCode()
	if err := s.store.Put(ctx, code, encoded, s.ttl); err != nil {
		return Link{}, err
	}

	s.logger.Debug("Share link created", zap.String("code", code), zap.Int("size", len(encoded)))
	return Link{Code: code, State: encoded}, nil
}

// Resolve returns the state stored under code.
func (s *Service) Resolve(ctx context.Context, code string) (Link, State, error) {
	encoded, err := s.store.Get(ctx, code)
	if err != nil {
		return Link{}, State{}, err
	}
	state, err := s.codec.Decode(encoded)
	if err != nil {
		return Link{}, State{}, fmt.Errorf("stored state for %s: %w", code, err)
	}
	return Link{Code: code, State: encoded}, state, nil
}

// Settle decodes a share string and computes its settlement.
func (s *Service) Settle(ctx context.Context, encoded string) (State, *settlement.Result, error) {
	state, err := s.codec.Decode(encoded)
	if err != nil {
		return State{}, nil, err
	}
	result, err := s.settler.Settle(ctx, state.PartyLog, state.Players)
	if err != nil {
		return State{}, nil, err
	}
	return state, result, nil
}
