package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"loot-splitter/core/settlement"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockSettler struct {
	mock.Mock
}

func (m *mockSettler) Settle(ctx context.Context, partyLog string, players []settlement.PlayerInput) (*settlement.Result, error) {
	args := m.Called(ctx, partyLog, players)
	if r, ok := args.Get(0).(*settlement.Result); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, title string, result *settlement.Result) error {
	return m.Called(ctx, title, result).Error(0)
}

func newTestService(t *testing.T, cfg Config) (*Service, *mockSettler, *mockPublisher) {
	t.Helper()
	tokens, err := NewTokens("test-secret")
	require.NoError(t, err)
	settler := new(mockSettler)
	publisher := new(mockPublisher)
	svc := NewService(cfg, NewStore(cfg), NewHub(), tokens, settler, publisher, zap.NewNop())
	return svc, settler, publisher
}

func mustClaims(t *testing.T, svc *Service, token string) *Claims {
	t.Helper()
	claims, err := svc.Authenticate(token)
	require.NoError(t, err)
	return claims
}

func TestService_CreateAndJoin(t *testing.T) {
	svc, _, _ := newTestService(t, Config{})
	ctx := context.Background()

	created, err := svc.Create(ctx, "  Knight ", "party")
	require.NoError(t, err)
	assert.Equal(t, "Knight", created.Session.Members[0].Name)
	assert.Equal(t, created.MemberID, created.Session.LeaderID)
	assert.True(t, mustClaims(t, svc, created.Token).Leader)

	joined, err := svc.Join(ctx, created.Session.ID, "Druid")
	require.NoError(t, err)
	assert.Len(t, joined.Session.Members, 2)
	assert.False(t, mustClaims(t, svc, joined.Token).Leader)

	_, err = svc.Join(ctx, "missing", "Druid")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Create(ctx, " ", "")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestService_MemberPermissions(t *testing.T) {
	svc, _, _ := newTestService(t, Config{})
	ctx := context.Background()

	created, _ := svc.Create(ctx, "Knight", "")
	joined, _ := svc.Join(ctx, created.Session.ID, "Druid")
	leader := mustClaims(t, svc, created.Token)
	member := mustClaims(t, svc, joined.Token)
	id := created.Session.ID

	t.Run("Member Updates Own Log", func(t *testing.T) {
		log := "Looted Items:\n1x Bat Wing"
		sess, err := svc.UpdateMember(ctx, member, id, MemberUpdate{Log: &log})
		require.NoError(t, err)
		m, _ := sess.Member(member.MemberID)
		assert.Equal(t, log, m.Log)
		assert.Equal(t, "Druid", m.Name)
	})

	t.Run("Blank Name Rejected", func(t *testing.T) {
		blank := " "
		_, err := svc.UpdateMember(ctx, member, id, MemberUpdate{Name: &blank})
		assert.ErrorIs(t, err, ErrInvalidName)
	})

	t.Run("Party Log Is Leader Only", func(t *testing.T) {
		_, err := svc.UpdatePartyLog(ctx, member, id, "x")
		assert.ErrorIs(t, err, ErrForbidden)

		sess, err := svc.UpdatePartyLog(ctx, leader, id, "Knight\nBalance: 10")
		require.NoError(t, err)
		assert.Equal(t, "Knight\nBalance: 10", sess.PartyLog)
	})

	t.Run("Calculate Is Leader Only", func(t *testing.T) {
		_, err := svc.Calculate(ctx, member, id)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("Other Session Forbidden", func(t *testing.T) {
		other, _ := svc.Create(ctx, "Paladin", "")
		_, err := svc.Get(ctx, member, other.Session.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestService_RateLimit(t *testing.T) {
	svc, _, _ := newTestService(t, Config{UpdatesPerMinute: 2})
	ctx := context.Background()

	created, _ := svc.Create(ctx, "Knight", "")
	claims := mustClaims(t, svc, created.Token)
	log := "x"

	for i := 0; i < 2; i++ {
		_, err := svc.UpdateMember(ctx, claims, created.Session.ID, MemberUpdate{Log: &log})
		require.NoError(t, err)
	}
	_, err := svc.UpdateMember(ctx, claims, created.Session.ID, MemberUpdate{Log: &log})
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestService_Calculate(t *testing.T) {
	svc, settler, publisher := newTestService(t, Config{})
	ctx := context.Background()

	created, _ := svc.Create(ctx, "Knight", "party")
	joined, _ := svc.Join(ctx, created.Session.ID, "Druid")
	leader := mustClaims(t, svc, created.Token)
	member := mustClaims(t, svc, joined.Token)
	id := created.Session.ID

	sub, err := svc.Subscribe(ctx, member, id)
	require.NoError(t, err)
	defer svc.Unsubscribe(sub)

	var first Event
	require.NoError(t, json.Unmarshal(<-sub.C(), &first))
	assert.Equal(t, EventSnapshot, first.Type)

	result := settlement.EmptyResult()
	result.TotalValue = 99
	settler.On("Settle", mock.Anything, "party", []settlement.PlayerInput{
		{Name: "Knight"}, {Name: "Druid"},
	}).Return(result, nil)
	publisher.On("Publish", mock.Anything, "Session "+id, result).Return(errors.New("webhook down"))

	sess, err := svc.Calculate(ctx, leader, id)
	require.NoError(t, err, "publisher failures are not fatal")
	assert.Equal(t, int64(99), sess.Result.TotalValue)

	var pushed Event
	require.NoError(t, json.Unmarshal(<-sub.C(), &pushed))
	assert.Equal(t, EventCalculated, pushed.Type)
	assert.Equal(t, int64(99), pushed.Session.Result.TotalValue)

	stored, err := svc.Get(ctx, member, id)
	require.NoError(t, err)
	assert.Equal(t, int64(99), stored.Result.TotalValue)

	settler.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestService_CalculateRecomputesAfterConcurrentEdit(t *testing.T) {
	svc, settler, publisher := newTestService(t, Config{})
	ctx := context.Background()

	created, _ := svc.Create(ctx, "Knight", "party")
	leader := mustClaims(t, svc, created.Token)
	id := created.Session.ID

	stale := settlement.EmptyResult()
	stale.TotalValue = 1
	fresh := settlement.EmptyResult()
	fresh.TotalValue = 2

	settler.On("Settle", mock.Anything, "party", mock.Anything).Return(stale, nil).Once().
		Run(func(mock.Arguments) {
			_, err := svc.UpdatePartyLog(ctx, leader, id, "party v2")
			require.NoError(t, err)
		})
	settler.On("Settle", mock.Anything, "party v2", mock.Anything).Return(fresh, nil).Once()
	publisher.On("Publish", mock.Anything, "Session "+id, fresh).Return(nil).Once()

	sess, err := svc.Calculate(ctx, leader, id)
	require.NoError(t, err)
	assert.Equal(t, "party v2", sess.PartyLog)
	assert.Equal(t, int64(2), sess.Result.TotalValue)

	settler.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestService_CalculateConflict(t *testing.T) {
	svc, settler, publisher := newTestService(t, Config{})
	ctx := context.Background()

	created, _ := svc.Create(ctx, "Knight", "party")
	leader := mustClaims(t, svc, created.Token)
	id := created.Session.ID

	edits := 0
	settler.On("Settle", mock.Anything, mock.Anything, mock.Anything).Return(settlement.EmptyResult(), nil).
		Run(func(mock.Arguments) {
			edits++
			_, err := svc.UpdatePartyLog(ctx, leader, id, fmt.Sprintf("party %d", edits))
			require.NoError(t, err)
		})

	_, err := svc.Calculate(ctx, leader, id)
	assert.ErrorIs(t, err, ErrConflict)
	settler.AssertNumberOfCalls(t, "Settle", calculateAttempts)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)

	stored, err := svc.Get(ctx, leader, id)
	require.NoError(t, err)
	assert.Nil(t, stored.Result)
}

func TestService_CalculateError(t *testing.T) {
	svc, settler, _ := newTestService(t, Config{})
	ctx := context.Background()

	created, _ := svc.Create(ctx, "Knight", "")
	settler.On("Settle", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("no prices"))

	_, err := svc.Calculate(ctx, mustClaims(t, svc, created.Token), created.Session.ID)
	assert.Error(t, err)
}
