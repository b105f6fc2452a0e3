package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startRealtime(t *testing.T, origins []string) (*Service, *httptest.Server) {
	t.Helper()
	svc, _, _ := newTestService(t, Config{})
	srv := httptest.NewServer(NewRealtime(svc, origins, zap.NewNop()).Handler())
	t.Cleanup(srv.Close)
	return svc, srv
}

func wsURL(srv *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + path
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var ev Event
	require.NoError(t, json.Unmarshal(data, &ev))
	return ev
}

func TestRealtime_PushesUpdates(t *testing.T) {
	svc, srv := startRealtime(t, []string{"*"})
	ctx := context.Background()

	created, err := svc.Create(ctx, "Knight", "")
	require.NoError(t, err)
	id := created.Session.ID

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/sessions/"+id+"?token="+created.Token), nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	snapshot := readEvent(t, conn)
	assert.Equal(t, EventSnapshot, snapshot.Type)
	assert.Equal(t, id, snapshot.Session.ID)

	_, err = svc.Join(ctx, id, "Druid")
	require.NoError(t, err)

	update := readEvent(t, conn)
	assert.Equal(t, EventUpdated, update.Type)
	assert.Len(t, update.Session.Members, 2)
}

func TestRealtime_BearerHeader(t *testing.T) {
	svc, srv := startRealtime(t, []string{"*"})

	created, err := svc.Create(context.Background(), "Knight", "")
	require.NoError(t, err)

	header := http.Header{}
	header.Set("Authorization", "Bearer "+created.Token)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/sessions/"+created.Session.ID), header)
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, EventSnapshot, readEvent(t, conn).Type)
}

func TestRealtime_Rejects(t *testing.T) {
	svc, srv := startRealtime(t, []string{"https://party.example"})
	ctx := context.Background()

	a, err := svc.Create(ctx, "Knight", "")
	require.NoError(t, err)
	b, err := svc.Create(ctx, "Paladin", "")
	require.NoError(t, err)

	t.Run("Missing Token", func(t *testing.T) {
		_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/sessions/"+a.Session.ID), nil)
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Token For Another Session", func(t *testing.T) {
		_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/sessions/"+a.Session.ID+"?token="+b.Token), nil)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Disallowed Origin", func(t *testing.T) {
		header := http.Header{}
		header.Set("Origin", "https://evil.example")
		_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/sessions/"+a.Session.ID+"?token="+a.Token), header)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Allowed Origin", func(t *testing.T) {
		header := http.Header{}
		header.Set("Origin", "https://party.example")
		conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/sessions/"+a.Session.ID+"?token="+a.Token), header)
		require.NoError(t, err)
		conn.Close()
	})
}

func TestRealtime_Health(t *testing.T) {
	_, srv := startRealtime(t, []string{"*"})

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer abc"))
	assert.Empty(t, bearerToken("Basic abc"))
	assert.Empty(t, bearerToken(""))
}
