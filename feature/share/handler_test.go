package share

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"loot-splitter/core/settlement"
	"loot-splitter/core/validate"

	"github.com/gofiber/fiber/v2"
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

func setupTestApp(t *testing.T) (*fiber.App, *Service, *mockSettler) {
	t.Helper()
	codec, err := NewCodec(CompressionZstd)
	require.NoError(t, err)

	settler := new(mockSettler)
	svc := NewService(codec, NewMemoryStore(), settler, time.Hour, zap.NewNop())

	app := fiber.New()
	NewHandler(svc, validate.MustNew()).RegisterRoutes(app)
	return app, svc, settler
}

func post(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestHandleCreateAndResolve(t *testing.T) {
	app, _, _ := setupTestApp(t)

	status, created := post(t, app, "/share", `{"party_log":"p","players":[{"name":"Knight","log":"l"}]}`)
	require.Equal(t, fiber.StatusCreated, status)
	code, _ := created["code"].(string)
	require.NotEmpty(t, code)
	assert.NotEmpty(t, created["state"])

	resp, err := app.Test(httptest.NewRequest("GET", "/share/"+code, nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body struct {
		Code    string `json:"code"`
		Encoded string `json:"encoded"`
		State   State  `json:"state"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, code, body.Code)
	assert.Equal(t, created["state"], body.Encoded)
	assert.Equal(t, "p", body.State.PartyLog)
	assert.Equal(t, []settlement.PlayerInput{{Name: "Knight", Log: "l"}, {}}, body.State.Players)
}

func TestHandleResolve_NotFound(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/share/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleDecode(t *testing.T) {
	app, svc, _ := setupTestApp(t)

	encoded, err := svc.Encode(State{PartyLog: "p", Players: []settlement.PlayerInput{{Name: "A", Log: "a"}}})
	require.NoError(t, err)

	status, body := post(t, app, "/share/decode", `{"state":"`+encoded+`"}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, "p", body["party_log"])

	status, _ = post(t, app, "/share/decode", `{"state":"garbage"}`)
	assert.Equal(t, 400, status)

	status, _ = post(t, app, "/share/decode", `{}`)
	assert.Equal(t, 400, status)
}

func TestHandleSettle(t *testing.T) {
	app, svc, settler := setupTestApp(t)

	players := []settlement.PlayerInput{{Name: "A", Log: "a"}, {Name: "B", Log: "b"}}
	encoded, err := svc.Encode(State{PartyLog: "p", Players: players})
	require.NoError(t, err)

	result := settlement.EmptyResult()
	result.TotalValue = 42
	settler.On("Settle", mock.Anything, "p", players).Return(result, nil)

	status, body := post(t, app, "/share/settle", `{"state":"`+encoded+`"}`)
	require.Equal(t, 200, status)
	assert.Equal(t, float64(42), body["result"].(map[string]any)["total_value"])
	settler.AssertExpectations(t)
}
