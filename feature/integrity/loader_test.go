package integrity

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFeature(t *testing.T) {
	f := NewFeature(nil, "", "", nil, defaultCache(t), zap.NewNop())

	assert.Equal(t, "integrity", f.Name())
	assert.True(t, f.IsEnabled())
	assert.NotNil(t, f.Service())

	app := fiber.New()
	require.NoError(t, f.Load(app))

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/prices", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
