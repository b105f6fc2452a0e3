package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CompilesAllSchemas(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	for _, name := range []string{SettleRequest, ShareDecode, SessionCreate, SessionJoin, MemberUpdate, PartyLogUpdate} {
		assert.Contains(t, v.schemas, name)
	}
}

func TestValidate(t *testing.T) {
	v := MustNew()

	tests := []struct {
		name    string
		schema  string
		body    string
		wantErr bool
	}{
		{"Settle Valid", SettleRequest, `{"party_log":"","players":[{"name":"A","log":"x"}]}`, false},
		{"Settle Missing Players", SettleRequest, `{"party_log":""}`, true},
		{"Settle Player Missing Log", SettleRequest, `{"players":[{"name":"A"}]}`, true},
		{"Settle Wrong Type", SettleRequest, `{"players":"A"}`, true},
		{"Settle Name Too Long", SettleRequest, `{"players":[{"name":"` + strings.Repeat("a", 65) + `","log":""}]}`, true},
		{"Malformed JSON", SettleRequest, `{"players":`, true},
		{"Decode Empty State", ShareDecode, `{"state":""}`, true},
		{"Member Update Empty", MemberUpdate, `{}`, true},
		{"Member Update Log Only", MemberUpdate, `{"log":"Looted Items:"}`, false},
		{"Join Blank Name", SessionJoin, `{"name":""}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.schema, []byte(tt.body))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := MustNew().Validate("nope", []byte(`{}`))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestBind(t *testing.T) {
	var req struct {
		Name string `json:"name"`
	}
	require.NoError(t, MustNew().Bind(SessionJoin, []byte(`{"name":"Knight"}`), &req))
	assert.Equal(t, "Knight", req.Name)
}
