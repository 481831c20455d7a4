package terminal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antibyte/nxterm/pkg/shared"
)

func TestValidateMessage(t *testing.T) {
	v := NewJSONValidator()

	msg, err := v.ValidateMessage([]byte(`{"type":"input","key":"ArrowUp","down":true}`))
	require.NoError(t, err)
	assert.Equal(t, shared.MessageTypeInput, msg.Type)
	assert.Equal(t, "ArrowUp", msg.Key)
	assert.True(t, msg.Down)

	msg, err = v.ValidateMessage([]byte(`{"type":"input","touch":{"x":10,"y":20,"pressed":true}}`))
	require.NoError(t, err)
	require.NotNil(t, msg.Touch)
	assert.Equal(t, shared.Touch{X: 10, Y: 20, Pressed: true}, *msg.Touch)

	// program text is not filtered
	msg, err = v.ValidateMessage([]byte(`{"type":"run","source":"PRINT \"../bash ${X}\""}`))
	require.NoError(t, err)
	assert.Equal(t, `PRINT "../bash ${X}"`, msg.Source)
}

func TestValidateMessageRejects(t *testing.T) {
	v := NewJSONValidator()
	v.MaxSize = 1024
	v.MaxStringLen = 100

	tests := []struct {
		name string
		data string
		want error
	}{
		{"too large", `{"type":"run","source":"` + strings.Repeat("A", 2000) + `"}`, ErrJSONTooLarge},
		{"long string", `{"type":"run","source":"` + strings.Repeat("A", 200) + `"}`, ErrJSONStringTooLong},
		{"too deep", `{"type":"input","touch":{"a":{"b":{"c":{"d":{}}}}}}`, ErrJSONTooDeep},
		{"server type", `{"type":"session"}`, ErrUnknownMessage},
		{"no type", `{}`, ErrUnknownMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.ValidateMessage([]byte(tt.data))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := v.ValidateMessage([]byte(`{"type":"stop","extra":1}`))
	assert.Error(t, err)
	_, err = v.ValidateMessage([]byte(`not json`))
	assert.Error(t, err)
}

func TestSecurityValidator(t *testing.T) {
	sv := NewSecurityValidator()

	assert.NoError(t, sv.ValidateSource("PRINT \"HI\"\r\n\tEND\n"))
	assert.Error(t, sv.ValidateSource("PRINT \x00"))
	assert.Error(t, sv.ValidateSource(strings.Repeat("A", 129*1024)))

	for _, name := range []string{"DISK", "my-games_2", "v1.0"} {
		assert.NoError(t, sv.ValidateDiskName(name), name)
	}
	for _, name := range []string{"", "..", "a/b", "ÄRGER", strings.Repeat("x", 65)} {
		assert.Error(t, sv.ValidateDiskName(name), name)
	}

	assert.NoError(t, sv.ValidateKey("ArrowUp"))
	assert.Error(t, sv.ValidateKey("\x1b"))
	assert.Error(t, sv.ValidateKey(strings.Repeat("k", 17)))

	assert.NoError(t, sv.ValidateSessionID("0b4e7a4c-1f2d-4c59-9d1e-3f7a8b9c0d1e"))
	assert.Error(t, sv.ValidateSessionID(""))
	assert.Error(t, sv.ValidateSessionID("a b"))
}

func TestClientManagerLimits(t *testing.T) {
	cm := NewClientManager()
	cm.maxClients = 1
	cm.maxRequests = 2

	a, b := &Client{shutdown: make(chan struct{})}, &Client{shutdown: make(chan struct{})}
	require.NoError(t, cm.AddClient("a", a))
	assert.ErrorIs(t, cm.AddClient("b", b), ErrTooManySessions)
	assert.True(t, cm.HasClient("a"))

	cm.RemoveClient("a", b)
	assert.True(t, cm.HasClient("a"))
	cm.RemoveClient("a", a)
	assert.Equal(t, 0, cm.GetClientCount())

	assert.NoError(t, cm.CheckRateLimit("10.0.0.1"))
	assert.NoError(t, cm.CheckRateLimit("10.0.0.1"))
	assert.ErrorIs(t, cm.CheckRateLimit("10.0.0.1"), ErrRateLimited)
	assert.NoError(t, cm.CheckRateLimit("10.0.0.2"))
}
