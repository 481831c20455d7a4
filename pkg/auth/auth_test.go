package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSessionID(t *testing.T) {
	a := generateSessionID()
	b := generateSessionID()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}

func TestSessionToken(t *testing.T) {
	token, err := GenerateSessionToken("session-1")
	require.NoError(t, err)

	claims, err := ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "session-1", claims.SessionID)
	assert.Equal(t, tokenIssuer, claims.Issuer)
}

func signClaims(t *testing.T, claims SessionClaims, method jwt.SigningMethod, key interface{}) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestInvalidTokens(t *testing.T) {
	now := time.Now()
	valid := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Hour))
	foreign := valid
	foreign.Issuer = "someone-else"
	secret := []byte(getJWTSecret())

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"expired", signClaims(t, SessionClaims{"s", expired}, jwt.SigningMethodHS256, secret)},
		{"wrong issuer", signClaims(t, SessionClaims{"s", foreign}, jwt.SigningMethodHS256, secret)},
		{"wrong key", signClaims(t, SessionClaims{"s", valid}, jwt.SigningMethodHS256, []byte("other"))},
		{"no session", signClaims(t, SessionClaims{"", valid}, jwt.SigningMethodHS256, secret)},
		{"unsigned", signClaims(t, SessionClaims{"s", valid}, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateSessionToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestExtractTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/ws?token=query", nil)
	token, err := ExtractTokenFromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, "query", token)

	r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "cookie"})
	token, err = ExtractTokenFromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, "cookie", token)

	r.Header.Set("Authorization", "Bearer header")
	token, err = ExtractTokenFromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, "header", token)

	r.Header.Set("Authorization", "Basic xyz")
	_, err = ExtractTokenFromRequest(r)
	assert.Error(t, err)

	_, err = ExtractTokenFromRequest(httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestHandleCreateSession(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleCreateSession(rec, httptest.NewRequest(http.MethodPost, "/api/session", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)

	claims, err := ValidateSessionToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.SessionID, claims.SessionID)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookieName, cookies[0].Name)
	assert.Equal(t, resp.Token, cookies[0].Value)

	rec = httptest.NewRecorder()
	HandleCreateSession(rec, httptest.NewRequest(http.MethodGet, "/api/session", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequireSession(t *testing.T) {
	var seen string
	handler := RequireSession(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetSessionIDFromContext(r.Context())
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, seen)

	token, err := GenerateSessionToken("abc")
	require.NoError(t, err)
	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/ws?token="+token, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc", seen)
}
