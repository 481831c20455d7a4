package tls

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledByDefault(t *testing.T) {
	manager, err := NewTLSManager()
	require.NoError(t, err)
	assert.False(t, manager.IsEnabled())
	assert.Nil(t, manager.GetTLSConfig())
	assert.False(t, manager.NeedsHTTPServer())
}

func TestConfigValidation(t *testing.T) {
	dir := t.TempDir()
	cert := filepath.Join(dir, "server.crt")
	key := filepath.Join(dir, "server.key")
	require.NoError(t, os.WriteFile(cert, []byte("cert"), 0600))
	require.NoError(t, os.WriteFile(key, []byte("key"), 0600))

	tests := []struct {
		name   string
		config TLSConfig
		want   error
	}{
		{"nothing", TLSConfig{Enabled: true}, ErrMissingDomain},
		{"no email", TLSConfig{Enabled: true, Domain: "nx.test"}, ErrMissingEmail},
		{"missing key", TLSConfig{Enabled: true, CertFile: cert, KeyFile: filepath.Join(dir, "none")}, ErrMissingCert},
		{"files", TLSConfig{Enabled: true, CertFile: cert, KeyFile: key}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := tt.config
			_, err := NewTLSManagerWithConfig(&config)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestLetsEncrypt(t *testing.T) {
	config := &TLSConfig{
		Enabled:   true,
		Domain:    "nx.test",
		Email:     "admin@nx.test",
		CacheDir:  filepath.Join(t.TempDir(), "certs"),
		HTTPSPort: "443",
	}
	manager, err := NewTLSManagerWithConfig(config)
	require.NoError(t, err)
	require.NotNil(t, manager.GetTLSConfig())
	assert.True(t, manager.NeedsHTTPServer())
	assert.DirExists(t, config.CacheDir)
}

func TestRedirect(t *testing.T) {
	manager := &TLSManager{config: &TLSConfig{Enabled: true, ForceHTTPSRedirect: true, HTTPSPort: "8443"}}
	rec := httptest.NewRecorder()
	manager.GetHTTPHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://nx.test:8080/ws?x=1", nil))

	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "https://nx.test:8443/ws?x=1", rec.Header().Get("Location"))
}
