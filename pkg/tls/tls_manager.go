// Package tls configures HTTPS for the console server, either with
// certificates from Let's Encrypt or with certificate files.
package tls

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"

	"golang.org/x/crypto/acme/autocert"

	"github.com/antibyte/nxterm/pkg/configuration"
	"github.com/antibyte/nxterm/pkg/logger"
)

var (
	ErrMissingDomain = errors.New("domain is required for Let's Encrypt")
	ErrMissingEmail  = errors.New("email is required for Let's Encrypt")
	ErrMissingCert   = errors.New("certificate file not found")
)

// TLSConfig holds the [TLS] section
type TLSConfig struct {
	Enabled            bool
	Domain             string
	Email              string
	CacheDir           string
	CertFile           string
	KeyFile            string
	ForceHTTPSRedirect bool
	HTTPPort           string
	HTTPSPort          string
}

// LetsEncrypt reports whether certificates come from autocert. Without
// certificate files a domain is enough.
func (c *TLSConfig) LetsEncrypt() bool {
	return c.Domain != "" && c.CertFile == ""
}

// LoadConfig reads the [TLS] section
func LoadConfig() *TLSConfig {
	return &TLSConfig{
		Enabled:            configuration.GetBool("TLS", "enabled", false),
		Domain:             strings.TrimSpace(configuration.GetString("TLS", "domain", "")),
		Email:              strings.TrimSpace(configuration.GetString("TLS", "email", "")),
		CacheDir:           configuration.GetString("TLS", "cache_dir", "certs"),
		CertFile:           configuration.GetString("TLS", "cert_file", ""),
		KeyFile:            configuration.GetString("TLS", "key_file", ""),
		ForceHTTPSRedirect: configuration.GetBool("TLS", "force_https_redirect", true),
		HTTPPort:           configuration.GetString("TLS", "http_port", "80"),
		HTTPSPort:          configuration.GetString("TLS", "https_port", "443"),
	}
}

// TLSManager handles certificate management
type TLSManager struct {
	config      *TLSConfig
	autocertMgr *autocert.Manager
	tlsConfig   *tls.Config
}

// NewTLSManager creates a manager from the configuration
func NewTLSManager() (*TLSManager, error) {
	return NewTLSManagerWithConfig(LoadConfig())
}

// NewTLSManagerWithConfig validates config and prepares certificates
func NewTLSManagerWithConfig(config *TLSConfig) (*TLSManager, error) {
	tm := &TLSManager{config: config}
	if !config.Enabled {
		return tm, nil
	}
	if err := tm.validateConfig(); err != nil {
		return nil, fmt.Errorf("TLS configuration validation failed: %w", err)
	}
	if config.LetsEncrypt() {
		if err := tm.initializeLetsEncrypt(); err != nil {
			return nil, fmt.Errorf("TLS initialization failed: %w", err)
		}
	} else {
		logger.Info(logger.AreaSecurity, "Using certificate %s with key %s", config.CertFile, config.KeyFile)
	}
	return tm, nil
}

func (tm *TLSManager) validateConfig() error {
	if tm.config.LetsEncrypt() {
		if tm.config.Email == "" {
			return ErrMissingEmail
		}
		if strings.Contains(tm.config.Domain, "example.com") {
			logger.SecurityWarn("Using example domain - change this in production!")
		}
		return nil
	}
	if tm.config.CertFile == "" {
		return ErrMissingDomain
	}
	for _, f := range []string{tm.config.CertFile, tm.config.KeyFile} {
		if _, err := os.Stat(f); err != nil {
			return fmt.Errorf("%w: %s", ErrMissingCert, f)
		}
	}
	return nil
}

func (tm *TLSManager) initializeLetsEncrypt() error {
	logger.Info(logger.AreaSecurity, "Initializing Let's Encrypt for domain: %s", tm.config.Domain)

	if err := os.MkdirAll(tm.config.CacheDir, 0700); err != nil {
		return fmt.Errorf("failed to create certificate cache directory: %w", err)
	}

	tm.autocertMgr = &autocert.Manager{
		Cache:      autocert.DirCache(tm.config.CacheDir),
		Prompt:     autocert.AcceptTOS,
		Email:      tm.config.Email,
		HostPolicy: autocert.HostWhitelist(tm.config.Domain, "www."+tm.config.Domain),
	}

	tm.tlsConfig = &tls.Config{
		GetCertificate: func(hello *tls.ClientHelloInfo) (*tls.Certificate, error) {
			// Ohne SNI gilt die konfigurierte Domain
			if hello.ServerName == "" {
				hello.ServerName = tm.config.Domain
			}
			cert, err := tm.autocertMgr.GetCertificate(hello)
			if err != nil {
				logger.SecurityWarn("Failed to get certificate for %s: %v", hello.ServerName, err)
			}
			return cert, err
		},
		NextProtos: []string{"h2", "http/1.1", "acme-tls/1"},
		MinVersion: tls.VersionTLS12,
	}
	return nil
}

// GetTLSConfig returns the configuration for the HTTPS server, nil when
// certificate files are used
func (tm *TLSManager) GetTLSConfig() *tls.Config {
	return tm.tlsConfig
}

// IsEnabled returns true if TLS is enabled
func (tm *TLSManager) IsEnabled() bool {
	return tm.config.Enabled
}

// GetCertFiles returns the certificate and key file paths
func (tm *TLSManager) GetCertFiles() (string, string) {
	return tm.config.CertFile, tm.config.KeyFile
}

// HTTPSAddr returns the listen address of the HTTPS server
func (tm *TLSManager) HTTPSAddr() string {
	return ":" + tm.config.HTTPSPort
}

// HTTPAddr returns the listen address of the plain HTTP server
func (tm *TLSManager) HTTPAddr() string {
	return ":" + tm.config.HTTPPort
}

// NeedsHTTPServer returns true if a plain HTTP server is needed for
// ACME challenges or redirects
func (tm *TLSManager) NeedsHTTPServer() bool {
	return tm.config.Enabled && (tm.autocertMgr != nil || tm.config.ForceHTTPSRedirect)
}

// GetHTTPHandler answers ACME challenges and redirects everything else
// to HTTPS
func (tm *TLSManager) GetHTTPHandler() http.Handler {
	redirect := tm.redirectHandler()
	if tm.autocertMgr != nil {
		return tm.autocertMgr.HTTPHandler(redirect)
	}
	return redirect
}

func (tm *TLSManager) redirectHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host := r.Host
		if h, _, err := net.SplitHostPort(host); err == nil {
			host = h
		}
		target := "https://" + host
		if tm.config.HTTPSPort != "443" {
			target += ":" + tm.config.HTTPSPort
		}
		target += r.URL.RequestURI()
		logger.Debug(logger.AreaSecurity, "Redirecting HTTP to HTTPS: %s", target)
		http.Redirect(w, r, target, http.StatusMovedPermanently)
	})
}
