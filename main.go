package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/antibyte/nxterm/pkg/auth"
	"github.com/antibyte/nxterm/pkg/configuration"
	"github.com/antibyte/nxterm/pkg/diskstore"
	"github.com/antibyte/nxterm/pkg/logger"
	"github.com/antibyte/nxterm/pkg/terminal"
	tlsmanager "github.com/antibyte/nxterm/pkg/tls"
)

func main() {
	// Konfiguration vor allem anderen laden
	configPath := "settings.cfg"
	if err := configuration.Initialize(configPath); err != nil {
		fmt.Printf("Error initializing configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(); err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()
	logger.ConfigInfo("System started - Configuration loaded from: %s", configPath)

	dbPath := configuration.GetString("Disk", "database_path", "nxterm.db")
	store, err := diskstore.Open(dbPath)
	if err != nil {
		logger.Fatal(logger.AreaDatabase, "Database initialization failed: %v", err)
	}
	defer store.Close()
	logger.Info(logger.AreaDatabase, "Disk store opened: %s", dbPath)

	tlsManager, err := tlsmanager.NewTLSManager()
	if err != nil {
		logger.Fatal(logger.AreaSecurity, "TLS manager initialization failed: %v", err)
	}

	handler := terminal.NewHandler(store)
	mux := newMux(handler, terminal.NewDiskAPI(store))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	servers := startServers(mux, tlsManager)
	<-ctx.Done()

	logger.Info(logger.AreaGeneral, "Shutting down (%d active sessions)", handler.ActiveSessions())
	handler.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn(logger.AreaGeneral, "Server %s shutdown: %v", srv.Addr, err)
		}
	}
}

func newMux(handler *terminal.Handler, disks *terminal.DiskAPI) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/session", auth.HandleCreateSession)
	mux.HandleFunc("/api/validate", auth.HandleTokenValidation)
	mux.Handle("/api/disks", auth.RequireSession(disks.ServeHTTP))
	mux.HandleFunc("/ws", auth.RequireSession(handler.HandleWebSocket))

	staticDir := configuration.GetString("Server", "static_dir", "./static")
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	return mux
}

func newServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: configuration.GetDuration("Server", "read_timeout", 15*time.Second),
		WriteTimeout:      configuration.GetDuration("Server", "write_timeout", 15*time.Second),
	}
}

// startServers startet HTTP oder HTTPS (plus HTTP für ACME und Redirects)
func startServers(mux http.Handler, tm *tlsmanager.TLSManager) []*http.Server {
	var servers []*http.Server
	serve := func(srv *http.Server, run func() error) {
		servers = append(servers, srv)
		go func() {
			if err := run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal(logger.AreaGeneral, "Server on %s failed: %v", srv.Addr, err)
			}
		}()
	}

	if !tm.IsEnabled() {
		srv := newServer(":"+configuration.GetString("Server", "http_port", "8080"), mux)
		logger.Info(logger.AreaGeneral, "Starting HTTP server on %s", srv.Addr)
		serve(srv, srv.ListenAndServe)
		return servers
	}

	if tm.NeedsHTTPServer() {
		srv := newServer(tm.HTTPAddr(), tm.GetHTTPHandler())
		logger.Info(logger.AreaSecurity, "Starting HTTP server for ACME challenges and redirects on %s", srv.Addr)
		serve(srv, srv.ListenAndServe)
	}

	srv := newServer(tm.HTTPSAddr(), mux)
	srv.TLSConfig = tm.GetTLSConfig()
	certFile, keyFile := tm.GetCertFiles()
	logger.Info(logger.AreaSecurity, "Starting HTTPS server on %s", srv.Addr)
	serve(srv, func() error { return srv.ListenAndServeTLS(certFile, keyFile) })
	return servers
}
