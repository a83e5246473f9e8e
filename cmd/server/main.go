package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tallyhq/tally/internal/auth"
	"github.com/tallyhq/tally/internal/middleware"
	"github.com/tallyhq/tally/internal/service"
	"github.com/tallyhq/tally/internal/storage/sqlite"
	"github.com/tallyhq/tally/internal/ws"
	"github.com/tallyhq/tally/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	// Get paths from env or use defaults
	port := getEnv("PORT", "4000")
	dbPath := getEnv("DB_PATH", "./data/tally.db")
	staticPath := getEnv("STATIC_PATH", "./public")

	// Initialize SQLite storage
	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	// Credential scheme: plaintext preserves the historical protocol
	// behavior; AUTH_SCHEME=bcrypt switches to hashed storage.
	var verifier auth.Verifier
	switch scheme := getEnv("AUTH_SCHEME", "plain"); scheme {
	case "plain":
		verifier = auth.NewPlainVerifier()
	case "bcrypt":
		verifier = auth.NewBcryptVerifier()
	default:
		slog.Error("Unknown AUTH_SCHEME", "scheme", scheme)
		os.Exit(1)
	}

	ledger := service.NewLedgerService(store, verifier)
	wsServer := ws.NewServer(ledger)

	mux := http.NewServeMux()
	mux.Handle("/ws", wsServer)
	mux.Handle("/metrics", promhttp.Handler())

	// Serve static files for the bundled client, if present
	staticDir, err := filepath.Abs(staticPath)
	if err != nil {
		slog.Error("Failed to resolve static path", "error", err)
		os.Exit(1)
	}
	slog.Info("Serving static files", "path", staticDir)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	})

	addr := fmt.Sprintf(":%s", port)
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, middleware.Logging(mux)); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
