package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aditigupta-200/ESG-Questionnaire/internal/api"
	dbstore "github.com/aditigupta-200/ESG-Questionnaire/internal/db"
	"github.com/aditigupta-200/ESG-Questionnaire/internal/middleware"
	"github.com/aditigupta-200/ESG-Questionnaire/internal/observability/metrics"
	"github.com/aditigupta-200/ESG-Questionnaire/internal/utils"
)

func openStore() (api.Store, func(), error) {
	path := os.Getenv("ESG_SQLITE_PATH")
	if path == "" {
		log.Printf("ESG_SQLITE_PATH not set, using in-memory store (data is lost on restart)")
		return api.NewMemoryStore(), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?cache=shared&_busy_timeout=5000", filepath.ToSlash(path))
	sqliteDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := dbstore.RunMigrations(sqliteDB, os.Getenv("ESG_MIGRATIONS_DIR")); err != nil {
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	store, err := dbstore.NewStore(sqliteDB)
	if err != nil {
		return nil, nil, fmt.Errorf("init sqlite store: %w", err)
	}
	closeFn := func() {
		if cerr := sqliteDB.Close(); cerr != nil {
			log.Printf("warning: failed to close sqlite db: %v", cerr)
		}
	}
	return store, closeFn, nil
}

func main() {
	addr := utils.SafeEnv("ESG_ADDR", ":8080")
	commit := os.Getenv("ESG_COMMIT")
	buildTime := os.Getenv("ESG_BUILD_TIME")

	store, closeStore, err := openStore()
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer closeStore()

	mux := http.NewServeMux()
	api.NewRouter(store).Register(mux)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":         true,
			"name":       "ESG Questionnaire API",
			"commit":     commit,
			"build_time": buildTime,
		})
	})
	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"commit":     commit,
			"build_time": buildTime,
		})
	})

	// Serve the built frontend when bundled into the image.
	if staticDir := os.Getenv("ESG_STATIC_DIR"); staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}

	handler := middleware.NoStore(middleware.SecureHeaders(middleware.CORS(metrics.HTTPMetricsMiddleware(mux))))

	log.Printf("ESG Questionnaire server listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
