package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"healai/internal/agent"
	"healai/internal/auth"
	"healai/internal/config"
	"healai/internal/report"
	"healai/internal/user"
)

func main() {
	cfg := config.Load()

	// 1. Infrastructure
	var db *sql.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err == nil {
			err = db.Ping()
		}
		if err == nil {
			break
		}
		fmt.Printf("Waiting for DB... (%d/10)\n", i+1)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatalf("Could not connect to DB: %v", err)
	}
	log.Println("Connected to Database.")

	// Run Migrations
	m, err := migrate.New("file://migrations", cfg.DatabaseURL)
	if err != nil {
		log.Printf("Migration init failed: %v", err)
	} else {
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			log.Printf("Migration up failed: %v", err)
		} else {
			log.Println("Migrations applied successfully!")
		}
	}

	// 2. Clients
	aiClient, err := agent.NewGeminiClient(context.Background(), cfg.GeminiKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("Could not create Gemini client: %v", err)
	}

	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET is not set. All requests will be unauthenticated.")
	}

	// 3. Services
	userRepo := user.NewRepository(db)
	resolver := user.NewResolver(userRepo)

	reportRepo := report.NewRepository(db)
	reportSvc := report.NewService(reportRepo, resolver)
	reportHandler := report.NewHandler(reportSvc)
	agentHandler := agent.NewHandler(aiClient)

	// 4. Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware(cfg.CORSOrigin))
	r.Use(auth.Authenticator(cfg.JWTSecret))

	r.Route("/api", func(r chi.Router) {
		report.RegisterRoutes(r, reportHandler)
		agent.RegisterRoutes(r, agentHandler)
	})

	fmt.Printf("Server starting on port %s...\n", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}

func corsMiddleware(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			if r.Method == "OPTIONS" {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
