package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"bocateria/internal/assistant"
	"bocateria/internal/auth"
	"bocateria/internal/config"
	"bocateria/internal/db"
	"bocateria/internal/llm"
	"bocateria/internal/menu"
	"bocateria/internal/order"
	"bocateria/internal/router"
	"bocateria/internal/session"
	"bocateria/internal/storage"
	"bocateria/internal/voice"

	"github.com/shopspring/decimal"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	cfg := config.Load()

	// Prices go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── PERSISTENCE ─────────────────────────
	var (
		historyRepo order.HistoryRepository = order.NewInMemoryHistoryRepository()
		userRepo    auth.UserRepository     = auth.NewInMemoryUserRepository()
	)
	if cfg.DatabaseURL != "" {
		pgDB := db.ConnectPostgres(cfg.DatabaseURL)
		defer pgDB.Close()

		historyRepo = order.NewPostgresHistoryRepository(pgDB)
		userRepo = auth.NewPostgresUserRepository(pgDB)
	} else {
		log.Println("⚠️  DATABASE_URL not set, order history and staff accounts are kept in memory")
	}

	menuDB, err := db.OpenSQLite(cfg.MenuDBPath)
	if err != nil {
		log.Fatal("❌ Menu database init failed:", err)
	}
	menuRepo, err := menu.NewSQLiteRepository(menuDB)
	if err != nil {
		log.Fatal("❌ Menu schema init failed:", err)
	}

	// ───────────────────────── STORAGE ─────────────────────────
	var uploader menu.ImageUploader = storage.InlineUploader{}
	r2Client, err := storage.NewR2Client(ctx)
	switch {
	case err == nil:
		uploader = r2Client
		log.Println("✅ R2 storage configured")
	case errors.Is(err, storage.ErrNotConfigured):
		log.Println("⚠️  R2 not configured, images are stored inline")
	default:
		log.Fatal("❌ R2 init failed:", err)
	}

	// ───────────────────────── MENU ─────────────────────────
	menuStore := menu.NewStore(menu.DefaultCatalog(), menuRepo, func(msg string) {
		log.Printf("[MENU] %s", msg)
	})
	if err := menuStore.Load(ctx); err != nil {
		log.Printf("[MENU] customizations not restored: %v", err)
	}

	// ───────────────────────── SESSIONS ─────────────────────────
	registry := session.NewRegistry(menuStore, historyRepo, cfg.AssignmentPolicy)
	go registry.Run(ctx)

	// ───────────────────────── AI ─────────────────────────
	var llmClient llm.Client
	switch cfg.LLMProvider {
	case config.ProviderLLaMA:
		llmClient = llm.NewLLaMAClient()
	default:
		llmClient = llm.NewGeminiClient()
	}
	log.Printf("🤖 LLM provider: %s", cfg.LLMProvider)

	assistantService := assistant.NewService(llmClient, menuStore, uploader)
	bridge := voice.NewBridge(voice.ConfigFromEnv())

	// ───────────────────────── HANDLERS ─────────────────────────
	authService := auth.NewService(userRepo, cfg.StaffInviteCode)

	r := router.NewRouter(router.Deps{
		Auth:           auth.NewHandler(authService),
		Menu:           menu.NewHandler(menuStore),
		MenuAdmin:      menu.NewAdminHandler(menuStore, uploader),
		Sessions:       session.NewHandler(registry, menuStore).WithJoinBaseURL(cfg.PublicAppURL),
		Assistant:      assistant.NewHandler(assistantService, registry),
		Voice:          voice.NewHandler(bridge, registry, menuStore),
		AllowedOrigins: cfg.AllowedOrigins,
	})

	// ───────────────────────── START ─────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("🚀 API running at http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
