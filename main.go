package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/promptpilot/promptpilot-go/ai"
	"github.com/promptpilot/promptpilot-go/api"
	"github.com/promptpilot/promptpilot-go/auth"
	"github.com/promptpilot/promptpilot-go/config"
	"github.com/promptpilot/promptpilot-go/email"
	"github.com/promptpilot/promptpilot-go/store"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx := context.Background()

	// A failed store connection is the only fatal startup condition besides
	// missing secrets.
	st, err := store.Connect(ctx, cfg.MongoURI, cfg.DatabaseName)
	if err != nil {
		logger.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to MongoDB")

	completer, err := ai.NewGeminiCompleter(ctx, cfg.GeminiAPIKey)
	if err != nil {
		logger.Error("failed to create completion client", "error", err)
		os.Exit(1)
	}
	defer completer.Close()

	tokens := auth.NewTokenIssuer(cfg.JWTSecret)
	sender := email.NewSendGridSender(cfg.SendGridAPIKey, cfg.EmailFromName, cfg.EmailFromAddress)

	authService := auth.NewService(st.Users(), st.UserSessions(), tokens, sender, logger)
	chatService := ai.NewService(st.ChatSessions(), completer, logger)

	authHandler := api.NewAuthHandler(authService)
	aiHandler := api.NewAIHandler(chatService)

	r := chi.NewRouter()
	r.Use(api.CORS)
	r.Use(api.RequestLogger)

	r.Group(func(r chi.Router) {
		r.Use(api.RateLimit(5, 10))
		r.Post("/api/auth/register", authHandler.HandleRegister)
		r.Post("/api/auth/verify", authHandler.HandleVerify)
		r.Post("/api/auth/login", authHandler.HandleLogin)
		r.Post("/api/auth/request-password-reset", authHandler.HandleRequestPasswordReset)
		r.Post("/api/auth/verify-reset-otp", authHandler.HandleVerifyResetOTP)
		r.Post("/api/auth/reset-password", authHandler.HandleResetPassword)
	})

	r.Group(func(r chi.Router) {
		r.Use(api.RequireAuth(tokens))
		r.Post("/api/auth/logout", authHandler.HandleLogout)
		r.Get("/api/auth/user", authHandler.HandleGetUser)
		r.Get("/api/auth/sessions", authHandler.HandleListUserSessions)

		r.Post("/api/create-session/{service}/{serviceItem}", aiHandler.HandleCreateSession)
		r.Post("/api/ask/{sessionId}", aiHandler.HandleAsk)
		r.Get("/api/get-sessions", aiHandler.HandleGetSessions)
		r.Get("/api/get-session/{sessionId}", aiHandler.HandleGetSession)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced shutdown", "error", err)
	}
	if err := st.Close(shutdownCtx); err != nil {
		logger.Error("failed to close MongoDB connection", "error", err)
	}

	logger.Info("server stopped")
}
