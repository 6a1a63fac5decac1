/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"connecto/internal/config"
	"connecto/internal/entity"
	"connecto/internal/genai"
	"connecto/internal/handler"
	"connecto/internal/httpserver"
	"connecto/internal/logging"
	"connecto/internal/presence"
	"connecto/internal/realtime"
	"connecto/internal/repository"
	"connecto/internal/service"
)

func main() {
	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log := logging.With("main")

	if cfg.SessionSecret == "" {
		log.Warn().Msg("SESSION_SECRET is not set, login and signup will be rejected")
	}

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DatabasePath).Msg("could not open database")
	}

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.UserSecret{},
		&entity.Message{},
		&entity.ChatGroup{},
		&entity.GroupMessage{},
		&entity.AuraChat{},
		&entity.AuraMessage{},
	); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}

	// Repositories
	users := repository.NewSQLiteUserRepository(db)
	messages := repository.NewSQLiteMessageRepository(db)
	groups := repository.NewSQLiteGroupRepository(db)
	aura := repository.NewSQLiteAuraRepository(db)

	// Realtime plane
	registry := presence.NewMemoryRegistry()
	hub := realtime.NewHub(registry, cfg.CORSOrigins)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go hub.Run(ctx)

	// Services
	generator := genai.NewHTTPGenerator(cfg.GenAIURL, cfg.GenAIKey)
	authService := service.NewAuthService(users)
	messageService := service.NewMessageService(messages, groups, users, hub)
	groupService := service.NewGroupService(groups, users, hub)
	adminService := service.NewAdminService(users, messages, groups, aura)
	auraService := service.NewAuraService(aura, generator)

	// HTTP layer
	cookieStore := httpserver.NewCookieStore(cfg.SessionSecret)
	server := httpserver.New(cfg, httpserver.Deps{
		Users:       users,
		CookieStore: cookieStore,
		Auth:        handler.NewAuthHandler(authService, cookieStore),
		Messages:    handler.NewMessageHandler(messageService, groupService),
		Admin:       handler.NewAdminHandler(adminService, groupService),
		Aura:        handler.NewAuraHandler(auraService),
		Hub:         hub,
	})

	if err := server.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("shutdown complete")
}
