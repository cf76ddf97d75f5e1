package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"rent-property-service/internal/auth"
	"rent-property-service/internal/config"
	"rent-property-service/internal/handler"
	mongostore "rent-property-service/internal/mongo"
	"rent-property-service/internal/repository"
	"rent-property-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := mongostore.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.ConnectTimeout)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer func() {
		if err := mongostore.Disconnect(client, 5*time.Second); err != nil {
			log.Printf("db disconnect error: %v", err)
		}
	}()

	db := client.Database(cfg.Mongo.Database)
	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("db index error: %v", err)
	}

	users := repository.NewUserRepository(db)
	properties := repository.NewPropertyRepository(db)
	applications := repository.NewApplicationRepository(db)
	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL)

	router := handler.NewRouter(handler.Deps{
		Tokens:           tokens,
		Auth:             service.NewAuthService(users, tokens),
		Applications:     service.NewApplicationService(applications, properties),
		Users:            users,
		Properties:       properties,
		ApplicationsRead: applications,
		Photos:           repository.NewPhotoRepository(db),
		NewestFirst:      cfg.Server.PropertyOrder == "desc",
		MaxPhotoBytes:    cfg.Server.MaxPhotoBytes,
		StoreTimeout:     cfg.Server.StoreTimeout,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		log.Printf("Rent a Property service running on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
