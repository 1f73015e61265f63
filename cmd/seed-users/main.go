package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/easy2drive/quiz-backend/internal/config"
	"github.com/easy2drive/quiz-backend/internal/database"
	"github.com/easy2drive/quiz-backend/internal/logger"
	"github.com/easy2drive/quiz-backend/internal/model"
	"github.com/easy2drive/quiz-backend/internal/repository"
	"github.com/easy2drive/quiz-backend/internal/service"
	"github.com/jackc/pgx/v5"
)

// Creates demo learner accounts (learner01@easy2drive.local, ...) sharing one password.
func main() {
	var count int
	var password string
	flag.IntVar(&count, "count", 20, "Number of learners to create")
	flag.StringVar(&password, "password", "easy2drive", "Password for every seeded learner")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)
	authService := service.NewAuthService(cfg, userRepo)

	hash, err := authService.HashPassword(password)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	fmt.Printf("=== Seeding %d Learners ===\n", count)

	created, skipped := 0, 0
	for i := 1; i <= count; i++ {
		email := fmt.Sprintf("learner%02d@easy2drive.local", i)

		_, err := userRepo.GetByEmail(ctx, email)
		if err == nil {
			skipped++
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			log.Fatal().Err(err).Str("email", email).Msg("Failed to check existing learner")
		}

		user := &model.User{
			Email:        email,
			Name:         fmt.Sprintf("Learner %02d", i),
			PasswordHash: hash,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			fmt.Printf("Error creating learner %s: %v\n", email, err)
			continue
		}
		created++
		if created%10 == 0 {
			fmt.Printf("Created %d learners...\n", created)
		}
	}

	fmt.Printf("\nSeed completed! Created %d, skipped %d existing.\n", created, skipped)
}
