package main

import (
	"context"
	"flag"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/devlinkhq/devlink/config"
	"github.com/devlinkhq/devlink/internal/logger"
	"github.com/devlinkhq/devlink/internal/models"
	pgrepo "github.com/devlinkhq/devlink/internal/repositories/postgres"
	"github.com/devlinkhq/devlink/internal/utils"
)

// Operator tool: provisions an identity record so a profile can be
// created against it. Registration and login live in the auth service;
// this exists for local development and test environments.
func main() {
	var (
		name     = flag.String("name", "", "display name")
		email    = flag.String("email", "", "email address (unique)")
		password = flag.String("password", "", "plaintext password, stored as a bcrypt hash")
	)
	flag.Parse()

	_ = godotenv.Load()

	log := logger.New()

	if *name == "" || *email == "" || *password == "" {
		log.Fatal("-name, -email and -password are all required")
	}

	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	if err := config.PostgresDB.AutoMigrate(&models.User{}); err != nil {
		log.Fatalf("migrate users table: %v", err)
	}

	hash, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Name:         *name,
		Email:        *email,
		PasswordHash: hash,
		Avatar:       utils.GravatarURL(*email, 200),
		CreatedAt:    time.Now().UTC(),
	}

	users := pgrepo.NewUserRepo(config.PostgresDB)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := users.Create(ctx, u); err != nil {
		log.Fatalf("create user: %v", err)
	}

	log.WithField("user_id", u.ID).Info("user created")
}
