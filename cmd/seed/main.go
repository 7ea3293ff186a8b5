package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ejay-detera/orgspace/common/id"
	"github.com/ejay-detera/orgspace/common/logger"
	"github.com/ejay-detera/orgspace/core/config"
	"github.com/ejay-detera/orgspace/core/db"
	"github.com/ejay-detera/orgspace/internal/model"
	"github.com/ejay-detera/orgspace/internal/store"
)

var seedUsers = []model.User{
	{FirstName: "Test", LastName: "User", Username: "testuser", Email: "test@example.com"},
	{FirstName: "Admin", LastName: "User", Username: "admin", Email: "admin@example.com", IsAdmin: true},
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeSeed)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Setup(cfg)

	if err := id.Init(id.NodeSeed); err != nil {
		slog.ErrorContext(ctx, "failed to initialize id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.ApplySchema(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to apply schema", "error", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Auth.SeedUserPassword), cfg.Auth.BcryptCost)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash seed password", "error", err)
		os.Exit(1)
	}

	users := store.NewStores(database.Queries()).Users()
	for _, u := range seedUsers {
		created, err := seedUser(ctx, users, u, string(hash))
		if err != nil {
			slog.ErrorContext(ctx, "failed to seed user", "username", u.Username, "error", err)
			os.Exit(1)
		}
		slog.InfoContext(ctx, "seed user ready", "username", u.Username, "created", created)
	}
}

// seedUser inserts u unless a user with its email already exists.
func seedUser(ctx context.Context, users store.UserStore, u model.User, passwordHash string) (bool, error) {
	_, err := users.GetByEmail(ctx, u.Email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return false, fmt.Errorf("looking up %s: %w", u.Email, err)
	}

	u.ID = id.New()
	u.PasswordHash = passwordHash
	u.Birthdate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	if err := users.Create(ctx, &u); err != nil {
		return false, fmt.Errorf("creating %s: %w", u.Username, err)
	}
	return true, nil
}
