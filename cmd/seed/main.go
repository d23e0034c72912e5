// Seeds the initial administrator account. Safe to re-run: an existing
// admin email is left untouched.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iota-uz/campus-sdk/modules/core/domain/aggregates/user"
	"github.com/iota-uz/campus-sdk/modules/core/infrastructure/persistence"
	"github.com/iota-uz/campus-sdk/pkg/composables"
	"github.com/iota-uz/campus-sdk/pkg/configuration"
)

func main() {
	conf := configuration.Use()
	defer conf.Unload()
	log := conf.Logger()

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@localhost"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("ADMIN_PASSWORD is required")
	}
	idNumber := os.Getenv("ADMIN_ID_NUMBER")
	if idNumber == "" {
		idNumber = "0000000000"
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		log.WithError(err).Fatal("failed to create database pool")
	}
	defer pool.Close()
	ctx = composables.WithPool(ctx, pool)

	users := persistence.NewUserRepository()
	if _, err := users.GetByEmail(ctx, email); err == nil {
		log.WithField("email", email).Info("admin already exists, nothing to do")
		return
	} else if !errors.Is(err, user.ErrNotFound) {
		log.WithError(err).Fatal("failed to look up admin")
	}

	admin := user.New("System", "Admin", email, user.RoleAdmin, user.WithIDNumber(idNumber))
	admin, err = admin.SetPassword(password)
	if err != nil {
		log.WithError(err).Fatal("failed to hash password")
	}
	if err := composables.InTx(ctx, func(txCtx context.Context) error {
		_, err := users.Create(txCtx, admin)
		return err
	}); err != nil {
		log.WithError(err).Fatal("failed to create admin")
	}
	log.WithField("email", email).Info("admin created")
}
