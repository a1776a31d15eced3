// Команда provision выдает роль пользователю напрямую в справочнике.
// Используется для назначения первого SUPER_ADMIN, дальше роли меняются через API.
//
//	provision -uid <firebase uid> -email boss@student.ukm.my -role SUPER_ADMIN
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-BarberBooking/internal/config"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	userRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/user"
	usersService "github.com/m04kA/SMC-BarberBooking/internal/service/users"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/retry"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	userID := flag.String("uid", "", "user id from the identity provider")
	email := flag.String("email", "", "email for a profile that does not exist yet")
	roleName := flag.String("role", domain.RoleSuperAdmin.String(), "STUDENT, ADMIN or SUPER_ADMIN")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "-uid is required")
		flag.Usage()
		os.Exit(2)
	}

	role, err := domain.ParseRole(*roleName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -role: %v\n", err)
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	retrier := retry.New(retry.Config{
		MaxAttempts:     cfg.Retry.MaxAttempts,
		InitialInterval: time.Duration(cfg.Retry.InitialIntervalMs) * time.Millisecond,
		MaxInterval:     time.Duration(cfg.Retry.MaxIntervalMs) * time.Millisecond,
	}, retry.IsTransientPostgres)

	userSvc := usersService.NewService(
		userRepo.NewRepository(dbmetrics.Wrap(db, nil, cfg.Database.DBName)),
		retrier,
		cfg.Signup.DefaultEmailDomain,
		log,
	)

	user, err := userSvc.Provision(ctx, domain.Identity{UserID: *userID, Email: *email}, role)
	if err != nil {
		log.Fatal("Provision failed: %v", err)
	}

	fmt.Printf("user %s (%s) now has role %s\n", user.ID, user.Email, user.Role)
}
