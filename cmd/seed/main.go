package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vold333/kitchen-order-ticket/internal/config"
	"github.com/vold333/kitchen-order-ticket/internal/database"
	"github.com/vold333/kitchen-order-ticket/internal/enum"
	"github.com/vold333/kitchen-order-ticket/internal/service"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// CLI flags
	name := flag.String("name", "", "Admin user name (used to log in)")
	email := flag.String("email", "", "Admin email address")
	phone := flag.String("phone", "", "Admin phone number")
	password := flag.String("password", "", "Admin password")
	opening := flag.String("opening", "11:00", "Default opening time (HH:MM)")
	closing := flag.String("closing", "23:30", "Default closing time (HH:MM)")
	flag.Parse()

	// Fall back to environment variables, then defaults
	*name = firstNonEmpty(*name, os.Getenv("SEED_NAME"), "admin")
	*email = firstNonEmpty(*email, os.Getenv("SEED_EMAIL"), "admin@example.com")
	*phone = firstNonEmpty(*phone, os.Getenv("SEED_PHONE"), "00000000")
	if *password == "" {
		*password = os.Getenv("SEED_PASSWORD")
	}
	if *password == "" {
		*password = "password123"
		log.Println("WARNING: Using default password 'password123'. Change immediately in production!")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := database.Migrate(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v", err)
	}
	log.Println("Connected to database")

	// Seed in a transaction: admin and schedule land together or not at all
	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	q := database.New(tx)
	if err := seedAdmin(ctx, q, *name, *email, *phone, *password); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
	if err := seedDefaultSchedule(ctx, q, *opening, *closing); err != nil {
		log.Fatalf("Failed to seed default schedule: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit: %v", err)
	}
	log.Println("Seed completed successfully")
}

// seedAdmin creates the first admin. It does nothing once any admin exists.
func seedAdmin(ctx context.Context, q *database.Queries, name, email, phone, password string) error {
	admins, err := q.CountActiveAdmins(ctx)
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if admins > 0 {
		log.Printf("%d admin(s) already exist, skipping", admins)
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user, err := q.CreateUser(ctx, database.CreateUserParams{
		Name:           name,
		Email:          email,
		Phone:          phone,
		HashedPassword: string(hashed),
		Role:           enum.UserRoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	log.Printf("Created admin user '%s' (ID: %s)", user.Name, user.ID)
	return nil
}

// seedDefaultSchedule stores the default opening hours unless they are already set.
func seedDefaultSchedule(ctx context.Context, q *database.Queries, openingRaw, closingRaw string) error {
	if _, err := q.GetDefaultSchedule(ctx); err == nil {
		log.Println("Default schedule already configured, skipping")
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("get default schedule: %w", err)
	}

	opening, err := service.ParseClock(openingRaw)
	if err != nil {
		return fmt.Errorf("opening: %w", err)
	}
	closing, err := service.ParseClock(closingRaw)
	if err != nil {
		return fmt.Errorf("closing: %w", err)
	}
	if opening >= closing {
		return service.ErrInvalidScheduleTimes
	}

	if _, err := q.UpsertDefaultSchedule(ctx, database.UpsertDefaultScheduleParams{
		OpeningTime: service.ClockTime(opening),
		ClosingTime: service.ClockTime(closing),
	}); err != nil {
		return fmt.Errorf("upsert default schedule: %w", err)
	}

	log.Printf("Default schedule set to %s-%s", service.FormatClock(opening), service.FormatClock(closing))
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
