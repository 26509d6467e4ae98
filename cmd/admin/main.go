// Command admin creates accounts directly against the database. It is an
// operator tool for seeding the first users of a deployment; the password is
// read from the terminal so it never appears in shell history.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/google/uuid"
	"github.com/learnable-edu/learnable/internal/server/auth"
	"github.com/learnable-edu/learnable/internal/server/config"
	"github.com/learnable-edu/learnable/internal/server/models"
	"github.com/learnable-edu/learnable/internal/server/repositories/repomanager"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("Success!")
}

func run() error {
	cfg := config.LoadConfig()

	reader := bufio.NewReader(os.Stdin)

	name, err := prompt(reader, "Enter name")
	if err != nil {
		return err
	}
	email, err := prompt(reader, "Enter email")
	if err != nil {
		return err
	}

	fmt.Println("Enter password")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(string(password))
	if err != nil {
		return err
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	ctx := context.Background()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = rm.Accounts(db).Create(ctx, &models.Account{
		ID:                 uuid.NewString(),
		Name:               name,
		Email:              email,
		PasswordHash:       hash,
		LanguagePreference: "en",
		CreatedAt:          now,
		UpdatedAt:          now,
	})
	return err
}

func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Println(label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
