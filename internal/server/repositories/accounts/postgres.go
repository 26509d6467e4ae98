package accounts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/learnable-edu/learnable/internal/common"
	"github.com/learnable-edu/learnable/internal/dbx"
	"github.com/learnable-edu/learnable/internal/server/models"
)

const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const accountColumns = `id, name, email, password_hash, disability_types, age, language_preference, grade_level, created_at, updated_at`

func scanAccount(row *sql.Row) (*models.Account, error) {
	a := &models.Account{}
	var disability []byte
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &disability,
		&a.Age, &a.LanguagePreference, &a.GradeLevel, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := json.Unmarshal(disability, &a.DisabilityTypes); err != nil {
		return nil, fmt.Errorf("decoding disability_types: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {

	disability, err := json.Marshal(account.DisabilityTypes)
	if err != nil {
		return nil, fmt.Errorf("encoding disability_types: %w", err)
	}

	query :=
		`INSERT INTO accounts (` + accountColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 `

	_, err = r.db.ExecContext(ctx, query,
		account.ID, account.Name, account.Email, account.PasswordHash, disability,
		account.Age, account.LanguagePreference, account.GradeLevel,
		account.CreatedAt, account.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrorDuplicateEmail
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`
	return scanAccount(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return scanAccount(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, id string, upd *models.ProfileUpdate, updatedAt time.Time) (*models.Account, error) {

	set := []string{"updated_at = $1"}
	args := []any{updatedAt}
	next := 2

	add := func(column string, value any) {
		set = append(set, fmt.Sprintf("%s = $%d", column, next))
		args = append(args, value)
		next++
	}

	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.DisabilityTypes != nil {
		disability, err := json.Marshal(upd.DisabilityTypes)
		if err != nil {
			return nil, fmt.Errorf("encoding disability_types: %w", err)
		}
		add("disability_types", disability)
	}
	if upd.Age != nil {
		add("age", *upd.Age)
	}
	if upd.LanguagePreference != nil {
		add("language_preference", *upd.LanguagePreference)
	}
	if upd.GradeLevel != nil {
		add("grade_level", *upd.GradeLevel)
	}

	query := fmt.Sprintf(`UPDATE accounts SET %s WHERE id = $%d`, strings.Join(set, ", "), next)
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return nil, common.ErrorNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *PostgresRepository) UpdatePasswordHash(ctx context.Context, id string, hash string, updatedAt time.Time) error {
	query := `UPDATE accounts SET password_hash = $1, updated_at = $2 WHERE id = $3`

	res, err := r.db.ExecContext(ctx, query, hash, updatedAt, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
