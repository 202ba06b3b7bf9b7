package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/careerhub/jobportal/internal/common"
	"github.com/careerhub/jobportal/internal/dbx"
	"github.com/careerhub/jobportal/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the PostgreSQL error code for unique_violation.
const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const accountColumns = `id, fullname, email, phone_number, password_hash, role,
	recovery_question, recovery_answer_hash,
	bio, skills, resume, resume_original_name, profile_photo, created_at`

func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {

	query :=
		`INSERT INTO accounts (fullname, email, phone_number, password_hash, role,
		     recovery_question, recovery_answer_hash,
		     bio, skills, resume, resume_original_name, profile_photo)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		account.FullName, account.Email, account.PhoneNumber, account.PasswordHash, account.Role,
		account.RecoveryQuestion, account.RecoveryAnswerHash,
		account.Profile.Bio, joinSkills(account.Profile.Skills),
		account.Profile.Resume, account.Profile.ResumeOriginalName, account.Profile.ProfilePhoto,
	).Scan(&account.ID, &account.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrDuplicateAccount
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`
	return r.getOne(ctx, query, email)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.Account, error) {
	account := &models.Account{}
	var skills string

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&account.ID, &account.FullName, &account.Email, &account.PhoneNumber,
		&account.PasswordHash, &account.Role,
		&account.RecoveryQuestion, &account.RecoveryAnswerHash,
		&account.Profile.Bio, &skills, &account.Profile.Resume,
		&account.Profile.ResumeOriginalName, &account.Profile.ProfilePhoto,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	account.Profile.Skills = splitSkills(skills)
	return account, nil
}

func (r *PostgresRepository) Update(ctx context.Context, account *models.Account) error {

	query :=
		`UPDATE accounts
		 SET fullname = $2, email = $3, phone_number = $4, password_hash = $5,
		     recovery_question = $6, recovery_answer_hash = $7,
		     bio = $8, skills = $9, resume = $10, resume_original_name = $11, profile_photo = $12
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.FullName, account.Email, account.PhoneNumber, account.PasswordHash,
		account.RecoveryQuestion, account.RecoveryAnswerHash,
		account.Profile.Bio, joinSkills(account.Profile.Skills),
		account.Profile.Resume, account.Profile.ResumeOriginalName, account.Profile.ProfilePhoto,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return common.ErrDuplicateAccount
		}
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}

// Skills are stored as a single comma-joined column; the ordering of the
// list is preserved.

func joinSkills(skills []string) string {
	return strings.Join(skills, ",")
}

func splitSkills(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
