// Package services contains server-side business logic. This file implements
// AccountService, which handles registration, login, the two-step recovery
// flow, and profile updates.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/careerhub/jobportal/internal/common"
	"github.com/careerhub/jobportal/internal/dbx"
	"github.com/careerhub/jobportal/internal/logging"
	"github.com/careerhub/jobportal/internal/objstore"
	"github.com/careerhub/jobportal/internal/server/auth"
	"github.com/careerhub/jobportal/internal/server/config"
	"github.com/careerhub/jobportal/internal/server/models"
	"github.com/careerhub/jobportal/internal/server/repositories/repomanager"
)

// Session is a freshly issued token and its lifetime.
type Session struct {
	Token     string
	ExpiresIn time.Duration
}

// MinPasswordLength applies to new passwords set through the recovery flow.
const MinPasswordLength = 6

// AccountService provides the account operations of the portal:
// - Register: validate input, upload the profile photo, create the account
// - Login: verify credentials and mint a session token
// - RecoverVerify / RecoverReset: the stateless two-step recovery flow
// - UpdateProfile: partial profile updates, optionally with a resume upload
type AccountService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	uploader      objstore.Uploader
	hasher        auth.PasswordHasher
	logger        logging.Logger
	jwtSecret     []byte
	tokenValidity time.Duration
	maxAssetSize  int64
}

// NewAccountService constructs an AccountService using repositories, the
// upload client, and server config.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, uploader objstore.Uploader,
	hasher auth.PasswordHasher, logger logging.Logger, cfg *config.Config) *AccountService {
	return &AccountService{
		db:            db,
		repomanager:   m,
		uploader:      uploader,
		hasher:        hasher,
		logger:        logger,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
		maxAssetSize:  cfg.MaxAssetSize,
	}
}

// RegisterParams are the inputs to Register. File references a staged upload
// produced by the intake layer.
type RegisterParams struct {
	FullName         string
	Email            string
	PhoneNumber      string
	Password         string
	Role             models.Role
	RecoveryQuestion string
	RecoveryAnswer   string
	File             *models.StagedFile
}

// Register validates the registration input, uploads the staged profile
// photo, and persists the new account. The staged file is consumed (and
// deleted) by the upload operation regardless of outcome. If the upload
// fails, no account is created.
func (s *AccountService) Register(ctx context.Context, p RegisterParams) (*models.Account, error) {

	if p.FullName == "" || p.Email == "" || p.PhoneNumber == "" || p.Password == "" ||
		p.RecoveryAnswer == "" || !p.Role.Valid() || !models.ValidRecoveryQuestion(p.RecoveryQuestion) {
		return nil, common.ErrValidation
	}

	if p.File == nil || p.File.LocalPath == "" {
		return nil, common.ErrMissingAsset
	}

	if p.File.SizeBytes > s.maxAssetSize {
		return nil, common.ErrAssetTooLarge
	}

	repo := s.repomanager.Accounts(s.db)

	if _, err := repo.GetByEmail(ctx, p.Email); err == nil {
		return nil, common.ErrDuplicateAccount
	} else if !errors.Is(err, common.ErrNotFound) {
		s.logger.Error(ctx, "email lookup failed", "error", err)
		return nil, common.ErrInternal
	}

	passwordHash, err := s.hasher.Hash(p.Password)
	if err != nil {
		s.logger.Error(ctx, "password hash failed", "error", err)
		return nil, common.ErrInternal
	}

	answerHash, err := s.hasher.Hash(auth.NormalizeAnswer(p.RecoveryAnswer))
	if err != nil {
		s.logger.Error(ctx, "recovery answer hash failed", "error", err)
		return nil, common.ErrInternal
	}

	ref, err := s.uploader.Upload(ctx, p.File.LocalPath, objstore.UploadOptions{
		OriginalName: p.File.OriginalName,
	})
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		FullName:           p.FullName,
		Email:              p.Email,
		PhoneNumber:        p.PhoneNumber,
		PasswordHash:       passwordHash,
		Role:               p.Role,
		RecoveryQuestion:   p.RecoveryQuestion,
		RecoveryAnswerHash: answerHash,
		Profile: models.Profile{
			ProfilePhoto: ref.URL,
		},
	}

	account, err = repo.Create(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateAccount) {
			return nil, common.ErrDuplicateAccount
		}
		s.logger.Error(ctx, "account create failed", "error", err)
		return nil, common.ErrInternal
	}

	s.logger.Info(ctx, "account created", "account_id", account.ID, "role", account.Role)
	return account, nil
}

// LoginParams are the inputs to a normal-mode login.
type LoginParams struct {
	Email    string
	Password string
	Role     models.Role
}

// Login authenticates email/password/role and issues a session token. An
// unknown email and a wrong password yield the same ErrInvalidCredentials so
// that accounts cannot be enumerated.
func (s *AccountService) Login(ctx context.Context, p LoginParams) (*models.Account, *Session, error) {

	if p.Email == "" || p.Password == "" || p.Role == "" {
		return nil, nil, common.ErrValidation
	}

	repo := s.repomanager.Accounts(s.db)

	account, err := repo.GetByEmail(ctx, p.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, common.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "email lookup failed", "error", err)
		return nil, nil, common.ErrInternal
	}

	if !s.hasher.Check(p.Password, account.PasswordHash) {
		return nil, nil, common.ErrInvalidCredentials
	}

	if p.Role != account.Role {
		return nil, nil, common.ErrRoleMismatch
	}

	session, err := s.issueSession(account.ID)
	if err != nil {
		s.logger.Error(ctx, "token generation failed", "error", err)
		return nil, nil, common.ErrInternal
	}

	return account, session, nil
}

// RecoveryParams are the identity inputs shared by both recovery steps.
type RecoveryParams struct {
	Email            string
	Role             models.Role
	RecoveryQuestion string
	RecoveryAnswer   string
}

// RecoverVerify is step one of the recovery flow: it authenticates the
// caller's identity against the stored recovery question and answer, issuing
// no session. The answer comparison is case-insensitive; the question must
// match exactly. A missing account and a wrong answer are indistinguishable.
func (s *AccountService) RecoverVerify(ctx context.Context, p RecoveryParams) (*models.Account, error) {

	if p.Email == "" || p.RecoveryAnswer == "" || p.Role == "" ||
		p.RecoveryQuestion == "" || p.RecoveryQuestion == models.RecoveryQuestionUnset {
		return nil, common.ErrValidation
	}

	repo := s.repomanager.Accounts(s.db)

	account, err := repo.GetByEmail(ctx, p.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrRecoveryVerification
		}
		s.logger.Error(ctx, "email lookup failed", "error", err)
		return nil, common.ErrInternal
	}

	if p.Role != account.Role {
		return nil, common.ErrRoleMismatch
	}

	if p.RecoveryQuestion != account.RecoveryQuestion ||
		!s.hasher.Check(auth.NormalizeAnswer(p.RecoveryAnswer), account.RecoveryAnswerHash) {
		return nil, common.ErrRecoveryVerification
	}

	return account, nil
}

// RecoverReset is step two of the recovery flow. It repeats the full identity
// verification of step one — no state is carried over between steps, so it is
// safe to call without a prior RecoverVerify — then replaces the password
// hash and issues a session.
func (s *AccountService) RecoverReset(ctx context.Context, p RecoveryParams, newPassword string) (*models.Account, *Session, error) {

	account, err := s.RecoverVerify(ctx, p)
	if err != nil {
		return nil, nil, err
	}

	if len(newPassword) < MinPasswordLength {
		return nil, nil, common.ErrWeakPassword
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		s.logger.Error(ctx, "password hash failed", "error", err)
		return nil, nil, common.ErrInternal
	}

	account.PasswordHash = passwordHash

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Accounts(tx).Update(ctx, account)
	}); err != nil {
		s.logger.Error(ctx, "password reset failed", "error", err)
		return nil, nil, common.ErrInternal
	}

	session, err := s.issueSession(account.ID)
	if err != nil {
		s.logger.Error(ctx, "token generation failed", "error", err)
		return nil, nil, common.ErrInternal
	}

	s.logger.Info(ctx, "password reset", "account_id", account.ID)
	return account, session, nil
}

// UpdateParams are the partial-update inputs to UpdateProfile. Empty fields
// are left untouched; File, when present, becomes the account's resume.
type UpdateParams struct {
	FullName    string
	Email       string
	PhoneNumber string
	Bio         string
	Skills      string
	File        *models.StagedFile
}

// UpdateProfile applies a partial update to an existing account. If the email
// changes, uniqueness is re-checked. A staged file, if present, is routed
// through the upload operation and stored as the resume reference.
func (s *AccountService) UpdateProfile(ctx context.Context, accountID string, p UpdateParams) (*models.Account, error) {

	repo := s.repomanager.Accounts(s.db)

	account, err := repo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		s.logger.Error(ctx, "account lookup failed", "error", err)
		return nil, common.ErrInternal
	}

	if p.Email != "" && p.Email != account.Email {
		if existing, err := repo.GetByEmail(ctx, p.Email); err == nil && existing.ID != account.ID {
			return nil, common.ErrDuplicateAccount
		} else if err != nil && !errors.Is(err, common.ErrNotFound) {
			s.logger.Error(ctx, "email lookup failed", "error", err)
			return nil, common.ErrInternal
		}
	}

	if p.File != nil && p.File.LocalPath != "" {
		ref, err := s.uploader.Upload(ctx, p.File.LocalPath, objstore.UploadOptions{
			OriginalName: p.File.OriginalName,
		})
		if err != nil {
			return nil, err
		}
		account.Profile.Resume = ref.URL
		account.Profile.ResumeOriginalName = p.File.OriginalName
	}

	if p.FullName != "" {
		account.FullName = p.FullName
	}
	if p.Email != "" {
		account.Email = p.Email
	}
	if p.PhoneNumber != "" {
		account.PhoneNumber = p.PhoneNumber
	}
	if p.Bio != "" {
		account.Profile.Bio = p.Bio
	}
	if p.Skills != "" {
		account.Profile.Skills = models.ParseSkills(p.Skills)
	}

	if err := repo.Update(ctx, account); err != nil {
		if errors.Is(err, common.ErrDuplicateAccount) {
			return nil, common.ErrDuplicateAccount
		}
		s.logger.Error(ctx, "account update failed", "error", err)
		return nil, common.ErrInternal
	}

	return account, nil
}

func (s *AccountService) issueSession(accountID string) (*Session, error) {
	token, err := auth.GenerateToken(accountID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresIn: s.tokenValidity}, nil
}
