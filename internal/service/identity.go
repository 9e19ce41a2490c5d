package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"medishare/internal/domain"
	"medishare/internal/metrics"
)

// IdentityService owns account registration, credential verification and
// account removal.
type IdentityService struct {
	accounts domain.AccountRepository
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

func NewIdentityService(accounts domain.AccountRepository, m *metrics.Metrics, logger zerolog.Logger) *IdentityService {
	return &IdentityService{accounts: accounts, metrics: m, logger: logger}
}

// RegisterInput carries the registration form fields. Password and
// ConfirmPassword are compared here; the plaintext never leaves this package.
type RegisterInput struct {
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
	DateOfBirth     time.Time
	Phone           string
	State           string
}

// Register creates a new account and returns its id. The email uniqueness
// check is left to the storage layer so concurrent registrations with the
// same email deterministically surface as domain.ErrEmailTaken.
func (s *IdentityService) Register(ctx context.Context, in RegisterInput) (string, error) {
	if in.Password != in.ConfirmPassword {
		return "", fmt.Errorf("%w: passwords do not match", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	account := &domain.Account{
		ID:           uuid.NewString(),
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: string(hash),
		DateOfBirth:  in.DateOfBirth,
		Phone:        in.Phone,
		State:        in.State,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return "", err
	}

	s.metrics.IncrementAccountsCreated()
	s.logger.Info().Str("account_id", account.ID).Msg("account registered")
	return account.ID, nil
}

// Authenticate verifies the email/password pair and returns the account
// identity. Unknown email and wrong password collapse into the same
// domain.ErrInvalidCredentials so the response never reveals which was wrong.
func (s *IdentityService) Authenticate(ctx context.Context, email, password string) (*domain.Identity, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	identity := account.Identity()
	return &identity, nil
}

// DeleteAccount removes the account. The repository clears the account
// reference on attributed donations and deletes the row in one transaction,
// so the ledger never observes a dangling reference.
func (s *IdentityService) DeleteAccount(ctx context.Context, id string) error {
	anonymized, err := s.accounts.Delete(ctx, id)
	if err != nil {
		return err
	}

	s.metrics.IncrementAccountsDeleted()
	s.metrics.AddDonationsAnonymized(anonymized)
	s.logger.Info().
		Str("account_id", id).
		Int64("donations_anonymized", anonymized).
		Msg("account deleted")
	return nil
}
