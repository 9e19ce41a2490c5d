package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"medishare/internal/domain"
	"medishare/internal/metrics"
)

// LedgerService owns the donation ledger. It depends on the account store
// only for the best-effort donor-email lookup at insert time.
type LedgerService struct {
	donations domain.DonationRepository
	accounts  domain.AccountRepository
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

func NewLedgerService(donations domain.DonationRepository, accounts domain.AccountRepository, m *metrics.Metrics, logger zerolog.Logger) *LedgerService {
	return &LedgerService{donations: donations, accounts: accounts, metrics: m, logger: logger}
}

// DonateInput carries the donation form fields. DonorEmail is free text;
// donations from unregistered donors are first-class.
type DonateInput struct {
	MedicineName string
	ExpiryDate   time.Time
	Quantity     int
	DonorEmail   string
}

// Donate records a donation and returns its id. When DonorEmail matches a
// registered account the record is attributed to it; when it matches nothing
// the record stays anonymous and no error is raised.
func (s *LedgerService) Donate(ctx context.Context, in DonateInput) (string, error) {
	if in.Quantity <= 0 {
		return "", fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
	}

	var accountID *string
	if in.DonorEmail != "" {
		account, err := s.accounts.GetByEmail(ctx, in.DonorEmail)
		switch {
		case err == nil:
			accountID = &account.ID
		case errors.Is(err, domain.ErrNotFound):
			// Anonymous donation; the email is still stored verbatim.
		default:
			return "", err
		}
	}

	donation := &domain.Donation{
		ID:           uuid.NewString(),
		MedicineName: in.MedicineName,
		ExpiryDate:   in.ExpiryDate,
		Quantity:     in.Quantity,
		AccountID:    accountID,
		DonorEmail:   in.DonorEmail,
		DonatedAt:    time.Now().UTC(),
	}
	if err := s.donations.Create(ctx, donation); err != nil {
		return "", err
	}

	s.metrics.IncrementDonationsRecorded()
	s.logger.Info().
		Str("donation_id", donation.ID).
		Bool("attributed", donation.Attributed()).
		Msg("donation recorded")
	return donation.ID, nil
}

// ListAvailable returns every donation, newest first, with donor names
// resolved where a live account reference exists.
func (s *LedgerService) ListAvailable(ctx context.Context) ([]domain.DonationWithDonor, error) {
	return s.donations.ListAvailable(ctx)
}

// ListByAccount returns the donations currently attributed to the account,
// newest first.
func (s *LedgerService) ListByAccount(ctx context.Context, accountID string) ([]domain.Donation, error) {
	return s.donations.ListByAccount(ctx, accountID)
}
