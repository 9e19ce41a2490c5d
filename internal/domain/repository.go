package domain

import "context"

// AccountRepository defines persistence for accounts.
type AccountRepository interface {
	// Create inserts a new account. Email uniqueness is enforced by the
	// storage layer; a duplicate surfaces as ErrEmailTaken.
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	// Delete removes the account and, in the same transaction, clears the
	// account reference on every donation attributed to it. It returns the
	// number of donations anonymized, or ErrNotFound when the id is unknown.
	Delete(ctx context.Context, id string) (int64, error)
}

// DonationRepository handles donation persistence.
type DonationRepository interface {
	Create(ctx context.Context, donation *Donation) error
	// ListAvailable returns every donation, newest first, with the donor
	// name resolved when a live account reference exists.
	ListAvailable(ctx context.Context) ([]DonationWithDonor, error)
	// ListByAccount returns donations currently attributed to the account,
	// newest first. Anonymized donations drop out of this view.
	ListByAccount(ctx context.Context, accountID string) ([]Donation, error)
}
