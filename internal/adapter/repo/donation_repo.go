package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"medishare/internal/domain"
)

// DonationRepositoryPG implements domain.DonationRepository using PostgreSQL.
type DonationRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(pool *pgxpool.Pool) *DonationRepositoryPG {
	return &DonationRepositoryPG{pool: pool}
}

var _ domain.DonationRepository = (*DonationRepositoryPG)(nil)

// Create inserts a new donation record. The account_id foreign key carries
// ON DELETE SET NULL, so an insert racing an account deletion degrades to an
// anonymous record instead of corrupting the ledger.
func (r *DonationRepositoryPG) Create(ctx context.Context, donation *domain.Donation) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO donations (id, medicine_name, expiry_date, quantity, account_id, donor_email, donated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7);
`, donation.ID, donation.MedicineName, donation.ExpiryDate, donation.Quantity, donation.AccountID, donation.DonorEmail, donation.DonatedAt)
	if err != nil {
		return fmt.Errorf("create donation: %w", err)
	}
	return nil
}

// ListAvailable returns all donations, newest first, with the donor name
// left-joined in. Donations without a live account reference carry a NULL
// donor name.
func (r *DonationRepositoryPG) ListAvailable(ctx context.Context) ([]domain.DonationWithDonor, error) {
	rows, err := r.pool.Query(ctx, `
SELECT d.id, d.medicine_name, d.expiry_date, d.quantity, d.account_id, d.donor_email, d.donated_at, a.full_name
FROM donations d
LEFT JOIN accounts a ON a.id = d.account_id
ORDER BY d.donated_at DESC;
`)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer rows.Close()

	var items []domain.DonationWithDonor
	for rows.Next() {
		var item domain.DonationWithDonor
		if err := rows.Scan(
			&item.ID,
			&item.MedicineName,
			&item.ExpiryDate,
			&item.Quantity,
			&item.AccountID,
			&item.DonorEmail,
			&item.DonatedAt,
			&item.DonorName,
		); err != nil {
			return nil, fmt.Errorf("scan donation: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	return items, nil
}

// ListByAccount returns donations currently attributed to the account,
// newest first.
func (r *DonationRepositoryPG) ListByAccount(ctx context.Context, accountID string) ([]domain.Donation, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, medicine_name, expiry_date, quantity, account_id, donor_email, donated_at
FROM donations
WHERE account_id = $1
ORDER BY donated_at DESC;
`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list donations by account: %w", err)
	}
	defer rows.Close()

	var items []domain.Donation
	for rows.Next() {
		var donation domain.Donation
		if err := rows.Scan(
			&donation.ID,
			&donation.MedicineName,
			&donation.ExpiryDate,
			&donation.Quantity,
			&donation.AccountID,
			&donation.DonorEmail,
			&donation.DonatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan donation: %w", err)
		}
		items = append(items, donation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list donations by account: %w", err)
	}
	return items, nil
}
