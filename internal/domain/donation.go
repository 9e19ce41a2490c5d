package domain

import "time"

// Donation is one medicine-donation ledger entry. AccountID is nil for
// anonymous donations and becomes nil again when the referenced account is
// deleted; DonorEmail is kept verbatim either way so provenance survives
// anonymization.
type Donation struct {
	ID           string
	MedicineName string
	ExpiryDate   time.Time
	Quantity     int
	AccountID    *string
	DonorEmail   string
	DonatedAt    time.Time
}

// Attributed reports whether the donation currently references an account.
func (d *Donation) Attributed() bool {
	return d.AccountID != nil
}

// DonationWithDonor is the public listing projection: the donation plus the
// donor's full name when a live account reference exists.
type DonationWithDonor struct {
	Donation
	DonorName *string
}
