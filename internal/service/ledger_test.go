package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medishare/internal/adapter/repo"
	"medishare/internal/domain"
)

func TestDonateAttributesRegisteredEmail(t *testing.T) {
	identity, ledger, _ := newIdentityFixture()
	ctx := context.Background()

	accountID, err := identity.Register(ctx, validRegistration("alice@example.com"))
	require.NoError(t, err)

	donationID, err := ledger.Donate(ctx, DonateInput{
		MedicineName: "Ibuprofen",
		ExpiryDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Quantity:     20,
		DonorEmail:   "alice@example.com",
	})
	require.NoError(t, err)

	mine, err := ledger.ListByAccount(ctx, accountID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, donationID, mine[0].ID)
	assert.Equal(t, accountID, *mine[0].AccountID)

	all, err := ledger.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].DonorName)
	assert.Equal(t, "Alice Tan", *all[0].DonorName)
}

func TestDonateUnmatchedEmailStaysAnonymous(t *testing.T) {
	_, ledger, _ := newIdentityFixture()
	ctx := context.Background()

	_, err := ledger.Donate(ctx, DonateInput{
		MedicineName: "Cough Syrup",
		ExpiryDate:   time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		Quantity:     3,
		DonorEmail:   "stranger@example.com",
	})
	require.NoError(t, err)

	all, err := ledger.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Nil(t, all[0].AccountID)
	assert.Nil(t, all[0].DonorName)
	assert.Equal(t, "stranger@example.com", all[0].DonorEmail)
}

func TestDonateEmptyEmailSkipsLookup(t *testing.T) {
	_, ledger, _ := newIdentityFixture()

	_, err := ledger.Donate(context.Background(), DonateInput{
		MedicineName: "Bandages",
		ExpiryDate:   time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		Quantity:     1,
	})
	require.NoError(t, err)
}

func TestDonateRejectsNonPositiveQuantity(t *testing.T) {
	_, ledger, _ := newIdentityFixture()

	for _, quantity := range []int{0, -4} {
		_, err := ledger.Donate(context.Background(), DonateInput{
			MedicineName: "Aspirin",
			ExpiryDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			Quantity:     quantity,
			DonorEmail:   "alice@example.com",
		})
		require.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestListAvailableNewestFirst(t *testing.T) {
	store := repo.NewInMemoryStore()
	ledger := NewLedgerService(store.Donations(), store.Accounts(), nil, zerolog.Nop())
	ctx := context.Background()

	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	names := []string{"oldest", "middle", "newest"}
	for i, name := range names {
		err := store.Donations().Create(ctx, &domain.Donation{
			ID:           uuid.NewString(),
			MedicineName: name,
			ExpiryDate:   base.AddDate(1, 0, 0),
			Quantity:     1,
			DonatedAt:    base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	all, err := ledger.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "newest", all[0].MedicineName)
	assert.Equal(t, "middle", all[1].MedicineName)
	assert.Equal(t, "oldest", all[2].MedicineName)
}

func TestListsAreIdempotent(t *testing.T) {
	identity, ledger, _ := newIdentityFixture()
	ctx := context.Background()

	accountID, err := identity.Register(ctx, validRegistration("alice@example.com"))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := ledger.Donate(ctx, DonateInput{
			MedicineName: "Vitamin C",
			ExpiryDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			Quantity:     i + 1,
			DonorEmail:   "alice@example.com",
		})
		require.NoError(t, err)
	}

	first, err := ledger.ListAvailable(ctx)
	require.NoError(t, err)
	second, err := ledger.ListAvailable(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	mineFirst, err := ledger.ListByAccount(ctx, accountID)
	require.NoError(t, err)
	mineSecond, err := ledger.ListByAccount(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, mineFirst, mineSecond)
}

// Mirrors the canonical lifecycle: register, donate attributed, delete the
// account, and confirm the ledger keeps the detached record.
func TestDonationLifecycle(t *testing.T) {
	identity, ledger, _ := newIdentityFixture()
	ctx := context.Background()

	aliceID, err := identity.Register(ctx, validRegistration("a@x.com"))
	require.NoError(t, err)

	_, err = ledger.Donate(ctx, DonateInput{
		MedicineName: "Aspirin",
		ExpiryDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Quantity:     10,
		DonorEmail:   "a@x.com",
	})
	require.NoError(t, err)

	mine, err := ledger.ListByAccount(ctx, aliceID)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	require.NoError(t, identity.DeleteAccount(ctx, aliceID))

	mine, err = ledger.ListByAccount(ctx, aliceID)
	require.NoError(t, err)
	assert.Empty(t, mine)

	all, err := ledger.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Nil(t, all[0].DonorName)
	assert.Equal(t, "a@x.com", all[0].DonorEmail)
	assert.Equal(t, 10, all[0].Quantity)
}
