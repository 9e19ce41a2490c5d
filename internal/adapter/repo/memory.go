package repo

import (
	"context"
	"sort"
	"sync"

	"medishare/internal/domain"
)

// InMemoryStore keeps both relations behind one mutex so the account-deletion
// anonymization invariant holds without a real database. It backs tests and
// local development; it intentionally favors clarity over performance.
type InMemoryStore struct {
	mu        sync.RWMutex
	accounts  map[string]domain.Account
	emails    map[string]string // email -> account id, the uniqueness "index"
	donations []memDonation
	seq       int
}

type memDonation struct {
	seq int
	rec domain.Donation
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		accounts: make(map[string]domain.Account),
		emails:   make(map[string]string),
	}
}

// Accounts returns the account view of the store.
func (s *InMemoryStore) Accounts() *InMemoryAccountRepository {
	return &InMemoryAccountRepository{store: s}
}

// Donations returns the donation view of the store.
func (s *InMemoryStore) Donations() *InMemoryDonationRepository {
	return &InMemoryDonationRepository{store: s}
}

type InMemoryAccountRepository struct {
	store *InMemoryStore
}

func (r *InMemoryAccountRepository) Create(_ context.Context, account *domain.Account) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.emails[account.Email]; taken {
		return domain.ErrEmailTaken
	}
	s.accounts[account.ID] = *account
	s.emails[account.Email] = account.ID
	return nil
}

func (r *InMemoryAccountRepository) GetByID(_ context.Context, id string) (*domain.Account, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	if account, ok := s.accounts[id]; ok {
		return &account, nil
	}
	return nil, domain.ErrNotFound
}

func (r *InMemoryAccountRepository) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id, ok := s.emails[email]; ok {
		account := s.accounts[id]
		return &account, nil
	}
	return nil, domain.ErrNotFound
}

func (r *InMemoryAccountRepository) Delete(_ context.Context, id string) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	var anonymized int64
	for i := range s.donations {
		if ref := s.donations[i].rec.AccountID; ref != nil && *ref == id {
			s.donations[i].rec.AccountID = nil
			anonymized++
		}
	}
	delete(s.accounts, id)
	delete(s.emails, account.Email)
	return anonymized, nil
}

type InMemoryDonationRepository struct {
	store *InMemoryStore
}

func (r *InMemoryDonationRepository) Create(_ context.Context, donation *domain.Donation) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.donations = append(s.donations, memDonation{seq: s.seq, rec: *donation})
	return nil
}

func (r *InMemoryDonationRepository) ListAvailable(_ context.Context) ([]domain.DonationWithDonor, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := newestFirst(s.donations)
	items := make([]domain.DonationWithDonor, 0, len(snapshot))
	for _, d := range snapshot {
		item := domain.DonationWithDonor{Donation: d}
		if d.AccountID != nil {
			if account, ok := s.accounts[*d.AccountID]; ok {
				name := account.FullName
				item.DonorName = &name
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *InMemoryDonationRepository) ListByAccount(_ context.Context, accountID string) ([]domain.Donation, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []domain.Donation
	for _, d := range newestFirst(s.donations) {
		if d.AccountID != nil && *d.AccountID == accountID {
			items = append(items, d)
		}
	}
	return items, nil
}

// newestFirst copies the donations ordered by donation time descending,
// breaking ties by insertion order so repeated reads stay identical.
func newestFirst(donations []memDonation) []domain.Donation {
	ordered := make([]memDonation, len(donations))
	copy(ordered, donations)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].rec.DonatedAt.Equal(ordered[j].rec.DonatedAt) {
			return ordered[i].seq > ordered[j].seq
		}
		return ordered[i].rec.DonatedAt.After(ordered[j].rec.DonatedAt)
	})
	out := make([]domain.Donation, len(ordered))
	for i, d := range ordered {
		out[i] = d.rec
	}
	return out
}

var (
	_ domain.AccountRepository  = (*InMemoryAccountRepository)(nil)
	_ domain.DonationRepository = (*InMemoryDonationRepository)(nil)
)
