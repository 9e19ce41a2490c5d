package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"medishare/internal/domain"
	"medishare/internal/service"
)

// donateRequest carries the donation form. DonorEmail is free text: it is
// stored verbatim whether or not it matches a registered account, so no
// email-format rule applies here.
type donateRequest struct {
	MedicineName string `json:"medicine_name" validate:"required"`
	ExpiryDate   string `json:"expiry_date" validate:"required,datetime=2006-01-02"`
	Quantity     int    `json:"quantity" validate:"required,gt=0"`
	DonorEmail   string `json:"donor_email"`
}

type donationItem struct {
	ID           string    `json:"id"`
	MedicineName string    `json:"medicine_name"`
	ExpiryDate   string    `json:"expiry_date"`
	Quantity     int       `json:"quantity"`
	AccountID    *string   `json:"account_id"`
	DonorName    *string   `json:"donor_name"`
	DonorEmail   string    `json:"donor_email"`
	DonatedAt    time.Time `json:"donated_at"`
}

func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	var req donateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := a.Validate.Struct(req); err != nil {
		a.error(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	expiry, err := time.Parse(time.DateOnly, req.ExpiryDate)
	if err != nil {
		a.error(w, http.StatusBadRequest, "validation_error", "expiry_date must be YYYY-MM-DD")
		return
	}

	id, err := a.Ledger.Donate(r.Context(), service.DonateInput{
		MedicineName: req.MedicineName,
		ExpiryDate:   expiry,
		Quantity:     req.Quantity,
		DonorEmail:   req.DonorEmail,
	})
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]string{"id": id})
}

func (a *App) DonationsList(w http.ResponseWriter, r *http.Request) {
	donations, err := a.Ledger.ListAvailable(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]donationItem, 0, len(donations))
	for _, d := range donations {
		items = append(items, projectDonation(d.Donation, d.DonorName))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) DonationsByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "account id required")
		return
	}
	donations, err := a.Ledger.ListByAccount(r.Context(), accountID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]donationItem, 0, len(donations))
	for _, d := range donations {
		items = append(items, projectDonation(d, nil))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func projectDonation(d domain.Donation, donorName *string) donationItem {
	return donationItem{
		ID:           d.ID,
		MedicineName: d.MedicineName,
		ExpiryDate:   d.ExpiryDate.Format(time.DateOnly),
		Quantity:     d.Quantity,
		AccountID:    d.AccountID,
		DonorName:    donorName,
		DonorEmail:   d.DonorEmail,
		DonatedAt:    d.DonatedAt,
	}
}
