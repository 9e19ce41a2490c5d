package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"medishare/internal/service"
)

type registerRequest struct {
	FullName        string `json:"fullname" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	DateOfBirth     string `json:"dob" validate:"required,datetime=2006-01-02"`
	Phone           string `json:"phone" validate:"required"`
	State           string `json:"state" validate:"required"`
}

// loginRequest deliberately skips email-format validation: a malformed email
// must produce the same invalid-credentials response as a wrong password.
type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type identityResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

func (a *App) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := a.Validate.Struct(req); err != nil {
		a.error(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	dob, err := time.Parse(time.DateOnly, req.DateOfBirth)
	if err != nil {
		a.error(w, http.StatusBadRequest, "validation_error", "dob must be YYYY-MM-DD")
		return
	}

	id, err := a.Identity.Register(r.Context(), service.RegisterInput{
		FullName:        req.FullName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		DateOfBirth:     dob,
		Phone:           req.Phone,
		State:           req.State,
	})
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]string{"id": id})
}

func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := a.Validate.Struct(req); err != nil {
		a.error(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	identity, err := a.Identity.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, identityResponse{
		ID:       identity.ID,
		Email:    identity.Email,
		FullName: identity.FullName,
	})
}

func (a *App) AccountDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "account id required")
		return
	}
	if err := a.Identity.DeleteAccount(r.Context(), id); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]bool{"deleted": true})
}
