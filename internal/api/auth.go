package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taskdeck/taskdeck/internal/account"
	"github.com/taskdeck/taskdeck/internal/auth"
)

// registerRequest is the request body for POST /api/auth/register.
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginRequest is the request body for POST /api/auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse carries a freshly issued session token and the caller's profile.
type tokenResponse struct {
	Token   string          `json:"token"`
	Profile account.Profile `json:"profile"`
}

// profileResponse carries a profile alone.
type profileResponse struct {
	Profile account.Profile `json:"profile"`
}

// handleRegister creates a regular account and logs it in.
//
// Validation happens before any store mutation; email uniqueness is checked
// case-insensitively across both partitions while the users partition is
// held for writing.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "invalid JSON body")
		return
	}

	if err := account.ValidateRegistration(req.Name, req.Email, req.Password); err != nil {
		writeDomainError(w, err)
		return
	}

	ctx := r.Context()

	// Check the admins partition before taking the users partition for
	// writing: nested partition acquisition always goes admins→users
	// (see handleProvisionAccount), never the reverse.
	admins, err := s.store.Load(ctx, account.RoleAdmin)
	if err != nil {
		s.logger.Error("loading admins partition", "error", err)
		writeInternalError(w)
		return
	}
	if account.ContainsEmail(admins, req.Email) {
		writeDomainError(w, account.ErrEmailInUse)
		return
	}

	tx, err := s.store.Begin(ctx, account.RoleUser)
	if err != nil {
		s.logger.Error("loading users partition", "error", err)
		writeInternalError(w)
		return
	}
	defer tx.Close()

	if account.ContainsEmail(tx.Accounts, req.Email) {
		writeDomainError(w, account.ErrEmailInUse)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("hashing password", "error", err)
		writeInternalError(w)
		return
	}

	acct := account.New(req.Name, req.Email, hash, account.RoleUser)
	tx.Accounts = append(tx.Accounts, acct)

	if err := tx.Commit(ctx); err != nil {
		s.logger.Error("persisting registration", "error", err)
		writeInternalError(w)
		return
	}

	token, err := s.sessions.Issue(acct.ID, acct.Role)
	if err != nil {
		s.logger.Error("issuing session", "error", err)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse{
		Token:   token,
		Profile: acct.Profile(),
	})
}

// handleLogin authenticates credentials and issues a session token.
//
// Unknown email and wrong password produce the identical response; the
// distinction must not leak.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "invalid JSON body")
		return
	}

	if err := account.ValidateEmail(req.Email); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := account.ValidatePassword(req.Password); err != nil {
		writeDomainError(w, err)
		return
	}

	acct, role, err := s.store.FindByEmail(r.Context(), req.Email)
	if errors.Is(err, account.ErrAccountNotFound) {
		writeError(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid credentials")
		return
	}
	if err != nil {
		s.logger.Error("looking up account", "error", err)
		writeInternalError(w)
		return
	}

	ok, err := auth.VerifyPassword(req.Password, acct.PasswordHash)
	if err != nil {
		s.logger.Error("verifying password", "account_id", acct.ID, "error", err)
	}
	if err != nil || !ok {
		writeError(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid credentials")
		return
	}

	token, err := s.sessions.Issue(acct.ID, role)
	if err != nil {
		s.logger.Error("issuing session", "error", err)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		Token:   token,
		Profile: acct.Profile(),
	})
}

// handleSession returns the authenticated caller's profile, re-read fresh
// from the store by the gate.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	grant, ok := s.authenticate(w, r, "")
	if !ok {
		return
	}
	defer grant.Close()

	writeJSON(w, http.StatusOK, profileResponse{Profile: grant.Account.Profile()})
}
