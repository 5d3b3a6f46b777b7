package api

import (
	"encoding/json"
	"net/http"

	"github.com/taskdeck/taskdeck/internal/account"
	"github.com/taskdeck/taskdeck/internal/auth"
)

// provisionRequest is the request body for POST /api/admin/users.
// Role is optional and defaults to "user".
type provisionRequest struct {
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Password string        `json:"password"`
	Role     *account.Role `json:"role"`
}

// overviewResponse carries both partitions with tasks embedded.
type overviewResponse struct {
	Users  []account.Profile `json:"users"`
	Admins []account.Profile `json:"admins"`
}

// handleAdminOverview enumerates every account in both partitions.
func (s *Server) handleAdminOverview(w http.ResponseWriter, r *http.Request) {
	grant, ok := s.authenticate(w, r, account.RoleAdmin)
	if !ok {
		return
	}
	defer grant.Close()

	// The grant already holds the admins partition; users is read separately.
	users, err := s.store.Load(r.Context(), account.RoleUser)
	if err != nil {
		s.logger.Error("loading users partition", "error", err)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, overviewResponse{
		Users:  profiles(users),
		Admins: profiles(grant.Partition()),
	})
}

// handleProvisionAccount creates an account with an admin-chosen role.
// No session is issued: provisioning does not log the new account in.
func (s *Server) handleProvisionAccount(w http.ResponseWriter, r *http.Request) {
	grant, ok := s.authenticate(w, r, account.RoleAdmin)
	if !ok {
		return
	}
	defer grant.Close()

	var req provisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "invalid JSON body")
		return
	}

	role := account.RoleUser
	if req.Role != nil {
		role = *req.Role
		if !role.IsValid() {
			writeValidationError(w, "role must be \"user\" or \"admin\"")
			return
		}
	}

	if err := account.ValidateRegistration(req.Name, req.Email, req.Password); err != nil {
		writeDomainError(w, err)
		return
	}

	ctx := r.Context()

	// Uniqueness spans both partitions. The grant holds admins; the users
	// partition is locked separately only when writing into it.
	if account.ContainsEmail(grant.Partition(), req.Email) {
		writeDomainError(w, account.ErrEmailInUse)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("hashing password", "error", err)
		writeInternalError(w)
		return
	}
	acct := account.New(req.Name, req.Email, hash, role)

	if role == account.RoleAdmin {
		users, err := s.store.Load(ctx, account.RoleUser)
		if err != nil {
			s.logger.Error("loading users partition", "error", err)
			writeInternalError(w)
			return
		}
		if account.ContainsEmail(users, req.Email) {
			writeDomainError(w, account.ErrEmailInUse)
			return
		}

		grant.Append(acct)
		if err := grant.Save(ctx); err != nil {
			s.logger.Error("persisting provisioned admin", "error", err)
			writeInternalError(w)
			return
		}
	} else {
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

		tx.Accounts = append(tx.Accounts, acct)
		if err := tx.Commit(ctx); err != nil {
			s.logger.Error("persisting provisioned user", "error", err)
			writeInternalError(w)
			return
		}
	}

	writeJSON(w, http.StatusCreated, profileResponse{Profile: acct.Profile()})
}

// profiles converts a partition to its public view.
func profiles(accounts []account.Account) []account.Profile {
	out := make([]account.Profile, 0, len(accounts))
	for i := range accounts {
		out = append(out, accounts[i].Profile())
	}
	return out
}
