package builtins

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/Lalith0024/unistay/api"
	"github.com/Lalith0024/unistay/internal/db"
	"github.com/Lalith0024/unistay/pkg/models"
	"github.com/Lalith0024/unistay/pkg/models/passwd"
)

func (h *Handler) handleAPILoginPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.logAccess(r)

		var creds api.LoginRequest
		if err := api.DecodeJSON(r, &creds); err != nil {
			h.log.Debug("invalid login body", "err", err)
			api.ReturnError(w, h.log, api.BadRequestInvalidJSON)
			return
		}
		if strings.TrimSpace(creds.Email) == "" || creds.Password == "" {
			api.ReturnError(w, h.log, api.BadRequestValidation("email and password are required"))
			return
		}

		user, err := h.auth.GetUserByEmail(r.Context(), creds.Email)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				api.ReturnError(w, h.log, api.UnauthorizedInvalidCredentials)
				return
			}
			h.log.Error("unable to look up user for login", "err", err)
			api.ReturnError(w, h.log, api.InternalServerError)
			return
		}
		if user.PasswordHash == nil || !user.IsActive || !passwd.Authenticate(creds.Password, *user.PasswordHash) {
			api.ReturnError(w, h.log, api.UnauthorizedInvalidCredentials)
			return
		}

		h.establish(w, r, user, http.StatusOK)
	}
}

func (h *Handler) handleAPISignupPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.logAccess(r)

		var req api.SignupRequest
		if err := api.DecodeJSON(r, &req); err != nil {
			h.log.Debug("invalid signup body", "err", err)
			api.ReturnError(w, h.log, api.BadRequestInvalidJSON)
			return
		}
		if req.Password != req.Confirm {
			api.ReturnError(w, h.log, api.BadRequestValidation("passwords do not match"))
			return
		}
		if err := passwd.Validate(req.Password); err != nil {
			api.ReturnError(w, h.log, api.BadRequestValidation(err.Error()))
			return
		}

		// self registration always creates students, staff are added with `unistay user add`
		user, err := h.auth.CreateUser(r.Context(), models.CreateUserParams{
			Email:    req.Email,
			Name:     req.Name,
			Password: &req.Password,
			Role:     models.RoleStudent,
		})
		if err != nil {
			var dupErr *db.DuplicateKeyError
			var valErr *models.ValidationError
			switch {
			case errors.As(err, &dupErr):
				api.ReturnError(w, h.log, api.ResourceConflict("an account with this email already exists"))
			case errors.As(err, &valErr):
				api.ReturnError(w, h.log, api.BadRequestValidation(valErr.Error()))
			default:
				h.log.Error("unable to create user", "err", err)
				api.ReturnError(w, h.log, api.InternalServerError)
			}
			return
		}

		h.establish(w, r, user, http.StatusCreated)
	}
}

// establish issues a token for user, writes the session and answers with
// the landing the client should navigate to.
func (h *Handler) establish(w http.ResponseWriter, r *http.Request, user *models.User, status int) {
	tokenStr, _, err := h.token.IssueToken(user)
	if err != nil {
		h.log.Error("unable to issue token", "user_id", user.ID.String(), "err", err)
		api.ReturnError(w, h.log, api.InternalServerError)
		return
	}

	profile := models.ProfileOf(user)
	if err := h.guard.Session(w, r).Establish(tokenStr, profile); err != nil {
		h.log.Error("unable to establish session", "user_id", user.ID.String(), "err", err)
		api.ReturnError(w, h.log, api.InternalServerError)
		return
	}
	h.log.Info("session established", "user_id", profile.ID, "role", profile.EffectiveRole())

	api.RespondJSONAndLog(w, h.log, status, api.LoginResponse{
		Token:     tokenStr,
		ExpiresIn: int64(h.token.TTL().Seconds()),
		User:      profile,
		Redirect:  h.guard.LandingFor(profile.EffectiveRole()),
	})
}

// handleAPITokenVerify checks the session token itself. The guard only
// checks that a token is present.
func (h *Handler) handleAPITokenVerify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.logAccess(r)

		state := h.guard.Session(w, r).Load()
		payload, err := h.token.ParseToken(state.Token)
		if err != nil {
			api.ReturnError(w, h.log, api.UnauthorizedInvalidToken)
			return
		}

		expiresAt := payload.ExpiresAt.Time
		api.RespondJSONAndLog(w, h.log, http.StatusOK, api.TokenValidationResponse{
			ExpiresAt: &expiresAt,
			Valid:     true,
		})
	}
}

func (h *Handler) handleAPIRoomsGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.logAccess(r)

		rooms, err := h.rooms.List(r.Context())
		if err != nil {
			h.log.Error("unable to list rooms", "err", err)
			api.ReturnError(w, h.log, api.InternalServerError)
			return
		}
		api.RespondJSONAndLog(w, h.log, http.StatusOK, api.RoomsResponse{
			Rooms:   rooms,
			Summary: summarize(rooms),
		})
	}
}
