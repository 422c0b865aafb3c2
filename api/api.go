package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Lalith0024/unistay/pkg/models"
)

// RespondJSONAndLog writes payload as JSON and logs encoding failures at debug level.
func RespondJSONAndLog(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	if err := RespondJSON(w, status, payload); err != nil {
		logger.Debug("failed to respond with JSON", "err", err)
	}
}

// RespondJSON sets the status code and Content-Type header and encodes payload.
// It only fails when encoding fails, usually because the writer is closed.
func RespondJSON(w http.ResponseWriter, status int, payload any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(payload)
}

// DecodeJSON reads a single JSON object from the request body, rejecting unknown fields.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the token and profile that were also written to the session.
type LoginResponse struct {
	Token     string         `json:"token"`
	ExpiresIn int64          `json:"expiresIn"`
	User      models.Profile `json:"user"`
	Redirect  string         `json:"redirect"`
}

type SignupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

type TokenValidationResponse struct {
	ExpiresAt *time.Time `json:"expiresAt"`
	Valid     bool       `json:"valid"`
}

type DashboardResponse struct {
	View string         `json:"view"`
	User models.Profile `json:"user"`
}

type RoomSummary struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Vacancies int `json:"vacancies"`
}

type RoomsResponse struct {
	Rooms   []models.Room `json:"rooms"`
	Summary RoomSummary   `json:"summary"`
}
