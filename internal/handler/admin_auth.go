package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mamba-kebabs/ordering/internal/auth"
	"github.com/mamba-kebabs/ordering/internal/enum"
	"go.uber.org/zap"
)

const kitchenSubject = "kitchen"

// maxAdminBody bounds the small JSON bodies of the kitchen endpoints.
const maxAdminBody = 4 << 10

// PasswordVerifier is satisfied by *auth.SharedSecret.
type PasswordVerifier interface {
	Verify(password string) bool
}

// AdminAuthHandler exchanges the kitchen password for a dashboard session token.
type AdminAuthHandler struct {
	secret    PasswordVerifier
	jwtSecret string
	ttl       time.Duration
	logger    *zap.Logger
}

func NewAdminAuthHandler(secret PasswordVerifier, jwtSecret string, ttl time.Duration, logger *zap.Logger) *AdminAuthHandler {
	return &AdminAuthHandler{secret: secret, jwtSecret: jwtSecret, ttl: ttl, logger: logger}
}

// RegisterRoutes registers admin auth endpoints on the given Chi router.
func (h *AdminAuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.Login)
}

type adminLoginRequest struct {
	Password string `json:"password"`
}

type adminLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login handles POST /api/admin/login.
func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAdminBody)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "password is required"})
		return
	}

	if !h.secret.Verify(req.Password) {
		h.logger.Warn("admin login failed", zap.String("remote", r.RemoteAddr))
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "wrong password"})
		return
	}

	expiresAt := time.Now().Add(h.ttl).UTC().Truncate(time.Second)
	token, err := auth.GenerateToken(h.jwtSecret, kitchenSubject, enum.RoleKitchen, h.ttl)
	if err != nil {
		writeInternalError(w, h.logger, "generate admin token", err)
		return
	}

	writeJSON(w, http.StatusOK, adminLoginResponse{Token: token, ExpiresAt: expiresAt})
}
