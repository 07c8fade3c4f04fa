package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vocabtracker/backend/internal/models"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for authentication business logic
type AuthService interface {
	// Method Register performs user credentials validation and creation and returns an access token.
	//
	// "req" parameter contains email and password.
	//
	// If user passed invalid credentials, or such user already exists, or some other error occurs, the error will be returned together with "nil" value.
	Register(ctx context.Context, req *models.AuthRequest) (*models.AuthResponse, error)
	// Method Login performs user credentials validation and returns an access token.
	//
	// "req" parameter contains email and password.
	//
	// If user passed invalid credentials, or such user does not exist, or some other error occurs, the error will be returned together with "nil" value.
	Login(ctx context.Context, req *models.AuthRequest) (*models.AuthResponse, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{Logger: logger},
		authService: authService,
	}
}

// RegisterRoutes registers all auth handler routes
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})
}

// Register handles POST /auth/register
// @Summary Register a new user
// @Description Register a new user with email and password. Returns an access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.AuthRequest true "User credentials"
// @Success 201 {object} models.AuthResponse "User registered successfully"
// @Failure 400 {object} map[string]string "Invalid request body or user already exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("failed to decode request body", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		h.RespondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	resp, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		h.Logger.Error("failed to register user", zap.Error(err))
		statusCode := http.StatusInternalServerError
		errMsg := err.Error()
		if strings.Contains(errMsg, "invalid email") ||
			strings.Contains(errMsg, "password must be") ||
			strings.Contains(errMsg, "already exists") {
			statusCode = http.StatusBadRequest
		}
		h.RespondError(w, statusCode, errMsg)
		return
	}

	h.RespondJSON(w, http.StatusCreated, resp)
}

// Login handles POST /auth/login
// @Summary Log in
// @Description Authenticate with email and password. Returns an access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.AuthRequest true "User credentials"
// @Success 200 {object} models.AuthResponse "Authenticated"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Invalid email or password"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("failed to decode request body", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		h.RespondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		h.Logger.Error("failed to log in user", zap.Error(err))
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, resp)
}
