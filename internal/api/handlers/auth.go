package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/numera/internal/api/dto"
	"github.com/pratik-mahalle/numera/internal/auth"
	"github.com/pratik-mahalle/numera/internal/domain/user"
	"github.com/pratik-mahalle/numera/internal/pkg/errors"
	"github.com/pratik-mahalle/numera/internal/pkg/logger"
	"github.com/pratik-mahalle/numera/internal/pkg/utils"
	"github.com/pratik-mahalle/numera/internal/pkg/validator"
)

const resetAcknowledgement = "If the email exists, a reset link has been sent"

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	userService user.Service
	tokens      *auth.TokenService
	logger      *logger.Logger
	validator   *validator.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	userService user.Service,
	tokens *auth.TokenService,
	log *logger.Logger,
	val *validator.Validator,
) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		tokens:      tokens,
		logger:      log,
		validator:   val,
	}
}

// Signup handles account registration
// @Summary Sign up
// @Description Create a free-plan account and return an identity token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Signup details"
// @Success 201 {object} dto.AuthResponse "Account created"
// @Failure 400 {object} utils.ErrorResponse "Missing fields or email already registered"
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	newUser, err := h.userService.Signup(r.Context(), user.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to create user")
		return
	}

	h.respondWithToken(w, http.StatusCreated, "User created successfully", newUser)
}

// Login handles user login
// @Summary User login
// @Description Authenticate user with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse "Successfully authenticated"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 401 {object} utils.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	authenticated, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.WithFields(map[string]interface{}{
			"email": user.NormalizeEmail(req.Email),
		}).Warn("Authentication failed")
		writeServiceError(w, h.logger, err, "Failed to login")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"user_id": authenticated.ID,
		"email":   authenticated.Email,
	}).Info("User logged in successfully")

	h.respondWithToken(w, http.StatusOK, "Login successful", authenticated)
}

// ForgotPassword acknowledges a reset request
// @Summary Request password reset
// @Description Always answers with the same message so account existence is not disclosed
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} utils.SuccessResponse "Acknowledged"
// @Failure 400 {object} utils.ErrorResponse "Missing email"
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ForgotPasswordRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	if err := h.userService.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeServiceError(w, h.logger, err, "Failed to process request")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, resetAcknowledgement, nil)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, status int, message string, u *user.User) {
	token, err := h.tokens.Issue(u.ID, u.Email)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to generate token")
		utils.WriteError(w, errors.Internal("Failed to generate token", err))
		return
	}

	utils.WriteSuccessWithMessage(w, status, message, dto.AuthResponse{
		Token: token,
		User:  dto.NewUserDTO(u),
	})
}
