package services

import (
	"context"
	stderrors "errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/pratik-mahalle/numera/internal/domain/report"
	"github.com/pratik-mahalle/numera/internal/domain/user"
	"github.com/pratik-mahalle/numera/internal/pkg/errors"
	"github.com/pratik-mahalle/numera/internal/pkg/logger"
	"github.com/pratik-mahalle/numera/internal/pkg/metrics"
)

// MinPasswordLength is the shortest accepted password
const MinPasswordLength = 6

// MaxPasswordBytes is the longest password bcrypt accepts
const MaxPasswordBytes = 72

// UserServiceConfig holds account policy settings
type UserServiceConfig struct {
	BCryptCost int
	// FreeLimit of zero selects the free plan default
	FreeLimit int
}

var _ user.Service = (*UserService)(nil)

// UserService implements user.Service
type UserService struct {
	repo    user.Repository
	reports report.Repository
	cfg     UserServiceConfig
	logger  *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(repo user.Repository, reports report.Repository, cfg UserServiceConfig, log *logger.Logger) *UserService {
	if cfg.BCryptCost == 0 {
		cfg.BCryptCost = bcrypt.DefaultCost
	}
	if cfg.FreeLimit == 0 {
		cfg.FreeLimit = user.DefaultQueryLimit(user.PlanFree)
	}
	return &UserService{
		repo:    repo,
		reports: reports,
		cfg:     cfg,
		logger:  log,
	}
}

// Signup registers a new free-plan account
func (s *UserService) Signup(ctx context.Context, in user.SignupInput) (*user.User, error) {
	email := user.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, errors.ValidationError("Email and password are required", nil)
	}
	if len(in.Password) < MinPasswordLength {
		return nil, errors.ValidationError("Password must be at least 6 characters long", nil)
	}
	if len(in.Password) > MaxPasswordBytes {
		return nil, errors.ValidationError("Password must be at most 72 bytes long", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cfg.BCryptCost)
	if err != nil {
		return nil, errors.Internal("Failed to create user", err)
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	u := &user.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Plan:         user.PlanFree,
		UsedQueries:  0,
		QueryLimit:   s.cfg.FreeLimit,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if stderrors.Is(err, errors.ErrAlreadyExists) {
			s.logger.WithFields(map[string]interface{}{
				"email": email,
			}).Warn("Signup attempt with existing email")
			return nil, err
		}
		s.logger.ErrorWithErr(err, "Failed to create user")
		return nil, errors.As(err, "Failed to create user")
	}

	metrics.RecordSignup()
	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
		"email":   u.Email,
	}).Info("User created")

	return u, nil
}

// Authenticate checks credentials
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*user.User, error) {
	invalid := errors.Unauthorized("Invalid email or password")

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			metrics.RecordLogin(false)
			return nil, invalid
		}
		s.logger.ErrorWithErr(err, "Failed to load user for login")
		return nil, errors.As(err, "Failed to login")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		metrics.RecordLogin(false)
		return nil, invalid
	}

	metrics.RecordLogin(true)
	return u, nil
}

// RequestPasswordReset logs the request. No email is sent, and the caller
// sees the same outcome whether or not the account exists.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	email = user.NormalizeEmail(email)
	if email == "" {
		return errors.ValidationError("Email is required", nil)
	}

	u, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		s.logger.WithFields(map[string]interface{}{
			"user_id": u.ID,
			"email":   u.Email,
		}).Info("Password reset requested")
	case stderrors.Is(err, errors.ErrNotFound):
		s.logger.WithFields(map[string]interface{}{
			"email": email,
		}).Debug("Password reset requested for unknown email")
	default:
		s.logger.ErrorWithErr(err, "Failed to look up user for password reset")
		return errors.As(err, "Failed to process request")
	}
	return nil
}

// GetProfile retrieves the caller's own record
func (s *UserService) GetProfile(ctx context.Context, userID string) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.As(err, "Failed to fetch profile")
	}
	return u, nil
}

// UpdateName trims and stores a new display name
func (s *UserService) UpdateName(ctx context.Context, userID, name string) (*user.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.ValidationError("Valid name is required", nil)
	}

	if err := s.repo.UpdateName(ctx, userID, name); err != nil {
		if !stderrors.Is(err, errors.ErrNotFound) {
			s.logger.ErrorWithErr(err, "Failed to update profile")
		}
		return nil, errors.As(err, "Failed to update profile")
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.As(err, "Failed to update profile")
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": userID,
	}).Info("User updated")

	return u, nil
}

// Stats combines usage counters with a live report count
func (s *UserService) Stats(ctx context.Context, userID string) (*user.Stats, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.As(err, "Failed to fetch dashboard stats")
	}

	count, err := s.reports.CountByOwner(ctx, userID)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to count reports")
		return nil, errors.As(err, "Failed to fetch dashboard stats")
	}

	return &user.Stats{
		TotalReports:   count,
		PlanType:       u.Plan,
		UsedQueries:    u.UsedQueries,
		QueryLimit:     u.QueryLimit,
		RemainingUsage: u.RemainingQueries(),
		UserName:       u.Name,
	}, nil
}
