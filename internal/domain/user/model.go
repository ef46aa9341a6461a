package user

import (
	"strings"
	"time"
)

// User represents an account. Plan and quota are always read from the store,
// never from a token.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Not exposed in JSON
	Name         string    `json:"name"`
	Plan         string    `json:"plan"`
	UsedQueries  int       `json:"usedQueries"`
	QueryLimit   int       `json:"queryLimit"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Plan types
const (
	PlanFree       = "free"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

// DefaultQueryLimit returns the report ceiling a plan starts with
func DefaultQueryLimit(plan string) int {
	switch plan {
	case PlanPro:
		return 100
	case PlanEnterprise:
		return 1000
	default:
		return 10
	}
}

// NormalizeEmail lowercases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RemainingQueries is never negative, even when an external adjustment lowered the limit
func (u *User) RemainingQueries() int {
	if u.UsedQueries >= u.QueryLimit {
		return 0
	}
	return u.QueryLimit - u.UsedQueries
}

// HasQuota reports whether another report may be generated
func (u *User) HasQuota() bool {
	return u.UsedQueries < u.QueryLimit
}

// Stats is the dashboard usage summary
type Stats struct {
	TotalReports   int64  `json:"totalReports"`
	PlanType       string `json:"planType"`
	UsedQueries    int    `json:"usedQueries"`
	QueryLimit     int    `json:"queryLimit"`
	RemainingUsage int    `json:"remainingUsage"`
	UserName       string `json:"userName"`
}
