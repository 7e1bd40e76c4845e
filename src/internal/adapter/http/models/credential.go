package models

import (
	"strings"

	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/domain"
)

const MinPasswordLength = 6

type CreateOperatorRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

func (r CreateOperatorRequest) Validate() error {
	var errs []string

	username := strings.TrimSpace(r.Username)
	if username == "" {
		errs = append(errs, "username is required")
	} else if len(username) > 50 {
		errs = append(errs, "username must be at most 50 characters")
	}

	if r.Password == "" {
		errs = append(errs, "password is required")
	} else if len(r.Password) < MinPasswordLength {
		errs = append(errs, "password must be at least 6 characters")
	}

	if role := strings.TrimSpace(r.Role); role != "" && !strings.EqualFold(role, domain.RoleManager) && !strings.EqualFold(role, domain.RoleOperator) {
		errs = append(errs, "role must be one of Manager, Operator")
	}

	return joinErrors(errs)
}

type OperatorResponse struct {
	Username  string `json:"username"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	var errs []string
	if isBlank(r.Username) {
		errs = append(errs, "username is required")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	}
	return joinErrors(errs)
}

type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpiresAt string `json:"expiresAt"`
	Username  string `json:"username"`
	Role      string `json:"role"`
}
