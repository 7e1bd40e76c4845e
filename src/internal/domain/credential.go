package domain

import "time"

const (
	RoleManager  = "Manager"
	RoleOperator = "Operator"
)

type Credential struct {
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}
