package models

import (
	"errors"
	"strings"
)

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

func joinErrors(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return errors.New(strings.Join(errs, "; "))
}
