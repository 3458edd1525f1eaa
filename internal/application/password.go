package application

import (
	"fmt"

	"github.com/oksasatya/civic-reports/config"
	"github.com/oksasatya/civic-reports/pkg/helpers"
)

// PasswordPolicy decides how account secrets are stored and compared.
type PasswordPolicy interface {
	Seal(plain string) (string, error)
	Matches(stored, plain string) bool
}

// PlaintextPasswords stores the secret as given and compares it verbatim.
// This is the compatibility default for existing user: records.
type PlaintextPasswords struct{}

func (PlaintextPasswords) Seal(plain string) (string, error) { return plain, nil }

func (PlaintextPasswords) Matches(stored, plain string) bool { return stored == plain }

// BcryptPasswords stores bcrypt hashes. Records written before the switch
// from plaintext are still compared verbatim.
type BcryptPasswords struct{}

func (BcryptPasswords) Seal(plain string) (string, error) { return helpers.HashPassword(plain) }

func (BcryptPasswords) Matches(stored, plain string) bool {
	if !helpers.IsPasswordHash(stored) {
		return stored == plain
	}
	return helpers.CompareHashAndPassword(stored, plain)
}

func NewPasswordPolicy(mode string) (PasswordPolicy, error) {
	switch mode {
	case "", config.PasswordPlaintext:
		return PlaintextPasswords{}, nil
	case config.PasswordBcrypt:
		return BcryptPasswords{}, nil
	default:
		return nil, fmt.Errorf("unknown password mode %q", mode)
	}
}
