package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPasscode  = fmt.Errorf("%w: invalid passcode", ErrUnauthorized)
	ErrInvalidToken     = fmt.Errorf("%w: invalid or expired token", ErrUnauthorized)
	ErrPasscodeTooShort = fmt.Errorf("%w: passcode must be at least 4 characters long", ErrValidation)
	ErrAuthDisabled     = fmt.Errorf("device authentication %w", ErrNotFound)
)

const passcodeCost = 12

// Device is a client that exchanged the diary passcode for a token. The diary
// has a single owner; devices only decide who may read and write it.
type Device struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	IssuedAt time.Time `json:"issuedAt"`
}

func NewDevice(name string) *Device {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "unnamed device"
	}
	return &Device{
		ID:       uuid.NewString(),
		Name:     name,
		IssuedAt: time.Now().UTC(),
	}
}

func HashPasscode(plain string) (string, error) {
	if utf8.RuneCountInString(plain) < 4 {
		return "", ErrPasscodeTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), passcodeCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasscode(hash, plain string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)); err != nil {
		return ErrInvalidPasscode
	}
	return nil
}
