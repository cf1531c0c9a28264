package auth

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// Internal checks passwords against a bcrypt hash from the configuration,
// independent of the system password database.
type Internal struct {
	hash []byte
}

// NewInternal validates hash and returns the method.
func NewInternal(hash string) (*Internal, error) {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, errors.Wrap(err, "invalid internal password hash")
	}
	return &Internal{hash: []byte(hash)}, nil
}

// HashPassword produces a hash usable with NewInternal.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}
	return string(hash), nil
}

func (i *Internal) Name() string { return "internal" }

func (i *Internal) Authenticate(_ string, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(i.hash, []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, errors.Wrap(err, "bcrypt")
	}
}
