//go:build !pam

package auth

import "github.com/pkg/errors"

// PAMAvailable reports whether the binary was built with PAM support.
const PAMAvailable = false

// NewPAM fails: this binary was built without the pam tag.
func NewPAM(service string) (Method, error) {
	return nil, errors.Errorf("pam service %q requested but built without pam support", service)
}
