//go:build pam

package auth

import (
	"github.com/msteinert/pam"
	"github.com/pkg/errors"
)

// PAMAvailable reports whether the binary was built with PAM support.
const PAMAvailable = true

// PAM checks passwords through the system's pluggable authentication
// modules.
type PAM struct {
	service string
}

// NewPAM returns a method using the named PAM service.
func NewPAM(service string) (*PAM, error) {
	if service == "" {
		return nil, errors.New("pam service name is empty")
	}
	return &PAM{service: service}, nil
}

func (p *PAM) Name() string { return "pam" }

func (p *PAM) Authenticate(user, password string) (bool, error) {
	t, err := pam.StartFunc(p.service, user, func(s pam.Style, msg string) (string, error) {
		switch s {
		case pam.PromptEchoOff, pam.PromptEchoOn:
			return password, nil
		case pam.ErrorMsg, pam.TextInfo:
			return "", nil
		default:
			return "", errors.Errorf("unrecognized pam message style %d", s)
		}
	})
	if err != nil {
		return false, errors.Wrap(err, "pam start")
	}

	if err := t.Authenticate(0); err != nil {
		if isAuthFailure(err) {
			return false, nil
		}
		return false, errors.Wrap(err, "pam authenticate")
	}

	if err := t.AcctMgmt(0); err != nil {
		return false, errors.Wrap(err, "pam account")
	}

	return true, nil
}

func isAuthFailure(err error) bool {
	var perr pam.Error
	if errors.As(err, &perr) {
		return perr == pam.ErrAuth || perr == pam.ErrUserUnknown || perr == pam.ErrMaxtries
	}
	return false
}
