package supervisor

import (
	"github.com/lockward/lockward/internal/locker"
	"github.com/lockward/lockward/internal/x11"
)

// xDisplay presents an *x11.Display as a locker.Display.
type xDisplay struct {
	*x11.Display
	dpms bool
}

func (d xDisplay) CreateWindow(screen int) (locker.Window, error) {
	w, err := d.Display.CreateWindow(screen)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// Power is a no-op when monitor power management is disabled.
func (d xDisplay) Power(on bool) {
	if d.dpms {
		d.Display.Power(on)
	}
}

var _ locker.Display = xDisplay{}
