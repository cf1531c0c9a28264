package supervisor

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/lockward/lockward/internal/auth"
	"github.com/lockward/lockward/internal/config"
	"github.com/lockward/lockward/internal/database"
	"github.com/lockward/lockward/internal/locker"
	"github.com/lockward/lockward/internal/session"
	"github.com/lockward/lockward/internal/timer"
	"github.com/lockward/lockward/internal/x11"
)

// ErrNotX11 is returned when the daemon is started outside an X11 session.
var ErrNotX11 = errors.New("lockward requires an X11 session")

// Runtime owns every component of a running daemon.
type Runtime struct {
	*Service

	display *x11.Display
	locker  *locker.Locker
	db      *database.DB
	logind  *session.Logind
	saver   *session.ScreenSaver
	cancel  context.CancelFunc
	log     *slog.Logger
}

// AuthMethods builds the configured backends in order: PAM, then the
// internal hash.
func AuthMethods(cfg *config.Config, log *slog.Logger) []auth.Method {
	var methods []auth.Method

	if cfg.Auth.PAM.Enabled {
		m, err := auth.NewPAM(cfg.Auth.PAM.Service)
		if err != nil {
			log.Warn("PAM backend unavailable", "error", err)
		} else {
			methods = append(methods, m)
		}
	}

	if cfg.Auth.Internal.Hash != "" {
		m, err := auth.NewInternal(cfg.Auth.Internal.Hash)
		if err != nil {
			log.Warn("internal backend unavailable", "error", err)
		} else {
			methods = append(methods, m)
		}
	}

	return methods
}

// LockerConfig extracts the locker settings from cfg.
func LockerConfig(cfg *config.Config) locker.Config {
	lc := locker.Config{
		Savers:   cfg.Saver.Use,
		Options:  cfg.Saver.Options,
		Timeout:  cfg.SaverTimeout(),
		Throttle: cfg.Saver.Throttle,
	}
	if cfg.Saver.Path != "" {
		lc.SearchPath = []string{cfg.Saver.Path}
	}
	return lc
}

// Open connects to the display, the session buses and the database and
// spawns the locker, auth and timer workers. Close releases everything.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Runtime, error) {
	if kind := x11.DetectSession(); kind != x11.SessionX11 {
		return nil, errors.Wrapf(ErrNotX11, "detected %s session", kind)
	}

	ctx, cancel := context.WithCancel(ctx)
	rt := &Runtime{cancel: cancel, log: log}

	fail := func(err error) (*Runtime, error) {
		rt.Close()
		return nil, err
	}

	disp, err := x11.Open(cfg.Locker.Display, log)
	if err != nil {
		return fail(err)
	}
	rt.display = disp

	kb, err := x11.NewKeyboard(disp)
	if err != nil {
		return fail(err)
	}

	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		return fail(err)
	}
	rt.db = db
	if err := db.Initialize(); err != nil {
		return fail(err)
	}
	repo := database.NewRepository(db)
	if n, err := repo.EndDangling(time.Now()); err != nil {
		log.Warn("failed to close previous sessions", "error", err)
	} else if n > 0 {
		log.Info("closed sessions left open by a previous run", "count", n)
	}

	lk, err := locker.Spawn(ctx, LockerConfig(cfg), xDisplay{Display: disp, dpms: cfg.Locker.DPMS}, kb,
		locker.WithLogger(log))
	if err != nil {
		return fail(err)
	}
	rt.locker = lk

	au, err := auth.Spawn(ctx, AuthMethods(cfg, log), auth.WithLogger(log))
	if err != nil {
		return fail(err)
	}

	tm := timer.Spawn(ctx, TimerConfig(cfg), timer.WithLogger(log))

	deps := Deps{
		Locker:  lk,
		Auth:    au,
		Timer:   tm,
		History: repo,
		Screens: disp.Screens(),
	}

	if cfg.Session.Logind {
		l, err := session.ConnectLogind(os.Getenv("XDG_SESSION_ID"), log)
		if err != nil {
			log.Warn("logind integration disabled", "error", err)
		} else {
			rt.logind = l
			deps.Logind = l
		}
	}

	if cfg.Session.DBus {
		s, err := session.ServeScreenSaver(disp.IdleTime, log)
		if err != nil {
			log.Warn("ScreenSaver service disabled", "error", err)
		} else {
			rt.saver = s
			deps.ScreenSaver = s
		}
	}

	rt.Service = NewService(cfg, deps, WithLogger(log))
	return rt, nil
}

// Close stops the workers and closes every connection.
func (rt *Runtime) Close() {
	rt.cancel()

	if rt.saver != nil {
		if err := rt.saver.Close(); err != nil {
			rt.log.Debug("failed to close session bus", "error", err)
		}
	}
	if rt.logind != nil {
		if err := rt.logind.SetLockedHint(false); err != nil {
			rt.log.Debug("failed to clear locked hint", "error", err)
		}
		if err := rt.logind.Close(); err != nil {
			rt.log.Debug("failed to close system bus", "error", err)
		}
	}
	if rt.db != nil {
		if err := rt.db.Close(); err != nil {
			rt.log.Warn("failed to close database", "error", err)
		}
	}
	if rt.locker != nil {
		select {
		case <-rt.locker.Done():
		case <-time.After(2 * time.Second):
			rt.log.Warn("locker did not shut down in time")
		}
	}
	if rt.display != nil {
		rt.display.Close()
	}
}
