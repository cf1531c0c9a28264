// Package saver runs and talks to screensaver subprocesses.
//
// A screensaver is an executable named lockward-saver-<name>. It reads
// newline-delimited JSON commands on stdin and answers with
// newline-delimited JSON responses on stdout:
//
//	-> {"type":"target","display":":0","screen":0,"window":2097153}
//	-> {"type":"start"}
//	<- {"type":"started"}
//
// When its stdout closes the process is reaped and an Exit event is
// delivered.
package saver

import (
	"bufio"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/lockward/lockward/internal/queue"
)

// Prefix is prepended to a screensaver name to find its executable.
const Prefix = "lockward-saver-"

var (
	// ErrNotFound is returned by Spawn when no executable exists for a name.
	ErrNotFound = errors.New("screensaver not found")

	// ErrTaken is returned by Take after the first call.
	ErrTaken = errors.New("screensaver events already taken")

	// ErrHung is returned once a screensaver stopped reading its commands.
	ErrHung = errors.New("screensaver stopped reading commands")

	// ErrGone is returned by commands sent after the process exited.
	ErrGone = errors.New("screensaver is gone")
)

// MaxBacklog is the number of unwritten commands after which a screensaver
// is considered hung and killed.
const MaxBacklog = 256

// Saver is one running screensaver process.
type Saver struct {
	name string
	cmd  *exec.Cmd

	mu      sync.Mutex
	stdin   io.WriteCloser
	started bool
	stopped bool
	err     error

	out     *queue.Queue[[]byte]
	pending atomic.Int64

	events chan Event
	taken  bool

	log *slog.Logger
}

// Option customizes Spawn.
type Option func(*spawnOptions)

type spawnOptions struct {
	dirs   []string
	logger *slog.Logger
	stderr io.Writer
}

// WithSearchPath adds directories searched before $PATH.
func WithSearchPath(dirs ...string) Option {
	return func(o *spawnOptions) { o.dirs = append(o.dirs, dirs...) }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *spawnOptions) { o.logger = l }
}

// WithStderr redirects the screensaver's stderr.
func WithStderr(w io.Writer) Option {
	return func(o *spawnOptions) { o.stderr = w }
}

// Lookup resolves the executable for name.
func Lookup(name string, dirs ...string) (string, error) {
	exe := Prefix + name
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, exe)
		if info, err := os.Stat(path); err == nil && !info.IsDir() && info.Mode()&0o111 != 0 {
			return path, nil
		}
	}

	path, err := exec.LookPath(exe)
	if err != nil {
		return "", errors.Wrapf(ErrNotFound, "%s", name)
	}
	return path, nil
}

// Spawn starts the screensaver called name.
func Spawn(name string, opts ...Option) (*Saver, error) {
	o := spawnOptions{logger: slog.Default(), stderr: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	path, err := Lookup(name, o.dirs...)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(path)
	cmd.Stderr = o.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open screensaver stdin")
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open screensaver stdout")
	}

	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, "failed to start screensaver %s", name)
	}

	s := newSaver(name, stdin, o.logger.With("saver", name, "pid", cmd.Process.Pid))
	s.cmd = cmd

	go s.read(stdout)

	return s, nil
}

// newSaver starts the writer goroutine. Commands are written to stdin in
// the order they were sent; callers never wait on the pipe.
func newSaver(name string, stdin io.WriteCloser, log *slog.Logger) *Saver {
	s := &Saver{
		name:   name,
		stdin:  stdin,
		events: make(chan Event, 16),
		out:    queue.New[[]byte](),
		log:    log,
	}
	go s.write()
	return s
}

// Name returns the screensaver name.
func (s *Saver) Name() string { return s.name }

// Take returns the event channel. Only the first caller gets it.
func (s *Saver) Take() (<-chan Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.taken {
		return nil, ErrTaken
	}
	s.taken = true
	return s.events, nil
}

// Config sends the screensaver its configuration table.
func (s *Saver) Config(options map[string]any) error {
	if options == nil {
		options = map[string]any{}
	}
	return s.send(message{"type": "config", "config": options})
}

// Target tells the screensaver which window to draw on.
func (s *Saver) Target(display string, screen int, window uint64) error {
	return s.send(message{"type": "target", "display": display, "screen": screen, "window": window})
}

// Throttle asks the screensaver to reduce its resource usage.
func (s *Saver) Throttle(value bool) error {
	return s.send(message{"type": "throttle", "throttle": value})
}

// Blank tells the screensaver the screen is powered off.
func (s *Saver) Blank(value bool) error {
	return s.send(message{"type": "blank", "blank": value})
}

// Resize forwards a new window geometry.
func (s *Saver) Resize(width, height uint32) error {
	return s.send(message{"type": "resize", "width": width, "height": height})
}

// Safety forwards the current safety level.
func (s *Saver) Safety(level Safety) error {
	return s.send(message{"type": "safety", "safety": level})
}

// Password forwards password-entry feedback.
func (s *Saver) Password(p Password) error {
	return s.send(message{"type": "password", "password": p})
}

// Pointer forwards a pointer event.
func (s *Saver) Pointer(p Pointer) error {
	switch v := p.(type) {
	case Move:
		return s.send(message{"type": "pointer", "move": v})
	case Button:
		return s.send(message{"type": "pointer", "button": v})
	default:
		return errors.Errorf("unknown pointer event %T", p)
	}
}

// Start asks the screensaver to start drawing.
func (s *Saver) Start() error {
	if err := s.send(message{"type": "start"}); err != nil {
		return err
	}

	s.mu.Lock()
	s.started = true
	s.mu.Unlock()
	return nil
}

// Lock tells the screensaver the session now requires a password.
func (s *Saver) Lock() error {
	return s.send(message{"type": "lock"})
}

// Stop asks the screensaver to stop. The stop is recorded even when the
// write fails so a later exit is treated as orderly.
func (s *Saver) Stop() error {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	return s.send(message{"type": "stop"})
}

// Kill terminates the process immediately.
func (s *Saver) Kill() {
	if s.cmd == nil || s.cmd.Process == nil {
		return
	}
	if err := s.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		s.log.Warn("failed to kill screensaver", "error", err)
	}
}

// WasStarted reports whether Start was sent.
func (s *Saver) WasStarted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// WasStopped reports whether Stop was requested.
func (s *Saver) WasStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

type message map[string]any

func (s *Saver) send(m message) error {
	data, err := json.Marshal(m)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %v command", m["type"])
	}
	data = append(data, '\n')

	s.mu.Lock()
	err = s.err
	s.mu.Unlock()
	if err != nil {
		return errors.Wrapf(err, "failed to send %v to screensaver %s", m["type"], s.name)
	}

	if s.pending.Add(1) > MaxBacklog {
		s.pending.Add(-1)
		s.log.Warn("screensaver is not reading its input, killing it", "backlog", MaxBacklog)
		s.fail(ErrHung)
		s.Kill()
		return errors.Wrapf(ErrHung, "failed to send %v to screensaver %s", m["type"], s.name)
	}

	if !s.out.Push(data) {
		s.pending.Add(-1)
		return errors.Wrapf(ErrGone, "failed to send %v to screensaver %s", m["type"], s.name)
	}
	return nil
}

// fail records the first reason the screensaver can no longer take
// commands.
func (s *Saver) fail(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
}

func (s *Saver) write() {
	for data := range s.out.Out() {
		_, err := s.stdin.Write(data)
		s.pending.Add(-1)
		if err != nil {
			s.log.Debug("failed to write to screensaver", "error", err)
			s.fail(ErrGone)
			s.out.Close()
			return
		}
	}
}

func (s *Saver) read(stdout io.Reader) {
	defer close(s.events)

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		resp, err := decodeResponse(line)
		if err != nil {
			s.log.Warn("ignoring screensaver output", "error", err)
			continue
		}
		s.events <- Forward{Response: resp}
	}
	if err := scanner.Err(); err != nil {
		s.log.Warn("screensaver output closed", "error", err)
	}

	var exitErr error
	if s.cmd != nil {
		exitErr = s.cmd.Wait()
	}
	s.fail(ErrGone)
	s.out.Close()
	s.stdin.Close()
	s.events <- Exit{Err: exitErr}
}

func decodeResponse(line []byte) (Response, error) {
	var msg struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(line, &msg); err != nil {
		return 0, errors.Wrap(err, "malformed response")
	}
	return parseResponse(msg.Type)
}
