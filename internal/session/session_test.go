package session

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSessionPath(t *testing.T) {
	sessions := []interface{}{
		[]interface{}{"c1", uint32(1000), "alice", "seat0", dbus.ObjectPath("/org/freedesktop/login1/session/c1")},
		[]interface{}{"3", uint32(1001), "bob", "seat0", dbus.ObjectPath("/org/freedesktop/login1/session/_33")},
	}

	path, err := sessionPath(sessions, "3")
	require.NoError(t, err)
	assert.Equal(t, dbus.ObjectPath("/org/freedesktop/login1/session/_33"), path)

	_, err = sessionPath(sessions, "7")
	assert.ErrorContains(t, err, "not found")

	_, err = sessionPath([]interface{}{"garbage"}, "3")
	assert.ErrorContains(t, err, "malformed")

	_, err = sessionPath([]interface{}{[]interface{}{"3", 0, "", "", "not a path"}}, "3")
	assert.ErrorContains(t, err, "object path")
}

func TestTranslateLogind(t *testing.T) {
	const ours = dbus.ObjectPath("/org/freedesktop/login1/session/c1")
	const other = dbus.ObjectPath("/org/freedesktop/login1/session/c2")

	tests := []struct {
		name string
		sig  *dbus.Signal
		want Event
	}{
		{"lock", &dbus.Signal{Path: ours, Name: logindSessionInterface + ".Lock"}, Lock{Source: SourceLogind}},
		{"unlock", &dbus.Signal{Path: ours, Name: logindSessionInterface + ".Unlock"}, Unlock{}},
		{"lock for another session", &dbus.Signal{Path: other, Name: logindSessionInterface + ".Lock"}, nil},
		{"going to sleep", &dbus.Signal{Path: logindPath, Name: logindManagerInterface + ".PrepareForSleep", Body: []interface{}{true}}, Sleep{Sleeping: true}},
		{"resumed", &dbus.Signal{Path: logindPath, Name: logindManagerInterface + ".PrepareForSleep", Body: []interface{}{false}}, Sleep{Sleeping: false}},
		{"sleep without body", &dbus.Signal{Path: logindPath, Name: logindManagerInterface + ".PrepareForSleep"}, nil},
		{"sleep with bad body", &dbus.Signal{Path: logindPath, Name: logindManagerInterface + ".PrepareForSleep", Body: []interface{}{"yes"}}, nil},
		{"unrelated", &dbus.Signal{Path: ours, Name: "org.freedesktop.DBus.Properties.PropertiesChanged"}, nil},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translateLogind(tt.sig, ours)
			assert.Equal(t, tt.want != nil, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func newTestState(idle func() (time.Duration, error)) *state {
	return newState(idle, discardLogger())
}

func TestScreenSaverMethods(t *testing.T) {
	s := newTestState(nil)
	m := methods{s}

	require.Nil(t, m.Lock())
	require.Nil(t, m.SimulateUserActivity())
	ok, derr := m.SetActive(true)
	require.Nil(t, derr)
	assert.True(t, ok)

	assert.Equal(t, Lock{Source: SourceDBus}, <-s.events)
	assert.Equal(t, Activity{}, <-s.events)
	assert.Equal(t, SetActive{Active: true}, <-s.events)

	// SetActive only asks; the state follows the locker.
	active, _ := m.GetActive()
	assert.False(t, active)
}

func TestActiveTime(t *testing.T) {
	s := newTestState(nil)
	now := time.Unix(1_700_000_000, 0)
	s.now = func() time.Time { return now }
	m := methods{s}

	secs, _ := m.GetActiveTime()
	assert.Zero(t, secs)

	assert.True(t, s.setActive(true))
	assert.False(t, s.setActive(true))

	now = now.Add(90 * time.Second)
	secs, _ = m.GetActiveTime()
	assert.Equal(t, uint32(90), secs)

	active, _ := m.GetActive()
	assert.True(t, active)

	assert.True(t, s.setActive(false))
	secs, _ = m.GetActiveTime()
	assert.Zero(t, secs)
}

func TestSessionIdleTime(t *testing.T) {
	m := methods{newTestState(nil)}
	secs, derr := m.GetSessionIdleTime()
	assert.Nil(t, derr)
	assert.Zero(t, secs)

	m = methods{newTestState(func() (time.Duration, error) { return 2500 * time.Millisecond, nil })}
	secs, derr = m.GetSessionIdleTime()
	assert.Nil(t, derr)
	assert.Equal(t, uint32(2), secs)

	m = methods{newTestState(func() (time.Duration, error) { return 0, errors.New("no extension") })}
	_, derr = m.GetSessionIdleTime()
	assert.NotNil(t, derr)
}

func TestInhibitors(t *testing.T) {
	s := newTestState(nil)
	m := methods{s}

	assert.False(t, s.inhibited())

	first, derr := m.Inhibit(":1.10", "mpv", "playing video")
	require.Nil(t, derr)
	second, _ := m.Inhibit(":1.10", "mpv", "playing video")
	third, _ := m.Inhibit(":1.22", "firefox", "video call")
	assert.NotEqual(t, first, second)
	assert.NotZero(t, first)
	assert.True(t, s.inhibited())

	// Only the owner may release a cookie.
	assert.NotNil(t, m.UnInhibit(":1.22", first))
	assert.Nil(t, m.UnInhibit(":1.10", first))
	assert.NotNil(t, m.UnInhibit(":1.10", first))

	assert.Equal(t, 1, s.drop(":1.10"))
	assert.True(t, s.inhibited())
	assert.Nil(t, m.UnInhibit(":1.22", third))
	assert.False(t, s.inhibited())
	assert.Zero(t, s.drop(":1.10"))
}

func TestInhibitCookieWraps(t *testing.T) {
	s := newTestState(nil)
	s.cookie = ^uint32(0) - 1
	s.inhibitors[1] = inhibitor{sender: ":1.5"}

	a := s.inhibit(":1.6", "a", "")
	b := s.inhibit(":1.6", "b", "")
	assert.Equal(t, ^uint32(0), a)
	assert.Equal(t, uint32(2), b)
}

func TestVanished(t *testing.T) {
	gone := &dbus.Signal{Name: "org.freedesktop.DBus.NameOwnerChanged", Body: []interface{}{":1.10", ":1.10", ""}}
	name, ok := vanished(gone)
	assert.True(t, ok)
	assert.Equal(t, ":1.10", name)

	acquired := &dbus.Signal{Name: "org.freedesktop.DBus.NameOwnerChanged", Body: []interface{}{"org.example", "", ":1.11"}}
	_, ok = vanished(acquired)
	assert.False(t, ok)

	_, ok = vanished(&dbus.Signal{Name: "org.freedesktop.DBus.NameAcquired", Body: []interface{}{":1.10"}})
	assert.False(t, ok)
}

func TestEventsDropWhenFull(t *testing.T) {
	s := newTestState(nil)
	for i := 0; i < cap(s.events)+4; i++ {
		s.send(Activity{})
	}
	assert.Len(t, s.events, cap(s.events))
}

func TestMethodTable(t *testing.T) {
	table := methods{newTestState(nil)}.table()
	for _, name := range []string{
		"Lock", "SimulateUserActivity", "GetActive", "GetActiveTime",
		"GetSessionIdleTime", "SetActive", "Inhibit", "UnInhibit",
	} {
		assert.Contains(t, table, name)
	}
}
