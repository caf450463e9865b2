package tui

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"

	"github.com/vovakirdan/dodgesim/internal/sim"
)

// fakeSession implements the parts of ssh.Session the server touches.
type fakeSession struct {
	ssh.Session
	pty    ssh.Pty
	hasPty bool
}

func (f fakeSession) Pty() (ssh.Pty, <-chan ssh.Window, bool) {
	return f.pty, nil, f.hasPty
}

func (f fakeSession) User() string { return "tester" }

func (f fakeSession) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 50000}
}

func newTestSSHServer(t *testing.T, newLoop LoopFactory) (*SSHServer, string) {
	t.Helper()
	keyPath := filepath.Join(t.TempDir(), "keys", "host_key")

	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = keyPath

	srv, err := NewSSHServer(cfg, newLoop, nil, log.New(os.Stderr))
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	return srv, keyPath
}

func TestNewSSHServerCreatesHostKey(t *testing.T) {
	srv, keyPath := newTestSSHServer(t, testFactory(10))

	if _, err := os.Stat(keyPath); err != nil {
		t.Errorf("host key not generated: %v", err)
	}
	if srv.Addr() != "127.0.0.1:0" {
		t.Errorf("Addr() = %q", srv.Addr())
	}
}

func TestTeaHandlerBuildsSessionModel(t *testing.T) {
	srv, _ := newTestSSHServer(t, testFactory(10))

	sess := fakeSession{hasPty: true, pty: ssh.Pty{Term: "xterm", Window: ssh.Window{Width: 100, Height: 30}}}
	model, opts := srv.teaHandler(sess)
	if model == nil {
		t.Fatal("teaHandler() returned nil model for a PTY session")
	}
	if len(opts) == 0 {
		t.Error("teaHandler() should request the alternate screen")
	}

	m, ok := model.(Model)
	if !ok {
		t.Fatalf("teaHandler() model type = %T", model)
	}
	if m.screen.Width() != 100 {
		t.Errorf("screen width = %d, expected PTY width 100", m.screen.Width())
	}
}

func TestTeaHandlerSessionsAreIndependent(t *testing.T) {
	srv, _ := newTestSSHServer(t, testFactory(10))
	sess := fakeSession{hasPty: true, pty: ssh.Pty{Window: ssh.Window{Width: 80, Height: 24}}}

	first, _ := srv.teaHandler(sess)
	second, _ := srv.teaHandler(sess)

	a := tick(t, first.(Model))
	if a.loop.Frame() != 1 {
		t.Fatalf("first session frame = %d, expected 1", a.loop.Frame())
	}
	if second.(Model).loop.Frame() != 0 {
		t.Error("ticking one session advanced another")
	}
}

func TestTeaHandlerRejectsSessions(t *testing.T) {
	srv, _ := newTestSSHServer(t, testFactory(10))

	if model, _ := srv.teaHandler(fakeSession{}); model != nil {
		t.Error("teaHandler() should skip sessions without a PTY")
	}

	failing, _ := newTestSSHServer(t, func() (*sim.Loop, error) {
		return nil, errors.New("boom")
	})
	sess := fakeSession{hasPty: true, pty: ssh.Pty{Window: ssh.Window{Width: 80, Height: 24}}}
	if model, _ := failing.teaHandler(sess); model != nil {
		t.Error("teaHandler() should skip sessions whose loop cannot be built")
	}
}

func TestLoggingMiddlewareCallsNext(t *testing.T) {
	srv, _ := newTestSSHServer(t, testFactory(10))

	calls := 0
	handler := srv.loggingMiddleware(func(ssh.Session) { calls++ })
	handler(fakeSession{})

	if calls != 1 {
		t.Errorf("next handler called %d times, expected 1", calls)
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	srv, _ := newTestSSHServer(t, testFactory(10))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := srv.ListenAndServe(ctx); err != nil {
		t.Errorf("ListenAndServe() after cancel = %v, expected nil", err)
	}
}
