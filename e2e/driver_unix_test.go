//go:build e2e && unix

package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

var binPath = "distrimed_e2e"

const (
	keyEnter = "\r"
	keyEsc   = "\x1b"
	keyCtrlC = "\x03"
	keyTab   = "\t"
	keyDown  = "j"
	keyQuit  = "q"
	keyHelp  = "?"

	// output kept for assertions; older bytes are discarded
	maxCapture = 1 << 20
	pollEvery  = 25 * time.Millisecond
)

// escape sequences stripped before matching text: CSI, OSC, charset and keypad modes
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` +
		`(?:\x1b\][^\x07]*\x07)|` +
		`(?:\x1b[\(\)][A-Za-z])|` +
		`(?:\x1b=|\x1b>)|` +
		`\r`,
)

// appSession runs the binary in a pseudo terminal and records what it draws
type appSession struct {
	t         *testing.T
	workspace string
	cmd       *exec.Cmd
	ptmx      *os.File
	exited    chan struct{}
	exitErr   error

	mu  sync.Mutex
	out bytes.Buffer
}

func newSession(t *testing.T) *appSession {
	return &appSession{t: t}
}

// start launches the app in a 120x40 terminal with $HOME inside the workspace
func (s *appSession) start(args ...string) error {
	s.cmd = exec.Command(binPath, args...)
	s.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C.UTF-8",
		"HOME="+s.workspace,
		"XDG_CONFIG_HOME="+s.workspace,
	)

	ptmx, err := pty.StartWithSize(s.cmd, &pty.Winsize{Rows: 40, Cols: 120})
	if err != nil {
		return fmt.Errorf("failed to start app in pty: %w", err)
	}
	s.ptmx = ptmx
	s.exited = make(chan struct{})

	go s.capture()
	go func() {
		s.exitErr = s.cmd.Wait()
		close(s.exited)
	}()
	return nil
}

func (s *appSession) capture() {
	chunk := make([]byte, 8192)
	for {
		n, err := s.ptmx.Read(chunk)
		if n > 0 {
			s.mu.Lock()
			s.out.Write(chunk[:n])
			if extra := s.out.Len() - maxCapture; extra > 0 {
				s.out.Next(extra)
			}
			s.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// press writes keys to the terminal
func (s *appSession) press(keys ...string) {
	s.t.Helper()
	for _, k := range keys {
		if _, err := s.ptmx.Write([]byte(k)); err != nil {
			s.t.Fatalf("failed to send %q: %v", k, err)
		}
	}
}

// plain returns everything drawn so far without escape sequences
func (s *appSession) plain() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ansiRe.ReplaceAllString(s.out.String(), "")
}

// waitFor polls until text has been drawn or timeout passes
func (s *appSession) waitFor(text string, timeout time.Duration) bool {
	s.t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		if strings.Contains(s.plain(), text) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(pollEvery)
	}
}

// see waits briefly for text
func (s *appSession) see(text string) bool {
	s.t.Helper()
	return s.waitFor(text, 3*time.Second)
}

// ready waits for the first page to render
func (s *appSession) ready() bool {
	s.t.Helper()
	return s.waitFor("Resultados de Distribución", 5*time.Second)
}

// waitExit reports whether the process ended within timeout, and its error
func (s *appSession) waitExit(timeout time.Duration) (bool, error) {
	select {
	case <-s.exited:
		return true, s.exitErr
	case <-time.After(timeout):
		return false, nil
	}
}

// dumpTail saves the last n characters drawn, for debugging failures
func (s *appSession) dumpTail(name string, n int) {
	out := s.plain()
	if len(out) > n {
		out = out[len(out)-n:]
	}
	p := filepath.Join(s.t.TempDir(), name+".txt")
	_ = os.WriteFile(p, []byte(out), 0644)
	s.t.Logf("saved output tail to %s", p)
}

// close hangs up the terminal and kills the app if it is still running
func (s *appSession) close() {
	if s.ptmx != nil {
		_ = s.ptmx.Close()
		s.ptmx = nil
	}
	if s.exited != nil {
		_ = s.cmd.Process.Kill()
		<-s.exited
	}
}
