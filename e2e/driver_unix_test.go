//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"
	"unsafe"

	"github.com/creack/pty"
)

const ringSize = 1 << 20     // 1 MiB of scrollback
var binPath = "goalsort_e2e" // unified binary path

const (
	KeyEnter = "\r"
	KeyCtrlC = "\x03"
	KeyEsc   = "\x1b"
	KeyDown  = "j"
	KeyQuit  = "q"
)

// Terminal size the app is started with
const (
	termRows = 40
	termCols = 120
)

// listTop is the 0-based screen row of the first goal with the blurb hidden:
// title line, then the input panel with its two borders.
const listTop = 5

// ANSI escape sequence regex for normalization - covers CSI, OSC, charset, keypad modes
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` + // CSI sequences
		`(?:\x1b\][^\x07]*\x07)|` + // OSC sequences
		`(?:\x1b[\(\)][A-Za-z])|` + // charset sequences
		`(?:\x1b=|\x1b>)|` + // keypad mode sequences
		`\r`, // carriage returns
)

// TUITestFramework drives goalsort in a PTY
type TUITestFramework struct {
	t         *testing.T
	pty       *os.File
	tty       *os.File
	cmd       *exec.Cmd
	workspace string

	// Ring buffer for continuous output capture
	mu   sync.Mutex
	buf  []byte
	head int
	full bool
	cond *sync.Cond
}

// NewTUITest creates a new TUI test framework instance with its own workspace
func NewTUITest(t *testing.T) *TUITestFramework {
	tf := &TUITestFramework{
		t:         t,
		buf:       make([]byte, ringSize),
		workspace: t.TempDir(),
	}
	tf.cond = sync.NewCond(&tf.mu)
	return tf
}

// WriteConfig writes a config file into the workspace and returns its path
func (tf *TUITestFramework) WriteConfig(demoGoals int) string {
	tf.t.Helper()
	path := filepath.Join(tf.workspace, "config.toml")
	content := fmt.Sprintf("[list]\nrow_height = 1\nshow_blurb = false\n\n[seed]\ndemo_goals = %d\n", demoGoals)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		tf.t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// DBPath returns the SQLite path inside the workspace
func (tf *TUITestFramework) DBPath() string {
	return filepath.Join(tf.workspace, "goals.sqlite")
}

// StartApp launches goalsort with the given arguments in a PTY
func (tf *TUITestFramework) StartApp(args ...string) error {
	args = append(args, "--log-file", filepath.Join(tf.workspace, "goalsort.log"))
	tf.cmd = exec.Command(binPath, args...)

	tf.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C",
		"LANG=C",
		"HOME="+tf.workspace, // isolate $HOME
		"XDG_CONFIG_HOME="+filepath.Join(tf.workspace, ".config"),
	)

	ptyFile, tty, err := pty.Open()
	if err != nil {
		return fmt.Errorf("failed to open pty: %w", err)
	}

	tf.pty = ptyFile
	tf.tty = tty
	tf.cmd.Stdout = tty
	tf.cmd.Stdin = tty
	tf.cmd.Stderr = tty

	ws := struct {
		Row uint16
		Col uint16
		X   uint16
		Y   uint16
	}{termRows, termCols, 0, 0}
	syscall.Syscall(syscall.SYS_IOCTL, ptyFile.Fd(), uintptr(syscall.TIOCSWINSZ), uintptr(unsafe.Pointer(&ws)))

	if err := tf.cmd.Start(); err != nil {
		ptyFile.Close()
		tty.Close()
		return fmt.Errorf("failed to start command: %w", err)
	}

	tf.startReader()
	return nil
}

// startReader starts the continuous reader goroutine
func (tf *TUITestFramework) startReader() {
	go func() {
		buf := make([]byte, 8192)
		for {
			n, err := tf.pty.Read(buf)
			if n > 0 {
				tf.mu.Lock()
				for i := 0; i < n; i++ {
					tf.buf[tf.head] = buf[i]
					tf.head = (tf.head + 1) % ringSize
					if tf.head == 0 {
						tf.full = true
					}
				}
				tf.cond.Broadcast()
				tf.mu.Unlock()
			}
			if err != nil {
				tf.mu.Lock()
				tf.cond.Broadcast()
				tf.mu.Unlock()
				return
			}
		}
	}()
}

// SendKeys sends keystrokes to the application
func (tf *TUITestFramework) SendKeys(keys string) error {
	tf.t.Helper()
	_, err := tf.pty.Write([]byte(keys))
	return err
}

// Quit sends 'q'
func (tf *TUITestFramework) Quit() error {
	return tf.SendKeys(KeyQuit)
}

// SendCtrlC sends Ctrl+C to terminate the application
func (tf *TUITestFramework) SendCtrlC() error {
	return tf.SendKeys(KeyCtrlC)
}

// SGR mouse reports use 1-based cells. Button 0 is left, 32 marks motion.
func (tf *TUITestFramework) MousePress(x, y int) error {
	return tf.SendKeys(fmt.Sprintf("\x1b[<0;%d;%dM", x+1, y+1))
}

func (tf *TUITestFramework) MouseDrag(x, y int) error {
	return tf.SendKeys(fmt.Sprintf("\x1b[<32;%d;%dM", x+1, y+1))
}

func (tf *TUITestFramework) MouseRelease(x, y int) error {
	return tf.SendKeys(fmt.Sprintf("\x1b[<0;%d;%dm", x+1, y+1))
}

// DragRow drags the handle of the list row at from to the list row at to,
// one screen row per motion report
func (tf *TUITestFramework) DragRow(from, to int) error {
	y := listTop + from
	if err := tf.MousePress(0, y); err != nil {
		return err
	}
	step := 1
	if to < from {
		step = -1
	}
	for r := from; r != to; r += step {
		time.Sleep(10 * time.Millisecond)
		if err := tf.MouseDrag(0, listTop+r+step); err != nil {
			return err
		}
	}
	time.Sleep(10 * time.Millisecond)
	return tf.MouseRelease(0, listTop+to)
}

// SeePlain waits until the normalized output contains text
func (tf *TUITestFramework) SeePlain(text string) bool {
	tf.t.Helper()
	return tf.WaitFor(func(s string) bool {
		return strings.Contains(ansiRe.ReplaceAllString(s, ""), text)
	}, 3*time.Second)
}

// SeeInOrder waits until the normalized output shows texts in this order
func (tf *TUITestFramework) SeeInOrder(texts ...string) bool {
	tf.t.Helper()
	parts := make([]string, len(texts))
	for i, text := range texts {
		parts[i] = regexp.QuoteMeta(text)
	}
	re := regexp.MustCompile(strings.Join(parts, `[\s\S]*`))
	return tf.WaitFor(func(s string) bool {
		return re.MatchString(ansiRe.ReplaceAllString(s, ""))
	}, 3*time.Second)
}

// WaitFor waits for a predicate to be true in the output
func (tf *TUITestFramework) WaitFor(pred func(string) bool, timeout time.Duration) bool {
	tf.t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		if pred(tf.Snapshot()) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(25 * time.Millisecond) // simple, reliable polling; tests only
	}
}

// Snapshot returns the current contents of the ring buffer (thread-safe)
func (tf *TUITestFramework) Snapshot() string {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	if !tf.full {
		return string(tf.buf[:tf.head])
	}
	out := make([]byte, ringSize)
	copy(out, tf.buf[tf.head:])
	copy(out[ringSize-tf.head:], tf.buf[:tf.head])
	return string(out)
}

// Reset forgets captured output
func (tf *TUITestFramework) Reset() {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	tf.head = 0
	tf.full = false
}

// WaitExit waits for the process to end after a quit key, falling back to
// Ctrl+C
func (tf *TUITestFramework) WaitExit(timeout time.Duration) error {
	done := make(chan error, 1)
	go func() { done <- tf.cmd.Wait() }()

	select {
	case err := <-done:
		tf.cmd = nil
		return err
	case <-time.After(timeout):
		_ = tf.SendCtrlC()
	}
	select {
	case err := <-done:
		tf.cmd = nil
		return fmt.Errorf("needed ctrl+c to exit: %v", err)
	case <-time.After(timeout):
		return fmt.Errorf("process did not exit")
	}
}

// Cleanup closes the PTY and terminates the application
func (tf *TUITestFramework) Cleanup() {
	// Close PTY first to deliver SIGHUP to child process
	if tf.pty != nil {
		_ = tf.pty.Close()
		tf.pty = nil
	}
	if tf.tty != nil {
		_ = tf.tty.Close()
		tf.tty = nil
	}
	if tf.cmd != nil && tf.cmd.Process != nil {
		_ = tf.cmd.Process.Kill()
		_, _ = tf.cmd.Process.Wait()
		tf.cmd = nil
	}
}
