// Package launcher produces the tracee: a child process that has already
// marked itself traceable and is blocked at the first instruction of the
// target program's image, waiting on the parent's first continue.
package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"syscall"

	"github.com/creack/pty"
	"github.com/mattn/go-isatty"
)

// ErrProgramNotFound is returned when prog names a path (contains a path
// separator) that does not exist; name-only programs are left to the
// kernel's own execve path-search.
var ErrProgramNotFound = errors.New("launcher: program not found")

// CheckProgram validates the pre-fork precondition: a path-bearing program
// name must exist. A bare name (resolved via PATH at exec time) is not
// checked here — failure there surfaces from the child instead.
func CheckProgram(prog string) error {
	if !strings.Contains(prog, "/") {
		return nil
	}
	if _, err := os.Stat(prog); err != nil {
		return fmt.Errorf("%w: %s", ErrProgramNotFound, prog)
	}
	return nil
}

// Result is what Launch hands back to the stop-loop driver.
type Result struct {
	PID int
	// PTY, when non-nil, is the tracee's controlling terminal master end;
	// the caller is responsible for closing it once the tracee exits.
	PTY *os.File
}

// Launch starts prog with args (the target's own arguments after the
// program name; exec.Command supplies prog itself as argv[0]) under
// ptrace, synchronizing on the mandatory
// post-PTRACE_TRACEME stop before returning.
//
// Launch relies on os/exec's SysProcAttr.Ptrace: the Go runtime's fork/exec
// path sets PTRACE_TRACEME in the child before calling execve, avoiding a
// hand-rolled raw fork() in a garbage-collected, multi-threaded runtime.
// One consequence: if execve itself fails, Go's internal exec-error pipe
// intercepts it before the child can print anything on its own — there is
// no safe way to make the child print-then-exit(127) itself without
// bypassing that pipe. Launch treats a Start() failure as that case and
// reports it the same way a literal child-side failure would be reported
// to the caller (message surfaced, 127 propagated by cmd/rastreador).
func Launch(prog string, args []string) (*Result, error) {
	if err := CheckProgram(prog); err != nil {
		return nil, err
	}

	runtime.LockOSThread()

	cmd := exec.Command(prog, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Ptrace: true}

	var ptmx *os.File
	if isatty.IsTerminal(os.Stdin.Fd()) {
		// Give the tracee a real controlling terminal instead of pipes,
		// so playground-style programs that probe their own tty (ioctl
		// TIOCGWINSZ, isatty checks) behave as they would run directly
		// from a shell.
		p, tty, err := pty.Open()
		if err != nil {
			return nil, fmt.Errorf("launcher: opening pty: %w", err)
		}
		cmd.Stdin, cmd.Stdout, cmd.Stderr = tty, tty, tty
		ptmx = p
		defer tty.Close()
	} else {
		cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	}

	if err := cmd.Start(); err != nil {
		if ptmx != nil {
			ptmx.Close()
		}
		return nil, fmt.Errorf("launcher: exec failed: %w", err)
	}

	var ws syscall.WaitStatus
	pid := cmd.Process.Pid
	for {
		_, err := syscall.Wait4(pid, &ws, 0, nil)
		if err != nil {
			if ptmx != nil {
				ptmx.Close()
			}
			return nil, fmt.Errorf("launcher: wait4 for initial stop: %w", err)
		}
		if ws.Stopped() {
			break
		}
		if ws.Exited() || ws.Signaled() {
			break
		}
	}

	return &Result{PID: pid, PTY: ptmx}, nil
}
