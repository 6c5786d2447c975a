// Package tracer implements the ptrace-stop state machine: the tracee
// lifecycle, the two-phase syscall interception protocol, and signal/event
// routing.
package tracer

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// ptraceSyscallGood marks a stop as syscall-related rather than an
// ordinary signal-delivery stop, once PTRACE_O_TRACESYSGOOD is set.
const ptraceSyscallGood = int(syscall.SIGTRAP) | 0x80

// WaitEvent is one message off the waiter, in the shape the dispatch table
// below switches on. Keeping it a plain struct (rather than handing callers
// the raw unix.WaitStatus) is what lets the signal-routing rules be
// exercised against a synthetic sequence in tests.
type WaitEvent struct {
	PID int

	Exited     bool
	ExitStatus int

	Signaled   bool
	TermSignal int

	Stopped    bool
	StopSignal int // includes the 0x80 syscall-good bit when applicable
}

// WaitFunc blocks for the next event on any child. Satisfied in
// production by waitOnAny (wrapping unix.Wait4(-1, ...)), and by a
// synthetic sequence in tests.
type WaitFunc func() (WaitEvent, error)

// ResumeFunc resumes pid with signo reinjected (0 for none). Satisfied in
// production by syscall.PtraceSyscall, and by a spy in tests asserting
// that signal delivery is reinjected rather than swallowed.
type ResumeFunc func(pid, signo int) error

// StopLoop owns the tracee's entire post-fork lifecycle. It is the sole
// owner of the per-task state map and the counter map for the tracee's
// lifetime — single-threaded, no sharing across goroutines.
type StopLoop struct {
	GetRegs GetRegsFunc
	Wait    WaitFunc
	Resume  ResumeFunc
	Decoder *Decoder // nil in non-verbose mode: counting still occurs
	Verbose bool

	tasks    map[int]*TaskState
	counters *Counters
}

// NewStopLoop builds a production driver around a real tracee: registers
// are fetched via PtraceGetRegs, events via Wait4(-1, ...), and resumes via
// PtraceSyscall.
func NewStopLoop(getRegs GetRegsFunc) *StopLoop {
	return &StopLoop{
		GetRegs:  getRegs,
		Wait:     waitOnAny,
		Resume:   syscallResume,
		tasks:    make(map[int]*TaskState),
		counters: NewCounters(),
	}
}

// Counters exposes the run's aggregate counts, valid once Run returns.
func (s *StopLoop) Counters() *Counters { return s.counters }

// Run drives the stop/continue loop for child until it terminates,
// returning the process's own exit status, or 128+signal if it died from
// an uncaught signal.
func (s *StopLoop) Run(child int) (int, error) {
	if err := s.startup(child); err != nil {
		return 0, err
	}

	for {
		ev, err := s.Wait()
		if err != nil {
			if err == unix.ECHILD {
				return 0, nil
			}
			if err == unix.EINTR {
				continue
			}
			return 0, fmt.Errorf("tracer: wait4: %w", err)
		}

		switch {
		case ev.Exited:
			if ev.PID == child {
				return ev.ExitStatus, nil
			}
		case ev.Signaled:
			if ev.PID == child {
				return 128 + ev.TermSignal, nil
			}
		case ev.Stopped:
			if err := s.handleStop(ev); err != nil {
				return 0, err
			}
		default:
			fmt.Fprintf(os.Stderr, "rastreador: estado de espera no manejado: %+v\n", ev)
		}
	}
}

// startup performs the one-time synchronization sequence. The initial
// post-PTRACE_TRACEME stop is already awaited by launcher.Launch before Run
// is ever called, so this only enables syscall-good and kicks off the first
// continue-until-syscall-stop.
func (s *StopLoop) startup(child int) error {
	if err := syscall.PtraceSetOptions(child, syscall.PTRACE_O_TRACESYSGOOD); err != nil {
		return fmt.Errorf("tracer: ptrace setoptions: %w", err)
	}
	return s.Resume(child, 0)
}

// handleStop classifies one stopped-wait result and dispatches it.
func (s *StopLoop) handleStop(ev WaitEvent) error {
	if ev.StopSignal == ptraceSyscallGood {
		return s.handleSyscallStop(ev.PID)
	}

	// Both plain signal-delivery stops and ptrace-event stops (SIGTRAP not
	// carrying the syscall-good bit) reinject whatever signal accompanied
	// them. Forked/cloned children are never followed, so reinjection is
	// the only defensible default for an unfollowed event stop too.
	return s.Resume(ev.PID, ev.StopSignal)
}

// handleSyscallStop flips the task between its entry and exit phases,
// decoding and counting the syscall once its return value is known.
func (s *StopLoop) handleSyscallStop(pid int) error {
	task, ok := s.tasks[pid]
	if !ok {
		task = &TaskState{Phase: AwaitingEntry}
		s.tasks[pid] = task
	}

	regs, err := s.GetRegs(pid)
	if err != nil {
		return fmt.Errorf("tracer: getregs: %w", err)
	}

	switch task.Phase {
	case AwaitingEntry:
		task.PendingSyscall = regs.Number()
		if s.Decoder != nil && s.Verbose {
			s.Decoder.LogEntry(pid, regs)
		}
		task.Phase = AwaitingExit
	case AwaitingExit:
		ret := regs.Return()
		if s.Decoder != nil && s.Verbose {
			s.Decoder.LogExit(task.PendingSyscall, ret)
		}
		s.counters.Incr(task.PendingSyscall)
		task.Phase = AwaitingEntry
	}

	return s.Resume(pid, 0)
}

// waitOnAny is the production WaitFunc: it blocks in Wait4(-1, ...) and
// translates the raw wait status into a WaitEvent.
func waitOnAny() (WaitEvent, error) {
	var ws unix.WaitStatus
	pid, err := unix.Wait4(-1, &ws, 0, nil)
	if err != nil {
		return WaitEvent{}, err
	}

	ev := WaitEvent{PID: pid}
	switch {
	case ws.Exited():
		ev.Exited = true
		ev.ExitStatus = ws.ExitStatus()
	case ws.Signaled():
		ev.Signaled = true
		ev.TermSignal = int(ws.Signal())
	case ws.Stopped():
		ev.Stopped = true
		ev.StopSignal = int(ws.StopSignal())
	}
	return ev, nil
}

// syscallResume is the production ResumeFunc.
func syscallResume(pid, signo int) error {
	return syscall.PtraceSyscall(pid, signo)
}
