package tracer

import (
	"fmt"
	"io"

	"github.com/ajrojasfuentes/rastreador/pkg/decode"
	"github.com/ajrojasfuentes/rastreador/pkg/keywait"
	"github.com/ajrojasfuentes/rastreador/pkg/remotemem"
)

// Decoder renders the verbose-mode entry/exit log lines. Counting happens
// in the stop-loop driver regardless of whether a Decoder is installed —
// decoding is purely for -v/-V output.
type Decoder struct {
	Out    io.Writer
	Mem    *remotemem.Reader
	DirFDs *remotemem.DirFDCache
	// KeyWaiter, when non-nil, is invoked after every emitted line (very
	// verbose mode).
	KeyWaiter *keywait.Waiter
}

// LogEntry renders the "→ ..." line for a syscall entry.
func (d *Decoder) LogEntry(pid int, regs *Regs) {
	number := regs.Number()
	name := decode.Name(number)

	switch {
	case decode.IsExecve(number):
		d.logExecveEntry(name, regs)
	case decode.IsOpenat(number):
		d.logOpenatEntry(pid, name, regs)
	default:
		d.logGenericEntry(name, regs)
	}

	d.pause()
}

func (d *Decoder) logGenericEntry(name string, regs *Regs) {
	a := regs.Args()
	fmt.Fprintf(d.Out, "→ %s(0x%x, 0x%x, 0x%x, 0x%x, 0x%x, 0x%x)\n",
		name, a[0], a[1], a[2], a[3], a[4], a[5])
}

func (d *Decoder) logExecveEntry(name string, regs *Regs) {
	pathAddr, argvAddr, envAddr := regs.Arg(0), regs.Arg(1), regs.Arg(2)

	path, ok := d.Mem.ReadCString(pathAddr)
	if !ok {
		path = fmt.Sprintf("<ptr 0x%x>", pathAddr)
	}

	argv := d.Mem.ArgvPreview(argvAddr, remotemem.DefaultArgvCap)

	fmt.Fprintf(d.Out, "→ %s(pathname=%q, argv=%s, envp=0x%x)\n",
		name, path, remotemem.FormatArgv(argv), envAddr)
}

func (d *Decoder) logOpenatEntry(pid int, name string, regs *Regs) {
	dirfd := int32(regs.Arg(0))
	pathAddr := regs.Arg(1)
	flags := int32(regs.Arg(2))
	mode := regs.Arg(3)

	path, ok := d.Mem.ReadCString(pathAddr)
	if !ok {
		path = fmt.Sprintf("<ptr 0x%x>", pathAddr)
	}

	dirfdStr := fmt.Sprintf("%d", dirfd)
	if d.DirFDs != nil {
		if resolved := d.DirFDs.Resolve(pid, dirfd); resolved != "" {
			dirfdStr = fmt.Sprintf("%d:%s", dirfd, resolved)
		}
	}

	fmt.Fprintf(d.Out, "→ %s(dirfd=%s, pathname=%q, flags=%s, mode=0%o)\n",
		name, dirfdStr, path, decode.FormatOpenFlags(flags), mode)
}

// LogExit renders the "← ..." line for a syscall exit. number is the
// pending syscall number cached from the matching entry stop.
func (d *Decoder) LogExit(number uint64, ret int64) {
	name := decode.Name(number)
	if decode.IsErrorReturn(ret) {
		fmt.Fprintf(d.Out, "← %s = -1 %s\n", name, decode.ErrnoName(int(-ret)))
	} else {
		fmt.Fprintf(d.Out, "← %s = %d\n", name, ret)
	}
	d.pause()
}

func (d *Decoder) pause() {
	if d.KeyWaiter == nil {
		return
	}
	d.KeyWaiter.Wait()
}
