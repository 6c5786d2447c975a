package tracer

import "syscall"

// Regs is the register snapshot taken at a stop: the syscall number as
// observed at entry (via Orig_rax, the only register the kernel reliably
// exposes it in), the six x86_64 Linux syscall ABI argument registers, and
// the return-value register. Created fresh at each stop; never retained
// across stops.
type Regs struct {
	raw syscall.PtraceRegs
}

// Number returns the syscall number as the kernel recorded it at entry.
func (r *Regs) Number() uint64 { return r.raw.Orig_rax }

// Arg returns argument register index (0-5), in x86_64 Linux syscall ABI
// order: rdi, rsi, rdx, r10, r8, r9.
func (r *Regs) Arg(index int) uint64 {
	switch index {
	case 0:
		return r.raw.Rdi
	case 1:
		return r.raw.Rsi
	case 2:
		return r.raw.Rdx
	case 3:
		return r.raw.R10
	case 4:
		return r.raw.R8
	case 5:
		return r.raw.R9
	default:
		return 0
	}
}

// Args returns all six argument registers in ABI order.
func (r *Regs) Args() [6]uint64 {
	return [6]uint64{
		r.raw.Rdi, r.raw.Rsi, r.raw.Rdx, r.raw.R10, r.raw.R8, r.raw.R9,
	}
}

// Return reads the return-value register as a signed 64-bit integer. Only
// meaningful at an exit stop.
func (r *Regs) Return() int64 { return int64(r.raw.Rax) }

// GetRegsFunc fetches the current register snapshot for pid. Satisfied in
// production by syscall.PtraceGetRegs, and by a fake in tests — one of the
// seams onto the kernel ptrace boundary, alongside remotemem.PeekFunc and
// the stop loop's WaitFunc and ResumeFunc.
type GetRegsFunc func(pid int) (*Regs, error)

// SyscallGetRegs is the production GetRegsFunc.
func SyscallGetRegs(pid int) (*Regs, error) {
	var regs syscall.PtraceRegs
	if err := syscall.PtraceGetRegs(pid, &regs); err != nil {
		return nil, err
	}
	return &Regs{raw: regs}, nil
}
