package main

import "syscall"

// syscallPeek is the production remotemem.PeekFunc: a thin wrapper over
// the kernel ptrace peek primitive for a fixed pid.
func syscallPeek(pid int, addr uintptr, buf []byte) (int, error) {
	return syscall.PtracePeekData(pid, addr, buf)
}
