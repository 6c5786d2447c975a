// Package decode provides the syscall-number, errno and open-flag lookup
// tables consumed by the tracer. The tables are data, not logic: the tracer
// core never branches on the strings they return, only on the raw numbers.
package decode

import (
	"fmt"
)

// syscallNames covers the x86_64 Linux syscall numbers exercised by the
// playground program and the common ones a traced shell/coreutil invokes.
// It is not, and does not aim to be, the complete syscall-name universe.
var syscallNames = map[uint64]string{
	0:   "read",
	1:   "write",
	2:   "open",
	3:   "close",
	4:   "stat",
	5:   "fstat",
	6:   "lstat",
	7:   "poll",
	8:   "lseek",
	9:   "mmap",
	10:  "mprotect",
	11:  "munmap",
	12:  "brk",
	13:  "rt_sigaction",
	14:  "rt_sigprocmask",
	16:  "ioctl",
	17:  "pread64",
	18:  "pwrite64",
	19:  "readv",
	20:  "writev",
	21:  "access",
	22:  "pipe",
	23:  "select",
	32:  "dup",
	33:  "dup2",
	35:  "nanosleep",
	39:  "getpid",
	41:  "socket",
	42:  "connect",
	43:  "accept",
	44:  "sendto",
	45:  "recvfrom",
	53:  "socketpair",
	56:  "clone",
	57:  "fork",
	58:  "vfork",
	59:  "execve",
	60:  "exit",
	61:  "wait4",
	62:  "kill",
	63:  "uname",
	72:  "fcntl",
	74:  "fsync",
	75:  "fdatasync",
	76:  "truncate",
	77:  "ftruncate",
	78:  "getdents",
	79:  "getcwd",
	80:  "chdir",
	83:  "mkdir",
	84:  "rmdir",
	85:  "creat",
	86:  "link",
	87:  "unlink",
	88:  "symlink",
	89:  "readlink",
	90:  "chmod",
	92:  "chown",
	93:  "fchown",
	95:  "umask",
	96:  "gettimeofday",
	97:  "getrlimit",
	99:  "sysinfo",
	102: "getuid",
	104: "getgid",
	107: "geteuid",
	108: "getegid",
	158: "arch_prctl",
	186: "gettid",
	200: "tkill",
	202: "futex",
	218: "set_tid_address",
	228: "clock_gettime",
	230: "clock_nanosleep",
	231: "exit_group",
	232: "epoll_wait",
	233: "epoll_ctl",
	257: "openat",
	258: "mkdirat",
	259: "mknodat",
	260: "fchownat",
	261: "futimesat",
	262: "newfstatat",
	263: "unlinkat",
	264: "renameat",
	265: "linkat",
	266: "symlinkat",
	267: "readlinkat",
	268: "fchmodat",
	269: "faccessat",
	270: "pselect6",
	271: "ppoll",
	273: "set_robust_list",
	274: "get_robust_list",
	280: "utimensat",
	281: "epoll_pwait",
	288: "accept4",
	290: "eventfd2",
	291: "epoll_create1",
	292: "dup3",
	293: "pipe2",
	302: "prlimit64",
	316: "renameat2",
	318: "getrandom",
	319: "memfd_create",
	332: "statx",
}

// Name returns the short mnemonic for a syscall number, or "sys_<n>" if
// the number is not in the table.
func Name(number uint64) string {
	if n, ok := syscallNames[number]; ok {
		return n
	}
	return fmt.Sprintf("sys_%d", number)
}

// IsExecve reports whether number is the x86_64 execve syscall.
func IsExecve(number uint64) bool { return number == 59 }

// IsOpenat reports whether number is the x86_64 openat syscall.
func IsOpenat(number uint64) bool { return number == 257 }
