package decode

import (
	"fmt"
	"syscall"
)

// errnoNames maps the common Linux errno values to their symbolic name.
// Unrecognized values render as "ERR(<n>)" rather than panicking or
// guessing.
var errnoNames = map[int]string{
	int(syscall.EPERM):       "EPERM",
	int(syscall.ENOENT):      "ENOENT",
	int(syscall.ESRCH):       "ESRCH",
	int(syscall.EINTR):       "EINTR",
	int(syscall.EIO):         "EIO",
	int(syscall.ENXIO):       "ENXIO",
	int(syscall.E2BIG):       "E2BIG",
	int(syscall.ENOEXEC):     "ENOEXEC",
	int(syscall.EBADF):       "EBADF",
	int(syscall.ECHILD):      "ECHILD",
	int(syscall.EAGAIN):      "EAGAIN",
	int(syscall.ENOMEM):      "ENOMEM",
	int(syscall.EACCES):      "EACCES",
	int(syscall.EFAULT):      "EFAULT",
	int(syscall.ENOTBLK):     "ENOTBLK",
	int(syscall.EBUSY):       "EBUSY",
	int(syscall.EEXIST):      "EEXIST",
	int(syscall.EXDEV):       "EXDEV",
	int(syscall.ENODEV):      "ENODEV",
	int(syscall.ENOTDIR):     "ENOTDIR",
	int(syscall.EISDIR):      "EISDIR",
	int(syscall.EINVAL):      "EINVAL",
	int(syscall.ENFILE):      "ENFILE",
	int(syscall.EMFILE):      "EMFILE",
	int(syscall.ENOTTY):      "ENOTTY",
	int(syscall.ETXTBSY):     "ETXTBSY",
	int(syscall.EFBIG):       "EFBIG",
	int(syscall.ENOSPC):      "ENOSPC",
	int(syscall.ESPIPE):      "ESPIPE",
	int(syscall.EROFS):       "EROFS",
	int(syscall.EMLINK):      "EMLINK",
	int(syscall.EPIPE):       "EPIPE",
	int(syscall.EDOM):        "EDOM",
	int(syscall.ERANGE):      "ERANGE",
	int(syscall.EDEADLK):     "EDEADLK",
	int(syscall.ENAMETOOLONG): "ENAMETOOLONG",
	int(syscall.ENOLCK):      "ENOLCK",
	int(syscall.ENOSYS):      "ENOSYS",
	int(syscall.ENOTEMPTY):   "ENOTEMPTY",
	int(syscall.ELOOP):       "ELOOP",
	int(syscall.ENOMSG):      "ENOMSG",
	int(syscall.EOVERFLOW):   "EOVERFLOW",
	int(syscall.ENOTSOCK):    "ENOTSOCK",
	int(syscall.EADDRINUSE):  "EADDRINUSE",
	int(syscall.ECONNREFUSED): "ECONNREFUSED",
	int(syscall.ETIMEDOUT):   "ETIMEDOUT",
	int(syscall.ENOTCONN):    "ENOTCONN",
	int(syscall.ECONNRESET):  "ECONNRESET",
}

// ErrnoName returns the symbolic name for a positive errno value, or
// "ERR(<n>)" when unrecognized.
func ErrnoName(errno int) string {
	if n, ok := errnoNames[errno]; ok {
		return n
	}
	return fmt.Sprintf("ERR(%d)", errno)
}

// IsErrorReturn reports whether a syscall return value falls in the
// portable Linux "syscall failed" convention: [-4095, -1]. A returned
// pointer falls in this range only if it lies in the top 4095 bytes of the
// 64-bit address space, which x86_64 user space never maps; every other
// value with bit 63 set is -4096 or below.
func IsErrorReturn(ret int64) bool {
	return ret >= -4095 && ret <= -1
}
