// Command playground ("sysplay") is a reference target for rastreador: it
// exercises file, memory, pipe, socket and misc syscalls directly through
// golang.org/x/sys/unix rather than the buffered os/io wrappers, so the
// syscalls it issues are not hidden from a tracer observing them. It's just
// a convenient thing to point rastreador at.
package main

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

func main() {
	fmt.Println("-- sysplay: inicio --")

	origCwd, err := os.Getwd()
	must("getcwd", err)

	tmpdir := fmt.Sprintf("/tmp/rt_go_%d", os.Getpid())
	must("mkdir", unix.Mkdir(tmpdir, 0o755))
	must("chdir", unix.Chdir(tmpdir))

	fileStage()
	mmapStage()
	pipeStage()
	socketStage()
	miscStage()

	must("chdir de vuelta", unix.Chdir(origCwd))
	must("rmdir", unix.Rmdir(tmpdir))

	fmt.Println("-- sysplay: fin --")
}

func fileStage() {
	fd, err := unix.Open("a.txt", unix.O_CREAT|unix.O_RDWR, 0o644)
	must("open", err)

	msg := []byte(fmt.Sprintf("Hola desde Go @ %d\n", time.Now().Unix()))
	_, err = unix.Write(fd, msg)
	must("write", err)
	must("fsync", unix.Fsync(fd))

	_, err = unix.Seek(fd, 0, unix.SEEK_SET)
	must("lseek", err)

	var st unix.Stat_t
	must("fstat", unix.Fstat(fd, &st))

	buf := make([]byte, 256)
	n, err := unix.Read(fd, buf)
	must("read", err)
	fmt.Printf("Leído del archivo: %s", buf[:n])

	must("close", unix.Close(fd))
	must("unlink", unix.Unlink("a.txt"))
}

func mmapStage() {
	const length = 4096
	addr, err := unix.Mmap(-1, 0, length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	must("mmap", err)

	copy(addr, "hola-mmap!\n")
	must("mprotect", unix.Mprotect(addr, unix.PROT_READ))
	fmt.Printf("Desde mmap: %s", addr[:11])
	must("munmap", unix.Munmap(addr))
}

func pipeStage() {
	var fds [2]int
	must("pipe2", unix.Pipe2(fds[:], unix.O_CLOEXEC))
	rfd, wfd := fds[0], fds[1]

	_, err := unix.Write(wfd, []byte("hola-pipe\n"))
	must("write pipe", err)

	pfd := []unix.PollFd{{Fd: int32(rfd), Events: unix.POLLIN}}
	_, err = unix.Poll(pfd, 1000)
	must("poll", err)

	buf := make([]byte, 64)
	n, err := unix.Read(rfd, buf)
	must("read pipe", err)
	fmt.Printf("Desde pipe: %s", buf[:n])

	unix.Close(rfd)
	unix.Close(wfd)
}

func socketStage() {
	sv, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	must("socketpair", err)
	s0, s1 := sv[0], sv[1]

	_, err = unix.Write(s0, []byte("hola-sock\n"))
	must("write socket", err)

	buf := make([]byte, 64)
	n, err := unix.Read(s1, buf)
	must("read socket", err)
	fmt.Printf("Desde socketpair: %s", buf[:n])

	unix.Close(s0)
	unix.Close(s1)
}

func miscStage() {
	r := make([]byte, 16)
	n, err := unix.Getrandom(r, 0)
	must("getrandom", err)
	fmt.Printf("getrandom(%d) ok: %x\n", n, r)

	must("nanosleep", unix.Nanosleep(&unix.Timespec{Sec: 0, Nsec: 50_000_000}, nil))

	buf := make([]byte, 4096)
	n, err = unix.Readlink("/proc/self/exe", buf)
	must("readlink", err)
	fmt.Printf("readlink /proc/self/exe -> %s\n", buf[:n])
}

func must(step string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "sysplay: %s falló: %v\n", step, err)
		os.Exit(1)
	}
}
