package tracer

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/ajrojasfuentes/rastreador/pkg/remotemem"
)

// fakeDecoderMemory is a flat byte region addressed from base, word-peeked
// exactly like the real ptrace primitive: one 8-byte word per call.
type fakeDecoderMemory struct {
	base uint64
	data []byte
}

func (m *fakeDecoderMemory) peek(addr uintptr, buf []byte) (int, error) {
	a := uint64(addr)
	off := a - m.base
	n := copy(buf, m.data[off:off+uint64(len(buf))])
	return n, nil
}

func TestDecoderLogEntryGeneric(t *testing.T) {
	var out bytes.Buffer
	d := &Decoder{Out: &out}
	regs := fakeRegsAt(1, [6]uint64{1, 0, 3, 0, 0, 0}, 0) // write(1, ..., 3)

	d.LogEntry(4242, regs)

	want := "→ write(0x1, 0x0, 0x3, 0x0, 0x0, 0x0)\n"
	if out.String() != want {
		t.Errorf("LogEntry = %q, want %q", out.String(), want)
	}
}

func TestDecoderLogEntryExecve(t *testing.T) {
	// Layout: two argv pointer words, a NULL terminator word, then the
	// pathname string and the two argv strings, all word-aligned.
	const base = 0x1000
	pathStr := "/bin/ls"
	arg0Str := "/bin/ls"
	arg1Str := "-la"

	var data []byte
	pad := func(s string) []byte {
		b := append([]byte(s), 0)
		for len(b)%8 != 0 {
			b = append(b, 0)
		}
		return b
	}
	pathBytes := pad(pathStr)
	arg0Bytes := pad(arg0Str)
	arg1Bytes := pad(arg1Str)

	pathAddr := uint64(base + 24) // past the 3 pointer-table words
	arg0Addr := pathAddr + uint64(len(pathBytes))
	arg1Addr := arg0Addr + uint64(len(arg0Bytes))

	ptrTable := make([]byte, 24)
	binary.LittleEndian.PutUint64(ptrTable[0:], arg0Addr)
	binary.LittleEndian.PutUint64(ptrTable[8:], arg1Addr)
	binary.LittleEndian.PutUint64(ptrTable[16:], 0)

	data = append(data, ptrTable...)
	data = append(data, pathBytes...)
	data = append(data, arg0Bytes...)
	data = append(data, arg1Bytes...)

	mem := &fakeDecoderMemory{base: base, data: data}
	var out bytes.Buffer
	d := &Decoder{Out: &out, Mem: remotemem.New(mem.peek)}

	regs := fakeRegsAt(59, [6]uint64{pathAddr, base, 0xdead, 0, 0, 0}, 0)
	d.LogEntry(4242, regs)

	want := `→ execve(pathname="/bin/ls", argv=["/bin/ls", "-la"], envp=0xdead)` + "\n"
	if out.String() != want {
		t.Errorf("LogEntry(execve) = %q, want %q", out.String(), want)
	}
}

func TestDecoderLogEntryOpenat(t *testing.T) {
	const base = 0x2000
	pathStr := "/etc/passwd"
	b := append([]byte(pathStr), 0)
	for len(b)%8 != 0 {
		b = append(b, 0)
	}
	mem := &fakeDecoderMemory{base: base, data: b}

	var out bytes.Buffer
	d := &Decoder{Out: &out, Mem: remotemem.New(mem.peek)}

	// openat(AT_FDCWD, "/etc/passwd", O_RDONLY, 0)
	atFDCWD := uint64(uint32(int32(-100)))
	regs := fakeRegsAt(257, [6]uint64{atFDCWD, base, 0, 0, 0, 0}, 0)
	d.LogEntry(4242, regs)

	want := `→ openat(dirfd=-100, pathname="/etc/passwd", flags=O_RDONLY, mode=00)` + "\n"
	if out.String() != want {
		t.Errorf("LogEntry(openat) = %q, want %q", out.String(), want)
	}
}

func TestDecoderLogExitSuccess(t *testing.T) {
	var out bytes.Buffer
	d := &Decoder{Out: &out}
	d.LogExit(1, 3)

	want := "← write = 3\n"
	if out.String() != want {
		t.Errorf("LogExit = %q, want %q", out.String(), want)
	}
}

func TestDecoderLogExitError(t *testing.T) {
	var out bytes.Buffer
	d := &Decoder{Out: &out}
	d.LogExit(2, -2) // open, ret = -ENOENT

	want := "← open = -1 ENOENT\n"
	if out.String() != want {
		t.Errorf("LogExit(error) = %q, want %q", out.String(), want)
	}
}
