package remotemem

import (
	"encoding/binary"
	"errors"
	"testing"
)

// fakeMemory simulates a tracee's address space as a flat byte slice
// starting at base, word-peeked exactly like the real ptrace primitive:
// one 8-byte word per call, failing for any address outside the slice.
type fakeMemory struct {
	base uint64
	data []byte
	// faultAt, if set, makes any peek touching this address fail —
	// simulating an unmapped page.
	faultAt map[uint64]bool
}

func (m *fakeMemory) peek(addr uintptr, buf []byte) (int, error) {
	a := uint64(addr)
	if m.faultAt[a] {
		return 0, errors.New("fake: unmapped")
	}
	if a < m.base || a+uint64(len(buf)) > m.base+uint64(len(m.data)) {
		return 0, errors.New("fake: out of range")
	}
	off := a - m.base
	n := copy(buf, m.data[off:off+uint64(len(buf))])
	return n, nil
}

func TestReadCStringNullAddr(t *testing.T) {
	r := New(func(addr uintptr, buf []byte) (int, error) {
		t.Fatal("peek should never be called for addr 0")
		return 0, nil
	})
	s, ok := r.ReadCString(0)
	if !ok || s != "NULL" {
		t.Errorf("ReadCString(0) = %q, %v; want NULL, true", s, ok)
	}
}

func TestReadCStringBasic(t *testing.T) {
	mem := &fakeMemory{base: 0x1000, data: append([]byte("hello"), 0, 0, 0)}
	r := New(mem.peek)
	s, ok := r.ReadCString(0x1000)
	if !ok || s != "hello" {
		t.Errorf("ReadCString = %q, %v; want hello, true", s, ok)
	}
}

func TestReadCStringSpansWords(t *testing.T) {
	payload := []byte("this string is definitely longer than one 8-byte word")
	data := append(append([]byte{}, payload...), 0)
	for len(data)%8 != 0 {
		data = append(data, 0xff) // padding past the NUL, never read
	}
	mem := &fakeMemory{base: 0x2000, data: data}
	r := New(mem.peek)
	s, ok := r.ReadCString(0x2000)
	if !ok || s != string(payload) {
		t.Errorf("ReadCString spanning words = %q, %v; want %q, true", s, ok, payload)
	}
}

func TestReadCStringCap(t *testing.T) {
	data := make([]byte, maxCStringLen+64)
	for i := range data {
		data[i] = 'a'
	}
	mem := &fakeMemory{base: 0x3000, data: data}
	r := New(mem.peek)
	s, ok := r.ReadCString(0x3000)
	if !ok {
		t.Fatal("expected ok=true even when truncated at cap")
	}
	if len(s) != maxCStringLen {
		t.Errorf("len(s) = %d, want %d", len(s), maxCStringLen)
	}
}

func TestReadCStringFault(t *testing.T) {
	mem := &fakeMemory{base: 0x4000, data: []byte("abc"), faultAt: map[uint64]bool{0x9999: true}}
	r := New(mem.peek)
	_, ok := r.ReadCString(0x9999)
	if ok {
		t.Error("expected ok=false on faulting peek")
	}
}

func TestReadPtr(t *testing.T) {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint64(data, 0xdeadbeefcafebabe)
	mem := &fakeMemory{base: 0x5000, data: data}
	r := New(mem.peek)
	v, ok := r.ReadPtr(0x5000)
	if !ok || v != 0xdeadbeefcafebabe {
		t.Errorf("ReadPtr = 0x%x, %v; want 0xdeadbeefcafebabe, true", v, ok)
	}
}

// buildArgv lays out n C strings plus a NULL terminator word as a
// contiguous argv array at base, returning the backing memory.
func buildArgv(base uint64, strs []string, terminate bool) *fakeMemory {
	const word = 8
	ptrTableLen := uint64(len(strs))
	if terminate {
		ptrTableLen++
	}
	mem := &fakeMemory{base: base, data: make([]byte, ptrTableLen*word)}

	strBase := base + ptrTableLen*word
	var strBlob []byte
	offsets := make([]uint64, len(strs))
	for i, s := range strs {
		offsets[i] = strBase + uint64(len(strBlob))
		strBlob = append(strBlob, s...)
		strBlob = append(strBlob, 0)
	}
	for len(strBlob)%word != 0 {
		strBlob = append(strBlob, 0xff) // padding past the NULs, never read
	}
	mem.data = append(mem.data, strBlob...)

	for i, off := range offsets {
		binary.LittleEndian.PutUint64(mem.data[uint64(i)*word:], off)
	}
	if terminate {
		binary.LittleEndian.PutUint64(mem.data[ptrTableLen*word-word:], 0)
	}
	return mem
}

func TestArgvPreviewShortWithTerminator(t *testing.T) {
	mem := buildArgv(0x6000, []string{"a", "b", "c", "d", "e"}, true)
	r := New(mem.peek)
	got := r.ArgvPreview(0x6000, DefaultArgvCap)
	want := []string{"a", "b", "c", "d", "e"}
	if len(got) != len(want) {
		t.Fatalf("ArgvPreview = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ArgvPreview[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestArgvPreviewExactlyCapNoTerminator(t *testing.T) {
	mem := buildArgv(0x7000, []string{"a", "b", "c", "d", "e", "f"}, false)
	r := New(mem.peek)
	got := r.ArgvPreview(0x7000, DefaultArgvCap)
	if len(got) != DefaultArgvCap+1 {
		t.Fatalf("ArgvPreview len = %d, want %d (with ellipsis)", len(got), DefaultArgvCap+1)
	}
	if got[len(got)-1] != "…" {
		t.Errorf("last entry = %q, want ellipsis marker", got[len(got)-1])
	}
}

func TestFormatArgv(t *testing.T) {
	got := FormatArgv([]string{"a", "b c", "…"})
	want := `["a", "b c", …]`
	if got != want {
		t.Errorf("FormatArgv = %q, want %q", got, want)
	}
}
