package decode

import (
	"testing"

	"golang.org/x/sys/unix"
)

func TestFormatOpenFlagsKnownCombos(t *testing.T) {
	cases := []struct {
		flags int32
		want  string
	}{
		{0, "O_RDONLY"},
		{unix.O_WRONLY, "O_WRONLY"},
		{unix.O_RDWR, "O_RDWR"},
		{unix.O_WRONLY | unix.O_CREAT | unix.O_TRUNC, "O_WRONLY|O_CREAT|O_TRUNC"},
		{unix.O_RDWR | unix.O_CREAT | unix.O_EXCL, "O_RDWR|O_CREAT|O_EXCL"},
	}
	for _, c := range cases {
		if got := FormatOpenFlags(c.flags); got != c.want {
			t.Errorf("FormatOpenFlags(0x%x) = %q, want %q", c.flags, got, c.want)
		}
	}
}

// Re-parsing the formatted output reproduces the bitmask bit-for-bit,
// restricted to the recognized subset of flags.
func TestOpenFlagsRoundTrip(t *testing.T) {
	masks := []int32{
		0,
		unix.O_WRONLY,
		unix.O_RDWR | unix.O_CREAT,
		unix.O_WRONLY | unix.O_CREAT | unix.O_EXCL | unix.O_TRUNC | unix.O_APPEND,
		unix.O_RDONLY | unix.O_CLOEXEC | unix.O_NONBLOCK,
		unix.O_RDWR | unix.O_DIRECTORY | unix.O_NOFOLLOW,
	}
	for _, m := range masks {
		formatted := FormatOpenFlags(m)
		if got := ParseOpenFlags(formatted); got != m {
			t.Errorf("round trip for 0x%x via %q = 0x%x", m, formatted, got)
		}
	}
}
