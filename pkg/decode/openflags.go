package decode

import (
	"strings"

	"golang.org/x/sys/unix"
)

// accessModeTokens are mutually exclusive; exactly one applies, taken from
// the low two bits of the flags word.
var accessModeTokens = []struct {
	mask  int32
	token string
}{
	{unix.O_WRONLY, "O_WRONLY"},
	{unix.O_RDWR, "O_RDWR"},
}

// optionTokens may combine freely; order here fixes the order they are
// joined in, matching how strace lists them (creation flags first).
var optionTokens = []struct {
	mask  int32
	token string
}{
	{unix.O_CREAT, "O_CREAT"},
	{unix.O_EXCL, "O_EXCL"},
	{unix.O_TRUNC, "O_TRUNC"},
	{unix.O_APPEND, "O_APPEND"},
	{unix.O_NONBLOCK, "O_NONBLOCK"},
	{unix.O_DIRECTORY, "O_DIRECTORY"},
	{unix.O_NOFOLLOW, "O_NOFOLLOW"},
	{unix.O_CLOEXEC, "O_CLOEXEC"},
}

// FormatOpenFlags splits an open(2)/openat(2) flags bitmask into its
// access-mode token (always exactly one of O_RDONLY/O_WRONLY/O_RDWR) plus
// zero or more option tokens, joined by "|".
func FormatOpenFlags(flags int32) string {
	access := "O_RDONLY" // the zero value; O_RDONLY has no distinct bit
	for _, am := range accessModeTokens {
		if flags&am.mask == am.mask {
			access = am.token
			break
		}
	}
	tokens := []string{access}

	for _, opt := range optionTokens {
		if flags&opt.mask != 0 {
			tokens = append(tokens, opt.token)
		}
	}

	return strings.Join(tokens, "|")
}

// ParseOpenFlags is the round-trip inverse of FormatOpenFlags restricted to
// the recognized token subset: OR-ing the recognized tokens named in s
// reproduces the original bitmask bit-for-bit, for any mask built purely
// from the constants above.
func ParseOpenFlags(s string) int32 {
	var flags int32
	for _, tok := range strings.Split(s, "|") {
		switch tok {
		case "O_WRONLY":
			flags |= unix.O_WRONLY
		case "O_RDWR":
			flags |= unix.O_RDWR
		case "O_RDONLY":
			// zero bits, nothing to OR in
		default:
			for _, opt := range optionTokens {
				if opt.token == tok {
					flags |= opt.mask
				}
			}
		}
	}
	return flags
}
