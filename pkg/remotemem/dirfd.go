package remotemem

import (
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
)

// dirfdCacheSize bounds the resolved-path cache; a tracee that churns
// through thousands of distinct directory descriptors should not grow the
// tracer's own memory unboundedly.
const dirfdCacheSize = 256

// DirFDCache resolves a traced process's open file descriptor to the path
// it refers to (via /proc/<pid>/fd/<n>), for the friendlier "dirfd=3:/etc"
// annotation the openat-family entry line appends next to the raw numeric
// descriptor. Only successful resolutions are cached, keyed by (pid, fd),
// and they are never invalidated: a descriptor that is closed and reused
// for something else keeps reporting the path first resolved for it.
// Failures are not cached, so an unresolved descriptor is retried.
type DirFDCache struct {
	cache *lru.Cache[dirfdKey, string]
}

type dirfdKey struct {
	pid int
	fd  int32
}

// NewDirFDCache builds a bounded dirfd-to-path resolution cache.
func NewDirFDCache() *DirFDCache {
	c, _ := lru.New[dirfdKey, string](dirfdCacheSize)
	return &DirFDCache{cache: c}
}

// Resolve returns a human-readable path for fd in pid's descriptor table,
// or "" if it cannot be resolved (e.g. AT_FDCWD, a closed fd, or a
// permission-denied /proc read).
func (c *DirFDCache) Resolve(pid int, fd int32) string {
	const atFDCWD = -100
	if fd == atFDCWD {
		return ""
	}
	key := dirfdKey{pid: pid, fd: fd}
	if v, ok := c.cache.Get(key); ok {
		return v
	}
	link := fmt.Sprintf("/proc/%d/fd/%d", pid, fd)
	target, err := os.Readlink(link)
	if err != nil {
		return ""
	}
	c.cache.Add(key, target)
	return target
}
