package tracer

import "sort"

// Phase is a task's position in the two-phase syscall interception
// protocol. It is a plain enum: the pending syscall number is kept beside
// it in TaskState.PendingSyscall, and nothing in the types prevents that
// field from being read outside AwaitingExit.
type Phase int

const (
	// AwaitingEntry is the initial phase: the next syscall-stop observed
	// for this task is an entry stop.
	AwaitingEntry Phase = iota
	// AwaitingExit means an entry stop was already consumed; the next
	// syscall-stop for this task is its matching exit.
	AwaitingExit
)

// TaskState is the per-task record the stop-loop driver owns for the
// lifetime of the tracee.
type TaskState struct {
	Phase Phase
	// PendingSyscall is the syscall number captured at the most recent
	// entry stop. Read-only between entry and exit; valid only while
	// Phase == AwaitingExit.
	PendingSyscall uint64
}

// Counters is a syscall-number -> count map plus the running total. Zero
// value is ready to use. Insertion order is irrelevant; only the sorted
// view produced by Rows matters.
type Counters struct {
	counts map[uint64]uint64
	total  uint64
}

// NewCounters returns an empty, ready-to-use Counters.
func NewCounters() *Counters {
	return &Counters{counts: make(map[uint64]uint64)}
}

// Incr records one completed call of the given syscall number. Must be
// called only at the exit stop, so interrupted/restarted syscalls are
// counted once per completion.
func (c *Counters) Incr(number uint64) {
	if c.counts == nil {
		c.counts = make(map[uint64]uint64)
	}
	c.counts[number]++
	c.total++
}

// Total is the sum of all per-syscall counts.
func (c *Counters) Total() uint64 { return c.total }

// Count returns the current count for a syscall number.
func (c *Counters) Count(number uint64) uint64 { return c.counts[number] }

// Row is one line of the summary table.
type Row struct {
	Number uint64
	Count  uint64
}

// Rows returns the counters sorted descending by count, ties broken by
// lower syscall number first (stable).
func (c *Counters) Rows() []Row {
	rows := make([]Row, 0, len(c.counts))
	for n, cnt := range c.counts {
		rows = append(rows, Row{Number: n, Count: cnt})
	}
	sortRows(rows)
	return rows
}

func sortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Number < rows[j].Number
	})
}
