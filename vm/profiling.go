package vm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/wudi/intmud/opcodes"
)

// profileState tracks per-instruction and per-opcode execution counts for
// the optional diagnostics report, in the teacher's self-rolled profiling
// idiom (no third-party metrics/logging library — the teacher carries
// none either).
type profileState struct {
	instructionCount uint64
	opcodeCounts     map[opcodes.Opcode]uint64
	allocs           uint64
}

func newProfileState() *profileState {
	return &profileState{opcodeCounts: make(map[opcodes.Opcode]uint64)}
}

func (p *profileState) observe(op opcodes.Opcode) {
	p.instructionCount++
	p.opcodeCounts[op]++
}

func (p *profileState) recordAlloc() {
	p.allocs++
}

type hotSpot struct {
	Op    opcodes.Opcode
	Count uint64
}

func (p *profileState) hotSpots(n int) []hotSpot {
	spots := make([]hotSpot, 0, len(p.opcodeCounts))
	for op, count := range p.opcodeCounts {
		spots = append(spots, hotSpot{Op: op, Count: count})
	}
	sort.Slice(spots, func(i, j int) bool { return spots[i].Count > spots[j].Count })
	if n > 0 && len(spots) > n {
		spots = spots[:n]
	}
	return spots
}

// render produces the human-readable performance report surfaced by the
// CLI host's diagnostics flag, using go-humanize for instruction/alloc
// counts the way a report meant for a terminal, not a metrics backend,
// would format them.
func (p *profileState) render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "instructions executed: %s\n", humanize.Comma(int64(p.instructionCount)))
	fmt.Fprintf(&b, "object allocations:    %s\n", humanize.Comma(int64(p.allocs)))
	b.WriteString("hot opcodes:\n")
	for _, h := range p.hotSpots(10) {
		fmt.Fprintf(&b, "  %-24s %s\n", h.Op, humanize.Comma(int64(h.Count)))
	}
	return b.String()
}
