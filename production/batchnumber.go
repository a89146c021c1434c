package production

import (
	"fmt"
	"strconv"
	"sync"
	"time"
)

// =============================================================================
// BATCH NUMBER - Human-readable P{yy}{mm}{dd}-{seq}
// =============================================================================

// BatchNumberGenerator issues batch numbers of the form P250828-0001.
// The sequence resets each day. State lives in memory; replay persisted
// numbers through Observe before the first Next so a restarted process
// continues a day's sequence instead of reissuing it.
type BatchNumberGenerator struct {
	mu      sync.Mutex
	lastDay string
	seq     int
}

func NewBatchNumberGenerator() *BatchNumberGenerator {
	return &BatchNumberGenerator{}
}

// Next returns the next batch number for the given creation instant.
func (g *BatchNumberGenerator) Next(at time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	day := at.Format("060102")
	if day != g.lastDay {
		g.lastDay = day
		g.seq = 0
	}
	g.seq++
	return fmt.Sprintf("P%s-%04d", day, g.seq)
}

// Observe records a number issued earlier, typically read back from the
// store at startup, so Next never repeats it. Strings that do not match
// the generator's format, and days older than the latest observed, are
// ignored.
func (g *BatchNumberGenerator) Observe(number string) {
	day, seq, ok := splitBatchNumber(number)
	if !ok {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// yymmdd strings compare chronologically.
	switch {
	case day == g.lastDay:
		if seq > g.seq {
			g.seq = seq
		}
	case day > g.lastDay:
		g.lastDay = day
		g.seq = seq
	}
}

func splitBatchNumber(number string) (day string, seq int, ok bool) {
	if len(number) < 9 || number[0] != 'P' || number[7] != '-' {
		return "", 0, false
	}
	day = number[1:7]
	if n, err := strconv.Atoi(day); err != nil || n < 0 {
		return "", 0, false
	}
	seq, err := strconv.Atoi(number[8:])
	if err != nil || seq < 1 {
		return "", 0, false
	}
	return day, seq, true
}
