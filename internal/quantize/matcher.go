package quantize

import (
	"math"

	"github.com/jmylchreest/blockify/internal/colour"
	"github.com/jmylchreest/blockify/internal/palette"
)

// match is the outcome of a nearest-entry search. entry is nil when there
// were no candidates.
type match struct {
	entry    *palette.Entry
	distance float64
}

// memoKey is a colour rounded to 16 bits per channel.
type memoKey [3]uint16

func keyOf(c colour.RGB) memoKey {
	c = c.Clamp()
	return memoKey{
		uint16(math.Round(c.R * 0xffff)),
		uint16(math.Round(c.G * 0xffff)),
		uint16(math.Round(c.B * 0xffff)),
	}
}

// matcher finds the closest palette entry for a colour. When memoised, the
// entry chosen for a colour is reused for every later colour with the same key;
// the memo lives only as long as one run.
type matcher struct {
	metric colour.Metric
	memo   map[memoKey]*palette.Entry

	hits   int
	misses int
}

func newMatcher(metric colour.Metric, memoise bool) *matcher {
	m := &matcher{metric: metric}
	if memoise {
		m.memo = make(map[memoKey]*palette.Entry)
	}
	return m
}

// nearest returns the candidate closest to c. Ties keep the earliest candidate.
func (m *matcher) nearest(c colour.RGB, candidates []*palette.Entry) match {
	if m.memo != nil {
		key := keyOf(c)
		if e, ok := m.memo[key]; ok {
			m.hits++
			if e == nil {
				return match{}
			}
			return match{entry: e, distance: m.metric.Distance(c, e.Color)}
		}
		m.misses++
		best := m.scan(c, candidates)
		m.memo[key] = best.entry
		return best
	}
	return m.scan(c, candidates)
}

func (m *matcher) scan(c colour.RGB, candidates []*palette.Entry) match {
	best := match{distance: math.Inf(1)}
	for _, e := range candidates {
		if d := m.metric.Distance(c, e.Color); d < best.distance {
			best = match{entry: e, distance: d}
		}
	}
	if best.entry == nil {
		return match{}
	}
	return best
}
