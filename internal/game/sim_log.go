package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded match event.
type SimLogEntry struct {
	Tick     int
	Side     string  // "P", "E", or "--" for match-wide events
	Category string  // shot, impact, damage, terrain, cluster, wind, turn, round, save, ammo
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=0142] P  shot     fire             heavy a=47.0 p=70
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-2s %-8s %-16s %s",
		e.Tick, e.Side, e.Category, e.Key, e.Value)
}

// SimLog collects structured match events. Tests and the headless report
// assert over it; the frontend tails it for the battle log panel.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
	limit   int // 0 = unbounded
	dropped int // entries trimmed off the front
}

// NewSimLog creates a SimLog. If verbose is true, per-tick flight entries are
// also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// SetLimit bounds the log to the n most recent entries. n <= 0 removes the bound.
func (sl *SimLog) SetLimit(n int) {
	sl.limit = n
	sl.trim()
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, side, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Side:     side,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
	sl.trim()
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, side, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, side, category, key, value, numVal)
}

func (sl *SimLog) trim() {
	if sl.limit <= 0 || len(sl.entries) <= sl.limit {
		return
	}
	n := len(sl.entries) - sl.limit
	sl.entries = append(sl.entries[:0], sl.entries[n:]...)
	sl.dropped += n
}

// Entries returns all retained entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Total is the number of entries ever added, including trimmed ones.
func (sl *SimLog) Total() int { return sl.dropped + len(sl.entries) }

// Since returns retained entries whose sequence number is >= seq. Use Total
// as the next cursor.
func (sl *SimLog) Since(seq int) []SimLogEntry {
	i := seq - sl.dropped
	if i < 0 {
		i = 0
	}
	if i >= len(sl.entries) {
		return nil
	}
	return sl.entries[i:]
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterSide returns entries for one side label.
func (sl *SimLog) FilterSide(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Side == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range sl.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the match state.
func (sl *SimLog) Summary(m *MatchContext) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%04d ---\n", m.CurrentTick())
	fmt.Fprintf(&sb, "Level %d  phase=%s  turn=%s  wind=%+.3f (%s)\n",
		m.Level, m.Phase, m.Turn, m.Wind.Speed, m.Wind.Label())
	for _, t := range m.Tanks {
		if t == nil {
			continue
		}
		fmt.Fprintf(&sb, "%-6s x=%.0f y=%.0f angle=%.1f health=%d/%d\n",
			t.Side, t.X, t.Y, t.Angle, t.Health, t.MaxHealth)
	}
	fmt.Fprintf(&sb, "Ammo: ")
	for _, id := range m.catalog.IDs() {
		fmt.Fprintf(&sb, "%s=%s  ", id, m.Inventory.Label(id))
	}
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "Shots: player=%d enemy=%d  craters=%d  splits=%d  round_ends=%d\n",
		len(sl.filterSideCategory("P", "shot")), len(sl.filterSideCategory("E", "shot")),
		sl.CountCategory("terrain", "crater"), sl.CountCategory("cluster", "fragment"),
		sl.CountCategory("round", "end"))
	return sb.String()
}

func (sl *SimLog) filterSideCategory(side, category string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Side == side && e.Category == category {
			out = append(out, e)
		}
	}
	return out
}
