package game

import "sort"

// Entry is one leaderboard line.
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Leaderboard keeps the best score per player name. Entries stay in
// insertion order; Sorted derives the display order.
type Leaderboard struct {
	entries []Entry
}

// NewLeaderboard builds a leaderboard from entries in insertion order.
// Duplicate names collapse to their highest score at the first position.
func NewLeaderboard(entries []Entry) Leaderboard {
	var l Leaderboard
	for _, e := range entries {
		l.Submit(e.Name, e.Score)
	}
	return l
}

// Submit records score for name, keeping the maximum seen for that name.
// It reports whether the leaderboard changed. Negative scores are ignored.
func (l *Leaderboard) Submit(name string, score int) bool {
	if score < 0 {
		return false
	}
	for i := range l.entries {
		if l.entries[i].Name != name {
			continue
		}
		if score > l.entries[i].Score {
			l.entries[i].Score = score
			return true
		}
		return false
	}
	l.entries = append(l.entries, Entry{Name: name, Score: score})
	return true
}

// Merge submits every entry of other.
func (l *Leaderboard) Merge(other []Entry) {
	for _, e := range other {
		l.Submit(e.Name, e.Score)
	}
}

// Clear removes every entry.
func (l *Leaderboard) Clear() {
	l.entries = nil
}

// Len returns the number of entries.
func (l Leaderboard) Len() int {
	return len(l.entries)
}

// Entries returns a copy in insertion order.
func (l Leaderboard) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Sorted returns a copy ordered by descending score. Ties keep insertion order.
func (l Leaderboard) Sorted() []Entry {
	out := l.Entries()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Top returns at most k entries in display order.
func (l Leaderboard) Top(k int) []Entry {
	sorted := l.Sorted()
	if k < 0 {
		k = 0
	}
	if len(sorted) > k {
		sorted = sorted[:k]
	}
	return sorted
}
