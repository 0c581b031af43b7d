package game

import (
	"reflect"
	"testing"
)

func TestLeaderboardSubmitKeepsMax(t *testing.T) {
	l := NewLeaderboard([]Entry{{Name: "A", Score: 10}})

	if l.Submit("A", 5) {
		t.Fatalf("lower score reported a change")
	}
	if got := l.Entries(); !reflect.DeepEqual(got, []Entry{{"A", 10}}) {
		t.Fatalf("after lower score: %v", got)
	}

	if !l.Submit("A", 15) {
		t.Fatalf("higher score reported no change")
	}
	if got := l.Entries(); !reflect.DeepEqual(got, []Entry{{"A", 15}}) {
		t.Fatalf("after higher score: %v", got)
	}

	l.Submit("B", 3)
	if got := l.Sorted(); !reflect.DeepEqual(got, []Entry{{"A", 15}, {"B", 3}}) {
		t.Fatalf("sorted = %v", got)
	}
}

func TestLeaderboardInsertionOrderVsDisplayOrder(t *testing.T) {
	l := NewLeaderboard(nil)
	l.Submit("low", 1)
	l.Submit("high", 9)
	l.Submit("mid", 5)
	l.Submit("tie", 5)

	wantInsert := []Entry{{"low", 1}, {"high", 9}, {"mid", 5}, {"tie", 5}}
	if got := l.Entries(); !reflect.DeepEqual(got, wantInsert) {
		t.Fatalf("entries = %v, want %v", got, wantInsert)
	}
	wantSorted := []Entry{{"high", 9}, {"mid", 5}, {"tie", 5}, {"low", 1}}
	if got := l.Sorted(); !reflect.DeepEqual(got, wantSorted) {
		t.Fatalf("sorted = %v, want %v", got, wantSorted)
	}
	if got := l.Top(2); !reflect.DeepEqual(got, wantSorted[:2]) {
		t.Fatalf("top 2 = %v", got)
	}
	if got := l.Top(10); len(got) != 4 {
		t.Fatalf("top 10 has %d entries, want 4", len(got))
	}
}

func TestNewLeaderboardCollapsesDuplicates(t *testing.T) {
	l := NewLeaderboard([]Entry{{"A", 3}, {"B", 1}, {"A", 7}})
	want := []Entry{{"A", 7}, {"B", 1}}
	if got := l.Entries(); !reflect.DeepEqual(got, want) {
		t.Fatalf("entries = %v, want %v", got, want)
	}
}

func TestLeaderboardClear(t *testing.T) {
	l := NewLeaderboard([]Entry{{"A", 3}})
	l.Clear()
	if l.Len() != 0 {
		t.Fatalf("len after clear = %d", l.Len())
	}
}
