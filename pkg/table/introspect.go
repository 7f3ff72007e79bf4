package table

import (
	"errors"
	"fmt"
	"strings"
)

// Level selects a single-number transition level.
type Level string

const (
	LevelDirect   Level = "direct"
	LevelPosition Level = "position"
)

// ErrUnknownLevel is returned by ParseLevel for unsupported level names.
var ErrUnknownLevel = errors.New("unknown transition level")

// ParseLevel converts a user-supplied name into a Level.
func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelDirect, "":
		return LevelDirect, nil
	case LevelPosition:
		return LevelPosition, nil
	}
	return "", fmt.Errorf("%w: %q (want %q or %q)", ErrUnknownLevel, s, LevelDirect, LevelPosition)
}

// Snapshot is a copy of every table entry involving one number.
type Snapshot struct {
	Number      int                  `json:"number"`
	Direct      map[int]int          `json:"direct"`
	Position    map[int]int          `json:"position"`
	Combination map[Pair]map[int]int `json:"combination"`
}

// Snapshot returns the direct and position successors of number and every
// combination entry whose pair contains number. Mutating the result never
// affects the table.
func (t *Table) Snapshot(number int) Snapshot {
	s := Snapshot{
		Number:      number,
		Direct:      t.Direct.Successors(number),
		Position:    t.Position.Successors(number),
		Combination: make(map[Pair]map[int]int),
	}
	t.Combination.Range(func(p Pair, successors map[int]int) bool {
		if p.Contains(number) {
			s.Combination[p] = successors
		}
		return true
	})
	return s
}

// MostLikelyNext returns the successor of number with the highest count at
// the given level, ties going to the smaller successor. ok is false when the
// level has no entries for number or the level is not recognized.
func (t *Table) MostLikelyNext(number int, level Level) (next int, ok bool) {
	var counts Counts[int]
	switch level {
	case LevelDirect:
		counts = t.Direct
	case LevelPosition:
		counts = t.Position
	default:
		return 0, false
	}

	best := 0
	for successor, c := range counts.m[number] {
		if c > best || (c == best && successor < next) {
			next, best = successor, c
		}
	}
	return next, best > 0
}
