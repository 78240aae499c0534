package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	at := func(d int) time.Time {
		return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name     string
		s1, e1   time.Time
		s2, e2   time.Time
		expected bool
	}{
		{"identical intervals", at(10), at(15), at(10), at(15), true},
		{"partial overlap", at(10), at(15), at(12), at(20), true},
		{"second contains first", at(12), at(13), at(10), at(15), true},
		{"first contains second", at(10), at(20), at(12), at(15), true},
		{"touching at boundary", at(10), at(15), at(15), at(20), false},
		{"touching at boundary reversed", at(15), at(20), at(10), at(15), false},
		{"disjoint", at(1), at(5), at(10), at(15), false},
		{"one day inside", at(10), at(11), at(10), at(15), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Overlaps(tt.s1, tt.e1, tt.s2, tt.e2))
			// Overlap is symmetric.
			assert.Equal(t, tt.expected, Overlaps(tt.s2, tt.e2, tt.s1, tt.e1))
		})
	}
}
