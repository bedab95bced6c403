package session

import (
	"testing"
	"time"
)

func TestComputeLatePenalty(t *testing.T) {
	anchor := time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)
	grace := 10 * time.Minute
	gameDur := 12 * time.Minute

	tests := []struct {
		name    string
		arrival time.Time
		anchor  *time.Time
		want    int
	}{
		{
			name:    "no anchor yet",
			arrival: anchor.Add(45 * time.Minute),
			anchor:  nil,
			want:    0,
		},
		{
			name:    "arrival before anchor",
			arrival: anchor.Add(-5 * time.Minute),
			anchor:  &anchor,
			want:    0,
		},
		{
			name:    "arrival exactly at anchor",
			arrival: anchor,
			anchor:  &anchor,
			want:    0,
		},
		{
			name:    "inside grace window",
			arrival: anchor.Add(9 * time.Minute),
			anchor:  &anchor,
			want:    0,
		},
		{
			name:    "at grace boundary",
			arrival: anchor.Add(10 * time.Minute),
			anchor:  &anchor,
			want:    0,
		},
		{
			name:    "just under one game late",
			arrival: anchor.Add(21*time.Minute + 59*time.Second),
			anchor:  &anchor,
			want:    0,
		},
		{
			name:    "one game late",
			arrival: anchor.Add(22 * time.Minute),
			anchor:  &anchor,
			want:    1,
		},
		{
			name:    "two games late",
			arrival: anchor.Add(34 * time.Minute),
			anchor:  &anchor,
			want:    2,
		},
		{
			name:    "very late",
			arrival: anchor.Add(95 * time.Minute),
			anchor:  &anchor,
			want:    7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeLatePenalty(tt.arrival, tt.anchor, grace, gameDur)
			if got != tt.want {
				t.Errorf("ComputeLatePenalty() = %d, want %d", got, tt.want)
			}
		})
	}
}
