package models

import "testing"

func TestNewChannelSet(t *testing.T) {
	tests := []struct {
		name        string
		channels    []int
		numChannels int
		wantErr     bool
		wantCount   int
	}{
		{"default to channel 0", nil, 3, false, 1},
		{"explicit single", []int{1}, 3, false, 1},
		{"all channels", []int{0, 1, 2}, 3, false, 3},
		{"out of range", []int{3}, 3, true, 0},
		{"negative", []int{-1}, 3, true, 0},
		{"beyond grayscale", []int{1}, 1, true, 0},
		{"duplicate", []int{0, 0}, 3, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := NewChannelSet(tt.channels, tt.numChannels)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if set.Count() != tt.wantCount {
				t.Errorf("Count() = %d, want %d", set.Count(), tt.wantCount)
			}
		})
	}
}

func TestChannelSetContains(t *testing.T) {
	set, err := NewChannelSet([]int{0, 2}, 3)
	if err != nil {
		t.Fatal(err)
	}

	if !set.Contains(0) || !set.Contains(2) {
		t.Error("selected channels reported as absent")
	}
	if set.Contains(1) {
		t.Error("unselected channel reported as present")
	}
	if set.Contains(-1) || set.Contains(3) {
		t.Error("out-of-range channel reported as present")
	}
}
