package main

import "testing"

func TestEffectiveLogLevel(t *testing.T) {
	tests := []struct {
		name      string
		flagSet   bool
		flagLevel string
		fileLevel string
		want      string
	}{
		{"file level used when flag left at default", false, "info", "debug", "debug"},
		{"explicit flag wins over file", true, "warn", "debug", "warn"},
		{"flag default kept when file is silent", false, "info", "", "info"},
		{"explicit flag kept when file is silent", true, "error", "", "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := effectiveLogLevel(tt.flagSet, tt.flagLevel, tt.fileLevel)
			if got != tt.want {
				t.Errorf("effectiveLogLevel(%v, %q, %q) = %q, want %q",
					tt.flagSet, tt.flagLevel, tt.fileLevel, got, tt.want)
			}
		})
	}
}

func TestParseChannels(t *testing.T) {
	channels, err := parseChannels("0, 1,2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(channels) != 3 || channels[0] != 0 || channels[1] != 1 || channels[2] != 2 {
		t.Errorf("parseChannels = %v, want [0 1 2]", channels)
	}

	if _, err := parseChannels("0,x"); err == nil {
		t.Error("expected error for non-numeric channel list")
	}
}
