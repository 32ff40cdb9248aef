package engine

import (
	"math"
	"testing"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		line     string
		expected float64
		ok       bool
	}{
		{"  Duration: 00:00:02.50, start: 0.000000, bitrate: N/A", 2.5, true},
		{"  Duration: 01:02:03.00, start: 0.000000, bitrate: 128 kb/s", 3723, true},
		{"  Duration: N/A, start: 0.000000, bitrate: N/A", 0, false},
		{"frame=10", 0, false},
	}

	for _, test := range tests {
		got, ok := parseDuration(test.line)
		if ok != test.ok {
			t.Errorf("parseDuration(%q) ok = %v, expected %v", test.line, ok, test.ok)
			continue
		}
		if math.Abs(got-test.expected) > 1e-9 {
			t.Errorf("parseDuration(%q) = %v, expected %v", test.line, got, test.expected)
		}
	}
}

func TestIsProgressLine(t *testing.T) {
	tests := []struct {
		line     string
		expected bool
	}{
		{"frame=12", true},
		{"out_time_us=400000", true},
		{"progress=continue", true},
		{"  Duration: 00:00:02.50, start: 0.000000, bitrate: N/A", false},
		{"[libx264 @ 0x1] options: cabac=1 ref=3", false},
		{"=oops", false},
		{"Stream mapping:", false},
	}

	for _, test := range tests {
		if got := isProgressLine(test.line); got != test.expected {
			t.Errorf("isProgressLine(%q) = %v, expected %v", test.line, got, test.expected)
		}
	}
}

func TestProgressParser(t *testing.T) {
	p := &progressParser{}

	// Progress before duration is known is ignored
	if _, ok := p.Parse("out_time_us=500000"); ok {
		t.Error("Expected no progress before duration is known")
	}

	if _, ok := p.Parse("  Duration: 00:00:02.00, start: 0.000000, bitrate: N/A"); ok {
		t.Error("Duration line should not report progress")
	}

	fraction, ok := p.Parse("out_time_us=500000")
	if !ok || math.Abs(fraction-0.25) > 1e-9 {
		t.Errorf("Expected fraction 0.25, got %v (ok=%v)", fraction, ok)
	}

	fraction, ok = p.Parse("out_time_us=9000000")
	if !ok || fraction != 1.0 {
		t.Errorf("Expected fraction clamped to 1.0, got %v", fraction)
	}

	if _, ok := p.Parse("out_time_us=N/A"); ok {
		t.Error("Expected unparsable time to be ignored")
	}

	if _, ok := p.Parse("progress=continue"); ok {
		t.Error("progress=continue should not report progress")
	}

	fraction, ok = p.Parse("progress=end")
	if !ok || fraction != 1.0 {
		t.Errorf("Expected progress=end to report 1.0, got %v", fraction)
	}
}

func TestProgressParser_KeepsFirstDuration(t *testing.T) {
	p := &progressParser{}
	p.Parse("  Duration: 00:00:04.00, start: 0.000000, bitrate: N/A")
	p.Parse("  Duration: 00:00:10.00, start: 0.000000, bitrate: N/A")

	if p.total != 4 {
		t.Errorf("Expected total to stay at 4s, got %v", p.total)
	}
}
