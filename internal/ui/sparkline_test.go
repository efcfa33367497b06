package ui

import "testing"

func TestSparkline(t *testing.T) {
	tests := []struct {
		name    string
		samples []int64
		width   int
		want    string
	}{
		{"empty", nil, 10, ""},
		{"zero width", []int64{1, 2}, 0, ""},
		{"constant", []int64{5, 5, 5}, 10, "▁▁▁"},
		{"full ramp", []int64{0, 1, 2, 3, 4, 5, 6, 7}, 10, "▁▂▃▄▅▆▇█"},
		{"min max", []int64{0, 100}, 10, "▁█"},
		{"truncates to width", []int64{0, 0, 0, 0, 7}, 2, "▁█"},
		{"negative values", []int64{-10, 0, 10}, 10, "▁▄█"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sparkline(tt.samples, tt.width); got != tt.want {
				t.Errorf("sparkline(%v, %d) = %q, want %q", tt.samples, tt.width, got, tt.want)
			}
		})
	}
}
