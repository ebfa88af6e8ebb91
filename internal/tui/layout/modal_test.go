package layout

import "testing"

func TestCalculateModalWidth(t *testing.T) {
	cfg := DefaultConfig().Modal

	tests := []struct {
		name          string
		terminalWidth int
		percent       int
		want          int
	}{
		{"percent of wide terminal", 150, 40, 60}, // 150*40/100 = 60
		{"clamps to min", 80, 40, 40},             // 32 -> min 40
		{"clamps to max", 300, 40, 80},            // 120 -> max 80
		{"small terminal", 30, 40, 26},            // min 40 > 30-4
		{"tiny terminal clamps to 1", 3, 40, 1},   // 3-4 < 1
		{"edit form percent", 100, 60, 60},        // 100*60/100 = 60
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateModalWidth(tt.terminalWidth, tt.percent, cfg)
			if got != tt.want {
				t.Errorf("CalculateModalWidth(%d, %d) = %d, want %d",
					tt.terminalWidth, tt.percent, got, tt.want)
			}
		})
	}
}

func TestCalculateModalHeight(t *testing.T) {
	cfg := DefaultConfig().Modal

	tests := []struct {
		name           string
		terminalHeight int
		percent        int
		want           int
	}{
		{"tall terminal", 60, 20, 12},  // 60*20/100 = 12
		{"clamps to min", 24, 20, 7},   // 4 -> min 7
		{"shorter than min", 5, 20, 5}, // can't exceed terminal
		{"zero height", 0, 20, 1},      // clamp to 1
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateModalHeight(tt.terminalHeight, tt.percent, cfg)
			if got != tt.want {
				t.Errorf("CalculateModalHeight(%d, %d) = %d, want %d",
					tt.terminalHeight, tt.percent, got, tt.want)
			}
		})
	}
}

func TestCenterOffset(t *testing.T) {
	tests := []struct {
		outer, inner, want int
	}{
		{80, 40, 20},
		{81, 40, 20},
		{40, 40, 0},
		{30, 40, 0},
	}

	for _, tt := range tests {
		if got := CenterOffset(tt.outer, tt.inner); got != tt.want {
			t.Errorf("CenterOffset(%d, %d) = %d, want %d", tt.outer, tt.inner, got, tt.want)
		}
	}
}
