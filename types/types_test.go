package types

import "testing"

func TestNewTimeContext(t *testing.T) {
	tests := []struct {
		name    string
		hop     int
		wantErr bool
	}{
		{"valid hop", 240, false},
		{"hop of one", 1, false},
		{"zero hop", 0, true},
		{"negative hop", -4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, err := NewTimeContext(tt.hop)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewTimeContext(%d) error = %v, wantErr %v", tt.hop, err, tt.wantErr)
			}
			if err == nil && ctx.HopLength != tt.hop {
				t.Errorf("HopLength = %d, want %d", ctx.HopLength, tt.hop)
			}
		})
	}
}

func TestRescaleValueSemantics(t *testing.T) {
	ctx, err := NewTimeContext(120)
	if err != nil {
		t.Fatal(err)
	}

	coarse := ctx.Rescale(4)
	if coarse.HopLength != 480 {
		t.Errorf("rescaled HopLength = %d, want 480", coarse.HopLength)
	}
	if ctx.HopLength != 120 {
		t.Errorf("original context mutated: HopLength = %d, want 120", ctx.HopLength)
	}
}

func TestFrameSampleMapping(t *testing.T) {
	ctx := TimeContext{HopLength: 10}

	if got := ctx.Samples(7); got != 70 {
		t.Errorf("Samples(7) = %d, want 70", got)
	}
	if got := ctx.Frames(70); got != 7 {
		t.Errorf("Frames(70) = %d, want 7", got)
	}
	// Partial frames round up.
	if got := ctx.Frames(71); got != 8 {
		t.Errorf("Frames(71) = %d, want 8", got)
	}
}
