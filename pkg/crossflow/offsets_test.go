package crossflow

import (
	"math"
	"testing"
)

func TestCalcOffsets(t *testing.T) {
	tests := []struct {
		name  string
		m     Movements
		total float64
		turn  float64
		width float64
		want  Offsets
	}{
		{"zero total", Movements{}, 0, 0, 10, Offsets{}},
		{"zero total wide band", Movements{}, 0, 0, 1000, Offsets{}},
		{"even split", Movements{Left: 1, Front: 2, Right: 1}, 4, 0, 10, Offsets{Left: 1.25, Front: 5, Right: 8.75}},
		{"turn excluded", Movements{Front: 3, Turn: 1}, 4, 1, 10, Offsets{Left: 0, Front: 5, Right: 10}},
		{"only left", Movements{Left: 2}, 2, 0, 8, Offsets{Left: 4, Front: 8, Right: 8}},
		{"only turns", Movements{Turn: 5}, 5, 5, 10, Offsets{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcOffsets(tt.m, tt.total, tt.turn, tt.width)
			if got != tt.want {
				t.Errorf("CalcOffsets() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCalcOffsetsFinite(t *testing.T) {
	// total == turn leaves nothing to partition.
	for _, width := range []float64{0, 1, 10, 37.5} {
		got := CalcOffsets(Movements{Turn: 3}, 3, 3, width)
		for _, v := range []float64{got.Left, got.Front, got.Right} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("CalcOffsets(width=%v) = %+v, want finite values", width, got)
			}
		}
	}
}

func TestCalcOffsetsMonotonic(t *testing.T) {
	cases := []Movements{
		{Left: 1, Front: 1, Right: 1},
		{Left: 10, Front: 1, Right: 1},
		{Left: 1, Front: 10, Right: 1, Turn: 4},
		{Left: 0.5, Front: 0.25, Right: 7},
	}
	for _, m := range cases {
		got := CalcOffsets(m, m.Total(), m.Turn, 10)
		if !(got.Left < got.Front && got.Front < got.Right) {
			t.Errorf("CalcOffsets(%+v) = %+v, want left < front < right", m, got)
		}
	}
}

func TestCalcOffsetsIgnoresTurnField(t *testing.T) {
	a := CalcOffsets(Movements{Left: 1, Front: 1, Right: 2, Turn: 0}, 6, 2, 10)
	b := CalcOffsets(Movements{Left: 1, Front: 1, Right: 2, Turn: 99}, 6, 2, 10)
	if a != b {
		t.Errorf("offsets depend on Movements.Turn: %+v vs %+v", a, b)
	}
}

func TestOffsetsGet(t *testing.T) {
	o := Offsets{Left: 1, Front: 2, Right: 3}
	if o.Get(Left) != 1 || o.Get(Front) != 2 || o.Get(Right) != 3 {
		t.Errorf("Get() mismatch for %+v", o)
	}
	if o.Get(Turn) != 0 {
		t.Errorf("Get(Turn) = %v, want 0", o.Get(Turn))
	}
}
