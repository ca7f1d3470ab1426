package geo

import (
	"math"
	"testing"

	"github.com/draftline/outline/pkg/core"
)

func TestEndpoint_HorizontalPositive(t *testing.T) {
	got := Endpoint(core.Position2D{X: 10, Y: 5}, AxisHorizontal, 30)
	if got.X != 40 || got.Y != 5 {
		t.Errorf("expected (40,5), got (%f,%f)", got.X, got.Y)
	}
}

func TestEndpoint_HorizontalNegative(t *testing.T) {
	got := Endpoint(core.Position2D{X: 10, Y: 5}, AxisHorizontal, -30)
	if got.X != -20 || got.Y != 5 {
		t.Errorf("expected (-20,5), got (%f,%f)", got.X, got.Y)
	}
}

func TestEndpoint_Vertical(t *testing.T) {
	got := Endpoint(core.Position2D{X: 10, Y: 5}, AxisVertical, 7)
	if got.X != 10 || got.Y != 12 {
		t.Errorf("expected (10,12), got (%f,%f)", got.X, got.Y)
	}
}

func TestDistance(t *testing.T) {
	d := Distance(core.Position2D{X: 0, Y: 0}, core.Position2D{X: 3, Y: 4})
	if d != 5 {
		t.Errorf("expected 5, got %f", d)
	}
}

func TestAngle_Normalized(t *testing.T) {
	tests := []struct {
		name string
		a, b core.Position2D
		want float64
	}{
		{"east", core.Position2D{}, core.Position2D{X: 1}, 0},
		{"north", core.Position2D{}, core.Position2D{Y: 1}, 90},
		{"west", core.Position2D{}, core.Position2D{X: -1}, 180},
		{"south", core.Position2D{}, core.Position2D{Y: -1}, 270},
		{"diagonal", core.Position2D{}, core.Position2D{X: 1, Y: 1}, 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Angle(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestUnitConversion_RoundTrip(t *testing.T) {
	const scale = 2.5 // real-world units per internal unit
	internal := ToInternal(100, scale)
	if internal != 40 {
		t.Errorf("expected 40, got %f", internal)
	}
	if got := FromInternal(internal, scale); got != 100 {
		t.Errorf("expected 100, got %f", got)
	}
}
