package colour

import (
	"math"
	"testing"
)

func TestLuminance(t *testing.T) {
	tests := []struct {
		name   string
		colour Colour
		want   float64
	}{
		{name: "black", colour: Colour{R: 0, G: 0, B: 0}, want: 0},
		{name: "white", colour: Colour{R: 255, G: 255, B: 255}, want: 1},
		{name: "red", colour: Colour{R: 255, G: 0, B: 0}, want: 0.2126},
		{name: "green", colour: Colour{R: 0, G: 255, B: 0}, want: 0.7152},
		{name: "blue", colour: Colour{R: 0, G: 0, B: 255}, want: 0.0722},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Luminance(tt.colour)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Luminance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContrastRatioSelf(t *testing.T) {
	colours := []Colour{
		{R: 0, G: 0, B: 0},
		{R: 255, G: 255, B: 255},
		{R: 229, G: 62, B: 62},
		{R: 128, G: 128, B: 128},
	}

	for _, c := range colours {
		if got := ContrastRatio(c, c); got != 1.0 {
			t.Errorf("ContrastRatio(%v, %v) = %v, want 1.0", c, c, got)
		}
	}
}

func TestContrastRatioSymmetry(t *testing.T) {
	a := Colour{R: 229, G: 62, B: 62}
	b := Colour{R: 56, G: 161, B: 105}
	if r1, r2 := ContrastRatio(a, b), ContrastRatio(b, a); r1 != r2 {
		t.Errorf("ContrastRatio not symmetric: %v vs %v", r1, r2)
	}
}

func TestContrastRatioKnownValues(t *testing.T) {
	tests := []struct {
		name   string
		c1, c2 Colour
		want   float64
	}{
		{
			name: "black on white is maximum",
			c1:   Colour{R: 0, G: 0, B: 0},
			c2:   Colour{R: 255, G: 255, B: 255},
			want: 21.0,
		},
		{
			name: "dark grey on white",
			c1:   Colour{R: 0x33, G: 0x33, B: 0x33},
			c2:   Colour{R: 255, G: 255, B: 255},
			want: 12.634654,
		},
		{
			name: "adjacent greys",
			c1:   Colour{R: 0x77, G: 0x77, B: 0x77},
			c2:   Colour{R: 0x88, G: 0x88, B: 0x88},
			want: 1.263253,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ContrastRatio(tt.c1, tt.c2)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("ContrastRatio() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContrastRatioBounds(t *testing.T) {
	colours := []Colour{
		{R: 0, G: 0, B: 0},
		{R: 255, G: 255, B: 255},
		{R: 255, G: 0, B: 0},
		{R: 0, G: 255, B: 0},
		{R: 0, G: 0, B: 255},
		{R: 17, G: 201, B: 88},
	}

	for _, a := range colours {
		for _, b := range colours {
			r := ContrastRatio(a, b)
			if r < 1.0 || r > 21.0 {
				t.Errorf("ContrastRatio(%v, %v) = %v, want within [1, 21]", a, b, r)
			}
		}
	}
}

func TestRate(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  Rating
	}{
		{
			name:  "maximum passes everything",
			ratio: 21.0,
			want:  Rating{AABody: true, AALarge: true, AAABody: true, AAALarge: true},
		},
		{
			name:  "minimum fails everything",
			ratio: 1.0,
			want:  Rating{},
		},
		{
			name:  "exactly aa large",
			ratio: 3.0,
			want:  Rating{AALarge: true},
		},
		{
			name:  "just below aa large",
			ratio: 2.999,
			want:  Rating{},
		},
		{
			name:  "exactly aa body",
			ratio: 4.5,
			want:  Rating{AABody: true, AALarge: true, AAALarge: true},
		},
		{
			name:  "between aa and aaa body",
			ratio: 5.2,
			want:  Rating{AABody: true, AALarge: true, AAALarge: true},
		},
		{
			name:  "exactly aaa body",
			ratio: 7.0,
			want:  Rating{AABody: true, AALarge: true, AAABody: true, AAALarge: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rate(tt.ratio); got != tt.want {
				t.Errorf("Rate(%v) = %+v, want %+v", tt.ratio, got, tt.want)
			}
		})
	}
}
