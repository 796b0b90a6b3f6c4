package palette

import (
	"bytes"
	"errors"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseStyle(t *testing.T) {
	for _, s := range Styles() {
		got, err := ParseStyle(s.String())
		if err != nil {
			t.Fatalf("ParseStyle(%q): %v", s, err)
		}
		if got != s {
			t.Errorf("ParseStyle(%q) = %v, want %v", s, got, s)
		}
	}

	if got, err := ParseStyle(" File "); err != nil || got != Config {
		t.Errorf("ParseStyle(file) = %v, %v, want config", got, err)
	}
	if _, err := ParseStyle("sepia"); err == nil {
		t.Error("ParseStyle(sepia) should fail")
	}
}

func TestFixedPalettes(t *testing.T) {
	n := 0
	for _, s := range Styles() {
		if s.Fixed() {
			n++
		}
	}
	if n != 10 {
		t.Errorf("fixed palettes = %d, want 10", n)
	}

	src, err := Greyscale.Source("")
	if err != nil {
		t.Fatal(err)
	}
	c, err := src.Colors()
	if err != nil {
		t.Fatal(err)
	}
	want := Colors{rgb(255, 255, 255), rgb(127, 127, 127), rgb(0, 0, 0)}
	if c != want {
		t.Errorf("greyscale = %v, want %v", c, want)
	}
}

func TestReadColors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Colors
		wantErr bool
	}{
		{
			name: "header and three rows",
			in:   "R,G,B\n1,2,3\n40,50,60\n255,0,128\n",
			want: Colors{rgb(1, 2, 3), rgb(40, 50, 60), rgb(255, 0, 128)},
		},
		{
			name: "spaces around values",
			in:   "red,green,blue\n1, 2, 3\n4,5,6\n7,8,9",
			want: Colors{rgb(1, 2, 3), rgb(4, 5, 6), rgb(7, 8, 9)},
		},
		{
			name: "blank header",
			in:   "\n1,2,3\n4,5,6\n7,8,9\n",
			want: Colors{rgb(1, 2, 3), rgb(4, 5, 6), rgb(7, 8, 9)},
		},
		{
			name: "header that is a color row",
			in:   "0,0,0\n1,2,3\n4,5,6\n7,8,9\n",
			want: Colors{rgb(1, 2, 3), rgb(4, 5, 6), rgb(7, 8, 9)},
		},
		{name: "header only", in: "R,G,B\n", wantErr: true},
		{name: "missing row", in: "R,G,B\n1,2,3\n4,5,6\n", wantErr: true},
		{name: "extra row", in: "R,G,B\n1,2,3\n4,5,6\n7,8,9\n10,11,12\n", wantErr: true},
		{name: "out of range", in: "R,G,B\n1,2,3\n4,5,256\n7,8,9\n", wantErr: true},
		{name: "two channels", in: "R,G,B\n1,2\n4,5,6\n7,8,9\n", wantErr: true},
		{name: "not a number", in: "R,G,B\n1,2,x\n4,5,6\n7,8,9\n", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadColors(strings.NewReader(tt.in))
			if tt.wantErr {
				if !errors.Is(err, ErrColorFile) {
					t.Errorf("err = %v, want ErrColorFile", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ReadColors = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "colors.csv")
	if err := os.WriteFile(path, []byte("R,G,B\n10,20,30\n40,50,60\n70,80,90\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := Config.Source(path)
	if err != nil {
		t.Fatal(err)
	}
	c, err := src.Colors()
	if err != nil {
		t.Fatal(err)
	}
	if c[0] != rgb(10, 20, 30) || c[2] != rgb(70, 80, 90) {
		t.Errorf("colors = %v", c)
	}

	_, err = FileSource(filepath.Join(dir, "missing.csv")).Colors()
	if !errors.Is(err, ErrColorFile) {
		t.Errorf("missing file: err = %v, want ErrColorFile", err)
	}
}

func TestRandomSource(t *testing.T) {
	src := RandomSource{Reader: bytes.NewReader([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9})}
	c, err := src.Colors()
	if err != nil {
		t.Fatal(err)
	}
	want := Colors{rgb(1, 2, 3), rgb(4, 5, 6), rgb(7, 8, 9)}
	if c != want {
		t.Errorf("Colors = %v, want %v", c, want)
	}

	if _, err := (RandomSource{Reader: bytes.NewReader([]byte{1, 2})}).Colors(); err == nil {
		t.Error("short random source should fail")
	}

	if _, err := (RandomSource{}).Colors(); err != nil {
		t.Errorf("crypto/rand: %v", err)
	}
}

func TestWriteColorsRoundTrip(t *testing.T) {
	c := Colors{rgb(9, 8, 7), rgb(6, 5, 4), rgb(3, 2, 1)}
	var buf bytes.Buffer
	if err := WriteColors(&buf, c); err != nil {
		t.Fatal(err)
	}
	got, err := ReadColors(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got != c {
		t.Errorf("got %v, want %v", got, c)
	}
}

func TestGradientStops(t *testing.T) {
	c := Colors{rgb(0, 0, 0), rgb(100, 150, 200), rgb(255, 255, 255)}
	g := NewGradient(c)

	tests := []struct {
		v    float64
		want color.RGBA
	}{
		{0, c[0]},
		{127.5, c[1]},
		{255, c[2]},
		{63.75, rgb(50, 75, 100)},
	}
	for _, tt := range tests {
		if got := g.At(tt.v); got != tt.want {
			t.Errorf("At(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestGradientReflects(t *testing.T) {
	g := NewGradient(Colors{rgb(10, 20, 30), rgb(200, 100, 0), rgb(0, 255, 90)})

	tests := []struct {
		in, mirror float64
	}{
		{-10, 10},
		{265, 245},
		{-255, 255},
		{510, 0},
		{600, 90},
		{-300, 210},
	}
	for _, tt := range tests {
		if got, want := g.At(tt.in), g.At(tt.mirror); got != want {
			t.Errorf("At(%v) = %v, want At(%v) = %v", tt.in, got, tt.mirror, want)
		}
	}

	// Mirroring must differ from clamping near the edges.
	if g.At(265) == g.At(255) {
		t.Error("At(265) equals At(255); gradient clamps instead of reflecting")
	}
}

func TestGradientNonFinite(t *testing.T) {
	c := Colors{rgb(1, 2, 3), rgb(4, 5, 6), rgb(7, 8, 9)}
	g := NewGradient(c)
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := g.At(v); got != c[0] {
			t.Errorf("At(%v) = %v, want %v", v, got, c[0])
		}
	}
}
