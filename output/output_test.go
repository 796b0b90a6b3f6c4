package output

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/marben/juliafatou"
)

func checkerboard(w, h int) *juliafatou.RGB {
	img := juliafatou.NewRGB(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				i := img.PixOffset(x, y)
				img.Pix[i], img.Pix[i+1], img.Pix[i+2] = 255, 128, 10
			}
		}
	}
	return img
}

func TestGaussianKernel(t *testing.T) {
	for _, sigma := range []float64{0.5, 1.5, 3} {
		k := GaussianKernel(sigma)
		if want := 2*int(math.Ceil(sigma*3)) + 1; k.Width != want || k.Height != 1 {
			t.Errorf("sigma %v: kernel %dx%d, want %dx1", sigma, k.Width, k.Height, want)
		}
		sum := 0.0
		for _, v := range k.Matrix {
			sum += v
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("sigma %v: kernel sums to %v, want 1", sigma, sum)
		}
		mid := k.Width / 2
		for i := 0; i < mid; i++ {
			if k.Matrix[i] != k.Matrix[k.Width-1-i] {
				t.Errorf("sigma %v: kernel is not symmetric at %d", sigma, i)
			}
			if k.Matrix[i] > k.Matrix[i+1] {
				t.Errorf("sigma %v: kernel does not peak in the middle", sigma)
			}
		}
	}
}

func TestBlurNoBlurIsIdentity(t *testing.T) {
	img := checkerboard(9, 7)
	orig := bytes.Clone(img.Pix)

	got := Blur(img, juliafatou.NoBlur)
	if got != img {
		t.Error("NoBlur returned a different image")
	}
	if !bytes.Equal(got.Pix, orig) {
		t.Error("NoBlur changed the pixels")
	}
}

func TestBlurSmooths(t *testing.T) {
	img := checkerboard(20, 20)
	got := Blur(img, 2)

	if got.Rect != img.Rect || len(got.Pix) != len(img.Pix) {
		t.Fatalf("blurred image is %v with %d bytes, want %v with %d", got.Rect, len(got.Pix), img.Rect, len(img.Pix))
	}
	// A checkerboard averages out to about half intensity.
	c := got.RGBAAt(10, 10)
	if c.R < 110 || c.R > 145 {
		t.Errorf("blurred red = %d, want about 127", c.R)
	}
	if c.B > 10 {
		t.Errorf("blurred blue = %d, want at most 10", c.B)
	}
}

func TestBlurUniformStaysUniform(t *testing.T) {
	img := juliafatou.NewRGB(12, 8)
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	got := Blur(img, 1.7)
	for i, v := range got.Pix {
		if v != 200 {
			t.Fatalf("byte %d = %d, want 200", i, v)
		}
	}
}

func TestBlurKeepsBrightness(t *testing.T) {
	img := juliafatou.NewRGB(31, 31)
	img.SetRGB(15, 15, color.RGBA{255, 255, 255, 255})

	got := Blur(img, 2)
	sum := 0
	for i := 0; i < len(got.Pix); i += 3 {
		sum += int(got.Pix[i])
	}
	// Rounding only drops the faint tail of the kernel.
	if sum < 245 || sum > 265 {
		t.Errorf("blurred impulse sums to %d, want about 255", sum)
	}
	if c := got.RGBAAt(15, 15); c.R == 0 || c.R == 255 {
		t.Errorf("center = %d, want it spread out", c.R)
	}
}

func TestOuterKernel(t *testing.T) {
	k := GaussianKernel(1.5)
	sq := outer(k)
	if sq.Width != k.Width || sq.Height != k.Width {
		t.Fatalf("outer kernel is %dx%d, want %dx%d", sq.Width, sq.Height, k.Width, k.Width)
	}
	sum := 0.0
	for _, v := range sq.Matrix {
		sum += v
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("outer kernel sums to %v, want 1", sum)
	}
}

func TestEncodePNG(t *testing.T) {
	img := checkerboard(5, 3)
	var buf bytes.Buffer
	if err := Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	dec, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if dec.Bounds() != img.Rect {
		t.Fatalf("bounds = %v, want %v", dec.Bounds(), img.Rect)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			r, g, b, a := dec.At(x, y).RGBA()
			want := img.RGBAAt(x, y)
			if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B || a != 0xffff {
				t.Errorf("pixel (%d,%d) = %v,%v,%v,%v want %v", x, y, r>>8, g>>8, b>>8, a>>8, want)
			}
		}
	}
}

func TestFormatFor(t *testing.T) {
	tests := map[string]Format{
		"out.png":       PNG,
		"out.PNG":       PNG,
		"out":           PNG,
		"out.webp":      PNG,
		"dir.d/out":     PNG,
		"out.jpg":       JPEG,
		"out.jpeg":      JPEG,
		"out.gif":       GIF,
		"out.bmp":       BMP,
		"out.tif":       TIFF,
		"a/b/out.tiff":  TIFF,
		"out.tiff.copy": PNG,
	}
	for path, want := range tests {
		if got := FormatFor(path); got != want {
			t.Errorf("FormatFor(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	img := checkerboard(6, 4)

	t.Run("png", func(t *testing.T) {
		path := filepath.Join(dir, "out.png")
		if err := Save(path, img); err != nil {
			t.Fatal(err)
		}
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		dec, err := png.Decode(f)
		if err != nil {
			t.Fatal(err)
		}
		if dec.Bounds() != img.Rect {
			t.Errorf("bounds = %v, want %v", dec.Bounds(), img.Rect)
		}
	})

	t.Run("bmp", func(t *testing.T) {
		path := filepath.Join(dir, "out.bmp")
		if err := Save(path, img); err != nil {
			t.Fatal(err)
		}
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		if _, err := bmp.Decode(f); err != nil {
			t.Errorf("bmp.Decode: %v", err)
		}
	})

	t.Run("tiff", func(t *testing.T) {
		path := filepath.Join(dir, "out.tif")
		if err := Save(path, img); err != nil {
			t.Fatal(err)
		}
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		if _, err := tiff.Decode(f); err != nil {
			t.Errorf("tiff.Decode: %v", err)
		}
	})

	t.Run("unknown extension is png", func(t *testing.T) {
		path := filepath.Join(dir, "out.webp")
		if err := Save(path, img); err != nil {
			t.Fatal(err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := png.Decode(bytes.NewReader(data)); err != nil {
			t.Errorf("png.Decode: %v", err)
		}
	})

	t.Run("missing directory leaves nothing behind", func(t *testing.T) {
		path := filepath.Join(dir, "missing", "out.png")
		if err := Save(path, img); err == nil {
			t.Fatal("Save into a missing directory should fail")
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("output exists after failure: %v", err)
		}
	})

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temporary file %s left behind", e.Name())
		}
	}
}

func TestThumbnail(t *testing.T) {
	tests := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{100, 50, 20, 20, 10},
		{50, 100, 20, 10, 20},
		{10, 10, 20, 10, 10},
		{300, 1, 30, 30, 1},
		{40, 30, 0, 40, 30},
	}
	for _, tt := range tests {
		got := Thumbnail(juliafatou.NewRGB(tt.w, tt.h), tt.max)
		if got.Bounds().Dx() != tt.wantW || got.Bounds().Dy() != tt.wantH {
			t.Errorf("Thumbnail(%dx%d, %d) = %v, want %dx%d", tt.w, tt.h, tt.max, got.Bounds(), tt.wantW, tt.wantH)
		}
	}
}
