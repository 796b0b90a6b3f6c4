package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunWritesImage(t *testing.T) {
	out := filepath.Join(t.TempDir(), "julia.png")
	args := []string{"-d", "32x24", "-o", out, "-c", "mint", "-threads", "3", "-blur", "0.8", "-take-time"}
	if err := run(args, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 24 {
		t.Errorf("bounds = %v, want 32x24", b)
	}
}

func TestRunRejectsBadConfig(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "julia.png")

	tests := [][]string{
		{"-d", "0x10", "-o", out},
		{"-c", "sepia", "-o", out},
		{"-w", "0", "-o", out},
		{"-c", "config", "-color-file", filepath.Join(dir, "missing.csv"), "-o", out},
		{"-nope"},
	}
	for _, args := range tests {
		if err := run(args, &bytes.Buffer{}); err == nil {
			t.Errorf("run(%q) should fail", args)
		}
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output written despite errors: %v", err)
	}
}

func TestRunColorFile(t *testing.T) {
	dir := t.TempDir()
	colors := filepath.Join(dir, "colors.csv")
	if err := os.WriteFile(colors, []byte("R,G,B\n0,0,0\n255,0,0\n255,255,255\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "julia.bmp")
	if err := run([]string{"-d", "8x8", "-c", "config", "-color-file", colors, "-o", out}, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Error(err)
	}
}

func TestListPalettes(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"-palettes"}, &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, name := range []string{"bookworm", "greyscale", "plasma2", "#ffffff"} {
		if !strings.Contains(out, name) {
			t.Errorf("palette listing lacks %q:\n%s", name, out)
		}
	}
	if strings.Contains(out, "random") {
		t.Error("palette listing includes the random style")
	}
	if n := strings.Count(out, "\n"); n != 10 {
		t.Errorf("%d lines, want 10", n)
	}
}
