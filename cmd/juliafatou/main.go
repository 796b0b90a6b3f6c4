// juliafatou renders a Julia/Fatou image set to a file.
//
//	juliafatou -d 1920x1080 -c eleven -complex -0.4,0.6 -w 3 -blur 0.6 -o julia.png
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/marben/juliafatou"
	"github.com/marben/juliafatou/internal/params"
	"github.com/marben/juliafatou/palette"
	"github.com/marben/juliafatou/render"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

// run parses args, renders the image and saves it.
func run(args []string, stdout io.Writer) error {
	req := params.Default()

	fs := flag.NewFlagSet("juliafatou", flag.ContinueOnError)
	fs.StringVar(&req.Dimensions, "d", req.Dimensions, "image dimensions `WIDTHxHEIGHT`")
	fs.StringVar(&req.Output, "o", req.Output, "output `file`; the extension picks the format (png, jpg, gif, bmp, tif)")
	fs.StringVar(&req.Offset, "offset", req.Offset, "viewport offset `X,Y`")
	fs.Float64Var(&req.Scale, "x", req.Scale, "scale factor, the height of the view in the complex plane")
	blur := fs.Float64("blur", float64(req.Blur), "gaussian blur `sigma`; 1.0 disables blurring")
	fs.UintVar(&req.Power, "w", req.Power, "the `power` x in z^x + c")
	fs.Float64Var(&req.Factor, "f", req.Factor, "blend factor of the secondary julia set")
	fs.StringVar(&req.ColorStyle, "c", req.ColorStyle, "color `style`: "+strings.Join(styleNames(), ", "))
	fs.StringVar(&req.ColorFile, "color-file", "", "CSV `file` for the config style (default "+palette.DefaultColorFile+")")
	fs.Float64Var(&req.Diverge, "diverge", req.Diverge, "difference between the two rendered julia sets")
	fs.StringVar(&req.Complex, "complex", req.Complex, "the constant c in z^x + c as `RE,IM`")
	fs.StringVar(&req.Preset, "preset", "", "named constant overriding -complex: "+strings.Join(juliafatou.PresetNames(), ", "))
	fs.Float64Var(&req.Intensity, "i", req.Intensity, "overall intensity multiplication factor")
	fs.BoolVar(&req.Inverse, "inverse", req.Inverse, "invert the color gradient")
	fs.IntVar(&req.Threads, "threads", 0, "number of render threads (default: available parallelism)")
	takeTime := fs.Bool("take-time", false, "log the render time")
	listPalettes := fs.Bool("palettes", false, "list the built-in palettes and exit")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	req.Blur = float32(*blur)

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	juliafatou.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *listPalettes {
		return printPalettes(stdout)
	}

	job, err := req.Job()
	if err != nil {
		return err
	}

	log.Printf("rendering julia set %dx%d", job.Width, job.Height)
	start := time.Now()
	if err := render.SaveFile(job); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if *takeTime {
		log.Printf("time elapsed: %s", time.Since(start))
	}
	log.Printf("image saved to %q", job.Output)
	return nil
}

func styleNames() []string {
	var names []string
	for _, s := range palette.Styles() {
		names = append(names, s.String())
	}
	return names
}

// printPalettes writes one line per built-in palette with a swatch of
// each of its three colours.
func printPalettes(w io.Writer) error {
	name := lipgloss.NewStyle().Width(12)
	for _, s := range palette.Styles() {
		if !s.Fixed() {
			continue
		}
		src, err := s.Source("")
		if err != nil {
			return err
		}
		colors, err := src.Colors()
		if err != nil {
			return err
		}

		line := name.Render(s.String())
		for _, c := range colors {
			hex, _ := colorful.MakeColor(c)
			swatch := lipgloss.NewStyle().Background(lipgloss.Color(hex.Hex())).Render("    ")
			line += " " + swatch + " " + hex.Hex()
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
