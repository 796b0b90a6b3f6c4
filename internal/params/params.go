// Package params parses the compact textual render settings used by the
// command line and the HTTP API ("1200x1200", "0.0,0.0", "-0.4,0.6") into
// a validated juliafatou.Job.
package params

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/marben/juliafatou"
	"github.com/marben/juliafatou/palette"
)

// Request is the textual form of a render job.
type Request struct {
	Dimensions string  `json:"dimensions"`
	Output     string  `json:"output_file,omitempty"`
	Offset     string  `json:"offset"`
	Scale      float64 `json:"scale"`
	Blur       float32 `json:"blur"`
	Power      uint    `json:"power"`
	Factor     float64 `json:"factor"`
	ColorStyle string  `json:"color_style"`
	ColorFile  string  `json:"color_file,omitempty"`
	Diverge    float64 `json:"diverge"`
	Complex    string  `json:"complex"`
	// Preset names a Julia constant and overrides Complex when set.
	Preset    string  `json:"preset,omitempty"`
	Intensity float64 `json:"intensity"`
	Inverse   bool    `json:"inverse"`
	Threads   int     `json:"threads,omitempty"`
}

// Default returns the request form of juliafatou.DefaultJob.
func Default() Request {
	job := juliafatou.DefaultJob()
	return Request{
		Dimensions: FormatDimensions(job.Width, job.Height),
		Output:     job.Output,
		Offset:     FormatPair(job.OffsetX, job.OffsetY),
		Scale:      job.Scale,
		Blur:       job.Blur,
		Power:      job.Power,
		Factor:     job.Factor,
		ColorStyle: job.Style.String(),
		Diverge:    job.Diverge,
		Complex:    FormatPair(real(job.C), imag(job.C)),
		Intensity:  job.Intensity,
		Inverse:    job.Invert,
		Threads:    job.Threads,
	}
}

// Job converts r into a validated job.
func (r Request) Job() (juliafatou.Job, error) {
	job := juliafatou.DefaultJob()

	var err error
	if job.Width, job.Height, err = ParseDimensions(r.Dimensions); err != nil {
		return juliafatou.Job{}, err
	}
	if job.OffsetX, job.OffsetY, err = ParsePair("offset", r.Offset); err != nil {
		return juliafatou.Job{}, err
	}
	if r.Preset != "" {
		p, err := juliafatou.LookupPreset(r.Preset)
		if err != nil {
			return juliafatou.Job{}, err
		}
		job.C = p.C
	} else {
		re, im, err := ParsePair("complex", r.Complex)
		if err != nil {
			return juliafatou.Job{}, err
		}
		job.C = complex(re, im)
	}
	if job.Style, err = palette.ParseStyle(r.ColorStyle); err != nil {
		return juliafatou.Job{}, fmt.Errorf("%w: %w", juliafatou.ErrConfig, err)
	}

	job.Output = r.Output
	job.Scale = r.Scale
	job.Blur = r.Blur
	job.Power = r.Power
	job.Factor = r.Factor
	job.ColorFile = r.ColorFile
	job.Diverge = r.Diverge
	job.Intensity = r.Intensity
	job.Invert = r.Inverse
	job.Threads = r.Threads

	if err := job.Validate(); err != nil {
		return juliafatou.Job{}, err
	}
	return job, nil
}

// ParseDimensions parses "WIDTHxHEIGHT".
func ParseDimensions(s string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("%w: dimensions %q: want WIDTHxHEIGHT", juliafatou.ErrConfig, s)
	}
	if w, err = strconv.Atoi(strings.TrimSpace(ws)); err != nil {
		return 0, 0, fmt.Errorf("%w: dimensions %q: %w", juliafatou.ErrConfig, s, err)
	}
	if h, err = strconv.Atoi(strings.TrimSpace(hs)); err != nil {
		return 0, 0, fmt.Errorf("%w: dimensions %q: %w", juliafatou.ErrConfig, s, err)
	}
	return w, h, nil
}

// FormatDimensions is the inverse of ParseDimensions.
func FormatDimensions(w, h int) string {
	return fmt.Sprintf("%dx%d", w, h)
}

// ParsePair parses "A,B" into two floats. name is used in errors.
func ParsePair(name, s string) (a, b float64, err error) {
	as, bs, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s %q: want two comma separated numbers", juliafatou.ErrConfig, name, s)
	}
	if a, err = strconv.ParseFloat(strings.TrimSpace(as), 64); err != nil {
		return 0, 0, fmt.Errorf("%w: %s %q: %w", juliafatou.ErrConfig, name, s, err)
	}
	if b, err = strconv.ParseFloat(strings.TrimSpace(bs), 64); err != nil {
		return 0, 0, fmt.Errorf("%w: %s %q: %w", juliafatou.ErrConfig, name, s, err)
	}
	return a, b, nil
}

// FormatPair is the inverse of ParsePair.
func FormatPair(a, b float64) string {
	return strconv.FormatFloat(a, 'g', -1, 64) + "," + strconv.FormatFloat(b, 'g', -1, 64)
}

// FromQuery overrides the fields of base that are present in q.
// Keys are the JSON names of Request.
func FromQuery(q url.Values, base Request) (Request, error) {
	r := base
	str := map[string]*string{
		"dimensions":  &r.Dimensions,
		"offset":      &r.Offset,
		"color_style": &r.ColorStyle,
		"complex":     &r.Complex,
		"preset":      &r.Preset,
	}
	for k, p := range str {
		if q.Has(k) {
			*p = q.Get(k)
		}
	}

	floats := map[string]*float64{
		"scale":     &r.Scale,
		"factor":    &r.Factor,
		"diverge":   &r.Diverge,
		"intensity": &r.Intensity,
	}
	for k, p := range floats {
		if !q.Has(k) {
			continue
		}
		v, err := strconv.ParseFloat(q.Get(k), 64)
		if err != nil {
			return Request{}, fmt.Errorf("%w: %s: %w", juliafatou.ErrConfig, k, err)
		}
		*p = v
	}

	if q.Has("blur") {
		v, err := strconv.ParseFloat(q.Get("blur"), 32)
		if err != nil {
			return Request{}, fmt.Errorf("%w: blur: %w", juliafatou.ErrConfig, err)
		}
		r.Blur = float32(v)
	}
	if q.Has("power") {
		v, err := strconv.ParseUint(q.Get("power"), 10, 0)
		if err != nil {
			return Request{}, fmt.Errorf("%w: power: %w", juliafatou.ErrConfig, err)
		}
		r.Power = uint(v)
	}
	if q.Has("threads") {
		v, err := strconv.Atoi(q.Get("threads"))
		if err != nil {
			return Request{}, fmt.Errorf("%w: threads: %w", juliafatou.ErrConfig, err)
		}
		r.Threads = v
	}
	if q.Has("inverse") {
		v, err := strconv.ParseBool(q.Get("inverse"))
		if err != nil {
			return Request{}, fmt.Errorf("%w: inverse: %w", juliafatou.ErrConfig, err)
		}
		r.Inverse = v
	}
	return r, nil
}
