package palette

import (
	"bufio"
	"crypto/rand"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// DefaultColorFile is read by Config when no path is given.
const DefaultColorFile = "colors.csv"

// ErrColorFile is returned for unreadable or malformed colour files.
var ErrColorFile = errors.New("bad color file")

// Source produces the three gradient colours. File and random sources
// have side effects, so a Source is resolved once per render and the
// resulting Colors are shared by the workers.
type Source interface {
	Colors() (Colors, error)
}

// FixedSource is a built-in palette.
type FixedSource Colors

func (f FixedSource) Colors() (Colors, error) { return Colors(f), nil }

// FileSource reads the colours from a CSV file: one header line, then
// exactly three "r,g,b" rows.
type FileSource string

func (f FileSource) Colors() (Colors, error) {
	path := string(f)
	if path == "" {
		path = DefaultColorFile
	}
	file, err := os.Open(path)
	if err != nil {
		return Colors{}, fmt.Errorf("%w: %w", ErrColorFile, err)
	}
	defer file.Close()

	c, err := ReadColors(file)
	if err != nil {
		return Colors{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// RandomSource draws nine bytes from Reader, or from crypto/rand when
// Reader is nil, and groups them into three colours.
type RandomSource struct {
	Reader io.Reader
}

func (s RandomSource) Colors() (Colors, error) {
	r := s.Reader
	if r == nil {
		r = rand.Reader
	}
	var b [9]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return Colors{}, fmt.Errorf("random colors: %w", err)
	}
	return Colors{
		rgb(b[0], b[1], b[2]),
		rgb(b[3], b[4], b[5]),
		rgb(b[6], b[7], b[8]),
	}, nil
}

// Source returns the colour source for s. path is only used by Config.
func (s Style) Source(path string) (Source, error) {
	switch s {
	case Config:
		return FileSource(path), nil
	case Random:
		return RandomSource{}, nil
	}
	c, ok := fixed[s]
	if !ok {
		return nil, fmt.Errorf("unknown color style %d", int(s))
	}
	return FixedSource(c), nil
}

// ReadColors parses the colour file format from r.
// The first line is the header and is skipped even when it is blank.
func ReadColors(r io.Reader) (Colors, error) {
	br := bufio.NewReader(r)
	if _, err := br.ReadString('\n'); err != nil && err != io.EOF {
		return Colors{}, fmt.Errorf("%w: %w", ErrColorFile, err)
	}
	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return Colors{}, fmt.Errorf("%w: %w", ErrColorFile, err)
	}
	if len(rows) != 3 {
		return Colors{}, fmt.Errorf("%w: want 3 color rows, got %d", ErrColorFile, len(rows))
	}

	var c Colors
	for i, row := range rows {
		if len(row) != 3 {
			return Colors{}, fmt.Errorf("%w: row %d: want r,g,b, got %q", ErrColorFile, i+1, strings.Join(row, ","))
		}
		var ch [3]uint8
		for j, field := range row {
			v, err := strconv.ParseUint(strings.TrimSpace(field), 10, 8)
			if err != nil {
				return Colors{}, fmt.Errorf("%w: row %d: %w", ErrColorFile, i+1, err)
			}
			ch[j] = uint8(v)
		}
		c[i] = rgb(ch[0], ch[1], ch[2])
	}
	return c, nil
}

// WriteColors writes c in the colour file format, so random palettes can
// be saved and reused with Config.
func WriteColors(w io.Writer, c Colors) error {
	cw := csv.NewWriter(w)
	records := [][]string{{"R", "G", "B"}}
	for _, col := range c {
		records = append(records, []string{
			strconv.Itoa(int(col.R)),
			strconv.Itoa(int(col.G)),
			strconv.Itoa(int(col.B)),
		})
	}
	return cw.WriteAll(records)
}
