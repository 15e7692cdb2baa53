// Package dataset reads float sequences from text input.
//
// Values are separated by whitespace or commas. Blank lines are ignored and
// lines starting with '#' are comments.
package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

const (
	// MaxLineSize bounds a single input line, which may hold a whole
	// comma-separated dataset.
	MaxLineSize = 64 << 20
)

var ErrInvalidValue = errors.New("invalid value")

func isSeparator(r rune) bool {
	return r == ',' || r == ' ' || r == '\t' || r == '\r'
}

// Read parses all values from r. On success the result is never nil, even if
// r contains no values.
func Read(r io.Reader) ([]float64, error) {
	fs := []float64{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), MaxLineSize)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		for _, tok := range strings.FieldsFunc(s, isSeparator) {
			f, err := strconv.ParseFloat(tok, 64)
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, fmt.Errorf("line %d: %w: %q", line, ErrInvalidValue, tok)
			}
			fs = append(fs, f)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return fs, nil
}

func ReadFile(name string) ([]float64, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	fs, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return fs, nil
}
