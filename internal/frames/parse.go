// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package frames

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// commentMarker starts a comment that runs to the end of the line.
const commentMarker = "#"

// maxLineBytes bounds a single input line. Recorders commonly write a whole
// frame sequence on one line, so the default 64 KiB is too small. Exceeding
// it is a read failure, not a malformed token.
var maxLineBytes = 64 << 20

// ParseSamples reads whitespace-separated floating-point numbers from r in
// file order. Blank lines and text after '#' are ignored. Any token that is
// not a finite float produces a *ParseError.
func ParseSamples(r io.Reader) ([]float64, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var samples []float64
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.Index(text, commentMarker); i >= 0 {
			text = text[:i]
		}
		for _, tok := range strings.Fields(text) {
			v, err := parseToken(tok)
			if err != nil {
				return nil, &ParseError{Line: line, Token: tok, Err: err}
			}
			samples = append(samples, v)
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("reading samples: line %d exceeds %d bytes: %w", line+1, maxLineBytes, err)
		}
		return nil, fmt.Errorf("reading samples: %w", err)
	}
	return samples, nil
}

func parseToken(tok string) (float64, error) {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			return 0, numErr.Err
		}
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("non-finite values cannot be encoded as JSON")
	}
	return v, nil
}
