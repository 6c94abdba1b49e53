// SPDX-License-Identifier: MIT

// Package chain - coordinate text-format loader.
//
// Grammar (whitespace-separated, 0-based indices):
//
//	line 1:    <ignored> <num_transitions>
//	line 2..:  <col> <row> <value>
//
// The first header field is whatever the producing tool wrote there (often a
// state count or a comment token); only the transition count is trusted.
// Data lines beyond num_transitions are a format error, as is running out of
// input before the count is satisfied. Zero-valued entries are dropped.

package chain

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/mcagg/matrix"
)

// headerFields and entryFields pin the expected token counts per line kind.
const (
	headerFields = 2
	entryFields  = 3
)

// Load parses the coordinate format from r and returns a validated Chain.
//
// Implementation:
//   - Stage 1: read the header, trust only the transition count.
//   - Stage 2: read exactly count data lines into triplets, transposing the
//     (col,row) field order into (row,col) storage — see doc.go. Track the
//     largest index to infer the dimension.
//   - Stage 3: build the CSC, then run the full New validation.
//
// Errors:
//   - ErrBadFormat     (structure: fields, numbers, counts),
//   - ErrBadIndex      (negative state index),
//   - ErrNegativeEntry (negative probability),
//   - ErrNotStochastic (column mass off 1) via New.
//
// Complexity: O(count log count) from the CSC build.
func Load(r io.Reader) (*Chain, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	count, err := readHeader(sc)
	if err != nil {
		return nil, err
	}

	entries := make([]matrix.Triplet, 0, count)
	dim := 0

	var line int
	for line = 0; line < count; line++ {
		if !sc.Scan() {
			if err = sc.Err(); err != nil {
				return nil, fmt.Errorf("chain.Load: line %d: %w", line+2, err)
			}
			return nil, fmt.Errorf("chain.Load: expected %d transitions, got %d: %w", count, line, ErrBadFormat)
		}

		col, row, val, perr := parseEntry(sc.Text(), line+2)
		if perr != nil {
			return nil, perr
		}

		if row+1 > dim {
			dim = row + 1
		}
		if col+1 > dim {
			dim = col + 1
		}
		if val == 0 {
			continue // documented: zero entries are dropped
		}
		entries = append(entries, matrix.Triplet{Row: row, Col: col, Val: val})
	}

	// Trailing non-blank content means the header count lied.
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			return nil, fmt.Errorf("chain.Load: data beyond %d declared transitions: %w", count, ErrBadFormat)
		}
	}
	if err = sc.Err(); err != nil {
		return nil, fmt.Errorf("chain.Load: %w", err)
	}
	if dim == 0 {
		return nil, fmt.Errorf("chain.Load: no transitions: %w", ErrBadFormat)
	}

	p, err := matrix.NewCSC(dim, dim, entries)
	if err != nil {
		return nil, err
	}

	return New(p)
}

// LoadFile opens path and delegates to Load.
func LoadFile(path string) (*Chain, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("chain.LoadFile: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// readHeader consumes the first non-blank line and extracts the transition
// count (field 2 of 2; field 1 is ignored by design).
func readHeader(sc *bufio.Scanner) (int, error) {
	for sc.Scan() {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != headerFields {
			return 0, fmt.Errorf("chain.Load: header %q: want %d fields: %w", text, headerFields, ErrBadFormat)
		}
		count, err := strconv.Atoi(fields[1])
		if err != nil || count < 0 {
			return 0, fmt.Errorf("chain.Load: header count %q: %w", fields[1], ErrBadFormat)
		}

		return count, nil
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("chain.Load: %w", err)
	}

	return 0, fmt.Errorf("chain.Load: missing header: %w", ErrBadFormat)
}

// parseEntry splits one "col row value" data line. lineNo is 1-based within
// the file and used only for error context.
func parseEntry(text string, lineNo int) (col, row int, val float64, err error) {
	fields := strings.Fields(text)
	if len(fields) != entryFields {
		return 0, 0, 0, fmt.Errorf("chain.Load: line %d %q: want %d fields: %w", lineNo, text, entryFields, ErrBadFormat)
	}

	if col, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, 0, fmt.Errorf("chain.Load: line %d col %q: %w", lineNo, fields[0], ErrBadFormat)
	}
	if row, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, 0, fmt.Errorf("chain.Load: line %d row %q: %w", lineNo, fields[1], ErrBadFormat)
	}
	if val, err = strconv.ParseFloat(fields[2], 64); err != nil {
		return 0, 0, 0, fmt.Errorf("chain.Load: line %d value %q: %w", lineNo, fields[2], ErrBadFormat)
	}
	if col < 0 || row < 0 {
		return 0, 0, 0, fmt.Errorf("chain.Load: line %d (%d,%d): %w", lineNo, col, row, ErrBadIndex)
	}
	if val < 0 {
		return 0, 0, 0, fmt.Errorf("chain.Load: line %d value %g: %w", lineNo, val, ErrNegativeEntry)
	}

	return col, row, val, nil
}
