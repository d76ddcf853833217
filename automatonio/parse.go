// Package automatonio reads and writes the text DFA format described in
// original_source/inout.c: whitespace-delimited integers and single-char
// alphabet symbols, decoded into an automaton.DFA and rendered back out
// in the reference tool's own column layout.
package automatonio

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/CyberCzar01/dfamin/automaton"
)

// Compression names the transparent decompression to apply to a Parse
// input stream, selected by file extension in cmd/dfamin or forced by
// the -z/-Z flags when reading stdin.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
)

// DetectCompression maps a filename's extension to a Compression, or
// CompressionNone for anything else.
func DetectCompression(filename string) Compression {
	switch {
	case strings.HasSuffix(filename, ".gz"):
		return CompressionGzip
	case strings.HasSuffix(filename, ".zst"):
		return CompressionZstd
	default:
		return CompressionNone
	}
}

// Parse reads a DFA description from r, applying the given decompression
// first. The grammar (spec.md §6.1 / inout.c's input_dfa) is:
//
//	NSTATES NAB
//	L1 L2 ... L(NAB)             alphabet symbols, one non-whitespace rune each
//	S1,1 ... S1,NAB              NSTATES rows of NAB transition targets, -1 = none
//	...
//	SNSTATES,1 ... SNSTATES,NAB
//	A1 A2 ... Am                 zero or more accept states, to EOF
//
// All fields are 0-based externally. Input is assumed well-formed beyond
// the checks below, matching the reference parser's "partial checks
// only" contract.
func Parse(r io.Reader, c Compression) (*automaton.DFA, error) {
	switch c {
	case CompressionGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("automatonio: gzip: %w", err)
		}
		defer zr.Close()
		r = zr
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("automatonio: zstd: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)

	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		return sc.Text(), true
	}
	nextInt := func(what string) (int, error) {
		tok, ok := next()
		if !ok {
			return 0, fmt.Errorf("automatonio: unexpected end of input while reading %s", what)
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return 0, fmt.Errorf("automatonio: %s: %q is not an integer", what, tok)
		}
		return v, nil
	}

	nstates, err := nextInt("state count")
	if err != nil {
		return nil, err
	}
	nab, err := nextInt("alphabet size")
	if err != nil {
		return nil, err
	}
	if nstates < 1 {
		return nil, fmt.Errorf("automatonio: nonsensical number of states (%d)", nstates)
	}
	if nab < 1 {
		return nil, fmt.Errorf("automatonio: nonsensical number of alphabet symbols (%d)", nab)
	}

	d := automaton.New(nstates, nab)

	for j := 0; j < nab; j++ {
		tok, ok := next()
		if !ok {
			return nil, fmt.Errorf("automatonio: unexpected end of input while reading alphabet symbol %d", j)
		}
		if len([]rune(tok)) != 1 {
			return nil, fmt.Errorf("automatonio: alphabet symbol %q is not a single character", tok)
		}
		d.Alphabet[j] = []rune(tok)[0]
	}

	for i := 0; i < nstates; i++ {
		for j := 0; j < nab; j++ {
			s, err := nextInt(fmt.Sprintf("transition[%d][%d]", i, j))
			if err != nil {
				return nil, err
			}
			if s < -1 || s >= nstates {
				return nil, fmt.Errorf("automatonio: transition target state (%d) out of range [-1, %d)", s, nstates)
			}
			if s >= 0 {
				d.SetTransition(i+1, j+1, int32(s+1))
			}
		}
	}

	for {
		tok, ok := next()
		if !ok {
			break
		}
		s, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("automatonio: accept state: %q is not an integer", tok)
		}
		if s < 0 || s >= nstates {
			return nil, fmt.Errorf("automatonio: accept state (%d) out of range", s)
		}
		d.MarkAccept(int32(s + 1))
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("automatonio: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}
