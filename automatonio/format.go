package automatonio

import (
	"fmt"
	"io"

	"sigs.k8s.io/yaml"

	"github.com/CyberCzar01/dfamin/automaton"
)

// Format renders d in the reference tool's column layout: a header row
// of alphabet symbols, one row per non-dead state (attribute-letter
// prefix, external id, then one column per symbol showing the target's
// attribute+id or "-" for none), followed by the initial-state line. If
// every state turns out dead, the header row is followed only by the
// single "DFA minimized to EMPTY DFA..." line, exactly mirroring
// inout.c's output_dfa and its "empty" flag.
func Format(w io.Writer, d *automaton.DFA) error {
	if d.NStates == 0 {
		_, err := fmt.Fprintln(w, "Empty DFA")
		return err
	}

	bw := &errWriter{w: w}

	bw.printf("%9s", "")
	for j := 0; j < d.NAB; j++ {
		bw.printf("%-5c", d.Alphabet[j])
	}
	bw.printf("\n")

	empty := true
	for s := 1; s <= d.NStates; s++ {
		if d.IsDead(int32(s)) {
			continue
		}
		empty = false
		bw.printf("\n%c%-8d", attribLetter(d, int32(s)), s-1)
		for j := 1; j <= d.NAB; j++ {
			t := d.Transitions[s][j]
			if t <= 0 || d.IsDead(t) {
				bw.printf("%-5c", '-')
			} else {
				bw.printf("%c%-4d", attribLetter(d, t), t-1)
			}
		}
	}

	if empty {
		bw.printf("DFA minimized to EMPTY DFA...\n")
	} else {
		bw.printf("\n\nInitial state: %c%d\n", attribLetter(d, d.InitState), d.InitState-1)
	}
	return bw.err
}

func attribLetter(d *automaton.DFA, s int32) byte {
	switch d.Attrib[s] {
	case automaton.AttribAccept:
		return 'A'
	case automaton.AttribDead:
		return 'D'
	default:
		return 's'
	}
}

// errWriter lets Format's many Fprintf calls skip individual error
// checks; the first error short-circuits the rest and is surfaced once.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

// Stats is the supplemental machine-readable summary emitted by the
// CLI's -stats flag: state counts before/after minimization, dead-state
// count, sweep count, and a fingerprint of the minimized DFA. The CLI
// does not fill in Sweeps (Minimize does not return its sweep count),
// so it is emitted as 0. Not part of the
// reference tool's output format; addressed at pipelines that want to
// diff minimization runs without parsing Format's text layout.
type Stats struct {
	StatesBefore int    `json:"statesBefore"`
	StatesAfter  int    `json:"statesAfter"`
	DeadStates   int    `json:"deadStates"`
	Sweeps       int    `json:"sweeps"`
	Fingerprint  string `json:"fingerprint"`
}

// FormatStats marshals s as YAML to w.
func FormatStats(w io.Writer, s Stats) error {
	b, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("automatonio: marshal stats: %w", err)
	}
	_, err = w.Write(b)
	return err
}

// FormatDOT emits a Graphviz rendering of d, delegating to
// automaton.ExportDOT. Supplemental visual-debugging output, gated
// behind the CLI's -dot flag.
func FormatDOT(w io.Writer, d *automaton.DFA) error {
	automaton.ExportDOT(w, d)
	return nil
}
