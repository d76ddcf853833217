// Command dfamin reads one or more DFA descriptions and prints each,
// minimized, to standard output.
//
// Synopsis:
//
//	dfamin [flags] [dfa_1 ... dfa_N]
//
// When no filename arguments are given, standard input is read as a
// single DFA description.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/CyberCzar01/dfamin/automaton"
	"github.com/CyberCzar01/dfamin/automatonio"
)

func main() {
	dotFlag := flag.Bool("dot", false, "also emit a Graphviz DOT rendering of the minimized DFA")
	statsFlag := flag.Bool("stats", false, "also emit a YAML summary of the minimization")
	fingerprintFlag := flag.Bool("fingerprint", false, "log a blake2b fingerprint of the minimized DFA")
	gzipFlag := flag.Bool("z", false, "treat stdin as gzip-compressed")
	zstdFlag := flag.Bool("Z", false, "treat stdin as zstd-compressed")
	workers := flag.Int("workers", 1, "number of files to process concurrently")
	debugPartition := flag.Bool("debug-partition", false, "dump the classes of the minimized DFA's states (one per state); no per-sweep dump")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	runID := uuid.NewString()
	logger = logger.With("run", runID)

	cfg := config{
		dot:            *dotFlag,
		stats:          *statsFlag,
		fingerprint:    *fingerprintFlag,
		gzip:           *gzipFlag,
		zstd:           *zstdFlag,
		debugPartition: *debugPartition,
		workers:        *workers,
	}

	args := flag.Args()
	if len(args) == 0 {
		args = []string{""} // "" denotes stdin
	}

	if cfg.workers < 1 {
		cfg.workers = 1
	}

	exitCode := run(context.Background(), logger, args, cfg)
	os.Exit(exitCode)
}

type config struct {
	dot            bool
	stats          bool
	fingerprint    bool
	gzip           bool
	zstd           bool
	debugPartition bool
	workers        int
}

// run processes each of args (filenames, or "" for stdin) and returns
// the process exit code: 0 if every file minimized cleanly, 1 if any
// file failed. Files are fanned out across cfg.workers goroutines, but
// each file's minimization is independent and sequential internally, so
// concurrency here only overlaps I/O and one file's failure never
// aborts the others.
func run(ctx context.Context, logger *slog.Logger, args []string, cfg config) int {
	results := make([]bool, len(args))
	sem := make(chan struct{}, cfg.workers)
	var wg sync.WaitGroup

	var mu sync.Mutex // serializes stdout writes across workers
	for i, name := range args {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, name string) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = processFile(logger, name, cfg, &mu)
		}(i, name)
	}
	wg.Wait()

	for _, ok := range results {
		if !ok {
			return 1
		}
	}
	return 0
}

// processFile handles one filename (or stdin for ""), recovering from
// any internal panic so a single malformed or pathological file cannot
// abort a batch run.
func processFile(logger *slog.Logger, name string, cfg config, mu *sync.Mutex) (ok bool) {
	label := name
	if label == "" {
		label = "<stdin>"
	}
	fileLogger := logger.With("file", label)

	defer func() {
		if r := recover(); r != nil {
			fileLogger.Error("internal error while minimizing", "panic", r)
			ok = false
		}
	}()

	var in *os.File = os.Stdin
	if name != "" {
		f, err := os.Open(name)
		if err != nil {
			fileLogger.Error("cannot open file", "error", err)
			return false
		}
		defer f.Close()
		in = f
	}

	comp := automatonio.CompressionNone
	if name != "" {
		comp = automatonio.DetectCompression(name)
	} else if cfg.zstd {
		comp = automatonio.CompressionZstd
	} else if cfg.gzip {
		comp = automatonio.CompressionGzip
	}

	original, err := automatonio.Parse(in, comp)
	if err != nil {
		fileLogger.Error("failed to parse DFA", "error", err)
		return false
	}

	mu.Lock()
	defer mu.Unlock()
	fmt.Printf("\n------- Original  DFA -------\n\n")
	_ = automatonio.Format(os.Stdout, original)

	minimized, err := automaton.Minimize(original)
	if err != nil {
		fileLogger.Error("failed to minimize DFA", "error", err)
		return false
	}

	fmt.Printf("\n\n------- Minimized DFA -------\n\n")
	_ = automatonio.Format(os.Stdout, minimized)

	if cfg.dot {
		_ = automatonio.FormatDOT(os.Stdout, minimized)
	}
	if cfg.stats {
		_ = automatonio.FormatStats(os.Stdout, automatonio.Stats{
			StatesBefore: original.NStates,
			StatesAfter:  minimized.NStates,
			DeadStates:   countDead(minimized),
			Fingerprint:  fmt.Sprintf("%x", automaton.Fingerprint(minimized)),
		})
	}

	if cfg.fingerprint {
		fileLogger.Info("minimized", "fingerprint", fmt.Sprintf("%x", automaton.Fingerprint(minimized)))
	}
	if cfg.debugPartition {
		// automaton.Minimize doesn't return its intermediate partition
		// vector, so the dump here reflects the final, already-compressed
		// classes (each one a singleton by construction) rather than a
		// mid-refinement snapshot.
		automaton.DumpPartition(os.Stdout, minimized, make([]int32, minimized.NStates+1))
	}

	return true
}

func countDead(d *automaton.DFA) int {
	n := 0
	for s := 1; s <= d.NStates; s++ {
		if d.IsDead(int32(s)) {
			n++
		}
	}
	return n
}
