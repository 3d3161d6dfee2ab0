package search

import (
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/canvaslab/placetrace/pkg/canvas"
	"github.com/canvaslab/placetrace/pkg/geometry"
)

// lineQueueDepth bounds the producer/worker channel so a fast reader
// cannot buffer a multi-gigabyte log in memory.
const lineQueueDepth = 2048

// Logger abstracts logging so callers can use logrus, stdlib log, or
// any other logger that satisfies this interface.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// nopLogger silently discards all messages.
type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Debugf(string, ...interface{}) {}

// Scanner runs the candidate-narrowing passes over a canvas-history
// log. Each pass reads the log once, sequentially, and fans lines out
// to a worker pool; the shared candidate table is the only mutable
// cross-worker state and is guarded by a single mutex with
// per-mutation critical sections.
type Scanner struct {
	Areas []Area

	// Restrict enables the exclusion pass: authors with any activity
	// outside every configured region are evicted.
	Restrict bool

	Workers int    // defaults to 2x CPUs if <= 0
	Log     Logger // optional; nil = no logging
}

// Run executes the inclusion pass, the optional exclusion pass, and
// the reduction, in that fixed order. The exclusion pass must see the
// complete inclusion population because its eviction is unconditional.
// It returns the candidate author ids in a stable (sorted) order; an
// empty result is a normal terminal outcome, not an error.
func (s *Scanner) Run(path string, era canvas.Era) ([]string, error) {
	log := s.Log
	if log == nil {
		log = nopLogger{}
	}

	table := make(map[string]map[geometry.Rect]struct{})
	var mu sync.Mutex

	// Pass A: record, per author, the set of area regions touched.
	err := s.pass(path, era, log, func(rec *canvas.Record) {
		for _, a := range s.Areas {
			if !a.Matches(rec) {
				continue
			}
			mu.Lock()
			set, ok := table[rec.User]
			if !ok {
				set = make(map[geometry.Rect]struct{})
				table[rec.User] = set
			}
			set[a.Region] = struct{}{}
			mu.Unlock()
		}
	})
	if err != nil {
		return nil, err
	}
	log.Debugf("inclusion pass finished with %d authors", len(table))

	// Pass B: evict authors with any placement outside every region.
	// Spatial only; an event outside a region's time window or color
	// set still counts as inside activity. Once evicted, an author
	// cannot re-enter.
	if s.Restrict {
		err := s.pass(path, era, log, func(rec *canvas.Record) {
			for _, a := range s.Areas {
				if a.ContainsPlacement(rec.Placement) {
					return
				}
			}
			mu.Lock()
			delete(table, rec.User)
			mu.Unlock()
		})
		if err != nil {
			return nil, err
		}
		log.Debugf("exclusion pass finished with %d authors", len(table))
	}

	// Reduction: a candidate must have touched every non-optional
	// region.
	var required []geometry.Rect
	for _, a := range s.Areas {
		if !a.Optional {
			required = append(required, a.Region)
		}
	}
	var candidates []string
	for user, regions := range table {
		covered := true
		for _, r := range required {
			if _, ok := regions[r]; !ok {
				covered = false
				break
			}
		}
		if covered {
			candidates = append(candidates, user)
		}
	}
	sort.Strings(candidates)
	return candidates, nil
}

// pass streams the log through a pool of parsing workers. Parsing and
// matching run outside any lock; handle is responsible for its own
// synchronization. Malformed lines are logged and skipped, a failed
// read of the log itself is fatal for the pass.
func (s *Scanner) pass(path string, era canvas.Era, log Logger, handle func(*canvas.Record)) error {
	workers := s.Workers
	if workers <= 0 {
		// Double the CPU count to keep workers busy while others
		// block on the table mutex.
		workers = runtime.NumCPU() * 2
	}

	lines := make(chan string, lineQueueDepth)
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for line := range lines {
				rec, err := canvas.ParseLine(line, era)
				if err != nil {
					log.Warnf("Malformed line in data: %s", line)
					continue
				}
				handle(rec)
			}
			return nil
		})
	}

	readErr := canvas.EachLine(path, func(_ int, line string) {
		lines <- line
	})
	close(lines)
	if err := g.Wait(); err != nil {
		return err
	}
	return readErr
}
