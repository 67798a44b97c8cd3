// Package bruteforce runs the parallel key-range search: it splits a key
// window into partitions, walks each partition on its own goroutine and
// aggregates the per-worker outcomes.
package bruteforce

import (
	"context"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mahdiidarabi/hashhunt/pkg/curve"
	"github.com/mahdiidarabi/hashhunt/pkg/hash160"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Status is the terminal state of one partition.
type Status int

const (
	StatusExhausted Status = iota
	StatusFound
	StatusCancelled
	StatusFault
)

func (s Status) String() string {
	switch s {
	case StatusExhausted:
		return "exhausted"
	case StatusFound:
		return "found"
	case StatusCancelled:
		return "cancelled"
	case StatusFault:
		return "fault"
	default:
		return "unknown"
	}
}

// Outcome is what a worker reports when it stops.
type Outcome struct {
	Partition Partition
	Status    Status
	Checked   uint64

	// Set when Status is StatusFound.
	Key    *big.Int
	PubKey []byte
	Digest hash160.Digest

	// Set when Status is StatusFault.
	Err error
}

// Observer receives progress callbacks from the workers. Implementations
// must be safe for concurrent use.
type Observer interface {
	BatchDone(keys int)
	PartitionDone(o Outcome)
}

// Job describes one search run. Table and Steps are shared read-only by all
// workers.
type Job struct {
	Table        *curve.Table
	Steps        *curve.StepTable
	Targets      *hash160.TargetSet
	Partitions   []Partition
	Uncompressed bool

	// Strategy produces the keys of each partition. Nil means Batch.
	Strategy Strategy

	// OnFound is called at most once, with the first match, before the
	// remaining workers are told to stop. A returned error fails the run.
	OnFound func(o Outcome) error

	Observer Observer
	Logger   *zap.SugaredLogger
}

// Report summarizes a finished run.
type Report struct {
	// Found is the first match, or nil when every partition was exhausted
	// or the run was stopped.
	Found    *Outcome
	Outcomes []Outcome
	Checked  uint64
	Elapsed  time.Duration
}

// Search runs one goroutine per partition and blocks until all of them have
// stopped. It returns as soon as every worker has joined, which happens when
// a match is found, all partitions are exhausted, a worker faults, or ctx is
// cancelled. A fault is returned as an error together with the partial
// report. A run that ctx interrupted before any match yields ctx.Err(); one
// whose partitions were all exhausted by then does not.
func Search(ctx context.Context, job Job) (*Report, error) {
	if err := job.validate(); err != nil {
		return nil, err
	}
	log := job.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	observer := job.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	began := time.Now()
	outcomes := make(chan Outcome, len(job.Partitions))
	var checked uint64

	var wg sync.WaitGroup
	for _, p := range job.Partitions {
		wg.Add(1)
		go func(p Partition) {
			defer wg.Done()
			w := &worker{job: &job, part: p, checked: &checked, observer: observer}
			o := w.run(runCtx)
			observer.PartitionDone(o)
			outcomes <- o
		}(p)
	}
	go func() {
		wg.Wait()
		close(outcomes)
	}()

	report := &Report{}
	var (
		runErr      error
		interrupted bool
	)
	for o := range outcomes {
		report.Outcomes = append(report.Outcomes, o)
		log.Debugw("partition finished", "partition", o.Partition.Index, "status", o.Status.String(), "checked", o.Checked)

		switch o.Status {
		case StatusFound:
			if report.Found != nil {
				log.Infow("discarding additional match", "partition", o.Partition.Index, "key", o.Key.String())
				continue
			}
			found := o
			report.Found = &found
			if job.OnFound != nil {
				if err := job.OnFound(o); err != nil && runErr == nil {
					runErr = errors.WithMessage(err, "recording match")
				}
			}
			cancel()
		case StatusCancelled:
			interrupted = true
		case StatusFault:
			if runErr == nil {
				runErr = errors.WithMessagef(o.Err, "partition %d", o.Partition.Index)
			}
			cancel()
		}
	}

	report.Checked = atomic.LoadUint64(&checked)
	report.Elapsed = time.Since(began)

	if runErr != nil {
		return report, runErr
	}
	// A partition that ran to its end is not interrupted, even if the
	// parent context was cancelled afterwards.
	if report.Found == nil && interrupted {
		return report, ctx.Err()
	}
	return report, nil
}

func (j *Job) validate() error {
	switch {
	case j.Table == nil:
		return errors.New("bruteforce: job has no fixed-base table")
	case j.Targets == nil:
		return errors.New("bruteforce: job has no targets")
	case len(j.Partitions) == 0:
		return errors.Wrap(ErrInvalidRange, "no partitions")
	case j.Steps == nil && j.strategy().Name() == Batch.Name():
		return errors.New("bruteforce: batch strategy requires a step table")
	}
	return nil
}

func (j *Job) strategy() Strategy {
	if j.Strategy == nil {
		return Batch
	}
	return j.Strategy
}

type nopObserver struct{}

func (nopObserver) BatchDone(int)         {}
func (nopObserver) PartitionDone(Outcome) {}
