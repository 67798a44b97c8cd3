package bruteforce

import (
	"context"
	"math/big"
	"sync/atomic"

	"github.com/mahdiidarabi/hashhunt/pkg/curve"
	"github.com/mahdiidarabi/hashhunt/pkg/hash160"
)

// worker walks a single partition. Everything it owns is private to its
// goroutine; the job is shared read-only.
type worker struct {
	job      *Job
	part     Partition
	checked  *uint64
	observer Observer

	hasher *hash160.Hasher
	buf    [curve.UncompressedLen]byte
	count  uint64
}

func (w *worker) run(ctx context.Context) Outcome {
	w.hasher = hash160.NewHasher()

	o, err := w.walk(ctx)
	if err != nil {
		o = Outcome{Status: StatusFault, Err: err}
	}
	o.Partition = w.part
	o.Checked = w.count
	return o
}

func (w *worker) walk(ctx context.Context) (Outcome, error) {
	src, err := w.job.strategy().Open(w.job, w.part.Start)
	if err != nil {
		return Outcome{}, err
	}

	remaining := new(big.Int).Set(w.part.Width)
	for remaining.Sign() > 0 {
		if ctx.Err() != nil {
			return Outcome{Status: StatusCancelled}, nil
		}

		points, first, err := src.Next()
		if err != nil {
			return Outcome{}, err
		}

		// The final batch may run past the partition end; those keys
		// belong to the next partition and are not checked here.
		limit := len(points)
		if remaining.IsInt64() && remaining.Int64() < int64(limit) {
			limit = int(remaining.Int64())
		}
		for i := 0; i < limit; i++ {
			if o, ok := w.check(&points[i], first, i); ok {
				return o, nil
			}
		}
		w.advance(limit)
		remaining.Sub(remaining, big.NewInt(int64(limit)))
	}
	return Outcome{Status: StatusExhausted}, nil
}

// check hashes the public key for key first+offset and reports a match.
func (w *worker) check(p *curve.Point, first *big.Int, offset int) (Outcome, bool) {
	if p.IsInfinity() {
		return Outcome{}, false
	}

	var pub []byte
	if w.job.Uncompressed {
		p.PutUncompressed(w.buf[:])
		pub = w.buf[:curve.UncompressedLen]
	} else {
		p.PutCompressed(w.buf[:])
		pub = w.buf[:curve.CompressedLen]
	}

	d := w.hasher.Sum(pub)
	if !w.job.Targets.Contains(&d) {
		return Outcome{}, false
	}

	w.advance(offset + 1)
	key := new(big.Int).Add(first, big.NewInt(int64(offset)))
	return Outcome{
		Status: StatusFound,
		Key:    key,
		PubKey: append([]byte(nil), pub...),
		Digest: d,
	}, true
}

func (w *worker) advance(n int) {
	w.count += uint64(n)
	atomic.AddUint64(w.checked, uint64(n))
	w.observer.BatchDone(n)
}
