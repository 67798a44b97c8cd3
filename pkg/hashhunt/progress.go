package hashhunt

import (
	"io"
	"math/big"
	"time"

	"github.com/mahdiidarabi/hashhunt/internal/bruteforce"
	"github.com/schollz/progressbar/v3"
)

const progressThrottle = 200 * time.Millisecond

// Progress renders a terminal progress bar of keys checked.
type Progress struct {
	bar *progressbar.ProgressBar
}

// NewProgress draws to w. A total that does not fit in an int64 shows a
// spinner with a running count instead of a bar.
func NewProgress(w io.Writer, total *big.Int) *Progress {
	return newProgress(w, total, progressThrottle)
}

func newProgress(w io.Writer, total *big.Int, throttle time.Duration) *Progress {
	limit := int64(-1)
	if total != nil && total.IsInt64() {
		limit = total.Int64()
	}
	bar := progressbar.NewOptions64(limit,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("scanning"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("keys"),
		progressbar.OptionThrottle(throttle),
		progressbar.OptionClearOnFinish(),
	)
	return &Progress{bar: bar}
}

func (p *Progress) BatchDone(keys int) {
	_ = p.bar.Add(keys)
}

func (p *Progress) PartitionDone(bruteforce.Outcome) {}

// Finish removes the bar. Only an exhausted range is reported as complete;
// a search that stopped early keeps its count.
func (p *Progress) Finish(exhausted bool) {
	if exhausted {
		_ = p.bar.Finish()
		return
	}
	_ = p.bar.Clear()
}
