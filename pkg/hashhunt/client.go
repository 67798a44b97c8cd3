package hashhunt

import (
	"context"
	"math/big"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/mahdiidarabi/hashhunt/internal/bruteforce"
	"github.com/mahdiidarabi/hashhunt/internal/parser"
	"github.com/mahdiidarabi/hashhunt/pkg/curve"
	"github.com/mahdiidarabi/hashhunt/pkg/hash160"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrKeyMismatch is returned when a match fails independent verification.
var ErrKeyMismatch = errors.New("hashhunt: found key does not reproduce the hashed public key")

// Request is one search: the key window bit length and the target digests.
type Request struct {
	Bits    int
	Targets []hash160.Digest
}

// Client provides a high-level API for HASH160 key searches.
type Client struct {
	config   SearchConfig
	logger   *zap.SugaredLogger
	store    ResultStore
	metrics  *Metrics
	progress bool

	tableOnce sync.Once
	table     *curve.Table
	tableTime time.Duration
}

// NewClient creates a new client with default settings. Found keys are kept
// in memory until WithStore sets a durable store.
func NewClient() *Client {
	return &Client{
		config: DefaultSearchConfig(),
		logger: zap.NewNop().Sugar(),
		store:  &MemoryStore{},
	}
}

// WithConfig sets the search configuration.
func (c *Client) WithConfig(config SearchConfig) *Client {
	c.config = config
	return c
}

// WithLogger sets the logger.
func (c *Client) WithLogger(logger *zap.SugaredLogger) *Client {
	c.logger = logger
	return c
}

// WithStore sets where found keys are recorded.
func (c *Client) WithStore(store ResultStore) *Client {
	c.store = store
	return c
}

// WithMetrics enables Prometheus metrics.
func (c *Client) WithMetrics(m *Metrics) *Client {
	c.metrics = m
	return c
}

// WithProgress enables a progress bar on standard error.
func (c *Client) WithProgress(enabled bool) *Client {
	c.progress = enabled
	return c
}

// HuntFile reads a settings file and searches the window it describes.
func (c *Client) HuntFile(ctx context.Context, path string) (*Summary, error) {
	settings, err := parser.ParseSettingsFile(path)
	if err != nil {
		return nil, err
	}
	return c.Hunt(ctx, Request{Bits: settings.Bits, Targets: settings.Targets})
}

// Hunt searches every key in [2^(Bits-1), 2^Bits) for one whose public key
// hashes to a target. The first match is recorded in the store before the
// remaining workers are stopped.
//
// Returns:
//   - Summary with Found set on a match, or nil Found when the window was
//     exhausted
//   - error for invalid requests, arithmetic faults, store failures, or
//     when ctx is cancelled before a match
func (c *Client) Hunt(ctx context.Context, req Request) (*Summary, error) {
	targets, err := hash160.NewTargetSet(req.Targets...)
	if err != nil {
		return nil, err
	}
	start, width, err := bruteforce.Window(req.Bits)
	if err != nil {
		return nil, err
	}
	parts, err := bruteforce.Split(start, width, c.config.workers(), c.config.Remainder)
	if err != nil {
		return nil, err
	}

	batch := c.config.BatchSize
	if batch <= 0 {
		batch = curve.DefaultBatchSize
	}
	steps, err := curve.NewStepTable(batch)
	if err != nil {
		return nil, err
	}
	table := c.fixedBaseTable()

	end := new(big.Int).Add(start, width)
	c.logger.Infow("search range",
		"bits", req.Bits,
		"start", start.Text(16),
		"end", end.Text(16),
		"keys", width.String(),
	)
	for _, d := range targets.Digests() {
		c.logger.Infow("target", "hash160", d.String())
	}
	c.logger.Infow("starting search",
		"workers", len(parts),
		"mode", c.config.Mode.String(),
		"batch", batch,
		"remainder", c.config.Remainder.String(),
		"uncompressed", c.config.Uncompressed,
	)

	var obs observers
	if c.metrics != nil {
		c.metrics.TableBuildSeconds.Set(c.tableTime.Seconds())
		obs = append(obs, c.metrics)
	}
	var progress *Progress
	if c.progress {
		progress = NewProgress(os.Stderr, width)
		obs = append(obs, progress)
	}

	summary := &Summary{
		Bits:       req.Bits,
		Start:      start,
		Width:      width,
		TableBuild: c.tableTime,
	}

	job := bruteforce.Job{
		Table:        table,
		Steps:        steps,
		Targets:      targets,
		Partitions:   parts,
		Strategy:     c.config.Mode.Strategy(),
		Uncompressed: c.config.Uncompressed,
		Observer:     obs,
		Logger:       c.logger,
		OnFound: func(o bruteforce.Outcome) error {
			r, err := c.buildResult(o)
			if err != nil {
				return err
			}
			if err := c.store.Record(r); err != nil {
				return err
			}
			if c.metrics != nil {
				c.metrics.Matches.Inc()
			}
			summary.Found = r
			c.logger.Infow("match recorded",
				"key", r.PrivateKey.String(),
				"hash160", r.Digest.String(),
				"partition", r.Partition,
			)
			return nil
		},
	}

	report, err := bruteforce.Search(ctx, job)
	if progress != nil {
		progress.Finish(err == nil && report.Found == nil)
	}
	if report != nil {
		summary.Checked = report.Checked
		summary.Elapsed = report.Elapsed
		for _, o := range report.Outcomes {
			summary.Partitions = append(summary.Partitions, PartitionSummary{
				Index:   o.Partition.Index,
				Start:   o.Partition.Start,
				Width:   o.Partition.Width,
				Status:  o.Status.String(),
				Checked: o.Checked,
			})
		}
		sort.Slice(summary.Partitions, func(i, j int) bool {
			return summary.Partitions[i].Index < summary.Partitions[j].Index
		})
	}
	if err != nil {
		return summary, err
	}

	if summary.Found == nil {
		c.logger.Infow("range exhausted without a match", "checked", summary.Checked, "elapsed", summary.Elapsed.String())
	} else {
		c.logger.Infow("search finished", "checked", summary.Checked, "elapsed", summary.Elapsed.String())
	}
	return summary, nil
}

// fixedBaseTable builds the shared table on first use.
func (c *Client) fixedBaseTable() *curve.Table {
	c.tableOnce.Do(func() {
		began := time.Now()
		c.table = curve.NewTable()
		c.tableTime = time.Since(began)
		c.logger.Infow("precomputed table built", "entries", curve.TableRows*curve.TableCols, "elapsed", c.tableTime.String())
	})
	return c.table
}

func (c *Client) buildResult(o bruteforce.Outcome) (*Result, error) {
	ok, err := VerifyKey(o.Key, o.PubKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Wrapf(ErrKeyMismatch, "key %s", o.Key.String())
	}

	compressed := !c.config.Uncompressed
	keys, err := DescribeKey(o.Key, compressed, c.config.Network)
	if err != nil {
		return nil, err
	}
	return &Result{
		PrivateKey: o.Key,
		PublicKey:  o.PubKey,
		Digest:     o.Digest,
		Compressed: compressed,
		Partition:  o.Partition.Index,
		Keys:       keys,
	}, nil
}
