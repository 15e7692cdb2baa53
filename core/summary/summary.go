package summary

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"go.uber.org/zap"

	"example.com/descstat/base/descriptive"
	"example.com/descstat/base/floats"
	"example.com/descstat/core/metrics"
)

type Summary struct {
	Name   string  `json:"name,omitempty"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

type summaryMetrics struct {
	summariesComputed prometheus.Counter
	summariesMissing  prometheus.Counter
	summariesUnsorted prometheus.Counter
}

func newSummaryMetrics() *summaryMetrics {
	return &summaryMetrics{
		summariesComputed: promauto.NewCounter(prometheus.CounterOpts{
			Name: metrics.SummariesComputedN,
			Help: metrics.SummariesComputedH,
		}),
		summariesMissing: promauto.NewCounter(prometheus.CounterOpts{
			Name: metrics.SummariesMissingN,
			Help: metrics.SummariesMissingH,
		}),
		summariesUnsorted: promauto.NewCounter(prometheus.CounterOpts{
			Name: metrics.SummariesUnsortedN,
			Help: metrics.SummariesUnsortedH,
		}),
	}
}

var summarizerMetrics atomic.Pointer[summaryMetrics]

func init() {
	summarizerMetrics.Store(newSummaryMetrics())
}

// Summarizer computes summaries with a Statistics implementation. It is safe
// for concurrent use.
type Summarizer struct {
	log   *zap.Logger
	stats descriptive.Statistics
}

func NewSummarizer(log *zap.Logger, stats descriptive.Statistics) *Summarizer {
	return &Summarizer{log: log, stats: stats}
}

// Summarize computes the mean and median of values. Unless sorted is set,
// the median is taken over a sorted copy; values itself is never modified.
func (s *Summarizer) Summarize(ctx context.Context, name string, values []float64, sorted bool) (
	Summary, error) {
	err := ctx.Err()
	if err != nil {
		return Summary{}, err
	}
	mtrcs := summarizerMetrics.Load()

	mean, err := s.stats.Mean(values)
	if err != nil {
		mtrcs.summariesMissing.Inc()
		return Summary{}, fmt.Errorf("dataset %q: %w", name, err)
	}

	if !sorted {
		values = floats.SortedCopy(values)
	} else if !floats.IsSorted(values) {
		mtrcs.summariesUnsorted.Inc()
		s.log.Warn("dataset declared sorted but is not, median is unreliable",
			zap.String("dataset", name))
	}
	median, err := s.stats.MedianFromSorted(values)
	if err != nil {
		mtrcs.summariesMissing.Inc()
		return Summary{}, fmt.Errorf("dataset %q: %w", name, err)
	}

	mtrcs.summariesComputed.Inc()
	r := Summary{
		Name:   name,
		Count:  len(values),
		Mean:   mean,
		Median: median,
	}
	if ce := s.log.Check(zap.DebugLevel, "computed summary"); ce != nil {
		ce.Write(
			zap.String("dataset", r.Name),
			zap.Int("count", r.Count),
			zap.Float64("mean", r.Mean),
			zap.Float64("median", r.Median),
		)
	}
	return r, nil
}
