package benchmark

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"go.uber.org/zap"

	"example.com/descstat/base/descriptive"
)

const (
	DefaultSamples = 100_000
	DefaultLength  = 1_000

	maxRecordableNanos = 10_000_000
)

type Config struct {
	Samples int
	Length  int
	Seed    uint64
}

type Latency struct {
	P50, P90, P99, Max time.Duration
	Count              int64
}

type Result struct {
	Mean             Latency
	MedianFromSorted Latency
}

func latency(hg *hdrhistogram.Histogram) Latency {
	return Latency{
		P50:   time.Duration(hg.ValueAtQuantile(50)),
		P90:   time.Duration(hg.ValueAtQuantile(90)),
		P99:   time.Duration(hg.ValueAtQuantile(99)),
		Max:   time.Duration(hg.Max()),
		Count: hg.TotalCount(),
	}
}

func record(log *zap.Logger, hg *hdrhistogram.Histogram, d time.Duration) {
	err := hg.RecordValue(int64(d))
	if err != nil {
		log.Debug("failed to record value", zap.Duration("value", d), zap.Error(err))
	}
}

// Run times Mean and MedianFromSorted over cfg.Samples random sorted
// sequences of length cfg.Length.
func Run(log *zap.Logger, cfg Config) Result {
	if cfg.Samples <= 0 || cfg.Length < 0 {
		panic("unexpected benchmark configuration")
	}

	rnd := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	hgMean := hdrhistogram.New(1, maxRecordableNanos, 3)
	hgMedian := hdrhistogram.New(1, maxRecordableNanos, 3)

	fs := make([]float64, cfg.Length)
	var sink float64
	for range cfg.Samples {
		for i := range fs {
			fs[i] = rnd.NormFloat64()
		}
		slices.Sort(fs)

		t0 := time.Now()
		m, err := descriptive.Mean(fs)
		t1 := time.Now()
		if err != nil {
			panic(err)
		}
		md, err := descriptive.MedianFromSorted(fs)
		t2 := time.Now()
		if err != nil {
			panic(err)
		}
		sink += m + md

		record(log, hgMean, t1.Sub(t0))
		record(log, hgMedian, t2.Sub(t1))
	}

	res := Result{
		Mean:             latency(hgMean),
		MedianFromSorted: latency(hgMedian),
	}
	log.Info("benchmark done",
		zap.Int("samples", cfg.Samples),
		zap.Int("length", cfg.Length),
		zap.Float64("checksum", sink),
	)
	for _, x := range []struct {
		op string
		l  Latency
	}{
		{"mean", res.Mean},
		{"median_from_sorted", res.MedianFromSorted},
	} {
		log.Info("latency",
			zap.String("op", x.op),
			zap.Duration("p50", x.l.P50),
			zap.Duration("p90", x.l.P90),
			zap.Duration("p99", x.l.P99),
			zap.Duration("max", x.l.Max),
		)
	}
	return res
}
