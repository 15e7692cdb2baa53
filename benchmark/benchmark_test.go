package benchmark

import (
	"testing"

	"go.uber.org/zap"
)

func TestRun(t *testing.T) {
	res := Run(zap.NewNop(), Config{Samples: 200, Length: 64, Seed: 1})
	for name, l := range map[string]Latency{
		"Mean":             res.Mean,
		"MedianFromSorted": res.MedianFromSorted,
	} {
		if l.Count > 200 {
			t.Errorf("%s: recorded %d values, want at most 200", name, l.Count)
		}
		if l.P50 > l.P90 || l.P90 > l.P99 || l.P99 > l.Max {
			t.Errorf("%s: percentiles not monotonic: %+v", name, l)
		}
	}
}

func TestRunInvalidConfig(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic, got none")
		}
	}()
	Run(zap.NewNop(), Config{Samples: 0, Length: 1})
}

func BenchmarkMeanAndMedian(b *testing.B) {
	log := zap.NewNop()
	for i := 0; i < b.N; i++ {
		Run(log, Config{Samples: 10, Length: 1000, Seed: uint64(i)})
	}
}
