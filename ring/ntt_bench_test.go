package ring

import (
	"fmt"
	"testing"
	"time"

	"github.com/montanaflynn/stats"
)

// BenchmarkNTT times the forward transform at a spread of degrees,
// reporting mean/stddev/p99 latency via montanaflynn/stats in addition to
// go test's own ns/op, the way the teacher's ring_benchmark_test.go
// separates setup (table + sampler construction) from the timed loop with
// b.ResetTimer.
func BenchmarkNTT(b *testing.B) {
	for logN := 10; logN <= 14; logN++ {
		benchForward(1<<logN, b)
	}
}

func benchForward(n int, b *testing.B) {
	b.Run(fmt.Sprintf("Forward/N=%d", n), func(b *testing.B) {
		primes, err := GeneratePrimes(1, 48, n)
		if err != nil {
			b.Fatal(err)
		}
		tbl, err := NewNTTTables(n, primes[0])
		if err != nil {
			b.Fatal(err)
		}
		engine := NewNTTEngine(tbl)

		e := make([]uint64, n)
		UniformVector(e, primes[0], DefaultSource)

		samples := make([]float64, 0, b.N)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			start := time.Now()
			if err := engine.ComputeForward(e, 2, 1); err != nil {
				b.Fatal(err)
			}
			samples = append(samples, float64(time.Since(start).Nanoseconds()))
		}
		b.StopTimer()

		if mean, err := stats.Mean(samples); err == nil {
			if stddev, err := stats.StandardDeviation(samples); err == nil {
				if p99, err := stats.Percentile(samples, 99); err == nil {
					b.ReportMetric(mean, "ns/op-mean")
					b.ReportMetric(stddev, "ns/op-stddev")
					b.ReportMetric(p99, "ns/op-p99")
				}
			}
		}
	})
}
