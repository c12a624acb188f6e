// Package perf provides resize-throughput benchmarking, worker-pool tuning,
// and regression detection for the fastscale resize pipeline's critical
// path, pkg/resampler.PerformRender.
package perf

import (
	"runtime"
	"strings"
	"sync"
	"testing"

	"gitlab.com/tinyland/lab/fastscale/pkg/resampler"
)

// StringPool provides a sync.Pool for strings.Builder to reduce allocations
// when formatting bench reports. Builders are Reset before being returned to
// the pool, so callers always receive an empty builder.
type StringPool struct {
	pool sync.Pool
}

// NewStringPool creates a StringPool with a factory that creates new
// strings.Builder instances.
func NewStringPool() *StringPool {
	return &StringPool{
		pool: sync.Pool{
			New: func() interface{} {
				return &strings.Builder{}
			},
		},
	}
}

// Get retrieves a strings.Builder from the pool. The builder is guaranteed
// to be empty (Reset has been called). Callers must call Put when done to
// return the builder to the pool.
func (p *StringPool) Get() *strings.Builder {
	return p.pool.Get().(*strings.Builder)
}

// Put returns a strings.Builder to the pool after resetting it. The builder
// must not be used after calling Put.
func (p *StringPool) Put(b *strings.Builder) {
	b.Reset()
	p.pool.Put(b)
}

// PreallocBuilder returns a pointer to a strings.Builder pre-allocated to the
// given capacity. This avoids repeated growth when the approximate output size
// is known in advance. A pointer is returned because strings.Builder cannot be
// copied after its first write (including Grow).
func PreallocBuilder(capacity int) *strings.Builder {
	if capacity < 0 {
		capacity = 0
	}
	b := &strings.Builder{}
	b.Grow(capacity)
	return b
}

// PickWorkers chooses resampler.ResizeOptions.Workers for a render whose
// destination has targetHeight rows. runtime.NumCPU() is a reasonable
// default once there are enough bands to keep every worker busy; a target
// shorter than NumCPU() rows is capped to its own height, since
// runBandsParallel never splits a single row across workers.
func PickWorkers(targetHeight int) int {
	n := runtime.NumCPU()
	if n < 1 {
		n = 1
	}
	if targetHeight > 0 && targetHeight < n {
		return targetHeight
	}
	return n
}

// BenchmarkRender runs PerformRender repeatedly via testing.Benchmark to
// produce a stable per-operation timing and allocation sample, consumed by
// the `fastscale bench` CLI command and compared against DefaultThresholds.
func BenchmarkRender(src *resampler.Bitmap8, opts resampler.ResizeOptions, targetW, targetH int) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			dst, err := resampler.NewBitmap8(targetW, targetH, 4, true)
			if err != nil {
				b.Fatal(err)
			}
			details := &resampler.RenderDetails{
				Source:      src,
				SourceCrop:  resampler.Rect{W: src.Width, H: src.Height},
				Destination: dst,
				TargetRect:  resampler.Rect{W: targetW, H: targetH},
				Options:     opts,
			}
			if err := resampler.PerformRender(details); err != nil {
				b.Fatal(err)
			}
		}
	})
}
