package delta_test

import (
	"math"
	"sync"
	"time"

	"socprobe/internal/delta"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Engine", func() {
	var (
		now time.Time
		eng *delta.Engine
		key = delta.Key{Metric: "cpu.load", Index: -1}
	)

	BeforeEach(func() {
		now = time.Unix(1_700_000_000, 0)
		eng = delta.NewEngine(delta.WithClock(func() time.Time { return now }))
	})

	Describe("Sample", func() {
		It("bootstraps to zero and returns the cached rate on identical totals", func() {
			Expect(eng.Sample(key, delta.Idle, 1000, 200)).To(BeZero())

			r := eng.Sample(key, delta.Idle, 1000, 200)
			Expect(r).To(BeZero())
			Expect(math.IsNaN(r)).To(BeFalse())
		})

		It("computes work over total", func() {
			eng.Sample(key, delta.Idle, 1000, 200)
			Expect(eng.Sample(key, delta.Idle, 1500, 300)).To(BeNumerically("~", 80, 1e-9))

			Expect(eng.Sample(key, delta.Idle, 1500, 300)).To(BeNumerically("~", 80, 1e-9))
		})

		It("uses busy counters directly", func() {
			k := delta.Key{Metric: "gpu.busy"}
			eng.Sample(k, delta.Busy, 1000, 100)
			Expect(eng.Sample(k, delta.Busy, 2000, 350)).To(BeNumerically("~", 25, 1e-9))
		})

		It("treats a decreasing counter as a reset", func() {
			eng.Sample(key, delta.Idle, 1000, 200)
			r := eng.Sample(key, delta.Idle, 50, 10)
			Expect(r).To(BeNumerically("~", 80, 1e-9))

			// the reset pair is the new baseline
			Expect(eng.Sample(key, delta.Idle, 150, 60)).To(BeNumerically("~", 50, 1e-9))
		})

		It("floors a receding idle counter at zero without resetting", func() {
			eng.Sample(key, delta.Idle, 10_000_000, 9_000_000)
			Expect(eng.Sample(key, delta.Idle, 10_000_500, 8_999_990)).To(Equal(100.0))

			// the receded pair is still the baseline for the next window
			Expect(eng.Sample(key, delta.Idle, 10_001_000, 9_000_240)).To(BeNumerically("~", 50, 1e-9))
		})

		It("floors a receding busy counter at zero", func() {
			k := delta.Key{Metric: "gpu.busy"}
			eng.Sample(k, delta.Busy, 1000, 400)
			Expect(eng.Sample(k, delta.Busy, 2000, 390)).To(BeZero())
		})

		It("clamps adversarial input", func() {
			k := delta.Key{Metric: "gpu.busy"}
			eng.Sample(k, delta.Busy, 100, 0)
			Expect(eng.Sample(k, delta.Busy, 200, 5000)).To(Equal(100.0))

			eng.Sample(key, delta.Idle, 100, 0)
			Expect(eng.Sample(key, delta.Idle, 200, 500)).To(Equal(0.0))
		})

		It("keeps indexes independent", func() {
			a := delta.Key{Metric: "cpu.core", Index: 0}
			b := delta.Key{Metric: "cpu.core", Index: 1}

			eng.Sample(a, delta.Idle, 100, 50)
			Expect(eng.Sample(b, delta.Idle, 100, 50)).To(BeZero())
			Expect(eng.Sample(a, delta.Idle, 200, 50)).To(BeNumerically("~", 100, 1e-9))
			Expect(eng.Len()).To(Equal(2))
		})
	})

	Describe("Throughput", func() {
		k := delta.Key{Metric: "disk.read"}

		It("reports units per second", func() {
			Expect(eng.Throughput(k, 1000)).To(BeZero())
			now = now.Add(2 * time.Second)
			Expect(eng.Throughput(k, 5000)).To(BeNumerically("~", 2000, 1e-9))
		})

		It("returns the previous rate when no time passed", func() {
			eng.Throughput(k, 0)
			now = now.Add(time.Second)
			eng.Throughput(k, 100)
			Expect(eng.Throughput(k, 900)).To(BeNumerically("~", 100, 1e-9))
		})

		It("restarts from zero after a counter reset", func() {
			eng.Throughput(k, 10_000)
			now = now.Add(time.Second)
			Expect(eng.Throughput(k, 300)).To(BeNumerically("~", 300, 1e-9))
		})
	})

	Describe("Recent", func() {
		It("suppresses samples inside the window", func() {
			_, ok := eng.Recent(key, 100*time.Millisecond)
			Expect(ok).To(BeFalse())

			eng.Sample(key, delta.Idle, 1000, 200)
			now = now.Add(time.Second)
			eng.Sample(key, delta.Idle, 1500, 300)

			now = now.Add(50 * time.Millisecond)
			r, ok := eng.Recent(key, 100*time.Millisecond)
			Expect(ok).To(BeTrue())
			Expect(r).To(BeNumerically("~", 80, 1e-9))

			now = now.Add(50 * time.Millisecond)
			_, ok = eng.Recent(key, 100*time.Millisecond)
			Expect(ok).To(BeFalse())
		})
	})

	It("forgets state on reset", func() {
		eng.Sample(key, delta.Idle, 1000, 200)
		eng.Reset()
		_, ok := eng.Last(key)
		Expect(ok).To(BeFalse())
	})

	It("is safe for concurrent callers", func() {
		var wg sync.WaitGroup
		for i := range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				k := delta.Key{Metric: "cpu.core", Index: i}
				for j := range 100 {
					eng.Sample(k, delta.Idle, uint64(j*100), uint64(j*10))
				}
			}()
		}
		wg.Wait()
		Expect(eng.Len()).To(Equal(8))
	})
})
