package sysfs_test

import (
	"fmt"
	"sync"
	"time"

	"socprobe/internal/sysfs"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Cache", func() {
	const path = "/sys/class/kgsl/kgsl-3d0/gpuclk"

	var (
		src   *memSource
		now   time.Time
		cache *sysfs.Cache
	)

	BeforeEach(func() {
		src = newMemSource()
		now = time.Unix(1_700_000_000, 0)
		cache = sysfs.NewCache(src, sysfs.WithClock(func() time.Time { return now }))
	})

	It("serves the cached value within the ttl even if the source changed", func() {
		src.set(path, "585000000")

		v1, ok := cache.Int(path, 500*time.Millisecond)
		Expect(ok).To(BeTrue())

		src.set(path, "257000000")
		now = now.Add(499 * time.Millisecond)

		v2, ok := cache.Int(path, 500*time.Millisecond)
		Expect(ok).To(BeTrue())
		Expect(v2).To(Equal(v1))
		Expect(src.readCount(path)).To(Equal(1))

		now = now.Add(time.Millisecond)

		v3, ok := cache.Int(path, 500*time.Millisecond)
		Expect(ok).To(BeTrue())
		Expect(v3).To(Equal(int64(257000000)))
		Expect(src.readCount(path)).To(Equal(2))
	})

	It("re-reads on every call with a zero ttl", func() {
		src.set(path, "1")
		cache.Get(path, 0)
		cache.Get(path, 0)
		Expect(src.readCount(path)).To(Equal(2))
	})

	It("keeps Forever entries regardless of elapsed time", func() {
		src.set(path, "1")
		cache.Get(path, sysfs.Forever)
		now = now.Add(1000 * time.Hour)
		src.set(path, "2")

		v, ok := cache.Get(path, sysfs.Forever)
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("1"))
	})

	It("reports a miss instead of the stale value when a refresh fails", func() {
		src.set(path, "42")
		_, ok := cache.Get(path, time.Second)
		Expect(ok).To(BeTrue())

		src.remove(path)
		now = now.Add(2 * time.Second)

		_, ok = cache.Get(path, time.Second)
		Expect(ok).To(BeFalse())
		Expect(cache.Len()).To(Equal(1))

		src.set(path, "43")
		v, ok := cache.Get(path, time.Second)
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("43"))
	})

	It("treats malformed numbers as absent", func() {
		src.set(path, "n/a")
		_, ok := cache.Int(path, time.Second)
		Expect(ok).To(BeFalse())
		_, ok = cache.Float(path, time.Second)
		Expect(ok).To(BeFalse())
	})

	It("splits list attributes", func() {
		src.set(path, "schedutil performance powersave")
		f, ok := cache.Fields(path, time.Second)
		Expect(ok).To(BeTrue())
		Expect(f).To(Equal([]string{"schedutil", "performance", "powersave"}))
	})

	It("counts hits misses and failures", func() {
		src.set(path, "1")
		cache.Get(path, time.Second)
		cache.Get(path, time.Second)
		cache.Get("/missing", time.Second)

		st := cache.Stats()
		Expect(st.Hits).To(Equal(uint64(1)))
		Expect(st.Misses).To(Equal(uint64(2)))
		Expect(st.Failures).To(Equal(uint64(1)))
		Expect(st.Entries).To(Equal(1))

		cache.Clear()
		Expect(cache.Len()).To(BeZero())
	})

	It("tolerates concurrent callers", func() {
		for i := range 8 {
			src.set(fmt.Sprintf("/sys/a%d", i), fmt.Sprint(i))
		}

		var wg sync.WaitGroup
		for g := range 16 {
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				for i := range 100 {
					p := fmt.Sprintf("/sys/a%d", (g+i)%8)
					_, ok := cache.Get(p, time.Hour)
					Expect(ok).To(BeTrue())
				}
			}()
		}
		wg.Wait()

		Expect(cache.Len()).To(Equal(8))
	})
})
