package sysfs_test

import (
	"socprobe/internal/sysfs"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Resolver", func() {
	candidates := []string{
		"/sys/class/power_supply/battery/capacity",
		"/sys/class/power_supply/bms/capacity",
		"/sys/class/power_supply/Battery/capacity",
	}

	var (
		src      *memSource
		resolver *sysfs.Resolver
	)

	BeforeEach(func() {
		src = newMemSource()
		resolver = sysfs.NewResolver(src)
	})

	It("returns the first existing candidate and memoizes it", func() {
		src.set(candidates[1], "80")
		src.set(candidates[2], "81")

		h, ok := resolver.Resolve("battery.capacity", candidates)
		Expect(ok).To(BeTrue())
		Expect(h).To(Equal(sysfs.Handle{Metric: "battery.capacity", Path: candidates[1]}))

		probes := src.probes
		src.set(candidates[0], "99")

		h, ok = resolver.Resolve("battery.capacity", candidates)
		Expect(ok).To(BeTrue())
		Expect(h.Path).To(Equal(candidates[1]))
		Expect(src.probes).To(Equal(probes))
	})

	It("does not memoize failures", func() {
		_, ok := resolver.Resolve("battery.capacity", candidates)
		Expect(ok).To(BeFalse())
		Expect(resolver.Len()).To(BeZero())

		src.set(candidates[2], "50")
		h, ok := resolver.Resolve("battery.capacity", candidates)
		Expect(ok).To(BeTrue())
		Expect(h.Path).To(Equal(candidates[2]))
	})

	It("keys by list content rather than metric name", func() {
		src.set(candidates[0], "1")
		resolver.Resolve("a", candidates)
		resolver.Resolve("b", append([]string(nil), candidates...))
		Expect(resolver.Len()).To(Equal(1))

		resolver.Resolve("c", candidates[:1])
		Expect(resolver.Len()).To(Equal(2))
	})

	It("rejects an empty list", func() {
		_, ok := resolver.Resolve("x", nil)
		Expect(ok).To(BeFalse())
	})

	It("forgets everything on reset", func() {
		src.set(candidates[0], "1")
		resolver.Resolve("a", candidates)
		resolver.Reset()
		Expect(resolver.Len()).To(BeZero())
	})
})

var _ = Describe("Reader", func() {
	It("resolves and reads through the cache", func() {
		src := newMemSource()
		src.set("/b", "7")
		r := sysfs.NewReader(src)

		n, ok := r.LookupInt("m", []string{"/a", "/b"}, sysfs.Forever)
		Expect(ok).To(BeTrue())
		Expect(n).To(Equal(int64(7)))

		src.set("/b", "8")
		n, _ = r.LookupInt("m", []string{"/a", "/b"}, sysfs.Forever)
		Expect(n).To(Equal(int64(7)))

		r.Reset()
		n, _ = r.LookupInt("m", []string{"/a", "/b"}, sysfs.Forever)
		Expect(n).To(Equal(int64(8)))
	})
})
