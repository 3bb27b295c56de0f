package ratelimit

import (
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("TokenBucket", func() {
	var (
		l   *TokenBucket
		now time.Time
	)

	BeforeEach(func() {
		now = time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
		l = New(3, 3)
		l.now = func() time.Time { return now }
	})

	Specify("allows up to capacity per key", func() {
		Expect(l.Allow("a")).To(BeTrue())
		Expect(l.Allow("a")).To(BeTrue())
		Expect(l.Allow("a")).To(BeTrue())
		Expect(l.Allow("a")).To(BeFalse())

		Expect(l.Allow("b")).To(BeTrue())
	})

	Specify("refills over time", func() {
		for i := 0; i < 3; i++ {
			Expect(l.Allow("a")).To(BeTrue())
		}
		Expect(l.Allow("a")).To(BeFalse())

		now = now.Add(20 * time.Second)
		Expect(l.Allow("a")).To(BeTrue())
		Expect(l.Allow("a")).To(BeFalse())

		now = now.Add(time.Hour)
		for i := 0; i < 3; i++ {
			Expect(l.Allow("a")).To(BeTrue())
		}
		Expect(l.Allow("a")).To(BeFalse())
	})

	Specify("partial refills add up", func() {
		for i := 0; i < 3; i++ {
			Expect(l.Allow("a")).To(BeTrue())
		}

		now = now.Add(30 * time.Second)
		Expect(l.Allow("a")).To(BeTrue())
		Expect(l.Allow("a")).To(BeFalse())

		now = now.Add(10 * time.Second)
		Expect(l.Allow("a")).To(BeTrue())
	})

	Specify("idle keys are dropped", func() {
		Expect(l.Allow("a")).To(BeTrue())
		Expect(l.Allow("b")).To(BeTrue())
		Expect(l.state).To(HaveLen(2))

		now = now.Add(2 * time.Minute)
		Expect(l.Allow("c")).To(BeTrue())
		Expect(l.state).To(HaveLen(1))
		Expect(l.state).To(HaveKey("c"))

		Expect(l.Allow("a")).To(BeTrue())
		Expect(l.Allow("a")).To(BeTrue())
		Expect(l.Allow("a")).To(BeTrue())
		Expect(l.Allow("a")).To(BeFalse())
	})

	Specify("capacity defaults to the rate", func() {
		l = New(0, 2)
		l.now = func() time.Time { return now }

		Expect(l.Limit()).To(BeFalse())
		Expect(l.Limit()).To(BeFalse())
		Expect(l.Limit()).To(BeTrue())
	})
})
