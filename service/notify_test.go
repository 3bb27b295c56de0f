package service_test

import (
	"context"
	"errors"
	"strings"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"attendance-backend/entity"
	"attendance-backend/errs"
	"attendance-backend/internal/testenv"
	"attendance-backend/service"
)

var _ = Describe("FanOut", func() {
	var (
		env *testenv.Env
		fan *service.FanOut
		s   school
		ctx = context.Background()
	)

	BeforeEach(func() {
		var err error
		env, err = testenv.New()
		Expect(err).To(BeNil())
		fan = env.Services.FanOut
		s = seed(env)
	})

	AfterEach(func() {
		env.Close()
	})

	Describe("Notify", func() {
		Specify("happy path", func() {
			Expect(fan.Notify(ctx, service.NotifyInput{StudentID: s.ann, Status: entity.StatusLate, MarkedBy: s.tess, Date: "2024-03-04"})).To(Succeed())

			list, err := fan.List(ctx, s.ann)
			Expect(err).To(BeNil())
			Expect(list).To(HaveLen(1))

			n := list[0]
			Expect(strings.HasPrefix(n.ID, s.ann+"_")).To(BeTrue())
			Expect(n.Title).To(Equal("Attendance Marked"))
			Expect(n.Message).To(Equal("Tess has marked as Late for today"))
			Expect(n.Type).To(Equal(entity.NotificationAttendance))
			Expect(n.Status).To(Equal(entity.StatusLate))
			Expect(n.Date).To(Equal("2024-03-04"))
			Expect(n.MarkedBy).To(Equal(s.tess))
			Expect(n.Read).To(BeFalse())
		})

		Specify("another day is named", func() {
			Expect(fan.Notify(ctx, service.NotifyInput{StudentID: s.ann, Status: entity.StatusAbsent, MarkedBy: s.tess, Date: "2024-03-01"})).To(Succeed())

			list, err := fan.List(ctx, s.ann)
			Expect(err).To(BeNil())
			Expect(list[0].Message).To(Equal("Tess has marked as Absent for 2024-03-01"))
		})

		Specify("an unknown marker falls back", func() {
			Expect(fan.Notify(ctx, service.NotifyInput{StudentID: s.ann, Status: entity.StatusPresent, MarkedBy: "ghost"})).To(Succeed())

			list, err := fan.List(ctx, s.ann)
			Expect(err).To(BeNil())
			Expect(list[0].Message).To(Equal("Your teacher has marked as Present for today"))
		})

		Specify("same instant notifications do not collide", func() {
			for i := 0; i < 3; i++ {
				Expect(fan.Notify(ctx, service.NotifyInput{StudentID: s.ann, Status: entity.StatusPresent, MarkedBy: s.tess})).To(Succeed())
			}

			list, err := fan.List(ctx, s.ann)
			Expect(err).To(BeNil())
			Expect(list).To(HaveLen(3))
		})

		Specify("sad path - invalid status", func() {
			err := fan.Notify(ctx, service.NotifyInput{StudentID: s.ann, Status: "excused"})
			Expect(errors.Is(err, errs.ErrInvalidStatus)).To(BeTrue())
		})
	})

	Describe("Send", func() {
		Specify("happy path", func() {
			n, err := fan.Send(ctx, s.ben, "  Parent meeting on Friday ", s.admin)
			Expect(err).To(BeNil())
			Expect(n.Title).To(Equal("Notice"))
			Expect(n.Message).To(Equal("Parent meeting on Friday"))
			Expect(n.Type).To(Equal(entity.NotificationGeneral))
			Expect(n.Status).To(BeEmpty())
			Expect(n.MarkedBy).To(Equal(s.admin))
		})

		Specify("sad path", func() {
			_, err := fan.Send(ctx, s.ben, " ", s.admin)
			Expect(errors.Is(err, errs.ErrMessageRequired)).To(BeTrue())

			_, err = fan.Send(ctx, s.tess, "hi", s.admin)
			Expect(errors.Is(err, errs.ErrNotStudent)).To(BeTrue())

			_, err = fan.Send(ctx, "", "hi", s.admin)
			Expect(errors.Is(err, errs.ErrUserIDRequired)).To(BeTrue())
		})
	})

	Describe("List and MarkRead", func() {
		Specify("newest first, read stays read", func() {
			first, err := fan.Send(ctx, s.ann, "first", s.admin)
			Expect(err).To(BeNil())
			env.Clock.Advance(time.Second)
			_, err = fan.Send(ctx, s.ann, "second", s.admin)
			Expect(err).To(BeNil())

			n, err := fan.MarkRead(ctx, first.ID)
			Expect(err).To(BeNil())
			Expect(n.Read).To(BeTrue())
			_, err = fan.MarkRead(ctx, first.ID)
			Expect(err).To(BeNil())

			list, err := fan.List(ctx, s.ann)
			Expect(err).To(BeNil())
			Expect(list).To(HaveLen(2))
			Expect(list[0].Message).To(Equal("second"))
			Expect(list[0].Read).To(BeFalse())
			Expect(list[1].Read).To(BeTrue())

			other, err := fan.List(ctx, s.ben)
			Expect(err).To(BeNil())
			Expect(other).To(BeEmpty())
		})

		Specify("sad path", func() {
			_, err := fan.MarkRead(ctx, "missing")
			Expect(errors.Is(err, errs.ErrNotFound)).To(BeTrue())

			_, err = fan.MarkRead(ctx, "")
			Expect(errors.Is(err, errs.ErrInvalidID)).To(BeTrue())

			_, err = fan.Get(ctx, "")
			Expect(errors.Is(err, errs.ErrInvalidID)).To(BeTrue())
		})
	})

	Describe("Subscribe", func() {
		Specify("reading a notification updates the feed", func() {
			n, err := fan.Send(ctx, s.ann, "hello", s.admin)
			Expect(err).To(BeNil())

			sub, err := fan.Subscribe(ctx, s.ann)
			Expect(err).To(BeNil())
			defer sub.Close()

			var list []*entity.Notification
			Eventually(sub.C).Should(Receive(&list))
			Expect(list).To(HaveLen(1))
			Expect(list[0].Read).To(BeFalse())

			_, err = fan.MarkRead(ctx, n.ID)
			Expect(err).To(BeNil())

			Eventually(sub.C).Should(Receive(&list))
			Expect(list[0].Read).To(BeTrue())
		})

		Specify("a slow reader gets the latest list", func() {
			sub, err := fan.Subscribe(ctx, s.ann)
			Expect(err).To(BeNil())
			defer sub.Close()

			for i := 0; i < 5; i++ {
				env.Clock.Advance(time.Second)
				_, err := fan.Send(ctx, s.ann, "update", s.admin)
				Expect(err).To(BeNil())
			}

			Eventually(func() int {
				select {
				case list := <-sub.C:
					return len(list)
				default:
					return -1
				}
			}).Should(Equal(5))
		})
	})
})
