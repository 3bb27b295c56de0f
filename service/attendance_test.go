package service_test

import (
	"context"
	"errors"
	"sync"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"attendance-backend/entity"
	"attendance-backend/errs"
	"attendance-backend/internal/testenv"
	"attendance-backend/service"
)

var _ = Describe("Recorder", func() {
	var (
		env *testenv.Env
		rec *service.Recorder
		s   school
		ctx = context.Background()
	)

	mark := func(student string, status entity.Status) *entity.AttendanceRecord {
		r, err := rec.MarkAttendance(ctx, service.MarkInput{StudentID: student, Status: status, MarkedBy: s.tess})
		Expect(err).To(BeNil())
		return r
	}

	BeforeEach(func() {
		var err error
		env, err = testenv.New()
		Expect(err).To(BeNil())
		rec = env.Services.Recorder
		s = seed(env)
	})

	AfterEach(func() {
		env.Close()
	})

	Describe("MarkAttendance", func() {
		Specify("happy path", func() {
			r := mark(s.ann, entity.StatusLate)
			Expect(r.ID).To(Equal(s.ann + ":2024-03-04"))
			Expect(r.Date).To(Equal("2024-03-04"))
			Expect(r.Status).To(Equal(entity.StatusLate))
			Expect(r.MarkedBy).To(Equal(s.tess))
			Expect(r.Timestamp).To(BeTemporally("==", env.Clock.Now()))
		})

		Specify("marking twice on a day keeps one record with the last status", func() {
			mark(s.ann, entity.StatusAbsent)
			env.Clock.Advance(time.Minute)
			mark(s.ann, entity.StatusPresent)

			records, err := rec.ListAttendance(ctx, s.ann, service.DateRange{})
			Expect(err).To(BeNil())
			Expect(records).To(HaveLen(1))
			Expect(records[0].Status).To(Equal(entity.StatusPresent))

			notifications, err := env.Services.FanOut.List(ctx, s.ann)
			Expect(err).To(BeNil())
			Expect(notifications).To(HaveLen(2))
			Expect(notifications[0].Message).To(Equal("Tess has marked as Present for today"))
			Expect(notifications[1].Message).To(Equal("Tess has marked as Absent for today"))
		})

		Specify("concurrent marks keep one record", func() {
			var wg sync.WaitGroup
			failures := make(chan error, 50)
			for i := 0; i < 50; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if _, err := rec.MarkAttendance(ctx, service.MarkInput{StudentID: s.ann, Status: entity.StatusLate, MarkedBy: s.tess}); err != nil {
						failures <- err
					}
				}()
			}
			wg.Wait()
			close(failures)
			Expect(failures).To(BeEmpty())

			records, err := rec.ListAttendance(ctx, s.ann, service.DateRange{})
			Expect(err).To(BeNil())
			Expect(records).To(HaveLen(1))
			Expect(records[0].Status).To(Equal(entity.StatusLate))

			notifications, err := env.Services.FanOut.List(ctx, s.ann)
			Expect(err).To(BeNil())
			Expect(notifications).To(HaveLen(50))
		})

		Specify("a new day is a new record", func() {
			mark(s.ann, entity.StatusAbsent)
			env.Clock.Advance(24 * time.Hour)
			mark(s.ann, entity.StatusPresent)

			records, err := rec.ListAttendance(ctx, s.ann, service.DateRange{})
			Expect(err).To(BeNil())
			Expect(records).To(HaveLen(2))
			Expect(records[0].Date).To(Equal("2024-03-05"))
			Expect(records[1].Date).To(Equal("2024-03-04"))
		})

		Specify("the day follows the configured time zone", func() {
			loc := time.FixedZone("UTC+10", 10*60*60)
			deps := env.Deps
			deps.Location = loc
			env.Clock.Set(time.Date(2024, time.March, 4, 20, 0, 0, 0, time.UTC))

			r, err := service.NewRecorder(deps, service.NewFanOut(deps)).MarkAttendance(ctx, service.MarkInput{StudentID: s.ann, Status: entity.StatusPresent})
			Expect(err).To(BeNil())
			Expect(r.Date).To(Equal("2024-03-05"))
		})

		Specify("a failing notification does not fail the mark", func() {
			r, err := service.NewRecorder(env.Deps, failingNotifier{}).MarkAttendance(ctx, service.MarkInput{StudentID: s.ann, Status: entity.StatusAbsent, MarkedBy: s.tess})
			Expect(err).To(BeNil())
			Expect(r.Status).To(Equal(entity.StatusAbsent))

			records, err := rec.ListAttendance(ctx, s.ann, service.DateRange{})
			Expect(err).To(BeNil())
			Expect(records).To(HaveLen(1))
		})

		Specify("sad path - invalid status", func() {
			_, err := rec.MarkAttendance(ctx, service.MarkInput{StudentID: s.ann, Status: "excused"})
			Expect(errors.Is(err, errs.ErrInvalidStatus)).To(BeTrue())
		})

		Specify("sad path - not a student", func() {
			_, err := rec.MarkAttendance(ctx, service.MarkInput{StudentID: s.theo, Status: entity.StatusPresent})
			Expect(errors.Is(err, errs.ErrNotStudent)).To(BeTrue())

			_, err = rec.MarkAttendance(ctx, service.MarkInput{StudentID: "ghost", Status: entity.StatusPresent})
			Expect(errors.Is(err, errs.ErrNotFound)).To(BeTrue())

			_, err = rec.MarkAttendance(ctx, service.MarkInput{Status: entity.StatusPresent})
			Expect(errors.Is(err, errs.ErrUserIDRequired)).To(BeTrue())
		})
	})

	Describe("queries", func() {
		BeforeEach(func() {
			mark(s.ann, entity.StatusPresent)
			mark(s.ben, entity.StatusAbsent)
			mark(s.cat, entity.StatusLate)
			env.Clock.Advance(24 * time.Hour)
			mark(s.ann, entity.StatusAbsent)
			mark(s.ben, entity.StatusPresent)
		})

		Specify("list with a date range", func() {
			records, err := rec.ListAttendance(ctx, "", service.DateRange{From: "2024-03-04", To: "2024-03-04"})
			Expect(err).To(BeNil())
			Expect(records).To(HaveLen(3))

			records, err = rec.ListAttendance(ctx, s.ann, service.DateRange{From: "2024-03-05"})
			Expect(err).To(BeNil())
			Expect(records).To(HaveLen(1))
			Expect(records[0].Status).To(Equal(entity.StatusAbsent))
		})

		Specify("sad path - bad range", func() {
			_, err := rec.ListAttendance(ctx, s.ann, service.DateRange{From: "04/03/2024"})
			Expect(errors.Is(err, errs.ErrInvalidDate)).To(BeTrue())

			_, err = rec.ListAttendance(ctx, s.ann, service.DateRange{From: "2024-03-05", To: "2024-03-04"})
			Expect(errors.Is(err, errs.ErrInvalidDate)).To(BeTrue())
		})

		Specify("a teacher sees their students only", func() {
			records, err := rec.ListForTeacher(ctx, s.tess, service.DateRange{})
			Expect(err).To(BeNil())
			Expect(records).To(HaveLen(4))
			for _, r := range records {
				Expect(r.StudentID).To(BeElementOf(s.ann, s.ben))
			}

			records, err = rec.ListForTeacher(ctx, s.theo, service.DateRange{})
			Expect(err).To(BeNil())
			Expect(records).To(HaveLen(1))
		})

		Specify("a teacher without students sees nothing", func() {
			id, err := env.CreateUser(ctx, "new@school.test", "password", "Nell", entity.RoleTeacher, "")
			Expect(err).To(BeNil())

			records, err := rec.ListForTeacher(ctx, id, service.DateRange{})
			Expect(err).To(BeNil())
			Expect(records).To(BeEmpty())
		})

		Specify("stats per student", func() {
			records, err := rec.ListAttendance(ctx, s.ben, service.DateRange{})
			Expect(err).To(BeNil())
			Expect(service.ComputeStats(records)).To(Equal(service.Stats{Total: 2, Present: 1, Absent: 1, PresentPercent: 50}))
		})

		Specify("daily summary", func() {
			sum, err := rec.DailySummary(ctx, "2024-03-04", "")
			Expect(err).To(BeNil())
			Expect(*sum).To(Equal(service.DailySummary{Date: "2024-03-04", Total: 3, Present: 1, Absent: 1, Late: 1}))

			sum, err = rec.DailySummary(ctx, "", s.tess)
			Expect(err).To(BeNil())
			Expect(*sum).To(Equal(service.DailySummary{Date: "2024-03-05", Total: 2, Present: 1, Absent: 1}))

			sum, err = rec.DailySummary(ctx, "", s.theo)
			Expect(err).To(BeNil())
			Expect(*sum).To(Equal(service.DailySummary{Date: "2024-03-05", Total: 1, Unmarked: 1}))

			_, err = rec.DailySummary(ctx, "yesterday", "")
			Expect(errors.Is(err, errs.ErrInvalidDate)).To(BeTrue())
		})

		Specify("absent on a day", func() {
			records, err := rec.AbsentOn(ctx, "2024-03-04", "")
			Expect(err).To(BeNil())
			Expect(records).To(HaveLen(2))
			for _, r := range records {
				Expect(r.Status).NotTo(Equal(entity.StatusPresent))
			}

			records, err = rec.AbsentOn(ctx, "2024-03-04", s.tess)
			Expect(err).To(BeNil())
			Expect(records).To(HaveLen(1))
			Expect(records[0].StudentID).To(Equal(s.ben))
		})
	})

	Describe("Subscribe", func() {
		Specify("initial snapshot then updates", func() {
			mark(s.ann, entity.StatusAbsent)

			sub, err := rec.Subscribe(ctx, s.ann)
			Expect(err).To(BeNil())
			defer sub.Close()

			var list []*entity.AttendanceRecord
			Eventually(sub.C).Should(Receive(&list))
			Expect(list).To(HaveLen(1))
			Expect(list[0].Status).To(Equal(entity.StatusAbsent))

			mark(s.ann, entity.StatusPresent)
			Eventually(sub.C).Should(Receive(&list))
			Expect(list).To(HaveLen(1))
			Expect(list[0].Status).To(Equal(entity.StatusPresent))
		})

		Specify("other students do not wake the subscriber", func() {
			sub, err := rec.Subscribe(ctx, s.ann)
			Expect(err).To(BeNil())
			defer sub.Close()

			Eventually(sub.C).Should(Receive())
			mark(s.ben, entity.StatusPresent)
			Consistently(sub.C, 200*time.Millisecond).ShouldNot(Receive())
		})

		Specify("close ends the subscription", func() {
			sub, err := rec.Subscribe(ctx, s.ann)
			Expect(err).To(BeNil())
			Eventually(sub.C).Should(Receive())

			sub.Close()
			Eventually(sub.C).Should(BeClosed())
		})

		Specify("cancelling the context ends the subscription", func() {
			subCtx, cancel := context.WithCancel(ctx)
			sub, err := rec.Subscribe(subCtx, s.ann)
			Expect(err).To(BeNil())
			Eventually(sub.C).Should(Receive())

			cancel()
			Eventually(sub.C).Should(BeClosed())
		})

		Specify("sad path - no bus", func() {
			deps := env.Deps
			deps.Bus = nil

			_, err := service.NewRecorder(deps, service.NewFanOut(deps)).Subscribe(ctx, s.ann)
			Expect(errors.Is(err, errs.ErrQueue)).To(BeTrue())
		})
	})
})

type failingNotifier struct{}

func (failingNotifier) Notify(context.Context, service.NotifyInput) error {
	return errs.ErrDatabase
}
