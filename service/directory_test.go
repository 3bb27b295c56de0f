package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"attendance-backend/entity"
	"attendance-backend/errs"
	"attendance-backend/events"
	"attendance-backend/internal/testenv"
	"attendance-backend/service"
	"attendance-backend/store"
)

var _ = Describe("Directory", func() {
	var (
		env *testenv.Env
		dir *service.Directory
		s   school
		ctx = context.Background()
	)

	BeforeEach(func() {
		var err error
		env, err = testenv.New()
		Expect(err).To(BeNil())
		dir = env.Services.Directory
		s = seed(env)
	})

	AfterEach(func() {
		env.Close()
	})

	Describe("CreateUser", func() {
		Specify("happy path", func() {
			res, err := dir.CreateUser(ctx, service.CreateUserInput{
				Email:    "  New.Teacher@School.Test ",
				Password: "secret1",
				Name:     " Nora ",
				Role:     entity.RoleTeacher,
				ActorID:  s.admin,
			})
			Expect(err).To(BeNil())
			Expect(res.Message).To(Equal("Teacher created successfully"))

			u, err := dir.GetByID(ctx, res.ID)
			Expect(err).To(BeNil())
			Expect(u.Email).To(Equal("new.teacher@school.test"))
			Expect(u.Name).To(Equal("Nora"))
			Expect(u.Role).To(Equal(entity.RoleTeacher))
			Expect(u.CreatedAt).To(BeTemporally("==", env.Clock.Now()))

			id, err := env.Store.Identities().FindByID(ctx, res.ID)
			Expect(err).To(BeNil())
			Expect(id.Email).To(Equal("new.teacher@school.test"))
			Expect(id.PasswordHash).NotTo(Equal("secret1"))

			audit, err := dir.CredentialEvents(ctx, res.ID)
			Expect(err).To(BeNil())
			Expect(audit).To(HaveLen(1))
			Expect(audit[0].Kind).To(Equal(entity.CredentialCreated))
			Expect(audit[0].ActorID).To(Equal(s.admin))
		})

		Specify("only students keep their teacher links", func() {
			res, err := dir.CreateUser(ctx, service.CreateUserInput{
				Email:           "odd@school.test",
				Password:        "secret1",
				Name:            "Odd",
				Role:            entity.RoleTeacher,
				CreatedBy:       s.tess,
				AssignedTeacher: s.tess,
			})
			Expect(err).To(BeNil())

			u, err := dir.GetByID(ctx, res.ID)
			Expect(err).To(BeNil())
			Expect(u.CreatedBy).To(BeEmpty())
			Expect(u.AssignedTeacher).To(BeEmpty())
		})

		Specify("sad path - email taken leaves no orphan profile", func() {
			before, err := dir.ListAll(ctx, "")
			Expect(err).To(BeNil())

			_, err = dir.CreateUser(ctx, service.CreateUserInput{
				Email:    "ANN@school.test",
				Password: "secret1",
				Name:     "Another Ann",
				Role:     entity.RoleStudent,
			})
			Expect(errors.Is(err, errs.ErrAlreadyExists)).To(BeTrue())

			after, err := dir.ListAll(ctx, "")
			Expect(err).To(BeNil())
			Expect(after).To(HaveLen(len(before)))
		})

		Specify("a student can be assigned at creation", func() {
			res, err := dir.CreateUser(ctx, service.CreateUserInput{
				Email:           "dan@school.test",
				Password:        "secret1",
				Name:            "Dan",
				Role:            entity.RoleStudent,
				AssignedTeacher: s.theo,
			})
			Expect(err).To(BeNil())

			students, err := dir.ListStudentsForTeacher(ctx, s.theo)
			Expect(err).To(BeNil())
			Expect(names(students)).To(ContainElement("Dan"))
			Expect(res.ID).NotTo(BeEmpty())
		})

		Specify("sad path - assigned teacher must be a teacher", func() {
			before, err := dir.ListAll(ctx, "")
			Expect(err).To(BeNil())

			for _, teacher := range []string{s.cat, s.admin, "ghost"} {
				_, err := dir.CreateUser(ctx, service.CreateUserInput{
					Email:           "dan@school.test",
					Password:        "secret1",
					Name:            "Dan",
					Role:            entity.RoleStudent,
					AssignedTeacher: teacher,
				})
				Expect(errors.Is(err, errs.ErrNotTeacher)).To(BeTrue(), "got %v", err)
			}

			after, err := dir.ListAll(ctx, "")
			Expect(err).To(BeNil())
			Expect(after).To(HaveLen(len(before)))

			_, err = env.Store.Identities().FindByEmail(ctx, "dan@school.test")
			Expect(errors.Is(err, errs.ErrNotFound)).To(BeTrue())
		})

		DescribeTable("sad path - invalid input",
			func(in service.CreateUserInput, expected *errs.Error) {
				_, err := dir.CreateUser(ctx, in)
				Expect(errors.Is(err, expected)).To(BeTrue(), "got %v", err)
			},
			Entry("email missing", service.CreateUserInput{Password: "secret1", Name: "N", Role: entity.RoleStudent}, errs.ErrEmailRequired),
			Entry("email malformed", service.CreateUserInput{Email: "nope", Password: "secret1", Name: "N", Role: entity.RoleStudent}, errs.ErrEmailAddressFormat),
			Entry("password missing", service.CreateUserInput{Email: "n@school.test", Name: "N", Role: entity.RoleStudent}, errs.ErrPasswordRequired),
			Entry("password short", service.CreateUserInput{Email: "n@school.test", Password: "12345", Name: "N", Role: entity.RoleStudent}, errs.ErrWeakPassword),
			Entry("name blank", service.CreateUserInput{Email: "n@school.test", Password: "secret1", Name: "  ", Role: entity.RoleStudent}, errs.ErrNameRequired),
			Entry("role unknown", service.CreateUserInput{Email: "n@school.test", Password: "secret1", Name: "N", Role: "janitor"}, errs.ErrInvalidRole),
		)
	})

	Describe("reads", func() {
		Specify("get by id", func() {
			u, err := dir.GetByID(ctx, s.ann)
			Expect(err).To(BeNil())
			Expect(u.Name).To(Equal("Ann"))
			Expect(u.CreatedBy).To(Equal(s.tess))

			_, err = dir.GetByID(ctx, "missing")
			Expect(errors.Is(err, errs.ErrNotFound)).To(BeTrue())

			_, err = dir.GetByID(ctx, "")
			Expect(errors.Is(err, errs.ErrUserIDRequired)).To(BeTrue())
		})

		Specify("list by role", func() {
			students, err := dir.ListAll(ctx, entity.RoleStudent)
			Expect(err).To(BeNil())
			Expect(names(students)).To(Equal([]string{"Ann", "Ben", "Cat"}))

			all, err := dir.ListAll(ctx, "")
			Expect(err).To(BeNil())
			Expect(all).To(HaveLen(6))

			_, err = dir.ListAll(ctx, "janitor")
			Expect(errors.Is(err, errs.ErrInvalidRole)).To(BeTrue())
		})

		Specify("a teacher's students are created or assigned, without duplicates", func() {
			Expect(dir.AssignTeacher(ctx, s.ann, s.tess)).To(Succeed())

			students, err := dir.ListStudentsForTeacher(ctx, s.tess)
			Expect(err).To(BeNil())
			Expect(names(students)).To(ConsistOf("Ann", "Ben"))

			students, err = dir.ListStudentsForTeacher(ctx, s.theo)
			Expect(err).To(BeNil())
			Expect(names(students)).To(ConsistOf("Cat"))
		})
	})

	Describe("UpdateProfile", func() {
		Specify("happy path", func() {
			name := "Annie"
			pic := "https://cdn.school.test/ann.png"
			Expect(dir.UpdateProfile(ctx, s.ann, service.ProfileUpdate{Name: &name, ProfilePicture: &pic})).To(Succeed())

			u, err := dir.GetByID(ctx, s.ann)
			Expect(err).To(BeNil())
			Expect(u.Name).To(Equal("Annie"))
			Expect(u.ProfilePicture).To(Equal(pic))
			Expect(u.Role).To(Equal(entity.RoleStudent))
		})

		Specify("sad path - blank name", func() {
			name := " "
			err := dir.UpdateProfile(ctx, s.ann, service.ProfileUpdate{Name: &name})
			Expect(errors.Is(err, errs.ErrNameRequired)).To(BeTrue())
		})

		Specify("sad path - unknown user", func() {
			name := "X"
			err := dir.UpdateProfile(ctx, "missing", service.ProfileUpdate{Name: &name})
			Expect(errors.Is(err, errs.ErrNotFound)).To(BeTrue())
		})
	})

	Describe("AssignTeacher", func() {
		Specify("move and clear", func() {
			Expect(dir.AssignTeacher(ctx, s.ben, s.theo)).To(Succeed())
			u, err := dir.GetByID(ctx, s.ben)
			Expect(err).To(BeNil())
			Expect(u.AssignedTeacher).To(Equal(s.theo))

			Expect(dir.AssignTeacher(ctx, s.ben, "")).To(Succeed())
			u, err = dir.GetByID(ctx, s.ben)
			Expect(err).To(BeNil())
			Expect(u.AssignedTeacher).To(BeEmpty())
		})

		Specify("sad path - roles", func() {
			Expect(errors.Is(dir.AssignTeacher(ctx, s.tess, s.theo), errs.ErrNotStudent)).To(BeTrue())
			Expect(errors.Is(dir.AssignTeacher(ctx, s.ben, s.cat), errs.ErrNotTeacher)).To(BeTrue())
			Expect(errors.Is(dir.AssignTeacher(ctx, s.ben, "missing"), errs.ErrNotFound)).To(BeTrue())
		})
	})

	Describe("DeleteUserCascade", func() {
		BeforeEach(func() {
			_, err := env.Services.Recorder.MarkAttendance(ctx, service.MarkInput{StudentID: s.ann, Status: entity.StatusAbsent, MarkedBy: s.tess})
			Expect(err).To(BeNil())
			env.Clock.Advance(24 * time.Hour)
			_, err = env.Services.Recorder.MarkAttendance(ctx, service.MarkInput{StudentID: s.ann, Status: entity.StatusPresent, MarkedBy: s.tess})
			Expect(err).To(BeNil())
			_, err = env.Services.Identity.RequestPasswordReset(ctx, "ann@school.test")
			Expect(err).To(BeNil())
		})

		Specify("removes everything the student owns", func() {
			res, err := dir.DeleteUserCascade(ctx, s.ann, s.admin)
			Expect(err).To(BeNil())
			Expect(res.Message).To(Equal(`Student "Ann" deleted successfully.`))

			_, err = dir.GetByID(ctx, s.ann)
			Expect(errors.Is(err, errs.ErrNotFound)).To(BeTrue())

			_, err = env.Store.Identities().FindByID(ctx, s.ann)
			Expect(errors.Is(err, errs.ErrNotFound)).To(BeTrue())

			records, err := env.Services.Recorder.ListAttendance(ctx, s.ann, service.DateRange{})
			Expect(err).To(BeNil())
			Expect(records).To(BeEmpty())

			notifications, err := env.Services.FanOut.List(ctx, s.ann)
			Expect(err).To(BeNil())
			Expect(notifications).To(BeEmpty())

			_, err = env.Services.Identity.SignIn(ctx, "ann@school.test", "password")
			Expect(errors.Is(err, errs.ErrInvalidEmailOrPassword)).To(BeTrue())

			audit, err := dir.CredentialEvents(ctx, s.ann)
			Expect(err).To(BeNil())
			Expect(audit[len(audit)-1].Kind).To(Equal(entity.CredentialDeleted))
			Expect(audit[len(audit)-1].ActorID).To(Equal(s.admin))
		})

		Specify("other students are untouched", func() {
			_, err := env.Services.Recorder.MarkAttendance(ctx, service.MarkInput{StudentID: s.ben, Status: entity.StatusLate, MarkedBy: s.tess})
			Expect(err).To(BeNil())

			_, err = dir.DeleteUserCascade(ctx, s.ann, s.admin)
			Expect(err).To(BeNil())

			records, err := env.Services.Recorder.ListAttendance(ctx, "", service.DateRange{})
			Expect(err).To(BeNil())
			Expect(records).To(HaveLen(1))
			Expect(records[0].StudentID).To(Equal(s.ben))
		})

		Specify("subscribers see the emptied lists", func() {
			sub, err := env.Services.FanOut.Subscribe(ctx, s.ann)
			Expect(err).To(BeNil())
			defer sub.Close()

			var list []*entity.Notification
			Eventually(sub.C).Should(Receive(&list))
			Expect(list).To(HaveLen(2))

			_, err = dir.DeleteUserCascade(ctx, s.ann, s.admin)
			Expect(err).To(BeNil())

			Eventually(sub.C).Should(Receive(&list))
			Expect(list).To(BeEmpty())
		})

		Specify("a profile without identity is still removed", func() {
			Expect(env.Store.Identities().Delete(ctx, s.ann)).To(Succeed())

			_, err := dir.DeleteUserCascade(ctx, s.ann, s.admin)
			Expect(err).To(BeNil())

			_, err = dir.GetByID(ctx, s.ann)
			Expect(errors.Is(err, errs.ErrNotFound)).To(BeTrue())
		})

		Specify("sad path - admins stay", func() {
			_, err := dir.DeleteUserCascade(ctx, s.admin, s.admin)
			Expect(errors.Is(err, errs.ErrAdminUndeletable)).To(BeTrue())

			_, err = dir.GetByID(ctx, s.admin)
			Expect(err).To(BeNil())
		})

		Specify("sad path - unknown user changes nothing", func() {
			_, err := dir.DeleteUserCascade(ctx, "missing", s.admin)
			Expect(errors.Is(err, errs.ErrNotFound)).To(BeTrue())

			records, err := env.Store.Attendance().Find(ctx, store.AttendanceQuery{})
			Expect(err).To(BeNil())
			Expect(records).To(HaveLen(2))
		})

		Specify("announces both changes", func() {
			attendance, err := env.Bus.Subscribe(ctx, events.AttendanceChanged, s.ann)
			Expect(err).To(BeNil())
			notifications, err := env.Bus.Subscribe(ctx, events.NotificationsChanged, s.ann)
			Expect(err).To(BeNil())

			_, err = dir.DeleteUserCascade(ctx, s.ann, s.admin)
			Expect(err).To(BeNil())
			Eventually(attendance).Should(Receive())
			Eventually(notifications).Should(Receive())
		})
	})
})

func names(users []*entity.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.Name
	}
	return out
}
