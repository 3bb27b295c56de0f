package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"attendance-backend/entity"
	"attendance-backend/errs"
	"attendance-backend/internal/testenv"
	"attendance-backend/service"
)

var _ = Describe("Functions", func() {
	var (
		env *testenv.Env
		fns *service.Functions
		s   school
		ctx = context.Background()
	)

	input := func(email string, role entity.Role) service.CreateUserInput {
		return service.CreateUserInput{Email: email, Password: "secret1", Name: "New", Role: role}
	}

	BeforeEach(func() {
		var err error
		env, err = testenv.New()
		Expect(err).To(BeNil())
		fns = env.Services.Functions
		s = seed(env)
	})

	AfterEach(func() {
		env.Close()
	})

	Describe("CreateUser", func() {
		Specify("admins create any role", func() {
			for _, role := range []entity.Role{entity.RoleAdmin, entity.RoleTeacher, entity.RoleStudent} {
				res, err := fns.CreateUser(ctx, s.admin, input("new-"+string(role)+"@school.test", role))
				Expect(err).To(BeNil())
				Expect(res.Message).To(Equal(role.Title() + " created successfully"))

				u, err := env.Services.Directory.GetByID(ctx, res.ID)
				Expect(err).To(BeNil())
				Expect(u.Role).To(Equal(role))
				Expect(u.CreatedBy).To(BeEmpty())
			}
		})

		Specify("teachers create their own students", func() {
			in := input("new@school.test", entity.RoleStudent)
			in.CreatedBy = s.theo

			res, err := fns.CreateUser(ctx, s.tess, in)
			Expect(err).To(BeNil())
			Expect(res.Message).To(Equal("Student created successfully"))

			u, err := env.Services.Directory.GetByID(ctx, res.ID)
			Expect(err).To(BeNil())
			Expect(u.CreatedBy).To(Equal(s.tess))

			students, err := env.Services.Directory.ListStudentsForTeacher(ctx, s.tess)
			Expect(err).To(BeNil())
			Expect(names(students)).To(ContainElement("New"))

			audit, err := env.Services.Directory.CredentialEvents(ctx, res.ID)
			Expect(err).To(BeNil())
			Expect(audit[0].ActorID).To(Equal(s.tess))
		})

		Specify("sad path - teacher creating a teacher", func() {
			_, err := fns.CreateUser(ctx, s.tess, input("new@school.test", entity.RoleTeacher))
			Expect(errors.Is(err, errs.ErrTeacherCreatesStudents)).To(BeTrue())
		})

		Specify("sad path - teacher assigning a non-teacher", func() {
			in := input("new@school.test", entity.RoleStudent)
			in.AssignedTeacher = s.ann

			_, err := fns.CreateUser(ctx, s.tess, in)
			Expect(errors.Is(err, errs.ErrNotTeacher)).To(BeTrue())
		})

		Specify("sad path - student caller", func() {
			_, err := fns.CreateUser(ctx, s.ann, input("new@school.test", entity.RoleStudent))
			Expect(errors.Is(err, errs.ErrStudentCannotCreate)).To(BeTrue())
		})

		Specify("sad path - caller without profile", func() {
			_, err := fns.CreateUser(ctx, "ghost", input("new@school.test", entity.RoleStudent))
			Expect(errors.Is(err, errs.ErrCallerNotFound)).To(BeTrue())

			_, err = fns.CreateUser(ctx, "", input("new@school.test", entity.RoleStudent))
			Expect(errors.Is(err, errs.ErrUnauthorized)).To(BeTrue())
		})

		Specify("sad path - missing fields", func() {
			in := input("new@school.test", entity.RoleStudent)
			in.Name = ""

			_, err := fns.CreateUser(ctx, s.admin, in)
			Expect(errors.Is(err, errs.ErrValidation)).To(BeTrue())
		})

		Specify("sad path - unknown role", func() {
			_, err := fns.CreateUser(ctx, s.admin, input("new@school.test", "principal"))
			Expect(errors.Is(err, errs.ErrInvalidRole)).To(BeTrue())
		})

		Specify("sad path - email in use", func() {
			_, err := fns.CreateUser(ctx, s.admin, input("tess@school.test", entity.RoleTeacher))
			Expect(errors.Is(err, errs.ErrAlreadyExists)).To(BeTrue())
		})
	})

	Describe("DeleteUser", func() {
		Specify("admins delete teachers and students", func() {
			res, err := fns.DeleteUser(ctx, s.admin, s.theo)
			Expect(err).To(BeNil())
			Expect(res.Message).To(Equal(`Teacher "Theo" deleted successfully.`))

			res, err = fns.DeleteUser(ctx, s.admin, s.cat)
			Expect(err).To(BeNil())
			Expect(res.Message).To(Equal(`Student "Cat" deleted successfully.`))
		})

		Specify("sad path - not an admin", func() {
			_, err := fns.DeleteUser(ctx, s.tess, s.ann)
			Expect(errors.Is(err, errs.ErrNotAdmin)).To(BeTrue())

			_, err = env.Services.Directory.GetByID(ctx, s.ann)
			Expect(err).To(BeNil())
		})

		Specify("sad path - admin target", func() {
			_, err := fns.DeleteUser(ctx, s.admin, s.admin)
			Expect(errors.Is(err, errs.ErrAdminUndeletable)).To(BeTrue())
		})

		Specify("sad path - missing target", func() {
			_, err := fns.DeleteUser(ctx, s.admin, "")
			Expect(errors.Is(err, errs.ErrUserIDRequired)).To(BeTrue())

			_, err = fns.DeleteUser(ctx, s.admin, "ghost")
			Expect(errors.Is(err, errs.ErrNotFound)).To(BeTrue())
		})
	})
})
