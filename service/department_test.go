package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"attendance-backend/errs"
	"attendance-backend/internal/testenv"
	"attendance-backend/service"
)

var _ = Describe("Departments", func() {
	var (
		env  *testenv.Env
		deps *service.Departments
		s    school
		ctx  = context.Background()
	)

	BeforeEach(func() {
		var err error
		env, err = testenv.New()
		Expect(err).To(BeNil())
		deps = env.Services.Departments
		s = seed(env)
	})

	AfterEach(func() {
		env.Close()
	})

	Specify("create, update and list", func() {
		id, err := deps.Create(ctx, service.DepartmentInput{Name: " Science ", Description: "Labs", TeacherIDs: []string{s.tess, s.tess, ""}})
		Expect(err).To(BeNil())
		_, err = deps.Create(ctx, service.DepartmentInput{Name: "Arts"})
		Expect(err).To(BeNil())

		d, err := deps.Get(ctx, id)
		Expect(err).To(BeNil())
		Expect(d.Name).To(Equal("Science"))
		Expect(d.TeacherIDs).To(Equal([]string{s.tess}))

		teachers := []string{s.tess, s.theo}
		Expect(deps.Update(ctx, id, service.DepartmentUpdate{TeacherIDs: &teachers})).To(Succeed())

		list, err := deps.List(ctx)
		Expect(err).To(BeNil())
		Expect(list).To(HaveLen(2))
		Expect(list[0].Name).To(Equal("Arts"))
		Expect(list[1].TeacherIDs).To(Equal([]string{s.tess, s.theo}))
		Expect(list[1].Description).To(Equal("Labs"))
	})

	Specify("delete leaves the teachers alone", func() {
		id, err := deps.Create(ctx, service.DepartmentInput{Name: "Science", TeacherIDs: []string{s.tess}})
		Expect(err).To(BeNil())

		Expect(deps.Delete(ctx, id)).To(Succeed())

		_, err = deps.Get(ctx, id)
		Expect(errors.Is(err, errs.ErrNotFound)).To(BeTrue())

		u, err := env.Services.Directory.GetByID(ctx, s.tess)
		Expect(err).To(BeNil())
		Expect(u.Name).To(Equal("Tess"))

		students, err := env.Services.Directory.ListStudentsForTeacher(ctx, s.tess)
		Expect(err).To(BeNil())
		Expect(students).To(HaveLen(2))
	})

	Specify("sad path", func() {
		_, err := deps.Create(ctx, service.DepartmentInput{Name: "  "})
		Expect(errors.Is(err, errs.ErrNameRequired)).To(BeTrue())

		blank := ""
		Expect(errors.Is(deps.Update(ctx, "missing", service.DepartmentUpdate{}), errs.ErrNotFound)).To(BeTrue())
		Expect(errors.Is(deps.Update(ctx, "x", service.DepartmentUpdate{Name: &blank}), errs.ErrNameRequired)).To(BeTrue())
		Expect(errors.Is(deps.Delete(ctx, ""), errs.ErrInvalidID)).To(BeTrue())
		Expect(errors.Is(deps.Delete(ctx, "missing"), errs.ErrNotFound)).To(BeTrue())
	})
})
