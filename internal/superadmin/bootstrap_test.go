package superadmin_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"attendance-backend/entity"
	"attendance-backend/errs"
	"attendance-backend/internal/superadmin"
	"attendance-backend/internal/testenv"
)

var _ = Describe("EnsureAdmin", func() {
	var (
		env *testenv.Env
		ctx = context.Background()
	)

	BeforeEach(func() {
		var err error
		env, err = testenv.New()
		Expect(err).To(BeNil())
	})

	AfterEach(func() {
		env.Close()
	})

	Specify("creates the admin once", func() {
		id, created, err := superadmin.EnsureAdmin(ctx, env.Store, env.Services.Directory, "Root@School.test", "secret1", "Root")
		Expect(err).To(BeNil())
		Expect(created).To(BeTrue())

		u, err := env.Services.Directory.GetByID(ctx, id)
		Expect(err).To(BeNil())
		Expect(u.Role).To(Equal(entity.RoleAdmin))

		again, created, err := superadmin.EnsureAdmin(ctx, env.Store, env.Services.Directory, "root@school.test", "other1", "Root")
		Expect(err).To(BeNil())
		Expect(created).To(BeFalse())
		Expect(again).To(Equal(id))

		_, err = env.Services.Identity.SignIn(ctx, "root@school.test", "secret1")
		Expect(err).To(BeNil())
	})

	Specify("sad path - email held by another role", func() {
		_, err := env.CreateUser(ctx, "t@school.test", "secret1", "T", entity.RoleTeacher, "")
		Expect(err).To(BeNil())

		_, _, err = superadmin.EnsureAdmin(ctx, env.Store, env.Services.Directory, "t@school.test", "secret1", "Root")
		Expect(errors.Is(err, errs.ErrAlreadyExists)).To(BeTrue())
	})

	Specify("sad path - weak password", func() {
		_, _, err := superadmin.EnsureAdmin(ctx, env.Store, env.Services.Directory, "root@school.test", "123", "Root")
		Expect(errors.Is(err, errs.ErrWeakPassword)).To(BeTrue())
	})
})
