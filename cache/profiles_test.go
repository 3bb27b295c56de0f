package cache_test

import (
	"context"
	"time"

	"github.com/alicebob/miniredis/v2"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"attendance-backend/cache"
	"attendance-backend/entity"
)

var _ = Describe("Profiles", func() {
	var (
		mr       *miniredis.Miniredis
		profiles *cache.Profiles
		ctx      = context.Background()
		user     = &entity.User{ID: "u1", Email: "a@b.c", Name: "Ann", Role: entity.RoleStudent, AssignedTeacher: "t1"}
	)

	BeforeEach(func() {
		var err error
		mr, err = miniredis.Run()
		Expect(err).To(BeNil())
		profiles = cache.NewProfiles(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
	})

	AfterEach(func() {
		mr.Close()
	})

	Specify("miss on an unknown id", func() {
		_, err := profiles.Get(ctx, "u1")
		Expect(err).To(Equal(cache.ErrMiss))
	})

	Specify("round trips a profile", func() {
		Expect(profiles.Set(ctx, user)).To(Succeed())

		u, err := profiles.Get(ctx, "u1")
		Expect(err).To(BeNil())
		Expect(u.Name).To(Equal("Ann"))
		Expect(u.Role).To(Equal(entity.RoleStudent))
		Expect(u.AssignedTeacher).To(Equal("t1"))
	})

	Specify("entries expire", func() {
		Expect(profiles.Set(ctx, user)).To(Succeed())
		mr.FastForward(2 * time.Minute)

		_, err := profiles.Get(ctx, "u1")
		Expect(err).To(Equal(cache.ErrMiss))
	})

	Specify("invalidate drops the entry", func() {
		Expect(profiles.Set(ctx, user)).To(Succeed())
		Expect(profiles.Invalidate(ctx, "u1")).To(Succeed())

		_, err := profiles.Get(ctx, "u1")
		Expect(err).To(Equal(cache.ErrMiss))
	})

	Specify("a fill after invalidation is ignored", func() {
		Expect(profiles.Invalidate(ctx, "u1")).To(Succeed())
		Expect(profiles.Set(ctx, user)).To(Succeed())

		_, err := profiles.Get(ctx, "u1")
		Expect(err).To(Equal(cache.ErrMiss))

		mr.FastForward(2 * time.Minute)
		Expect(profiles.Set(ctx, user)).To(Succeed())
		u, err := profiles.Get(ctx, "u1")
		Expect(err).To(BeNil())
		Expect(u.Name).To(Equal("Ann"))
	})

	Specify("set keeps the first fill", func() {
		Expect(profiles.Set(ctx, user)).To(Succeed())
		renamed := *user
		renamed.Name = "Annabel"
		Expect(profiles.Set(ctx, &renamed)).To(Succeed())

		u, err := profiles.Get(ctx, "u1")
		Expect(err).To(BeNil())
		Expect(u.Name).To(Equal("Ann"))
	})

	Specify("ping fails when redis is gone", func() {
		Expect(profiles.Ping(ctx)).To(Succeed())
		mr.Close()
		Expect(profiles.Ping(ctx)).NotTo(Succeed())
	})
})
