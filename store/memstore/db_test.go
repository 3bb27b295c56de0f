package memstore_test

import (
	"context"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"attendance-backend/entity"
	"attendance-backend/store"
	"attendance-backend/store/memstore"
	"attendance-backend/store/storetest"
)

var _ = Describe("DB", func() {
	storetest.Contract(func() store.Store { return memstore.New() })

	Specify("returned documents are copies", func() {
		db := memstore.New()
		ctx := context.Background()
		Expect(db.Departments().Insert(ctx, &entity.Department{ID: "d1", Name: "Arts", TeacherIDs: []string{"t1"}})).To(Succeed())

		d, err := db.Departments().FindByID(ctx, "d1")
		Expect(err).To(BeNil())
		d.Name = "Changed"
		d.TeacherIDs[0] = "t9"

		d, err = db.Departments().FindByID(ctx, "d1")
		Expect(err).To(BeNil())
		Expect(d.Name).To(Equal("Arts"))
		Expect(d.TeacherIDs).To(Equal([]string{"t1"}))
	})
})
