// Package storetest holds the behaviour every store.Store backend must show.
package storetest

import (
	"context"
	"errors"
	"sync"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"attendance-backend/entity"
	"attendance-backend/errs"
	"attendance-backend/store"
)

// at is a fixed instant truncated to what every backend stores.
var at = time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)

func str(s string) *string { return &s }

// Contract registers the shared specs. newStore must return an empty store.
func Contract(newStore func() store.Store) {
	var (
		s   store.Store
		ctx context.Context
	)

	BeforeEach(func() {
		s = newStore()
		ctx = context.Background()
	})

	Describe("identities", func() {
		BeforeEach(func() {
			Expect(s.Identities().Insert(ctx, &entity.Identity{ID: "i1", Email: "a@school.test", PasswordHash: "h", CreatedAt: at})).To(Succeed())
		})

		Specify("email is unique", func() {
			err := s.Identities().Insert(ctx, &entity.Identity{ID: "i2", Email: "a@school.test"})
			Expect(errors.Is(err, errs.ErrAlreadyExists)).To(BeTrue())
		})

		Specify("found by id and email", func() {
			id, err := s.Identities().FindByEmail(ctx, "a@school.test")
			Expect(err).To(BeNil())
			Expect(id.ID).To(Equal("i1"))

			_, err = s.Identities().FindByEmail(ctx, "b@school.test")
			Expect(errors.Is(err, errs.ErrNotFound)).To(BeTrue())
		})

		Specify("password and token version", func() {
			later := at.Add(time.Hour)
			Expect(s.Identities().SetPassword(ctx, "i1", "h2", later)).To(Succeed())
			Expect(s.Identities().BumpTokenVersion(ctx, "i1")).To(Succeed())

			id, err := s.Identities().FindByID(ctx, "i1")
			Expect(err).To(BeNil())
			Expect(id.PasswordHash).To(Equal("h2"))
			Expect(id.PasswordChangedAt).To(BeTemporally("==", later))
			Expect(id.TokenVersion).To(Equal(int64(1)))

			err = s.Identities().SetPassword(ctx, "missing", "h", later)
			Expect(errors.Is(err, errs.ErrNotFound)).To(BeTrue())
		})

		Specify("delete", func() {
			Expect(s.Identities().Delete(ctx, "i1")).To(Succeed())
			err := s.Identities().Delete(ctx, "i1")
			Expect(errors.Is(err, errs.ErrNotFound)).To(BeTrue())
		})
	})

	Describe("users", func() {
		BeforeEach(func() {
			for _, u := range []*entity.User{
				{ID: "t1", Name: "Tess", Role: entity.RoleTeacher},
				{ID: "s1", Name: "Bea", Role: entity.RoleStudent, CreatedBy: "t1"},
				{ID: "s2", Name: "Abe", Role: entity.RoleStudent, AssignedTeacher: "t1"},
				{ID: "s3", Name: "Cy", Role: entity.RoleStudent},
			} {
				Expect(s.Users().Insert(ctx, u)).To(Succeed())
			}
		})

		Specify("list filters and sorts by name", func() {
			all, err := s.Users().List(ctx, store.UserQuery{})
			Expect(err).To(BeNil())
			Expect(ids(all)).To(Equal([]string{"s2", "s1", "s3", "t1"}))

			students, err := s.Users().List(ctx, store.UserQuery{Role: entity.RoleStudent})
			Expect(err).To(BeNil())
			Expect(ids(students)).To(Equal([]string{"s2", "s1", "s3"}))

			created, err := s.Users().List(ctx, store.UserQuery{CreatedBy: "t1"})
			Expect(err).To(BeNil())
			Expect(ids(created)).To(Equal([]string{"s1"}))

			assigned, err := s.Users().List(ctx, store.UserQuery{AssignedTeacher: "t1"})
			Expect(err).To(BeNil())
			Expect(ids(assigned)).To(Equal([]string{"s2"}))
		})

		Specify("update applies only the set fields", func() {
			Expect(s.Users().Update(ctx, "s1", store.UserPatch{ProfilePicture: str("pic.png"), UpdatedAt: at})).To(Succeed())
			Expect(s.Users().Update(ctx, "s2", store.UserPatch{AssignedTeacher: str(""), UpdatedAt: at})).To(Succeed())

			u, err := s.Users().FindByID(ctx, "s1")
			Expect(err).To(BeNil())
			Expect(u.Name).To(Equal("Bea"))
			Expect(u.ProfilePicture).To(Equal("pic.png"))
			Expect(u.CreatedBy).To(Equal("t1"))

			u, err = s.Users().FindByID(ctx, "s2")
			Expect(err).To(BeNil())
			Expect(u.AssignedTeacher).To(BeEmpty())

			err = s.Users().Update(ctx, "missing", store.UserPatch{Name: str("x")})
			Expect(errors.Is(err, errs.ErrNotFound)).To(BeTrue())
		})

		Specify("duplicate ids are rejected", func() {
			err := s.Users().Insert(ctx, &entity.User{ID: "s1", Name: "Again", Role: entity.RoleStudent})
			Expect(errors.Is(err, errs.ErrAlreadyExists)).To(BeTrue())
		})

		Specify("delete", func() {
			Expect(s.Users().Delete(ctx, "s1")).To(Succeed())
			_, err := s.Users().FindByID(ctx, "s1")
			Expect(errors.Is(err, errs.ErrNotFound)).To(BeTrue())
		})
	})

	Describe("attendance", func() {
		mark := func(student, date string, status entity.Status) {
			Expect(s.Attendance().Upsert(ctx, &entity.AttendanceRecord{
				ID:        entity.AttendanceID(student, date),
				StudentID: student,
				Date:      date,
				Status:    status,
				MarkedBy:  "t1",
				Timestamp: at,
			})).To(Succeed())
		}

		Specify("one record per student and day", func() {
			mark("s1", "2024-03-04", entity.StatusAbsent)
			mark("s1", "2024-03-04", entity.StatusPresent)

			records, err := s.Attendance().Find(ctx, store.AttendanceQuery{StudentIDs: []string{"s1"}})
			Expect(err).To(BeNil())
			Expect(records).To(HaveLen(1))
			Expect(records[0].Status).To(Equal(entity.StatusPresent))
			Expect(records[0].ID).To(Equal("s1:2024-03-04"))
		})

		Specify("concurrent marks of one day leave one record", func() {
			statuses := []entity.Status{entity.StatusPresent, entity.StatusAbsent, entity.StatusLate}

			var wg sync.WaitGroup
			failures := make(chan error, 50)
			for i := 0; i < 50; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					err := s.Attendance().Upsert(ctx, &entity.AttendanceRecord{
						ID:        entity.AttendanceID("s1", "2024-03-04"),
						StudentID: "s1",
						Date:      "2024-03-04",
						Status:    statuses[i%len(statuses)],
						MarkedBy:  "t1",
						Timestamp: at.Add(time.Duration(i) * time.Second),
					})
					if err != nil {
						failures <- err
					}
				}(i)
			}
			wg.Wait()
			close(failures)
			Expect(failures).To(BeEmpty())

			records, err := s.Attendance().Find(ctx, store.AttendanceQuery{StudentIDs: []string{"s1"}})
			Expect(err).To(BeNil())
			Expect(records).To(HaveLen(1))
			Expect(records[0].ID).To(Equal("s1:2024-03-04"))
			Expect(statuses).To(ContainElement(records[0].Status))
		})

		Specify("ranges are inclusive and newest first", func() {
			mark("s1", "2024-03-01", entity.StatusPresent)
			mark("s1", "2024-03-02", entity.StatusLate)
			mark("s1", "2024-03-03", entity.StatusAbsent)
			mark("s2", "2024-03-02", entity.StatusPresent)

			records, err := s.Attendance().Find(ctx, store.AttendanceQuery{From: "2024-03-02", To: "2024-03-03"})
			Expect(err).To(BeNil())
			Expect(recordIDs(records)).To(Equal([]string{"s1:2024-03-03", "s1:2024-03-02", "s2:2024-03-02"}))

			records, err = s.Attendance().Find(ctx, store.AttendanceQuery{StudentIDs: []string{"s2", "s3"}})
			Expect(err).To(BeNil())
			Expect(recordIDs(records)).To(Equal([]string{"s2:2024-03-02"}))
		})

		Specify("delete by student", func() {
			mark("s1", "2024-03-01", entity.StatusPresent)
			mark("s1", "2024-03-02", entity.StatusPresent)
			mark("s2", "2024-03-02", entity.StatusPresent)

			n, err := s.Attendance().DeleteByStudent(ctx, "s1")
			Expect(err).To(BeNil())
			Expect(n).To(Equal(int64(2)))

			records, err := s.Attendance().Find(ctx, store.AttendanceQuery{})
			Expect(err).To(BeNil())
			Expect(recordIDs(records)).To(Equal([]string{"s2:2024-03-02"}))
		})
	})

	Describe("notifications", func() {
		BeforeEach(func() {
			for i, id := range []string{"n1", "n2", "n3"} {
				Expect(s.Notifications().Insert(ctx, &entity.Notification{
					ID:        id,
					StudentID: "s1",
					Title:     "Attendance Marked",
					Type:      entity.NotificationAttendance,
					Timestamp: at.Add(time.Duration(i) * time.Minute),
				})).To(Succeed())
			}
			Expect(s.Notifications().Insert(ctx, &entity.Notification{ID: "other", StudentID: "s2", Timestamp: at})).To(Succeed())
		})

		Specify("newest first", func() {
			list, err := s.Notifications().ListByStudent(ctx, "s1")
			Expect(err).To(BeNil())
			Expect(notificationIDs(list)).To(Equal([]string{"n3", "n2", "n1"}))
			Expect(list[0].Read).To(BeFalse())
		})

		Specify("mark read is idempotent", func() {
			n, err := s.Notifications().MarkRead(ctx, "n2")
			Expect(err).To(BeNil())
			Expect(n.Read).To(BeTrue())
			Expect(n.StudentID).To(Equal("s1"))

			n, err = s.Notifications().MarkRead(ctx, "n2")
			Expect(err).To(BeNil())
			Expect(n.Read).To(BeTrue())

			_, err = s.Notifications().MarkRead(ctx, "missing")
			Expect(errors.Is(err, errs.ErrNotFound)).To(BeTrue())
		})

		Specify("delete by student", func() {
			n, err := s.Notifications().DeleteByStudent(ctx, "s1")
			Expect(err).To(BeNil())
			Expect(n).To(Equal(int64(3)))

			list, err := s.Notifications().ListByStudent(ctx, "s1")
			Expect(err).To(BeNil())
			Expect(list).To(BeEmpty())

			_, err = s.Notifications().FindByID(ctx, "other")
			Expect(err).To(BeNil())
		})
	})

	Describe("departments", func() {
		Specify("crud", func() {
			Expect(s.Departments().Insert(ctx, &entity.Department{ID: "d2", Name: "Science", TeacherIDs: []string{"t1"}})).To(Succeed())
			Expect(s.Departments().Insert(ctx, &entity.Department{ID: "d1", Name: "Arts"})).To(Succeed())

			list, err := s.Departments().List(ctx)
			Expect(err).To(BeNil())
			Expect(list).To(HaveLen(2))
			Expect(list[0].Name).To(Equal("Arts"))

			teachers := []string{"t1", "t2"}
			Expect(s.Departments().Update(ctx, "d2", store.DepartmentPatch{Description: str("Labs"), TeacherIDs: &teachers, UpdatedAt: at})).To(Succeed())

			d, err := s.Departments().FindByID(ctx, "d2")
			Expect(err).To(BeNil())
			Expect(d.Name).To(Equal("Science"))
			Expect(d.Description).To(Equal("Labs"))
			Expect(d.TeacherIDs).To(Equal([]string{"t1", "t2"}))

			Expect(s.Departments().Delete(ctx, "d2")).To(Succeed())
			err = s.Departments().Delete(ctx, "d2")
			Expect(errors.Is(err, errs.ErrNotFound)).To(BeTrue())
		})
	})

	Describe("password resets", func() {
		Specify("found by token and removed by user", func() {
			Expect(s.Resets().Insert(ctx, &entity.PasswordReset{ID: "r1", UserID: "u1", Token: "tok1", TTL: at.Add(time.Hour)})).To(Succeed())
			Expect(s.Resets().Insert(ctx, &entity.PasswordReset{ID: "r2", UserID: "u1", Token: "tok2", TTL: at.Add(time.Hour)})).To(Succeed())

			r, err := s.Resets().FindByToken(ctx, "tok2")
			Expect(err).To(BeNil())
			Expect(r.UserID).To(Equal("u1"))

			n, err := s.Resets().DeleteByUser(ctx, "u1")
			Expect(err).To(BeNil())
			Expect(n).To(Equal(int64(2)))

			_, err = s.Resets().FindByToken(ctx, "tok1")
			Expect(errors.Is(err, errs.ErrNotFound)).To(BeTrue())
		})
	})

	Describe("audit", func() {
		Specify("oldest first per user", func() {
			Expect(s.Audit().Insert(ctx, &entity.CredentialEvent{ID: "e1", UserID: "u1", Kind: entity.CredentialCreated, At: at})).To(Succeed())
			Expect(s.Audit().Insert(ctx, &entity.CredentialEvent{ID: "e2", UserID: "u2", Kind: entity.CredentialCreated, At: at})).To(Succeed())
			Expect(s.Audit().Insert(ctx, &entity.CredentialEvent{ID: "e3", UserID: "u1", Kind: entity.CredentialChanged, At: at.Add(time.Minute)})).To(Succeed())

			list, err := s.Audit().ListByUser(ctx, "u1")
			Expect(err).To(BeNil())
			Expect(list).To(HaveLen(2))
			Expect(list[0].Kind).To(Equal(entity.CredentialCreated))
			Expect(list[1].Kind).To(Equal(entity.CredentialChanged))
		})
	})

	Describe("transactions", func() {
		Specify("commit", func() {
			err := s.WithTransaction(ctx, func(ctx context.Context, tx store.Store) error {
				if err := tx.Identities().Insert(ctx, &entity.Identity{ID: "u1", Email: "u1@school.test"}); err != nil {
					return err
				}
				return tx.Users().Insert(ctx, &entity.User{ID: "u1", Name: "U", Role: entity.RoleStudent})
			})
			Expect(err).To(BeNil())

			_, err = s.Identities().FindByID(ctx, "u1")
			Expect(err).To(BeNil())
			_, err = s.Users().FindByID(ctx, "u1")
			Expect(err).To(BeNil())
		})

		Specify("a failing step rolls back the earlier ones", func() {
			Expect(s.Users().Insert(ctx, &entity.User{ID: "u1", Name: "Taken", Role: entity.RoleStudent})).To(Succeed())

			err := s.WithTransaction(ctx, func(ctx context.Context, tx store.Store) error {
				if err := tx.Identities().Insert(ctx, &entity.Identity{ID: "u1", Email: "u1@school.test"}); err != nil {
					return err
				}
				return tx.Users().Insert(ctx, &entity.User{ID: "u1", Name: "U", Role: entity.RoleStudent})
			})
			Expect(errors.Is(err, errs.ErrAlreadyExists)).To(BeTrue())

			_, err = s.Identities().FindByEmail(ctx, "u1@school.test")
			Expect(errors.Is(err, errs.ErrNotFound)).To(BeTrue())
		})

		Specify("backend errors pass through unchanged", func() {
			err := s.WithTransaction(ctx, func(ctx context.Context, tx store.Store) error {
				return errs.ErrAdminUndeletable
			})
			Expect(errors.Is(err, errs.ErrAdminUndeletable)).To(BeTrue())
		})
	})
}

func ids(users []*entity.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.ID
	}
	return out
}

func recordIDs(records []*entity.AttendanceRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func notificationIDs(list []*entity.Notification) []string {
	out := make([]string, len(list))
	for i, n := range list {
		out[i] = n.ID
	}
	return out
}
