// Package mongostore is the MongoDB backend. Transactions need the server to
// run as a replica set.
package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver"
	"go.uber.org/zap"

	"attendance-backend/errs"
	"attendance-backend/log"
	"attendance-backend/store"
)

const (
	IdentitiesCollection    = "identities"
	UsersCollection         = "users"
	AttendanceCollection    = "attendance"
	NotificationsCollection = "notifications"
	DepartmentsCollection   = "departments"
	ResetsCollection        = "password_resets"
	AuditCollection         = "credential_events"
)

// Collections lists every collection owned by the store.
var Collections = []string{
	IdentitiesCollection,
	UsersCollection,
	AttendanceCollection,
	NotificationsCollection,
	DepartmentsCollection,
	ResetsCollection,
	AuditCollection,
}

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ store.Store = (*Store)(nil)

func New(client *mongo.Client, database string) *Store {
	return &Store{
		client: client,
		db:     client.Database(database),
	}
}

// EnsureIndexes creates the unique, lookup and TTL indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		IdentitiesCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		UsersCollection: {
			{Keys: bson.D{{Key: "role", Value: 1}}},
			{Keys: bson.D{{Key: "created_by", Value: 1}}},
			{Keys: bson.D{{Key: "assigned_teacher", Value: 1}}},
		},
		AttendanceCollection: {
			{Keys: bson.D{{Key: "student_id", Value: 1}, {Key: "date", Value: -1}}},
			{Keys: bson.D{{Key: "date", Value: -1}}},
		},
		NotificationsCollection: {
			{Keys: bson.D{{Key: "student_id", Value: 1}, {Key: "timestamp", Value: -1}}},
		},
		ResetsCollection: {
			{Keys: bson.D{{Key: "token", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
			{Keys: bson.D{{Key: "ttl", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
		},
		AuditCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "at", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			log.Logger.Error("unable to create index", zap.String("collection", name), zap.Error(err))
			return err
		}
	}

	return nil
}

func (s *Store) Identities() store.IdentityRepository {
	return identityRepo{c: s.db.Collection(IdentitiesCollection)}
}

func (s *Store) Users() store.UserRepository {
	return userRepo{c: s.db.Collection(UsersCollection)}
}

func (s *Store) Attendance() store.AttendanceRepository {
	return attendanceRepo{c: s.db.Collection(AttendanceCollection)}
}

func (s *Store) Notifications() store.NotificationRepository {
	return notificationRepo{c: s.db.Collection(NotificationsCollection)}
}

func (s *Store) Departments() store.DepartmentRepository {
	return departmentRepo{c: s.db.Collection(DepartmentsCollection)}
}

func (s *Store) Resets() store.ResetRepository {
	return resetRepo{c: s.db.Collection(ResetsCollection)}
}

func (s *Store) Audit() store.AuditRepository {
	return auditRepo{c: s.db.Collection(AuditCollection)}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// WithTransaction runs fn inside a session transaction. Operations join the
// transaction through the session context handed to fn, which the driver may
// call more than once on transient errors.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx store.Store) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		log.Logger.Error("unable to start session", zap.Error(err))
		return errs.ErrDatabase
	}
	defer session.EndSession(context.Background())

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc, s)
	})
	if err != nil {
		var e *errs.Error
		if errors.As(err, &e) {
			return e
		}
		log.Logger.Error("transaction failed", zap.Error(err))
		return errs.ErrDatabase.WithCause(err)
	}

	return nil
}

// dbError maps driver errors onto the backend error set. Unexpected errors
// keep the driver error as their cause, so WithTransaction still sees labels
// such as TransientTransactionError and retries.
func dbError(err error, msg string, fields ...zap.Field) error {
	if err == mongo.ErrNoDocuments {
		return errs.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return errs.ErrAlreadyExists
	}

	if mongo.IsNetworkError(err) || hasLabel(err, driver.TransientTransactionError) {
		log.Logger.Warn(msg, append(fields, zap.Error(err))...)
	} else {
		log.Logger.Error(msg, append(fields, zap.Error(err))...)
	}
	return errs.ErrDatabase.WithCause(err)
}

func hasLabel(err error, label string) bool {
	var le mongo.LabeledError
	return errors.As(err, &le) && le.HasErrorLabel(label)
}
