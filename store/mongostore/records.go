package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"attendance-backend/entity"
	"attendance-backend/errs"
	"attendance-backend/store"
)

type attendanceRepo struct {
	c *mongo.Collection
}

func (r attendanceRepo) Upsert(ctx context.Context, rec *entity.AttendanceRecord) error {
	update := bson.M{"$set": bson.M{
		"student_id": rec.StudentID,
		"date":       rec.Date,
		"status":     rec.Status,
		"marked_by":  rec.MarkedBy,
		"notes":      rec.Notes,
		"timestamp":  rec.Timestamp,
	}}
	opts := options.Update().SetUpsert(true)

	_, err := r.c.UpdateOne(ctx, bson.M{"_id": rec.ID}, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		// Two upserts raced to insert the same key; the loser now matches the
		// winner's document and updates it.
		_, err = r.c.UpdateOne(ctx, bson.M{"_id": rec.ID}, update, opts)
	}
	if err != nil {
		return dbError(err, "failed upserting attendance", zap.String("id", rec.ID))
	}

	return nil
}

func (r attendanceRepo) Find(ctx context.Context, q store.AttendanceQuery) ([]*entity.AttendanceRecord, error) {
	filter := bson.M{}
	if len(q.StudentIDs) == 1 {
		filter["student_id"] = q.StudentIDs[0]
	} else if len(q.StudentIDs) > 1 {
		filter["student_id"] = bson.M{"$in": q.StudentIDs}
	}

	date := bson.M{}
	if q.From != "" {
		date["$gte"] = q.From
	}
	if q.To != "" {
		date["$lte"] = q.To
	}
	if len(date) > 0 {
		filter["date"] = date
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "student_id", Value: 1}})
	cursor, err := r.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, dbError(err, "database error")
	}
	defer cursor.Close(context.Background())

	records := make([]*entity.AttendanceRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, dbError(err, "decode error")
	}
	return records, nil
}

func (r attendanceRepo) DeleteByStudent(ctx context.Context, studentID string) (int64, error) {
	res, err := r.c.DeleteMany(ctx, bson.M{"student_id": studentID})
	if err != nil {
		return 0, dbError(err, "failed deleting attendance", zap.String("studentID", studentID))
	}
	return res.DeletedCount, nil
}

type notificationRepo struct {
	c *mongo.Collection
}

func (r notificationRepo) Insert(ctx context.Context, n *entity.Notification) error {
	if _, err := r.c.InsertOne(ctx, n); err != nil {
		return dbError(err, "failed inserting notification", zap.String("studentID", n.StudentID))
	}
	return nil
}

func (r notificationRepo) FindByID(ctx context.Context, id string) (*entity.Notification, error) {
	n := &entity.Notification{}
	if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(n); err != nil {
		return nil, dbError(err, "database error", zap.String("id", id))
	}
	return n, nil
}

func (r notificationRepo) ListByStudent(ctx context.Context, studentID string) ([]*entity.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.c.Find(ctx, bson.M{"student_id": studentID}, opts)
	if err != nil {
		return nil, dbError(err, "database error", zap.String("studentID", studentID))
	}
	defer cursor.Close(context.Background())

	list := make([]*entity.Notification, 0)
	if err := cursor.All(ctx, &list); err != nil {
		return nil, dbError(err, "decode error")
	}
	return list, nil
}

func (r notificationRepo) MarkRead(ctx context.Context, id string) (*entity.Notification, error) {
	n := &entity.Notification{}
	err := r.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"read": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(n)
	if err != nil {
		return nil, dbError(err, "failed marking notification read", zap.String("id", id))
	}
	return n, nil
}

func (r notificationRepo) DeleteByStudent(ctx context.Context, studentID string) (int64, error) {
	res, err := r.c.DeleteMany(ctx, bson.M{"student_id": studentID})
	if err != nil {
		return 0, dbError(err, "failed deleting notifications", zap.String("studentID", studentID))
	}
	return res.DeletedCount, nil
}

type departmentRepo struct {
	c *mongo.Collection
}

func (r departmentRepo) Insert(ctx context.Context, d *entity.Department) error {
	if d.TeacherIDs == nil {
		d.TeacherIDs = []string{}
	}
	if _, err := r.c.InsertOne(ctx, d); err != nil {
		return dbError(err, "failed inserting department", zap.String("name", d.Name))
	}
	return nil
}

func (r departmentRepo) FindByID(ctx context.Context, id string) (*entity.Department, error) {
	d := &entity.Department{}
	if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(d); err != nil {
		return nil, dbError(err, "database error", zap.String("id", id))
	}
	return d, nil
}

func (r departmentRepo) List(ctx context.Context) ([]*entity.Department, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, dbError(err, "database error")
	}
	defer cursor.Close(context.Background())

	list := make([]*entity.Department, 0)
	if err := cursor.All(ctx, &list); err != nil {
		return nil, dbError(err, "decode error")
	}
	return list, nil
}

func (r departmentRepo) Update(ctx context.Context, id string, patch store.DepartmentPatch) error {
	set := bson.M{"updated_at": patch.UpdatedAt}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.TeacherIDs != nil {
		ids := *patch.TeacherIDs
		if ids == nil {
			ids = []string{}
		}
		set["teacher_ids"] = ids
	}

	res, err := r.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return dbError(err, "failed updating department", zap.String("id", id))
	}
	if res.MatchedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r departmentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return dbError(err, "failed deleting department", zap.String("id", id))
	}
	if res.DeletedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

type resetRepo struct {
	c *mongo.Collection
}

func (r resetRepo) Insert(ctx context.Context, reset *entity.PasswordReset) error {
	if _, err := r.c.InsertOne(ctx, reset); err != nil {
		return dbError(err, "failed inserting password reset", zap.String("userID", reset.UserID))
	}
	return nil
}

func (r resetRepo) FindByToken(ctx context.Context, token string) (*entity.PasswordReset, error) {
	reset := &entity.PasswordReset{}
	if err := r.c.FindOne(ctx, bson.M{"token": token}).Decode(reset); err != nil {
		return nil, dbError(err, "database error")
	}
	return reset, nil
}

func (r resetRepo) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.c.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, dbError(err, "failed deleting password resets", zap.String("userID", userID))
	}
	return res.DeletedCount, nil
}

type auditRepo struct {
	c *mongo.Collection
}

func (r auditRepo) Insert(ctx context.Context, e *entity.CredentialEvent) error {
	if _, err := r.c.InsertOne(ctx, e); err != nil {
		return dbError(err, "failed inserting credential event", zap.String("userID", e.UserID))
	}
	return nil
}

func (r auditRepo) ListByUser(ctx context.Context, userID string) ([]*entity.CredentialEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "at", Value: 1}})
	cursor, err := r.c.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, dbError(err, "database error", zap.String("userID", userID))
	}
	defer cursor.Close(context.Background())

	list := make([]*entity.CredentialEvent, 0)
	if err := cursor.All(ctx, &list); err != nil {
		return nil, dbError(err, "decode error")
	}
	return list, nil
}
