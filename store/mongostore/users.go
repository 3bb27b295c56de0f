package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"attendance-backend/entity"
	"attendance-backend/errs"
	"attendance-backend/store"
)

type identityRepo struct {
	c *mongo.Collection
}

func (r identityRepo) Insert(ctx context.Context, id *entity.Identity) error {
	if _, err := r.c.InsertOne(ctx, id); err != nil {
		return dbError(err, "failed inserting identity", zap.String("email", id.Email))
	}
	return nil
}

func (r identityRepo) FindByID(ctx context.Context, id string) (*entity.Identity, error) {
	v := &entity.Identity{}
	if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(v); err != nil {
		return nil, dbError(err, "database error", zap.String("id", id))
	}
	return v, nil
}

func (r identityRepo) FindByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	v := &entity.Identity{}
	if err := r.c.FindOne(ctx, bson.M{"email": email}).Decode(v); err != nil {
		return nil, dbError(err, "database error", zap.String("email", email))
	}
	return v, nil
}

func (r identityRepo) SetPassword(ctx context.Context, id, hash string, at time.Time) error {
	res, err := r.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"password_hash":       hash,
		"password_changed_at": at,
		"updated_at":          at,
	}})
	if err != nil {
		return dbError(err, "failed updating password", zap.String("id", id))
	}
	if res.MatchedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r identityRepo) BumpTokenVersion(ctx context.Context, id string) error {
	res, err := r.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"token_version": 1}})
	if err != nil {
		return dbError(err, "failed bumping token version", zap.String("id", id))
	}
	if res.MatchedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r identityRepo) Delete(ctx context.Context, id string) error {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return dbError(err, "failed deleting identity", zap.String("id", id))
	}
	if res.DeletedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

type userRepo struct {
	c *mongo.Collection
}

func (r userRepo) Insert(ctx context.Context, u *entity.User) error {
	if _, err := r.c.InsertOne(ctx, u); err != nil {
		return dbError(err, "failed inserting user", zap.String("id", u.ID))
	}
	return nil
}

func (r userRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	u := &entity.User{}
	if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(u); err != nil {
		return nil, dbError(err, "database error", zap.String("id", id))
	}
	return u, nil
}

func (r userRepo) List(ctx context.Context, q store.UserQuery) ([]*entity.User, error) {
	filter := bson.M{}
	if q.Role != "" {
		filter["role"] = q.Role
	}
	if q.CreatedBy != "" {
		filter["created_by"] = q.CreatedBy
	}
	if q.AssignedTeacher != "" {
		filter["assigned_teacher"] = q.AssignedTeacher
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, dbError(err, "database error")
	}
	defer cursor.Close(context.Background())

	users := make([]*entity.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, dbError(err, "decode error")
	}
	return users, nil
}

func (r userRepo) Update(ctx context.Context, id string, patch store.UserPatch) error {
	set := bson.M{"updated_at": patch.UpdatedAt}
	unset := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.ProfilePicture != nil {
		set["profile_picture"] = *patch.ProfilePicture
	}
	if patch.AssignedTeacher != nil {
		if *patch.AssignedTeacher == "" {
			unset["assigned_teacher"] = ""
		} else {
			set["assigned_teacher"] = *patch.AssignedTeacher
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	res, err := r.c.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return dbError(err, "failed updating user", zap.String("id", id))
	}
	if res.MatchedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r userRepo) Delete(ctx context.Context, id string) error {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return dbError(err, "failed deleting user", zap.String("id", id))
	}
	if res.DeletedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}
