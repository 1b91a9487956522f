package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/devlinkhq/devlink/internal/models"
	"github.com/devlinkhq/devlink/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Upsert(ctx context.Context, userID string, patch models.ProfilePatch) (*models.Profile, error)
	DeleteByUserID(ctx context.Context, userID string) error
	PushExperience(ctx context.Context, userID string, exp models.Experience) (*models.Profile, error)
	PullExperience(ctx context.Context, userID string, entryID primitive.ObjectID) (*models.Profile, error)
	PushEducation(ctx context.Context, userID string, edu models.Education) (*models.Profile, error)
	PullEducation(ctx context.Context, userID string, entryID primitive.ObjectID) (*models.Profile, error)
}

type profileRepo struct {
	col *mongo.Collection
}

func NewProfileRepo(db *mongo.Database) ProfileRepository {
	return &profileRepo{col: db.Collection("profiles")}
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var p models.Profile
	err := r.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &p, err
}

func (r *profileRepo) List(ctx context.Context) ([]models.Profile, error) {
	cur, err := r.col.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Profile
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert applies the sparse patch with a single FindOneAndUpdate. Only
// fields present on the patch land in $set, so omitted fields keep
// their stored values. The unique index on user_id makes the upsert
// race-safe: concurrent calls collapse to one document.
func (r *profileRepo) Upsert(ctx context.Context, userID string, patch models.ProfilePatch) (*models.Profile, error) {
	now := time.Now().UTC()

	set := bson.M{
		"status":     patch.Status,
		"skills":     patch.Skills,
		"updated_at": now,
	}
	setIfPresent(set, "company", patch.Company)
	setIfPresent(set, "website", patch.Website)
	setIfPresent(set, "location", patch.Location)
	setIfPresent(set, "bio", patch.Bio)
	setIfPresent(set, "github_username", patch.GithubUsername)
	setIfPresent(set, "social.youtube", patch.Youtube)
	setIfPresent(set, "social.twitter", patch.Twitter)
	setIfPresent(set, "social.linkedin", patch.Linkedin)
	setIfPresent(set, "social.facebook", patch.Facebook)
	setIfPresent(set, "social.instagram", patch.Instagram)

	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"user_id":    userID,
			"experience": []models.Experience{},
			"education":  []models.Education{},
			"created_at": now,
		},
	}

	var p models.Profile
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		update,
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func setIfPresent(set bson.M, key string, val *string) {
	if val != nil {
		set[key] = *val
	}
}

func (r *profileRepo) DeleteByUserID(ctx context.Context, userID string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *profileRepo) PushExperience(ctx context.Context, userID string, exp models.Experience) (*models.Profile, error) {
	return r.push(ctx, userID, "experience", exp)
}

func (r *profileRepo) PushEducation(ctx context.Context, userID string, edu models.Education) (*models.Profile, error) {
	return r.push(ctx, userID, "education", edu)
}

// push prepends the entry: newest first.
func (r *profileRepo) push(ctx context.Context, userID, field string, entry any) (*models.Profile, error) {
	var p models.Profile
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$push": bson.M{field: bson.M{"$each": bson.A{entry}, "$position": 0}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) PullExperience(ctx context.Context, userID string, entryID primitive.ObjectID) (*models.Profile, error) {
	return r.pull(ctx, userID, "experience", entryID)
}

func (r *profileRepo) PullEducation(ctx context.Context, userID string, entryID primitive.ObjectID) (*models.Profile, error) {
	return r.pull(ctx, userID, "education", entryID)
}

// pull removes the entry with the given id. A $pull matching nothing is
// a no-op on the document, which is exactly the contract: deleting an
// id that was never there leaves the sequence unchanged.
func (r *profileRepo) pull(ctx context.Context, userID, field string, entryID primitive.ObjectID) (*models.Profile, error) {
	var p models.Profile
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$pull": bson.M{field: bson.M{"_id": entryID}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
