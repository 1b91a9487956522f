package mongo

import (
	"context"
	"time"

	"github.com/devlinkhq/devlink/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// PostRepository is the slice of the post store this service needs:
// posts are created elsewhere, but the account-delete cascade has to
// sweep them before the profile and user go away.
type PostRepository interface {
	Create(ctx context.Context, p *models.Post) error
	CountByUserID(ctx context.Context, userID string) (int64, error)
	DeleteByUserID(ctx context.Context, userID string) (int64, error)
}

type postRepo struct {
	col *mongo.Collection
}

func NewPostRepo(db *mongo.Database) PostRepository {
	return &postRepo{col: db.Collection("posts")}
}

func (r *postRepo) Create(ctx context.Context, p *models.Post) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, p)
	return err
}

func (r *postRepo) CountByUserID(ctx context.Context, userID string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"user_id": userID})
}

func (r *postRepo) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
