package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"portfolio/api/models"
)

var ErrBlogNotFound = errors.New("blog not found")

type BlogStore struct {
	coll *mongo.Collection
}

func NewBlogStore(db *mongo.Database) *BlogStore {
	return &BlogStore{coll: db.Collection("blogs")}
}

// List returns every blog, newest first.
func (s *BlogStore) List(ctx context.Context) ([]models.Blog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	defer cur.Close(ctx)

	blogs := []models.Blog{}
	if err := cur.All(ctx, &blogs); err != nil {
		return nil, fmt.Errorf("failed to decode blogs: %w", err)
	}
	return blogs, nil
}

func (s *BlogStore) Get(ctx context.Context, id string) (*models.Blog, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrBlogNotFound
	}

	var blog models.Blog
	if err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&blog); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBlogNotFound
		}
		return nil, fmt.Errorf("failed to get blog %s: %w", id, err)
	}
	return &blog, nil
}

func (s *BlogStore) Create(ctx context.Context, in models.BlogInput) (*models.Blog, error) {
	now := time.Now().UTC()
	blog := &models.Blog{
		Title:       in.Title,
		ContentHTML: in.ContentHTML,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := s.coll.InsertOne(ctx, blog)
	if err != nil {
		return nil, fmt.Errorf("failed to create blog: %w", err)
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		blog.ID = oid
	}
	return blog, nil
}

// Update applies the non-nil fields of patch and returns the stored result.
func (s *BlogStore) Update(ctx context.Context, id string, patch models.BlogPatch) (*models.Blog, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrBlogNotFound
	}

	set := bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}
	if patch.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *patch.Title})
	}
	if patch.ContentHTML != nil {
		set = append(set, bson.E{Key: "contentHtml", Value: *patch.ContentHTML})
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var blog models.Blog
	err = s.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&blog)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBlogNotFound
		}
		return nil, fmt.Errorf("failed to update blog %s: %w", id, err)
	}
	return &blog, nil
}

// Delete removes the blog. Deleting a blog that does not exist is not an
// error; a malformed id is.
func (s *BlogStore) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrBlogNotFound
	}
	if _, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}}); err != nil {
		return fmt.Errorf("failed to delete blog %s: %w", id, err)
	}
	return nil
}
