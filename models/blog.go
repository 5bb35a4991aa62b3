package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const MaxTitleLength = 200

type AuthRequest struct {
	Passcode string `json:"passcode"`
}

type BlogInput struct {
	Title       string `json:"title"`
	ContentHTML string `json:"contentHtml"`
}

// BlogPatch carries a partial update; nil fields are left untouched.
type BlogPatch struct {
	Title       *string `json:"title"`
	ContentHTML *string `json:"contentHtml"`
}

type Blog struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Title       string        `bson:"title"`
	ContentHTML string        `bson:"contentHtml"`
	CreatedAt   time.Time     `bson:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt"`
}

// BlogSummary is the list representation; timestamps are epoch milliseconds.
type BlogSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Preview   string `json:"preview"`
	CreatedAt int64  `json:"createdAt"`
}

type BlogDetail struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ContentHTML string `json:"contentHtml"`
	CreatedAt   int64  `json:"createdAt"`
	UpdatedAt   int64  `json:"updatedAt"`
}
