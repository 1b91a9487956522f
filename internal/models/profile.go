package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SocialLinks holds the optional social network handles on a profile.
type SocialLinks struct {
	Youtube   string `bson:"youtube,omitempty" json:"youtube,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Linkedin  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
}

// Experience is one employment entry. The ObjectID is the stable handle
// used when removing an entry.
type Experience struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Company     string             `bson:"company" json:"company"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	From        string             `bson:"from" json:"from"`
	To          string             `bson:"to,omitempty" json:"to,omitempty"`
	Current     bool               `bson:"current" json:"current"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}

// Education is one schooling entry.
type Education struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	School       string             `bson:"school" json:"school"`
	Degree       string             `bson:"degree" json:"degree"`
	FieldOfStudy string             `bson:"field_of_study" json:"field_of_study"`
	From         string             `bson:"from" json:"from"`
	To           string             `bson:"to,omitempty" json:"to,omitempty"`
	Current      bool               `bson:"current" json:"current"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
}

// Profile is the document stored in the "profiles" collection.
// user_id carries a unique index: at most one profile per user.
type Profile struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         string             `bson:"user_id" json:"user_id"` // uuid of the owning User
	Company        string             `bson:"company,omitempty" json:"company,omitempty"`
	Website        string             `bson:"website,omitempty" json:"website,omitempty"`
	Location       string             `bson:"location,omitempty" json:"location,omitempty"`
	Bio            string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Status         string             `bson:"status" json:"status"`
	GithubUsername string             `bson:"github_username,omitempty" json:"github_username,omitempty"`

	// Skills is always the trimmed split of the comma-separated input,
	// never the raw string.
	Skills []string `bson:"skills" json:"skills"`

	Social SocialLinks `bson:"social,omitempty" json:"social"`

	// Newest entries first.
	Experience []Experience `bson:"experience" json:"experience"`
	Education  []Education  `bson:"education" json:"education"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ProfilePatch is the sparse update applied on POST /api/profile.
// Nil pointers mean "leave the stored value alone"; omitted fields are
// never cleared. Status and Skills are required on the request, so they
// are concrete.
type ProfilePatch struct {
	Status string
	Skills []string

	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	GithubUsername *string

	Youtube   *string
	Twitter   *string
	Linkedin  *string
	Facebook  *string
	Instagram *string
}
