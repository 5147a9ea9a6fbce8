package domain

import (
	"context"
	"time"
)

// Profile is the extended, user-editable record attached one-to-one to a User.
// Name and Avatar are joined from the owning user on reads.
type Profile struct {
	ID             int64             `json:"id"`
	UserID         string            `json:"user_id"`
	Name           string            `json:"name"`
	Avatar         string            `json:"avatar"`
	Company        string            `json:"company,omitempty"`
	Website        string            `json:"website,omitempty"`
	Location       string            `json:"location,omitempty"`
	Bio            string            `json:"bio,omitempty"`
	Status         string            `json:"status,omitempty"`
	GithubUsername string            `json:"githubusername,omitempty"`
	Skills         []string          `json:"skills"`
	Social         map[string]string `json:"social,omitempty"`
	Experience     []Experience      `json:"experience"`
	Education      []Education       `json:"education"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

type Experience struct {
	ID          string     `json:"id"`
	Title       string     `json:"title" validate:"required"`
	Company     string     `json:"company" validate:"required"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from" validate:"required"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

type Education struct {
	ID           string     `json:"id"`
	School       string     `json:"school" validate:"required"`
	Degree       string     `json:"degree" validate:"required"`
	FieldOfStudy string     `json:"fieldofstudy" validate:"required"`
	From         time.Time  `json:"from" validate:"required"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

// ProfilePatch carries only the fields the client actually supplied.
// Nil means "leave untouched"; the merge happens in a single place so a
// field can never be written into another field's slot.
type ProfilePatch struct {
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	Status         *string
	GithubUsername *string
	Skills         *string // comma-separated, normalized by the usecase
	Youtube        *string
	Twitter        *string
	Facebook       *string
	Linkedin       *string
	Instagram      *string
}

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	List(ctx context.Context) ([]Profile, error)
	Upsert(ctx context.Context, profile *Profile) (*Profile, error)
	AddExperience(ctx context.Context, userID string, exp *Experience) error
	RemoveExperience(ctx context.Context, userID, expID string) error
	AddEducation(ctx context.Context, userID string, edu *Education) error
	RemoveEducation(ctx context.Context, userID, eduID string) error
	DeleteByUserID(ctx context.Context, userID string) error
}

type ProfileUsecase interface {
	GetOwnProfile(ctx context.Context, userID string) (*Profile, error)
	UpsertProfile(ctx context.Context, userID string, patch ProfilePatch) (*Profile, error)
	ListProfiles(ctx context.Context) ([]Profile, error)
	GetProfileByUser(ctx context.Context, userID string) (*Profile, error)
	AddExperience(ctx context.Context, userID string, exp Experience) (*Profile, error)
	RemoveExperience(ctx context.Context, userID, expID string) (*Profile, error)
	AddEducation(ctx context.Context, userID string, edu Education) (*Profile, error)
	RemoveEducation(ctx context.Context, userID, eduID string) (*Profile, error)
	DeleteAccount(ctx context.Context, userID string) error
}
