package domain

import (
	"context"
	"time"
)

type User struct {
	ID            string    `json:"id"` // subject of the auth provider token
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	PhotoURL      string    `json:"photo,omitempty"`
	FavoriteGenre string    `json:"genre,omitempty"`
	Role          string    `json:"role"`
	IsDisabled    bool      `json:"isDisabled"`
	// Bumped whenever the user's ratings change; keys the compatibility cache.
	RatingsVersion int64     `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// UserProfile is the user plus the data the profile and community pages need.
type UserProfile struct {
	User
	RatedList   []Rating     `json:"ratedList"`
	GenreCounts []GenreCount `json:"filmesAssistidosPorGenero"`
	TopGenres   []string     `json:"topGenres"`
	RateCount   int          `json:"rateCount"`
}

// PublicProfile hides account fields from other users.
type PublicProfile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	PhotoURL  string    `json:"photo,omitempty"`
	TopGenres []string  `json:"topGenres"`
	RateCount int       `json:"rateCount"`
	RatedList []Rating  `json:"ratedList"`
	CreatedAt time.Time `json:"createdAt"`
}

type UpdateProfileRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=60,valid_name,no_emoji"`
	PhotoURL      string `json:"photo" validate:"omitempty,url,max=500"`
	FavoriteGenre string `json:"genre" validate:"omitempty,genre_label"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
}

type AuthUsecase interface {
	EnsureUserExists(ctx context.Context, user *User) error
	GetCurrentUser(ctx context.Context, id string) (*User, error)
}

type ProfileUsecase interface {
	GetMyProfile(ctx context.Context) (*UserProfile, error)
	UpdateMyProfile(ctx context.Context, req UpdateProfileRequest) (*User, error)
	GetPublicProfile(ctx context.Context, userID string) (*PublicProfile, error)
}
