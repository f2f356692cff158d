package domain

import (
	"context"
	"time"
)

// CommunityMember is another user as listed on the community page.
type CommunityMember struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	PhotoURL  string    `json:"photo,omitempty"`
	TopGenres []string  `json:"topGenres"`
	RateCount int       `json:"rateCount"`
	RatedList []Rating  `json:"ratedList"`
	CreatedAt time.Time `json:"createdAt"`

	GenreCounts   []GenreCount `json:"-"`
	FavoriteGenre string       `json:"-"`
	DataVersion   int64        `json:"-"`
}

// Viewer is the user the community page is computed for.
type Viewer struct {
	ID            string
	Ratings       []Rating
	GenreCounts   []GenreCount
	FavoriteGenre string
	DataVersion   int64
}

// CandidateScore is the compatibility of one member against the viewer.
// It is recomputed per request and never persisted.
type CandidateScore struct {
	CandidateID     string   `json:"candidateId"`
	Compatibility   int      `json:"compatibility"`
	MovieScore      int      `json:"movieScore"`
	GenreScore      int      `json:"genreScore"`
	CommonMovieIDs  []string `json:"commonMovieIds"`
	MatchedGenres   []string `json:"matchedGenres"`
	ViewerGenres    []string `json:"viewerGenres"`
	CandidateGenres []string `json:"candidateGenres"`
}

type SortKey string

const (
	SortByCompatibility SortKey = "compatibility"
	SortByRatingCount   SortKey = "ratingCount"
	SortByRecency       SortKey = "recency"
)

// DiscoveryQuery is the whole view state of the community page.
type DiscoveryQuery struct {
	Search           string   `json:"search"`
	Genres           []string `json:"genres"`
	MinCompatibility int      `json:"minCompatibility"`
	MinRatings       int      `json:"minRatings"`
	Sort             SortKey  `json:"sort"`
	Page             int      `json:"page"`
	PageSize         int      `json:"pageSize"`
}

type ScoredMember struct {
	CommunityMember
	Compatibility int `json:"compatibility"`
}

type DiscoveryPage struct {
	Items      []ScoredMember `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}

type CommunityRepository interface {
	GetViewer(ctx context.Context, userID string) (*Viewer, error)
	// ListMembers returns every active user except excludeUserID.
	ListMembers(ctx context.Context, excludeUserID string) ([]CommunityMember, error)
	GetMember(ctx context.Context, userID string) (*CommunityMember, error)
}

// ScoreCache persists computed compatibility scores across requests.
type ScoreCache interface {
	GetMany(ctx context.Context, keys []string) (map[string]int, error)
	SetMany(ctx context.Context, scores map[string]int) error
}

type CommunityUsecase interface {
	Discover(ctx context.Context, query DiscoveryQuery) (*DiscoveryPage, error)
	Compatibility(ctx context.Context, memberID string) (*CandidateScore, error)
}
