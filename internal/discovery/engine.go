package discovery

import "go-movie-community-backend/internal/domain"

// Engine runs the community pipeline for one viewer.
type Engine struct {
	profile Profile
	memo    *Memo
}

type Option func(*Engine)

// WithMemo reuses and records scores in m.
func WithMemo(m *Memo) Option {
	return func(e *Engine) { e.memo = m }
}

func NewEngine(viewer domain.Viewer, opts ...Option) *Engine {
	e := &Engine{profile: NewProfile(viewer)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Profile exposes the extracted viewer data.
func (e *Engine) Profile() Profile {
	return e.profile
}

// Score returns the compatibility of c, through the memo when one is set.
func (e *Engine) Score(c domain.CommunityMember) int {
	if e.memo == nil {
		return Compatibility(e.profile, c)
	}
	key := MemoKey(e.profile.ID, e.profile.Version, c.ID, c.DataVersion)
	if v, ok := e.memo.Get(key); ok {
		return v
	}
	v := Compatibility(e.profile, c)
	e.memo.Put(key, v)
	return v
}

// Breakdown returns the full score detail for c. It bypasses the memo.
func (e *Engine) Breakdown(c domain.CommunityMember) domain.CandidateScore {
	return Breakdown(e.profile, c)
}

// Filter keeps members passing every predicate, in input order.
func (e *Engine) Filter(members []domain.CommunityMember, params FilterParams) []domain.CommunityMember {
	out := make([]domain.CommunityMember, 0, len(members))
	for _, c := range members {
		if !MatchesText(c, params.Search) {
			continue
		}
		if !MatchesGenres(c, params.Genres) {
			continue
		}
		if c.RateCount < params.MinRatings {
			continue
		}
		if e.Score(c) < params.MinCompatibility {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Sort returns a sorted copy of members.
func (e *Engine) Sort(members []domain.CommunityMember, key domain.SortKey) []domain.CommunityMember {
	out := make([]domain.CommunityMember, len(members))
	copy(out, members)
	sortMembers(out, key, e.Score)
	return out
}

// Run filters, sorts and paginates members for q.
func (e *Engine) Run(members []domain.CommunityMember, q domain.DiscoveryQuery) domain.DiscoveryPage {
	filtered := e.Filter(members, FilterParams{
		Search:           q.Search,
		Genres:           q.Genres,
		MinCompatibility: q.MinCompatibility,
		MinRatings:       q.MinRatings,
	})
	sorted := e.Sort(filtered, q.Sort)

	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	window := Paginate(sorted, q.Page, pageSize)

	items := make([]domain.ScoredMember, 0, len(window))
	for _, c := range window {
		items = append(items, domain.ScoredMember{CommunityMember: c, Compatibility: e.Score(c)})
	}

	return domain.DiscoveryPage{
		Items:      items,
		Total:      len(filtered),
		Page:       q.Page,
		PageSize:   pageSize,
		TotalPages: TotalPages(len(filtered), pageSize),
	}
}

// Run is a one-shot pipeline without memoization.
func Run(viewer domain.Viewer, members []domain.CommunityMember, q domain.DiscoveryQuery) domain.DiscoveryPage {
	return NewEngine(viewer).Run(members, q)
}
