package discovery

import (
	"fmt"
	"testing"

	"go-movie-community-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	viewer := viewerWith([]domain.GenreCount{{Genre: "Drama", Count: 3}}, "m1", "m2", "m3")
	members := make([]domain.CommunityMember, 0, 10)
	for i := 0; i < 10; i++ {
		movies := []string{"m1", "m2", "m3"}[:i%3+1]
		members = append(members, member(fmt.Sprintf("u%d", i), []string{"Drama"}, movies...))
	}

	page := Run(viewer, members, domain.DiscoveryQuery{
		Sort:     domain.SortByCompatibility,
		Page:     2,
		PageSize: 6,
	})

	assert.Equal(t, 10, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Items, 4)
	for i := 1; i < len(page.Items); i++ {
		assert.GreaterOrEqual(t, page.Items[i-1].Compatibility, page.Items[i].Compatibility)
	}
}

func TestRunEmptyResult(t *testing.T) {
	page := Run(viewerWith(nil), nil, domain.DiscoveryQuery{Page: 1})
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, DefaultPageSize, page.PageSize)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestEngineMemoDoesNotChangeOutput(t *testing.T) {
	viewer := viewerWith([]domain.GenreCount{{Genre: "Drama", Count: 1}}, "m1", "m2")
	viewer.DataVersion = 7
	members := []domain.CommunityMember{
		member("a", []string{"Drama"}, "m1"),
		member("b", []string{"Terror"}, "m2", "m3"),
		member("c", []string{"Drama"}, "m1", "m2"),
	}
	q := domain.DiscoveryQuery{Sort: domain.SortByCompatibility, Page: 1, PageSize: 6, MinCompatibility: 10}

	memo := NewMemo(nil)
	withMemo := NewEngine(viewer, WithMemo(memo)).Run(members, q)
	plain := Run(viewer, members, q)

	assert.Equal(t, plain, withMemo)
	assert.Len(t, memo.Fresh(), 3)

	// A seeded memo serves hits without recording them again.
	seeded := NewMemo(memo.Fresh())
	again := NewEngine(viewer, WithMemo(seeded)).Run(members, q)
	assert.Equal(t, plain, again)
	assert.Empty(t, seeded.Fresh())
	assert.Equal(t, 3, seeded.Len())
}

func TestMemoKeyIncludesVersions(t *testing.T) {
	assert.NotEqual(t, MemoKey("v", 1, "c", 1), MemoKey("v", 1, "c", 2))
	assert.NotEqual(t, MemoKey("v", 1, "c", 1), MemoKey("v", 2, "c", 1))
}
