package discovery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitmatch/gitmatch/internal/models"
	"github.com/gitmatch/gitmatch/internal/vectordb"
)

type stubEmbedder struct {
	calls int
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	s.calls++
	return []float32{0.5, 0.5}, nil
}

type stubRepoSearcher struct {
	matches    []vectordb.Match
	lastFilter vectordb.RepoFilter
}

func (s *stubRepoSearcher) Query(_ context.Context, _ []float32, _ int, filter vectordb.RepoFilter) ([]vectordb.Match, error) {
	s.lastFilter = filter
	return s.matches, nil
}

type stubIssueSearcher struct {
	matches    []vectordb.Match
	calls      int
	lastFilter vectordb.IssueFilter
}

func (s *stubIssueSearcher) Query(_ context.Context, _ []float32, _ int, filter vectordb.IssueFilter) ([]vectordb.Match, error) {
	s.calls++
	s.lastFilter = filter
	return s.matches, nil
}

type stubRepoStore struct {
	repos []models.Repository
}

func (s *stubRepoStore) FindByIDs(_ context.Context, _ []string) ([]models.Repository, error) {
	return s.repos, nil
}

// stubIssueStore mimics the production store contract: only OPEN issues come
// back, regardless of which ids were asked for.
type stubIssueStore struct {
	issues []models.Issue
	calls  int
}

func (s *stubIssueStore) FindOpenByIDs(_ context.Context, ids []string) ([]models.Issue, error) {
	s.calls++
	asked := make(map[string]bool, len(ids))
	for _, id := range ids {
		asked[id] = true
	}
	var open []models.Issue
	for _, issue := range s.issues {
		if asked[issue.ID] && issue.State == models.IssueOpen {
			open = append(open, issue)
		}
	}
	return open, nil
}

type discoveryFixture struct {
	embedder   *stubEmbedder
	repoIndex  *stubRepoSearcher
	issueIndex *stubIssueSearcher
	repoStore  *stubRepoStore
	issueStore *stubIssueStore
	service    *Service
}

func newDiscoveryFixture() *discoveryFixture {
	f := &discoveryFixture{
		embedder:   &stubEmbedder{},
		repoIndex:  &stubRepoSearcher{},
		issueIndex: &stubIssueSearcher{},
		repoStore:  &stubRepoStore{},
		issueStore: &stubIssueStore{},
	}
	f.service = NewService(f.embedder, f.repoIndex, f.issueIndex,
		f.repoStore, f.issueStore, DefaultConfig(), nil)
	return f
}

func repoRecord(id, fullName string) models.Repository {
	return models.Repository{ID: id, FullName: fullName, Topics: []string{}}
}

func openIssue(id, repoID, title string) models.Issue {
	return models.Issue{ID: id, RepoID: repoID, Title: title, State: models.IssueOpen}
}

func baseQuery(level models.ExperienceLevel) models.DiscoveryQuery {
	return models.DiscoveryQuery{
		Languages:       []string{"go"},
		ExperienceLevel: level,
		RepoSizes:       []models.RepoSize{models.SizeMedium},
	}
}

func TestDiscover_NoRepoMatchesShortCircuits(t *testing.T) {
	f := newDiscoveryFixture()

	result, err := f.service.Discover(context.Background(), baseQuery(models.ExperienceExpert))
	require.NoError(t, err)

	assert.Empty(t, result.Repos)
	assert.Equal(t, 0, result.TotalReposSearched)
	// The issue index and the stores are never touched.
	assert.Equal(t, 0, f.issueIndex.calls)
	assert.Equal(t, 0, f.issueStore.calls)
	assert.Equal(t, 1, f.embedder.calls)
}

func TestDiscover_SingleEmbeddingPerRequest(t *testing.T) {
	f := newDiscoveryFixture()
	f.repoIndex.matches = []vectordb.Match{{ID: "1", Score: 0.9}}
	f.issueIndex.matches = []vectordb.Match{{ID: "11", Score: 0.8}}
	f.repoStore.repos = []models.Repository{repoRecord("1", "acme/alpha")}
	f.issueStore.issues = []models.Issue{openIssue("11", "1", "Fix logging")}

	_, err := f.service.Discover(context.Background(), baseQuery(models.ExperienceExpert))
	require.NoError(t, err)
	assert.Equal(t, 1, f.embedder.calls)
}

func TestDiscover_IssueBonusReordersRepos(t *testing.T) {
	f := newDiscoveryFixture()
	// alpha scores lower on pure similarity but carries three matched issues:
	// 0.80 + 3*0.02 = 0.86 beats beta's 0.83 + 0.
	f.repoIndex.matches = []vectordb.Match{
		{ID: "beta", Score: 0.83},
		{ID: "alpha", Score: 0.80},
	}
	f.issueIndex.matches = []vectordb.Match{
		{ID: "i1", Score: 0.7},
		{ID: "i2", Score: 0.6},
		{ID: "i3", Score: 0.5},
	}
	f.repoStore.repos = []models.Repository{
		repoRecord("alpha", "acme/alpha"),
		repoRecord("beta", "acme/beta"),
	}
	f.issueStore.issues = []models.Issue{
		openIssue("i1", "alpha", "one"),
		openIssue("i2", "alpha", "two"),
		openIssue("i3", "alpha", "three"),
	}

	result, err := f.service.Discover(context.Background(), baseQuery(models.ExperienceExpert))
	require.NoError(t, err)

	require.Len(t, result.Repos, 2)
	assert.Equal(t, "alpha", result.Repos[0].ID)
	assert.InDelta(t, 0.86, result.Repos[0].Score, 1e-9)
	assert.Equal(t, "beta", result.Repos[1].ID)
	assert.InDelta(t, 0.83, result.Repos[1].Score, 1e-9)
	assert.Equal(t, 2, result.TotalReposSearched)
}

func TestDiscover_IssuesCappedPerRepoBestFirst(t *testing.T) {
	f := newDiscoveryFixture()
	f.repoIndex.matches = []vectordb.Match{{ID: "r1", Score: 0.9}}
	f.repoStore.repos = []models.Repository{repoRecord("r1", "acme/alpha")}

	for i := 0; i < 8; i++ {
		id := string(rune('a' + i))
		f.issueIndex.matches = append(f.issueIndex.matches,
			vectordb.Match{ID: id, Score: float64(i) / 10})
		f.issueStore.issues = append(f.issueStore.issues, openIssue(id, "r1", "issue "+id))
	}

	result, err := f.service.Discover(context.Background(), baseQuery(models.ExperienceExpert))
	require.NoError(t, err)

	require.Len(t, result.Repos, 1)
	matched := result.Repos[0].MatchedIssues
	require.Len(t, matched, 5)
	for i := 1; i < len(matched); i++ {
		assert.GreaterOrEqual(t, matched[i-1].Score, matched[i].Score)
	}
	assert.Equal(t, "h", matched[0].ID) // highest-scoring issue survives the cap

	// The bonus counts kept issues, not raw matches.
	assert.InDelta(t, 0.9+5*0.02, result.Repos[0].Score, 1e-9)
}

func TestDiscover_ClosedIssuesDropDuringHydration(t *testing.T) {
	f := newDiscoveryFixture()
	f.repoIndex.matches = []vectordb.Match{{ID: "r1", Score: 0.9}}
	f.issueIndex.matches = []vectordb.Match{
		{ID: "open1", Score: 0.8},
		{ID: "closed1", Score: 0.9},
	}
	f.repoStore.repos = []models.Repository{repoRecord("r1", "acme/alpha")}
	closed := openIssue("closed1", "r1", "stale")
	closed.State = models.IssueClosed
	f.issueStore.issues = []models.Issue{openIssue("open1", "r1", "live"), closed}

	result, err := f.service.Discover(context.Background(), baseQuery(models.ExperienceExpert))
	require.NoError(t, err)

	require.Len(t, result.Repos, 1)
	require.Len(t, result.Repos[0].MatchedIssues, 1)
	assert.Equal(t, "open1", result.Repos[0].MatchedIssues[0].ID)
}

func TestDiscover_RepoWithNoIssuesStillRanked(t *testing.T) {
	f := newDiscoveryFixture()
	f.repoIndex.matches = []vectordb.Match{{ID: "r1", Score: 0.77}}
	f.repoStore.repos = []models.Repository{repoRecord("r1", "acme/quiet")}

	result, err := f.service.Discover(context.Background(), baseQuery(models.ExperienceExpert))
	require.NoError(t, err)

	require.Len(t, result.Repos, 1)
	assert.NotNil(t, result.Repos[0].MatchedIssues)
	assert.Empty(t, result.Repos[0].MatchedIssues)
	assert.InDelta(t, 0.77, result.Repos[0].Score, 1e-9)
}

func TestDiscover_RepoFilterCarriesQueryConstraints(t *testing.T) {
	f := newDiscoveryFixture()

	query := models.DiscoveryQuery{
		Languages:       []string{"go", "rust"},
		ExperienceLevel: models.ExperienceExpert,
		RepoSizes:       []models.RepoSize{models.SizeSmall, models.SizeMedium},
	}
	_, err := f.service.Discover(context.Background(), query)
	require.NoError(t, err)

	assert.Equal(t, []string{"go", "rust"}, f.repoIndex.lastFilter.Languages)
	assert.Equal(t, []models.RepoSize{models.SizeSmall, models.SizeMedium}, f.repoIndex.lastFilter.Sizes)
}

func TestIssueFilterFor(t *testing.T) {
	ids := []string{"r1", "r2"}

	beginner := issueFilterFor(ids, models.ExperienceBeginner)
	require.NotNil(t, beginner.GoodFirstIssue)
	assert.True(t, *beginner.GoodFirstIssue)
	assert.Empty(t, beginner.Difficulties)
	assert.Equal(t, ids, beginner.RepoIDs)

	intermediate := issueFilterFor(ids, models.ExperienceIntermediate)
	assert.Nil(t, intermediate.GoodFirstIssue)
	assert.Equal(t, []models.Difficulty{models.DifficultyBeginner, models.DifficultyIntermediate},
		intermediate.Difficulties)

	expert := issueFilterFor(ids, models.ExperienceExpert)
	assert.Nil(t, expert.GoodFirstIssue)
	assert.Empty(t, expert.Difficulties)
}

func TestDiscover_ExperienceLevelShapesIssueFilter(t *testing.T) {
	f := newDiscoveryFixture()
	f.repoIndex.matches = []vectordb.Match{{ID: "r1", Score: 0.9}}
	f.repoStore.repos = []models.Repository{repoRecord("r1", "acme/alpha")}

	_, err := f.service.Discover(context.Background(), baseQuery(models.ExperienceBeginner))
	require.NoError(t, err)

	require.NotNil(t, f.issueIndex.lastFilter.GoodFirstIssue)
	assert.True(t, *f.issueIndex.lastFilter.GoodFirstIssue)
	assert.Equal(t, []string{"r1"}, f.issueIndex.lastFilter.RepoIDs)
}
