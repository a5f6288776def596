package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gitmatch/gitmatch/internal/models"
)

func TestBuildQueryText_AllParts(t *testing.T) {
	text := BuildQueryText(models.DiscoveryQuery{
		Languages:       []string{"go", "rust"},
		ExperienceLevel: models.ExperienceBeginner,
		Interests:       []string{"devops"},
		TrendingTopics:  []string{"wasm", "llm"},
	})

	want := "Programming languages: go, rust. " +
		"Interests: DevOps, CI/CD, containers, Kubernetes, Docker, infrastructure. " +
		"Experience level: beginner-friendly, well-documented, simple codebase, good first issues. " +
		"Trending topics: wasm, llm."
	assert.Equal(t, want, text)
}

func TestBuildQueryText_MultipleInterestsJoinedWithSemicolons(t *testing.T) {
	text := BuildQueryText(models.DiscoveryQuery{
		Languages:       []string{"python"},
		ExperienceLevel: models.ExperienceExpert,
		Interests:       []string{"ai-ml", "data-science"},
	})

	assert.Contains(t, text, "artificial intelligence, machine learning, deep learning, NLP, computer vision; "+
		"data science, analytics, visualization, pandas, statistics.")
	assert.Contains(t, text, "Experience level: complex architecture, advanced patterns, deep domain knowledge.")
}

func TestBuildQueryText_ExperienceAlwaysPresent(t *testing.T) {
	text := BuildQueryText(models.DiscoveryQuery{ExperienceLevel: models.ExperienceIntermediate})
	assert.Equal(t, "Experience level: moderate complexity, some experience required, established patterns.", text)
}

func TestBuildQueryText_UnknownInterestSkipped(t *testing.T) {
	text := BuildQueryText(models.DiscoveryQuery{
		ExperienceLevel: models.ExperienceBeginner,
		Interests:       []string{"underwater-basket-weaving"},
	})
	assert.NotContains(t, text, "Interests:")
}

func TestKnownInterest(t *testing.T) {
	assert.True(t, KnownInterest("web-development"))
	assert.True(t, KnownInterest("embedded-systems"))
	assert.False(t, KnownInterest("cooking"))
	assert.False(t, KnownInterest(""))
}
