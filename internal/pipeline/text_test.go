package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gitmatch/gitmatch/internal/models"
)

func TestBuildRepoEmbeddingText_AllParts(t *testing.T) {
	repo := models.Repository{
		FullName:        "acme/httpfast",
		Description:     "A fast HTTP toolkit",
		PrimaryLanguage: "Go",
		Topics:          []string{"http", "performance"},
		Readme:          "# httpfast\nDoes things fast.",
	}

	want := "acme/httpfast\n" +
		"A fast HTTP toolkit\n" +
		"Language: Go\n" +
		"Topics: http, performance\n" +
		"README:\n# httpfast\nDoes things fast."
	assert.Equal(t, want, BuildRepoEmbeddingText(repo))
}

func TestBuildRepoEmbeddingText_SkipsAbsentParts(t *testing.T) {
	repo := models.Repository{
		FullName:        "acme/bare",
		PrimaryLanguage: "Rust",
	}

	assert.Equal(t, "acme/bare\nLanguage: Rust", BuildRepoEmbeddingText(repo))
}

func TestBuildRepoEmbeddingText_NameOnly(t *testing.T) {
	assert.Equal(t, "acme/empty", BuildRepoEmbeddingText(models.Repository{FullName: "acme/empty"}))
}

func TestBuildIssueEmbeddingText(t *testing.T) {
	issue := models.Issue{
		Title:  "Fix flaky reconnect",
		Labels: []string{"bug", "good first issue"},
		Body:   "The client drops the socket under load.",
	}

	want := "Fix flaky reconnect\n" +
		"Labels: bug, good first issue\n" +
		"The client drops the socket under load."
	assert.Equal(t, want, BuildIssueEmbeddingText(issue))
}

func TestBuildIssueEmbeddingText_TitleOnly(t *testing.T) {
	issue := models.Issue{Title: "Update docs"}
	assert.Equal(t, "Update docs", BuildIssueEmbeddingText(issue))
}
