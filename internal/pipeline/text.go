package pipeline

import (
	"strings"

	"github.com/gitmatch/gitmatch/internal/models"
)

// BuildRepoEmbeddingText serializes a repository into the canonical text blob
// that gets vectorized. Present parts appear on their own line in a fixed
// order; absent parts are skipped entirely:
//
//	{fullName}
//	{description}
//	Language: {primaryLanguage}
//	Topics: {topics}
//	README:
//	{readme}
func BuildRepoEmbeddingText(repo models.Repository) string {
	parts := []string{repo.FullName}

	if repo.Description != "" {
		parts = append(parts, repo.Description)
	}
	if repo.PrimaryLanguage != "" {
		parts = append(parts, "Language: "+repo.PrimaryLanguage)
	}
	if len(repo.Topics) > 0 {
		parts = append(parts, "Topics: "+strings.Join(repo.Topics, ", "))
	}
	if repo.Readme != "" {
		parts = append(parts, "README:\n"+repo.Readme)
	}

	return strings.Join(parts, "\n")
}

// BuildIssueEmbeddingText serializes an issue into its canonical text blob:
//
//	{title}
//	Labels: {labels}
//	{body}
func BuildIssueEmbeddingText(issue models.Issue) string {
	parts := []string{issue.Title}

	if len(issue.Labels) > 0 {
		parts = append(parts, "Labels: "+strings.Join(issue.Labels, ", "))
	}
	if issue.Body != "" {
		parts = append(parts, issue.Body)
	}

	return strings.Join(parts, "\n")
}
