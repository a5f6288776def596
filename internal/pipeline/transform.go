// Package pipeline implements the batch ingestion core: pure transforms from
// raw GitHub records into domain records, embedding-text serialization, and
// the orchestrator that drives fetch → transform → embed → persist.
package pipeline

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gitmatch/gitmatch/internal/github"
	"github.com/gitmatch/gitmatch/internal/models"
)

// Label keyword sets used for difficulty inference. Beginner labels take
// precedence over advanced, which take precedence over intermediate.
var (
	beginnerLabels = map[string]bool{
		"good first issue":  true,
		"beginner":          true,
		"easy":              true,
		"starter":           true,
		"good-first-issue":  true,
		"beginner-friendly": true,
		"first-timers-only": true,
		"low-hanging-fruit": true,
	}

	intermediateLabels = map[string]bool{
		"help wanted":  true,
		"medium":       true,
		"help-wanted":  true,
		"intermediate": true,
	}

	advancedLabels = map[string]bool{
		"advanced": true,
		"hard":     true,
		"complex":  true,
		"expert":   true,
	}
)

// SizeForStars maps a star count to a size tier:
// SMALL <1000, MEDIUM <10000, LARGE <50000, HUGE otherwise.
func SizeForStars(stars int) models.RepoSize {
	switch {
	case stars < 1_000:
		return models.SizeSmall
	case stars < 10_000:
		return models.SizeMedium
	case stars < 50_000:
		return models.SizeLarge
	default:
		return models.SizeHuge
	}
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// InferDifficulty derives a difficulty bucket from issue labels. Beginner
// keywords win over advanced, advanced over intermediate; the empty string
// means no recognisable label was present.
func InferDifficulty(labels []string) models.Difficulty {
	normalized := make([]string, len(labels))
	for i, l := range labels {
		normalized[i] = normalizeLabel(l)
	}

	for _, l := range normalized {
		if beginnerLabels[l] {
			return models.DifficultyBeginner
		}
	}
	for _, l := range normalized {
		if advancedLabels[l] {
			return models.DifficultyAdvanced
		}
	}
	for _, l := range normalized {
		if intermediateLabels[l] {
			return models.DifficultyIntermediate
		}
	}
	return ""
}

// IsGoodFirstIssue reports whether any label belongs to the beginner keyword
// set. Computed independently of InferDifficulty's precedence, so an issue
// can be ADVANCED and still flagged as a good first issue.
func IsGoodFirstIssue(labels []string) bool {
	for _, l := range labels {
		if beginnerLabels[normalizeLabel(l)] {
			return true
		}
	}
	return false
}

// HealthInput carries the repository facts that feed the health score.
type HealthInput struct {
	PushedAt       time.Time
	OpenIssues     int
	Stars          int
	HasReadme      bool
	HasLicense     bool
	HasDescription bool
}

// HealthScore produces a 0–100 composite score from commit recency (max 40),
// the open-issue-to-star ratio (max 20) and documentation completeness
// (max 40). now is injected so the score is a pure function of its inputs.
func HealthScore(in HealthInput, now time.Time) int {
	daysSincePush := now.Sub(in.PushedAt).Hours() / 24
	if daysSincePush < 0 {
		daysSincePush = 0
	}

	var recency float64
	switch {
	case daysSincePush <= 7:
		recency = 40
	case daysSincePush <= 30:
		recency = 35
	case daysSincePush <= 90:
		recency = 25
	case daysSincePush <= 180:
		recency = 15
	case daysSincePush <= 365:
		recency = 8
	default:
		recency = 2
	}

	// A low ratio of open issues to stars suggests responsive maintainers.
	issueScore := 20.0
	if in.Stars > 0 {
		ratio := float64(in.OpenIssues) / float64(in.Stars)
		switch {
		case ratio > 0.5:
			issueScore = 4
		case ratio > 0.2:
			issueScore = 8
		case ratio > 0.1:
			issueScore = 12
		case ratio > 0.05:
			issueScore = 16
		}
	}

	docs := 0.0
	if in.HasReadme {
		docs += 20
	}
	if in.HasLicense {
		docs += 10
	}
	if in.HasDescription {
		docs += 10
	}

	return int(math.Round(recency + issueScore + docs))
}

// TransformRepository converts a raw search result plus its supplementary
// fetches into a domain record. Referentially transparent for a fixed now.
func TransformRepository(raw github.Repository, readme string, languages map[string]int, now time.Time) models.Repository {
	// Sorted so that identical input always yields an identical record.
	languageNames := make([]string, 0, len(languages))
	for name := range languages {
		languageNames = append(languageNames, name)
	}
	sort.Strings(languageNames)

	license := ""
	if raw.License != nil {
		license = raw.License.SPDXID
	}

	topics := raw.Topics
	if topics == nil {
		topics = []string{}
	}

	return models.Repository{
		ID:              strconv.FormatInt(raw.ID, 10),
		Name:            raw.Name,
		FullName:        raw.FullName,
		Description:     raw.Description,
		URL:             raw.HTMLURL,
		Stars:           raw.StargazersCount,
		Forks:           raw.ForksCount,
		OpenIssuesCount: raw.OpenIssuesCount,
		PrimaryLanguage: raw.Language,
		Languages:       languageNames,
		Topics:          topics,
		License:         license,
		CreatedAt:       raw.CreatedAt,
		UpdatedAt:       raw.UpdatedAt,
		PushedAt:        raw.PushedAt,
		Size:            SizeForStars(raw.StargazersCount),
		Readme:          readme,
		HealthScore: HealthScore(HealthInput{
			PushedAt:       raw.PushedAt,
			OpenIssues:     raw.OpenIssuesCount,
			Stars:          raw.StargazersCount,
			HasReadme:      readme != "",
			HasLicense:     license != "",
			HasDescription: raw.Description != "",
		}, now),
	}
}

// TransformIssue converts a raw issue into a domain record owned by repoID.
func TransformIssue(raw github.Issue, repoID string) models.Issue {
	labels := raw.LabelNames()

	state := models.IssueClosed
	if raw.State == "open" {
		state = models.IssueOpen
	}

	return models.Issue{
		ID:               strconv.FormatInt(raw.ID, 10),
		RepoID:           repoID,
		Number:           raw.Number,
		Title:            raw.Title,
		Body:             raw.Body,
		URL:              raw.HTMLURL,
		State:            state,
		Labels:           labels,
		CommentCount:     raw.Comments,
		CreatedAt:        raw.CreatedAt,
		UpdatedAt:        raw.UpdatedAt,
		Difficulty:       InferDifficulty(labels),
		IsGoodFirstIssue: IsGoodFirstIssue(labels),
	}
}
