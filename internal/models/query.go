package models

// ExperienceLevel is the self-declared experience of the querying developer.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceExpert       ExperienceLevel = "expert"
)

// DiscoveryQuery is the structured preference object built per request.
// Validation (non-empty languages and sizes, known level) happens at the
// HTTP boundary before the query reaches the discovery service.
type DiscoveryQuery struct {
	Languages       []string        `json:"languages"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel"`
	Interests       []string        `json:"interests"`
	RepoSizes       []RepoSize      `json:"repoSizes"`
	TrendingTopics  []string        `json:"trendingTopics,omitempty"`
}

// IssueMatch is one issue surfaced for a matched repository.
type IssueMatch struct {
	ID         string     `json:"id"`
	Number     int        `json:"number"`
	Title      string     `json:"title"`
	URL        string     `json:"url"`
	Labels     []string   `json:"labels"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
	Score      float64    `json:"score"`
}

// RepoMatch is one ranked repository in a discovery result. Score combines
// semantic similarity with a small bonus per matched open issue.
type RepoMatch struct {
	ID              string       `json:"id"`
	FullName        string       `json:"fullName"`
	Description     string       `json:"description"`
	URL             string       `json:"url"`
	Stars           int          `json:"stars"`
	PrimaryLanguage string       `json:"primaryLanguage"`
	Topics          []string     `json:"topics"`
	Size            RepoSize     `json:"size"`
	Score           float64      `json:"score"`
	MatchedIssues   []IssueMatch `json:"matchedIssues"`
}

// DiscoveryResult is the ranked output of one discovery request.
type DiscoveryResult struct {
	Repos              []RepoMatch    `json:"repos"`
	Query              DiscoveryQuery `json:"query"`
	TotalReposSearched int            `json:"totalReposSearched"`
}
