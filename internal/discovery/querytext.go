// Package discovery implements the request-time retrieval core: it turns a
// user preference object into a semantic query, searches the repository and
// issue vector indexes, hydrates records from the store and returns a ranked,
// issue-annotated repository list.
package discovery

import (
	"strings"

	"github.com/gitmatch/gitmatch/internal/models"
)

// interestKeywords expands each selectable interest into the descriptive
// phrase that is embedded in its place.
var interestKeywords = map[string]string{
	"web-development":    "web development, frontend, backend, full-stack, React, Vue, Node.js, APIs",
	"mobile-development": "mobile development, iOS, Android, React Native, Flutter",
	"ai-ml":              "artificial intelligence, machine learning, deep learning, NLP, computer vision",
	"game-development":   "game development, game engine, graphics, Unity, Unreal",
	"devops":             "DevOps, CI/CD, containers, Kubernetes, Docker, infrastructure",
	"security":           "security, cryptography, authentication, vulnerability, penetration testing",
	"data-science":       "data science, analytics, visualization, pandas, statistics",
	"embedded-systems":   "embedded systems, IoT, firmware, hardware, microcontrollers",
}

// experienceDescriptions phrases each experience level for the query text.
var experienceDescriptions = map[models.ExperienceLevel]string{
	models.ExperienceBeginner:     "beginner-friendly, well-documented, simple codebase, good first issues",
	models.ExperienceIntermediate: "moderate complexity, some experience required, established patterns",
	models.ExperienceExpert:       "complex architecture, advanced patterns, deep domain knowledge",
}

// KnownInterest reports whether the interest can be expanded. The HTTP layer
// rejects unknown interests before a query reaches the service.
func KnownInterest(interest string) bool {
	_, ok := interestKeywords[interest]
	return ok
}

// BuildQueryText converts discovery preferences into the natural-language
// text that gets embedded. Each present part is a sentence; parts are joined
// with single spaces and the experience-level sentence is always present.
func BuildQueryText(query models.DiscoveryQuery) string {
	var parts []string

	if len(query.Languages) > 0 {
		parts = append(parts, "Programming languages: "+strings.Join(query.Languages, ", ")+".")
	}

	if len(query.Interests) > 0 {
		expansions := make([]string, 0, len(query.Interests))
		for _, interest := range query.Interests {
			if kw, ok := interestKeywords[interest]; ok {
				expansions = append(expansions, kw)
			}
		}
		if len(expansions) > 0 {
			parts = append(parts, "Interests: "+strings.Join(expansions, "; ")+".")
		}
	}

	parts = append(parts, "Experience level: "+experienceDescriptions[query.ExperienceLevel]+".")

	if len(query.TrendingTopics) > 0 {
		parts = append(parts, "Trending topics: "+strings.Join(query.TrendingTopics, ", ")+".")
	}

	return strings.Join(parts, " ")
}
