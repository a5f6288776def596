package github

import (
	"context"
	"sort"
	"time"
)

const (
	trendingWindow   = 7 * 24 * time.Hour
	trendingMinStars = 50
	trendingTopN     = 20
)

// FetchTrendingTopics approximates GitHub's trending topics: it searches for
// repositories created in the last week with at least 50 stars and returns
// the most frequent topics among them, most common first.
func (c *Client) FetchTrendingTopics(ctx context.Context) ([]string, error) {
	since := time.Now().Add(-trendingWindow).Format("2006-01-02")

	result, err := c.SearchRepositories(ctx, SearchParams{
		MinStars:     trendingMinStars,
		CreatedAfter: since,
		PerPage:      100,
		Sort:         "stars",
		Order:        "desc",
	})
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, repo := range result.Items {
		for _, topic := range repo.Topics {
			counts[topic]++
		}
	}

	topics := make([]string, 0, len(counts))
	for topic := range counts {
		topics = append(topics, topic)
	}
	sort.Slice(topics, func(i, j int) bool {
		if counts[topics[i]] != counts[topics[j]] {
			return counts[topics[i]] > counts[topics[j]]
		}
		return topics[i] < topics[j]
	})

	if len(topics) > trendingTopN {
		topics = topics[:trendingTopN]
	}
	return topics, nil
}
