package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
)

// DefaultGitHubAPI is the public GitHub REST endpoint.
const DefaultGitHubAPI = "https://api.github.com"

// GitHubProvider derives activity from a user's public repositories:
// the count of non-fork repositories plus the stars they have earned.
type GitHubProvider struct {
	BaseURL string
	client  *http.Client
}

type githubRepo struct {
	Fork            bool   `json:"fork"`
	Language        string `json:"language"`
	StargazersCount int    `json:"stargazers_count"`
}

// NewGitHubProvider returns a provider; a non-empty token authenticates
// requests through an oauth2 static token source for higher rate limits.
func NewGitHubProvider(ctx context.Context, token string) *GitHubProvider {
	client := &http.Client{Timeout: 15 * time.Second}
	if token != "" {
		client = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
		client.Timeout = 15 * time.Second
	}
	return &GitHubProvider{BaseURL: DefaultGitHubAPI, client: client}
}

// Lookup implements Provider.
func (g *GitHubProvider) Lookup(ctx context.Context, handle string) (*Activity, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=100&type=owner", g.BaseURL, url.PathEscape(handle))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: github returned HTTP %d for %s", ErrUnavailable, resp.StatusCode, handle)
	}

	var repos []githubRepo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("%w: decoding repositories: %v", ErrUnavailable, err)
	}

	activity := &Activity{Languages: []string{}}
	seen := make(map[string]bool)
	for _, r := range repos {
		if r.Fork {
			continue
		}
		activity.ActivityCount += 1 + r.StargazersCount
		if r.Language != "" && !seen[r.Language] {
			seen[r.Language] = true
			activity.Languages = append(activity.Languages, r.Language)
		}
	}
	return activity, nil
}
