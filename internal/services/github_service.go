package services

import (
	"context"
	"time"

	"github.com/devlinkhq/devlink/internal/cache"
	"github.com/devlinkhq/devlink/internal/providers/github"
	"github.com/devlinkhq/devlink/internal/utils"
)

const githubRepoLimit = 5

// GithubService proxies the "pinned repos" block on the public profile
// page. Responses are cached so profile views don't burn the GitHub
// rate limit.
type GithubService interface {
	Repos(ctx context.Context, username string) ([]github.Repo, error)
}

type githubService struct {
	client github.Client
	cache  cache.Cache
	ttl    time.Duration
}

// NewGithubService wires the client and an optional cache. A nil cache
// disables caching.
func NewGithubService(client github.Client, c cache.Cache, ttl time.Duration) GithubService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &githubService{client: client, cache: c, ttl: ttl}
}

func (s *githubService) Repos(ctx context.Context, username string) ([]github.Repo, error) {
	const op = "GithubService.Repos"

	if username == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "username is required", nil)
	}

	key := "github:repos:" + username
	if s.cache != nil {
		var cached []github.Repo
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	repos, err := s.client.ListRecentRepos(ctx, username, githubRepoLimit)
	if err != nil {
		// Every upstream failure collapses to the same client-facing
		// message; the wrapped cause still reaches the request log.
		return nil, utils.E(utils.CodeUpstream, op, "No Github profile found", err)
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, repos, s.ttl)
	}
	return repos, nil
}
