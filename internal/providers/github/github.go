package github

import (
	"context"
	"time"
)

// Repo is the subset of the GitHub repository payload the profile page
// renders.
type Repo struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	HTMLURL     string    `json:"html_url"`
	Description string    `json:"description"`
	Stargazers  int       `json:"stargazers_count"`
	Watchers    int       `json:"watchers_count"`
	Forks       int       `json:"forks_count"`
	Language    string    `json:"language"`
	CreatedAt   time.Time `json:"created_at"`
}

// Client lists public repositories for a GitHub username.
type Client interface {
	ListRecentRepos(ctx context.Context, username string, limit int) ([]Repo, error)
}
