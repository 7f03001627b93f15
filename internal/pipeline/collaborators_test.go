package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-ranker/internal/enrichment"
)

func TestNewCollaborators_Offline(t *testing.T) {
	c := NewCollaborators(context.Background(), CollaboratorOptions{Offline: true})
	assert.Nil(t, c.Provider)
	assert.Nil(t, c.Similarity)
	assert.NoError(t, c.Close())
}

func TestNewCollaborators_GitHubWithoutCache(t *testing.T) {
	// nothing listens on port 1, so the cache is skipped
	c := NewCollaborators(context.Background(), CollaboratorOptions{RedisAddr: "127.0.0.1:1"})
	defer func() { _ = c.Close() }()

	_, ok := c.Provider.(*enrichment.GitHubProvider)
	assert.True(t, ok, "got %T", c.Provider)
	assert.Nil(t, c.Similarity)
}

func TestCollaborators_ApplyKeepsExplicit(t *testing.T) {
	explicit := adaProvider()
	c := &Collaborators{Provider: enrichment.NewGitHubProvider(context.Background(), "")}

	opts := RunOptions{Provider: explicit}
	c.Apply(&opts)
	assert.NotNil(t, opts.Provider)
	_, isGitHub := opts.Provider.(*enrichment.GitHubProvider)
	assert.False(t, isGitHub)

	opts = RunOptions{}
	c.Apply(&opts)
	_, isGitHub = opts.Provider.(*enrichment.GitHubProvider)
	assert.True(t, isGitHub)
}
