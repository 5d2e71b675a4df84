package retrieval

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("TECHPROFILE_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("TECHPROFILE_TEST_PG_DSN not set")
	}
	ctx := context.Background()
	s, err := NewPostgresStore(ctx, dsn)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.Clear(ctx))

	require.NoError(t, s.Put(ctx, BuildRecords(sampleResult(), sampleFiles())...))
	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	tech, err := s.ByType(ctx, TypeTechnologies, 1)
	require.NoError(t, err)
	require.Len(t, tech, 1)
	assert.Equal(t, `["Python","Flask","PostgreSQL"]`, tech[0].Metadata["technologies"])

	newer := sampleResult()
	newer.Summary = "NEW project"
	require.NoError(t, s.Put(ctx, BuildRecords(newer, nil)...))
	sum, err := s.ByType(ctx, TypeSummary, 1)
	require.NoError(t, err)
	require.Len(t, sum, 1)
	assert.Equal(t, "NEW project", sum[0].Document)

	hits, err := s.Search(ctx, "flask postgresql", 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, TypeTechnologies, hits[0].Type)

	require.NoError(t, s.Health(ctx))
	require.NoError(t, s.Clear(ctx))
}

func TestOpen(t *testing.T) {
	s, err := Open(context.Background(), "memory", "")
	require.NoError(t, err)
	_, ok := s.(*MemoryStore)
	assert.True(t, ok)

	_, err = Open(context.Background(), "postgres", " ")
	assert.Error(t, err)
}
