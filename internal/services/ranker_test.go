package services

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jobDescription = "Senior Go engineer to build backend services with PostgreSQL, Kubernetes and gRPC."

func TestRankIdenticalResume(t *testing.T) {
	scores, err := NewRanker(nil, nil).Rank(jobDescription, []string{jobDescription})
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.InDelta(t, 1.0, scores[0], 1e-6)
}

func TestRankEmptyResumeList(t *testing.T) {
	scores, err := NewRanker(nil, nil).Rank(jobDescription, nil)
	require.NoError(t, err)
	assert.NotNil(t, scores)
	assert.Empty(t, scores)
}

func TestRankEmptyResumeText(t *testing.T) {
	scores, err := NewRanker(nil, nil).Rank(jobDescription, []string{""})
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, scores)
}

func TestRankKnownValue(t *testing.T) {
	scores, err := NewRanker(nil, nil).Rank("apple banana", []string{"apple"})
	require.NoError(t, err)
	assert.InDelta(t, 0.5797386715376657, scores[0], 1e-9)
}

func TestRankOrderAndRange(t *testing.T) {
	resumes := []string{
		"Python data scientist with pandas experience",
		"Go engineer: backend services, gRPC, Kubernetes, PostgreSQL",
		"",
		"Go developer",
		"Chef, restaurant manager",
	}

	scores, err := NewRanker(nil, nil).Rank(jobDescription, resumes)
	require.NoError(t, err)
	require.Len(t, scores, len(resumes))

	for i, s := range scores {
		assert.False(t, math.IsNaN(s), "score %d is NaN", i)
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}

	assert.Greater(t, scores[1], scores[3])
	assert.Greater(t, scores[3], scores[0])
	assert.Equal(t, 0.0, scores[2])
	assert.Equal(t, 0.0, scores[4])
}

func TestRankIsIndexAligned(t *testing.T) {
	a := "go kubernetes postgresql"
	b := "cooking"

	forward, err := NewRanker(nil, nil).Rank(jobDescription, []string{a, b})
	require.NoError(t, err)
	reverse, err := NewRanker(nil, nil).Rank(jobDescription, []string{b, a})
	require.NoError(t, err)

	assert.InDelta(t, forward[0], reverse[1], 1e-12)
	assert.InDelta(t, forward[1], reverse[0], 1e-12)
}

func TestRankDegenerateCorpus(t *testing.T) {
	_, err := NewRanker(nil, nil).Rank("", []string{"", "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyVocabulary))
}

type failingVectorizer struct{}

func (failingVectorizer) FitTransform([]string) ([][]float64, error) {
	return nil, errors.New("boom")
}

func TestRankSurfacesVectorizerError(t *testing.T) {
	_, err := NewRanker(failingVectorizer{}, nil).Rank(jobDescription, []string{"go"})
	assert.ErrorContains(t, err, "boom")
}
