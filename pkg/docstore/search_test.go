package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchNormalizedScore(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Ingest("physics", []Chunk{
		{Content: "Gravity pulls objects together. Gravity acts at a distance.", SourceName: "physics.txt"},
		{Content: "Chemistry is about molecules and reactions.", SourceName: "physics.txt"},
	}))

	results, err := s.Search("gravity", 5, 0.1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	// Two occurrences over one query token.
	assert.Equal(t, 2.0, results[0].Score)
	assert.Contains(t, results[0].Chunk.Content, "Gravity")
}

func TestSearchThresholdExcludes(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Ingest("physics", []Chunk{
		{Content: "Gravity pulls objects together.", SourceName: "physics.txt"},
	}))

	results, err := s.Search("gravity", 5, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchShortTokensIgnored(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Ingest("doc", []Chunk{
		{Content: "a a a a a nothing else here", SourceName: "d.txt"},
	}))

	// "a" is a single-character token and contributes no matches, but it
	// still counts in the normalization denominator.
	results, err := s.Search("a nothing", 5, 0.1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 0.5, results[0].Score)
}

func TestSearchBlankQuery(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Search("   ", 5, 0.1)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = s.SearchInDocuments("", []string{"doc"}, 5)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestSearchCaseInsensitive(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Ingest("doc", []Chunk{
		{Content: "PHOTOSYNTHESIS converts light into energy.", SourceName: "bio.txt"},
	}))

	results, err := s.Search("Photosynthesis", 5, 0.1)
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestSearchTopKCut(t *testing.T) {
	s := newTestStore(t)

	chunks := make([]Chunk, 6)
	for i := range chunks {
		chunks[i] = Chunk{Content: "entropy appears in every chunk", SourceName: "thermo.txt"}
	}
	require.NoError(t, s.Ingest("thermo", chunks))

	results, err := s.Search("entropy", 3, 0.1)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestSearchInDocumentsRawCounts(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Ingest("doc-1", []Chunk{
		{Content: "neuron neuron neuron", SourceName: "one.txt"},
		{Content: "neuron appears once", SourceName: "one.txt"},
	}))
	require.NoError(t, s.Ingest("doc-2", []Chunk{
		{Content: "neuron neuron", SourceName: "two.txt"},
		{Content: "no match at all", SourceName: "two.txt"},
	}))

	results, err := s.SearchInDocuments("neuron", []string{"doc-1", "doc-2"}, 5)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Raw occurrence counts, best first across both documents; the chunk
	// with no occurrences is dropped.
	assert.Equal(t, 3.0, results[0].Score)
	assert.Equal(t, "doc-1", results[0].Chunk.DocumentID)
	assert.Equal(t, 2.0, results[1].Score)
	assert.Equal(t, "doc-2", results[1].Chunk.DocumentID)
	assert.Equal(t, 1.0, results[2].Score)
}

func TestSearchInDocumentsIgnoresUnboundDocs(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Ingest("doc-1", []Chunk{{Content: "tectonic plates shift", SourceName: "geo.txt"}}))
	require.NoError(t, s.Ingest("doc-2", []Chunk{{Content: "tectonic activity everywhere", SourceName: "geo2.txt"}}))

	results, err := s.SearchInDocuments("tectonic", []string{"doc-2"}, 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "doc-2", results[0].Chunk.DocumentID)
}

func TestSearchInDocumentsPerDocumentCut(t *testing.T) {
	s := newTestStore(t)

	// doc-1 has k+1 matching chunks; the per-document cut keeps k of them
	// before the lists merge.
	chunks := make([]Chunk, 3)
	for i := range chunks {
		chunks[i] = Chunk{Content: "carbon carbon", SourceName: "chem.txt"}
	}
	require.NoError(t, s.Ingest("doc-1", chunks))
	require.NoError(t, s.Ingest("doc-2", []Chunk{{Content: "carbon", SourceName: "chem2.txt"}}))

	results, err := s.SearchInDocuments("carbon", []string{"doc-1", "doc-2"}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "doc-1", results[0].Chunk.DocumentID)
	assert.Equal(t, "doc-1", results[1].Chunk.DocumentID)
}

func TestSearchIdempotent(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Ingest("doc-1", []Chunk{{Content: "orbit orbit", SourceName: "a.txt"}}))
	require.NoError(t, s.Ingest("doc-2", []Chunk{{Content: "orbit orbit", SourceName: "b.txt"}}))
	require.NoError(t, s.Ingest("doc-3", []Chunk{{Content: "orbit orbit", SourceName: "c.txt"}}))

	first, err := s.Search("orbit", 5, 0.1)
	require.NoError(t, err)

	// Equal scores must come back in the same order on every call.
	for i := 0; i < 10; i++ {
		again, err := s.Search("orbit", 5, 0.1)
		require.NoError(t, err)
		require.Len(t, again, len(first))
		for j := range first {
			assert.Equal(t, first[j].Chunk.SourceName, again[j].Chunk.SourceName)
		}
	}
}
