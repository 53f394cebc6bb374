package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDefaultsFillsMissingFields(t *testing.T) {
	var resp SearchResponse
	require.NoError(t, json.Unmarshal([]byte(`{"results":[{}, {"result":"Intro","path":"/a","score":0.42,"html":"<p>x</p>"}]}`), &resp))

	got := resp.Normalized()
	require.Len(t, got, 2)
	assert.Equal(t, SearchResult{Result: "No title", Path: "/unknown", Score: 0.8, HTML: ""}, got[0])
	assert.Equal(t, SearchResult{Result: "Intro", Path: "/a", Score: 0.42, HTML: "<p>x</p>"}, got[1])
}

func TestNormalizedWithoutResultsField(t *testing.T) {
	var resp SearchResponse
	require.NoError(t, json.Unmarshal([]byte(`{"error":"boom"}`), &resp))

	got := resp.Normalized()
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, "boom", resp.Error)
}
