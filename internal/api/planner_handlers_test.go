package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geasyapp/geasy-server/internal/domain"
)

func TestEvaluate_SingleCandidate(t *testing.T) {
	ts := setupTestServer(t)
	seedCatalog(t, ts)

	resp := ts.api.Post("/api/v1/evaluate", map[string]any{
		"college_id": 3,
		"candidates": []map[string]any{{"course_id": 102}},
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	var body EvaluateResponse
	decodeBody(t, resp.Body.Bytes(), &body)
	assert.Equal(t, "Engineering and Applied Science", body.College.ShortName)
	assert.False(t, body.Satisfied)
	require.Len(t, body.Results, 4)

	lca := body.Results[0]
	assert.Equal(t, int64(16), lca.Requirement.ID)
	assert.Equal(t, domain.StatusOutstanding, lca.Status)
	assert.Equal(t, "need 2 matching course(s), have 1", lca.Reason)
}

func TestEvaluate_CrossSubgroupSatisfiesDiversity(t *testing.T) {
	ts := setupTestServer(t)
	seedCatalog(t, ts)

	resp := ts.api.Post("/api/v1/evaluate", map[string]any{
		"college_id": 3,
		"candidates": []map[string]any{
			{"course_id": 102},
			{"course_id": 105},
		},
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	var body EvaluateResponse
	decodeBody(t, resp.Body.Bytes(), &body)
	require.Len(t, body.Results, 4)
	assert.Equal(t, domain.StatusSatisfied, body.Results[0].Status)
	assert.Empty(t, body.Results[0].Reason)
}

func TestEvaluate_NoCandidates(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/evaluate", map[string]any{
		"college_id": 3,
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	var body EvaluateResponse
	decodeBody(t, resp.Body.Bytes(), &body)
	require.Len(t, body.Results, 4)
	for _, r := range body.Results {
		assert.Equal(t, domain.StatusOutstanding, r.Status)
	}
}

func TestEvaluate_UnknownCollege(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/evaluate", map[string]any{
		"college_id": 99,
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)

	var body testErrorBody
	decodeBody(t, resp.Body.Bytes(), &body)
	assert.Equal(t, "INVALID_COLLEGE", body.Code)
}

func TestEvaluate_UnknownCourse(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/evaluate", map[string]any{
		"college_id": 3,
		"candidates": []map[string]any{{"course_id": 12345}},
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)

	var body testErrorBody
	decodeBody(t, resp.Body.Bytes(), &body)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestEvaluate_SectionOfOtherCourse(t *testing.T) {
	ts := setupTestServer(t)
	seedCatalog(t, ts)

	// Section 21 belongs to course 101, not 102.
	resp := ts.api.Post("/api/v1/evaluate", map[string]any{
		"college_id": 3,
		"candidates": []map[string]any{{"course_id": 102, "section_id": 21}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var body testErrorBody
	decodeBody(t, resp.Body.Bytes(), &body)
	assert.Equal(t, "VALIDATION", body.Code)
}
