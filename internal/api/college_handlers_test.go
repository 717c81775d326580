package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListColleges(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/colleges")
	assert.Equal(t, http.StatusOK, resp.Code)

	var body CollegesResponse
	decodeBody(t, resp.Body.Bytes(), &body)
	assert.Len(t, body.Colleges, 5)
}

func TestGetCollege(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/colleges/3")
	assert.Equal(t, http.StatusOK, resp.Code)

	var college struct {
		ShortName string `json:"short_name"`
	}
	decodeBody(t, resp.Body.Bytes(), &college)
	assert.Equal(t, "Engineering and Applied Science", college.ShortName)
}

func TestGetCollege_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/colleges/99")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	var body testErrorBody
	decodeBody(t, resp.Body.Bytes(), &body)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestListCollegeRequirements(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/colleges/3/requirements")
	assert.Equal(t, http.StatusOK, resp.Code)

	var body RequirementsResponse
	decodeBody(t, resp.Body.Bytes(), &body)
	require.Len(t, body.Requirements, 4)
	assert.Equal(t, int64(16), body.Requirements[0].ID)
	assert.Equal(t, "Literary and Cultural Analysis", body.Requirements[0].GEArea)
}

func TestListCollegeRequirements_UnknownCollege(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/colleges/99/requirements")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	var body testErrorBody
	decodeBody(t, resp.Body.Bytes(), &body)
	assert.Equal(t, "INVALID_COLLEGE", body.Code)
}

func TestListAreaMappings(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/areas/mappings")
	assert.Equal(t, http.StatusOK, resp.Code)

	var body AreaMappingsResponse
	decodeBody(t, resp.Body.Bytes(), &body)
	assert.Len(t, body.Mappings, 7)
}

func TestListGEAreas(t *testing.T) {
	ts := setupTestServer(t)
	seedCatalog(t, ts)

	resp := ts.api.Get("/api/v1/areas")
	assert.Equal(t, http.StatusOK, resp.Code)

	var body AreasResponse
	decodeBody(t, resp.Body.Bytes(), &body)
	assert.Len(t, body.Areas, 3)
}
