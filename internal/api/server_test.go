package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/geasyapp/geasy-server/internal/config"
	"github.com/geasyapp/geasy-server/internal/domain"
	"github.com/geasyapp/geasy-server/internal/search"
	"github.com/geasyapp/geasy-server/internal/service"
	"github.com/geasyapp/geasy-server/internal/store/sqlite"
)

// testServer wraps the API server with its backing store for seeding.
type testServer struct {
	*Server
	api   humatest.TestAPI
	store *sqlite.Store
}

// testErrorBody is the JSON error shape produced by the error bridge.
type testErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// setupTestServer creates a test server with all dependencies.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	tmpDir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.Open(filepath.Join(tmpDir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	index, err := search.NewIndex(search.Options{
		DataPath: tmpDir,
		Logger:   logger,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	cfg := &config.Config{
		Server:    config.ServerConfig{Name: "GEasy Test"},
		RateLimit: config.RateLimitConfig{Enabled: false},
	}

	services := &Services{
		Catalog: service.NewCatalogService(st, logger),
		Planner: service.NewPlannerService(st, logger),
		Search:  service.NewSearchService(index, st, logger),
	}

	server := NewServer(cfg, services, logger)

	return &testServer{
		Server: server,
		api:    humatest.Wrap(t, server.api),
		store:  st,
	}
}

// seedCatalog loads a small course catalog for handler tests.
func seedCatalog(t *testing.T, ts *testServer) {
	t.Helper()
	ctx := context.Background()

	courses := []*domain.Course{
		{ID: 101, Dept: "EE BIOL", Number: "100", Title: "Introduction to Ecology", GEArea: "Life Sciences", Units: 4, HasLab: true, Description: "Population dynamics and ecosystems."},
		{ID: 102, Dept: "PHILOS", Number: "7", Title: "Introduction to Philosophy of Mind", GEArea: "Philosophic and Linguistic Analysis", Units: 5},
		{ID: 105, Dept: "ART HIS", Number: "27", Title: "Art and Architecture of the Americas", GEArea: "Visual and Performance Arts Analysis and Practice", Units: 5},
	}
	for _, c := range courses {
		require.NoError(t, ts.store.CreateCourse(ctx, c))
	}

	require.NoError(t, ts.store.UpsertProfessor(ctx, &domain.Professor{ID: 11, Name: "Alfaro, M.", Dept: "EE BIOL", Rating: 4.3}))
	require.NoError(t, ts.store.CreateSection(ctx, &domain.Section{ID: 21, CourseID: 101, ProfID: 11, Term: "Fall", Year: 2024, SectionCode: "1"}))
	require.NoError(t, ts.store.CreateReview(ctx, &domain.Review{SectionID: 21, Quality: 5, Workload: 3}))
}

// decodeBody unmarshals a humatest response body into out.
func decodeBody(t *testing.T, data []byte, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, out))
}
