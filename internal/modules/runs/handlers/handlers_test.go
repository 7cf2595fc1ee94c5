package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	_ "modernc.org/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/horizon/internal/modules/runs"
	"github.com/aristath/horizon/pkg/logger"
)

func setupRouter(t *testing.T) (*chi.Mux, *runs.Repository) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE experiment_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			uuid TEXT NOT NULL UNIQUE,
			kind TEXT NOT NULL CHECK(kind IN ('encode', 'recovery')),
			layers INTEGER NOT NULL,
			bit INTEGER,
			entropy REAL,
			erased_indices BLOB,
			recoverable INTEGER,
			created_at INTEGER NOT NULL
		)
	`)
	require.NoError(t, err)

	repository := runs.NewRepository(db, logger.Nop())
	router := chi.NewRouter()
	NewHandler(repository, logger.Nop()).RegisterRoutes(router)
	return router, repository
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleListEmpty(t *testing.T) {
	router, _ := setupRouter(t)

	rec := get(t, router, "/runs")
	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Data struct {
			Runs  []runs.Run `json:"runs"`
			Count int        `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 0, response.Data.Count)
	assert.Empty(t, response.Data.Runs)
}

func TestHandleListWithRuns(t *testing.T) {
	router, repository := setupRouter(t)

	require.NoError(t, repository.RecordEncode(3, 1, 2.77))
	require.NoError(t, repository.RecordRecovery(3, []int{0}, true))

	rec := get(t, router, "/runs")
	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Data struct {
			Runs  []runs.Run `json:"runs"`
			Count int        `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Data.Count)
	require.Len(t, response.Data.Runs, 2)
}

func TestHandleListLimit(t *testing.T) {
	router, repository := setupRouter(t)

	for i := 0; i < 4; i++ {
		require.NoError(t, repository.RecordEncode(3, i%2, 2.77))
	}

	rec := get(t, router, "/runs?limit=2")
	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Data struct {
			Count int `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Data.Count)
}

func TestHandleListInvalidLimit(t *testing.T) {
	router, _ := setupRouter(t)

	for _, limit := range []string{"abc", "0", "-5"} {
		rec := get(t, router, "/runs?limit="+limit)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "limit %s", limit)
	}
}
