package stubapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-reader-client/internal/models"
)

// Тесты поверхности стаба, которые не покрыты интеграционными тестами
// клиента: валидация query-параметров и коды ошибок.

func newServerForTest(t *testing.T) *httptest.Server {
	t.Helper()

	srv := New(Options{Token: "t"})

	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	srv.SeedCollection(models.Collection{ID: 1, Name: "Tech", CreatedAt: now, UpdatedAt: now},
		[]models.Article{{ID: 1, FeedID: 1, Title: "a", CreatedAt: now}})

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer t")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestListArticles_InvalidLimit(t *testing.T) {
	t.Parallel()

	ts := newServerForTest(t)

	for _, q := range []string{"limit=0", "limit=101", "limit=abc", "offset=-1"} {
		resp := get(t, ts.URL+"/collections/1/articles?"+q)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, q)

		var body errorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Equal(t, "invalid_argument", body.ErrorCode)
	}
}

func TestListArticles_UnknownCollection(t *testing.T) {
	t.Parallel()

	ts := newServerForTest(t)

	resp := get(t, ts.URL+"/collections/42/articles")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListArticles_OffsetBeyondTotal(t *testing.T) {
	t.Parallel()

	ts := newServerForTest(t)

	resp := get(t, ts.URL+"/collections/1/articles?offset=10")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page models.Page
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	require.Empty(t, page.Items)
	require.Equal(t, 1, page.Total)
}

func TestAuth_MissingToken(t *testing.T) {
	t.Parallel()

	ts := newServerForTest(t)

	resp, err := http.Get(ts.URL + "/collections")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
