package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/marcelsud/bookshelf-api/book"
	bookjson "github.com/marcelsud/bookshelf-api/book/jsonfile"
	bookredis "github.com/marcelsud/bookshelf-api/book/redis"
	"github.com/marcelsud/bookshelf-api/ident"
	"github.com/marcelsud/bookshelf-api/metrics"
	"github.com/marcelsud/bookshelf-api/storage/jsonfile"
	"github.com/marcelsud/bookshelf-api/user"
	userjson "github.com/marcelsud/bookshelf-api/user/jsonfile"
	userredis "github.com/marcelsud/bookshelf-api/user/redis"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newServer runs the real router over a file store in a temp dir
func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := jsonfile.Open(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)
	h := Handlers(context.Background(),
		book.NewService(bookjson.NewRepository(db)),
		user.NewService(userjson.NewRepository(db)),
		Options{Logger: zerolog.Nop(), APIKey: testAPIKey, Scheme: ident.Sequential},
	)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

// newRedisServer runs the real router over miniredis
func newRedisServer(t *testing.T) *httptest.Server {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	h := Handlers(context.Background(),
		book.NewService(bookredis.NewRepository(client)),
		user.NewService(userredis.NewRepository(client)),
		Options{Logger: zerolog.Nop(), APIKey: testAPIKey, Scheme: ident.ObjectID},
	)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path, body string, out any) int {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("api-key", testAPIKey)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestBookLifecycle(t *testing.T) {
	srv := newServer(t)

	var list []book.DTO
	assert.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/books", "", &list))
	assert.Empty(t, list)

	var created book.DTO
	status := call(t, srv, http.MethodPost, "/books", `{"titulo":"Dom Casmurro","autor":"Machado de Assis","ano":1899}`, &created)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, book.DTO{ID: "1", Titulo: "Dom Casmurro", Autor: "Machado de Assis", Ano: 1899}, created)

	var got book.DTO
	assert.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/books/1", "", &got))
	assert.Equal(t, created, got)

	var e errorResponse
	assert.Equal(t, http.StatusBadRequest, call(t, srv, http.MethodPatch, "/books/1", `{}`, &e))
	assert.Equal(t, "No data provided for update", e.Error)

	var updated book.DTO
	assert.Equal(t, http.StatusOK, call(t, srv, http.MethodPatch, "/books/1", `{"ano":1900}`, &updated))
	assert.Equal(t, 1900.0, updated.Ano)
	assert.Equal(t, "Dom Casmurro", updated.Titulo)

	var deleted book.DTO
	assert.Equal(t, http.StatusOK, call(t, srv, http.MethodDelete, "/books/1", "", &deleted))
	assert.Equal(t, updated, deleted)

	e = errorResponse{}
	assert.Equal(t, http.StatusNotFound, call(t, srv, http.MethodDelete, "/books/1", "", &e))
	assert.Equal(t, errorResponse{Error: "Book not found", Status: http.StatusNotFound}, e)

	// ids past int64 are well formed but can never exist
	e = errorResponse{}
	assert.Equal(t, http.StatusNotFound, call(t, srv, http.MethodGet, "/books/99999999999999999999", "", &e))
	assert.Equal(t, "Book not found", e.Error)

	// a freed id is not handed out again
	status = call(t, srv, http.MethodPost, "/books", `{"titulo":"Iracema","autor":"José de Alencar","ano":1865}`, &created)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "2", created.ID)
}

func TestUserLifecycle(t *testing.T) {
	srv := newServer(t)

	var e errorResponse
	assert.Equal(t, http.StatusBadRequest, call(t, srv, http.MethodPost, "/users", `{"ativo":true}`, &e))
	assert.Equal(t, "Field 'nome' is required", e.Error)

	var created map[string]any
	require.Equal(t, http.StatusCreated, call(t, srv, http.MethodPost, "/users", `{"nome":"Ana","ativo":true}`, &created))
	assert.Equal(t, map[string]any{"id": "1", "nome": "Ana", "ativo": true}, created)

	var updated user.DTO
	assert.Equal(t, http.StatusOK, call(t, srv, http.MethodPatch, "/users/1", `{"saldo":12.5}`, &updated))
	require.NotNil(t, updated.Saldo)
	assert.Equal(t, 12.5, *updated.Saldo)
	assert.True(t, updated.Ativo)

	var list []user.DTO
	assert.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/users", "", &list))
	assert.Equal(t, []user.DTO{updated}, list)

	e = errorResponse{}
	assert.Equal(t, http.StatusNotFound, call(t, srv, http.MethodGet, "/users/2", "", &e))
	assert.Equal(t, "User not found", e.Error)
}

func TestOverflowingNumbersAreRejected(t *testing.T) {
	for name, srv := range map[string]*httptest.Server{
		"file":  newServer(t),
		"redis": newRedisServer(t),
	} {
		t.Run(name, func(t *testing.T) {
			var e errorResponse
			status := call(t, srv, http.MethodPost, "/users", `{"nome":"a","ativo":true,"saldo":1e400}`, &e)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, errorResponse{Error: "Field 'saldo' must be a number", Status: http.StatusBadRequest}, e)

			e = errorResponse{}
			status = call(t, srv, http.MethodPost, "/books", `{"titulo":"a","autor":"b","ano":1e400}`, &e)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, "Field 'ano' must be a number", e.Error)

			var users []user.DTO
			assert.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/users", "", &users))
			assert.Empty(t, users)
		})
	}
}

func TestFractionalYearRoundTrips(t *testing.T) {
	for name, srv := range map[string]*httptest.Server{
		"file":  newServer(t),
		"redis": newRedisServer(t),
	} {
		t.Run(name, func(t *testing.T) {
			var created book.DTO
			status := call(t, srv, http.MethodPost, "/books", `{"titulo":"a","autor":"b","ano":2025.5}`, &created)
			require.Equal(t, http.StatusCreated, status)
			assert.Equal(t, 2025.5, created.Ano)

			var got book.DTO
			assert.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/books/"+created.ID, "", &got))
			assert.Equal(t, created, got)
		})
	}
}

func TestWrongAPIKey(t *testing.T) {
	srv := newServer(t)
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/books", nil)
	require.NoError(t, err)
	req.Header.Set("api-key", "chaveSuperSecreta")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var e errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, errorResponse{Error: "Invalid or missing API key", Status: http.StatusUnauthorized}, e)
}

type stubCollector struct {
	err error
}

func (c stubCollector) Collect(ctx context.Context) (metrics.Metrics, error) {
	if c.err != nil {
		return metrics.Metrics{}, c.err
	}
	return metrics.Metrics{Records: map[string]int64{"books": 2, "users": 0}, Timestamp: time.Now()}, nil
}

func (c stubCollector) GetRecordCounts(ctx context.Context) (map[string]int64, error) {
	m, err := c.Collect(ctx)
	return m.Records, err
}

func TestOpsHandlers(t *testing.T) {
	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("store_records 1\n"))
	})

	t.Run("health without collector", func(t *testing.T) {
		w := httptest.NewRecorder()
		OpsHandlers(nil, metricsHandler).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
	})

	t.Run("health reports record counts", func(t *testing.T) {
		w := httptest.NewRecorder()
		OpsHandlers(stubCollector{}, metricsHandler).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		var got healthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "healthy", got.Status)
		assert.Equal(t, map[string]int64{"books": 2, "users": 0}, got.Records)
		require.NotNil(t, got.Timestamp)
	})

	t.Run("storage down", func(t *testing.T) {
		w := httptest.NewRecorder()
		OpsHandlers(stubCollector{err: errors.New("dial tcp: refused")}, metricsHandler).
			ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"unhealthy"}`, w.Body.String())
	})

	t.Run("metrics", func(t *testing.T) {
		w := httptest.NewRecorder()
		OpsHandlers(nil, metricsHandler).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "store_records")
	})
}
