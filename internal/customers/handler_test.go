package customers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motorhaus/motorhaus/internal/shared"
	"github.com/motorhaus/motorhaus/internal/view"
)

func newTestHandler(t *testing.T) (*Handler, *mockRepository, http.Handler) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sessions := shared.NewSessionManager(client, "motorhaus_session", "test-secret", time.Hour, false)
	csrf := shared.NewCSRFManager("test-secret")

	templates, err := view.NewEngine()
	require.NoError(t, err)

	repo := newMockRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, NewService(repo), templates, csrf, sessions)

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := sessions.Load(r.Context(), r)
			require.NoError(t, err)
			next.ServeHTTP(w, r.WithContext(shared.ContextWithSession(r.Context(), sess)))
		})
	})
	router.Route("/customers", handler.MountRoutes)

	return handler, repo, router
}

func TestHandlerListRendersCustomers(t *testing.T) {
	_, repo, router := newTestHandler(t)
	_, err := repo.Create(context.Background(), validCustomer())
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/customers", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Maria Santos")
}

func TestHandlerCreateRedirectsOnSuccess(t *testing.T) {
	_, repo, router := newTestHandler(t)

	form := url.Values{}
	form.Set("first_name", "Maria")
	form.Set("last_name", "Santos")
	form.Set("phone", "555-123-4567")
	form.Set("email", "maria@example.com")

	req := httptest.NewRequest(http.MethodPost, "/customers/add", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/customers/view/1", rr.Header().Get("Location"))
	assert.Len(t, repo.customers, 1)
}

func TestHandlerCreateRejectsInvalidForm(t *testing.T) {
	_, repo, router := newTestHandler(t)

	form := url.Values{}
	form.Set("first_name", "Maria")
	form.Set("phone", "123")

	req := httptest.NewRequest(http.MethodPost, "/customers/add", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "incomplete or invalid")
	assert.Empty(t, repo.customers)
}

func TestHandlerShowUnknownCustomer(t *testing.T) {
	_, _, router := newTestHandler(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/customers/view/99", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandlerDeleteRedirectsWithFlash(t *testing.T) {
	_, repo, router := newTestHandler(t)
	created, err := repo.Create(context.Background(), validCustomer())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/customers/delete/1", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/customers", rr.Header().Get("Location"))
	_, err = repo.Get(context.Background(), created.ID)
	assert.Error(t, err)
}
