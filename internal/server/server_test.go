package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type routesFunc func(chi.Router)

func (f routesFunc) RegisterRoutes(router chi.Router) { f(router) }

func testRoutes(router chi.Router) {
	router.Get("/student/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chi.URLParam(r, "id")))
	})
	router.Get("/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
}

func TestServerRoutesBehindMiddleware(t *testing.T) {
	s := NewServer(ServerConfig{Address: ":0", RequestTimeout: time.Second}, routesFunc(testRoutes), zerolog.Nop())

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/student/12/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "12", rec.Body.String())

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServerCORSDefaults(t *testing.T) {
	s := NewServer(ServerConfig{
		CORS: CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}, routesFunc(testRoutes), zerolog.Nop())

	req := httptest.NewRequest(http.MethodOptions, "/editstudent", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.MethodPost, rec.Header().Get("Access-Control-Allow-Methods"))

	opts := corsOptions(CORSConfig{})
	assert.Equal(t, []string{http.MethodGet, http.MethodPost, http.MethodOptions}, opts.AllowedMethods)
	assert.Equal(t, []string{"Accept", "Content-Type"}, opts.AllowedHeaders)
	assert.Equal(t, 300, opts.MaxAge)
}

func TestServerShutdownWithoutStart(t *testing.T) {
	s := NewServer(ServerConfig{ShutdownTimeout: 50 * time.Millisecond}, routesFunc(testRoutes), zerolog.Nop())
	require.NoError(t, s.Shutdown(context.Background()))
}

func TestServerStartReturnsNilAfterShutdown(t *testing.T) {
	s := NewServer(ServerConfig{Address: "127.0.0.1:0", ShutdownTimeout: time.Second}, routesFunc(testRoutes), zerolog.Nop())

	done := make(chan error, 1)
	go func() { done <- s.Start() }()

	// Shutdown may race ahead of ListenAndServe; either way Start must return nil.
	require.Eventually(t, func() bool {
		if err := s.Shutdown(context.Background()); err != nil {
			return false
		}
		select {
		case err := <-done:
			return err == nil
		case <-time.After(20 * time.Millisecond):
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}
