package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wortspiel/imposter-backend/internal"
	"github.com/wortspiel/imposter-backend/internal/game"
)

func testServer() *Server {
	registry := game.NewRegistry(30 * time.Minute)
	return &Server{
		port:     8080,
		registry: registry,
		hub:      game.NewHub(registry, nil),
	}
}

func TestHelloWorldHandler(t *testing.T) {
	s := testServer()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.HelloWorldHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"Hello World"}`, string(body))
}

func TestRoomStatusHandlerNotFound(t *testing.T) {
	s := testServer()
	srv := httptest.NewServer(s.RegisterRoutes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/rooms/NOPE")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var envelope internal.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, http.StatusNotFound, envelope.StatusCode)
	assert.Equal(t, "No such room", envelope.Data)
}

func TestRoomStatusHandlerFound(t *testing.T) {
	s := testServer()
	s.registry.GetOrCreate("ABCD")
	srv := httptest.NewServer(s.RegisterRoutes())
	defer srv.Close()

	// Lookup normalizes the code the same way join does.
	resp, err := http.Get(srv.URL + "/rooms/abcd")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope internal.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, http.StatusOK, envelope.StatusCode)

	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ABCD", data["code"])
	assert.Equal(t, string(internal.PhaseLobby), data["phase"])
	assert.Equal(t, float64(0), data["players"])
}

func TestCorsHeaders(t *testing.T) {
	s := testServer()
	srv := httptest.NewServer(s.RegisterRoutes())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
