package mazeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maeln/r-astar/api"
	apii "github.com/maeln/r-astar/api/i"
	"github.com/maeln/r-astar/api/identity"
	dmn "github.com/maeln/r-astar/domain"
	"github.com/maeln/r-astar/infrastruture/token"
	"github.com/maeln/r-astar/logger"
	"github.com/maeln/r-astar/maze"
	"github.com/maeln/r-astar/render"
	"github.com/maeln/r-astar/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rejectingLimiter struct{}

func (rejectingLimiter) Allow(context.Context, string) error { return service.ErrRateLimited }

type testServer struct {
	engine *gin.Engine
	token  string
}

func newTestServer(t *testing.T, limited bool) *testServer {
	t.Helper()

	l, err := logger.New("TEST", "", io.Discard)
	require.NoError(t, err)

	c := &service.MazeConfig{Logger: l, MaxDimension: 40, MaxTraceCells: 64}
	if limited {
		c.Limiter = rejectingLimiter{}
	}
	ms, err := service.NewMazeService(c)
	require.NoError(t, err)

	controller, err := NewMazeController(ms, render.Options{CellSize: 10})
	require.NoError(t, err)

	tokenizer := token.NewJwtService("test-secret", "r-astar-test")
	tok, err := tokenizer.Generate(map[string]interface{}{"userID": "user-1", "username": "maze_runner"}, time.Minute)
	require.NoError(t, err)

	router := api.NewRouter(api.Config{
		BaseURL:                 "/api",
		GinMode:                 gin.TestMode,
		Controllers:             []apii.Controller{controller},
		AuthorizationMiddleware: identity.Authorize(tokenizer),
	})
	return &testServer{engine: router.Engine(), token: tok}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func TestBuildMaze(t *testing.T) {
	s := newTestServer(t, false)

	t.Run("three by one", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/mazes", gin.H{"width": 3, "height": 1, "seed": 9})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res MazeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, int64(9), res.Seed)
		assert.True(t, res.Found)
		assert.Equal(t, []maze.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}, res.Path)
		assert.Equal(t, 2, res.Steps)
		// N|S|W, N|S, N|S|E
		assert.Equal(t, [][]int{{11, 3, 7}}, res.Walls)
	})

	t.Run("custom endpoints", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/mazes", gin.H{
			"width": 10, "height": 6, "seed": 1,
			"start": gin.H{"x": 4, "y": 2},
			"goal":  gin.H{"x": 0, "y": 5},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res MazeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.True(t, res.Found)
		assert.Equal(t, maze.Point{X: 4, Y: 2}, res.Path[0])
		assert.Equal(t, maze.Point{X: 0, Y: 5}, res.Path[len(res.Path)-1])
		assert.Len(t, res.Walls, 6)
		assert.Len(t, res.Walls[0], 10)
	})

	t.Run("bad requests", func(t *testing.T) {
		bodies := []gin.H{
			{"width": 0, "height": 3},
			{"height": 3},
			{"width": 41, "height": 3},
			{"width": 3, "height": 3, "goal": gin.H{"x": 3, "y": 0}},
		}
		for _, body := range bodies {
			w := s.do(t, http.MethodPost, "/api/v1/mazes", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, "%v", body)
		}
	})

	t.Run("unauthorized", func(t *testing.T) {
		anon := &testServer{engine: s.engine}
		w := anon.do(t, http.MethodPost, "/api/v1/mazes", gin.H{"width": 3, "height": 3})
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		bad := &testServer{engine: s.engine, token: "garbage"}
		w = bad.do(t, http.MethodPost, "/api/v1/mazes", gin.H{"width": 3, "height": 3})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestBuildMazeRateLimited(t *testing.T) {
	s := newTestServer(t, true)
	w := s.do(t, http.MethodPost, "/api/v1/mazes", gin.H{"width": 3, "height": 3})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestBuildSVG(t *testing.T) {
	s := newTestServer(t, false)
	w := s.do(t, http.MethodPost, "/api/v1/mazes/svg", gin.H{"width": 5, "height": 4, "seed": 2})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, svgContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<svg ")
	assert.Contains(t, w.Body.String(), "<polyline")
}

func TestTrace(t *testing.T) {
	s := newTestServer(t, false)

	t.Run("streams carve steps then the result", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/mazes/trace?width=4&height=3&seed=5", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

		body := w.Body.String()
		assert.Equal(t, 4*3-1, strings.Count(body, "event:carve"))
		assert.Equal(t, 1, strings.Count(body, "event:done"))
		assert.Less(t, strings.LastIndex(body, "event:carve"), strings.Index(body, "event:done"))
	})

	t.Run("rejects large traces", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/mazes/trace?width=9&height=9", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("requires dimensions", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/mazes/trace?width=4", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestNewMazeResponseUnreachable(t *testing.T) {
	g, err := maze.New(2, 1)
	require.NoError(t, err)

	res := newMazeResponse(&dmn.MazeResult{Grid: g, Goal: maze.Point{X: 1}})
	assert.False(t, res.Found)
	assert.NotNil(t, res.Path)
	assert.Empty(t, res.Path)
	assert.Equal(t, [][]int{{15, 15}}, res.Walls)
}
