package integration

import (
	"bufio"
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
	apirest "github.com/kasuganosora/epicadventure/api/rest"
	"github.com/kasuganosora/epicadventure/api/sse"
	"github.com/kasuganosora/epicadventure/audit"
	"github.com/kasuganosora/epicadventure/cache"
	"github.com/kasuganosora/epicadventure/config"
	"github.com/kasuganosora/epicadventure/game/broadcast"
	"github.com/kasuganosora/epicadventure/game/content"
	"github.com/kasuganosora/epicadventure/game/store"
	mw "github.com/kasuganosora/epicadventure/middleware"
	"github.com/kasuganosora/epicadventure/plugin/hook"
	"github.com/kasuganosora/epicadventure/scheduler"
	"github.com/kasuganosora/epicadventure/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// AdminKey is accepted by the admin routes of every TestServer.
const AdminKey = "integration-admin"

// TestServer wraps a real HTTP server with the whole game wired together.
type TestServer struct {
	DB     *gorm.DB
	Cache  cache.Cache
	PubSub cache.PubSub
	Store  *store.Store
	Audit  *audit.Service
	Sched  *scheduler.Scheduler
	Server *httptest.Server
	URL    string
	Sec    config.SecurityConfig
}

// NewTestServer creates a fully wired server for integration testing.
// It mirrors the dependency wiring in main.go with short game delays.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// ---- Infrastructure ----
	db := testutil.SetupTestDB(t)
	c, pubsub := testutil.SetupTestCache(t)
	logger := zap.NewNop()

	sec := config.SecurityConfig{
		JWTSecret:      "integration-test-secret",
		JWTTTLH:        72 * time.Hour,
		RateLimitRPS:   1000,
		RateLimitBurst: 2000,
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(AdminKey), bcrypt.MinCost)
	require.NoError(t, err)

	auditSvc := audit.New(db, logger)
	sched := scheduler.New(logger)
	hc := hook.NewHookCenter()
	b := broadcast.New(pubsub, c, logger)

	cfg := store.DefaultConfig()
	cfg.CounterattackDelay = 20 * time.Millisecond
	cfg.RespawnDelay = 50 * time.Millisecond
	cfg.AuraDuration = 50 * time.Millisecond
	st := store.New(cfg, content.NewGenerator(11), sched, hc, b, logger)
	auditSvc.Attach(hc, st)
	b.Attach(hc, st)

	// ---- Gin HTTP Server ----
	r := gin.New()
	r.Use(mw.TraceID(), mw.Recovery(logger))
	r.Use(mw.RateLimit(rate.Limit(sec.RateLimitRPS), sec.RateLimitBurst))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	sessH := apirest.NewSessionHandler(db, c, sec, st, auditSvc, b, logger)
	api := r.Group("/api")
	{
		api.POST("/session", sessH.Create)
		api.DELETE("/session", mw.Auth(sec, c), sessH.Delete)

		apirest.NewContentHandler().Register(api.Group("/content"))
		api.GET("/ranking/level", apirest.NewRankingHandler(c, logger).TopLevel)

		gameG := api.Group("")
		gameG.Use(mw.Auth(sec, c))
		apirest.NewGameHandler(st, logger).Register(gameG)

		adminG := api.Group("/admin")
		adminG.Use(mw.IPWhitelist([]string{"127.0.0.1", "::1"}), apirest.AdminAuth(string(hash)))
		apirest.NewAdminHandler(st, sched, logger).Register(adminG)
	}

	r.GET("/sse", sse.NewHandler(pubsub, c, sec, st, logger).ServeSSE)

	// ---- Start server ----
	server := httptest.NewServer(r)

	ts := &TestServer{
		DB:     db,
		Cache:  c,
		PubSub: pubsub,
		Store:  st,
		Audit:  auditSvc,
		Sched:  sched,
		Server: server,
		URL:    server.URL,
		Sec:    sec,
	}
	t.Cleanup(func() {
		server.Close()
		sched.Stop()
		b.Stop()
		auditSvc.Stop(context.Background())
	})
	return ts
}

// --- HTTP helpers ---

// Do sends a request with an optional JSON body, Bearer token and header pairs.
func (ts *TestServer) Do(t *testing.T, method, path string, body interface{}, token string, headers ...string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, ts.URL+path, rd)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

// PostJSON sends a POST request with JSON body and optional Bearer token.
func (ts *TestServer) PostJSON(t *testing.T, path string, body interface{}, token string) *http.Response {
	t.Helper()
	return ts.Do(t, http.MethodPost, path, body, token)
}

// Get sends a GET request with optional Bearer token.
func (ts *TestServer) Get(t *testing.T, path string, token string) *http.Response {
	t.Helper()
	return ts.Do(t, http.MethodGet, path, nil, token)
}

// ReadJSON decodes the response body into a map and closes it.
func ReadJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var m map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	return m
}

// Applied asserts a 200 action response and returns its applied flag.
func Applied(t *testing.T, resp *http.Response) bool {
	t.Helper()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	v, ok := ReadJSON(t, resp)["applied"].(bool)
	require.True(t, ok)
	return v
}

// Login opens a session for name and returns its token.
func (ts *TestServer) Login(t *testing.T, name string) string {
	t.Helper()
	resp := ts.PostJSON(t, "/api/session", map[string]string{"name": name}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tok, _ := ReadJSON(t, resp)["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

// --- SSE client ---

// Event is one parsed server-sent event.
type Event struct {
	Name string
	Data string
}

// Stream is a connected SSE client. Events a receive call passes over are
// kept for later calls.
type Stream struct {
	t       *testing.T
	ch      chan Event
	backlog []Event
}

// ConnectSSE opens /sse with token and parses events until the test ends.
func (ts *TestServer) ConnectSSE(t *testing.T, token string) *Stream {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/sse?token="+token, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	s := &Stream{t: t, ch: make(chan Event, 4096)}
	go func() {
		defer resp.Body.Close()
		defer close(s.ch)
		sc := bufio.NewScanner(resp.Body)
		sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
		var ev Event
		for sc.Scan() {
			line := sc.Text()
			switch {
			case strings.HasPrefix(line, "event: "):
				ev.Name = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				ev.Data = strings.TrimPrefix(line, "data: ")
			case line == "" && ev.Name != "":
				select {
				case s.ch <- ev:
				case <-ctx.Done():
					return
				}
				ev = Event{}
			}
		}
	}()
	return s
}

// recv returns the first event, backlog included, that match accepts.
func (s *Stream) recv(what string, timeout time.Duration, match func(Event) bool) Event {
	s.t.Helper()
	for i, ev := range s.backlog {
		if match(ev) {
			s.backlog = append(s.backlog[:i], s.backlog[i+1:]...)
			return ev
		}
	}
	deadline := time.After(timeout)
	for {
		select {
		case ev, ok := <-s.ch:
			if !ok {
				s.t.Fatalf("stream closed waiting for %s", what)
			}
			if match(ev) {
				return ev
			}
			s.backlog = append(s.backlog, ev)
		case <-deadline:
			s.t.Fatalf("no %s within %s", what, timeout)
		}
	}
}

// RecvGame waits for a game notification named event and returns its data.
func (s *Stream) RecvGame(event string, timeout time.Duration) map[string]interface{} {
	s.t.Helper()
	var msg broadcast.EventMessage
	s.recv(event, timeout, func(ev Event) bool {
		msg = broadcast.EventMessage{}
		return ev.Name == "game" && json.Unmarshal([]byte(ev.Data), &msg) == nil && msg.Event == event
	})
	data, _ := msg.Data.(map[string]interface{})
	return data
}

// RecvState waits for a state snapshot satisfying match.
func (s *Stream) RecvState(timeout time.Duration, match func(*store.Snapshot) bool) *store.Snapshot {
	s.t.Helper()
	var snap *store.Snapshot
	s.recv("matching state", timeout, func(ev Event) bool {
		if ev.Name != "state" {
			return false
		}
		snap = &store.Snapshot{}
		return json.Unmarshal([]byte(ev.Data), snap) == nil && match(snap)
	})
	return snap
}
