package rest_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/epicadventure/api/rest"
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
	"gorm.io/gorm"
)

func init() { gin.SetMode(gin.TestMode) }

func nopLogger() *zap.Logger { l, _ := zap.NewDevelopment(); return l }

var testSec = config.SecurityConfig{JWTSecret: "rest-test-secret", JWTTTLH: time.Hour}

const adminKey = "let-me-in"

type taggerSpy struct{ ids []string }

func (s *taggerSpy) SetSession(id string) { s.ids = append(s.ids, id) }

// testAPI is a fully wired router over a fresh store.
type testAPI struct {
	r      *gin.Engine
	st     *store.Store
	db     *gorm.DB
	cache  cache.Cache
	sched  *scheduler.Scheduler
	tagger *taggerSpy
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	return buildTestAPI(t, true)
}

// buildTestAPI wires the routes; without adminEnabled the admin key hash is empty.
func buildTestAPI(t *testing.T, adminEnabled bool) *testAPI {
	t.Helper()
	db := testutil.SetupTestDB(t)
	c, ps := testutil.SetupTestCache(t)
	sched := scheduler.New(nopLogger())
	t.Cleanup(sched.Stop)
	hc := hook.NewHookCenter()
	b := broadcast.New(ps, c, nopLogger())
	t.Cleanup(b.Stop)

	st := store.New(store.DefaultConfig(), content.NewGenerator(7), sched, hc, b, nopLogger())
	b.Attach(hc, st)

	var hash []byte
	if adminEnabled {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(adminKey), bcrypt.MinCost)
		require.NoError(t, err)
	}

	tagger := &taggerSpy{}
	r := gin.New()
	api := r.Group("/api")
	sessH := rest.NewSessionHandler(db, c, testSec, st, tagger, b, nopLogger())
	api.POST("/session", sessH.Create)
	api.DELETE("/session", mw.Auth(testSec, c), sessH.Delete)

	rest.NewContentHandler().Register(api.Group("/content"))
	api.GET("/ranking/level", rest.NewRankingHandler(c, nopLogger()).TopLevel)

	gameG := api.Group("")
	gameG.Use(mw.Auth(testSec, c))
	rest.NewGameHandler(st, nopLogger()).Register(gameG)

	adminG := api.Group("/admin")
	adminG.Use(rest.AdminAuth(string(hash)))
	rest.NewAdminHandler(st, sched, nopLogger()).Register(adminG)

	return &testAPI{r: r, st: st, db: db, cache: c, sched: sched, tagger: tagger}
}

func (a *testAPI) do(method, path, token string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

// login opens a session and returns its token.
func (a *testAPI) login(t *testing.T, name string) string {
	t.Helper()
	w := a.do(http.MethodPost, "/api/session", "", map[string]string{"name": name})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}

func applied(t *testing.T, w *httptest.ResponseRecorder) bool {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	v, ok := decode(t, w)["applied"].(bool)
	require.True(t, ok, "response carries applied flag")
	return v
}
