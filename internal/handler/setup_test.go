package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/xxxsen/volcano/internal/config"
	"github.com/xxxsen/volcano/internal/handler"
	"github.com/xxxsen/volcano/internal/model"
	"github.com/xxxsen/volcano/internal/pkg/jwt"
	"github.com/xxxsen/volcano/internal/service"
	"github.com/xxxsen/volcano/internal/testutil"
)

var testSecret = []byte("handler-test-secret")

type fakePinger struct {
	err error
}

func (p *fakePinger) Ping(ctx context.Context) error {
	return p.err
}

type testEnv struct {
	router    *gin.Engine
	users     *testutil.UserStore
	reviews   *testutil.ReviewStore
	volcanoes *testutil.VolcanoStore
	pinger    *fakePinger
}

func setupRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		users:     testutil.NewUserStore(),
		volcanoes: &testutil.VolcanoStore{Volcanoes: sampleVolcanoes()},
		pinger:    &fakePinger{},
	}
	env.reviews = &testutil.ReviewStore{Users: env.users, Known: map[int64]bool{1: true, 2: true, 3: true}}

	meta, err := handler.NewMetaHandler(config.AboutConfig{Name: "Volcano Team", StudentNumber: "n1234567"}, env.pinger)
	require.NoError(t, err)

	env.router = gin.New()
	handler.RegisterRoutes(env.router.Group("/"), handler.RouterDeps{
		Users: handler.NewUserHandler(
			service.NewAuthService(env.users, testSecret, 24*time.Hour),
			service.NewProfileService(env.users),
		),
		Volcanoes: handler.NewVolcanoHandler(service.NewVolcanoService(env.volcanoes)),
		Reviews:   handler.NewReviewHandler(service.NewReviewService(env.reviews, env.users)),
		Meta:      meta,
		JWTSecret: testSecret,
	})
	return env
}

func sampleVolcanoes() []model.Volcano {
	summit, elevation := int64(1350), int64(4430)
	lat, lng := 46.2, -122.18
	last := "1980 CE"
	return []model.Volcano{
		{ID: 1, Name: "Mount St. Helens", Country: "United States", Region: "Canada and Western USA", Subregion: "USA (Washington)",
			LastEruption: &last, Summit: &summit, Elevation: &elevation, Latitude: &lat, Longitude: &lng,
			Population: &model.Population{Population5km: 0, Population10km: 0, Population30km: 3000, Population100km: 500000}},
		{ID: 2, Name: "Kilauea", Country: "United States", Region: "Hawaii and Pacific Ocean", Subregion: "Hawaiian Islands",
			Population: &model.Population{Population5km: 200, Population10km: 1000, Population30km: 20000, Population100km: 190000}},
		{ID: 3, Name: "Etna", Country: "Italy", Region: "Mediterranean and Western Asia", Subregion: "Italy",
			Population: &model.Population{Population5km: 1000, Population10km: 7000, Population30km: 700000, Population100km: 4000000}},
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		payload, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	return resp
}

func (e *testEnv) register(t *testing.T, email, password string) {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/user/register", map[string]string{"email": email, "password": password}, "")
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/user/login", map[string]string{"email": email, "password": password}, "")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var out struct {
		Token     string `json:"token"`
		TokenType string `json:"token_type"`
		ExpiresIn int64  `json:"expires_in"`
	}
	decode(t, resp, &out)
	require.Equal(t, "Bearer", out.TokenType)
	require.Equal(t, int64(86400), out.ExpiresIn)
	return out.Token
}

func mintToken(t *testing.T, email string, ttl time.Duration, now time.Time) string {
	t.Helper()
	token, err := jwt.GenerateToken(email, testSecret, ttl, now)
	require.NoError(t, err)
	return token
}

func decode(t *testing.T, resp *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), out))
}

func requireError(t *testing.T, resp *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	require.Equal(t, status, resp.Code, resp.Body.String())
	var out map[string]interface{}
	decode(t, resp, &out)
	require.Equal(t, true, out["error"])
	require.Equal(t, message, out["message"])
}

func newRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

func newRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}
