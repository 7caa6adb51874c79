package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sushihentaime/inkwell/internal/blogservice"
	"github.com/sushihentaime/inkwell/internal/common"
	"github.com/sushihentaime/inkwell/internal/mailservice"
	"github.com/sushihentaime/inkwell/internal/uploadservice"
	"github.com/sushihentaime/inkwell/internal/userservice"
)

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testConfig(t *testing.T) *Config {
	t.Helper()

	cfg, err := loadConfig("../.test.env")
	require.NoError(t, err)

	return cfg
}

// newBareApplication has working tokens and uploads but no stores behind the services.
func newBareApplication(t *testing.T) *application {
	t.Helper()

	cfg := testConfig(t)

	tokens, err := userservice.NewTokenIssuer(cfg.SecretAccessKey, cfg.TokenTTL)
	require.NoError(t, err)

	uploads, err := uploadservice.NewUploadService(cfg.AWSRegion, cfg.AWSAccessKey, cfg.AWSSecretAccessKey, cfg.AWSBucket, cfg.UploadURLExpiry)
	require.NoError(t, err)

	return &application{
		config:        cfg,
		logger:        testLogger(),
		userService:   userservice.NewUserService(nil, tokens),
		uploadService: uploads,
		mailService:   mailservice.NewMailService(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.MailRecipient, testLogger()),
	}
}

// newTestApplication wires every service to a migrated postgres container.
func newTestApplication(t *testing.T) *application {
	t.Helper()

	db := common.TestDB("file://../migrations", t)
	app := newBareApplication(t)

	tokens, err := userservice.NewTokenIssuer(app.config.SecretAccessKey, app.config.TokenTTL)
	require.NoError(t, err)

	users := userservice.NewUserService(userservice.NewDBModel(db), tokens)
	cache := common.NewCache(app.config.CacheTTL, 2*app.config.CacheTTL)

	app.userService = users
	app.blogService = blogservice.NewBlogService(blogservice.NewDBModel(db), users, users, cache, app.logger)

	return app
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, envelope) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var env envelope
	err = json.Unmarshal(responseBody, &env)
	require.NoError(t, err, string(responseBody))

	return res.StatusCode, res.Header, env
}

func (ts *testServer) do(t *testing.T, method, path string, payload any, token string) (int, http.Header, envelope) {
	var body io.Reader
	if payload != nil {
		js, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(js)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Client().Do(req)
	require.NoError(t, err)

	return readResponse(t, res)
}

func (ts *testServer) post(t *testing.T, path string, payload any, token string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodPost, path, payload, token)
}

func (ts *testServer) get(t *testing.T, path string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodGet, path, nil, "")
}
