package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"inkpost/internal/blogservice"
	"inkpost/internal/common"
	"inkpost/internal/engageservice"
	"inkpost/internal/followservice"
	"inkpost/internal/mailservice"
	"inkpost/internal/userservice"
)

type testServer struct {
	*httptest.Server
}

// testEnvelope mirrors envelope with the payload left raw so each test can
// decode it into its own shape.
type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, testEnvelope) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	var env testEnvelope
	err = json.Unmarshal(responseBody, &env)
	if err != nil {
		t.Fatal(err)
	}

	return res.StatusCode, res.Header, env
}

func newTestApplication(t *testing.T) (*application, *sql.DB) {
	db := common.TestDB(t, "file://../migrations")
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	rabbitURI := common.TestBroker(t)
	broker, err := common.NewBroker(rabbitURI)
	assert.NoError(t, err)

	err = broker.DeclareAccountEvents()
	assert.NoError(t, err)

	cfg, err := loadConfig("../.test.env")
	assert.NoError(t, err)

	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	app := &application{
		config:        cfg,
		logger:        logger,
		userService:   userservice.NewUserService(db, broker),
		blogService:   blogservice.NewBlogService(db, cache),
		followService: followservice.NewFollowService(db),
		engageService: engageservice.NewEngageService(db),
		mailService:   mailservice.NewMailService(broker, cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.MailPort, logger),
		broker:        broker,
	}

	return app, db
}

func (ts *testServer) do(t *testing.T, method, path string, payload any, token *string) (int, http.Header, testEnvelope) {
	var body io.Reader
	if payload != nil {
		jsonPayload, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(jsonPayload)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != nil {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", *token))
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) get(t *testing.T, path string, token *string) (int, http.Header, testEnvelope) {
	return ts.do(t, http.MethodGet, path, nil, token)
}

func (ts *testServer) post(t *testing.T, path string, payload any, token *string) (int, http.Header, testEnvelope) {
	return ts.do(t, http.MethodPost, path, payload, token)
}

func (ts *testServer) put(t *testing.T, path string, payload any, token *string) (int, http.Header, testEnvelope) {
	return ts.do(t, http.MethodPut, path, payload, token)
}

func (ts *testServer) delete(t *testing.T, path string, token *string) (int, http.Header, testEnvelope) {
	return ts.do(t, http.MethodDelete, path, nil, token)
}
