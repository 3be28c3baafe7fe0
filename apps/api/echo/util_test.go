package echoapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/trezcool/masomo-apply/apps/api/echo"
	"github.com/trezcool/masomo-apply/apps/shared"
	"github.com/trezcool/masomo-apply/core"
	"github.com/trezcool/masomo-apply/tests"
)

func setup(t *testing.T) (echoapi.Server, *shared.App) {
	conf := &core.Config{
		TestMode: true,
		AppName:  "Masomo Apply",
		Booking:  core.BookingConfig{Days: 7},
	}
	app, err := shared.New(context.Background(), conf, testutil.NewLogger(t), testutil.NewStorage(t))
	require.NoError(t, err)

	srv := echoapi.NewServer(echoapi.ServerDeps{
		Conf:           conf,
		Logger:         app.Logger,
		Validator:      app.Validator,
		Schemas:        app.Schemas,
		Profile:        app.Profile,
		Applications:   app.Applications,
		Programs:       app.Programs,
		Documents:      app.Documents,
		Catalog:        app.Catalog,
		Calendar:       app.Calendar,
		Metrics:        app.Metrics,
		DisableReqLogs: true,
	})
	return srv, app
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     string
	wantCode int
	wantData string // JSON; not checked when empty
}

func newRequest(method, path string, data ...string) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.WriteString(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	return req, httptest.NewRecorder()
}

// do sends the request to srv and checks the response code.
func do(t *testing.T, srv echoapi.Server, method, path string, wantCode int, data ...string) *httptest.ResponseRecorder {
	t.Helper()
	req, rec := newRequest(method, path, data...)
	srv.ServeHTTP(rec, req)
	require.Equal(t, wantCode, rec.Code, "%s %s: %s", method, path, rec.Body.String())
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode() failed: %v\n%s", err, rec.Body.String())
	}
}

func runHTTPTests(t *testing.T, srv echoapi.Server, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, tt.method, tt.path, tt.wantCode, tt.body)
			if tt.wantData != "" {
				assert.JSONEq(t, tt.wantData, rec.Body.String())
			}
		})
	}
}
