package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier"
	httpAdapter "github.com/aretw0/espalier/pkg/adapters/http"
	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/aretw0/espalier/pkg/schema"
)

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	source, err := memory.NewFromForms(schema.Form{
		Name: "signup",
		Fields: []schema.Field{
			{Name: "email", Type: "text", Required: true, Rules: "required,email"},
			{Name: "age", Type: "integer"},
			{Name: "address", Type: "group", Fields: []schema.Field{
				{Name: "city", Type: "text"},
			}},
		},
	})
	require.NoError(t, err)

	engine, err := espalier.New("", espalier.WithSource(source))
	require.NoError(t, err)

	return httpAdapter.NewHandler(engine)
}

func doRequest(t *testing.T, handler http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, newHandler(t), http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestInfoReportsVersion(t *testing.T) {
	rec := doRequest(t, newHandler(t), http.MethodGet, "/info", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var info map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "espalier-http", info["app"])
	assert.Equal(t, strings.TrimSpace(espalier.Version), info["version"])
}

func TestListForms(t *testing.T) {
	rec := doRequest(t, newHandler(t), http.MethodGet, "/forms", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"forms":["signup"]}`, rec.Body.String())
}

func TestGetForm(t *testing.T) {
	rec := doRequest(t, newHandler(t), http.MethodGet, "/forms/signup", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var def schema.Form
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &def))
	assert.Equal(t, "signup", def.Name)
	assert.Len(t, def.Fields, 3)
}

func TestGetFormNotFound(t *testing.T) {
	rec := doRequest(t, newHandler(t), http.MethodGet, "/forms/ghost", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBindJSONSubmission(t *testing.T) {
	body := `{"email":"ada@example.com","age":36,"address":{"city":"London"},"stray":"x"}`
	rec := doRequest(t, newHandler(t), http.MethodPost, "/forms/signup/bind", "application/json", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var report espalier.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "signup", report.Form)
	assert.True(t, report.Valid)
	assert.True(t, report.Synchronized)
	assert.Equal(t, []string{"stray"}, report.Extra)
}

func TestBindInvalidSubmissionStillReturnsReport(t *testing.T) {
	body := `{"email":"not-an-email"}`
	rec := doRequest(t, newHandler(t), http.MethodPost, "/forms/signup/bind", "application/json", body)
	require.Equal(t, http.StatusOK, rec.Code, "validation failures are reported, not HTTP errors")

	var report espalier.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.False(t, report.Valid)
	assert.Contains(t, report.Errors, "email")
}

func TestBindFormEncodedBracketSyntax(t *testing.T) {
	body := "email=ada%40example.com&address%5Bcity%5D=London"
	rec := doRequest(t, newHandler(t), http.MethodPost, "/forms/signup/bind", "application/x-www-form-urlencoded", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var report espalier.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.True(t, report.Valid)

	var data struct {
		Address map[string]string `json:"address"`
	}
	raw, err := json.Marshal(report.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &data))
	assert.Equal(t, "London", data.Address["city"])
}

func TestBindDesynchronizedSubmission(t *testing.T) {
	body := `{"age":"not a number"}`
	rec := doRequest(t, newHandler(t), http.MethodPost, "/forms/signup/bind", "application/json", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var report espalier.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.False(t, report.Synchronized)
}

func TestBindMalformedJSONIsBadRequest(t *testing.T) {
	rec := doRequest(t, newHandler(t), http.MethodPost, "/forms/signup/bind", "application/json", "{broken")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBindUnknownFormIsNotFound(t *testing.T) {
	rec := doRequest(t, newHandler(t), http.MethodPost, "/forms/ghost/bind", "application/json", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBindRejectsOversizedValue(t *testing.T) {
	huge := strings.Repeat("x", httpAdapter.DefaultMaxValueSize+1)
	body := `{"email":"` + huge + `"}`
	rec := doRequest(t, newHandler(t), http.MethodPost, "/forms/signup/bind", "application/json", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	rec := doRequest(t, newHandler(t), http.MethodOptions, "/forms", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
