package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"cashflow/internal/config"
	"cashflow/internal/logger"
	"cashflow/internal/router"
	"cashflow/internal/testutil"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
}

// setupApp creates the production router backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	return &testApp{DB: db, Router: router.New(db, config.Get())}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	errObj, ok := parseJSON(t, rec)["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object, got %s", rec.Body.String())
	}
	return errObj["code"].(string)
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, username, password string) (accessToken, refreshToken string, userID float64) {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := app.request("POST", "/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(float64)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, username, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := app.request("POST", "/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}

// createReference creates a reference of kind and returns its ID.
func (app *testApp) createReference(t *testing.T, token, kind, body string) uint {
	t.Helper()
	rec := app.request("POST", "/reference/"+kind+"/create", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create %s failed: %d %s", kind, rec.Code, rec.Body.String())
	}
	return uint(parseJSON(t, rec)["id"].(float64))
}

// chain is one type -> category -> subcategory chain plus a status.
type chain struct {
	Type, Category, Subcategory, Status uint
}

// createChain builds a consistent taxonomy through the API. Names carry the
// prefix so several chains can coexist.
func (app *testApp) createChain(t *testing.T, token, prefix string) chain {
	t.Helper()
	var c chain
	c.Type = app.createReference(t, token, "type", fmt.Sprintf(`{"name":"%s type"}`, prefix))
	c.Category = app.createReference(t, token, "category", fmt.Sprintf(`{"name":"%s category","type":%d}`, prefix, c.Type))
	c.Subcategory = app.createReference(t, token, "subcategory", fmt.Sprintf(`{"name":"%s subcategory","category":%d}`, prefix, c.Category))
	c.Status = app.createReference(t, token, "status", fmt.Sprintf(`{"name":"%s status"}`, prefix))
	return c
}

func entryBody(c chain, date, amount, comment string) string {
	return fmt.Sprintf(`{"custom_date":%q,"type":%d,"category":%d,"subcategory":%d,"status":%d,"amount":%q,"comment":%q}`,
		date, c.Type, c.Category, c.Subcategory, c.Status, amount, comment)
}

// createEntry creates an entry and returns its ID.
func (app *testApp) createEntry(t *testing.T, token string, c chain, date, amount, comment string) uint {
	t.Helper()
	rec := app.request("POST", "/create-dds/", entryBody(c, date, amount, comment), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create entry failed: %d %s", rec.Code, rec.Body.String())
	}
	return uint(parseJSON(t, rec)["id"].(float64))
}

// listIDs returns the entry IDs of a listing response.
func listIDs(t *testing.T, rec *httptest.ResponseRecorder) []uint {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("listing failed: %d %s", rec.Code, rec.Body.String())
	}
	data := parseJSON(t, rec)["data"].([]interface{})
	ids := make([]uint, 0, len(data))
	for _, item := range data {
		ids = append(ids, uint(item.(map[string]interface{})["id"].(float64)))
	}
	return ids
}
