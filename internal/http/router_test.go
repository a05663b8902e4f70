package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap/zaptest"

	"github.com/kollect/backend/internal/config"
	"github.com/kollect/backend/internal/events"
	"github.com/kollect/backend/internal/http/handlers"
	"github.com/kollect/backend/internal/services"
	"github.com/kollect/backend/internal/testutil"
)

func newTestApp(c *qt.C) *fiber.App {
	c.Helper()
	log := zaptest.NewLogger(c)
	store := testutil.NewStore(c)
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpiration:      time.Hour,
		SignupTokenTTL:     10 * time.Minute,
		BcryptCost:         4,
		CORSAllowOrigins:   "*",
		RateLimitPerMinute: 30,
	}

	authService := services.NewAuthService(store.Users, cfg, log)
	userService := services.NewUserService(store.Users, log)
	campaignService := services.NewCampaignService(store.Campaigns, store.Audit, log)
	bookmarkService := services.NewBookmarkService(store.Bookmarks, store.Campaigns, store.Audit, events.NopPublisher{}, log)

	app := fiber.New()
	SetupRouter(app, cfg, log, nil, userService,
		handlers.NewAuthHandler(authService, log),
		handlers.NewUserHandler(userService, log),
		handlers.NewCampaignHandler(campaignService, log),
		handlers.NewBookmarkHandler(bookmarkService, log),
		handlers.NewWSHub(cfg, nil, log),
	)
	return app
}

type response struct {
	Status int
	Body   map[string]any
}

func (r response) data() map[string]any {
	d, _ := r.Body["data"].(map[string]any)
	return d
}

func call(c *qt.C, app *fiber.App, method, path, token string, body any) response {
	c.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		c.Assert(err, qt.IsNil)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	c.Assert(err, qt.IsNil)
	defer resp.Body.Close()

	out := response{Status: resp.StatusCode}
	raw, err := io.ReadAll(resp.Body)
	c.Assert(err, qt.IsNil)
	if len(raw) > 0 {
		c.Assert(json.Unmarshal(raw, &out.Body), qt.IsNil, qt.Commentf("body: %s", raw))
	}
	return out
}

// signup runs both registration steps and logs in, returning an access token.
func signup(c *qt.C, app *fiber.App, email string, brand, kol bool) string {
	c.Helper()
	r := call(c, app, "POST", "/api/v1/auth/register", "", map[string]any{"email": email, "password": "password-123"})
	c.Assert(r.Status, qt.Equals, fiber.StatusCreated)
	signupToken, _ := r.Body["signup_token"].(string)
	c.Assert(signupToken, qt.Not(qt.Equals), "")

	r = call(c, app, "POST", "/api/v1/auth/complete-signup", signupToken, map[string]any{
		"first_name": "Test",
		"city":       "Jakarta",
		"is_brand":   brand,
		"is_kol":     kol,
	})
	c.Assert(r.Status, qt.Equals, fiber.StatusOK)

	r = call(c, app, "POST", "/api/v1/auth/login", "", map[string]any{"email": email, "password": "password-123"})
	c.Assert(r.Status, qt.Equals, fiber.StatusOK)
	token, _ := r.Body["token"].(string)
	c.Assert(token, qt.Not(qt.Equals), "")
	return token
}

func createCampaign(c *qt.C, app *fiber.App, token, title string) string {
	c.Helper()
	r := call(c, app, "POST", "/api/v1/campaigns", token, map[string]any{
		"title":       title,
		"description": "Promote the launch",
		"platform":    "instagram",
		"budget":      "1500000",
		"timeline":    "2026-12-01",
	})
	c.Assert(r.Status, qt.Equals, fiber.StatusCreated)
	id, _ := r.data()["id"].(string)
	return id
}

func TestHealth(t *testing.T) {
	c := qt.New(t)
	app := newTestApp(c)

	r := call(c, app, "GET", "/api/v1/health", "", nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusOK)
	c.Assert(r.Body["status"], qt.Equals, "ok")
}

func TestUnauthenticatedIsSentToLogin(t *testing.T) {
	c := qt.New(t)
	app := newTestApp(c)

	for _, path := range []string{"/api/v1/me", "/api/v1/campaigns", "/api/v1/bookmarks"} {
		r := call(c, app, "GET", path, "", nil)
		c.Assert(r.Status, qt.Equals, fiber.StatusUnauthorized, qt.Commentf("path %s", path))
		c.Assert(r.Body["login_url"], qt.Equals, "/api/v1/auth/login")
	}

	r := call(c, app, "GET", "/api/v1/me", "garbage", nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusUnauthorized)
	c.Assert(r.Body["login_url"], qt.Equals, "/api/v1/auth/login")
}

func TestSignupTokenOnlyCompletesSignup(t *testing.T) {
	c := qt.New(t)
	app := newTestApp(c)

	r := call(c, app, "POST", "/api/v1/auth/register", "", map[string]any{"email": "kol@example.com", "password": "password-123"})
	c.Assert(r.Status, qt.Equals, fiber.StatusCreated)
	signupToken := r.Body["signup_token"].(string)

	r = call(c, app, "GET", "/api/v1/me", signupToken, nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusUnauthorized)

	r = call(c, app, "POST", "/api/v1/auth/complete-signup", signupToken, map[string]any{"is_kol": true})
	c.Assert(r.Status, qt.Equals, fiber.StatusOK)
	c.Assert(r.data()["is_kol"], qt.Equals, true)
	c.Assert(r.data()["signup_completed"], qt.Equals, true)

	r = call(c, app, "POST", "/api/v1/auth/complete-signup", signupToken, map[string]any{"is_brand": true})
	c.Assert(r.Status, qt.Equals, fiber.StatusBadRequest)

	access := call(c, app, "POST", "/api/v1/auth/login", "", map[string]any{"email": "kol@example.com", "password": "password-123"})
	c.Assert(access.Status, qt.Equals, fiber.StatusOK)
	r = call(c, app, "POST", "/api/v1/auth/complete-signup", access.Body["token"].(string), map[string]any{"is_brand": true})
	c.Assert(r.Status, qt.Equals, fiber.StatusUnauthorized)
}

func TestRegisterAndLoginErrors(t *testing.T) {
	c := qt.New(t)
	app := newTestApp(c)

	signup(c, app, "brand@example.com", true, false)

	r := call(c, app, "POST", "/api/v1/auth/register", "", map[string]any{"email": "brand@example.com", "password": "another-password"})
	c.Assert(r.Status, qt.Equals, fiber.StatusConflict)

	r = call(c, app, "POST", "/api/v1/auth/register", "", map[string]any{"email": "new@example.com", "password": "short"})
	c.Assert(r.Status, qt.Equals, fiber.StatusBadRequest)

	r = call(c, app, "POST", "/api/v1/auth/register", "", map[string]any{"email": "new@example.com", "password": strings.Repeat("a", 80)})
	c.Assert(r.Status, qt.Equals, fiber.StatusBadRequest)
	c.Assert(r.Body["error"], qt.Equals, "password must be at most 72 bytes")

	r = call(c, app, "POST", "/api/v1/auth/login", "", map[string]any{"email": "brand@example.com", "password": "wrong-password"})
	c.Assert(r.Status, qt.Equals, fiber.StatusUnauthorized)
	c.Assert(r.Body["login_url"], qt.Equals, "/api/v1/auth/login")
}

func TestProfileEndpoints(t *testing.T) {
	c := qt.New(t)
	app := newTestApp(c)
	token := signup(c, app, "kol@example.com", false, true)

	r := call(c, app, "GET", "/api/v1/me", token, nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusOK)
	c.Assert(r.data()["email"], qt.Equals, "kol@example.com")
	c.Assert(r.data()["city"], qt.Equals, "Jakarta")
	_, leaked := r.data()["password_hash"]
	c.Assert(leaked, qt.IsFalse)

	r = call(c, app, "PUT", "/api/v1/me", token, map[string]any{"city": "Surabaya"})
	c.Assert(r.Status, qt.Equals, fiber.StatusOK)
	c.Assert(r.data()["city"], qt.Equals, "Surabaya")
	c.Assert(r.data()["first_name"], qt.Equals, "Test")

	r = call(c, app, "DELETE", "/api/v1/me", token, nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusOK)

	r = call(c, app, "GET", "/api/v1/me", token, nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusUnauthorized)
	c.Assert(r.Body["login_url"], qt.Equals, "/api/v1/auth/login")
}

func TestBookmarkEndpoints(t *testing.T) {
	c := qt.New(t)
	app := newTestApp(c)
	brand := signup(c, app, "brand@example.com", true, false)
	kol := signup(c, app, "kol@example.com", false, true)
	campaignID := createCampaign(c, app, brand, "Ramadan push")
	bookmarkPath := "/api/v1/campaigns/" + campaignID + "/bookmark"
	unbookmarkPath := "/api/v1/campaigns/" + campaignID + "/unbookmark"

	r := call(c, app, "POST", bookmarkPath, kol, nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusCreated)
	c.Assert(r.data()["status"], qt.Equals, "created")
	c.Assert(r.data()["campaign_id"], qt.Equals, campaignID)

	r = call(c, app, "POST", bookmarkPath, kol, nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusOK)
	c.Assert(r.data()["status"], qt.Equals, "already_exists")

	r = call(c, app, "GET", bookmarkPath, kol, nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusOK)
	c.Assert(r.data()["bookmarked"], qt.Equals, true)

	r = call(c, app, "GET", "/api/v1/bookmarks", kol, nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusOK)
	list, _ := r.Body["data"].([]any)
	c.Assert(list, qt.HasLen, 1)
	entry := list[0].(map[string]any)
	c.Assert(entry["campaign_id"], qt.Equals, campaignID)
	c.Assert(entry["campaign"].(map[string]any)["title"], qt.Equals, "Ramadan push")

	r = call(c, app, "POST", unbookmarkPath, kol, nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusOK)
	c.Assert(r.data()["status"], qt.Equals, "removed")

	r = call(c, app, "POST", unbookmarkPath, kol, nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusOK)
	c.Assert(r.data()["status"], qt.Equals, "not_found")

	r = call(c, app, "GET", "/api/v1/bookmarks", kol, nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusOK)
	list, _ = r.Body["data"].([]any)
	c.Assert(list, qt.HasLen, 0)
}

func TestBookmarkRejections(t *testing.T) {
	c := qt.New(t)
	app := newTestApp(c)
	brand := signup(c, app, "brand@example.com", true, false)
	kol := signup(c, app, "kol@example.com", false, true)
	campaignID := createCampaign(c, app, brand, "Back to school")

	r := call(c, app, "POST", "/api/v1/campaigns/"+campaignID+"/bookmark", brand, nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusForbidden)

	r = call(c, app, "POST", "/api/v1/campaigns/"+campaignID+"/unbookmark", brand, nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusForbidden)

	r = call(c, app, "POST", "/api/v1/campaigns/00000000-0000-0000-0000-000000000001/bookmark", kol, nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusNotFound)

	r = call(c, app, "POST", "/api/v1/campaigns/not-a-uuid/bookmark", kol, nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusBadRequest)

	r = call(c, app, "POST", "/api/v1/campaigns/"+campaignID+"/bookmark", "", nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusUnauthorized)
}

func TestCampaignEndpoints(t *testing.T) {
	c := qt.New(t)
	app := newTestApp(c)
	brand := signup(c, app, "brand@example.com", true, false)
	rival := signup(c, app, "rival@example.com", true, false)
	kol := signup(c, app, "kol@example.com", false, true)

	first := createCampaign(c, app, brand, "First")
	second := createCampaign(c, app, brand, "Second")

	r := call(c, app, "GET", "/api/v1/campaigns", kol, nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusOK)
	list := r.Body["data"].([]any)
	c.Assert(list, qt.HasLen, 2)
	c.Assert(list[0].(map[string]any)["id"], qt.Equals, first)
	c.Assert(list[1].(map[string]any)["id"], qt.Equals, second)

	r = call(c, app, "GET", "/api/v1/campaigns/"+first, kol, nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusOK)
	c.Assert(r.data()["budget"], qt.Equals, "1500000.00")
	c.Assert(r.data()["timeline"], qt.Equals, "2026-12-01T00:00:00Z")

	r = call(c, app, "POST", "/api/v1/campaigns", kol, map[string]any{"title": "x", "description": "y", "platform": "z"})
	c.Assert(r.Status, qt.Equals, fiber.StatusForbidden)

	r = call(c, app, "POST", "/api/v1/campaigns", brand, map[string]any{"title": "x", "description": "y", "platform": "z", "timeline": "01/12/2026"})
	c.Assert(r.Status, qt.Equals, fiber.StatusBadRequest)

	r = call(c, app, "PUT", "/api/v1/campaigns/"+first, rival, map[string]any{"title": "stolen"})
	c.Assert(r.Status, qt.Equals, fiber.StatusNotFound)

	r = call(c, app, "PUT", "/api/v1/campaigns/"+first, brand, map[string]any{"status": "completed"})
	c.Assert(r.Status, qt.Equals, fiber.StatusBadRequest)

	r = call(c, app, "PUT", "/api/v1/campaigns/"+first, brand, map[string]any{"status": "active"})
	c.Assert(r.Status, qt.Equals, fiber.StatusOK)
	c.Assert(r.data()["status"], qt.Equals, "active")

	r = call(c, app, "POST", "/api/v1/campaigns/"+first+"/bookmark", kol, nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusCreated)

	r = call(c, app, "GET", "/api/v1/campaigns/"+first+"/activity", brand, nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusOK)
	c.Assert(r.Body["data"].([]any), qt.HasLen, 3)

	r = call(c, app, "DELETE", "/api/v1/campaigns/"+first, rival, nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusNotFound)

	r = call(c, app, "DELETE", "/api/v1/campaigns/"+first, brand, nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusOK)

	r = call(c, app, "GET", "/api/v1/campaigns/"+first, kol, nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusNotFound)

	r = call(c, app, "GET", "/api/v1/bookmarks", kol, nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusOK)
	c.Assert(r.Body["data"].([]any), qt.HasLen, 0)
}

func TestCampaignTimelineCanBeCleared(t *testing.T) {
	c := qt.New(t)
	app := newTestApp(c)
	brand := signup(c, app, "brand@example.com", true, false)
	id := createCampaign(c, app, brand, "Dated")

	r := call(c, app, "PUT", "/api/v1/campaigns/"+id, brand, map[string]any{"title": "Still dated"})
	c.Assert(r.Status, qt.Equals, fiber.StatusOK)
	c.Assert(r.data()["timeline"], qt.Equals, "2026-12-01T00:00:00Z")

	r = call(c, app, "PUT", "/api/v1/campaigns/"+id, brand, map[string]any{"timeline": ""})
	c.Assert(r.Status, qt.Equals, fiber.StatusOK)
	_, dated := r.data()["timeline"]
	c.Assert(dated, qt.IsFalse)

	r = call(c, app, "GET", "/api/v1/campaigns/"+id, brand, nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusOK)
	_, dated = r.data()["timeline"]
	c.Assert(dated, qt.IsFalse)
	c.Assert(r.data()["title"], qt.Equals, "Still dated")
}

func TestMyCampaignsEndpoint(t *testing.T) {
	c := qt.New(t)
	app := newTestApp(c)
	brand := signup(c, app, "brand@example.com", true, false)
	rival := signup(c, app, "rival@example.com", true, false)
	kol := signup(c, app, "kol@example.com", false, true)

	draft := createCampaign(c, app, brand, "Draft one")
	live := createCampaign(c, app, brand, "Live one")
	createCampaign(c, app, rival, "Rival")

	r := call(c, app, "PUT", "/api/v1/campaigns/"+live, brand, map[string]any{"status": "active"})
	c.Assert(r.Status, qt.Equals, fiber.StatusOK)

	ids := func(r response) []any {
		var out []any
		for _, item := range r.Body["data"].([]any) {
			out = append(out, item.(map[string]any)["id"])
		}
		return out
	}

	r = call(c, app, "GET", "/api/v1/campaigns/mine", brand, nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusOK)
	c.Assert(ids(r), qt.DeepEquals, []any{draft, live})

	r = call(c, app, "GET", "/api/v1/campaigns/mine?status=active", brand, nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusOK)
	c.Assert(ids(r), qt.DeepEquals, []any{live})

	r = call(c, app, "GET", "/api/v1/campaigns/mine?status=cancelled", brand, nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusOK)
	c.Assert(r.Body["data"].([]any), qt.HasLen, 0)

	r = call(c, app, "GET", "/api/v1/campaigns/mine?status=paused", brand, nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusBadRequest)

	r = call(c, app, "GET", "/api/v1/campaigns/mine", kol, nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusForbidden)

	r = call(c, app, "GET", "/api/v1/campaigns/mine", "", nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusUnauthorized)
}

func TestMetaEndpoints(t *testing.T) {
	c := qt.New(t)
	app := newTestApp(c)

	r := call(c, app, "GET", "/api/v1/meta/campaign-statuses", "", nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusOK)
	c.Assert(r.Body["data"].([]any), qt.HasLen, 4)

	r = call(c, app, "GET", "/api/v1/meta/platforms", "", nil)
	c.Assert(r.Status, qt.Equals, fiber.StatusOK)
}
