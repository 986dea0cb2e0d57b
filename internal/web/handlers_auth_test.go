package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/job-portal/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewServer_WhenDependencyMissing_ShouldFail(t *testing.T) {
	env := newTestEnv(t)

	_, err := NewServer(testServerConfig(), nil, env.states, env.bus)
	assert.Error(t, err)
	_, err = NewServer(testServerConfig(), env.api, nil, env.bus)
	assert.Error(t, err)
	_, err = NewServer(testServerConfig(), env.api, env.states, nil)
	assert.Error(t, err)
}

func Test_Anonymous_OnProtectedPage_ShouldRedirectToLoginAndIssueCookie(t *testing.T) {
	env := newTestEnv(t)
	b := env.newBrowser(t)

	rec := b.get("/jobs")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Contains(t, b.cookies, cookieName)
}

func Test_LoginPage_ShouldRenderDemoAccounts(t *testing.T) {
	env := newTestEnv(t)

	rec := env.newBrowser(t).get("/login")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin@example.com / admin123")
	assert.Contains(t, rec.Body.String(), "user@example.com / user123")
}

func Test_Login_WithInvalidCredentials_ShouldShowErrorPanel(t *testing.T) {
	env := newTestEnv(t)
	b := env.newBrowser(t)

	rec := b.post("/login", url.Values{"email": {"admin@example.com"}, "password": {"wrong"}})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials. Please try again.")
	assert.Equal(t, http.StatusFound, b.get("/jobs").Code)
}

func Test_Login_WhenStorageFails_ShouldShowGenericError(t *testing.T) {
	env := newTestEnv(t)
	env.states.saveErr = errors.New("database is locked")
	b := env.newBrowser(t)

	rec := b.post("/login", url.Values{"email": {"admin@example.com"}, "password": {"admin123"}})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to sign in. Please try again later.")
	assert.NotContains(t, rec.Body.String(), "Invalid credentials")
	assert.Equal(t, http.StatusFound, b.get("/jobs").Code)
}

func Test_BrowserCookie_SecureFlag_ShouldFollowConfigNotMode(t *testing.T) {
	cfg := testServerConfig()
	cfg.Mode = config.ModeRelease

	cfg.SecureCookies = false
	assert.False(t, newCookieStore(cfg).Options.Secure)

	cfg.SecureCookies = true
	assert.True(t, newCookieStore(cfg).Options.Secure)
}

func Test_Login_InReleaseMode_ShouldKeepSessionOverPlainHTTP(t *testing.T) {
	cfg := testServerConfig()
	cfg.Mode = config.ModeRelease
	t.Cleanup(func() { gin.SetMode(gin.TestMode) })
	server, err := NewServer(cfg, &mockJobsAPI{}, newMemoryStore(), EventBus.New())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookieName, cookies[0].Name)
	assert.False(t, cookies[0].Secure)
}

func Test_Login_ShouldRedirectToJobsAndKeepSessionAcrossRequests(t *testing.T) {
	env := newTestEnv(t)
	env.api.On("GetJobs", mockAnyContext).Return(testJobs(), nil)
	b := env.newBrowser(t)

	rec := b.post("/login", url.Values{"email": {"user@example.com"}, "password": {"user123"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/jobs", rec.Header().Get("Location"))

	rec = b.get("/jobs")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Regular User")
}

func Test_Logout_ShouldClearSessionAndAppliedJobs(t *testing.T) {
	env := newTestEnv(t)
	b := env.loggedInUser(t)
	browserID := browserIDOf(t, env)
	require.NoError(t, env.states.Save(context.Background(), browserID+"/appliedJobs", []byte(`["1"]`)))

	rec := b.post("/logout", nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Empty(t, env.states.values)
	assert.Equal(t, "/login", b.get("/").Header().Get("Location"))
}

func Test_User_OnAdminPage_ShouldRedirectToJobs(t *testing.T) {
	env := newTestEnv(t)
	b := env.loggedInUser(t)

	for _, path := range []string{"/admin", "/add-job", "/edit-job/1"} {
		rec := b.get(path)
		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/jobs", rec.Header().Get("Location"), path)
	}

	rec := b.post("/delete-job/1", nil)
	assert.Equal(t, "/jobs", rec.Header().Get("Location"))
	env.api.AssertNotCalled(t, "DeleteJob", mockAnyContext, "1")
}

func Test_UnknownPath_ShouldRedirectByAuthentication(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, "/login", env.newBrowser(t).get("/does-not-exist").Header().Get("Location"))
	assert.Equal(t, "/", env.loggedInUser(t).get("/does-not-exist").Header().Get("Location"))
}

func Test_Health_ShouldBeServedWithoutSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.newBrowser(t).get("/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func browserIDOf(t *testing.T, env *testEnv) string {
	t.Helper()
	env.states.mu.Lock()
	defer env.states.mu.Unlock()
	for key := range env.states.values {
		if browserID, found := strings.CutSuffix(key, "/user"); found {
			return browserID
		}
	}
	t.Fatal("no session stored")
	return ""
}
