package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/job-portal/internal/config"
	"github.com/maxaizer/job-portal/internal/domain/models"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var mockAnyContext = mock.Anything

func init() {
	gin.SetMode(gin.TestMode)
}

type mockJobsAPI struct {
	mock.Mock
}

func (m *mockJobsAPI) GetJobs(ctx context.Context) ([]models.Job, error) {
	args := m.Called(ctx)
	jobs, _ := args.Get(0).([]models.Job)
	return jobs, args.Error(1)
}

func (m *mockJobsAPI) GetJob(ctx context.Context, id string) (*models.Job, error) {
	args := m.Called(ctx, id)
	job, _ := args.Get(0).(*models.Job)
	return job, args.Error(1)
}

func (m *mockJobsAPI) CreateJob(ctx context.Context, form models.JobForm) (*models.Job, error) {
	args := m.Called(ctx, form)
	job, _ := args.Get(0).(*models.Job)
	return job, args.Error(1)
}

func (m *mockJobsAPI) UpdateJob(ctx context.Context, id string, form models.JobForm) (*models.Job, error) {
	args := m.Called(ctx, id, form)
	job, _ := args.Get(0).(*models.Job)
	return job, args.Error(1)
}

func (m *mockJobsAPI) DeleteJob(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockJobsAPI) Apply(ctx context.Context, jobID string, form models.ApplicationForm) (*models.Application, error) {
	args := m.Called(ctx, jobID, form)
	application, _ := args.Get(0).(*models.Application)
	return application, args.Error(1)
}

func (m *mockJobsAPI) GetApplications(ctx context.Context, jobID string) ([]models.Application, error) {
	args := m.Called(ctx, jobID)
	applications, _ := args.Get(0).([]models.Application)
	return applications, args.Error(1)
}

type memoryStore struct {
	mu      sync.Mutex
	values  map[string][]byte
	saveErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: make(map[string][]byte)}
}

func (m *memoryStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *memoryStore) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.values[key] = data
	return nil
}

func (m *memoryStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func testServerConfig() config.ServerConfig {
	return config.ServerConfig{
		Port:          8080,
		Mode:          config.ModeDebug,
		SessionSecret: strings.Repeat("s", 32),
	}
}

type testEnv struct {
	api    *mockJobsAPI
	states *memoryStore
	bus    EventBus.Bus
	server *Server
}

func newTestEnv(t *testing.T) *testEnv {
	env := &testEnv{api: &mockJobsAPI{}, states: newMemoryStore(), bus: EventBus.New()}
	server, err := NewServer(testServerConfig(), env.api, env.states, env.bus)
	require.NoError(t, err)
	env.server = server
	return env
}

// browser replays the cookies the server sets, the way a real browser would.
type browser struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func (e *testEnv) newBrowser(t *testing.T) *browser {
	return &browser{t: t, handler: e.server.Handler(), cookies: make(map[string]*http.Cookie)}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	for _, cookie := range b.cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	b.handler.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		b.cookies[cookie.Name] = cookie
	}
	return rec
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) loginAs(email, password string) {
	rec := b.post("/login", url.Values{"email": {email}, "password": {password}})
	require.Equal(b.t, http.StatusSeeOther, rec.Code)
}

func (e *testEnv) loggedInUser(t *testing.T) *browser {
	b := e.newBrowser(t)
	b.loginAs("user@example.com", "user123")
	return b
}

func (e *testEnv) loggedInAdmin(t *testing.T) *browser {
	b := e.newBrowser(t)
	b.loginAs("admin@example.com", "admin123")
	return b
}
