// Package web serves the job portal pages. Every page request passes the browser session
// middleware and the route guard before reaching its handler.
package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/maxaizer/job-portal/internal/config"
	"github.com/maxaizer/job-portal/internal/domain/models"
	"github.com/maxaizer/job-portal/internal/logger"
	"github.com/maxaizer/job-portal/internal/services"
	"github.com/maxaizer/job-portal/internal/session"
	log "github.com/sirupsen/logrus"
)

type jobsAPI interface {
	GetJobs(ctx context.Context) ([]models.Job, error)
	GetJob(ctx context.Context, id string) (*models.Job, error)
	CreateJob(ctx context.Context, form models.JobForm) (*models.Job, error)
	UpdateJob(ctx context.Context, id string, form models.JobForm) (*models.Job, error)
	DeleteJob(ctx context.Context, id string) error
	Apply(ctx context.Context, jobID string, form models.ApplicationForm) (*models.Application, error)
	GetApplications(ctx context.Context, jobID string) ([]models.Application, error)
}

type dashboardLoader interface {
	Load(ctx context.Context) (models.DashboardData, error)
}

type Server struct {
	engine     *gin.Engine
	httpServer *http.Server

	api       jobsAPI
	dashboard dashboardLoader
	states    session.Store
	bus       EventBus.Bus

	cookies   *sessions.CookieStore
	templates map[string]*template.Template
}

func NewServer(cfg config.ServerConfig, api jobsAPI, states session.Store, bus EventBus.Bus) (*Server, error) {

	if api == nil {
		return nil, errors.New("jobs api is nil")
	}
	if states == nil {
		return nil, errors.New("state store is nil")
	}
	if bus == nil {
		return nil, errors.New("bus is nil")
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	if cfg.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())

	s := &Server{
		engine:    engine,
		api:       api,
		dashboard: services.NewDashboard(api),
		states:    states,
		bus:       bus,
		cookies:   newCookieStore(cfg),
		templates: templates,
	}
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.registerRoutes()
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start blocks until the server stops. A graceful shutdown is not reported as an error.
func (s *Server) Start() error {
	log.Infof("Starting web server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

func (s *Server) render(c *gin.Context, status int, page string, data any) {
	tmpl, ok := s.templates[page]
	if !ok {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeWeb).Errorf("unknown template %s", page)
		c.String(http.StatusInternalServerError, "Failed to render page")
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeWeb).
			Errorf("template execution failed for %s: %v", c.Request.URL.Path, err)
		c.String(http.StatusInternalServerError, "Failed to render page")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// redirectAfterPost sends the browser to path with a GET.
func redirectAfterPost(c *gin.Context, path string) {
	c.Redirect(http.StatusSeeOther, path)
}
