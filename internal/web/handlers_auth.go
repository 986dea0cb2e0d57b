package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxaizer/job-portal/internal/guard"
	"github.com/maxaizer/job-portal/internal/logger"
	"github.com/maxaizer/job-portal/internal/metrics"
	"github.com/maxaizer/job-portal/internal/session"
	log "github.com/sirupsen/logrus"
)

const (
	invalidCredentialsMessage = "Invalid credentials. Please try again."
	loginFailedMessage        = "Failed to sign in. Please try again later."
)

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (s *Server) handleLoginPage(c *gin.Context) {
	s.render(c, http.StatusOK, "login.html", loginPage{basePage: s.base(c, "Sign In")})
}

func (s *Server) handleLogin(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		log.Debugf("failed to bind login form: %v", err)
	}

	sess := currentSession(c)
	user, err := sess.Login(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		metrics.LoginsCounter.WithLabelValues("failure").Inc()
		page := loginPage{basePage: s.base(c, "Sign In"), Email: form.Email}

		if !errors.Is(err, session.ErrInvalidCredentials) {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeStorage).Errorf("failed to log in: %v", err)
			page.Error = loginFailedMessage
			s.render(c, http.StatusInternalServerError, "login.html", page)
			return
		}

		page.Error = invalidCredentialsMessage
		s.render(c, http.StatusUnauthorized, "login.html", page)
		return
	}

	metrics.LoginsCounter.WithLabelValues("success").Inc()
	log.Infof("%s logged in as %s", user.Email, user.Role)
	redirectAfterPost(c, guard.LandingPath)
}

func (s *Server) handleLogout(c *gin.Context) {
	currentSession(c).Logout(c.Request.Context())
	redirectAfterPost(c, guard.LoginPath)
}
