package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/maxaizer/job-portal/internal/config"
	"github.com/maxaizer/job-portal/internal/guard"
	"github.com/maxaizer/job-portal/internal/logger"
	"github.com/maxaizer/job-portal/internal/session"
	log "github.com/sirupsen/logrus"
)

const (
	cookieName      = "jobportal"
	cookieBrowserID = "browser_id"
	sessionKey      = "session"
)

func newCookieStore(cfg config.ServerConfig) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("request failed")
		} else {
			entry.Debug("request served")
		}
	}
}

// browserSession identifies the browser by the id in its signed cookie, issuing a new id
// when there is none, and opens the session stored for it.
func (s *Server) browserSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := s.cookies.Get(c.Request, cookieName)
		if err != nil {
			log.Debugf("issuing new browser cookie: %v", err)
		}

		browserID, _ := cookie.Values[cookieBrowserID].(string)
		if _, parseErr := uuid.Parse(browserID); parseErr != nil {
			browserID = uuid.NewString()
			cookie.Values[cookieBrowserID] = browserID
			if err = cookie.Save(c.Request, c.Writer); err != nil {
				log.WithField(logger.ErrorTypeField, logger.ErrorTypeWeb).Errorf("failed to save browser cookie: %v", err)
			}
		}

		sess, err := session.Open(c.Request.Context(), s.states, browserID)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeStorage).Errorf("failed to open session: %v", err)
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

func (s *Server) guardPages() gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := guard.Resolve(c.Request.URL.Path, currentSession(c))
		if !decision.Allowed {
			c.Redirect(http.StatusFound, decision.RedirectTo)
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}
