package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/maxaizer/job-portal/internal/domain/models"
	"github.com/maxaizer/job-portal/internal/logger"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

const (
	userKey        = "user"
	appliedJobsKey = "appliedJobs"
)

// Store is the browser-scoped persisted key/value storage. Load returns nil data for a
// missing key.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Remove(ctx context.Context, key string) error
}

// Session holds the user of one browser. Role checks are derived from the user on every
// call and never stored separately.
type Session struct {
	store     Store
	browserID string
	user      *models.User
}

// Open rehydrates the session of browserID. Missing or unreadable data leaves the session
// unauthenticated.
func Open(ctx context.Context, store Store, browserID string) (*Session, error) {
	s := &Session{store: store, browserID: browserID}

	data, err := store.Load(ctx, s.key(userKey))
	if err != nil {
		return s, fmt.Errorf("load session user: %w", err)
	}
	if data == nil {
		return s, nil
	}

	var user models.User
	if err = json.Unmarshal(data, &user); err != nil {
		log.Warnf("dropping unreadable session of browser %s: %v", browserID, err)
		return s, nil
	}
	s.user = &user
	return s, nil
}

func (s *Session) BrowserID() string {
	return s.browserID
}

func (s *Session) User() *models.User {
	return s.user
}

func (s *Session) IsAuthenticated() bool {
	return s.user != nil
}

func (s *Session) IsAdmin() bool {
	return s.user.IsAdmin()
}

func (s *Session) Login(ctx context.Context, email, password string) (*models.User, error) {

	user, err := Authenticate(email, password)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}

	if err = s.store.Save(ctx, s.key(userKey), data); err != nil {
		return nil, fmt.Errorf("save session user: %w", err)
	}

	s.user = user
	return user, nil
}

// Logout forgets the user and the applied-jobs set. Storage failures are only logged.
func (s *Session) Logout(ctx context.Context) {
	s.user = nil

	unlock := appliedJobsLocks.lock(s.browserID)
	defer unlock()

	for _, key := range []string{userKey, appliedJobsKey} {
		if err := s.store.Remove(ctx, s.key(key)); err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeStorage).
				Errorf("failed to remove %s of browser %s: %v", key, s.browserID, err)
		}
	}
}

func (s *Session) AppliedJobs(ctx context.Context) ([]string, error) {

	data, err := s.store.Load(ctx, s.key(appliedJobsKey))
	if err != nil {
		return nil, fmt.Errorf("load applied jobs: %w", err)
	}
	if data == nil {
		return []string{}, nil
	}

	var jobIDs []string
	if err = json.Unmarshal(data, &jobIDs); err != nil {
		log.Warnf("dropping unreadable applied jobs of browser %s: %v", s.browserID, err)
		return []string{}, nil
	}
	return jobIDs, nil
}

func (s *Session) HasApplied(ctx context.Context, jobID string) (bool, error) {
	jobIDs, err := s.AppliedJobs(ctx)
	if err != nil {
		return false, err
	}
	return lo.Contains(jobIDs, jobID), nil
}

// MarkApplied records jobID in the applied-jobs set; a job appears there at most once.
func (s *Session) MarkApplied(ctx context.Context, jobID string) error {
	unlock := appliedJobsLocks.lock(s.browserID)
	defer unlock()

	jobIDs, err := s.AppliedJobs(ctx)
	if err != nil {
		return err
	}
	if lo.Contains(jobIDs, jobID) {
		return nil
	}

	data, err := json.Marshal(append(jobIDs, jobID))
	if err != nil {
		return err
	}

	if err = s.store.Save(ctx, s.key(appliedJobsKey), data); err != nil {
		return fmt.Errorf("save applied jobs: %w", err)
	}
	return nil
}

func (s *Session) key(name string) string {
	return s.browserID + "/" + name
}
