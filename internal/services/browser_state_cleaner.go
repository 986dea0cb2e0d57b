package services

import (
	"context"
	"time"

	"github.com/maxaizer/job-portal/internal/logger"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type stateCleanupRepository interface {
	RemoveOlderThan(ctx context.Context, expirationTime time.Time) (int64, error)
}

type stateCache interface {
	Flush()
}

// BrowserStateCleaner removes session users and applied-job sets of browsers that have not
// written anything for the configured number of days.
type BrowserStateCleaner struct {
	states               stateCleanupRepository
	cache                stateCache
	cron                 *cron.Cron
	expirationTimeInDays int
}

func NewBrowserStateCleaner(states stateCleanupRepository, cache stateCache, expirationInDays int) (*BrowserStateCleaner, error) {

	if expirationInDays <= 0 {
		return nil, errors.New("expiration in days must be greater than zero")
	}

	c := &BrowserStateCleaner{
		states:               states,
		cache:                cache,
		cron:                 cron.New(),
		expirationTimeInDays: expirationInDays,
	}

	_, err := c.cron.AddFunc("0 0 * * *", c.cleanExpiredStates)
	if err != nil {
		return nil, err
	}

	c.cron.Start()
	log.Infof("browser state cleaner started, expiration in days: %d", c.expirationTimeInDays)
	return c, nil
}

func (c *BrowserStateCleaner) Stop() {
	<-c.cron.Stop().Done()
}

func (c *BrowserStateCleaner) cleanExpiredStates() {
	expirationTime := time.Now().Add(-time.Duration(c.expirationTimeInDays) * 24 * time.Hour)
	rowsAffected, err := c.states.RemoveOlderThan(context.Background(), expirationTime)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStorage).
			Errorf("Failed to clean expired browser states: %v", err)
		return
	}

	if rowsAffected > 0 && c.cache != nil {
		c.cache.Flush()
	}
	log.Infof("Expired browser states were cleaned at %v, affected rows: %v", time.Now(), rowsAffected)
}
