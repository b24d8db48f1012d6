package jobs

import (
	"fmt"
	"log"
	"time"

	"CPCPerform/internal/config"
	"CPCPerform/internal/logger"
	"CPCPerform/internal/serviceiface"
	"CPCPerform/internal/session"

	"github.com/robfig/cron/v3"
)

// CronService runs the upload-retention sweeper: uploads past their TTL are
// dropped so an abandoned session never pins a parsed workbook in memory.
type CronService struct {
	config map[string]interface{}
	store  *session.Manager
	cron   *cron.Cron
}

func NewCronService(cfg map[string]interface{}, store *session.Manager) serviceiface.Service {
	return &CronService{
		config: cfg,
		store:  store,
	}
}

func (s *CronService) Name() string {
	return "jobs"
}

func (s *CronService) Start() error {
	schedule := config.DefaultRetentionSchedule
	if s.config != nil {
		if v, ok := s.config["retention_schedule"].(string); ok && v != "" {
			schedule = v
		}
	}

	loc, err := time.LoadLocation(config.DefaultTimeZone)
	if err != nil {
		loc = time.Local
	}
	s.cron = cron.New(cron.WithLocation(loc))
	_, err = s.cron.AddFunc(schedule, s.sweepUploads)
	if err != nil {
		return fmt.Errorf("failed to schedule upload sweeper: %v", err)
	}
	s.cron.Start()

	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit("Jobs service started - upload sweeper scheduled " + schedule)
	}
	log.Println("Jobs service started - upload sweeper scheduled", schedule)
	return nil
}

func (s *CronService) Stop() error {
	if s.cron != nil {
		s.cron.Stop()
	}
	return nil
}

func (s *CronService) sweepUploads() {
	if s.store == nil {
		return
	}
	removed := s.store.CleanupExpired()
	if removed > 0 {
		msg := fmt.Sprintf("[Sweeper] expired %d upload(s), %d remaining", removed, s.store.Count())
		log.Println(msg)
		if logger.GlobalLogger != nil {
			logger.GlobalLogger.LogAudit(msg)
		}
	}
}
