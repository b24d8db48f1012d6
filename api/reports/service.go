package reports

import (
	"CPCPerform/internal/serviceiface"
	"CPCPerform/internal/session"
)

type ReportsService struct {
	config map[string]interface{}
	store  *session.Manager
}

func NewReportsService(cfg map[string]interface{}, store *session.Manager) serviceiface.Service {
	return &ReportsService{config: cfg, store: store}
}

func (s *ReportsService) Name() string {
	return "reports"
}

func (s *ReportsService) Start() error {
	go StartReportsService(s.config, s.store)
	return nil
}

func (s *ReportsService) Stop() error {
	return nil
}
