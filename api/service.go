package api

import (
	"strconv"

	"CPCPerform/internal/serviceiface"
)

type GatewayService struct {
	config map[string]interface{}
}

func NewGatewayService(cfg map[string]interface{}) serviceiface.Service {
	return &GatewayService{config: cfg}
}

func (s *GatewayService) Name() string {
	return "gateway"
}

func (s *GatewayService) Start() error {
	port := "8080"
	target := "http://localhost:7143"
	if s.config != nil {
		switch v := s.config["port"].(type) {
		case string:
			if v != "" {
				port = v
			}
		case int:
			port = strconv.Itoa(v)
		case float64:
			port = strconv.Itoa(int(v))
		}
		if v, ok := s.config["reports_target"].(string); ok && v != "" {
			target = v
		}
	}
	go StartGateway(port, target)
	return nil
}

func (s *GatewayService) Stop() error {
	return nil
}
