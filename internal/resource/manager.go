package resource

import (
	"fmt"
	"sync"
	"time"

	"CPCPerform/internal/logger"
	"CPCPerform/internal/serviceiface"
	"CPCPerform/internal/session"
)

// ResourceManager tracks shared runtime resources (today: the upload store) and
// heartbeats their state into the log.
type ResourceManager struct {
	resources         map[string]interface{}
	mu                sync.RWMutex
	stopChan          chan struct{}
	heartbeatInterval time.Duration
	uploads           *session.Manager
}

func NewResourceManagerService(cfg map[string]interface{}, uploads *session.Manager) serviceiface.Service {
	interval := 5 * time.Second
	if val, ok := cfg["heartbeat_interval"]; ok {
		switch v := val.(type) {
		case string:
			if d, err := time.ParseDuration(v); err == nil {
				interval = d
			}
		case float64:
			interval = time.Duration(v) * time.Second
		}
	}
	return &ResourceManager{
		resources:         make(map[string]interface{}),
		stopChan:          make(chan struct{}),
		heartbeatInterval: interval,
		uploads:           uploads,
	}
}

func (rm *ResourceManager) Name() string { return "resourcemanager" }

func (rm *ResourceManager) Start() error {
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit("ResourceManager started")
	}
	if rm.uploads != nil {
		rm.Register("uploadstore", rm.uploads)
	}
	go rm.heartbeatLoop()
	return nil
}

func (rm *ResourceManager) Stop() error {
	close(rm.stopChan)
	return nil
}

func (rm *ResourceManager) Register(name string, res interface{}) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.resources[name] = res
}

func (rm *ResourceManager) heartbeatLoop() {
	ticker := time.NewTicker(rm.heartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-rm.stopChan:
			return
		case <-ticker.C:
			rm.mu.RLock()
			count := len(rm.resources)
			rm.mu.RUnlock()
			msg := fmt.Sprintf("heartbeat: %d resources", count)
			if rm.uploads != nil {
				msg = fmt.Sprintf("%s, %d live uploads", msg, rm.uploads.Count())
			}
			if logger.GlobalLogger != nil {
				logger.GlobalLogger.LogAudit("[ResourceManager] " + msg)
			}
		}
	}
}
