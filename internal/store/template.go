package store

import (
	"sync"

	"comrent-backend/internal/model"
)

// TemplateStore holds the single editable invoice email template.
type TemplateStore struct {
	mu  sync.RWMutex
	tpl model.EmailTemplate
}

// NewTemplateStore creates a store initialized with the given template.
func NewTemplateStore(tpl model.EmailTemplate) *TemplateStore {
	return &TemplateStore{tpl: tpl}
}

// Get returns the current template.
func (s *TemplateStore) Get() model.EmailTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tpl
}

// Set replaces the template.
func (s *TemplateStore) Set(tpl model.EmailTemplate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tpl = tpl
}
