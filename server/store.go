package server

import (
	"strings"
	"sync"
	"time"

	"llm_code_deployment/deployer"
	"llm_code_deployment/generator"
)

// deploymentRecord remembers the outcome of the latest round for an
// email+task pair so revision rounds can update the same repository and
// feed the prior app back into the prompt.
type deploymentRecord struct {
	Round      int
	App        generator.App
	Deployment deployer.Deployment
	UpdatedAt  time.Time
}

type evaluationRecord struct {
	Email      string
	Task       string
	Round      int
	Nonce      string
	Data       map[string]any
	ReceivedAt time.Time
}

type deploymentStore struct {
	mu          sync.Mutex
	deployments map[string]*deploymentRecord
	evaluations []evaluationRecord
}

func newStore() *deploymentStore {
	return &deploymentStore{deployments: make(map[string]*deploymentRecord)}
}

func storeKey(email, task string) string {
	return strings.ToLower(email) + "|" + strings.ToLower(task)
}

func (s *deploymentStore) record(email, task string, round int, app generator.App, dep deployer.Deployment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deployments[storeKey(email, task)] = &deploymentRecord{
		Round:      round,
		App:        app,
		Deployment: dep,
		UpdatedAt:  time.Now(),
	}
}

func (s *deploymentStore) lookup(email, task string) (*deploymentRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.deployments[storeKey(email, task)]
	return rec, ok
}

func (s *deploymentStore) addEvaluation(rec evaluationRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evaluations = append(s.evaluations, rec)
}

func (s *deploymentStore) evaluationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.evaluations)
}
