package ai

import (
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/cinematch/pkg/errors"
)

/*
Catalog resolves agent ids to agents.
*/
type Catalog struct {
	mu     sync.RWMutex
	agents map[string]Agent
}

func NewCatalog(agents ...Agent) *Catalog {
	catalog := &Catalog{agents: make(map[string]Agent)}

	for _, agent := range agents {
		catalog.Add(agent)
	}

	return catalog
}

func (catalog *Catalog) Add(agent Agent) {
	catalog.mu.Lock()
	defer catalog.mu.Unlock()

	log.Debug("registering agent", "id", agent.ID())
	catalog.agents[agent.ID()] = agent
}

// Get returns the agent or an AgentNotFoundError.
func (catalog *Catalog) Get(id string) (Agent, error) {
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	agent, ok := catalog.agents[id]
	if !ok {
		return nil, &errors.AgentNotFoundError{AgentID: id}
	}

	return agent, nil
}

func (catalog *Catalog) IDs() []string {
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	ids := make([]string, 0, len(catalog.agents))
	for id := range catalog.agents {
		ids = append(ids, id)
	}

	sort.Strings(ids)
	return ids
}
