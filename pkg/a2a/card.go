package a2a

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// AgentCapabilities describes the capabilities of an agent
type AgentCapabilities struct {
	Streaming              bool `json:"streaming"`
	PushNotifications      bool `json:"pushNotifications"`
	StateTransitionHistory bool `json:"stateTransitionHistory"`
}

// AgentProvider represents the provider or organization behind an agent
type AgentProvider struct {
	Organization string `json:"organization"`
	URL          string `json:"url,omitempty"`
}

// AgentSkill defines a specific skill or capability offered by an agent
type AgentSkill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Examples    []string `json:"examples,omitempty"`
	InputModes  []string `json:"inputModes,omitempty"`
	OutputModes []string `json:"outputModes,omitempty"`
}

// AgentCard represents the metadata card for an agent
type AgentCard struct {
	ProtocolVersion    string            `json:"protocolVersion"`
	Name               string            `json:"name"`
	Description        string            `json:"description,omitempty"`
	URL                string            `json:"url"`
	Provider           *AgentProvider    `json:"provider,omitempty"`
	Version            string            `json:"version"`
	Capabilities       AgentCapabilities `json:"capabilities"`
	DefaultInputModes  []string          `json:"defaultInputModes,omitempty"`
	DefaultOutputModes []string          `json:"defaultOutputModes,omitempty"`
	Skills             []AgentSkill      `json:"skills"`
}

/*
NewAgentCardFromConfig builds the published card from the card.* section of
the config.
*/
func NewAgentCardFromConfig(v *viper.Viper) *AgentCard {
	log.Debug("new agent card from config", "name", v.GetString("card.name"))

	skills := make([]AgentSkill, 0)

	for _, key := range v.GetStringSlice("card.skills") {
		skills = append(skills, NewSkillFromConfig(v, key))
	}

	return &AgentCard{
		ProtocolVersion: v.GetString("card.protocolVersion"),
		Name:            v.GetString("card.name"),
		Description:     v.GetString("card.description"),
		URL:             v.GetString("card.url"),
		Version:         v.GetString("card.version"),
		Provider: &AgentProvider{
			Organization: v.GetString("card.provider.organization"),
			URL:          v.GetString("card.provider.url"),
		},
		Capabilities: AgentCapabilities{
			PushNotifications: v.GetString("server.mode") == "webhook",
		},
		DefaultInputModes:  []string{"text/plain"},
		DefaultOutputModes: []string{"text/plain"},
		Skills:             skills,
	}
}

func NewSkillFromConfig(v *viper.Viper, key string) AgentSkill {
	prefix := "skills." + key + "."

	return AgentSkill{
		ID:          v.GetString(prefix + "id"),
		Name:        v.GetString(prefix + "name"),
		Description: v.GetString(prefix + "description"),
		Tags:        v.GetStringSlice(prefix + "tags"),
		Examples:    v.GetStringSlice(prefix + "examples"),
	}
}
