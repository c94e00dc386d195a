package llm

import (
	"fmt"
	"strings"

	"github.com/mwalden/termlens/internal/model"
)

// NewProvider creates the configured provider, or nil when generation is
// disabled. Any OpenAI-compatible endpoint (local or hosted) is reachable
// through the "openai" provider with a base_url override.
func NewProvider(cfg model.LLMConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIProvider(cfg)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai)", cfg.Provider)
	}
}
