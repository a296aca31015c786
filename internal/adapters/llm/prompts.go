package llm

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/DubjamMusic/hustlecodex/internal/domain/model"
)

// PromptSource loads agent system prompts. Load failures must never abort
// agent execution; callers substitute a fallback prompt.
type PromptSource interface {
	LoadPrompt(ctx context.Context, team model.Team, agentKey string) (string, error)
}

// FilePromptSource reads prompts from
// <dir>/agents/team-<team>/<agentKey>-prompt.md.
type FilePromptSource struct {
	dir string
}

// NewFilePromptSource creates a prompt source rooted at dir.
func NewFilePromptSource(dir string) *FilePromptSource {
	return &FilePromptSource{dir: dir}
}

// LoadPrompt reads the prompt file for team/agentKey.
func (s *FilePromptSource) LoadPrompt(ctx context.Context, team model.Team, agentKey string) (string, error) {
	name := fmt.Sprintf("%s-prompt.md", strings.ToLower(agentKey))
	path := filepath.Join(s.dir, "agents", "team-"+string(team), name)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load prompt %s/%s: %w", team, agentKey, err)
	}
	return string(data), nil
}

// FallbackPrompt is the generic templated prompt used when loading fails.
func FallbackPrompt(name string, team model.Team) string {
	return fmt.Sprintf("You are %s on team %s. Analyze the given directive and provide your expert perspective.", name, team)
}
