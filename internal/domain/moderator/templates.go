package moderator

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Templates holds the praise message templates. The first entry of each
// bucket is used; extra entries are reserved for future rotation.
type Templates struct {
	Victory struct {
		Decisive []string `yaml:"decisive"`
		Close    []string `yaml:"close"`
		Comeback []string `yaml:"comeback"`
	} `yaml:"victory"`
	Tie              []string       `yaml:"tie"`
	StreakMilestones map[int]string `yaml:"streak_milestones"`
}

const templatesFile = "praise-templates.yaml"

func loadTemplates(dir string) (Templates, error) {
	var t Templates

	raw, err := os.ReadFile(filepath.Join(dir, "competition", templatesFile))
	if err != nil {
		return t, err
	}

	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, err
	}

	if len(t.Victory.Decisive) == 0 || len(t.Victory.Close) == 0 || len(t.Tie) == 0 {
		return t, errIncompleteTemplates
	}

	return t, nil
}

// defaultTemplates is the hardcoded fallback when the template file is
// missing or malformed.
func defaultTemplates() Templates {
	var t Templates
	t.Victory.Decisive = []string{"🏆 **{team} DOMINATES!** A commanding victory!"}
	t.Victory.Close = []string{"🥇 **{team} Edges Out Victory!** Well fought!"}
	t.Tie = []string{"🤝 **Dead Heat!** Both teams delivered excellence!"}
	t.StreakMilestones = map[int]string{
		3: "🔥 **3-Win Streak!** {team} is on fire!",
		5: "⚡ **5-Win Streak!** {team} is dominating!",
	}
	return t
}
