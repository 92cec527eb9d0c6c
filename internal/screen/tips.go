package screen

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed tips.yaml
var tipsYAML []byte

// Tip is one card of the home carousel
type Tip struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Mascot      string `yaml:"mascot" json:"mascot"`
}

// ParseTips decodes a YAML list of tips
func ParseTips(data []byte) ([]Tip, error) {
	var tips []Tip
	if err := yaml.Unmarshal(data, &tips); err != nil {
		return nil, fmt.Errorf("screen: failed to parse tips: %w", err)
	}
	for i, t := range tips {
		if t.Title == "" {
			return nil, fmt.Errorf("screen: tip %d has no title", i)
		}
	}
	return tips, nil
}

// DefaultTips returns the built-in tips catalog
func DefaultTips() []Tip {
	tips, err := ParseTips(tipsYAML)
	if err != nil {
		panic(err)
	}
	return tips
}
