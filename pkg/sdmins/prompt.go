package sdmins

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sdmtools/sdmins/pkg/report"
)

// Markers delimiting the machine-readable fact block inside an insight
// prompt. The oracle's instructions reference this block; the stub
// backend parses it to produce deterministic replies.
const (
	PromptDataBegin = "### DATOS (JSON)"
	PromptDataEnd   = "### FIN DATOS"
)

// PromptData is the fact block embedded in every insight prompt. It
// carries everything the oracle is allowed to state: the precomputed
// percentage claims, the category words, and the pool of real publication
// themes to choose from. Anything outside this block is forbidden
// vocabulary.
type PromptData struct {
	CampusID   string                `json:"campus_id"`
	CampusName string                `json:"campus_name"`
	Month      string                `json:"month"`
	Year       int                   `json:"year"`
	Claims     []report.PctClaim     `json:"claims"`
	Categories report.CategoryClaims `json:"categories"`
	// ThemePool holds the texts of the campus top-8 publications; cited
	// themes must be drawn from these.
	ThemePool []string `json:"theme_pool"`
	// MissingBaselines names metrics whose prior-period value is absent;
	// their changes are undefined and must not be stated numerically.
	MissingBaselines []string `json:"missing_baselines,omitempty"`
}

// Encode renders the fact block with its markers for inclusion in a
// prompt.
func (d *PromptData) Encode() (string, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s\n%s\n%s",
		PromptDataBegin, string(data), PromptDataEnd), nil
}

// ExtractPromptData locates and parses the fact block inside a prompt.
func ExtractPromptData(prompt string) (*PromptData, error) {
	begin := strings.Index(prompt, PromptDataBegin)
	if begin < 0 {
		return nil, fmt.Errorf("prompt has no %q block", PromptDataBegin)
	}
	rest := prompt[begin+len(PromptDataBegin):]
	end := strings.Index(rest, PromptDataEnd)
	if end < 0 {
		return nil, fmt.Errorf("prompt %q block is not closed", PromptDataBegin)
	}

	var res PromptData
	if err := json.Unmarshal([]byte(rest[:end]), &res); err != nil {
		return nil, fmt.Errorf("cannot parse prompt data: %w", err)
	}
	return &res, nil
}
