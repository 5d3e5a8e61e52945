// # internal/report/sarif.go
package report

import (
	"encoding/json"
	"io"

	"github.com/phantomcyber/soar-app-linter/internal/lint"
)

// SARIF v2.1.0 schema – see https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json

const (
	sarifSchema  = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
	sarifVersion = "2.1.0"

	toolName    = "soarlint"
	toolVersion = "1.0.0"
)

// sarifReport is the top-level SARIF document.
type sarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	ShortDescription sarifMessage           `json:"shortDescription"`
	DefaultConfig    sarifRuleDefaultConfig `json:"defaultConfiguration"`
}

type sarifRuleDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine,omitempty"`
	StartColumn int `json:"startColumn,omitempty"`
}

func sarifLevel(s lint.Severity) string {
	switch s {
	case lint.SeverityError:
		return "error"
	case lint.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}

// renderSARIF builds a SARIF v2.1.0 document: one run, the full message
// registry as the rule table, one result per diagnostic.
func (r *Reporter) renderSARIF(w io.Writer, results []FileResult) error {
	var rules []sarifRule
	for _, m := range lint.AllMessages() {
		rules = append(rules, sarifRule{
			ID:               m.ID,
			Name:             m.Code,
			ShortDescription: sarifMessage{Text: m.Help},
			DefaultConfig:    sarifRuleDefaultConfig{Level: sarifLevel(m.Severity())},
		})
	}

	sarifResults := make([]sarifResult, 0)
	for _, res := range results {
		for _, d := range res.Diagnostics {
			sarifResults = append(sarifResults, sarifResult{
				RuleID:  d.Message().ID,
				Level:   sarifLevel(d.Severity()),
				Message: sarifMessage{Text: d.Render()},
				Locations: []sarifLocation{{
					PhysicalLocation: sarifPhysicalLocation{
						ArtifactLocation: sarifArtifactLocation{URI: d.Location.File},
						Region: &sarifRegion{
							StartLine:   d.Location.Line,
							StartColumn: d.Location.Column,
						},
					},
				}},
			})
		}
	}

	doc := sarifReport{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:    toolName,
				Version: toolVersion,
				Rules:   rules,
			}},
			Results: sarifResults,
		}},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
