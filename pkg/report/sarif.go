package report

const (
	sarifVersion   = "2.1.0"
	sarifSchemaURI = "https://json.schemastore.org/sarif-2.1.0.json"
)

// SARIFOutput is the top-level SARIF log.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun is a single analysis run.
type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver is the tool's driver with its rule metadata.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes a rule referenced by a result.
type SARIFRule struct {
	ID               string     `json:"id"`
	ShortDescription *SARIFText `json:"shortDescription,omitempty"`
}

// SARIFText is a plain text message.
type SARIFText struct {
	Text string `json:"text"`
}

// SARIFResult is one reported problem.
type SARIFResult struct {
	RuleID    string          `json:"ruleId,omitempty"`
	Level     string          `json:"level"`
	Message   SARIFText       `json:"message"`
	Locations []SARIFLocation `json:"locations"`
}

// SARIFLocation points at a place in the style file.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation is a file and an optional region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           *SARIFRegion          `json:"region,omitempty"`
}

// SARIFArtifactLocation names the file.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion is a 1-based line and column.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
}

func (r *Report) sarifDocument() *SARIFOutput {
	run := SARIFRun{
		Tool: SARIFTool{Driver: SARIFDriver{
			Name:           r.Tool.Name,
			Version:        r.Tool.Version,
			InformationURI: r.Tool.URI,
			Rules:          []SARIFRule{},
		}},
		Results: []SARIFResult{},
	}

	seen := make(map[string]bool)
	for _, problem := range r.Problems {
		if problem.RuleID != "" && !seen[problem.RuleID] {
			seen[problem.RuleID] = true
			rule := SARIFRule{ID: problem.RuleID}
			if r.Describe != nil {
				if desc := r.Describe(problem.RuleID); desc != "" {
					rule.ShortDescription = &SARIFText{Text: desc}
				}
			}
			run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, rule)
		}

		location := SARIFPhysicalLocation{ArtifactLocation: SARIFArtifactLocation{URI: r.Path}}
		if problem.Line > 0 {
			location.Region = &SARIFRegion{StartLine: problem.Line, StartColumn: problem.Column}
		}
		run.Results = append(run.Results, SARIFResult{
			RuleID:    problem.RuleID,
			Level:     sarifLevel(problem.Severity),
			Message:   SARIFText{Text: problem.Message},
			Locations: []SARIFLocation{{PhysicalLocation: location}},
		})
	}

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{run},
	}
}

func sarifLevel(severity Severity) string {
	if severity == SeverityError {
		return "error"
	}
	return "warning"
}
