package feature

import (
	"encoding/json"
	"strings"
)

// Record is a structured resume as stored in the master resume corpus, one
// JSON object per line. Fields the pipeline does not consume are ignored on
// decode.
type Record struct {
	PersonalInfo   PersonalInfo   `json:"personal_info"`
	Skills         SkillSections  `json:"skills"`
	Experience     []Experience   `json:"experience"`
	Education      []Education    `json:"education"`
	Projects       []Project      `json:"projects"`
	Certifications Certifications `json:"certifications"`
}

type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Summary  string `json:"summary"`
}

type SkillSections struct {
	Technical TechnicalSkills `json:"technical"`
}

// TechnicalSkills groups named skills by sub-category. Every category entry is
// an object with at least a "name" field.
type TechnicalSkills struct {
	ProgrammingLanguages []SkillRef `json:"programming_languages"`
	Frameworks           []SkillRef `json:"frameworks"`
	Databases            []SkillRef `json:"databases"`
	Cloud                []SkillRef `json:"cloud"`
	ProjectManagement    []SkillRef `json:"project_management"`
	Automation           []SkillRef `json:"automation"`
	SoftwareTools        []SkillRef `json:"software_tools"`
}

type SkillRef struct {
	Name string `json:"name"`
}

type Experience struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Dates            Dates    `json:"dates"`
	Responsibilities []string `json:"responsibilities"`
}

type Dates struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	Duration string `json:"duration"`
}

type Education struct {
	Degree      Degree      `json:"degree"`
	Institution Institution `json:"institution"`
}

type Degree struct {
	Level string `json:"level"`
	Field string `json:"field"`
}

type Institution struct {
	Name string `json:"name"`
}

type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
}

// Certifications accepts either a single free-text string or a list of
// certification names; the corpus contains both shapes. The distinction
// matters to the quality scorer, so both forms are preserved.
type Certifications struct {
	Value  string
	List   []string
	isList bool
}

func (c *Certifications) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*c = Certifications{}
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*c = Certifications{List: list, isList: true}
		return nil
	}
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*c = Certifications{Value: value}
	return nil
}

func (c Certifications) MarshalJSON() ([]byte, error) {
	if c.isList {
		return json.Marshal(c.List)
	}
	return json.Marshal(c.Value)
}

// IsList reports whether the source document held a list of certifications.
func (c Certifications) IsList() bool {
	return c.isList
}

// sentinel values that mean "absent" throughout the corpus
func isSentinel(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "unknown", "not provided":
		return true
	}
	return false
}
