// Package llmparser extracts structured resume fields through a chat
// completion call. It is the fallback path when the local model's confidence
// is below threshold or no checkpoint is loaded.
package llmparser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"
)

// FallbackConfidence is reported for successful LLM parses. The value is the
// original service's fixed constant.
const FallbackConfidence = 0.85

// ResumeParser calls the chat completions API with a JSON response format.
type ResumeParser struct {
	client *openai.Client
	model  string
}

// NewResumeParser creates a parser. model may be empty to use the default.
func NewResumeParser(apiKey, model string) *ResumeParser {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &ResumeParser{
		client: &client,
		model:  model,
	}
}

// ResumeData is the structured extraction result.
type ResumeData struct {
	PersonalInfo   PersonalInfo `json:"personal_info"`
	Summary        string       `json:"summary"`
	Skills         []string     `json:"skills"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	Projects       []Project    `json:"projects,omitempty"`
	Certifications []string     `json:"certifications,omitempty"`
}

type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

type Experience struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Duration    string   `json:"duration"`
	Description []string `json:"description"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies,omitempty"`
}

const systemPrompt = `You are a professional resume parser. Extract ALL information from the resume text and return ONLY valid JSON.`

const userPromptTemplate = `Parse the following resume and extract structured information in this JSON structure:

{
  "personal_info": {
    "name": string,
    "email": string,
    "phone": string,
    "location": string
  },
  "summary": string (professional summary),
  "skills": string[] (technical and soft skills),
  "experience": [{
    "title": string,
    "company": string,
    "duration": string,
    "description": string[] (key achievements and duties)
  }],
  "education": [{
    "degree": string,
    "institution": string,
    "year": string
  }],
  "projects": [{
    "name": string,
    "description": string,
    "technologies": string[]
  }],
  "certifications": string[]
}

IMPORTANT:
- Extract ALL information accurately
- If a field is not available, omit it or use empty string
- Maintain chronological order (newest first)
- Return ONLY the JSON, no explanatory text

Resume content:
%s`

// ParseResumeText extracts structured data from plain resume text.
func (p *ResumeParser) ParseResumeText(ctx context.Context, text string) (*ResumeData, error) {
	if text == "" {
		return nil, errors.New("empty resume text")
	}

	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(fmt.Sprintf(userPromptTemplate, text)),
		},
		Model: p.model,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{
				Type: constant.JSONObject("json_object"),
			},
		},
		Temperature: openai.Float(0.1),
		MaxTokens:   openai.Int(4000),
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat api error: %w", err)
	}

	if len(completion.Choices) == 0 {
		return nil, errors.New("no response from openai")
	}

	content := completion.Choices[0].Message.Content
	var data ResumeData
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return nil, fmt.Errorf("failed to parse resume JSON: %w", err)
	}
	return &data, nil
}

// ExperienceSummary joins "Title at Company" fragments for up to five
// entries, the same shape the local model path reports.
func (rd *ResumeData) ExperienceSummary() string {
	result := ""
	count := 0
	for _, exp := range rd.Experience {
		if exp.Title == "" || exp.Company == "" {
			continue
		}
		if count > 0 {
			result += ", "
		}
		result += exp.Title + " at " + exp.Company
		count++
		if count == 5 {
			break
		}
	}
	return result
}
