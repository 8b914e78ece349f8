package questionsrv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/interview-ace/ace/practice/question"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"
)

// LLMGenerator produces questions through a chat completion call with a JSON
// response format.
type LLMGenerator struct {
	client *openai.Client
	model  string
}

// NewLLMGenerator creates a generator. model may be empty to use the default.
func NewLLMGenerator(apiKey, model string) *LLMGenerator {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &LLMGenerator{
		client: &client,
		model:  model,
	}
}

const systemPrompt = `You are an expert technical interviewer. Generate interview questions and return ONLY valid JSON.`

const userPromptTemplate = `Generate %d interview questions for a %s position.
The questions should be %s difficulty level.

Resume context:
- Skills: %s
- Experience: %s
- Education: %s

Generate questions that cover:
1. Technical skills relevant to %s
2. Problem-solving scenarios
3. Behavioral questions
4. Experience-based questions

Return a JSON object with this structure:
{
  "questions": [
    {
      "id": "unique_id",
      "question": "question text",
      "category": "technical|behavioral|problem-solving",
      "difficulty": "easy|medium|hard",
      "expected_answer": "brief description of what a good answer should include"
    }
  ]
}`

type generatedPayload struct {
	Questions []question.Question `json:"questions"`
}

// GenerateQuestions asks the model for a question batch.
func (g *LLMGenerator) GenerateQuestions(ctx context.Context, req question.GenerateRequest) ([]question.Question, error) {
	prompt := fmt.Sprintf(userPromptTemplate,
		req.NumQuestions, req.JobTitle, req.Difficulty,
		joinOrNone(req.Resume.Skills),
		joinOrNone(req.Resume.Experience),
		joinOrNone(req.Resume.Education),
		req.JobTitle,
	)

	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		Model: g.model,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{
				Type: constant.JSONObject("json_object"),
			},
		},
		Temperature: openai.Float(0.7),
		MaxTokens:   openai.Int(3000),
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat api error: %w", err)
	}

	if len(completion.Choices) == 0 {
		return nil, errors.New("no response from openai")
	}

	var payload generatedPayload
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse questions JSON: %w", err)
	}

	if len(payload.Questions) == 0 {
		return nil, errors.New("generator returned no questions")
	}

	return payload.Questions, nil
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "not provided"
	}
	return strings.Join(items, ", ")
}
