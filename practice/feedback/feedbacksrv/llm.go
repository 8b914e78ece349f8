package feedbacksrv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/interview-ace/ace/practice/feedback"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"
)

// LLMEvaluator assesses answers through a chat completion call with a JSON
// response format.
type LLMEvaluator struct {
	client *openai.Client
	model  string
}

// NewLLMEvaluator creates an evaluator. model may be empty to use the default.
func NewLLMEvaluator(apiKey, model string) *LLMEvaluator {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &LLMEvaluator{
		client: &client,
		model:  model,
	}
}

const systemPrompt = `You are an experienced interview coach. Evaluate answers honestly and return ONLY valid JSON.`

const userPromptTemplate = `Evaluate this interview answer for a %s position.

Question: %s
Question Category: %s
Candidate's Answer: %s

Provide a comprehensive evaluation with the following structure:
{
  "score": 0-100,
  "feedback": "detailed feedback on the answer",
  "suggestions": ["specific improvement suggestions"],
  "keywords": ["key terms mentioned"],
  "sentiment": "positive|neutral|negative",
  "breakdown": {
    "accuracy": 0-100,
    "completeness": 0-100,
    "clarity": 0-100,
    "relevance": 0-100
  },
  "categories": {
    "technical": 0-100,
    "communication": 0-100,
    "problem_solving": 0-100,
    "confidence": 0-100
  }
}

Consider:
- Technical accuracy for technical questions
- Communication clarity and structure
- Problem-solving approach
- Confidence and assertiveness
- Relevance to the question asked
- Completeness of the answer`

// Evaluate assesses the answer with the chat model.
func (e *LLMEvaluator) Evaluate(ctx context.Context, req feedback.EvaluateRequest) (*feedback.Result, error) {
	prompt := fmt.Sprintf(userPromptTemplate, req.JobTitle, req.Question, req.Category, req.Answer)

	completion, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		Model: e.model,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{
				Type: constant.JSONObject("json_object"),
			},
		},
		Temperature: openai.Float(0.3),
		MaxTokens:   openai.Int(2000),
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat api error: %w", err)
	}

	if len(completion.Choices) == 0 {
		return nil, errors.New("no response from openai")
	}

	var result feedback.Result
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &result); err != nil {
		return nil, fmt.Errorf("failed to parse evaluation JSON: %w", err)
	}

	return &result, nil
}
