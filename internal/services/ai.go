package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

type AIService struct {
	client *openai.Client
}

// PostSuggestion is the extracted metadata for a draft job description.
type PostSuggestion struct {
	Tags              []string `json:"tags"`
	Skills            []string `json:"skills"`
	YearsOfExperience int      `json:"years_of_experience"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// SuggestPostMetadata extracts tags, skills and a required experience level
// from a draft job description using OpenAI GPT.
func (s *AIService) SuggestPostMetadata(ctx context.Context, knownTags []string, description string) (*PostSuggestion, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You are a job posting assistant. Extract metadata from the job description below.

Known tags (only pick from these): %v

Job description:
%s

Return only JSON in this exact shape:
{
  "tags": ["tag", ...],
  "skills": ["skill name", ...],
  "years_of_experience": 0
}

Rules:
- tags must be a subset of the known tags; return [] if none apply
- skills are concrete technologies or abilities mentioned in the text
- years_of_experience is the minimum the text asks for, 0 if unspecified
- return JSON only, no explanations`, knownTags, description)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.2,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var suggestion PostSuggestion
	if err := json.Unmarshal([]byte(content), &suggestion); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return &suggestion, nil
}
