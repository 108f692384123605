package studyquiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	openai "github.com/sashabaranov/go-openai"
)

const submitSummaryTool = "submit_summary"

// maxSummaryInput caps the presentation text sent to the model, in bytes.
const maxSummaryInput = 60000

// SummaryDraft is a summary document written by the model.
type SummaryDraft struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Summarizer drafts summary documents from presentation text using an LLM.
type Summarizer struct {
	client *openai.Client
	model  string
}

// NewSummarizer creates a summarizer. An empty baseURL uses the OpenAI endpoint.
func NewSummarizer(apiKey, model, baseURL string) *Summarizer {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4o
	}
	return &Summarizer{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// Summarize writes one summary covering the given presentations. The
// returned text is ready to be ingested as a summary document.
func (s *Summarizer) Summarize(ctx context.Context, language string, presentations []Document) (*SummaryDraft, error) {
	if len(presentations) == 0 {
		return nil, ErrEmptyCorpus
	}

	var prompt strings.Builder
	prompt.WriteString("Write a study summary of the following lecture presentations.\n\n")
	if language != "" {
		prompt.WriteString(fmt.Sprintf("Write the summary in %s.\n\n", language))
	}
	prompt.WriteString("Requirements:\n")
	prompt.WriteString("- Cover the key concepts, processes and relationships of every presentation\n")
	prompt.WriteString("- Use complete sentences, each ending with a period\n")
	prompt.WriteString("- Do not add facts that are not in the presentations\n\n")

	budget := maxSummaryInput
	for _, doc := range presentations {
		text := truncateUTF8(doc.FullText, budget)
		budget -= len(text)
		prompt.WriteString(fmt.Sprintf("=== %s ===\n%s\n\n", doc.ID, text))
		if budget <= 0 {
			VerboseLog("summary input truncated at %s", doc.ID)
			break
		}
	}
	prompt.WriteString("Return the summary using the submit_summary tool.")

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are a teaching assistant who writes accurate, well-structured study summaries of course material.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt.String(),
				},
			},
			Tools: []openai.Tool{
				{
					Type: openai.ToolTypeFunction,
					Function: &openai.FunctionDefinition{
						Name:        submitSummaryTool,
						Description: "Submit the study summary",
						Parameters: map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"title": map[string]interface{}{
									"type":        "string",
									"description": "Short title of the summary",
								},
								"body": map[string]interface{}{
									"type":        "string",
									"description": "The summary text",
								},
							},
							"required": []string{"title", "body"},
						},
					},
				},
			},
			ToolChoice: openai.ToolChoice{
				Type: openai.ToolTypeFunction,
				Function: openai.ToolFunction{
					Name: submitSummaryTool,
				},
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate summary: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("no response from LLM")
	}

	choice := resp.Choices[0]
	if len(choice.Message.ToolCalls) == 0 {
		return nil, errors.New("no tool calls in response")
	}

	toolCall := choice.Message.ToolCalls[0]
	if toolCall.Function.Name != submitSummaryTool {
		return nil, fmt.Errorf("unexpected tool call: %s", toolCall.Function.Name)
	}

	var draft SummaryDraft
	if err := json.Unmarshal([]byte(toolCall.Function.Arguments), &draft); err != nil {
		return nil, fmt.Errorf("failed to parse summary: %w", err)
	}
	if strings.TrimSpace(draft.Body) == "" {
		return nil, errors.New("model returned an empty summary")
	}
	return &draft, nil
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
