package insight

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/crolens/cro-report/internal/report"
)

const maxNarrativeTokens = 2048

// Narrator produces the free-text analysis for a set of site metrics.
type Narrator interface {
	Narrate(ctx context.Context, data report.SiteData) (string, error)
}

// OpenAINarrator implements Narrator with a chat completion model.
type OpenAINarrator struct {
	client *openai.Client
	model  string
}

// NewOpenAINarrator creates a Narrator using the given API key and model.
// An empty model falls back to gpt-4o-mini.
func NewOpenAINarrator(apiKey, model string) *OpenAINarrator {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAINarrator{client: openai.NewClient(apiKey), model: model}
}

// Narrate generates the detailed CRO analysis text.
func (n *OpenAINarrator) Narrate(ctx context.Context, data report.SiteData) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:     n.model,
		MaxTokens: maxNarrativeTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(data)},
		},
	}

	resp, err := n.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("insight: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("insight: chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

const systemPrompt = `Act as a senior conversion rate optimization specialist with 15 years of experience in user experience design and business strategy. Conduct a functional analysis of the website focusing on user journey, content effectiveness, and business impact across these domains:

1. User Experience & Journey: first impression and value proposition clarity, navigation intuitiveness, mobile experience, form usability, trust elements.
2. Content Effectiveness: message clarity, content structure and scannability, call-to-action effectiveness, value proposition communication.
3. Visual Design & Hierarchy: visual appeal and brand consistency, information hierarchy, whitespace, color psychology, visual guidance of attention.
4. Conversion Optimization: lead generation effectiveness, conversion path efficiency, exit intent strategies, personalization and A/B test opportunities.
5. Business Alignment: alignment with business objectives, revenue generation effectiveness, customer retention elements, customer journey mapping.

Provide a comprehensive report with specific functional recommendations for improvement, focusing on user experience, content effectiveness, and business impact.`

// userPrompt serializes the extracted metrics for the model.
func userPrompt(d report.SiteData) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Here is some information about the website %s:\n", d.URL)
	fmt.Fprintf(&sb, "Title: %s\n", d.Title)
	fmt.Fprintf(&sb, "Meta Description: %s\n", d.MetaDescription)
	fmt.Fprintf(&sb, "Word Count: %d\n", d.WordCount)
	fmt.Fprintf(&sb, "Number of Images: %d\n", d.ImageCount)
	fmt.Fprintf(&sb, "Alt Text Coverage: %.1f%%\n", d.AltTextCoverage)
	fmt.Fprintf(&sb, "Number of Links: %d\n", d.LinkCount)
	fmt.Fprintf(&sb, "Number of CTA Links: %d\n", d.CTACount)
	fmt.Fprintf(&sb, "Number of Forms: %d\n", d.FormCount)
	fmt.Fprintf(&sb, "H1 Tags Count: %d\n", d.H1Count)
	return sb.String()
}
