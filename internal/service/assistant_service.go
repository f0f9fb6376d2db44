package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rfxintake/internal/compliance"
	"rfxintake/internal/config"
	"rfxintake/internal/extract"
	"rfxintake/internal/model"
)

// AssistantService drives the scope-development chat. It calls the
// upstream OpenAI-compatible model when configured and falls back to
// the built-in parser on any failure, so the user always gets a reply.
type AssistantService struct {
	config *config.AIConfig
	client *http.Client
}

// NewAssistantService creates a new assistant service
func NewAssistantService() *AssistantService {
	cfg := config.DefaultAIConfig()
	return &AssistantService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// Chat handles one conversation turn: upstream call, secondary
// extraction pass over the reply, inline restrictive-language flags,
// and quick-reply chips derived from what the form still lacks.
func (s *AssistantService) Chat(ctx context.Context, userMessage string, form *model.IntakeForm, history []model.ChatMessage) (*model.AssistantReply, error) {
	contentType := extract.DetectContentType(userMessage)

	if !s.config.IsEnabled() {
		return s.fallbackReply(userMessage, form, contentType), nil
	}

	response, err := s.callChatModel(ctx, s.buildSystemPrompt(form, contentType), userMessage, history)
	if err != nil {
		return s.fallbackReply(userMessage, form, contentType), nil
	}

	reply := &model.AssistantReply{
		Response:        response,
		Suggestions:     quickReplies(form, response),
		ComplianceFlags: compliance.Scan(userMessage + " " + response),
	}

	if kind, ok := extract.KindForContentType(contentType); ok {
		reply.ExtractedItems = extract.Parse(response, kind)
	}

	return reply, nil
}

// ExtractFromMessage runs the parser directly over raw user text, the
// path used when the caller already knows which section is being
// discussed or when the upstream reply carried no structured items.
func (s *AssistantService) ExtractFromMessage(message string, kind model.ItemKind) extract.Result {
	return extract.ParseWithConfidence(message, kind)
}

// fallbackReply answers without the upstream model: parse the user's
// own text and either confirm what was found or coach them toward a
// parseable format.
func (s *AssistantService) fallbackReply(userMessage string, form *model.IntakeForm, contentType extract.ContentType) *model.AssistantReply {
	kind := model.KindDeliverable
	if k, ok := extract.KindForContentType(contentType); ok {
		kind = k
	}
	items := extract.Parse(userMessage, kind)
	flags := compliance.Scan(userMessage)

	suggestions := []string{"Define project timeline", "Set budget parameters", "Add evaluation criteria"}
	if len(flags) > 0 {
		suggestions = []string{"Revise language to be vendor-neutral", "Review procurement compliance", "Clarify requirements"}
	}

	var content strings.Builder
	if len(items) > 0 {
		fmt.Fprintf(&content, "I've identified %d item(s) from your message:\n\n", len(items))
		for i, item := range items {
			fmt.Fprintf(&content, "%d. %s\n", i+1, item.Name)
		}
		content.WriteString("\nWould you like me to add these to your form? You can review and modify them later.")
	} else {
		content.WriteString("To help extract specific items, try formatting them as:\n\n")
		content.WriteString("• Numbered list (1. Monthly reports, 2. Dashboard, etc.)\n")
		content.WriteString("• Bullet points (- Report, - Analysis, etc.)\n")
		content.WriteString("• Quoted items (\"Final report\", \"Training sessions\")\n\n")
		content.WriteString("Could you provide more specific details?")
	}

	return &model.AssistantReply{
		Response:        content.String(),
		Suggestions:     suggestions,
		ComplianceFlags: flags,
		ExtractedItems:  items,
		Fallback:        true,
	}
}

// callChatModel makes a request to the chat completions API
func (s *AssistantService) callChatModel(ctx context.Context, systemPrompt, userMessage string, history []model.ChatMessage) (string, error) {
	type chatMessage struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	messages := []chatMessage{{Role: "system", Content: systemPrompt}}
	// Last 10 turns for context.
	if len(history) > 10 {
		history = history[len(history)-10:]
	}
	for _, msg := range history {
		messages = append(messages, chatMessage{Role: msg.Role, Content: msg.Content})
	}
	messages = append(messages, chatMessage{Role: "user", Content: userMessage})

	reqBody := map[string]interface{}{
		"model":       s.config.ChatModel,
		"messages":    messages,
		"max_tokens":  s.config.MaxTokens,
		"temperature": s.config.Temperature,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.ChatEndpoint(), bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", err
	}
	if completion.Error != nil {
		return "", fmt.Errorf("chat model error: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("empty response from chat model")
	}

	return completion.Choices[0].Message.Content, nil
}

func (s *AssistantService) buildSystemPrompt(form *model.IntakeForm, contentType extract.ContentType) string {
	return fmt.Sprintf(`You are an AI assistant specialized in Canadian public sector procurement. Your role is to help users develop comprehensive and compliant RFx (Request for Proposals/Quotes) documents.

CORE RESPONSIBILITIES:
1. Guide users through procurement scope development
2. Ensure compliance with Canadian procurement regulations (CFTA, CETA, CPTPP, etc.)
3. Help identify potential restrictive language or practices
4. Suggest appropriate evaluation criteria and methodologies
5. Provide guidance on budget and timeline considerations

COMPLIANCE FOCUS:
- Flag potentially restrictive requirements that may favor specific vendors
- Ensure openness, fairness, and transparency in procurement practices
- Identify trade agreement thresholds and obligations

CURRENT FORM DATA CONTEXT:
Background: %s
Commodity Type: %s
Deliverables: %d items defined
Requirements: %d mandatory, %d rated criteria

%s

Respond in a helpful, professional manner. If you identify compliance concerns, clearly explain them and suggest alternatives. Keep responses concise but comprehensive.`,
		orDefault(form.Background, "Not provided"),
		orDefault(form.CommodityType, "Not specified"),
		len(form.Deliverables),
		len(form.Requirements.Mandatory),
		len(form.Requirements.Rated),
		structuredOutputPrompt(contentType))
}

// structuredOutputPrompt asks the model to format section suggestions
// as numbered items with bold titles so the parser's primary strategy
// picks them up.
func structuredOutputPrompt(contentType extract.ContentType) string {
	switch contentType {
	case extract.ContentDeliverables:
		return `DELIVERABLES REQUEST DETECTED: Format each deliverable as a numbered item with a bold title ("1. **Title**") followed by a detailed description of what will be delivered.`
	case extract.ContentMandatory:
		return `MANDATORY CRITERIA REQUEST DETECTED: Format each pass/fail requirement as a numbered item with a bold title followed by a description of what must be met.`
	case extract.ContentRated:
		return `RATED CRITERIA REQUEST DETECTED: Format each evaluation criterion as a numbered item with a bold title, a description of what will be evaluated, and suggested weight/scoring information where appropriate.`
	default:
		return ""
	}
}

// quickReplies builds the suggestion chips shown under the reply,
// pointing at whatever the form still lacks.
func quickReplies(form *model.IntakeForm, aiResponse string) []string {
	var chips []string
	lower := strings.ToLower(aiResponse)

	if form.Background == "" {
		chips = append(chips, "Provide more project background details")
	}
	if form.CommodityType == "" {
		chips = append(chips, "Specify the commodity or service type")
	}
	if len(form.Deliverables) == 0 {
		chips = append(chips, "Define specific deliverables")
	}
	if len(form.Requirements.Mandatory) == 0 {
		chips = append(chips, "Add mandatory evaluation criteria")
	}
	if strings.Contains(lower, "budget") || strings.Contains(lower, "cost") {
		chips = append(chips, "Discuss budget considerations")
	}
	if strings.Contains(lower, "timeline") || strings.Contains(lower, "schedule") {
		chips = append(chips, "Define project timeline")
	}

	return chips
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
