package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-1.5-flash-latest"

const geminiTimeout = 8 * time.Second

var systemInstruction = map[string]string{
	"vi": "Bạn là chuyên gia định giá xe hơi của hệ thống AutoPrestige. " +
		"Hãy trả lời ngắn gọn, thân thiện bằng tiếng Việt. " +
		"Không được tự bịa ra giá nếu không chắc chắn.",
	"en": "You are the car valuation expert of AutoPrestige. " +
		"Answer briefly and in a friendly tone, in English. " +
		"Never make up a price you are not confident about.",
}

// Gemini answers through the Gemini API and falls back to another responder
// when the call fails or returns no text.
type Gemini struct {
	client   *genai.Client
	model    string
	lang     string
	fallback Responder
	log      zerolog.Logger
	timeout  time.Duration
	generate func(ctx context.Context, message string) (*genai.GenerateContentResponse, error)
}

func NewGemini(ctx context.Context, apiKey, model, lang string, fallback Responder, log zerolog.Logger) (*Gemini, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: api key is empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	if _, ok := systemInstruction[lang]; !ok {
		lang = "vi"
	}
	g := &Gemini{client: client, model: model, lang: lang, fallback: fallback, log: log, timeout: geminiTimeout}
	g.generate = g.generateContent
	return g, nil
}

func (g *Gemini) Close() error { return g.client.Close() }

// Reply gives the API call an 8s budget; failures are logged and answered by
// the fallback under the caller's ctx.
func (g *Gemini) Reply(ctx context.Context, message string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	resp, err := g.generate(callCtx, message)
	cancel()
	if err == nil {
		if txt := replyText(resp); txt != "" {
			return txt, nil
		}
		err = fmt.Errorf("empty response")
	}
	g.log.Warn().Err(err).Str("model", g.model).Msg("gemini reply failed, using fallback")
	if g.fallback == nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	return g.fallback.Reply(ctx, message)
}

func (g *Gemini) generateContent(ctx context.Context, message string) (*genai.GenerateContentResponse, error) {
	model := g.client.GenerativeModel(g.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction[g.lang])},
	}
	return model.GenerateContent(ctx, genai.Text(message))
}

func replyText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(b.String())
}
