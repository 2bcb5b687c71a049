// Package llm is the alternative extraction path: the whole PDF goes to a
// generative model that returns structured shifts. There is no local
// time-range parsing here; only the output shape is enforced.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"escala/internal"
)

type Analyzer struct {
	APIKey string
	Model  string
	Goal   float64
}

func NewAnalyzer(apiKey, model string, goalHours float64) *Analyzer {
	return &Analyzer{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
		Goal:   goalHours,
	}
}

const systemPrompt = `Você é um extrator de escalas de serviço da Polícia Militar de Minas Gerais (PMMG).
Identifique todos os turnos de serviço do militar indicado. O militar pode aparecer
por nome completo ou nome de guerra. Para cada turno calcule a duração em horas;
se o turno termina no dia seguinte, considere a virada de dia no cálculo.
Responda estritamente em JSON no formato pedido, sem texto adicional.`

func (a *Analyzer) AnalyzeRosterPDF(ctx context.Context, pdfData []byte, personName string) (internal.AnalysisSummary, error) {
	if a.APIKey == "" {
		return internal.AnalysisSummary{}, errors.New("GEMINI_API_KEY is empty")
	}

	cl, err := genai.NewClient(ctx, option.WithAPIKey(a.APIKey))
	if err != nil {
		return internal.AnalysisSummary{}, err
	}
	defer cl.Close()

	m := cl.GenerativeModel(a.Model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
	}
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}

	prompt := fmt.Sprintf(`Extraia os turnos do militar chamado %q desta escala.
Retorne um objeto JSON: {"personName": string, "shifts": [{"date": "YYYY-MM-DD",
"startTime": "HH:MM", "endTime": "HH:MM", "description": string opcional,
"hoursWorked": number}]}.`, personName)

	resp, err := m.GenerateContent(ctx,
		genai.Blob{MIMEType: "application/pdf", Data: pdfData},
		genai.Text(prompt),
	)
	if err != nil {
		return internal.AnalysisSummary{}, fmt.Errorf("gemini: %w", err)
	}

	raw, err := responseText(resp)
	if err != nil {
		return internal.AnalysisSummary{}, err
	}
	if err := validateAnalysisJSON([]byte(raw)); err != nil {
		return internal.AnalysisSummary{}, err
	}

	var parsed struct {
		PersonName string              `json:"personName"`
		Shifts     []internal.LLMShift `json:"shifts"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return internal.AnalysisSummary{}, fmt.Errorf("decode model output: %w", err)
	}

	total := 0.0
	for _, s := range parsed.Shifts {
		total += s.HoursWorked
	}

	return internal.AnalysisSummary{
		PersonName:  parsed.PersonName,
		Shifts:      parsed.Shifts,
		TotalHours:  total,
		MonthlyGoal: a.Goal,
		Balance:     total - a.Goal,
	}, nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini: empty response")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", errors.New("gemini: no text in response")
	}
	return out, nil
}

func ptrFloat32(v float32) *float32 { return &v }
