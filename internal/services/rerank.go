package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/dailylit-backend/internal/clients/gemini"
	types "github.com/yungbote/dailylit-backend/internal/domain"
	"github.com/yungbote/dailylit-backend/internal/pkg/logger"
)

// neutralScore is what every candidate falls back to when the model call or
// its output parsing fails, and what under-returned candidates default to.
const neutralScore = 0.5

const summaryTruncateRunes = 200

// RerankError carries a rerank failure across internal layers. Score converts
// it to the neutral fallback; nothing above ever sees it.
type RerankError struct {
	Op  string
	Err error
}

func (e *RerankError) Error() string { return fmt.Sprintf("rerank %s: %v", e.Op, e.Err) }
func (e *RerankError) Unwrap() error { return e.Err }

type RerankService interface {
	// Score asks the model to rate each candidate against the user's
	// preference summary. Every candidate is guaranteed a score in [0,1];
	// failures degrade to the neutral midpoint rather than erroring.
	Score(ctx context.Context, preferenceSummary string, candidates []*types.Work) map[uuid.UUID]float64
}

type rerankService struct {
	log    *logger.Logger
	client gemini.Client
}

func NewRerankService(log *logger.Logger, client gemini.Client) RerankService {
	return &rerankService{
		log:    log.With("service", "RerankService"),
		client: client,
	}
}

func (s *rerankService) Score(ctx context.Context, preferenceSummary string, candidates []*types.Work) map[uuid.UUID]float64 {
	if len(candidates) == 0 {
		return map[uuid.UUID]float64{}
	}

	scores, rerankErr := s.scoreOnce(ctx, preferenceSummary, candidates)
	if rerankErr != nil {
		s.log.Warn("Rerank failed, falling back to neutral scores", "candidates", len(candidates), "error", rerankErr.Error())
		scores = map[uuid.UUID]float64{}
	}

	out := make(map[uuid.UUID]float64, len(candidates))
	for _, w := range candidates {
		score, ok := scores[w.ID]
		if !ok {
			score = neutralScore
		}
		out[w.ID] = clamp01(score)
	}
	return out
}

func (s *rerankService) scoreOnce(ctx context.Context, preferenceSummary string, candidates []*types.Work) (map[uuid.UUID]float64, *RerankError) {
	raw, err := s.client.GenerateContent(ctx, buildRerankPrompt(preferenceSummary, candidates))
	if err != nil {
		return nil, &RerankError{Op: "generate", Err: err}
	}

	jsonText, ok := extractJSONObject(raw)
	if !ok {
		return nil, &RerankError{Op: "parse", Err: fmt.Errorf("no JSON object in model output: %q", truncateRunes(raw, 120))}
	}

	var byID map[string]float64
	if err := json.Unmarshal([]byte(jsonText), &byID); err != nil {
		return nil, &RerankError{Op: "parse", Err: err}
	}

	out := make(map[uuid.UUID]float64, len(byID))
	for key, score := range byID {
		id, err := uuid.Parse(strings.TrimSpace(key))
		if err != nil {
			s.log.Debug("Ignoring unparsable work id in rerank output", "key", key)
			continue
		}
		out[id] = score
	}
	return out, nil
}

func buildRerankPrompt(preferenceSummary string, candidates []*types.Work) string {
	var works strings.Builder
	for i, w := range candidates {
		fmt.Fprintf(&works, "%d. ID: %s | %s by %s | %s\n", i+1, w.ID, w.Title, w.Author, w.Category)
		if w.Summary != "" {
			fmt.Fprintf(&works, "   Summary: %s\n", truncateRunes(w.Summary, summaryTruncateRunes))
		}
		works.WriteString("\n")
	}

	return fmt.Sprintf(`Only respond with JSON. Do not add any extra text.
You are an expert literary recommendation engine.

User's Reading Preferences:
%s

Based on these preferences, rate how well each work would match this user's taste.
Consider genre preferences, themes, writing style, difficulty level, and personal interests.

Rate each work from 0.0 (terrible match) to 1.0 (perfect match).

Works to evaluate:
%s
Respond with JSON format: {"work_id": confidence_score}
Example: {"4f2d...": 0.85, "91ab...": 0.62}`, preferenceSummary, works.String())
}

// extractJSONObject slices from the first '{' to the last '}' so that
// markdown-fenced or prose-wrapped model output still parses.
func extractJSONObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
