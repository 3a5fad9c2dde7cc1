package compare

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/your-org/sentinel/internal/config"
	"github.com/your-org/sentinel/internal/observability"
	"github.com/your-org/sentinel/internal/vision"
)

// GeminiRanker asks a generative text endpoint to pick the reference image
// best matching a probe, replying with a bare integer index. It is a thin,
// best-effort client of an opaque remote service, not a recognition engine:
// any failure ends in an explicit no-match, never a guess.
type GeminiRanker struct {
	client        *genai.Client
	model         string
	timeout       time.Duration
	maxCandidates int
}

func NewGeminiRanker(ctx context.Context, cfg config.CompareConfig) (*GeminiRanker, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("compare api key not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiRanker{
		client:        client,
		model:         cfg.Model,
		timeout:       cfg.Timeout,
		maxCandidates: cfg.MaxCandidates,
	}, nil
}

const rankPrompt = `You are given a probe photo followed by %d numbered reference photos (0-based, in order).
Reply with ONLY the number of the reference photo showing the same person as the probe.
If none of them shows the same person, reply with -1. Reply with a bare integer and nothing else.`

// Rank sends one request carrying the prompt, the probe, and every candidate
// image, and parses the returned index. A nil Match means no-match.
func (r *GeminiRanker) Rank(ctx context.Context, probe []byte, candidates []vision.Candidate) (*vision.Match, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	if len(candidates) > r.maxCandidates {
		candidates = candidates[:r.maxCandidates]
	}

	parts := []*genai.Part{
		{Text: fmt.Sprintf(rankPrompt, len(candidates))},
		{InlineData: &genai.Blob{Data: probe, MIMEType: "image/jpeg"}},
	}

	sent := make([]int, 0, len(candidates))
	for i, cand := range candidates {
		mime, data, err := decodeDataURI(cand.PhotoData)
		if err != nil {
			// Initials-fallback records carry no image; skip them.
			continue
		}
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{Data: data, MIMEType: mime}})
		sent = append(sent, i)
	}
	if len(sent) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	result, err := r.client.Models.GenerateContent(ctx, r.model,
		[]*genai.Content{{Role: "user", Parts: parts}}, nil)
	observability.CompareDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("gemini API error: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return nil, errors.New("empty response from gemini")
	}

	idx, err := parseIndex(text, len(sent))
	if errors.Is(err, errNoMatchReply) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	orig := sent[idx]
	return &vision.Match{
		Index: orig,
		RefID: candidates[orig].RefID,
		Name:  candidates[orig].Name,
	}, nil
}
