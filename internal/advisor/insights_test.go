package advisor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/apperrors"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/model"
)

type stubGenerator struct {
	text   string
	err    error
	delay  time.Duration
	system string
	user   string
}

func (s *stubGenerator) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	s.system, s.user = systemPrompt, userPrompt
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.text, s.err
}

func sampleInputs() (model.PropertyAttributes, model.InvestmentMetrics) {
	return model.PropertyAttributes{
			Title:        "Villa sul lago",
			Location:     "Como",
			Price:        450000,
			PropertyType: model.PropertyTypeVilla,
			SizeSqm:      180,
		}, model.InvestmentMetrics{
			InvestmentScore:   7,
			ROIRangeMin:       18.2,
			ROIRangeMax:       31.5,
			AnnualNetCashFlow: 4200,
			UpfrontTotal:      115500,
		}
}

func TestAdvisor_Insights(t *testing.T) {
	ctx := context.Background()
	property, metrics := sampleInputs()

	t.Run("returns trimmed generator text", func(t *testing.T) {
		gen := &stubGenerator{text: "  Strong lakeside demand.\n"}
		a := New(gen, time.Second, nil)

		got := a.Insights(ctx, property, metrics)

		assert.Equal(t, "Strong lakeside demand.", got)
		assert.Equal(t, insightSystemPrompt, gen.system)
		assert.Contains(t, gen.user, "Villa sul lago")
		assert.Contains(t, gen.user, "€450,000")
		assert.Contains(t, gen.user, "18.2% to 31.5%")
	})

	t.Run("falls back on error", func(t *testing.T) {
		a := New(&stubGenerator{err: errors.New("quota exceeded")}, time.Second, nil)

		assert.Equal(t, FallbackInsight, a.Insights(ctx, property, metrics))
	})

	t.Run("falls back without generator", func(t *testing.T) {
		assert.Equal(t, FallbackInsight, New(nil, time.Second, nil).Insights(ctx, property, metrics))
		assert.Equal(t, FallbackInsight, New(Unavailable{}, time.Second, nil).Insights(ctx, property, metrics))
	})

	t.Run("falls back on timeout", func(t *testing.T) {
		a := New(&stubGenerator{text: "late", delay: time.Second}, 10*time.Millisecond, nil)

		assert.Equal(t, FallbackInsight, a.Insights(ctx, property, metrics))
	})
}

func TestCompleteWithTimeout(t *testing.T) {
	ctx := context.Background()

	_, err := CompleteWithTimeout(ctx, nil, time.Second, "", "prompt")
	assert.ErrorIs(t, err, apperrors.ErrGeneratorUnavailable)

	_, err = CompleteWithTimeout(ctx, &stubGenerator{text: "\n\t"}, time.Second, "", "prompt")
	assert.ErrorIs(t, err, apperrors.ErrEmptyAdvisorResponse)

	text, err := CompleteWithTimeout(ctx, &stubGenerator{text: "ok"}, 0, "", "prompt")
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
}

func TestExtractText(t *testing.T) {
	t.Run("joins text parts of first candidate", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{{Text: "{\"a\":"}, nil, {Text: "1}"}}},
			}},
		}

		text, err := extractText(resp)
		require.NoError(t, err)
		assert.Equal(t, "{\"a\":1}", text)
	})

	t.Run("empty response", func(t *testing.T) {
		_, err := extractText(&genai.GenerateContentResponse{})
		assert.ErrorIs(t, err, apperrors.ErrEmptyAdvisorResponse)

		_, err = extractText(nil)
		assert.ErrorIs(t, err, apperrors.ErrEmptyAdvisorResponse)
	})
}
