package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/logging"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/model"
)

// FallbackInsight is returned whenever the generator cannot produce an insight.
const FallbackInsight = "This property shows solid investment potential based on the calculated metrics. " +
	"Consider your risk tolerance and investment timeline when choosing a strategy."

const insightSystemPrompt = "You are a real estate investment advisor with expertise in Italian property markets."

// Advisor writes the free-text market analysis attached to every stored analysis.
type Advisor struct {
	generator TextGenerator
	timeout   time.Duration
	logger    *logging.Logger
}

// New creates an Advisor. A nil logger discards output.
func New(generator TextGenerator, timeout time.Duration, logger *logging.Logger) *Advisor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Advisor{
		generator: generator,
		timeout:   timeout,
		logger:    logger.WithComponent("advisor"),
	}
}

// Insights returns a short narrative for the analysed property.
// It never fails: on any generator error or timeout FallbackInsight is returned.
func (a *Advisor) Insights(ctx context.Context, property model.PropertyAttributes, metrics model.InvestmentMetrics) string {
	text, err := CompleteWithTimeout(ctx, a.generator, a.timeout, insightSystemPrompt, BuildInsightPrompt(property, metrics))
	if err != nil {
		a.logger.WithContext(ctx).Warn("advisory insight unavailable, using fallback", "error", err)
		return FallbackInsight
	}
	return strings.TrimSpace(text)
}

// BuildInsightPrompt renders the structured financial summary sent to the generator.
func BuildInsightPrompt(property model.PropertyAttributes, metrics model.InvestmentMetrics) string {
	var sb strings.Builder

	sb.WriteString("Analyze this investment property and provide key insights:\n\n")
	fmt.Fprintf(&sb, "Property: %s\n", property.Title)
	fmt.Fprintf(&sb, "Location: %s\n", property.Location)
	fmt.Fprintf(&sb, "Price: €%s\n", humanize.Comma(int64(property.Price)))
	fmt.Fprintf(&sb, "Size: %s sqm\n", humanize.Ftoa(property.SizeSqm))
	fmt.Fprintf(&sb, "Type: %s\n", property.PropertyType)
	if property.RenovationNeeded {
		sb.WriteString("Condition: renovation needed\n")
	}

	sb.WriteString("\nMetrics:\n")
	fmt.Fprintf(&sb, "- Investment score: %d/10\n", metrics.InvestmentScore)
	fmt.Fprintf(&sb, "- 5-year ROI: %.1f%% to %.1f%%\n", metrics.ROIRangeMin, metrics.ROIRangeMax)
	fmt.Fprintf(&sb, "- Annual ROE: %.1f%% to %.1f%%\n", metrics.ROERangeMin, metrics.ROERangeMax)
	fmt.Fprintf(&sb, "- Annual net cash flow: €%s\n", humanize.Comma(int64(metrics.AnnualNetCashFlow)))
	fmt.Fprintf(&sb, "- Upfront capital required: €%s\n", humanize.Comma(int64(metrics.UpfrontTotal)))
	fmt.Fprintf(&sb, "- Appreciation: %.1f%%/year, projected 5-year value €%s\n",
		metrics.YoYAppreciation, humanize.Comma(int64(metrics.Projected5YrValue)))

	sb.WriteString("\nProvide a concise analysis (3-4 sentences) covering:\n")
	sb.WriteString("1. Market positioning\n")
	sb.WriteString("2. Investment viability\n")
	sb.WriteString("3. Key opportunities or risks\n")

	return sb.String()
}
