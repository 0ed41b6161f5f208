// Package engine implements the property investment calculation: financing costs,
// rent estimation, cash flow, return ranges, the investment score and the four
// strategy recommendations.
//
// The engine holds no mutable state. One Engine can serve any number of
// concurrent analyses; the only blocking step is the rent-estimate call to the
// advisory text generator, which is bounded by a timeout and never retried.
package engine

import (
	"context"
	"time"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/advisor"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/logging"
	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/model"
)

// Engine runs property analyses.
type Engine struct {
	generator advisor.TextGenerator
	timeout   time.Duration
	logger    *logging.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithTimeout bounds each rent-estimate call.
func WithTimeout(timeout time.Duration) Option {
	return func(e *Engine) {
		if timeout > 0 {
			e.timeout = timeout
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Engine. A nil generator makes every rent estimate use the fallback ratios.
func New(generator advisor.TextGenerator, opts ...Option) *Engine {
	e := &Engine{
		generator: generator,
		timeout:   advisor.DefaultTimeout,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.WithComponent("engine")
	return e
}

// ComputeAnalysis runs the full pipeline for one property.
//
// The only error is an invalid financing configuration (wrapping
// apperrors.ErrInvalidConfiguration). Estimator failures degrade to the fallback
// estimate and are never returned. Price and size must be positive.
func (e *Engine) ComputeAnalysis(ctx context.Context, property model.PropertyAttributes, financing model.FinancingConfig) (model.InvestmentMetrics, []model.Strategy, error) {
	fin, err := ComputeFinancing(property.Price, financing)
	if err != nil {
		return model.InvestmentMetrics{}, nil, err
	}

	rent := e.EstimateRent(ctx, property, fin.UpfrontTotal, fin.AnnualCosts)
	metrics, rent := e.resolveMetrics(ctx, property.Price, fin, rent)
	strategies := GenerateStrategies(property, metrics)

	e.logger.WithContext(ctx).Debug("analysis computed",
		"price", property.Price,
		"rent_source", rent.Source,
		"investment_score", metrics.InvestmentScore,
		"annual_net_cashflow", metrics.AnnualNetCashFlow,
	)

	return metrics, strategies, nil
}

// resolveMetrics runs the return calculator on rent. If any resulting figure is not finite
// the advisory estimate is discarded and the metrics are recomputed from the fallback ratios.
func (e *Engine) resolveMetrics(ctx context.Context, price float64, fin Financing, rent model.RentEstimate) (model.InvestmentMetrics, model.RentEstimate) {
	metrics := metricsFor(price, fin, rent)
	if MetricsFinite(metrics) || rent.Source == model.RentEstimateFromFallback {
		return metrics, rent
	}

	e.logger.WithContext(ctx).Warn("rent estimate produced non-finite metrics, using fallback ratios")
	rent = FallbackRentEstimate(price)
	return metricsFor(price, fin, rent), rent
}

func metricsFor(price float64, fin Financing, rent model.RentEstimate) model.InvestmentMetrics {
	return CalculateReturns(ReturnInputs{
		Price:     price,
		Financing: fin,
		Rent:      rent,
		CashFlow:  ProjectCashFlow(rent.MonthlyRentConservative, rent.MonthlyRentOptimistic, fin.AnnualCosts),
	})
}

// EstimateRent asks the advisory generator for rent and valuation figures.
// It never fails: any error, timeout or malformed reply yields FallbackRentEstimate.
func (e *Engine) EstimateRent(ctx context.Context, property model.PropertyAttributes, upfrontTotal, annualCosts float64) model.RentEstimate {
	prompt := BuildRentPrompt(property, upfrontTotal, annualCosts)

	text, err := advisor.CompleteWithTimeout(ctx, e.generator, e.timeout, RentSystemPrompt, prompt)
	if err != nil {
		e.logger.WithContext(ctx).Warn("rent estimate unavailable, using fallback ratios", "error", err)
		return FallbackRentEstimate(property.Price)
	}

	estimate, err := ParseRentResponse(text, property.Price)
	if err != nil {
		e.logger.WithContext(ctx).Warn("rent estimate unparseable, using fallback ratios", "error", err)
		return FallbackRentEstimate(property.Price)
	}

	return estimate
}
