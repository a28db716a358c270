package risk

import (
	"context"
	"time"

	"github.com/medcore-io/appointment-service/internal/domain"
)

// Features are the inputs derived from the booking request.
type Features struct {
	PriorMissed bool
	HourOfDay   int
	DayOfWeek   time.Weekday
}

// Estimator scores no-show risk for a booking. Implementations may call out
// to an external model; the result is advisory and never blocks a booking.
type Estimator interface {
	Estimate(ctx context.Context, features Features) (domain.RiskFlag, error)
}

// FeaturesFromTime derives estimator inputs from the slot time.
func FeaturesFromTime(t time.Time, priorMissed bool) Features {
	return Features{
		PriorMissed: priorMissed,
		HourOfDay:   t.Hour(),
		DayOfWeek:   t.Weekday(),
	}
}

// HeuristicEstimator is a stand-in for the external scoring model: patients
// with a missed visit on record, or slots in the early morning, score high.
type HeuristicEstimator struct{}

// NewHeuristicEstimator builds the estimator.
func NewHeuristicEstimator() *HeuristicEstimator {
	return &HeuristicEstimator{}
}

// Estimate scores the features.
func (e *HeuristicEstimator) Estimate(ctx context.Context, features Features) (domain.RiskFlag, error) {
	select {
	case <-ctx.Done():
		return domain.RiskFlagUnknown, ctx.Err()
	default:
	}
	if features.PriorMissed {
		return domain.RiskFlagHigh, nil
	}
	if features.HourOfDay < 9 && (features.DayOfWeek == time.Saturday || features.DayOfWeek == time.Sunday) {
		return domain.RiskFlagHigh, nil
	}
	return domain.RiskFlagLow, nil
}

// BoundedEstimator wraps another estimator with a call budget. On timeout or
// estimator failure the flag degrades to unknown instead of failing the
// booking.
type BoundedEstimator struct {
	inner   Estimator
	timeout time.Duration
}

// NewBoundedEstimator wraps inner with the given timeout.
func NewBoundedEstimator(inner Estimator, timeout time.Duration) *BoundedEstimator {
	if timeout <= 0 {
		timeout = 500 * time.Millisecond
	}
	return &BoundedEstimator{inner: inner, timeout: timeout}
}

// Estimate runs the inner estimator within the budget.
func (b *BoundedEstimator) Estimate(ctx context.Context, features Features) (domain.RiskFlag, error) {
	if b.inner == nil {
		return domain.RiskFlagUnknown, nil
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	type result struct {
		flag domain.RiskFlag
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		flag, err := b.inner.Estimate(ctx, features)
		ch <- result{flag: flag, err: err}
	}()

	select {
	case <-ctx.Done():
		return domain.RiskFlagUnknown, nil
	case res := <-ch:
		if res.err != nil {
			return domain.RiskFlagUnknown, nil
		}
		return res.flag, nil
	}
}
