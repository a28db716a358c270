package risk

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/medcore-io/appointment-service/internal/domain"
)

func TestHeuristicEstimator(t *testing.T) {
	estimator := NewHeuristicEstimator()
	cases := []struct {
		name     string
		features Features
		want     domain.RiskFlag
	}{
		{"weekday afternoon", Features{HourOfDay: 14, DayOfWeek: time.Thursday}, domain.RiskFlagLow},
		{"prior missed visit", Features{PriorMissed: true, HourOfDay: 14, DayOfWeek: time.Thursday}, domain.RiskFlagHigh},
		{"early saturday", Features{HourOfDay: 8, DayOfWeek: time.Saturday}, domain.RiskFlagHigh},
		{"early weekday", Features{HourOfDay: 8, DayOfWeek: time.Tuesday}, domain.RiskFlagLow},
		{"sunday afternoon", Features{HourOfDay: 15, DayOfWeek: time.Sunday}, domain.RiskFlagLow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			flag, err := estimator.Estimate(context.Background(), tc.features)
			if err != nil {
				t.Fatalf("estimate: %v", err)
			}
			if flag != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, flag)
			}
		})
	}
}

func TestFeaturesFromTime(t *testing.T) {
	slot := time.Date(2025, 11, 20, 14, 30, 0, 0, time.UTC) // a Thursday
	features := FeaturesFromTime(slot, true)
	if !features.PriorMissed {
		t.Fatal("expected prior missed carried through")
	}
	if features.HourOfDay != 14 {
		t.Fatalf("expected hour 14, got %d", features.HourOfDay)
	}
	if features.DayOfWeek != time.Thursday {
		t.Fatalf("expected Thursday, got %v", features.DayOfWeek)
	}
}

type slowEstimator struct {
	delay time.Duration
}

func (s slowEstimator) Estimate(ctx context.Context, _ Features) (domain.RiskFlag, error) {
	select {
	case <-ctx.Done():
		return domain.RiskFlagUnknown, ctx.Err()
	case <-time.After(s.delay):
		return domain.RiskFlagLow, nil
	}
}

type erroringEstimator struct{}

func (erroringEstimator) Estimate(context.Context, Features) (domain.RiskFlag, error) {
	return "", errors.New("scoring backend down")
}

func TestBoundedEstimator_TimeoutDegradesToUnknown(t *testing.T) {
	bounded := NewBoundedEstimator(slowEstimator{delay: time.Second}, 10*time.Millisecond)
	flag, err := bounded.Estimate(context.Background(), Features{})
	if err != nil {
		t.Fatalf("expected no error on timeout, got %v", err)
	}
	if flag != domain.RiskFlagUnknown {
		t.Fatalf("expected unknown, got %q", flag)
	}
}

func TestBoundedEstimator_ErrorDegradesToUnknown(t *testing.T) {
	bounded := NewBoundedEstimator(erroringEstimator{}, time.Second)
	flag, err := bounded.Estimate(context.Background(), Features{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if flag != domain.RiskFlagUnknown {
		t.Fatalf("expected unknown, got %q", flag)
	}
}

func TestBoundedEstimator_PassesThroughInnerResult(t *testing.T) {
	bounded := NewBoundedEstimator(NewHeuristicEstimator(), time.Second)
	flag, err := bounded.Estimate(context.Background(), Features{PriorMissed: true})
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if flag != domain.RiskFlagHigh {
		t.Fatalf("expected high, got %q", flag)
	}
}

func TestBoundedEstimator_NilInner(t *testing.T) {
	bounded := NewBoundedEstimator(nil, time.Second)
	flag, err := bounded.Estimate(context.Background(), Features{})
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if flag != domain.RiskFlagUnknown {
		t.Fatalf("expected unknown, got %q", flag)
	}
}
