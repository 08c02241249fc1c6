package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"proptech-analytics/models"
	"proptech-analytics/utils"
)

const (
	MethodModel       = "ML Model"
	MethodStatistical = "Statistical Analysis"
)

// Predictor is an external ROI model. Price is in rupees.
type Predictor interface {
	Predict(ctx context.Context, locality string, price float64) (float64, error)
}

// ROIProvider produces an ROI estimate for a locality and a price in lakh.
// Returning any error, ErrNoEstimate included, hands over to the next provider.
type ROIProvider struct {
	Name     string
	Method   string
	Estimate func(ctx context.Context, locality string, priceLakh float64) (float64, error)
}

// ROIService estimates gross rental yield by trying providers in order.
type ROIService struct {
	stats     *StatsService
	providers []ROIProvider
	logger    *utils.Logger
}

// NewROIService builds the chain: the predictor when one is given, then the
// locality's summary average, then the mean over matching merged rows.
func NewROIService(stats *StatsService, predictor Predictor, logger *utils.Logger) *ROIService {
	s := &ROIService{stats: stats, logger: logger}
	if predictor != nil {
		s.providers = append(s.providers, ModelProvider(predictor))
	}
	s.providers = append(s.providers, SummaryProvider(stats), MergedRowsProvider(stats))
	return s
}

// Providers returns the provider names in the order they are tried.
func (s *ROIService) Providers() []string {
	names := make([]string, len(s.providers))
	for i, p := range s.providers {
		names[i] = p.Name
	}
	return names
}

// Estimate returns the first successful provider's answer. Provider failures
// are logged and never returned; only a locality no provider can serve is
// reported, as a LocalityNotFoundError.
func (s *ROIService) Estimate(ctx context.Context, locality string, priceLakh float64) (*models.ROIEstimate, error) {
	if strings.TrimSpace(locality) == "" {
		return nil, invalidInput("locality", "is required")
	}
	if !(priceLakh > 0) || math.IsInf(priceLakh, 0) {
		return nil, invalidInput("price", "must be a positive amount in lakh")
	}

	for _, p := range s.providers {
		roi, err := s.try(ctx, p, locality, priceLakh)
		if err != nil {
			if !errors.Is(err, ErrNoEstimate) {
				s.logger.Warn("[roi] Provider %s failed for %q: %v", p.Name, locality, err)
			}
			continue
		}

		est := &models.ROIEstimate{
			Locality:     DisplayName(Normalize(locality)),
			Price:        priceLakh,
			PredictedROI: utils.Round2(roi),
			Method:       p.Method,
		}
		if hist, ok := s.stats.GetStats(locality); ok {
			est.Historical = hist
			est.Locality = DisplayName(hist.Locality)
		}
		return est, nil
	}

	return nil, s.stats.NotFound(locality)
}

// try runs one provider, turning panics and non-finite answers into errors.
func (s *ROIService) try(ctx context.Context, p ROIProvider, locality string, priceLakh float64) (roi float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider panicked: %v", r)
		}
	}()

	roi, err = p.Estimate(ctx, locality, priceLakh)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(roi) || math.IsInf(roi, 0) || roi < 0 {
		return 0, fmt.Errorf("implausible roi %v", roi)
	}
	return roi, nil
}

// ModelProvider asks the external predictor, passing the price in rupees.
func ModelProvider(predictor Predictor) ROIProvider {
	return ROIProvider{
		Name:   "model",
		Method: MethodModel,
		Estimate: func(ctx context.Context, locality string, priceLakh float64) (float64, error) {
			return predictor.Predict(ctx, Normalize(locality), priceLakh*LakhToRupees)
		},
	}
}

// SummaryProvider answers with the locality's average ROI.
func SummaryProvider(stats *StatsService) ROIProvider {
	return ROIProvider{
		Name:   "summary",
		Method: MethodStatistical,
		Estimate: func(_ context.Context, locality string, _ float64) (float64, error) {
			rec, ok := stats.GetStats(locality)
			if !ok {
				return 0, ErrNoEstimate
			}
			return rec.AvgROI, nil
		},
	}
}

// MergedRowsProvider averages ROI over merged rows whose locality contains
// the query. It never fails other than with ErrNoEstimate.
func MergedRowsProvider(stats *StatsService) ROIProvider {
	return ROIProvider{
		Name:   "merged-rows",
		Method: MethodStatistical,
		Estimate: func(_ context.Context, locality string, _ float64) (float64, error) {
			q := Normalize(locality)
			if q == "" {
				return 0, ErrNoEstimate
			}
			var sum float64
			var n int
			for _, r := range stats.Table().Merged {
				if strings.Contains(r.Locality, q) {
					sum += r.ROI
					n++
				}
			}
			if n == 0 {
				return 0, ErrNoEstimate
			}
			return sum / float64(n), nil
		},
	}
}
