// Package validation rejects malformed input rows at the engine
// boundary, before they reach the graph, clustering, or risk pipelines.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// EdgeRecord is a raw cross-border spillover row as delivered by the
// upstream loader.
type EdgeRecord struct {
	SourceCountry string  `json:"source_country" validate:"required,min=1,max=200"`
	TargetCountry string  `json:"target_country" validate:"required,min=1,max=200"`
	Weight        float64 `json:"weight" validate:"gte=0"`
	SharedGroups  int     `json:"num_shared_groups" validate:"gte=0"`
	Intensity     float64 `json:"spillover_intensity_score" validate:"gte=0"`
}

// FeatureRecord is a raw per-group behavioral feature row.
type FeatureRecord struct {
	Group        string             `json:"primary_group" validate:"required,min=1,max=200"`
	TotalAttacks float64            `json:"total_attacks" validate:"gte=0"`
	Features     map[string]float64 `json:"features" validate:"omitempty,max=64"`
}

// YearlyRecord is a raw entity-year forecasting row.
type YearlyRecord struct {
	Name           string  `json:"name" validate:"required,min=1,max=200"`
	Year           int     `json:"year" validate:"gte=1970,lte=2100"`
	Momentum       float64 `json:"incidents_momentum"`
	Volatility     float64 `json:"incidents_volatility" validate:"gte=0"`
	PriorYearSpike float64 `json:"prior_year_spike"`
}

// ValidateEdgeRecord validates a spillover edge row
func ValidateEdgeRecord(rec *EdgeRecord) error {
	if rec == nil {
		return errors.New("edge record cannot be nil")
	}
	if err := validate.Struct(rec); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateEdgeRecords validates a batch, reporting the first offending
// row by index.
func ValidateEdgeRecords(recs []EdgeRecord) error {
	for i := range recs {
		if err := ValidateEdgeRecord(&recs[i]); err != nil {
			return fmt.Errorf("edge row %d: %w", i, err)
		}
	}
	return nil
}

// ValidateFeatureRecord validates a behavioral feature row
func ValidateFeatureRecord(rec *FeatureRecord) error {
	if rec == nil {
		return errors.New("feature record cannot be nil")
	}
	if err := validate.Struct(rec); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateFeatureRecords validates a batch, reporting the first
// offending row by index.
func ValidateFeatureRecords(recs []FeatureRecord) error {
	for i := range recs {
		if err := ValidateFeatureRecord(&recs[i]); err != nil {
			return fmt.Errorf("feature row %d: %w", i, err)
		}
	}
	return nil
}

// ValidateYearlyRecord validates a forecasting row
func ValidateYearlyRecord(rec *YearlyRecord) error {
	if rec == nil {
		return errors.New("yearly record cannot be nil")
	}
	if err := validate.Struct(rec); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateYearlyRecords validates a batch, reporting the first
// offending row by index.
func ValidateYearlyRecords(recs []YearlyRecord) error {
	for i := range recs {
		if err := ValidateYearlyRecord(&recs[i]); err != nil {
			return fmt.Errorf("yearly row %d: %w", i, err)
		}
	}
	return nil
}

// formatValidationError converts validator errors to a readable message
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	var messages []string
	for _, fieldErr := range validationErrors {
		switch fieldErr.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s: field is required", fieldErr.Field()))
		case "min":
			messages = append(messages, fmt.Sprintf("%s: below minimum %s", fieldErr.Field(), fieldErr.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s: exceeds maximum %s", fieldErr.Field(), fieldErr.Param()))
		case "gte":
			messages = append(messages, fmt.Sprintf("%s: must be >= %s", fieldErr.Field(), fieldErr.Param()))
		case "lte":
			messages = append(messages, fmt.Sprintf("%s: must be <= %s", fieldErr.Field(), fieldErr.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s: failed %s validation", fieldErr.Field(), fieldErr.Tag()))
		}
	}

	return errors.New(strings.Join(messages, "; "))
}
