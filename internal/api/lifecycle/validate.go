package lifecycle

import (
	"database/sql"
	"fmt"

	"github.com/wryteup/jobboard-be/internal/api/domain"
	"github.com/wryteup/jobboard-be/internal/api/model"
)

const (
	minTitleLen       = 5
	minDescriptionLen = 100
)

// validateJobFields applies the field rules shared by create and save,
// accumulating failures into errs. Rate floors are read from the resolved
// category; a nil category skips the floor checks (the category rule itself
// is reported by the caller).
func validateJobFields(in JobInput, category *model.Category, errs domain.FieldErrors) {
	if len(in.Title) < minTitleLen {
		errs["title"] = fmt.Sprintf("title is required and must be at least %d characters", minTitleLen)
	}

	if len(in.Description) < minDescriptionLen {
		errs["description"] = fmt.Sprintf("description is required and must be at least %d characters", minDescriptionLen)
	}

	switch {
	case in.Rate == nil:
		errs["rate"] = "rate is required"
	case category != nil && *in.Rate < category.MinRate:
		errs["rate"] = fmt.Sprintf("rate must be at least %g for this category", category.MinRate)
	}

	// Expedited delivery is an optional add-on: the pair of expedite fields
	// must come together, and only on top of a base rate.
	switch {
	case in.ExpediteRate == nil:
	case in.Rate == nil:
		errs["expeditate_rate"] = "expedite rate requires a base rate"
	case category != nil && *in.ExpediteRate < category.MinExpediteRate:
		errs["expeditate_rate"] = fmt.Sprintf("expedite rate must be at least %g for this category", category.MinExpediteRate)
	}

	switch {
	case in.MinWords == nil:
		errs["minWords"] = "minimum word count is required"
	case *in.MinWords < 0:
		errs["minWords"] = "minimum word count must be 0 or greater"
	}

	switch {
	case in.RevisionNumber == nil:
		errs["revision_number"] = "revision allowance is required"
	case *in.RevisionNumber < 0:
		errs["revision_number"] = "revision allowance must be 0 or greater"
	}

	switch {
	case in.DeliveryGuarantee == nil:
		errs["delivery_guarantee"] = "delivery guarantee is required"
	case *in.DeliveryGuarantee < 1:
		errs["delivery_guarantee"] = "delivery guarantee must be at least 1"
	}

	switch {
	case in.DeliveryExpedite == nil:
		// Required whenever an expedite rate is given.
		if in.ExpediteRate != nil {
			errs["delivery_expeditate"] = "expedited delivery time is required when an expedite rate is given"
		}
	case *in.DeliveryExpedite < 1:
		errs["delivery_expeditate"] = "expedited delivery time must be at least 1"
	}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullString(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}
