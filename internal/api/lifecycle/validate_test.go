package lifecycle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wryteup/jobboard-be/internal/api/domain"
	"github.com/wryteup/jobboard-be/internal/api/model"
)

func TestValidateJobFields_Boundaries(t *testing.T) {
	category := &model.Category{
		ID:              10,
		Title:           "Copywriting",
		Status:          domain.CategoryStatusActive,
		MinRate:         25,
		MinExpediteRate: 40,
	}

	tests := []struct {
		name       string
		mutate     func(*JobInput)
		wantFields []string
	}{
		{
			name:       "all fields at their minimums pass",
			mutate:     func(in *JobInput) {},
			wantFields: nil,
		},
		{
			name: "title at exactly five characters passes",
			mutate: func(in *JobInput) {
				in.Title = "Pitch"
			},
			wantFields: nil,
		},
		{
			name: "title one short of the minimum",
			mutate: func(in *JobInput) {
				in.Title = "Blog"
			},
			wantFields: []string{"title"},
		},
		{
			name: "description at exactly one hundred characters passes",
			mutate: func(in *JobInput) {
				in.Description = strings.Repeat("x", 100)
			},
			wantFields: nil,
		},
		{
			name: "description one short of the minimum",
			mutate: func(in *JobInput) {
				in.Description = strings.Repeat("x", 99)
			},
			wantFields: []string{"description"},
		},
		{
			name: "rate exactly at the category floor passes",
			mutate: func(in *JobInput) {
				in.Rate = fptr(25)
			},
			wantFields: nil,
		},
		{
			name: "rate just below the category floor",
			mutate: func(in *JobInput) {
				in.Rate = fptr(24.99)
			},
			wantFields: []string{"rate"},
		},
		{
			name: "expedite pair at the floor passes",
			mutate: func(in *JobInput) {
				in.ExpediteRate = fptr(40)
				in.DeliveryExpedite = iptr(1)
			},
			wantFields: nil,
		},
		{
			name: "expedite rate below its floor",
			mutate: func(in *JobInput) {
				in.ExpediteRate = fptr(39.5)
				in.DeliveryExpedite = iptr(1)
			},
			wantFields: []string{"expeditate_rate"},
		},
		{
			name: "zero minimum words passes",
			mutate: func(in *JobInput) {
				in.MinWords = iptr(0)
			},
			wantFields: nil,
		},
		{
			name: "zero revisions passes",
			mutate: func(in *JobInput) {
				in.RevisionNumber = iptr(0)
			},
			wantFields: nil,
		},
		{
			name: "every missing required field reported at once",
			mutate: func(in *JobInput) {
				*in = JobInput{}
			},
			wantFields: []string{"title", "description", "rate", "minWords", "revision_number", "delivery_guarantee"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput(category.ID)
			tt.mutate(&in)

			errs := domain.FieldErrors{}
			validateJobFields(in, category, errs)

			if len(tt.wantFields) == 0 {
				assert.Empty(t, errs)
				return
			}
			var got []string
			for field := range errs {
				got = append(got, field)
			}
			assert.ElementsMatch(t, tt.wantFields, got)
		})
	}
}

func TestValidateJobFields_NilCategorySkipsFloors(t *testing.T) {
	in := validInput(0)
	in.Rate = fptr(0.01)

	errs := domain.FieldErrors{}
	validateJobFields(in, nil, errs)

	assert.Empty(t, errs, "floor checks need a category to compare against")
}
