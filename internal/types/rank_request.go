//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// RankRequest is the body of POST /v1/rank.
type RankRequest struct {
	JobDescription string   `json:"job_description,omitempty"`
	JobURL         string   `json:"job_url,omitempty" validate:"omitempty,url"`
	Locations      []string `json:"locations" validate:"required,min=1,dive,required,url"`
	TopN           int      `json:"top_n,omitempty" validate:"gte=0,lte=100"`
	MaxYears       *int     `json:"max_years,omitempty" validate:"omitempty,gte=0"`
}

// Validate validates the RankRequest using the validator.
func (r *RankRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.JobDescription == "" && r.JobURL == "" {
		return errors.New("one of job_description or job_url is required")
	}
	if r.JobDescription != "" && r.JobURL != "" {
		return errors.New("job_description and job_url are mutually exclusive")
	}
	return nil
}
