package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankRequest_Validate(t *testing.T) {
	valid := func() RankRequest {
		return RankRequest{
			JobDescription: "Backend engineer, 3+ years of Go",
			Locations:      []string{"https://example.com/a.pdf"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(r *RankRequest)
		wantErr bool
	}{
		{"valid", func(r *RankRequest) {}, false},
		{"job url instead of text", func(r *RankRequest) {
			r.JobDescription = ""
			r.JobURL = "https://jobs.example.com/123"
		}, false},
		{"top_n and max_years", func(r *RankRequest) {
			r.TopN = 25
			r.MaxYears = IntPtr(0)
		}, false},
		{"no job", func(r *RankRequest) { r.JobDescription = "" }, true},
		{"both jobs", func(r *RankRequest) { r.JobURL = "https://jobs.example.com/123" }, true},
		{"bad job url", func(r *RankRequest) {
			r.JobDescription = ""
			r.JobURL = "jobs page"
		}, true},
		{"no locations", func(r *RankRequest) { r.Locations = nil }, true},
		{"empty location", func(r *RankRequest) { r.Locations = []string{""} }, true},
		{"relative location", func(r *RankRequest) { r.Locations = []string{"a.pdf"} }, true},
		{"negative top_n", func(r *RankRequest) { r.TopN = -1 }, true},
		{"top_n over limit", func(r *RankRequest) { r.TopN = 101 }, true},
		{"negative max_years", func(r *RankRequest) { r.MaxYears = IntPtr(-2) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
