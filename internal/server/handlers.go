package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jonathan/resume-ranker/internal/pipeline"
	"github.com/jonathan/resume-ranker/internal/ranking"
	"github.com/jonathan/resume-ranker/internal/server/middleware"
	"github.com/jonathan/resume-ranker/internal/types"
)

// handleRank runs the pipeline synchronously and returns the report.
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRankRequest(w, r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	report, err := pipeline.Run(r.Context(), s.runOptions(r, req))
	if err != nil {
		s.logger.Error("rank request failed", "error", err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

// handleRankStream runs the pipeline and streams progress via SSE, ending
// with a "report" event.
func (s *Server) handleRankStream(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRankRequest(w, r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	stream, err := newRankStream(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts := s.runOptions(r, req)
	opts.OnProgress = func(e pipeline.ProgressEvent) {
		if err := stream.Progress(e); err != nil {
			s.logger.Warn("failed to write progress event", "error", err)
		}
	}

	report, err := pipeline.Run(r.Context(), opts)
	if err != nil {
		s.logger.Error("rank stream failed", "error", err)
		stream.Fail(err)
		return
	}
	if err := stream.Report(report); err != nil {
		s.logger.Warn("failed to write report event", "error", err)
	}
}

func (s *Server) decodeRankRequest(w http.ResponseWriter, r *http.Request) (*types.RankRequest, error) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	var req types.RankRequest
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &ErrBodyTooLarge{Limit: tooLarge.Limit}
		}
		return nil, &ErrValidation{Message: fmt.Sprintf("invalid request body: %v", err)}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ErrValidation{Message: "request body must contain a single JSON object"}
	}
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}
	return &req, nil
}

func (s *Server) runOptions(r *http.Request, req *types.RankRequest) pipeline.RunOptions {
	topN := req.TopN
	if topN == 0 {
		topN = s.cfg.TopN
	}
	if topN == 0 {
		topN = ranking.DefaultTopN
	}

	logger := s.logger
	if subject, err := middleware.GetSubject(r); err == nil {
		logger = logger.With("subject", subject)
	}

	opts := pipeline.RunOptions{
		JobText:    req.JobDescription,
		JobURL:     req.JobURL,
		UseBrowser: s.cfg.UseBrowser,
		Locations:  req.Locations,
		TopN:       topN,
		MaxYears:   req.MaxYears,
		Retrieval:  s.cfg.Retrieval,
		Metrics:    s.metrics,
		Logger:     logger,
	}
	s.collaborators.Apply(&opts)
	return opts
}
