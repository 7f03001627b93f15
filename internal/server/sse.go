package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-ranker/internal/pipeline"
	"github.com/jonathan/resume-ranker/internal/types"
)

// Event names on the /v1/rank/stream channel.
const (
	eventProgress = "progress"
	eventReport   = "report"
	eventError    = "error"
	eventComplete = "complete"
)

// rankStream writes one ranking run as Server-Sent Events. Events are
// progress*, then either report or error, then exactly one complete.
type rankStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
	events  int
}

type progressData struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
	Seq     int    `json:"seq"`
}

type streamError struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

type completeData struct {
	RunID  string `json:"run_id,omitempty"`
	Status string `json:"status"`
	Ranked int    `json:"ranked"`
}

func newRankStream(w http.ResponseWriter) (*rankStream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errors.New("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	return &rankStream{w: w, flusher: flusher}, nil
}

func (s *rankStream) send(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event, err)
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	s.events++
	s.flusher.Flush()
	return nil
}

// Progress forwards a pipeline stage update. Stage content is omitted since
// the final report carries it.
func (s *rankStream) Progress(e pipeline.ProgressEvent) error {
	return s.send(eventProgress, progressData{
		Step:    e.Step,
		Message: e.Message,
		RunID:   e.RunID,
		Seq:     s.events + 1,
	})
}

// Report sends the finished report followed by the completion event.
func (s *rankStream) Report(report *types.Report) error {
	if err := s.send(eventReport, report); err != nil {
		return err
	}
	return s.send(eventComplete, completeData{
		RunID:  report.RunID,
		Status: "completed",
		Ranked: len(report.Ranked),
	})
}

// Fail reports a run error with the status a plain request would have got.
func (s *rankStream) Fail(err error) {
	s.send(eventError, streamError{Error: err.Error(), Status: HTTPStatus(err)}) //nolint:errcheck
	s.send(eventComplete, completeData{Status: "failed"})                      //nolint:errcheck
}
