package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"fxsnapshot/internal/application"
	"fxsnapshot/internal/domain"
)

type Runner interface {
	Run(ctx context.Context) (application.Result, error)
}

type Server struct {
	runner Runner
	reader application.SnapshotReader
	ping   func(ctx context.Context) error
	base   domain.Currency
}

func NewServer(runner Runner, reader application.SnapshotReader, ping func(ctx context.Context) error, base domain.Currency) *Server {
	return &Server{runner: runner, reader: reader, ping: ping, base: base}
}

type snapshotBody struct {
	Date  string             `json:"date"`
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

type runResponse struct {
	RunID     string        `json:"run_id"`
	Snapshot  *snapshotBody `json:"snapshot,omitempty"`
	Missing   []string      `json:"missing,omitempty"`
	Persisted bool          `json:"persisted"`
	Skipped   bool          `json:"skipped"`
	Error     string        `json:"error,omitempty"`
}

type errorBody struct {
	Error      string `json:"error"`
	StatusCode int    `json:"upstream_status,omitempty"`
}

func (s *Server) RunSnapshot(w http.ResponseWriter, r *http.Request) {
	res, err := s.runner.Run(r.Context())
	if err != nil {
		var fe *domain.FetchError
		switch {
		case errors.Is(err, application.ErrRunInProgress):
			writeError(w, http.StatusConflict, err.Error())
		case errors.As(err, &fe):
			writeJSON(w, http.StatusBadGateway, errorBody{Error: err.Error(), StatusCode: fe.StatusCode})
		default:
			writeError(w, http.StatusBadGateway, err.Error())
		}
		return
	}

	resp := runResponse{
		RunID:     res.RunID,
		Persisted: res.Persisted,
		Skipped:   res.Skipped,
	}
	body := toSnapshotBody(res.Snapshot)
	resp.Snapshot = &body
	for _, c := range res.Missing {
		resp.Missing = append(resp.Missing, string(c))
	}
	if res.PersistErr != nil {
		resp.Error = res.PersistErr.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) GetLatestSnapshot(w http.ResponseWriter, r *http.Request) {
	base := s.base
	if q := r.URL.Query().Get("base"); q != "" {
		c, err := domain.ParseCurrency(q)
		if err != nil {
			badRequest(w, err.Error())
			return
		}
		base = c
	}
	snap, err := s.reader.Latest(r.Context(), base)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w)
			return
		}
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, toSnapshotBody(snap))
}

func toSnapshotBody(s domain.Snapshot) snapshotBody {
	rates := make(map[string]float64, len(s.Rates))
	for c, v := range s.Rates {
		rates[string(c)] = v
	}
	return snapshotBody{Date: s.Date.Format(time.DateOnly), Base: string(s.Base), Rates: rates}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusBadRequest, msg)
}

func notFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, "not found")
}

func internalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, "internal error")
}
