package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bietkhonhungvandi212/fitsim/internal/input"
	"github.com/bietkhonhungvandi212/fitsim/internal/logger"
	"github.com/bietkhonhungvandi212/fitsim/internal/report"
	"github.com/bietkhonhungvandi212/fitsim/internal/scenario"
	"github.com/bietkhonhungvandi212/fitsim/internal/sim"
	util "github.com/bietkhonhungvandi212/fitsim/internal/utils"
)

type (
	// sizes accepts a JSON array of integers or a comma separated string.
	sizes json.RawMessage

	createRequest struct {
		Pages       sizes    `json:"pages"`
		Frames      sizes    `json:"frames"`
		Strategies  []string `json:"strategies"`
		Unavailable bool     `json:"unavailable"`
		Seed        *uint64  `json:"seed"`
	}

	stepRequest struct {
		Page     int    `json:"page"`
		Strategy string `json:"strategy"`
	}

	simulationResponse struct {
		ID     string        `json:"id"`
		Result sim.RunResult `json:"result"`
		Chart  report.Chart  `json:"chart"`
	}

	stepResponse struct {
		Steps []sim.StepResult `json:"steps"`
	}

	historyEntry struct {
		Index  int    `json:"index"`
		Label  string `json:"label"`
		Pages  []int  `json:"pages"`
		Frames []int  `json:"frames"`
	}

	historyResponse struct {
		Entries []historyEntry `json:"entries"`
	}
)

func (s *sizes) UnmarshalJSON(b []byte) error {
	*s = append((*s)[:0], b...)
	return nil
}

func (s sizes) parse(field input.Field) ([]int, error) {
	raw := bytes.TrimSpace(s)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '"' {
		var list string
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, util.InvalidInput(util.MsgMalformedBody)
		}
		return input.ParseList(field, list)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, util.InvalidInput(util.MsgMalformedBody)
	}
	values := make([]string, len(items))
	for i, item := range items {
		values[i] = string(item)
	}
	return input.ParseValues(field, values)
}

func (r createRequest) toRunRequest() (sim.RunRequest, error) {
	pages, err := r.Pages.parse(input.FieldPages)
	if err != nil {
		return sim.RunRequest{}, err
	}
	frames, err := r.Frames.parse(input.FieldFrames)
	if err != nil {
		return sim.RunRequest{}, err
	}
	ids := scenario.Implemented
	if r.Strategies != nil {
		if ids, err = input.ParseStrategies(r.Strategies); err != nil {
			return sim.RunRequest{}, err
		}
	}
	return sim.RunRequest{Pages: pages, Frames: frames, Strategies: ids, Unavailable: r.Unavailable, Seed: r.Seed}, nil
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return util.BodyTooLarge(tooLarge.Limit)
		}
		return util.InvalidInput(util.MsgMalformedBody)
	}
	return nil
}

func (s *Server) createSimulation(w http.ResponseWriter, r *http.Request) {
	var body createRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err, s.log)
		return
	}
	req, err := body.toRunRequest()
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}

	sess, res, err := sim.Run(req, s.simOptions)
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	e, evicted := s.sessions.add(sess)
	if len(req.Pages) > 0 {
		s.history.Add(req.Pages, req.Frames)
	}

	s.log.InfoContext(r.Context(), "simulation created", logger.Session(e.id.String()), logger.Data(req.Strategies),
		slog.Int("open", s.sessions.len()), slog.Int("evicted", evicted))
	writeJSON(w, simulationResponse{ID: e.id.String(), Result: res, Chart: report.BuildChart(res)}, http.StatusCreated, s.log)
}

func (s *Server) getSimulation(w http.ResponseWriter, r *http.Request) {
	e, err := s.sessions.get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	e.Lock()
	res := e.session.Result()
	e.Unlock()
	writeJSON(w, simulationResponse{ID: e.id.String(), Result: res, Chart: report.BuildChart(res)}, http.StatusOK, s.log)
}

func (s *Server) stepSimulation(w http.ResponseWriter, r *http.Request) {
	e, err := s.sessions.get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	var body stepRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err, s.log)
		return
	}

	e.Lock()
	defer e.Unlock()

	if body.Strategy == "" {
		steps, err := e.session.StepAll(body.Page)
		if err != nil {
			writeError(w, r, err, s.log)
			return
		}
		writeJSON(w, stepResponse{Steps: steps}, http.StatusOK, s.log)
		return
	}

	id, err := input.ParseStrategy(body.Strategy)
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	p, err := e.session.Step(id, body.Page)
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeJSON(w, stepResponse{Steps: []sim.StepResult{{Strategy: id, Status: sim.StatusCompleted, Placement: &p}}}, http.StatusOK, s.log)
}

func (s *Server) deleteSimulation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.sessions.remove(id); err != nil {
		writeError(w, r, err, s.log)
		return
	}
	s.log.InfoContext(r.Context(), "simulation deleted", logger.Session(id))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listHistory(w http.ResponseWriter, r *http.Request) {
	entries := s.history.List()
	rsp := historyResponse{Entries: make([]historyEntry, len(entries))}
	for i, e := range entries {
		rsp.Entries[i] = historyEntry{Index: i, Label: e.Label(), Pages: e.Pages, Frames: e.Frames}
	}
	writeJSON(w, rsp, http.StatusOK, s.log)
}

func (s *Server) getHistory(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		idx = -1
	}
	e, err := s.history.Get(idx)
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeJSON(w, historyEntry{Index: idx, Label: e.Label(), Pages: e.Pages, Frames: e.Frames}, http.StatusOK, s.log)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok", "module": "fitsim"}, http.StatusOK, s.log)
}
