package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/npillmayer/chomsky"
	"github.com/npillmayer/chomsky/cnf"
	"github.com/npillmayer/chomsky/grammar"
	"github.com/npillmayer/schuko/tracing"
)

type convertResponse struct {
	CNF   *grammar.Grammar `json:"cnf"`
	Steps []stepResponse   `json:"steps,omitempty"`
}

type stepResponse struct {
	Name    string           `json:"name"`
	Grammar *grammar.Grammar `json:"grammar"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type statusResponse struct {
	Version     string `json:"version"`
	Conversions int64  `json:"conversions"`
	Failures    int64  `json:"failures"`
}

// requestError is a failure to read a request, before the converter is involved.
type requestError struct {
	status  int
	outcome string
	err     error
}

func (s *Server) handleConvert(w http.ResponseWriter, req *http.Request) {
	trace := requestTracer(req)
	withSteps := false
	if v := req.URL.Query().Get("steps"); v != "" {
		var err error
		if withSteps, err = strconv.ParseBool(v); err != nil {
			s.fail(w, trace, &requestError{http.StatusBadRequest, outcomeBadRequest, err})
			return
		}
	}
	g, rerr := s.readGrammar(w, req)
	if rerr != nil {
		s.fail(w, trace, rerr)
		return
	}
	trace.Infof("converting grammar %s with %d productions", g.Name(), g.Size())
	start := time.Now()
	var result *grammar.Grammar
	var steps []cnf.Step
	var err error
	if withSteps {
		result, steps, err = s.converter.ConvertSteps(g)
	} else {
		result, err = s.converter.Convert(g)
	}
	s.metrics.duration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.fail(w, trace, classify(err))
		return
	}
	s.conversions.Add(1)
	s.metrics.conversions.WithLabelValues(outcomeOK).Inc()
	s.metrics.productions.Observe(float64(result.Size()))
	resp := convertResponse{CNF: result}
	for _, st := range steps {
		resp.Steps = append(resp.Steps, stepResponse{Name: st.Name, Grammar: st.Grammar})
	}
	trace.Debugf("CNF has %d productions", result.Size())
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStatus(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Version:     chomsky.Version,
		Conversions: s.conversions.Load(),
		Failures:    s.failures.Load(),
	})
}

// readGrammar reads and decodes the request body. Bodies which are not valid
// JSON grammars are bad requests, grammars violating invariants are
// unprocessable.
func (s *Server) readGrammar(w http.ResponseWriter, req *http.Request) (*grammar.Grammar, *requestError) {
	data, err := io.ReadAll(http.MaxBytesReader(w, req.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &requestError{http.StatusRequestEntityTooLarge, outcomeTooLarge, err}
		}
		return nil, &requestError{http.StatusBadRequest, outcomeBadRequest, err}
	}
	spec, err := decodeSpec(data)
	if err != nil {
		return nil, &requestError{http.StatusBadRequest, outcomeBadRequest, err}
	}
	g, err := grammar.FromSpec(spec)
	if err != nil {
		return nil, classify(err)
	}
	return g, nil
}

// decodeSpec decodes a grammar in exchange format. The grammar may be wrapped
// as {"grammar": …}.
func decodeSpec(data []byte) (grammar.Spec, error) {
	var spec grammar.Spec
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return spec, err
	}
	if inner, ok := fields["grammar"]; ok && len(fields) == 1 {
		data = inner
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&spec); err != nil {
		return spec, err
	}
	return spec, nil
}

// classify maps converter errors to HTTP responses.
func classify(err error) *requestError {
	kind := chomsky.KindOf(err)
	if kind == chomsky.NoError {
		return &requestError{http.StatusInternalServerError, outcomeInternal, err}
	}
	return &requestError{http.StatusUnprocessableEntity, kind.String(), err}
}

func (s *Server) fail(w http.ResponseWriter, trace tracing.Trace, rerr *requestError) {
	s.failures.Add(1)
	s.metrics.conversions.WithLabelValues(rerr.outcome).Inc()
	if rerr.status >= http.StatusInternalServerError {
		trace.Errorf("conversion failed: %v", rerr.err)
	} else {
		trace.Infof("request rejected: %v", rerr.err)
	}
	writeJSON(w, rerr.status, errorResponse{
		Error: errorBody{Kind: rerr.outcome, Message: rerr.err.Error()},
	})
}

// writeJSON writes data to an http response.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	js, err := json.MarshalIndent(data, "", " ")
	if err != nil {
		tracer().Errorf("cannot encode response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(js); err != nil {
		tracer().Errorf("cannot write response: %v", err)
	}
}
