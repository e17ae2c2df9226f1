package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/npillmayer/chomsky"
	"github.com/npillmayer/chomsky/cnf"
	"github.com/npillmayer/chomsky/grammar"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const anbn = `{
  "nonterminals": ["S"],
  "terminals": ["a", "b"],
  "productions": [
    {"head": "S", "body": ["a", "S", "b"]},
    {"head": "S", "body": []}
  ],
  "start": "S"
}`

func post(t *testing.T, s *Server, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestConvert(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.server")
	defer teardown()
	//
	s := New(nil)
	rec := post(t, s, "/convert", anbn)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	var resp struct {
		CNF   grammar.Spec      `json:"cnf"`
		Steps []json.RawMessage `json:"steps"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Empty(t, resp.Steps)
	g, err := grammar.FromSpec(resp.CNF)
	require.NoError(t, err)
	require.NoError(t, cnf.IsCNF(g))
	require.Equal(t, "S0", g.Start())
	require.True(t, g.Has("S0"), "start symbol derives ε")
	require.Equal(t, float64(1), testutil.ToFloat64(s.metrics.conversions.WithLabelValues(outcomeOK)))
}

func TestConvertWrapped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.server")
	defer teardown()
	//
	s := New(nil)
	rec := post(t, s, "/convert?steps=true", `{"grammar": `+anbn+`}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		CNF   grammar.Spec `json:"cnf"`
		Steps []struct {
			Name    string       `json:"name"`
			Grammar grammar.Spec `json:"grammar"`
		} `json:"steps"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Steps, 5)
	require.Equal(t, "START", resp.Steps[0].Name)
	require.Equal(t, "BIN", resp.Steps[4].Name)
	require.Equal(t, resp.CNF, resp.Steps[4].Grammar)
}

func TestConvertRejectsMalformedGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.server")
	defer teardown()
	//
	s := New(nil)
	rec := post(t, s, "/convert", `{
		"nonterminals": ["S"], "terminals": ["a", "S"],
		"productions": [{"head": "S", "body": ["a", "B"]}],
		"start": "S"
	}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	e := decodeError(t, rec)
	require.Equal(t, chomsky.MalformedGrammar.String(), e.Kind)
	require.Contains(t, e.Message, `"S" is both terminal and non-terminal`)
	require.Contains(t, e.Message, `"B"`)
}

func TestConvertRejectsEmptyGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.server")
	defer teardown()
	//
	s := New(nil)
	rec := post(t, s, "/convert", `{"nonterminals": ["S"], "terminals": [], "productions": [], "start": "S"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, chomsky.EmptyGrammar.String(), decodeError(t, rec).Kind)
}

func TestConvertLimits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.server")
	defer teardown()
	//
	s := New(cnf.NewConverter(cnf.WithLimits(cnf.Limits{MaxBodyLength: 2})))
	rec := post(t, s, "/convert", anbn)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, chomsky.LimitExceeded.String(), decodeError(t, rec).Kind)
	require.Equal(t, float64(1), testutil.ToFloat64(
		s.metrics.conversions.WithLabelValues(chomsky.LimitExceeded.String())))
}

func TestConvertBadRequests(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.server")
	defer teardown()
	//
	s := New(nil, WithMaxBodyBytes(64))
	for _, body := range []string{
		`not json`,
		`[1, 2, 3]`,
		`{"nonterminals": ["S"], "rules": []}`,
	} {
		rec := post(t, s, "/convert", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		require.Equal(t, outcomeBadRequest, decodeError(t, rec).Kind)
	}
	rec := post(t, s, "/convert?steps=maybe", anbn)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	rec = post(t, s, "/convert", anbn) // longer than 64 bytes
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.server")
	defer teardown()
	//
	s := New(nil)
	req := httptest.NewRequest(http.MethodGet, "/convert", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestIDIsKept(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.server")
	defer teardown()
	//
	s := New(nil)
	id := "7d444840-9dc0-11d1-b245-5ffdce74fad2"
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set("X-Request-ID", id)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, id, rec.Header().Get("X-Request-ID"))
	//
	req.Header.Set("X-Request-ID", "no-uuid")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.NotEqual(t, "no-uuid", rec.Header().Get("X-Request-ID"))
}

func TestStatusAndMetrics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.server")
	defer teardown()
	//
	s := New(nil)
	post(t, s, "/convert", anbn)
	post(t, s, "/convert", `{}`)
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var status statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.Equal(t, statusResponse{Version: chomsky.Version, Conversions: 1, Failures: 1}, status)
	//
	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `chomsky_conversions_total{outcome="ok"} 1`)
	require.Contains(t, rec.Body.String(), "chomsky_cnf_productions_count 1")
}

func TestServeShutsDown(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.server")
	defer teardown()
	//
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	s := New(nil)
	go func() {
		done <- s.Serve(ctx, ln)
	}()
	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Post("http://"+ln.Addr().String()+"/convert", "application/json",
		strings.NewReader(anbn))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	cancel()
	require.NoError(t, <-done)
}
