package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/chomsky"
	"github.com/npillmayer/chomsky/cnf"
	"github.com/npillmayer/chomsky/grammar"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const (
	textGrammar = "# a^n b^n\nS -> a S b | ε\n"
	jsonGrammar = `{"nonterminals": ["S"], "terminals": ["a"],
		"productions": [{"head": "S", "body": ["a", "S"]}, {"head": "S", "body": ["a"]}],
		"start": "S"}`
	yamlGrammar = `
nonterminals: [E, T]
terminals: [x, "+"]
productions:
  - {head: E, body: [E, "+", T]}
  - {head: E, body: [T]}
  - {head: T, body: [x]}
start: E
`
)

func writeFiles(t *testing.T, files map[string]string) []string {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		paths = append(paths, path)
	}
	return paths
}

func TestReadGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cli")
	defer teardown()
	//
	paths := writeFiles(t, map[string]string{"anbn.cfg": textGrammar})
	g, err := readGrammar(paths[0], false)
	require.NoError(t, err)
	require.Equal(t, "anbn", g.Name())
	require.True(t, g.Has("S"))
	//
	paths = writeFiles(t, map[string]string{"g.json": jsonGrammar})
	g, err = readGrammar(paths[0], false)
	require.NoError(t, err)
	require.Equal(t, 2, g.Size())
	//
	paths = writeFiles(t, map[string]string{"expr.YML": yamlGrammar})
	g, err = readGrammar(paths[0], false)
	require.NoError(t, err)
	require.Equal(t, "E", g.Start())
	require.True(t, g.Has("E", "E", "+", "T"))
	//
	_, err = readGrammar(filepath.Join(t.TempDir(), "missing.cfg"), false)
	require.Error(t, err)
}

func TestRunConvertText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cli")
	defer teardown()
	defer goleak.VerifyNone(t)
	//
	paths := writeFiles(t, map[string]string{"anbn.cfg": textGrammar})
	var out bytes.Buffer
	err := runConvert(context.Background(), &out, cnf.NewConverter(), paths,
		convertOptions{format: formatText, jobs: 2})
	require.NoError(t, err)
	require.Contains(t, out.String(), "# "+paths[0])
	require.Contains(t, out.String(), "S0 → ε | Ta X1 | Ta Tb")
}

func TestRunConvertJSONWithFailures(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cli")
	defer teardown()
	defer goleak.VerifyNone(t)
	//
	paths := writeFiles(t, map[string]string{
		"a.json":   jsonGrammar,
		"b.yaml":   yamlGrammar,
		"bad.cfg":  "S -> -> a",
		"c.cfg":    textGrammar,
		"none.cfg": "# nothing here\n",
	})
	var out bytes.Buffer
	err := runConvert(context.Background(), &out, cnf.NewConverter(), paths,
		convertOptions{format: formatJSON, steps: true, jobs: 3})
	require.Error(t, err)
	require.True(t, strings.HasPrefix(err.Error(), "2 of 5 conversion(s) failed"), err.Error())
	require.ErrorIs(t, err, &chomsky.Error{Kind: chomsky.MalformedGrammar})
	require.ErrorIs(t, err, &chomsky.Error{Kind: chomsky.EmptyGrammar})
	var results []struct {
		File  string       `json:"file"`
		CNF   grammar.Spec `json:"cnf"`
		Steps []struct {
			Name string `json:"name"`
		} `json:"steps"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))
	require.Len(t, results, 3)
	for _, r := range results {
		g, err := grammar.FromSpec(r.CNF)
		require.NoError(t, err, r.File)
		require.NoError(t, cnf.IsCNF(g), r.File)
		require.Len(t, r.Steps, 5, r.File)
	}
}

func TestRunConvertCancelled(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cli")
	defer teardown()
	defer goleak.VerifyNone(t)
	//
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	paths := writeFiles(t, map[string]string{"anbn.cfg": textGrammar})
	var out bytes.Buffer
	err := runConvert(ctx, &out, cnf.NewConverter(), paths, convertOptions{format: formatYAML})
	require.ErrorIs(t, err, context.Canceled)
}

func TestReplEval(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cli")
	defer teardown()
	//
	var out bytes.Buffer
	intp := &Intp{converter: cnf.NewConverter(), out: &out}
	require.False(t, intp.Eval(":steps on"))
	require.True(t, intp.steps)
	require.False(t, intp.Eval("S -> a B"))
	require.False(t, intp.Eval("B -> b"))
	require.Empty(t, out.String(), "grammar is converted after an empty line only")
	require.False(t, intp.Eval(""))
	require.Equal(t, "S → Ta B\nB → b\nTa → a\n", out.String())
	require.NotNil(t, intp.last)
	require.Empty(t, intp.lines)
	//
	out.Reset()
	require.False(t, intp.Eval(":json"))
	var spec grammar.Spec
	require.NoError(t, json.Unmarshal(out.Bytes(), &spec))
	require.Equal(t, "S", spec.Start)
	//
	out.Reset()
	require.False(t, intp.Eval("S -> -> x"))
	require.False(t, intp.Eval(""))
	require.Empty(t, out.String())
	require.Empty(t, intp.lines, "input is discarded after errors")
	require.True(t, intp.Eval(":quit"))
}

func TestStepTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cli")
	defer teardown()
	//
	b := grammar.NewBuilder("G")
	b.LHS("S").T("a").N("S").End()
	b.LHS("S").T("b").End()
	g, err := b.Grammar()
	require.NoError(t, err)
	ll := leveledGrammar(nil, "input", g)
	require.Len(t, ll, 2)
	require.Equal(t, "input (2 productions)", ll[0].Text)
	require.Equal(t, 1, ll[1].Level)
	require.Equal(t, "S → a S | b", ll[1].Text)
	//
	empty, err := grammar.NewBuilder("E").Start("S").Grammar()
	require.NoError(t, err)
	require.Len(t, leveledGrammar(nil, "PRUNE", empty), 1)
}

func TestToggle(t *testing.T) {
	require.True(t, toggle([]string{"steps"}, false))
	require.False(t, toggle([]string{"steps", "off"}, true))
	require.True(t, toggle([]string{"steps", "ON"}, false))
	require.True(t, toggle([]string{"steps", "maybe"}, true))
}
