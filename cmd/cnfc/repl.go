package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/chomsky"
	"github.com/npillmayer/chomsky/cnf"
	"github.com/npillmayer/chomsky/grammar"
	"github.com/npillmayer/chomsky/grammar/notation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

const (
	prompt         = "cnfc> "
	continuePrompt = "  ... "
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Convert grammars interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repl, err := readline.New(prompt)
		if err != nil {
			return err
		}
		defer repl.Close()
		intp := &Intp{
			repl:      repl,
			converter: cfg.Converter(),
			out:       cmd.OutOrStdout(),
		}
		pterm.Info.Println("Welcome to cnfc " + chomsky.Version) // colored welcome message
		tracer().Infof("Quit with <ctrl>D")                     // inform user how to stop the CLI
		intp.REPL()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// Intp is our interpreter object. It collects lines of a grammar until an
// empty line is entered, then converts the grammar.
type Intp struct {
	repl      *readline.Instance
	converter *cnf.Converter
	out       io.Writer
	lines     []string         // lines of the grammar being entered
	count     int              // number of grammars entered
	last      *grammar.Grammar // last CNF produced
	steps     bool             // show the grammar after every stage
	compact   bool             // split identifiers into characters
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if quit := intp.Eval(line); quit {
			break
		}
	}
	println("Good bye!")
}

// Eval processes a line of input. It returns true if the user asked to quit.
func (intp *Intp) Eval(line string) bool {
	line = strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(line, ":") && len(intp.lines) == 0:
		return intp.command(strings.Fields(line[1:]))
	case line == "":
		if len(intp.lines) > 0 {
			intp.convert()
		}
	default:
		intp.lines = append(intp.lines, line)
		intp.prompt(continuePrompt)
	}
	return false
}

func (intp *Intp) prompt(p string) {
	if intp.repl != nil {
		intp.repl.SetPrompt(p)
	}
}

func (intp *Intp) convert() {
	defer func() {
		intp.lines = intp.lines[:0]
		intp.prompt(prompt)
	}()
	intp.count++
	name := fmt.Sprintf("G%d", intp.count)
	g, err := notation.Parse(name, strings.Join(intp.lines, "\n"), notation.Compact(intp.compact))
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	g.Dump() // only visible in debug mode
	result, steps, err := intp.converter.ConvertSteps(g)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	intp.last = result
	if intp.steps {
		pterm.Println(name)
		pterm.DefaultTree.WithRoot(stepTree(g, steps)).Render()
	}
	pterm.Info.Println(fmt.Sprintf("%s in CNF, %d productions", name, result.Size()))
	fmt.Fprintln(intp.out, notation.String(result))
}

func (intp *Intp) command(args []string) bool {
	if len(args) == 0 {
		args = []string{"help"}
	}
	switch args[0] {
	case "q", "quit":
		return true
	case "steps":
		intp.steps = toggle(args, intp.steps)
		pterm.Info.Println(fmt.Sprintf("steps = %v", intp.steps))
	case "compact":
		intp.compact = toggle(args, intp.compact)
		pterm.Info.Println(fmt.Sprintf("compact = %v", intp.compact))
	case "json", "yaml":
		if intp.last == nil {
			pterm.Error.Println("no grammar converted yet")
			return false
		}
		if err := intp.write(args[0]); err != nil {
			pterm.Error.Println(err.Error())
		}
	case "help":
		fmt.Fprintln(intp.out, `Enter a grammar, one rule per line, and finish it with an empty line:
    S -> a S b | ε
Commands:
    :steps [on|off]     show the grammar after every stage
    :compact [on|off]   split identifiers into characters
    :json, :yaml        print the last CNF in exchange format
    :quit               leave (or <ctrl>D)`)
	default:
		pterm.Error.Println("unknown command :" + args[0])
	}
	return false
}

func (intp *Intp) write(format string) error {
	if format == "yaml" {
		return grammar.WriteYAML(intp.last, intp.out)
	}
	js, err := json.MarshalIndent(intp.last, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(intp.out, string(js))
	return err
}

// toggle interprets an optional on/off argument. Without argument, the
// current setting is flipped.
func toggle(args []string, current bool) bool {
	if len(args) < 2 {
		return !current
	}
	switch strings.ToLower(args[1]) {
	case "on", "true", "1":
		return true
	case "off", "false", "0":
		return false
	}
	return current
}

// stepTree displays the grammar after every conversion stage as a tree.
func stepTree(input *grammar.Grammar, steps []cnf.Step) pterm.TreeNode {
	ll := leveledGrammar(pterm.LeveledList{}, "input", input)
	for _, st := range steps {
		ll = leveledGrammar(ll, st.Name, st.Grammar)
	}
	tracer().Debugf("|ll| = %d", len(ll))
	return pterm.NewTreeFromLeveledList(ll)
}

func leveledGrammar(ll pterm.LeveledList, label string, g *grammar.Grammar) pterm.LeveledList {
	ll = append(ll, pterm.LeveledListItem{
		Level: 0,
		Text:  fmt.Sprintf("%s (%d productions)", label, g.Size()),
	})
	if g.Size() == 0 {
		return ll
	}
	for _, line := range strings.Split(g.String(), "\n") {
		ll = append(ll, pterm.LeveledListItem{
			Level: 1,
			Text:  line,
		})
	}
	return ll
}
