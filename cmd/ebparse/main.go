/*
Command ebparse is an interactive sandbox for the earleybird parser.

Users enter grammar rules, one per line, in a compact notation:

	Sum -> Sum [+-] Product
	Sum -> Product
	Factor -> "(" Sum ")"
	Empty ->

Barewords reference rules, a quoted string contributes one literal
terminal per character, and a bracketed string contributes a character set.
Any line without an arrow is treated as input for the current grammar: it
is recognised, and for accepted input the first parse trees are displayed.

Commands: ":show" dumps the grammar, ":trees N" sets the number of trees
to display, ":reset" drops all rules. Quit with ctrl-D.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/earleybird"
	"github.com/npillmayer/earleybird/forest"
	"github.com/npillmayer/earleybird/grammar"
)

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	flag.Parse()
	for _, key := range []string{"earleybird.grammar", "earleybird.earley", "earleybird.forest"} {
		tracing.Select(key).SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	}
	pterm.Info.Println("Welcome to ebparse")
	pterm.Info.Println("Enter rules like  Sum -> Sum [+-] Product  and then input lines")
	//
	repl, err := readline.New("ebparse> ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(3)
	}
	intp := &intp{repl: repl, treecount: 3}
	intp.loop()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

type intp struct {
	repl      *readline.Instance
	rules     []*grammar.Rule
	g         *grammar.Grammar // built lazily from rules
	treecount int
}

func (intp *intp) loop() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if intp.command(line) {
				break
			}
			continue
		}
		if strings.Contains(line, "->") {
			intp.addRule(line)
			continue
		}
		intp.run(line)
	}
	println("Good bye!")
}

func (intp *intp) command(line string) (quit bool) {
	args := strings.Fields(line)
	switch args[0] {
	case ":quit":
		return true
	case ":reset":
		intp.rules, intp.g = nil, nil
		pterm.Info.Println("grammar dropped")
	case ":show":
		for n, r := range intp.rules {
			pterm.Printf("%3d: %s\n", n, r)
		}
	case ":trees":
		if len(args) > 1 {
			if n, err := strconv.Atoi(args[1]); err == nil && n > 0 {
				intp.treecount = n
				break
			}
		}
		pterm.Error.Println("usage: :trees N")
	default:
		pterm.Error.Printf("unknown command %s\n", args[0])
	}
	return false
}

func (intp *intp) addRule(line string) {
	rule, err := parseRule(line)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	intp.rules = append(intp.rules, rule)
	intp.g = nil // grammar has to be rebuilt
	pterm.Info.Printf("rule %d: %s\n", len(intp.rules)-1, rule)
}

func (intp *intp) run(input string) {
	if intp.g == nil {
		g, err := grammar.New("ebparse", intp.rules)
		if err != nil {
			pterm.Error.Println(err.Error())
			return
		}
		intp.g = g
	}
	if !earleybird.Recognise(intp.g, input) {
		pterm.Error.Printf("input is not a %s\n", intp.g.Start())
		return
	}
	trees := earleybird.Parse(intp.g, input).Take(intp.treecount)
	pterm.Info.Printf("input is a %s, showing %d parse tree(s)\n", intp.g.Start(), len(trees))
	for _, tree := range trees {
		renderTree(tree)
	}
}

func renderTree(tree forest.Node) {
	ll := leveledNode(tree, pterm.LeveledList{}, 0)
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}

func leveledNode(tree forest.Node, ll pterm.LeveledList, level int) pterm.LeveledList {
	switch node := tree.(type) {
	case *forest.Inner:
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: node.Name})
		for _, child := range node.Children {
			ll = leveledNode(child, ll, level+1)
		}
	default:
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: tree.String()})
	}
	return ll
}

// parseRule reads a rule in the compact notation "Name -> body", where the
// body is a blank-separated sequence of barewords (rule references),
// "quoted" strings (one literal per character) and [bracketed] character
// sets. An empty body is an epsilon-rule.
func parseRule(line string) (*grammar.Rule, error) {
	parts := strings.SplitN(line, "->", 2)
	name := strings.TrimSpace(parts[0])
	if name == "" || len(strings.Fields(name)) != 1 {
		return nil, fmt.Errorf("rule needs a single name before the arrow: %q", line)
	}
	var body []grammar.Symbol
	for _, field := range strings.Fields(strings.TrimSpace(parts[1])) {
		switch {
		case strings.HasPrefix(field, "\"") && strings.HasSuffix(field, "\"") && len(field) >= 2:
			for _, c := range field[1 : len(field)-1] {
				body = append(body, grammar.Literal(c))
			}
		case strings.HasPrefix(field, "[") && strings.HasSuffix(field, "]") && len(field) > 2:
			set := field[1 : len(field)-1]
			set = strings.TrimPrefix(set, "\"")
			set = strings.TrimSuffix(set, "\"")
			body = append(body, grammar.Chars(set))
		default:
			body = append(body, grammar.RuleRef(field))
		}
	}
	return grammar.NewRule(name, body...)
}
