package main

import (
	"fmt"

	"github.com/npillmayer/cadenza/category"
	"github.com/npillmayer/cadenza/chart"
	"github.com/pterm/pterm"
)

func printCell(c *chart.Cell) {
	if c.Len() == 0 {
		pterm.Info.Println("empty cell")
		return
	}
	data := pterm.TableData{{"category", "semantics", "tag", "derivation"}}
	for _, s := range c.Signs() {
		deriv := ""
		if s.Trace != nil {
			deriv = s.Trace.String()
		}
		data = append(data, []string{s.Category.String(), s.Semantics.String(), s.Tag, deriv})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printSummary(sum *chart.Summary) {
	pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData(sum.Table())).Render()
}

// printDerivation shows the first derivation of a sign as a tree.
func printDerivation(s *category.Sign) {
	pterm.Println(s.String())
	if s.Trace == nil {
		pterm.Info.Println("no derivation recorded")
		return
	}
	ll := leveledTrace(s.Trace, pterm.LeveledList{}, 0)
	tracer().Debugf("|ll| = %d", len(ll))
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}

func leveledTrace(t *category.Trace, ll pterm.LeveledList, level int) pterm.LeveledList {
	if t == nil {
		return append(ll, pterm.LeveledListItem{Level: level, Text: "?"})
	}
	if t.IsLexical() {
		return append(ll, pterm.LeveledListItem{Level: level, Text: t.Word})
	}
	d := t.Derivations[0]
	text := d.Rule
	if n := len(t.Derivations); n > 1 {
		text = fmt.Sprintf("%s (1 of %d)", d.Rule, n)
	}
	ll = append(ll, pterm.LeveledListItem{Level: level, Text: text})
	for _, in := range d.Inputs {
		ll = leveledTrace(in, ll, level+1)
	}
	return ll
}
