package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/npillmayer/cadenza/chart"
	"github.com/npillmayer/cadenza/lexicon"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// commands builds the command tree for one input line. A fresh tree per
// line keeps flag values from leaking into the next command.
func (intp *Intp) commands(quit *bool) *cobra.Command {
	root := &cobra.Command{
		Use:           "chartrepl",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(intp.parseCommand())
	root.AddCommand(&cobra.Command{
		Use:   "cell <start> <end>",
		Short: "List the signs of a chart cell",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := intp.needChart(); err != nil {
				return err
			}
			start, end, err := span(args)
			if err != nil {
				return err
			}
			c, err := intp.chart.Cell(start, end)
			if err != nil {
				return err
			}
			printCell(c)
			return nil
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "summary",
		Short: "Show the number of signs per cell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := intp.needChart(); err != nil {
				return err
			}
			printSummary(intp.chart.Summary())
			return nil
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "tree <n>",
		Short: "Show the derivation of parse number n",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 0 || n >= len(intp.parses) {
				return fmt.Errorf("no parse number %s", args[0])
			}
			printDerivation(intp.parses[n])
			return nil
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "dump <file>",
		Short: "Write the chart to a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := intp.needChart(); err != nil {
				return err
			}
			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			return intp.chart.Dump(f)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "load <file>",
		Short: "Read a chart from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			ch, err := chart.Load(f, intp.grammar)
			if err != nil {
				return err
			}
			intp.chart, intp.parses = ch, ch.Parses()
			pterm.Info.Println(fmt.Sprintf("loaded chart for %v with %d parses", ch.Input(), len(intp.parses)))
			return nil
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "lexicon [variant]",
		Short: "List lexicon families, or switch to a variant",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if err := intp.useVariant(args[0]); err != nil {
					return err
				}
			}
			printLexicon(intp.scope)
			return nil
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "quit",
		Short: "Leave the REPL",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			*quit = true
		},
	})
	return root
}

func (intp *Intp) parseCommand() *cobra.Command {
	var timeout, required int
	var allowComplex, derivations bool
	cmd := &cobra.Command{
		Use:   "parse <chord>...",
		Short: "Parse a chord sequence",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []chart.Option{
				chart.AllowComplex(allowComplex),
				chart.Derivations(derivations),
			}
			if timeout > 0 {
				opts = append(opts, chart.Timeout(time.Duration(timeout)*time.Second))
			}
			if required > 0 {
				opts = append(opts, chart.RequiredParses(required))
			}
			return intp.parse(context.Background(), args, opts...)
		},
	}
	cmd.Flags().IntVarP(&timeout, "timeout", "t", 0, "timeout in seconds")
	cmd.Flags().IntVarP(&required, "required", "r", 0, "number of parses required")
	cmd.Flags().BoolVarP(&allowComplex, "complex", "c", false, "accept complex categories as parses")
	cmd.Flags().BoolVarP(&derivations, "derivations", "d", true, "record derivations")
	return cmd
}

func span(args []string) (int, int, error) {
	start, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("illegal start position %q", args[0])
	}
	end, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("illegal end position %q", args[1])
	}
	return start, end, nil
}

func printLexicon(sc *lexicon.Scope) {
	data := pterm.TableData{{"family", "chords", "signs"}}
	sc.Each(func(e *lexicon.Entry) {
		for i, s := range e.Signs {
			row := []string{"", "", s.String()}
			if i == 0 {
				row[0], row[1] = e.Name, fmt.Sprintf("%q", e.Chords)
			}
			data = append(data, row)
		}
	})
	pterm.Println(fmt.Sprintf("lexicon scope %s", sc.Name))
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
