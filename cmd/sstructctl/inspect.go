// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/acolinisi/hypre/grid"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect CONFIG",
		Short: "Assemble a grid description and summarize it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, g, rec, err := a.load(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = g.Destroy() }()

			return printSummary(cmd.OutOrStdout(), g.Topology(), rec.Counts())
		},
	}
}

// newTable returns a borderless left-aligned table in the style of the
// other listing commands.
func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")

	return table
}

// printSummary writes the part table, the connected part groups and the
// per-operation call counts.
func printSummary(w io.Writer, topo grid.Topology, counts map[grid.Op]int) error {
	fmt.Fprintf(w, "ndim %d, %d parts, assembled %t\n\n", topo.NDim, topo.NParts, topo.Assembled)

	parts := newTable(w, "PART", "BOXES", "CELLS", "VARIABLES", "PERIODIC")
	for i, p := range topo.Parts {
		cells := 0
		for _, b := range p.Boxes {
			cells += b.Volume()
		}
		names := make([]string, len(p.Vars))
		for v, t := range p.Vars {
			names[v] = t.String()
		}
		parts.Append([]string{
			strconv.Itoa(i),
			strconv.Itoa(len(p.Boxes)),
			strconv.Itoa(cells),
			strings.Join(names, ","),
			periodic(p.Periodic),
		})
	}
	parts.Render()

	fmt.Fprintln(w)
	for _, group := range topo.RelatedParts() {
		fmt.Fprintf(w, "connected parts %v\n", group)
	}
	fmt.Fprintln(w)

	ops := make([]grid.Op, 0, len(counts))
	for op := range counts {
		ops = append(ops, op)
	}
	slices.Sort(ops)
	calls := newTable(w, "OPERATION", "CALLS")
	for _, op := range ops {
		calls.Append([]string{op.String(), strconv.Itoa(counts[op])})
	}
	calls.Render()

	return nil
}

func periodic(p []int) string {
	if p == nil {
		return "-"
	}

	return fmt.Sprint(p)
}
