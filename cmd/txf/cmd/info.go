package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Print a summary of a TXF file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.parseFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File:        %s\n", args[0])
			fmt.Fprintf(out, "Format:      %s %s\n", doc.Magic(), doc.Version())
			fmt.Fprintf(out, "Objects:     %d (%d titles)\n", doc.ObjectCount(), len(doc.TitleObjects()))
			fmt.Fprintf(out, "Coordinates: %d\n", doc.CoordinateCount())
			if b, ok := doc.Bounds(); ok {
				fmt.Fprintf(out, "Bounds:      [%g, %g] - [%g, %g]\n", b.MinX, b.MinY, b.MaxX, b.MaxY)
			}

			passport := doc.Passport()
			if len(passport) > 0 {
				fmt.Fprintln(out, "Passport:")
				for _, tag := range sortedKeys(passport) {
					fmt.Fprintf(out, "  %-6s %s\n", tag, passport[tag])
				}
			}

			classes := make(map[string]int)
			for _, obj := range doc.Objects() {
				classes[obj.ClassCode()]++
			}
			fmt.Fprintln(out, "Classes:")
			names := make([]string, 0, len(classes))
			for name := range classes {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(out, "  %-6s %d\n", name, classes[name])
			}
			return nil
		},
	}
}

// sortedKeys orders passport tags by number, so P2 comes before P10.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) < len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}
