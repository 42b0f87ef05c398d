package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/beetlebugorg/txf/pkg/txf"
)

// parseBBox reads "minx,miny,maxx,maxy".
func parseBBox(s string) (txf.Bounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return txf.Bounds{}, fmt.Errorf("bbox %q: want minx,miny,maxx,maxy", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return txf.Bounds{}, fmt.Errorf("bbox %q: %w", s, err)
		}
		v[i] = f
	}
	b := txf.Bounds{MinX: v[0], MinY: v[1], MaxX: v[2], MaxY: v[3]}
	if b.MinX > b.MaxX || b.MinY > b.MaxY {
		return txf.Bounds{}, fmt.Errorf("bbox %q: min greater than max", s)
	}
	return b, nil
}

func newQueryCmd(a *app) *cobra.Command {
	var (
		bbox  string
		class string
	)

	cmd := &cobra.Command{
		Use:   "query <file>",
		Short: "List objects whose coordinates intersect a bounding box",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bounds, err := parseBBox(bbox)
			if err != nil {
				return err
			}

			doc, err := a.parseFile(args[0])
			if err != nil {
				return err
			}

			idx := txf.NewObjectIndex(doc)
			if idx.Skipped() > 0 {
				a.log.Warn("objects without numeric coordinates not indexed",
					"file", args[0], "skipped", idx.Skipped())
			}

			out := cmd.OutOrStdout()
			hits := 0
			for _, obj := range idx.Search(bounds) {
				if class != "" && obj.ClassCode() != class {
					continue
				}
				hits++
				ob, _ := obj.Bounds()
				label := obj.Title()
				if !obj.IsTitle() {
					label, _ = obj.Field(".NAME")
				}
				fmt.Fprintf(out, "%d\t%s\t%s\tline %d\t[%g, %g] - [%g, %g]\t%s\n",
					obj.Key(), obj.ClassCode(), obj.Kind(), obj.Line(),
					ob.MinX, ob.MinY, ob.MaxX, ob.MaxY, label)
			}
			fmt.Fprintf(out, "%d of %d objects match\n", hits, doc.ObjectCount())
			return nil
		},
	}

	cmd.Flags().StringVar(&bbox, "bbox", "", "bounding box minx,miny,maxx,maxy")
	cmd.Flags().StringVar(&class, "class", "", "only objects of this class code")
	_ = cmd.MarkFlagRequired("bbox")
	return cmd
}
