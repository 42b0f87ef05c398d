package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/beetlebugorg/txf/pkg/txf"
)

// documentView is the serialized form of a document.
type documentView struct {
	Magic    string            `json:"magic" yaml:"magic"`
	Version  string            `json:"version" yaml:"version"`
	Passport map[string]string `json:"passport" yaml:"passport"`
	Objects  []objectView      `json:"objects" yaml:"objects"`
}

type objectView struct {
	ClassCode        string            `json:"class_code" yaml:"class_code"`
	LocalizationCode string            `json:"localization_code,omitempty" yaml:"localization_code,omitempty"`
	Key              int               `json:"key" yaml:"key"`
	Kind             string            `json:"kind" yaml:"kind"`
	Line             int               `json:"line" yaml:"line"`
	Fields           map[string]string `json:"fields" yaml:"fields"`
	Coordinates      [][2]string       `json:"coordinates" yaml:"coordinates,flow"`
	Title            string            `json:"title,omitempty" yaml:"title,omitempty"`
	Semantics        map[string]string `json:"semantics,omitempty" yaml:"semantics,omitempty"`
}

func newDocumentView(doc *txf.Document) documentView {
	view := documentView{
		Magic:    doc.Magic(),
		Version:  doc.Version(),
		Passport: doc.Passport(),
		Objects:  make([]objectView, 0, doc.ObjectCount()),
	}
	for _, obj := range doc.Objects() {
		coords := obj.Coordinates()
		pairs := make([][2]string, len(coords))
		for i, c := range coords {
			pairs[i] = [2]string{c.X, c.Y}
		}
		view.Objects = append(view.Objects, objectView{
			ClassCode:        obj.ClassCode(),
			LocalizationCode: obj.LocalizationCode(),
			Key:              obj.Key(),
			Kind:             obj.Kind().String(),
			Line:             obj.Line(),
			Fields:           obj.Fields(),
			Coordinates:      pairs,
			Title:            obj.Title(),
			Semantics:        obj.Semantics(),
		})
	}
	return view
}

func newDumpCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print the parsed content of a TXF file as JSON or YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}

			doc, err := a.parseFile(args[0])
			if err != nil {
				return err
			}
			view := newDocumentView(doc)

			out := cmd.OutOrStdout()
			if format == "yaml" {
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(view); err != nil {
					return fmt.Errorf("encode yaml: %w", err)
				}
				return enc.Close()
			}

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(view)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json, yaml)")
	return cmd
}
