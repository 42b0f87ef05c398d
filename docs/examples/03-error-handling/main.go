package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/beetlebugorg/txf/pkg/txf"
)

func safeParse(path string) (*txf.Document, error) {
	parser := txf.NewParser()

	opts := txf.DefaultParseOptions()
	opts.RejectTrailingContent = true

	doc, err := parser.ParseWithOptions(path, opts)
	if err != nil {
		var mismatch *txf.ErrCountMismatch
		var syntax *txf.ErrSyntax
		switch {
		case errors.As(err, &mismatch):
			log.Printf("%s: %s block at line %d declares %d, found %d",
				path, mismatch.Block, mismatch.Line, mismatch.Declared, mismatch.Actual)
		case errors.As(err, &syntax):
			log.Printf("%s: line %d: expected %s", path, syntax.Line, syntax.Expected)
		default:
			log.Printf("%s: %s error: %v", path, txf.ErrorKind(err), err)
		}
		return nil, err
	}

	return doc, nil
}

func main() {
	doc, err := safeParse("M-37-001.txf")
	if err != nil {
		return
	}
	fmt.Printf("Successfully loaded %d objects\n", doc.ObjectCount())

	// Try to parse a non-existent sheet
	if _, err := safeParse("NONEXISTENT.txf"); err != nil {
		fmt.Printf("Expected error kind: %s\n", txf.ErrorKind(err))
	}
}
