package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/txf/pkg/txf"
)

func main() {
	// Create parser
	parser := txf.NewParser()

	// Parse a sheet (windows-1251 by default)
	doc, err := parser.Parse("M-37-001.txf")
	if err != nil {
		log.Fatal(err)
	}

	// Print document info
	sheet, _ := doc.PassportValue("P1")
	fmt.Printf("Format: %s %s\n", doc.Magic(), doc.Version())
	fmt.Printf("Sheet: %s\n", sheet)
	fmt.Printf("Objects: %d (%d titles)\n", doc.ObjectCount(), len(doc.TitleObjects()))

	// Get document bounds
	if b, ok := doc.Bounds(); ok {
		fmt.Printf("Bounds: [%.2f,%.2f] to [%.2f,%.2f]\n",
			b.MinX, b.MinY, b.MaxX, b.MaxY)
	}
}
