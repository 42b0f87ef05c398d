package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/txf/pkg/txf"
)

func main() {
	// Parse sheet
	parser := txf.NewParser()
	doc, err := parser.Parse("M-37-001.txf")
	if err != nil {
		log.Fatal(err)
	}

	// Build R-tree index over object bounds
	idx := txf.NewObjectIndex(doc)
	fmt.Printf("Indexed %d objects (%d without numeric coordinates)\n", idx.Count(), idx.Skipped())

	// Query a window in sheet coordinates
	window := txf.Bounds{
		MinX: 6015000, MaxX: 6016000,
		MinY: 7412000, MaxY: 7413000,
	}
	objects := idx.Search(window)

	fmt.Printf("Objects in window: %d\n", len(objects))
	for _, obj := range objects {
		if obj.IsTitle() {
			fmt.Printf("  %d: title %q\n", obj.Key(), obj.Title())
			continue
		}
		name, _ := obj.Field(".NAME")
		fmt.Printf("  %d: %s %s (%d points)\n", obj.Key(), obj.ClassCode(), name, len(obj.Coordinates()))
	}
}
