package main

import (
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/txf/pkg/txf"
)

func main() {
	paths, err := txf.DiscoverFiles("sheets")
	if err != nil {
		log.Fatal(err)
	}

	opts := txf.DefaultLoadOptions()
	opts.Cache = txf.NewDocumentCache(512 * 1024 * 1024) // 512MB
	opts.ErrorLog = os.Stderr
	opts.Progress = func(loaded, total int) {
		fmt.Printf("\rLoading: %d/%d", loaded, total)
	}

	set, errs := txf.LoadFilesParallel(paths, txf.NewParser(), opts)
	fmt.Println()
	if len(errs) > 0 {
		fmt.Printf("Skipped %d files due to errors\n", len(errs))
	}
	fmt.Printf("Loaded %d files with %d objects\n", len(set.Entries), set.ObjectCount())

	stats := opts.Cache.Stats()
	fmt.Printf("Cache: %d documents, ~%d KB\n", stats.DocumentCount, stats.UsedMemory/1024)
}
