package txf_test

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beetlebugorg/txf/pkg/txf"
)

const example = `.SXF 4.0
P1 Sheet M-37-001
.DAT 2
.OBJ 1 L 31120000
.KEY 101
.NAME River
2
6015234.50 7412311.00
6015240.25 7412390.75
.SEM 1
9 River
.OBJ 2 TIT
.KEY 102
1
6015236.00 7412320.00
>River
.END
`

func ExampleParser_ParseReader() {
	parser := txf.NewParser()
	doc, err := parser.ParseReader(strings.NewReader(example), txf.ParseOptions{Encoding: "utf-8"})
	if err != nil {
		fmt.Println(err)
		return
	}

	sheet, _ := doc.PassportValue("P1")
	fmt.Println(doc.Magic(), doc.Version(), sheet)
	for _, obj := range doc.Objects() {
		if obj.IsTitle() {
			fmt.Printf("%d title %q\n", obj.Key(), obj.Title())
			continue
		}
		name, _ := obj.Semantic("9")
		fmt.Printf("%d %s %d points %s\n", obj.Key(), obj.ClassCode(), len(obj.Coordinates()), name)
	}
	// Output:
	// .SXF 4.0 Sheet M-37-001
	// 101 L 2 points River
	// 102 title "River"
}

func ExampleObjectIndex_Search() {
	doc, err := txf.NewParser().ParseReader(strings.NewReader(example), txf.ParseOptions{Encoding: "utf-8"})
	if err != nil {
		fmt.Println(err)
		return
	}

	idx := txf.NewObjectIndex(doc)
	hits := idx.Search(txf.Bounds{MinX: 6015235, MinY: 7412300, MaxX: 6015237, MaxY: 7412330})
	for _, obj := range hits {
		fmt.Println(obj.Key(), obj.ClassCode())
	}
	// Output:
	// 101 L
	// 102 TIT
}

func ExampleErrorKind() {
	broken := strings.Replace(example, ".DAT 2", ".DAT 3", 1)
	_, err := txf.NewParser().ParseReader(strings.NewReader(broken), txf.ParseOptions{Encoding: "utf-8"})

	var mismatch *txf.ErrCountMismatch
	if errors.As(err, &mismatch) {
		fmt.Println(txf.ErrorKind(err), mismatch.Line, mismatch.Declared, mismatch.Actual)
	}
	// Output:
	// count_mismatch 3 3 2
}
