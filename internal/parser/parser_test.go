package parser

import (
	"bufio"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"testing/iotest"
)

const scenarioA = ".SXF 1.0\n.DAT 1\n.OBJ 1 A\n.KEY 5\n2\n1.0 2.0\n3.0 4.0\n.SEM 1\n1 hello\n.END\n"

// sampleSheet mixes passport lines, ordinary and title objects
const sampleSheet = `.SIT 4.0
P1 Sheet M-37-001
P2  1:100000
.DAT 3
.OBJ 1 L 31120000
.KEY 101
.NAME Dnieper
3
6015234.50 7412311.00
6015240.25 7412390.75
6015260.00 7412402.00
.SEM 2
9 Dnieper
4 navigable
.OBJ 2 TIT
.KEY 102
.ANGLE 15
1
6015236.00 7412320.00
>Dnieper
.OBJ 3 S
.KEY 103
1
-1.5 -2.5
.SEM 1
31
.END
`

// TestParseScenarioA tests a minimal single-object document
func TestParseScenarioA(t *testing.T) {
	doc, err := NewParser().Parse(strings.NewReader(scenarioA))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if doc.Magic != ".SXF" {
		t.Errorf("Magic: got %q, expected .SXF", doc.Magic)
	}
	if doc.Version != "1.0" {
		t.Errorf("Version: got %q, expected 1.0", doc.Version)
	}
	if len(doc.Objects) != 1 {
		t.Fatalf("Expected 1 object, got %d", len(doc.Objects))
	}

	obj := doc.Objects[0]
	if obj.ClassCode != "A" {
		t.Errorf("ClassCode: got %q, expected A", obj.ClassCode)
	}
	if obj.Key != 5 {
		t.Errorf("Key: got %d, expected 5", obj.Key)
	}
	wantCoords := []Coordinate{{X: "1.0", Y: "2.0"}, {X: "3.0", Y: "4.0"}}
	if !reflect.DeepEqual(obj.Coordinates, wantCoords) {
		t.Errorf("Coordinates: got %v, expected %v", obj.Coordinates, wantCoords)
	}
	if !reflect.DeepEqual(obj.Semantics, map[string]string{"1": "hello"}) {
		t.Errorf("Semantics: got %v", obj.Semantics)
	}
	if obj.Kind != KindSemantic || obj.Title != "" {
		t.Errorf("expected ordinary object, got kind %v title %q", obj.Kind, obj.Title)
	}
	if len(doc.Passport) != 0 || doc.Passport == nil {
		t.Errorf("Passport: expected empty non-nil map, got %v", doc.Passport)
	}
}

// TestParseScenarioB tests a coordinate count larger than the coordinate block
func TestParseScenarioB(t *testing.T) {
	input := strings.Replace(scenarioA, "\n2\n", "\n3\n", 1)
	_, err := NewParser().Parse(strings.NewReader(input))

	var mismatch *ErrCountMismatch
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected *ErrCountMismatch, got %v", err)
	}
	if mismatch.Block != "coordinates" || mismatch.Declared != 3 || mismatch.Actual != 2 {
		t.Errorf("unexpected mismatch: %+v", mismatch)
	}
	if mismatch.Line != 5 {
		t.Errorf("Line: got %d, expected 5", mismatch.Line)
	}
}

// TestParseScenarioC tests a title object
func TestParseScenarioC(t *testing.T) {
	input := ".SXF 1.0\n.DAT 1\n.OBJ 1 TIT\n.KEY 7\n1\n10 20\n>Some Title\n.END\n"
	doc, err := NewParser().Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	obj := doc.Objects[0]
	if obj.Kind != KindTitle {
		t.Errorf("Kind: got %v, expected title", obj.Kind)
	}
	if obj.Title != "Some Title" {
		t.Errorf("Title: got %q, expected %q", obj.Title, "Some Title")
	}
	if len(obj.Semantics) != 0 {
		t.Errorf("title object should have empty semantics, got %v", obj.Semantics)
	}
}

// TestParseScenarioD tests an object count larger than the object list
func TestParseScenarioD(t *testing.T) {
	input := strings.Replace(scenarioA, ".DAT 1", ".DAT 2", 1)
	_, err := NewParser().Parse(strings.NewReader(input))

	var mismatch *ErrCountMismatch
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected *ErrCountMismatch, got %v", err)
	}
	if mismatch.Block != "objects" || mismatch.Declared != 2 || mismatch.Actual != 1 || mismatch.Line != 2 {
		t.Errorf("unexpected mismatch: %+v", mismatch)
	}
}

// TestParseScenarioE tests an empty passport block
func TestParseScenarioE(t *testing.T) {
	doc, err := NewParser().Parse(strings.NewReader(scenarioA))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.Passport == nil || len(doc.Passport) != 0 {
		t.Errorf("expected empty passport, got %v", doc.Passport)
	}
}

func TestParseSampleSheet(t *testing.T) {
	doc, err := NewParser().Parse(strings.NewReader(sampleSheet))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if doc.Magic != ".SIT" || doc.Version != "4.0" {
		t.Errorf("header: got %s %s", doc.Magic, doc.Version)
	}
	wantPassport := map[string]string{"P1": "Sheet M-37-001", "P2": "1:100000"}
	if !reflect.DeepEqual(doc.Passport, wantPassport) {
		t.Errorf("Passport: got %v, expected %v", doc.Passport, wantPassport)
	}
	if doc.ObjectCount() != 3 {
		t.Fatalf("ObjectCount: got %d, expected 3", doc.ObjectCount())
	}
	if doc.CoordinateCount() != 5 {
		t.Errorf("CoordinateCount: got %d, expected 5", doc.CoordinateCount())
	}

	river := doc.Objects[0]
	if river.ClassCode != "L" || river.LocalizationCode != "31120000" {
		t.Errorf("river header: got %q %q", river.ClassCode, river.LocalizationCode)
	}
	if river.Fields[".NAME"] != "Dnieper" {
		t.Errorf(".NAME: got %q", river.Fields[".NAME"])
	}
	if river.Semantics["4"] != "navigable" || len(river.Semantics) != 2 {
		t.Errorf("river semantics: got %v", river.Semantics)
	}
	if river.Line != 5 {
		t.Errorf("river Line: got %d, expected 5", river.Line)
	}

	label := doc.Objects[1]
	if label.Kind != KindTitle || label.Title != "Dnieper" {
		t.Errorf("label: got kind %v title %q", label.Kind, label.Title)
	}
	if label.Fields[".ANGLE"] != "15" {
		t.Errorf(".ANGLE: got %q", label.Fields[".ANGLE"])
	}

	area := doc.Objects[2]
	if area.Semantics["31"] != "" || len(area.Semantics) != 1 {
		t.Errorf("area semantics: got %v", area.Semantics)
	}
	if area.Coordinates[0] != (Coordinate{X: "-1.5", Y: "-2.5"}) {
		t.Errorf("area coordinate: got %v", area.Coordinates[0])
	}
}

func TestParseRepeatedTagsLastWins(t *testing.T) {
	input := ".SXF 1.0\nP1 first\nP1 second\n.DAT 1\n.OBJ 1 A\n.KEY 5\n.NAME old\n.NAME new\n1\n1 2\n.SEM 1\n1 x\n.END\n"
	doc, err := NewParser().Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !reflect.DeepEqual(doc.Passport, map[string]string{"P1": "second"}) {
		t.Errorf("Passport: got %v", doc.Passport)
	}
	want := map[string]string{".KEY": "5", ".NAME": "new"}
	if !reflect.DeepEqual(doc.Objects[0].Fields, want) {
		t.Errorf("Fields: got %v, expected %v", doc.Objects[0].Fields, want)
	}
}

// TestObjectInvariants checks properties every parsed object must satisfy
func TestObjectInvariants(t *testing.T) {
	doc, err := NewParser().Parse(strings.NewReader(sampleSheet))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	for _, obj := range doc.Objects {
		if obj.Fields[KeyField] != strconv.Itoa(obj.Key) {
			t.Errorf("object %d: .KEY field %q does not match key", obj.Key, obj.Fields[KeyField])
		}
		hasSemantics := obj.Semantics != nil
		isTitle := obj.Kind == KindTitle
		if hasSemantics == isTitle {
			t.Errorf("object %d: semantics present=%v, title=%v", obj.Key, hasSemantics, isTitle)
		}
	}
}

func TestParseDeterministic(t *testing.T) {
	p := NewParser()
	first, err := p.Parse(strings.NewReader(sampleSheet))
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.Parse(strings.NewReader(sampleSheet))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("parsing the same text twice produced different documents")
	}
}

func TestParseLineEndingsAndBlankLines(t *testing.T) {
	input := strings.ReplaceAll(scenarioA, "\n", "\r\n\r\n")
	input = strings.Replace(input, ".KEY 5", "   .KEY 5", 1)

	doc, err := NewParser().Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.Objects[0].Semantics["1"] != "hello" {
		t.Errorf("semantics: got %v", doc.Objects[0].Semantics)
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
	}{
		{"empty input", "", 1},
		{"bad header", ".XYZ 1.0\n", 1},
		{"missing .DAT", ".SXF 1.0\nP1 x\n.OBJ 1 A\n", 3},
		{"no objects", ".SXF 1.0\n.DAT 0\n.END\n", 3},
		{"missing .END", strings.TrimSuffix(scenarioA, ".END\n"), 10},
		{"no key or fields", ".SXF 1.0\n.DAT 1\n.OBJ 1 A\n1\n1 2\n.SEM 1\n1 x\n.END\n", 4},
		{"no coordinates", ".SXF 1.0\n.DAT 1\n.OBJ 1 A\n.KEY 1\n1\n.SEM 1\n1 x\n.END\n", 6},
		{"no count line", ".SXF 1.0\n.DAT 1\n.OBJ 1 A\n.KEY 1\n.SEM 1\n1 x\n.END\n", 5},
		{"no semantic lines", ".SXF 1.0\n.DAT 1\n.OBJ 1 A\n.KEY 1\n1\n1 2\n.SEM 0\n.END\n", 8},
		{"title line on ordinary object", ".SXF 1.0\n.DAT 1\n.OBJ 1 A\n.KEY 1\n1\n1 2\n>text\n.END\n", 7},
		{"title object without title", ".SXF 1.0\n.DAT 1\n.OBJ 1 TIT\n.KEY 1\n1\n1 2\n.END\n", 7},
		{"malformed object header", ".SXF 1.0\n.DAT 1\n.OBJ x A\n", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().Parse(strings.NewReader(tt.input))
			var syntax *ErrSyntax
			if !errors.As(err, &syntax) {
				t.Fatalf("expected *ErrSyntax, got %v", err)
			}
			if syntax.Line != tt.wantLine {
				t.Errorf("Line: got %d, expected %d (%v)", syntax.Line, tt.wantLine, err)
			}
		})
	}
}

func TestParseSemanticCountMismatch(t *testing.T) {
	input := strings.Replace(scenarioA, ".SEM 1", ".SEM 2", 1)
	_, err := NewParser().Parse(strings.NewReader(input))

	var mismatch *ErrCountMismatch
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected *ErrCountMismatch, got %v", err)
	}
	if mismatch.Block != "semantics" || mismatch.Declared != 2 || mismatch.Actual != 1 || mismatch.Line != 8 {
		t.Errorf("unexpected mismatch: %+v", mismatch)
	}
}

func TestParseMissingKey(t *testing.T) {
	input := strings.Replace(scenarioA, ".KEY 5", ".NAME river", 1)
	_, err := NewParser().Parse(strings.NewReader(input))

	var missing *ErrMissingField
	if !errors.As(err, &missing) {
		t.Fatalf("expected *ErrMissingField, got %v", err)
	}
	if missing.Field != ".KEY" || missing.Line != 3 {
		t.Errorf("unexpected missing field: %+v", missing)
	}
}

func TestParseTitleHeaderWithSemantics(t *testing.T) {
	input := strings.Replace(scenarioA, ".OBJ 1 A", ".OBJ 1 TIT", 1)
	doc, err := NewParser().Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	obj := doc.Objects[0]
	if obj.Kind != KindSemantic || obj.ClassCode != "TIT" {
		t.Errorf("expected ordinary object with class TIT, got kind %v class %q", obj.Kind, obj.ClassCode)
	}
}

func TestParseTrailingContent(t *testing.T) {
	input := scenarioA + "garbage after end\n"

	if _, err := NewParser().Parse(strings.NewReader(input)); err != nil {
		t.Errorf("trailing content should be ignored by default: %v", err)
	}

	opts := DefaultParseOptions()
	opts.RejectTrailingContent = true
	_, err := NewParser().ParseWithOptions(strings.NewReader(input), opts)
	var trailing *ErrTrailingContent
	if !errors.As(err, &trailing) {
		t.Fatalf("expected *ErrTrailingContent, got %v", err)
	}
	if trailing.Line != 11 {
		t.Errorf("Line: got %d, expected 11", trailing.Line)
	}

	if _, err := NewParser().ParseWithOptions(strings.NewReader(scenarioA+"\n\n"), opts); err != nil {
		t.Errorf("trailing blank lines should be accepted: %v", err)
	}
}

func TestParseLineTooLong(t *testing.T) {
	opts := DefaultParseOptions()
	opts.MaxLineSize = 16
	input := strings.Replace(scenarioA, "1 hello", "1 "+strings.Repeat("x", 64), 1)

	_, err := NewParser().ParseWithOptions(strings.NewReader(input), opts)
	if err == nil {
		t.Fatal("expected error for overlong line")
	}
	var syntax *ErrSyntax
	if errors.As(err, &syntax) {
		t.Errorf("read failure reported as syntax error: %v", err)
	}
	var readErr *ErrRead
	if !errors.As(err, &readErr) || !errors.Is(err, bufio.ErrTooLong) {
		t.Errorf("expected *ErrRead wrapping bufio.ErrTooLong, got %v", err)
	}
}

func TestParseReadError(t *testing.T) {
	boom := errors.New("boom")
	r := iotest.DataErrReader(iotest.ErrReader(boom))

	_, err := NewParser().Parse(r)
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped read error, got %v", err)
	}
}

// BenchmarkParse benchmarks parsing a generated sheet
func BenchmarkParse(b *testing.B) {
	var sb strings.Builder
	sb.WriteString(".SXF 4.0\nP1 bench\n.DAT 500\n")
	for i := 0; i < 500; i++ {
		sb.WriteString(".OBJ " + strconv.Itoa(i) + " L\n.KEY " + strconv.Itoa(i) + "\n.NAME object\n10\n")
		for j := 0; j < 10; j++ {
			sb.WriteString("6015234.50 7412311.00\n")
		}
		sb.WriteString(".SEM 2\n9 name\n4 value\n")
	}
	sb.WriteString(".END\n")
	input := sb.String()

	parser := NewParser()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := parser.Parse(strings.NewReader(input)); err != nil {
			b.Fatalf("parse failed: %v", err)
		}
	}
}
