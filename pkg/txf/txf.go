// Package txf provides a read-only public API for parsing TXF files, the text
// form of the SXF/SIT cartographic exchange format.
package txf

import (
	"fmt"
	"io"
	"os"

	"github.com/beetlebugorg/txf/internal/parser"
)

// Parser parses TXF files.
//
// Create a parser with NewParser and use Parse, ParseWithOptions or
// ParseReader to read documents.
type Parser interface {
	// Parse reads a TXF file encoded in the default encoding (windows-1251)
	// and returns the parsed document.
	//
	// Returns an error if the file cannot be read or does not follow the
	// format. No partial document is returned.
	Parse(filename string) (*Document, error)

	// ParseWithOptions parses a TXF file with custom options.
	//
	// Use ParseOptions to select the text encoding, the line size limit and
	// the handling of content after .END.
	ParseWithOptions(filename string, opts ParseOptions) (*Document, error)

	// ParseReader parses TXF text from r, decoding it with opts.Encoding.
	ParseReader(r io.Reader, opts ParseOptions) (*Document, error)
}

// NewParser creates a new TXF parser with default settings.
//
// Example:
//
//	parser := txf.NewParser()
//	doc, err := parser.Parse("M-37-001.txf")
func NewParser() Parser {
	return &parserWrapper{
		internal: parser.NewParser(),
	}
}

// parserWrapper wraps the internal parser and converts types
type parserWrapper struct {
	internal parser.Parser
}

func (p *parserWrapper) Parse(filename string) (*Document, error) {
	return p.ParseWithOptions(filename, DefaultParseOptions())
}

func (p *parserWrapper) ParseWithOptions(filename string, opts ParseOptions) (*Document, error) {
	// Resolve the encoding first so a bad label never touches the filesystem
	enc, err := lookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filename, err)
	}
	defer f.Close()

	return p.parse(decodeReader(f, enc), opts)
}

func (p *parserWrapper) ParseReader(r io.Reader, opts ParseOptions) (*Document, error) {
	enc, err := lookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}
	return p.parse(decodeReader(r, enc), opts)
}

func (p *parserWrapper) parse(r io.Reader, opts ParseOptions) (*Document, error) {
	internalOpts := parser.ParseOptions{
		MaxLineSize:           opts.MaxLineSize,
		RejectTrailingContent: opts.RejectTrailingContent,
	}
	internalDoc, err := p.internal.ParseWithOptions(r, internalOpts)
	if err != nil {
		return nil, err
	}
	return convertDocument(internalDoc), nil
}

// Document represents a parsed TXF file.
//
// A document carries the format marker and version, the passport (sheet
// metadata keyed by tag such as "P1") and the geographic objects in file
// order.
//
// All fields are private; accessors return copies of maps and slices so a
// Document can be shared between goroutines.
type Document struct {
	magic    string
	version  string
	passport map[string]string
	objects  []*Object
}

// Magic returns the format marker, ".SXF" or ".SIT".
func (d *Document) Magic() string {
	return d.magic
}

// Version returns the version token that follows the format marker.
func (d *Document) Version() string {
	return d.version
}

// Passport returns a copy of the passport map.
func (d *Document) Passport() map[string]string {
	return copyMap(d.passport)
}

// PassportValue returns the value of one passport tag.
func (d *Document) PassportValue(tag string) (string, bool) {
	v, ok := d.passport[tag]
	return v, ok
}

// Objects returns all objects in file order.
func (d *Document) Objects() []*Object {
	out := make([]*Object, len(d.objects))
	copy(out, d.objects)
	return out
}

// ObjectCount returns the number of objects in the document.
func (d *Document) ObjectCount() int {
	return len(d.objects)
}

// CoordinateCount returns the total number of coordinates over all objects.
func (d *Document) CoordinateCount() int {
	n := 0
	for _, obj := range d.objects {
		n += len(obj.coordinates)
	}
	return n
}

// TitleObjects returns the title objects in file order.
func (d *Document) TitleObjects() []*Object {
	var out []*Object
	for _, obj := range d.objects {
		if obj.IsTitle() {
			out = append(out, obj)
		}
	}
	return out
}

// ObjectsByClass returns the objects whose class code equals code.
func (d *Document) ObjectsByClass(code string) []*Object {
	var out []*Object
	for _, obj := range d.objects {
		if obj.classCode == code {
			out = append(out, obj)
		}
	}
	return out
}

// Bounds returns the bounding box of every numeric coordinate in the
// document. ok is false if no coordinate could be read as a number.
func (d *Document) Bounds() (b Bounds, ok bool) {
	for _, obj := range d.objects {
		ob, has := obj.Bounds()
		if !has {
			continue
		}
		if !ok {
			b, ok = ob, true
			continue
		}
		b = b.Union(ob)
	}
	return b, ok
}

// ObjectKind distinguishes ordinary objects from title objects.
type ObjectKind = parser.ObjectKind

const (
	KindSemantic = parser.KindSemantic
	KindTitle    = parser.KindTitle
)

// Object is one geographic object of a document.
//
// Ordinary objects carry a semantics map; title objects carry display text
// instead. Kind tells which one applies.
type Object struct {
	classCode        string
	localizationCode string
	key              int
	fields           map[string]string
	coordinates      []Coordinate
	kind             ObjectKind
	title            string
	semantics        map[string]string
	line             int
}

// ClassCode returns the class token of the object header.
func (o *Object) ClassCode() string {
	return o.classCode
}

// LocalizationCode returns the optional token after the class code.
func (o *Object) LocalizationCode() string {
	return o.localizationCode
}

// Key returns the object number from the .KEY field.
func (o *Object) Key() int {
	return o.key
}

// Fields returns a copy of the field map. Names keep their leading dot.
func (o *Object) Fields() map[string]string {
	return copyMap(o.fields)
}

// Field returns the value of one field, e.g. Field(".NAME").
func (o *Object) Field(name string) (string, bool) {
	v, ok := o.fields[name]
	return v, ok
}

// Coordinates returns a copy of the coordinates in file order.
func (o *Object) Coordinates() []Coordinate {
	out := make([]Coordinate, len(o.coordinates))
	copy(out, o.coordinates)
	return out
}

// Kind returns whether the object is ordinary or a title.
func (o *Object) Kind() ObjectKind {
	return o.kind
}

// IsTitle reports whether the object is a title object.
func (o *Object) IsTitle() bool {
	return o.kind == KindTitle
}

// Title returns the display text of a title object.
func (o *Object) Title() string {
	return o.title
}

// Semantics returns a copy of the semantics map, nil for title objects.
func (o *Object) Semantics() map[string]string {
	if o.semantics == nil {
		return nil
	}
	return copyMap(o.semantics)
}

// Semantic returns the value of one semantic code.
func (o *Object) Semantic(code string) (string, bool) {
	v, ok := o.semantics[code]
	return v, ok
}

// Line returns the line number of the object header in the source file.
func (o *Object) Line() int {
	return o.line
}

// convertDocument converts an internal document to the public type.
func convertDocument(internal *parser.Document) *Document {
	doc := &Document{
		magic:    internal.Magic,
		version:  internal.Version,
		passport: internal.Passport,
		objects:  make([]*Object, len(internal.Objects)),
	}
	for i, obj := range internal.Objects {
		doc.objects[i] = convertObject(obj)
	}
	return doc
}

func convertObject(internal *parser.GeoObject) *Object {
	coords := make([]Coordinate, len(internal.Coordinates))
	for i, c := range internal.Coordinates {
		coords[i] = Coordinate{X: c.X, Y: c.Y}
	}
	return &Object{
		classCode:        internal.ClassCode,
		localizationCode: internal.LocalizationCode,
		key:              internal.Key,
		fields:           internal.Fields,
		coordinates:      coords,
		kind:             internal.Kind,
		title:            internal.Title,
		semantics:        internal.Semantics,
		line:             internal.Line,
	}
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
