package parser

import (
	"strconv"
)

// ObjectKind distinguishes ordinary objects, which carry semantics, from
// title objects, which carry display text.
type ObjectKind int

const (
	// KindSemantic is an ordinary object with a .SEM block.
	KindSemantic ObjectKind = iota
	// KindTitle is a title object (".OBJ n TIT") ending in a ">" line.
	KindTitle
)

// String returns the name of the object kind.
func (k ObjectKind) String() string {
	switch k {
	case KindSemantic:
		return "semantic"
	case KindTitle:
		return "title"
	default:
		return "unknown"
	}
}

// Coordinate is one coordinate line as written in the file. The tokens are
// not converted; consumers decide how to interpret them.
type Coordinate struct {
	X string
	Y string
}

// GeoObject is one geographic object of a TXF document.
type GeoObject struct {
	// ClassCode is the class token of the object header (e.g. "L", "S", "TIT")
	ClassCode string
	// LocalizationCode is the optional token after the class, empty if absent
	LocalizationCode string
	// Key is the object's own number, taken from the .KEY field
	Key int
	// Fields holds every "."-prefixed attribute line, .KEY included
	Fields map[string]string
	// Coordinates in file order
	Coordinates []Coordinate
	// Kind tells whether Semantics or Title is populated
	Kind ObjectKind
	// Title is the display text of a title object
	Title string
	// Semantics maps semantic codes to values for ordinary objects
	Semantics map[string]string
	// Line is the line number of the object header
	Line int
}

// objectParts collects the sub-matches of one object before assembly.
type objectParts struct {
	header    objectHeader
	line      int
	fields    []fieldLine
	coords    []Coordinate
	kind      ObjectKind
	title     string
	semantics map[string]string
}

// buildObject turns collected sub-matches into a GeoObject. The .KEY field must
// be present and integral; its stored value is normalized to the decimal form
// of Key.
func buildObject(p objectParts) (*GeoObject, error) {
	fields := make(map[string]string, len(p.fields))
	for _, f := range p.fields {
		fields[f.name] = trimValue(f.value)
	}

	raw, ok := fields[KeyField]
	if !ok {
		return nil, &ErrMissingField{Line: p.line, Field: KeyField}
	}
	key, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &ErrMissingField{Line: p.line, Field: KeyField, Value: raw}
	}
	fields[KeyField] = strconv.Itoa(key)

	obj := &GeoObject{
		ClassCode:        p.header.classCode,
		LocalizationCode: p.header.localizationCode,
		Key:              key,
		Fields:           fields,
		Coordinates:      p.coords,
		Kind:             p.kind,
		Line:             p.line,
	}
	if p.kind == KindTitle {
		obj.Title = trimValue(p.title)
	} else {
		obj.Semantics = p.semantics
	}
	return obj, nil
}
