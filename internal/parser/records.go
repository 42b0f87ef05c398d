package parser

// Record recognizers. Each inspects exactly one line and reports whether the
// line has the record's shape; none of them consume input from the cursor.

// Literal markers of the format. They are case-sensitive.
const (
	markerSXF   = ".SXF"
	markerSIT   = ".SIT"
	markerDAT   = ".DAT"
	markerOBJ   = ".OBJ"
	markerKEY   = ".KEY"
	markerSEM   = ".SEM"
	markerEND   = ".END"
	markerTitle = ">"

	// titleClass is the header token that introduces a title object.
	titleClass = "TIT"

	// KeyField is the reserved field name holding the object's own number.
	KeyField = markerKEY
)

type fileHeader struct {
	magic   string
	version string
}

type passportLine struct {
	tag   string
	value string
}

type objectHeader struct {
	seq              string
	classCode        string
	localizationCode string
}

func (h objectHeader) isTitle() bool {
	return h.classCode == titleClass
}

type fieldLine struct {
	name  string
	value string
}

type semLine struct {
	code  string
	value string
}

// parseFileHeader recognizes ".SXF 4.0" or ".SIT 3.0".
func parseFileHeader(text string) (fileHeader, bool) {
	sc := newScanner(text)
	var magic string
	switch {
	case sc.literal(markerSXF):
		magic = markerSXF
	case sc.literal(markerSIT):
		magic = markerSIT
	default:
		return fileHeader{}, false
	}
	sc.skipSpace()
	version, ok := sc.decimal()
	if !ok {
		return fileHeader{}, false
	}
	return fileHeader{magic: magic, version: version}, true
}

// parsePassportLine recognizes "P12 value".
func parsePassportLine(text string) (passportLine, bool) {
	sc := newScanner(text)
	if !sc.literal("P") {
		return passportLine{}, false
	}
	digits, ok := sc.integer()
	if !ok {
		return passportLine{}, false
	}
	value, ok := valueAfterSpace(sc)
	if !ok {
		return passportLine{}, false
	}
	return passportLine{tag: "P" + digits, value: value}, true
}

// parseObjectsStart recognizes ".DAT 15" and returns the declared object count.
func parseObjectsStart(text string) (string, bool) {
	return markerInteger(text, markerDAT)
}

// parseEndMarker recognizes ".END".
func parseEndMarker(text string) bool {
	sc := newScanner(text)
	return sc.literal(markerEND) && (sc.atEnd() || sc.skipSpace())
}

// parseObjectHeader recognizes ".OBJ 1 L" or ".OBJ 1 L 31410000".
func parseObjectHeader(text string) (objectHeader, bool) {
	sc := newScanner(text)
	if !sc.literal(markerOBJ) {
		return objectHeader{}, false
	}
	sc.skipSpace()
	seq, ok := sc.integer()
	if !ok {
		return objectHeader{}, false
	}
	sc.skipSpace()
	class, ok := sc.ident()
	if !ok {
		return objectHeader{}, false
	}
	h := objectHeader{seq: seq, classCode: class}
	if sc.skipSpace() {
		h.localizationCode, _ = sc.token()
	}
	return h, true
}

// parseKeyLine recognizes ".KEY 42".
func parseKeyLine(text string) (string, bool) {
	return markerInteger(text, markerKEY)
}

// parseFieldLine recognizes ".NAME value". The name keeps its leading dot.
func parseFieldLine(text string) (fieldLine, bool) {
	sc := newScanner(text)
	if !sc.literal(".") {
		return fieldLine{}, false
	}
	name, ok := sc.ident()
	if !ok {
		return fieldLine{}, false
	}
	value, ok := valueAfterSpace(sc)
	if !ok {
		return fieldLine{}, false
	}
	return fieldLine{name: "." + name, value: value}, true
}

// parseCoordCount recognizes a line holding a single integer.
func parseCoordCount(text string) (string, bool) {
	sc := newScanner(text)
	n, ok := sc.integer()
	if !ok || !sc.atEnd() {
		return "", false
	}
	return n, true
}

// parseCoordLine recognizes "x y" where both are numeric-looking tokens.
func parseCoordLine(text string) (Coordinate, bool) {
	sc := newScanner(text)
	x, ok := sc.decimal()
	if !ok || !sc.skipSpace() {
		return Coordinate{}, false
	}
	y, ok := sc.decimal()
	if !ok {
		return Coordinate{}, false
	}
	return Coordinate{X: x, Y: y}, true
}

// parseSemCount recognizes ".SEM 3" and returns the declared semantic count.
func parseSemCount(text string) (string, bool) {
	return markerInteger(text, markerSEM)
}

// parseSemLine recognizes "9 value".
func parseSemLine(text string) (semLine, bool) {
	sc := newScanner(text)
	code, ok := sc.integer()
	if !ok {
		return semLine{}, false
	}
	value, ok := valueAfterSpace(sc)
	if !ok {
		return semLine{}, false
	}
	return semLine{code: code, value: value}, true
}

// parseTitleLine recognizes ">text". Leading spaces of the text are kept.
func parseTitleLine(text string) (string, bool) {
	sc := newScanner(text)
	if !sc.literal(markerTitle) {
		return "", false
	}
	return sc.rest(), true
}

// isSectionMarker reports whether a field-shaped line is one of the markers
// that open or close a section, which ends an object's field list.
func isSectionMarker(name string) bool {
	switch name {
	case markerOBJ, markerSEM, markerDAT, markerEND:
		return true
	}
	return false
}

// markerInteger recognizes marker followed by an integer.
func markerInteger(text, marker string) (string, bool) {
	sc := newScanner(text)
	if !sc.literal(marker) {
		return "", false
	}
	sc.skipSpace()
	return sc.integer()
}

// valueAfterSpace reads the value that follows a tag: either nothing, or a
// whitespace run and the rest of the line.
func valueAfterSpace(sc *scanner) (string, bool) {
	if sc.atEnd() {
		return "", true
	}
	if !sc.skipSpace() {
		return "", false
	}
	return sc.rest(), true
}
