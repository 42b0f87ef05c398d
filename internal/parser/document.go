package parser

// Document is a parsed TXF file. It is the top-level structure returned by
// the parser and is not modified after parsing.
type Document struct {
	Magic    string            // ".SXF" or ".SIT"
	Version  string            // version token following the magic
	Passport map[string]string // passport lines keyed by tag ("P1", "P12", ...)
	Objects  []*GeoObject      // objects in file order
}

// documentParts collects the sub-matches of a whole file before assembly.
type documentParts struct {
	header       fileHeader
	passport     []passportLine
	declared     string
	declaredLine int
	objects      []*GeoObject
}

// buildDocument turns collected sub-matches into a Document, checking the
// declared object count.
func buildDocument(p documentParts) (*Document, error) {
	if err := checkCount("objects", p.declared, len(p.objects), p.declaredLine); err != nil {
		return nil, err
	}

	passport := make(map[string]string, len(p.passport))
	for _, pl := range p.passport {
		passport[pl.tag] = trimValue(pl.value)
	}

	return &Document{
		Magic:    p.header.magic,
		Version:  p.header.version,
		Passport: passport,
		Objects:  p.objects,
	}, nil
}

// ObjectCount returns the number of objects in the document.
func (d *Document) ObjectCount() int {
	return len(d.Objects)
}

// CoordinateCount returns the total number of coordinates over all objects.
func (d *Document) CoordinateCount() int {
	n := 0
	for _, obj := range d.Objects {
		n += len(obj.Coordinates)
	}
	return n
}
