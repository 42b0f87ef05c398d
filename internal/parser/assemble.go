package parser

// Assemblers. Each one consumes the lines of one section from the cursor,
// collects the sub-matches and hands them to a build* reducer. There is no
// backtracking across sections: once a section has started, every line must
// fit it or the parse fails.

// expect builds the error for a line that does not fit the current section.
// A pending read error takes precedence over the syntax error it caused.
func (c *cursor) expect(what string, l line, ok bool) error {
	if err := c.err(); err != nil {
		return err
	}
	if !ok {
		return &ErrSyntax{Line: l.num, Expected: what}
	}
	return &ErrSyntax{Line: l.num, Expected: what, Got: l.text}
}

// parseDocument reads a whole file: header, passport, .DAT, objects, .END.
func parseDocument(c *cursor, opts ParseOptions) (*Document, error) {
	var parts documentParts

	l, ok := c.next()
	isHeader := false
	if ok {
		parts.header, isHeader = parseFileHeader(l.text)
	}
	if !isHeader {
		return nil, c.expect("file header (.SXF or .SIT with version)", l, ok)
	}

	for {
		l, ok = c.peek()
		if !ok {
			break
		}
		pl, isPassport := parsePassportLine(l.text)
		if !isPassport {
			break
		}
		c.next()
		parts.passport = append(parts.passport, pl)
	}

	l, ok = c.next()
	declared, isStart := "", false
	if ok {
		declared, isStart = parseObjectsStart(l.text)
	}
	if !isStart {
		return nil, c.expect("passport line or .DAT object count", l, ok)
	}
	parts.declared = declared
	parts.declaredLine = l.num

	for {
		l, ok = c.peek()
		if !ok {
			break
		}
		header, isHeader := parseObjectHeader(l.text)
		if !isHeader {
			break
		}
		c.next()
		obj, err := parseObject(c, header, l.num)
		if err != nil {
			return nil, err
		}
		parts.objects = append(parts.objects, obj)
	}
	if len(parts.objects) == 0 {
		return nil, c.expect("object header (.OBJ)", l, ok)
	}

	l, ok = c.next()
	if !ok || !parseEndMarker(l.text) {
		return nil, c.expect("object header (.OBJ) or .END", l, ok)
	}

	doc, err := buildDocument(parts)
	if err != nil {
		return nil, err
	}

	if opts.RejectTrailingContent {
		if l, ok := c.next(); ok {
			return nil, &ErrTrailingContent{Line: l.num, Text: l.text}
		}
		if err := c.err(); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// parseObject reads the body of an object whose header was already consumed.
func parseObject(c *cursor, header objectHeader, headerLine int) (*GeoObject, error) {
	parts := objectParts{header: header, line: headerLine}

	for {
		l, ok := c.peek()
		if !ok {
			break
		}
		if key, isKey := parseKeyLine(l.text); isKey {
			c.next()
			parts.fields = append(parts.fields, fieldLine{name: KeyField, value: key})
			continue
		}
		f, isField := parseFieldLine(l.text)
		if !isField || isSectionMarker(f.name) {
			break
		}
		c.next()
		parts.fields = append(parts.fields, f)
	}
	if len(parts.fields) == 0 {
		l, ok := c.peek()
		return nil, c.expect(".KEY or field line", l, ok)
	}

	coords, err := parseCoordBlock(c)
	if err != nil {
		return nil, err
	}
	parts.coords = coords

	l, ok := c.peek()
	if ok {
		if title, isTitle := parseTitleLine(l.text); isTitle && header.isTitle() {
			c.next()
			parts.kind = KindTitle
			parts.title = title
			return buildObject(parts)
		}
		if _, isSem := parseSemCount(l.text); isSem {
			sems, err := parseSemBlock(c)
			if err != nil {
				return nil, err
			}
			parts.kind = KindSemantic
			parts.semantics = sems
			return buildObject(parts)
		}
	}
	if header.isTitle() {
		return nil, c.expect("title line (>) or .SEM", l, ok)
	}
	return nil, c.expect("coordinate line or .SEM", l, ok)
}

// parseCoordBlock reads a coordinate count line and the coordinate lines after it.
func parseCoordBlock(c *cursor) ([]Coordinate, error) {
	l, ok := c.peek()
	declared, isCount := "", false
	if ok {
		declared, isCount = parseCoordCount(l.text)
	}
	if !isCount {
		return nil, c.expect("field line or coordinate count", l, ok)
	}
	c.next()
	countLine := l.num

	var coords []Coordinate
	for {
		l, ok = c.peek()
		if !ok {
			break
		}
		coord, isCoord := parseCoordLine(l.text)
		if !isCoord {
			break
		}
		c.next()
		coords = append(coords, coord)
	}
	if len(coords) == 0 {
		return nil, c.expect("coordinate line", l, ok)
	}
	return buildCoordinates(declared, countLine, coords)
}

// parseSemBlock reads a .SEM header and the semantic lines after it.
func parseSemBlock(c *cursor) (map[string]string, error) {
	l, _ := c.next()
	declared, _ := parseSemCount(l.text)
	semLineNum := l.num

	var (
		lines []semLine
		nums  []int
		ok    bool
	)
	for {
		l, ok = c.peek()
		if !ok {
			break
		}
		sl, isSem := parseSemLine(l.text)
		if !isSem {
			break
		}
		c.next()
		lines = append(lines, sl)
		nums = append(nums, l.num)
	}
	if len(lines) == 0 {
		return nil, c.expect("semantic line", l, ok)
	}
	return buildSemantics(declared, semLineNum, lines, nums)
}
