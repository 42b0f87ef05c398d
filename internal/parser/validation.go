package parser

import (
	"strconv"
)

// checkCount compares a declared count token with the number of records
// actually collected for a block.
func checkCount(block, declared string, actual, line int) error {
	n, err := strconv.Atoi(declared)
	if err != nil {
		return &ErrSyntax{Line: line, Expected: "count within integer range", Got: declared}
	}
	if n != actual {
		return &ErrCountMismatch{Line: line, Block: block, Declared: n, Actual: actual}
	}
	return nil
}

// buildCoordinates validates a coordinate block against its count line.
func buildCoordinates(declared string, line int, coords []Coordinate) ([]Coordinate, error) {
	if err := checkCount("coordinates", declared, len(coords), line); err != nil {
		return nil, err
	}
	return coords, nil
}

// buildSemantics turns semantic lines into a code to value map. A repeated
// code is an error; the declared count is checked against the map size.
func buildSemantics(declared string, line int, lines []semLine, lineNums []int) (map[string]string, error) {
	sems := make(map[string]string, len(lines))
	for i, sl := range lines {
		if _, dup := sems[sl.code]; dup {
			return nil, &ErrDuplicateSemantic{Line: lineNums[i], Code: sl.code}
		}
		sems[sl.code] = trimValue(sl.value)
	}
	if err := checkCount("semantics", declared, len(sems), line); err != nil {
		return nil, err
	}
	return sems, nil
}
