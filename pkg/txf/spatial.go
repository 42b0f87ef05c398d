package txf

import (
	"fmt"
	"strconv"
)

// Coordinate is one coordinate pair exactly as written in the file.
//
// SXF sheets usually store plane rectangular coordinates in metres, with X
// the northing and Y the easting, but the parser does not assume any unit.
type Coordinate struct {
	X string
	Y string
}

// Float parses both tokens as float64.
func (c Coordinate) Float() (x, y float64, err error) {
	x, err = strconv.ParseFloat(c.X, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("coordinate x %q: %w", c.X, err)
	}
	y, err = strconv.ParseFloat(c.Y, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("coordinate y %q: %w", c.Y, err)
	}
	return x, y, nil
}

// Bounds represents an axis-aligned bounding box in file coordinates.
type Bounds struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Contains returns true if the point (x, y) is within the bounds.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX &&
		y >= b.MinY && y <= b.MaxY
}

// Intersects returns true if the given bounds intersects with this bounds.
// Touching edges count as an intersection.
func (b Bounds) Intersects(other Bounds) bool {
	return !(other.MaxX < b.MinX ||
		other.MinX > b.MaxX ||
		other.MaxY < b.MinY ||
		other.MinY > b.MaxY)
}

// Expand returns a new Bounds expanded by the given margin in all directions.
func (b Bounds) Expand(margin float64) Bounds {
	return Bounds{
		MinX: b.MinX - margin,
		MinY: b.MinY - margin,
		MaxX: b.MaxX + margin,
		MaxY: b.MaxY + margin,
	}
}

// Union returns the smallest Bounds covering both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{
		MinX: min(b.MinX, other.MinX),
		MinY: min(b.MinY, other.MinY),
		MaxX: max(b.MaxX, other.MaxX),
		MaxY: max(b.MaxY, other.MaxY),
	}
}

// Bounds returns the bounding box of the object's numeric coordinates.
// Coordinates whose tokens are not numbers are left out; ok is false if
// none remain.
func (o *Object) Bounds() (b Bounds, ok bool) {
	for _, c := range o.coordinates {
		x, y, err := c.Float()
		if err != nil {
			continue
		}
		if !ok {
			b = Bounds{MinX: x, MinY: y, MaxX: x, MaxY: y}
			ok = true
			continue
		}
		b.MinX = min(b.MinX, x)
		b.MinY = min(b.MinY, y)
		b.MaxX = max(b.MaxX, x)
		b.MaxY = max(b.MaxY, y)
	}
	return b, ok
}
