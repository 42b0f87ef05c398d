package txf

import (
	"sort"

	"github.com/dhconnelly/rtreego"
)

// pointEpsilon is the minimum side length of an indexed rectangle. The R-tree
// rejects zero-size rectangles, which point objects and single-axis lines
// would otherwise produce.
const pointEpsilon = 1e-6

// ObjectIndex answers bounding box queries over the objects of one document
// using an R-tree.
//
// Objects without a numeric coordinate cannot be placed and are counted by
// Skipped instead.
//
// Example:
//
//	idx := txf.NewObjectIndex(doc)
//	hits := idx.Search(txf.Bounds{MinX: 6015000, MinY: 7412000, MaxX: 6016000, MaxY: 7413000})
type ObjectIndex struct {
	rtree   *rtreego.Rtree
	count   int
	skipped int
	bounds  Bounds
}

// indexedObject wraps an object for R-tree storage.
type indexedObject struct {
	object *Object
	order  int // position in the document
	bounds Bounds
}

// Bounds implements rtreego.Spatial interface.
func (o *indexedObject) Bounds() rtreego.Rect {
	return toRect(o.bounds)
}

// toRect converts bounds to an R-tree rectangle, padding empty sides.
func toRect(b Bounds) rtreego.Rect {
	point := rtreego.Point{b.MinX, b.MinY}
	lengths := []float64{
		max(b.MaxX-b.MinX, pointEpsilon),
		max(b.MaxY-b.MinY, pointEpsilon),
	}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

// NewObjectIndex builds a spatial index over the objects of doc.
func NewObjectIndex(doc *Document) *ObjectIndex {
	// 2D, min=25 children, max=50 children
	idx := &ObjectIndex{rtree: rtreego.NewTree(2, 25, 50)}

	for i, obj := range doc.objects {
		b, ok := obj.Bounds()
		if !ok {
			idx.skipped++
			continue
		}
		idx.rtree.Insert(&indexedObject{object: obj, order: i, bounds: b})
		if idx.count == 0 {
			idx.bounds = b
		} else {
			idx.bounds = idx.bounds.Union(b)
		}
		idx.count++
	}
	return idx
}

// Search returns the objects whose bounds intersect query, in document order.
// Touching edges count as an intersection.
func (idx *ObjectIndex) Search(query Bounds) []*Object {
	if idx.count == 0 {
		return nil
	}

	// The R-tree treats touching rectangles as disjoint, so search a padded
	// rectangle and filter exactly.
	spatials := idx.rtree.SearchIntersect(toRect(query.Expand(pointEpsilon)))

	hits := make([]*indexedObject, 0, len(spatials))
	for _, spatial := range spatials {
		indexed := spatial.(*indexedObject)
		if query.Intersects(indexed.bounds) {
			hits = append(hits, indexed)
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].order < hits[j].order })

	result := make([]*Object, len(hits))
	for i, h := range hits {
		result[i] = h.object
	}
	return result
}

// Count returns the number of indexed objects.
func (idx *ObjectIndex) Count() int {
	return idx.count
}

// Skipped returns the number of objects left out because none of their
// coordinates is numeric.
func (idx *ObjectIndex) Skipped() int {
	return idx.skipped
}

// Bounds returns the union of all indexed object bounds. ok is false for an
// empty index.
func (idx *ObjectIndex) Bounds() (Bounds, bool) {
	return idx.bounds, idx.count > 0
}
