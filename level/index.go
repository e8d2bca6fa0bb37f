package level

import (
	"github.com/dhconnelly/rtreego"

	"github.com/lixenwraith/honly-helper/core"
	"github.com/lixenwraith/honly-helper/host"
	"github.com/lixenwraith/honly-helper/parameter"
)

const (
	indexDimensions = 2
	indexMinBranch  = 4
	indexMaxBranch  = 16
)

// Removable obstacles leave collision queries once gone
type Removable interface {
	Removed() bool
}

// indexed adapts an obstacle to the tree
// Bounds are captured on insert; moving obstacles call ObstacleIndex.Move
type indexed struct {
	obstacle host.Obstacle
	rect     rtreego.Rect
}

func (e *indexed) Bounds() rtreego.Rect { return e.rect }

// ObstacleIndex is a spatial index of static obstacles
type ObstacleIndex struct {
	tree    *rtreego.Rtree
	entries map[host.Obstacle]*indexed
}

func NewObstacleIndex() *ObstacleIndex {
	return &ObstacleIndex{
		tree:    rtreego.NewTree(indexDimensions, indexMinBranch, indexMaxBranch),
		entries: make(map[host.Obstacle]*indexed),
	}
}

// Insert adds an obstacle, replacing a previous entry for the same obstacle
func (x *ObstacleIndex) Insert(o host.Obstacle) {
	x.Remove(o)
	e := &indexed{obstacle: o, rect: toTreeRect(o.Bounds())}
	x.entries[o] = e
	x.tree.Insert(e)
}

// Remove drops an obstacle, reporting whether it was indexed
func (x *ObstacleIndex) Remove(o host.Obstacle) bool {
	e, ok := x.entries[o]
	if !ok {
		return false
	}
	delete(x.entries, o)
	return x.tree.Delete(e)
}

// Move re-indexes an obstacle after its bounds changed
func (x *ObstacleIndex) Move(o host.Obstacle) {
	if _, ok := x.entries[o]; ok {
		x.Insert(o)
	}
}

// Len returns the number of indexed obstacles
func (x *ObstacleIndex) Len() int { return len(x.entries) }

// Query returns indexed obstacles whose bounds touch r, skipping removed ones
func (x *ObstacleIndex) Query(r core.Rect) []host.Obstacle {
	found := x.tree.SearchIntersect(toTreeRect(r), skipRemoved)
	out := make([]host.Obstacle, 0, len(found))
	for _, s := range found {
		out = append(out, s.(*indexed).obstacle)
	}
	return out
}

// skipRemoved refuses obstacles that report themselves gone
func skipRemoved(_ []rtreego.Spatial, obj rtreego.Spatial) (refuse, abort bool) {
	if r, ok := obj.(*indexed).obstacle.(Removable); ok && r.Removed() {
		return true, false
	}
	return false, false
}

// toTreeRect converts a level rect, padding zero extents the tree rejects
func toTreeRect(r core.Rect) rtreego.Rect {
	w, h := r.Width, r.Height
	x, y := r.X, r.Y
	if w <= 0 {
		x -= parameter.IndexPadding / 2
		w = parameter.IndexPadding
	}
	if h <= 0 {
		y -= parameter.IndexPadding / 2
		h = parameter.IndexPadding
	}
	rect, err := rtreego.NewRect(rtreego.Point{x, y}, []float64{w, h})
	if err != nil {
		// Unreachable with positive lengths
		panic(err)
	}
	return rect
}
