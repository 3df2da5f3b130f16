package interval

import (
	"iter"
	"slices"
	"time"
)

// Entry is an interval stored in an Index together with its label.
type Entry[V any] struct {
	Interval
	Label V

	seq int // insertion order, last tie-break
}

// Placement is an entry with the lane it was assigned.
// HasOverlaps is false when the entry overlaps nothing else, in which case
// a renderer may let it span every lane.
type Placement[V any] struct {
	Entry[V]
	Lane        int
	HasOverlaps bool
}

// Index stores entries grouped by overlap and assigns lanes so that
// overlapping entries never share one.
//
// Groups are maximal sets of entries connected by a chain of overlaps.
// Group spans are disjoint, so the groups are kept in an AVL tree keyed by
// span start. Entries inside a group are ordered by start, then end, then
// insertion order; lanes are assigned greedily in that order, which makes
// the lane count equal to the overlap degree.
//
// An Index is not safe for concurrent use.
type Index[V any] struct {
	root   *group[V]
	size   int
	groups int
	degree int
	seq    int
}

type group[V any] struct {
	span    Interval
	entries []Entry[V]
	degree  int
	lanes   []int

	left, right *group[V]
	height      int
}

// NewIndex creates an empty index
func NewIndex[V any]() *Index[V] {
	return &Index[V]{}
}

// Add stores an interval with its label. The interval is expected to come
// from New and is not validated again.
func (x *Index[V]) Add(iv Interval, label V) {
	e := Entry[V]{Interval: iv, Label: label, seq: x.seq}
	x.seq++
	x.size++

	merged := &group[V]{span: iv, entries: []Entry[V]{e}}
	for {
		g := findOverlapping(x.root, merged.span)
		if g == nil {
			break
		}
		span, entries := g.span, g.entries
		x.root = removeGroup(x.root, span.Start)
		x.groups--
		merged.span = merged.span.Union(span)
		merged.entries = mergeEntries(merged.entries, entries)
	}

	merged.degree = sweepDegree(merged.entries)
	merged.lanes = assignLanes(merged.entries)
	x.degree = max(x.degree, merged.degree)
	x.root = insertGroup(x.root, merged)
	x.groups++
}

// Len returns the number of stored entries
func (x *Index[V]) Len() int {
	return x.size
}

// Groups returns the number of overlap groups
func (x *Index[V]) Groups() int {
	return x.groups
}

// OverlapDegree returns the maximum number of entries covering a single
// instant, 0 for an empty index. It is also the number of lanes in use.
func (x *Index[V]) OverlapDegree() int {
	return x.degree
}

// All yields every entry with its lane, groups in time order.
func (x *Index[V]) All() iter.Seq[Placement[V]] {
	return func(yield func(Placement[V]) bool) {
		walkPlacements(x.root, yield)
	}
}

// Placements returns All as a slice.
func (x *Index[V]) Placements() []Placement[V] {
	out := make([]Placement[V], 0, x.size)
	for p := range x.All() {
		out = append(out, p)
	}
	return out
}

// At returns the entries containing instant t, in entry order.
func (x *Index[V]) At(t time.Time) []Entry[V] {
	n := x.root
	for n != nil {
		switch {
		case t.Before(n.span.Start):
			n = n.left
		case !t.Before(n.span.End):
			n = n.right
		default:
			var out []Entry[V]
			for _, e := range n.entries {
				if e.Start.After(t) {
					break
				}
				if e.Contains(t) {
					out = append(out, e)
				}
			}
			return out
		}
	}
	return nil
}

// Overlapping returns the entries that overlap iv, in traversal order.
func (x *Index[V]) Overlapping(iv Interval) []Entry[V] {
	var out []Entry[V]
	collectOverlapping(x.root, iv, &out)
	return out
}

func walkPlacements[V any](n *group[V], yield func(Placement[V]) bool) bool {
	if n == nil {
		return true
	}
	if !walkPlacements(n.left, yield) {
		return false
	}

	overlaps := len(n.entries) > 1
	for i, e := range n.entries {
		if !yield(Placement[V]{Entry: e, Lane: n.lanes[i], HasOverlaps: overlaps}) {
			return false
		}
	}

	return walkPlacements(n.right, yield)
}

func collectOverlapping[V any](n *group[V], iv Interval, out *[]Entry[V]) {
	if n == nil {
		return
	}
	if iv.Start.Before(n.span.Start) {
		collectOverlapping(n.left, iv, out)
	}
	if n.span.Overlaps(iv) {
		for _, e := range n.entries {
			if e.Overlaps(iv) {
				*out = append(*out, e)
			}
		}
	}
	if iv.End.After(n.span.End) {
		collectOverlapping(n.right, iv, out)
	}
}

// assignLanes gives each entry the lowest lane whose last occupant has
// already ended when the entry starts. entries must be in entry order.
func assignLanes[V any](entries []Entry[V]) []int {
	lanes := make([]int, len(entries))
	var busyUntil []time.Time
	for i, e := range entries {
		lane := slices.IndexFunc(busyUntil, func(end time.Time) bool {
			return !end.After(e.Start)
		})
		if lane < 0 {
			lane = len(busyUntil)
			busyUntil = append(busyUntil, e.End)
		} else {
			busyUntil[lane] = e.End
		}
		lanes[i] = lane
	}
	return lanes
}

func compareEntries[V any](a, b Entry[V]) int {
	if c := a.Interval.Compare(b.Interval); c != 0 {
		return c
	}
	return a.seq - b.seq
}

func mergeEntries[V any](a, b []Entry[V]) []Entry[V] {
	out := make([]Entry[V], 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if compareEntries(a[i], b[j]) <= 0 {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

type boundary struct {
	at    time.Time
	delta int
}

// sweepDegree counts the maximum number of entries open at once. Ends sort
// before starts at the same instant because intervals are half-open.
func sweepDegree[V any](entries []Entry[V]) int {
	bs := make([]boundary, 0, 2*len(entries))
	for _, e := range entries {
		bs = append(bs, boundary{at: e.Start, delta: 1}, boundary{at: e.End, delta: -1})
	}
	slices.SortFunc(bs, func(a, b boundary) int {
		if c := a.at.Compare(b.at); c != 0 {
			return c
		}
		return a.delta - b.delta
	})

	open, best := 0, 0
	for _, b := range bs {
		open += b.delta
		best = max(best, open)
	}
	return best
}

// findOverlapping returns any group whose span overlaps span.
func findOverlapping[V any](n *group[V], span Interval) *group[V] {
	for n != nil {
		switch {
		case !n.span.End.After(span.Start):
			n = n.right
		case !span.End.After(n.span.Start):
			n = n.left
		default:
			return n
		}
	}
	return nil
}

func insertGroup[V any](n, g *group[V]) *group[V] {
	if n == nil {
		g.left, g.right = nil, nil
		g.height = 1
		return g
	}
	if g.span.Start.Before(n.span.Start) {
		n.left = insertGroup(n.left, g)
	} else {
		n.right = insertGroup(n.right, g)
	}
	return rebalance(n)
}

func removeGroup[V any](n *group[V], start time.Time) *group[V] {
	if n == nil {
		return nil
	}

	switch c := start.Compare(n.span.Start); {
	case c < 0:
		n.left = removeGroup(n.left, start)
	case c > 0:
		n.right = removeGroup(n.right, start)
	default:
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		var succ *group[V]
		right := removeMin(n.right, &succ)
		succ.left, succ.right = n.left, right
		n.left, n.right = nil, nil
		return rebalance(succ)
	}

	return rebalance(n)
}

func removeMin[V any](n *group[V], removed **group[V]) *group[V] {
	if n.left == nil {
		*removed = n
		return n.right
	}
	n.left = removeMin(n.left, removed)
	return rebalance(n)
}

func height[V any](n *group[V]) int {
	if n == nil {
		return 0
	}
	return n.height
}

func updateHeight[V any](n *group[V]) {
	n.height = 1 + max(height(n.left), height(n.right))
}

func rotateLeft[V any](n *group[V]) *group[V] {
	pivot := n.right
	n.right = pivot.left
	pivot.left = n
	updateHeight(n)
	updateHeight(pivot)
	return pivot
}

func rotateRight[V any](n *group[V]) *group[V] {
	pivot := n.left
	n.left = pivot.right
	pivot.right = n
	updateHeight(n)
	updateHeight(pivot)
	return pivot
}

func rebalance[V any](n *group[V]) *group[V] {
	updateHeight(n)

	switch balance := height(n.left) - height(n.right); {
	case balance > 1:
		if height(n.left.left) < height(n.left.right) {
			n.left = rotateLeft(n.left)
		}
		return rotateRight(n)
	case balance < -1:
		if height(n.right.right) < height(n.right.left) {
			n.right = rotateRight(n.right)
		}
		return rotateLeft(n)
	}

	return n
}
