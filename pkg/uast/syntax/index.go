package syntax

import (
	"sort"

	"github.com/tidwall/btree"

	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
)

// Index finds the innermost native element at a source offset.
type Index struct {
	starts btree.Map[int, []*native.Element]
	lines  []int
	count  int
}

// NewIndex indexes every element of tree that has a source range.
func NewIndex(tree *native.Tree) *Index {
	idx := &Index{lines: lineStarts(tree.Source())}

	tree.Walk(func(e *native.Element) bool {
		span := e.Span()
		if span.Synthetic() {
			return true
		}

		elems, _ := idx.starts.Get(span.Start)
		idx.starts.Set(span.Start, append(elems, e))
		idx.count++

		return true
	})

	return idx
}

// Len returns the number of indexed elements.
func (idx *Index) Len() int { return idx.count }

// At returns the innermost element whose range contains offset. Empty
// elements match only their own offset. It returns nil when nothing covers
// offset.
func (idx *Index) At(offset int) *native.Element {
	iter := idx.starts.Iter()

	ok := iter.Seek(offset)
	switch {
	case !ok:
		ok = iter.Last()
	case iter.Key() > offset:
		ok = iter.Prev()
	}

	for ; ok; ok = iter.Prev() {
		elems := iter.Value()

		// Pre-order walk appends outer elements first.
		for i := len(elems) - 1; i >= 0; i-- {
			span := elems[i].Span()
			if span.Contains(offset) || (span.Start == span.End && span.Start == offset) {
				return elems[i]
			}
		}
	}

	return nil
}

// AtPosition is At for a 1-based line and column.
func (idx *Index) AtPosition(line, column int) *native.Element {
	offset, ok := idx.Offset(line, column)
	if !ok {
		return nil
	}

	return idx.At(offset)
}

// Offset converts a 1-based line and column into a byte offset.
func (idx *Index) Offset(line, column int) (int, bool) {
	if line < 1 || line > len(idx.lines) || column < 1 {
		return 0, false
	}

	return idx.lines[line-1] + column - 1, true
}

// Position converts a byte offset into a 1-based line and column.
func (idx *Index) Position(offset int) (line, column int) {
	if offset < 0 {
		return 0, 0
	}

	i := sort.Search(len(idx.lines), func(i int) bool { return idx.lines[i] > offset })

	return i, offset - idx.lines[i-1] + 1
}

func lineStarts(src []byte) []int {
	out := []int{0}

	for i, c := range src {
		if c == '\n' {
			out = append(out, i+1)
		}
	}

	return out
}
