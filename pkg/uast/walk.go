package uast

// Walk visits root and its descendants in pre-order. When fn returns false
// the children of the visited element are skipped.
func Walk(root Element, fn func(Element) bool) {
	if root == nil || !fn(root) {
		return
	}

	for _, child := range root.ChildElements() {
		Walk(child, fn)
	}
}

// Parents returns the containing elements of e, nearest first.
func Parents(e Element) []Element {
	var out []Element

	if e == nil {
		return nil
	}

	for p := e.ContainingElement(); p != nil; p = p.ContainingElement() {
		out = append(out, p)
	}

	return out
}

// ParentOfType returns the nearest containing element that is a T.
func ParentOfType[T Element](e Element) (T, bool) {
	for _, p := range Parents(e) {
		if typed, ok := p.(T); ok {
			return typed, true
		}
	}

	var zero T

	return zero, false
}

// Collect returns every element of the tree rooted at root that is a T.
func Collect[T Element](root Element) []T {
	var out []T

	Walk(root, func(e Element) bool {
		if typed, ok := e.(T); ok {
			out = append(out, typed)
		}

		return true
	})

	return out
}
