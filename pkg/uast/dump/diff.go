package dump

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Change is one line-level difference between two snapshots.
type Change struct {
	Op   diffmatchpatch.Operation
	Line string
}

// Diff compares the outlines of two snapshots line by line. It returns nil
// when they are equal.
func Diff(a, b *Node) []Change {
	left, right := Text(a), Text(b)
	if left == right {
		return nil
	}

	dmp := diffmatchpatch.New()
	chars1, chars2, lines := dmp.DiffLinesToChars(left, right)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(chars1, chars2, false), lines)

	var out []Change

	for _, d := range diffs {
		for line := range strings.Lines(d.Text) {
			out = append(out, Change{Op: d.Type, Line: strings.TrimSuffix(line, "\n")})
		}
	}

	return out
}

// Unified renders changes with "+", "-" and " " prefixes.
func Unified(changes []Change) string {
	var sb strings.Builder

	for _, c := range changes {
		switch c.Op {
		case diffmatchpatch.DiffInsert:
			sb.WriteByte('+')
		case diffmatchpatch.DiffDelete:
			sb.WriteByte('-')
		default:
			sb.WriteByte(' ')
		}

		sb.WriteString(c.Line)
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Stats counts inserted and deleted lines.
func Stats(changes []Change) (inserted, deleted int) {
	for _, c := range changes {
		switch c.Op {
		case diffmatchpatch.DiffInsert:
			inserted++
		case diffmatchpatch.DiffDelete:
			deleted++
		case diffmatchpatch.DiffEqual:
		}
	}

	return inserted, deleted
}
