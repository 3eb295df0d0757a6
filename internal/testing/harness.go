package harness

import (
	"bytes"
	"io"

	scewerrors "github.com/felipeprov/scew/errors"
)

// Transform turns one XML document into another form, such as the
// printed rendition of its parsed tree.
type Transform func(document []byte) ([]byte, error)

// Case describes one differential transformation scenario.
type Case struct {
	Name     string
	Document []byte
}

// Result captures one transform outcome.
type Result struct {
	Output []byte
	Err    error
}

// Diff stores side-by-side outcomes.
type Diff struct {
	Left  Result
	Right Result
}

// Equal reports whether both sides are equivalent.
func (d Diff) Equal() bool {
	return Equivalent(d.Left, d.Right)
}

// Run executes one transform against one case.
func Run(transform Transform, tc Case) Result {
	if transform == nil {
		return Result{Err: io.ErrUnexpectedEOF}
	}
	output, err := transform(tc.Document)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Output: output}
}

// Compare runs both transforms and returns a diff.
func Compare(left, right Transform, tc Case) Diff {
	return Diff{
		Left:  Run(left, tc),
		Right: Run(right, tc),
	}
}

// RoundTrip feeds the transform's own output back through it. A
// transform that normalizes its input is expected to reach a fixed
// point after one application. A failed first run is its own fixed
// point.
func RoundTrip(transform Transform, tc Case) Diff {
	first := Run(transform, tc)
	if first.Err != nil {
		return Diff{Left: first, Right: first}
	}
	second := Run(transform, Case{Name: tc.Name, Document: first.Output})
	return Diff{Left: first, Right: second}
}

// Equivalent checks whether two results are behaviorally equivalent.
func Equivalent(left, right Result) bool {
	if !bytes.Equal(left.Output, right.Output) {
		return false
	}
	return equivalentError(left.Err, right.Err)
}

func equivalentError(left, right error) bool {
	leftCode, leftStructured := taxonomyCode(left)
	rightCode, rightStructured := taxonomyCode(right)

	if leftStructured || rightStructured {
		return leftStructured && rightStructured && leftCode == rightCode
	}

	if left == nil || right == nil {
		return left == nil && right == nil
	}
	return left.Error() == right.Error()
}

func taxonomyCode(err error) (scewerrors.Code, bool) {
	if err == nil {
		return "", false
	}
	structured, ok := scewerrors.AsError(err)
	if !ok {
		return "", false
	}
	return structured.Code, true
}
