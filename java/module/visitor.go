package module

// Visitor receives a depth-first walk over annotations. For each
// annotation EnterAnnotation is called, then VisitValue once per element
// value in key order (once per element for arrays, with inArray set),
// descending into nested annotation values at depth+1, and finally
// ExitAnnotation.
//
// Returning false from EnterAnnotation or VisitValue stops the walk.
// ExitAnnotation is still called for every annotation whose
// EnterAnnotation returned true, and the walk reports false.
type Visitor interface {
	EnterAnnotation(a *Annotation, depth int) bool
	VisitValue(owner *Annotation, depth int, property string, value *Value, inArray bool) bool
	ExitAnnotation(a *Annotation, depth int) bool
}

// VisitorFuncs adapts plain functions to Visitor. Nil functions continue
// the walk.
type VisitorFuncs struct {
	Enter func(a *Annotation, depth int) bool
	Value func(owner *Annotation, depth int, property string, value *Value, inArray bool) bool
	Exit  func(a *Annotation, depth int) bool
}

func (f VisitorFuncs) EnterAnnotation(a *Annotation, depth int) bool {
	return f.Enter == nil || f.Enter(a, depth)
}

func (f VisitorFuncs) VisitValue(owner *Annotation, depth int, property string, value *Value, inArray bool) bool {
	return f.Value == nil || f.Value(owner, depth, property, value, inArray)
}

func (f VisitorFuncs) ExitAnnotation(a *Annotation, depth int) bool {
	return f.Exit == nil || f.Exit(a, depth)
}
