// Package module is the semantic model of a Java module declaration
// (module-info.java).
//
// Parse turns source text into a *Model: the module name and open flag,
// its requires, exports, opens, uses and provides directives, and the
// annotations on the declaration. Annotation element values are kept as
// typed *Value trees and can be walked with a Visitor.
//
// Type names are stored as written. Model.Resolved qualifies simple names
// through the compilation unit's imports and a fixed set of java.lang
// types:
//
//	m, err := module.ParseFile("src/main/java/module-info.java")
//	if err != nil {
//		return err
//	}
//	for _, svc := range m.Resolved().UsedServices() {
//		fmt.Println(svc)
//	}
//
// Problems in the input are reported to an ErrorListener. Silent, Logging
// and Collector keep going and yield a partial model; Failing stops at the
// first problem.
package module
