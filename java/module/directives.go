package module

import (
	"cmp"
	"slices"
	"strings"
)

// Require is a requires directive.
type Require struct {
	Module     string
	Static     bool
	Transitive bool
}

func compareRequire(a, b Require) int {
	return cmp.Or(
		strings.Compare(a.Module, b.Module),
		compareBool(a.Static, b.Static),
		compareBool(a.Transitive, b.Transitive),
	)
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	}
	return 1
}

// Export is an exports directive. Nil Targets means the package is
// exported to every module.
type Export struct {
	Package string
	Targets []string
}

// NewExport sorts and de-duplicates targets; no targets means everyone.
func NewExport(pkg string, targets ...string) Export {
	return Export{Package: pkg, Targets: targetSet(targets)}
}

func (e Export) IsExportedTo(module string) bool {
	return e.Targets == nil || slices.Contains(e.Targets, module)
}

func (e Export) Equal(other Export) bool {
	return e.Package == other.Package && slices.Equal(e.Targets, other.Targets)
}

// Opens is an opens directive. Nil Targets means the package is open to
// every module.
type Opens struct {
	Package string
	Targets []string
}

// NewOpens sorts and de-duplicates targets; no targets means everyone.
func NewOpens(pkg string, targets ...string) Opens {
	return Opens{Package: pkg, Targets: targetSet(targets)}
}

func (o Opens) IsOpenedTo(module string) bool {
	return o.Targets == nil || slices.Contains(o.Targets, module)
}

func (o Opens) Equal(other Opens) bool {
	return o.Package == other.Package && slices.Equal(o.Targets, other.Targets)
}

// Provides is a provides directive: a service type and its providers.
type Provides struct {
	Service   string
	Providers []string
}

// NewProvides sorts and de-duplicates providers.
func NewProvides(service string, providers ...string) Provides {
	return Provides{Service: service, Providers: sortedSet(providers)}
}

func (p Provides) Equal(other Provides) bool {
	return p.Service == other.Service && slices.Equal(p.Providers, other.Providers)
}

func (p Provides) resolve(imports Imports) (Provides, bool) {
	service := imports.Resolve(p.Service)
	providers := make([]string, len(p.Providers))
	for i, provider := range p.Providers {
		providers[i] = imports.Resolve(provider)
	}
	providers = sortedSet(providers)
	if service == p.Service && slices.Equal(providers, p.Providers) {
		return p, false
	}
	return Provides{Service: service, Providers: providers}, true
}

func targetSet(targets []string) []string {
	if len(targets) == 0 {
		return nil
	}
	return sortedSet(targets)
}

func sortedSet(items []string) []string {
	out := slices.Clone(items)
	slices.Sort(out)
	return slices.Compact(out)
}

func compareTargets(a, b []string) int {
	if a == nil || b == nil {
		return compareBool(a != nil, b != nil)
	}
	return slices.Compare(a, b)
}

func compareExport(a, b Export) int {
	return cmp.Or(strings.Compare(a.Package, b.Package), compareTargets(a.Targets, b.Targets))
}

func compareOpens(a, b Opens) int {
	return cmp.Or(strings.Compare(a.Package, b.Package), compareTargets(a.Targets, b.Targets))
}

func compareProvides(a, b Provides) int {
	return cmp.Or(strings.Compare(a.Service, b.Service), slices.Compare(a.Providers, b.Providers))
}

// normalize sorts items by cmp and removes entries equal under it.
func normalize[T any](items []T, compare func(a, b T) int) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, compare)
	return slices.CompactFunc(out, func(a, b T) bool { return compare(a, b) == 0 })
}
