// Package codebase tracks the module-info.java files under a directory
// and keeps their models and problems current as files change.
package codebase

import (
	"cmp"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/modinfo/java/module"
	"github.com/dhamidi/modinfo/java/parser"
)

const ModuleInfoFile = "module-info.java"

var log = commonlog.GetLogger("modinfo.codebase")

type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*FileInfo
	cache   *Cache
}

type FileInfo struct {
	Path    string
	Content []byte
	AST     *parser.Node
	Model   *module.Model
	// Problems holds the syntax, structure and lint problems of this file.
	Problems []Problem

	parsed *parsed
}

// Resolved returns the model with every type name qualified. It is
// computed once per distinct content.
func (f *FileInfo) Resolved() *module.Model {
	return f.parsed.Resolved()
}

func (f *FileInfo) ModuleName() string {
	if f.Model == nil {
		return ""
	}
	return f.Model.Name()
}

// nameSpan returns the span of the declared module name, or an empty
// span at the start of the file.
func (f *FileInfo) nameSpan() parser.Span {
	span := parser.Span{Start: parser.Position{Line: 1, Column: 1}}
	if f.AST == nil {
		return span
	}
	if decl := f.AST.FirstChildOfKind(parser.KindModuleDecl); decl != nil {
		if name := decl.FirstChildOfKind(parser.KindQualifiedName); name != nil {
			return name.Span
		}
	}
	return span
}

func New(rootDir string, cacheSize int) *Codebase {
	return &Codebase{
		rootDir: rootDir,
		files:   make(map[string]*FileInfo),
		cache:   NewCache(cacheSize),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

func (c *Codebase) Cache() *Cache {
	return c.cache
}

// IsModuleInfo reports whether path names a module declaration file.
func IsModuleInfo(path string) bool {
	return filepath.Base(path) == ModuleInfoFile
}

// ScanAll reads every module-info.java below the root.
func (c *Codebase) ScanAll() error {
	return c.ScanDir(c.rootDir)
}

// ScanDir reads every module-info.java below dir, skipping hidden
// directories. Unreadable files are logged and skipped.
func (c *Codebase) ScanDir(dir string) error {
	if _, err := os.Stat(dir); err != nil {
		return err
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Debugf("skip %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if IsModuleInfo(path) {
			if err := c.ScanFile(path); err != nil {
				log.Warningf("scan %s: %v", path, err)
			}
		}
		return nil
	})
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	c.UpdateFile(path, content)
	return nil
}

// UpdateFile replaces the content of path and returns its new state.
func (c *Codebase) UpdateFile(path string, content []byte) *FileInfo {
	p := c.cache.parse(content)

	problems := make([]Problem, len(p.problems))
	for i, prob := range p.problems {
		prob.Path = path
		problems[i] = prob
	}
	f := &FileInfo{
		Path:     path,
		Content:  content,
		AST:      p.root,
		Model:    p.model,
		Problems: problems,
		parsed:   p,
	}
	log.Debugf("updated %s: module %q, %d problem(s)", path, f.ModuleName(), len(problems))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = f
	return f
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Files returns every tracked file ordered by path.
func (c *Codebase) Files() []*FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	files := make([]*FileInfo, 0, len(c.files))
	for _, f := range c.files {
		files = append(files, f)
	}
	slices.SortFunc(files, func(a, b *FileInfo) int { return strings.Compare(a.Path, b.Path) })
	return files
}

// Modules returns the files that declare a named module, ordered by module
// name and then path.
func (c *Codebase) Modules() []*FileInfo {
	var modules []*FileInfo
	for _, f := range c.Files() {
		if f.ModuleName() != "" {
			modules = append(modules, f)
		}
	}
	slices.SortStableFunc(modules, func(a, b *FileInfo) int {
		return cmp.Compare(a.ModuleName(), b.ModuleName())
	})
	return modules
}

// ModuleNames returns the distinct declared module names, sorted.
func (c *Codebase) ModuleNames() []string {
	var names []string
	for _, f := range c.Modules() {
		names = append(names, f.ModuleName())
	}
	return slices.Compact(names)
}

// FindModule returns the first file, by path, that declares name.
func (c *Codebase) FindModule(name string) *FileInfo {
	for _, f := range c.Files() {
		if f.ModuleName() == name {
			return f
		}
	}
	return nil
}

// Problems returns the problems of every file plus a warning for each
// module declared in more than one file.
func (c *Codebase) Problems() []Problem {
	var problems []Problem
	seen := map[string]string{}
	for _, f := range c.Files() {
		problems = append(problems, f.Problems...)
		name := f.ModuleName()
		if name == "" {
			continue
		}
		if first, ok := seen[name]; ok {
			prob := problemAt(f.nameSpan(), SeverityWarning, "module "+name+" is also declared in "+first)
			prob.Path = f.Path
			problems = append(problems, prob)
			continue
		}
		seen[name] = f.Path
	}
	return problems
}
