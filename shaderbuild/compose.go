// Package shaderbuild turns an SDF instruction stream into one validated
// compute shader source: it composes the embedded template fragments by
// resolving their import directives, synthesizes the evaluate_sdf routine
// in a small shader IR, and renders everything to a single GLSL module.
package shaderbuild

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

//go:embed template/*.glsl
var templateFS embed.FS

// RootModule is the module name of the template entry fragment.
const RootModule = "template"

const (
	definePathDirective = "#define_import_path"
	importDirective     = "#import"
)

// Compose resolves the import graph of the fragment set rooted at root and
// returns the concatenated source: dependencies in post-order, the root
// module last, with every directive line stripped. Import cycles are broken
// silently; the first traversal wins.
func Compose(fragments fs.FS, root string) (string, error) {
	modules, err := indexFragments(fragments)
	if err != nil {
		return "", err
	}
	rootSrc, ok := modules[root]
	if !ok {
		return "", fmt.Errorf("root module %q not found in fragment set", root)
	}

	var imported []string
	collectImports(rootSrc, modules, &imported, nil)

	var out strings.Builder
	for _, name := range imported {
		out.WriteString(stripDirectives(modules[name]))
		out.WriteString("\n\n")
	}
	out.WriteString(stripDirectives(rootSrc))
	return out.String(), nil
}

// ComposeTemplate composes the embedded shader template.
func ComposeTemplate() (string, error) {
	return Compose(templateFS, RootModule)
}

// indexFragments maps every fragment to its declared module name, falling
// back to the file stem when no #define_import_path is present.
func indexFragments(fragments fs.FS) (map[string]string, error) {
	modules := make(map[string]string)
	err := fs.WalkDir(fragments, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		src, err := fs.ReadFile(fragments, p)
		if err != nil {
			return err
		}
		name := moduleName(string(src))
		if name == "" {
			name = strings.TrimSuffix(path.Base(p), path.Ext(p))
		}
		if _, dup := modules[name]; dup {
			return fmt.Errorf("duplicate shader module %q", name)
		}
		modules[name] = string(src)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return modules, nil
}

func moduleName(src string) string {
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if after, ok := strings.CutPrefix(line, definePathDirective); ok {
			return strings.TrimSpace(after)
		}
	}
	return ""
}

// importPath extracts the module path of one #import body: the text before
// "::{" when a braced list is present, otherwise every component except the
// trailing item name.
func importPath(body string) string {
	if before, _, ok := strings.Cut(body, "::{"); ok {
		return strings.TrimSpace(before)
	}
	parts := strings.Split(body, "::")
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(strings.Join(parts[:len(parts)-1], "::"))
}

// collectImports walks the import graph depth-first, appending modules in
// post-order. The stack breaks cycles; already-imported modules are skipped.
func collectImports(src string, modules map[string]string, imported *[]string, stack []string) {
	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		body, ok := strings.CutPrefix(trimmed, importDirective)
		if !ok {
			continue
		}
		name := importPath(strings.TrimSpace(body))
		if name == "" || contains(*imported, name) || contains(stack, name) {
			continue
		}
		depSrc, known := modules[name]
		if !known {
			continue
		}
		collectImports(depSrc, modules, imported, append(stack, name))
		*imported = append(*imported, name)
	}
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// stripDirectives removes #define_import_path lines and #import statements,
// tracking brace depth so multi-line braced imports are dropped entirely.
func stripDirectives(src string) string {
	var out []string
	inBracedImport := false
	braceDepth := 0
	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, definePathDirective) {
			continue
		}
		if strings.HasPrefix(trimmed, importDirective) {
			braceDepth = strings.Count(line, "{") - strings.Count(line, "}")
			inBracedImport = braceDepth > 0
			continue
		}
		if inBracedImport {
			braceDepth += strings.Count(line, "{") - strings.Count(line, "}")
			if braceDepth <= 0 {
				inBracedImport = false
			}
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
