// Package templates holds the files hatch writes on top of a freshly
// generated project: routing, a layout, pages, hooks, a store, i18n and
// environment files.
//
// Templates use [[ ]] delimiters because JSX and Angular both use {{ }}.
package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/simonhull/hatch/internal/framework"
	"github.com/simonhull/hatch/pkg/generator"
)

//go:embed all:files
var filesFS embed.FS

const (
	root   = "files"
	suffix = ".tmpl"

	LeftDelim  = "[["
	RightDelim = "]]"
)

// File pairs a template with where its output goes inside the project.
type File struct {
	Dest string // slash-separated, relative to the project root
	Src  string // path inside FS
}

// Data is passed to every template.
type Data struct {
	Name           string // project directory name
	Framework      string
	UI             string
	EnvPrefix      string
	PackageManager string
}

// For lists the templates for a stack, in lexical order.
func For(stack framework.Stack) ([]File, error) {
	dir := path.Join(root, stack.TemplateDir)

	var files []File
	err := fs.WalkDir(filesFS, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, suffix) {
			return nil
		}
		files = append(files, File{
			Dest: strings.TrimSuffix(strings.TrimPrefix(p, dir+"/"), suffix),
			Src:  p,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing templates for %s: %w", stack.Framework, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates for %s", stack.Framework)
	}
	return files, nil
}

// Generator renders a stack's templates into a project directory.
type Generator struct {
	projectPath string
	stack       framework.Stack
	data        Data
	renderer    *generator.Renderer
}

// New creates a template generator for the project at projectPath.
func New(projectPath string, stack framework.Stack, data Data) *Generator {
	return &Generator{
		projectPath: projectPath,
		stack:       stack,
		data:        data,
		renderer:    generator.NewRenderer().Delims(LeftDelim, RightDelim),
	}
}

// Generate renders every template into a write operation. Nothing is
// written until the operations are executed.
func (g *Generator) Generate() ([]generator.Operation, error) {
	files, err := For(g.stack)
	if err != nil {
		return nil, err
	}

	ops := make([]generator.Operation, 0, len(files))
	for _, f := range files {
		content, err := g.renderer.RenderFS(filesFS, f.Src, g.data)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", f.Dest, err)
		}

		ops = append(ops, &generator.WriteFileOp{
			Path:    filepath.Join(g.projectPath, filepath.FromSlash(f.Dest)),
			Content: content,
			Mode:    0644,
			Root:    g.projectPath,
		})
	}
	return ops, nil
}
