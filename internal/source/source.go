// Package source parses Go files into declaration sources and derives
// structural type handles from them. A Set holds sources in a fixed
// order; name lookups scan that order so the first declaration of a
// name shadows later ones.
package source

import (
	"go/ast"
	goparser "go/parser"
	"go/token"
)

// File is one parsed declaration source: the named type declarations
// and the evaluated constant table of a single Go source file.
type File struct {
	Path string

	fileSet    *token.FileSet
	astFile    *ast.File
	types      map[string]*ast.TypeSpec
	consts     []*constVariable
	constIndex map[string]*constVariable
}

// Parse reads and parses one Go source file. src may be nil to read
// from disk, or a string/[]byte with the file contents.
func Parse(path string, src interface{}) (*File, error) {
	fileSet := token.NewFileSet()
	astFile, err := goparser.ParseFile(fileSet, path, src, goparser.ParseComments)
	if err != nil {
		return nil, err
	}

	f := &File{
		Path:       path,
		fileSet:    fileSet,
		astFile:    astFile,
		types:      make(map[string]*ast.TypeSpec),
		constIndex: make(map[string]*constVariable),
	}
	f.collectDeclarations()
	f.evaluateConstVariables()

	return f, nil
}

// PackageName returns the declared package name.
func (f *File) PackageName() string {
	return f.astFile.Name.Name
}

// Types returns the names of all type declarations in this source.
func (f *File) Types() []string {
	names := make([]string, 0, len(f.types))
	for name := range f.types {
		names = append(names, name)
	}
	return names
}

// HasType reports whether this source declares name.
func (f *File) HasType(name string) bool {
	_, ok := f.types[name]
	return ok
}

func (f *File) collectDeclarations() {
	for _, decl := range f.astFile.Decls {
		generalDeclaration, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}
		switch generalDeclaration.Tok {
		case token.TYPE:
			for _, astSpec := range generalDeclaration.Specs {
				typeSpec, ok := astSpec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				if _, exists := f.types[typeSpec.Name.Name]; !exists {
					f.types[typeSpec.Name.Name] = typeSpec
				}
			}
		case token.CONST:
			f.collectConstVariables(generalDeclaration)
		}
	}
}
