package uml

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Document markers framing a PlantUML file.
const (
	UMLOpen  = "@startuml"
	UMLClose = "@enduml"
)

// DefaultRootObject is the implicit Python base class, never drawn as a parent.
const DefaultRootObject = "object"

// Renderer writes PlantUML class diagram text. The first write error is
// kept and every later write becomes a no-op; check Err when done.
type Renderer struct {
	w          io.Writer
	rootObject string
	err        error
}

// NewRenderer creates a renderer writing to w. Parents named rootObject are
// suppressed in addition to DefaultRootObject.
func NewRenderer(w io.Writer, rootObject string) *Renderer {
	if rootObject == "" {
		rootObject = DefaultRootObject
	}
	return &Renderer{w: w, rootObject: rootObject}
}

// Err returns the first write error, if any.
func (r *Renderer) Err() error {
	return r.err
}

func (r *Renderer) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

// Open writes the document header.
func (r *Renderer) Open() {
	r.printf("%s\n", UMLOpen)
}

// Close writes the document footer.
func (r *Renderer) Close() {
	r.printf("%s\n", UMLClose)
}

// PackageName derives a package label from a source path: its base name
// without the extension.
func PackageName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// PackageHeader resets cursor for fileName and opens its package block.
func (r *Renderer) PackageHeader(cursor *ScanCursor, fileName string) {
	name := PackageName(fileName)
	cursor.Reset(name)
	r.printf("package %s {\n", name)
}

// ClassDeclared implements Sink.
func (r *Renderer) ClassDeclared(class string) {
	r.printf("class %s\n", class)
}

// MethodFound implements Sink.
func (r *Renderer) MethodFound(class, token string) {
	r.printf("%s : %s\n", class, token)
}

// VariableBlock writes the attributes of the classes declared in the current
// file and closes the package block.
func (r *Renderer) VariableBlock(model *ClassModel, cursor *ScanCursor) {
	for _, class := range cursor.Declared {
		for _, token := range model.Variables(class) {
			r.printf("%s : %s\n", class, token)
		}
	}
	r.printf("}\n\n")
}

// Relationships writes inheritance edges followed by association edges.
func (r *Renderer) Relationships(model *ClassModel) {
	for _, edge := range model.Inheritance(r.rootObject) {
		r.printf("%s <|-- %s\n", edge[0], edge[1])
	}
	for _, edge := range model.Associations() {
		r.printf("%s -- %s\n", edge[0], edge[1])
	}
}
