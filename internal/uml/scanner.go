package uml

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Sink receives declarations as they are found. Classes and methods are
// streamed; attributes are collected in the model and written later.
type Sink interface {
	ClassDeclared(class string)
	MethodFound(class, token string)
}

// ScanCursor is the per-file scanning state.
type ScanCursor struct {
	// CurrentClass is the class whose body is being read, or "" before the first class.
	CurrentClass string
	// Package is the package label of the file.
	Package string
	// Declared lists classes first declared in this file.
	Declared []string
}

// Reset clears the cursor for a new file.
func (c *ScanCursor) Reset(pkg string) {
	c.CurrentClass = ""
	c.Package = pkg
	c.Declared = nil
}

// Scanner feeds source lines through the recognizers and updates a ClassModel.
type Scanner struct {
	model  *ClassModel
	sink   Sink
	logger *slog.Logger
}

// NewScanner creates a scanner writing into model and streaming events to sink.
func NewScanner(model *ClassModel, sink Sink, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scanner{model: model, sink: sink, logger: logger}
}

// Scan reads r line by line, once, and updates the model. Lines of any
// length are accepted and lines that match no recognizer are ignored; only
// read errors are returned.
func (s *Scanner) Scan(cursor *ScanCursor, r io.Reader) error {
	br := bufio.NewReader(r)

	for lineNo := 1; ; lineNo++ {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			s.ScanLine(cursor, line)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read line %d: %w", lineNo, err)
		}
	}
}

// ScanLine applies one line to the model.
func (s *Scanner) ScanLine(cursor *ScanCursor, line string) {
	match := Classify(line)
	if match.Kind != LineNone && match.Kind != LineSkip {
		s.logger.Debug("line matched", "kind", match.Kind.String(), "name", match.Name, "class", cursor.CurrentClass)
	}

	switch match.Kind {
	case LineBaseClass, LineDerivedClass:
		if !s.model.AddClass(match.Name, match.Parent) {
			s.logger.Debug("class already known", "class", match.Name, "package", cursor.Package)
			return
		}
		cursor.CurrentClass = match.Name
		cursor.Declared = append(cursor.Declared, match.Name)
		s.sink.ClassDeclared(match.Name)

	case LineAttribute:
		if cursor.CurrentClass == "" {
			return
		}
		s.model.AddMember(cursor.CurrentClass, Member{Token: VariableNotation(match.Name), Kind: MemberVariable})
		if match.Instantiates != "" {
			s.model.AddRelation(cursor.CurrentClass, match.Instantiates)
		}

	case LineMethod:
		if cursor.CurrentClass == "" {
			return
		}
		token := MethodNotation(match.Name) + "()"
		if s.model.AddMember(cursor.CurrentClass, Member{Token: token, Kind: MemberMethod}) {
			s.sink.MethodFound(cursor.CurrentClass, token)
		}

	case LineInstantiation:
		if cursor.CurrentClass == "" {
			return
		}
		s.model.AddRelation(cursor.CurrentClass, match.Name)
	}
}
