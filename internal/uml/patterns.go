// Package uml turns Python source files into a PlantUML class diagram.
// Recognition is regex-based and works on one physical line at a time.
package uml

import (
	"regexp"
	"strings"
)

// LineKind identifies which recognizer fired for a line.
type LineKind int

const (
	LineNone LineKind = iota
	LineSkip
	LineBaseClass
	LineDerivedClass
	LineAttribute
	LineMethod
	LineInstantiation
)

func (k LineKind) String() string {
	switch k {
	case LineSkip:
		return "skip"
	case LineBaseClass:
		return "base-class"
	case LineDerivedClass:
		return "derived-class"
	case LineAttribute:
		return "attribute"
	case LineMethod:
		return "method"
	case LineInstantiation:
		return "instantiation"
	default:
		return "none"
	}
}

// Python line patterns, tested in this order.
var (
	// Blank line, a lone ":", comments, raise and print statements.
	pySkipPattern = regexp.MustCompile(`^\s*(?::?$|#|raise\b|print\b)`)

	// class Name: or class Name():
	pyBaseClassPattern = regexp.MustCompile(`^class\s+(\w+)\s*(?:\(\s*\))?\s*:`)

	// class Name(Parent): with a single, possibly dotted, parent
	pyDerivedClassPattern = regexp.MustCompile(`^class\s+(\w+)\s*\(\s*([\w.]+)\s*\)\s*:`)

	// self.attr = value or self.attr: Type = value, but not self.attr == value
	pyAttributePattern = regexp.MustCompile(`^\s+self\.(\w+)\s*(?::[^=]+)?=(?:[^=]|$)`)

	// def name( at one level of indentation: a tab or 2-4 spaces
	pyMethodPattern = regexp.MustCompile(`^(?:\t| {2,4})(?:async[ \t]+)?def[ \t]+(\w+)[ \t]*\(`)

	// CapitalizedWords( anywhere in the line
	pyInstantiationPattern = regexp.MustCompile(`\b((?:[A-Z][a-z0-9]*)+)\s*\(`)
)

// LineMatch is the outcome of classifying one line.
type LineMatch struct {
	Kind LineKind
	// Name is the class, attribute, method or instantiated type name.
	Name string
	// Parent is set for derived class declarations.
	Parent string
	// Instantiates holds the constructor called on the right-hand side of
	// an attribute assignment, if any.
	Instantiates string
}

// Classify runs the recognizers against a single line in precedence order
// and reports the first one that fires.
func Classify(line string) LineMatch {
	line = strings.TrimRight(line, "\r\n")

	if pySkipPattern.MatchString(line) {
		return LineMatch{Kind: LineSkip}
	}
	if m := pyBaseClassPattern.FindStringSubmatch(line); m != nil {
		return LineMatch{Kind: LineBaseClass, Name: m[1]}
	}
	if m := pyDerivedClassPattern.FindStringSubmatch(line); m != nil {
		return LineMatch{Kind: LineDerivedClass, Name: m[1], Parent: m[2]}
	}
	if loc := pyAttributePattern.FindStringSubmatchIndex(line); loc != nil {
		match := LineMatch{Kind: LineAttribute, Name: line[loc[2]:loc[3]]}
		// The right-hand side starts right after the "=".
		rhs := line[strings.IndexByte(line[loc[3]:], '=')+loc[3]+1:]
		if m := pyInstantiationPattern.FindStringSubmatch(rhs); m != nil {
			match.Instantiates = m[1]
		}
		return match
	}
	if m := pyMethodPattern.FindStringSubmatch(line); m != nil {
		return LineMatch{Kind: LineMethod, Name: m[1]}
	}
	if m := pyInstantiationPattern.FindStringSubmatch(line); m != nil {
		return LineMatch{Kind: LineInstantiation, Name: m[1]}
	}
	return LineMatch{Kind: LineNone}
}
