package uml

import "strings"

// Visibility prefixes used by PlantUML class members.
const (
	NotationPublic    = "+"
	NotationProtected = "#"
	NotationPrivate   = "-"
)

// VariableNotation prefixes an attribute name with its PlantUML visibility,
// inferred from Python naming conventions.
func VariableNotation(name string) string {
	return visibilityPrefix(name) + name
}

// MethodNotation is VariableNotation for method names, except that dunder
// methods such as __init__ are always public.
func MethodNotation(name string) string {
	if isDunder(name) {
		return NotationPublic + name
	}
	return VariableNotation(name)
}

func visibilityPrefix(name string) string {
	// "__x" also starts with "_", so private is checked first.
	if strings.HasPrefix(name, "__") {
		return NotationPrivate
	}
	if strings.HasPrefix(name, "_") {
		return NotationProtected
	}
	return NotationPublic
}

func isDunder(name string) bool {
	return len(name) > 4 && strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__")
}
