package uml

import "strings"

// MemberKind distinguishes attributes from methods.
type MemberKind int

const (
	MemberVariable MemberKind = iota
	MemberMethod
)

// Member is a visibility-annotated class member such as "-__secret" or "+speak()".
type Member struct {
	Token string
	Kind  MemberKind
}

// ClassModel accumulates everything discovered across all scanned files of one run.
// It is not safe for concurrent use.
type ClassModel struct {
	// Classes lists class names in discovery order.
	Classes   []string
	ParentOf  map[string]string
	MembersOf map[string][]Member
	RelatedOf map[string][]string
}

// NewClassModel creates an empty model.
func NewClassModel() *ClassModel {
	return &ClassModel{
		ParentOf:  make(map[string]string),
		MembersOf: make(map[string][]Member),
		RelatedOf: make(map[string][]string),
	}
}

// HasClass reports whether name has been registered.
func (m *ClassModel) HasClass(name string) bool {
	_, ok := m.ParentOf[name]
	return ok
}

// AddClass registers a class with its parent ("" for none).
// It returns false and leaves the model untouched if the class is already known.
func (m *ClassModel) AddClass(name, parent string) bool {
	if m.HasClass(name) {
		return false
	}
	m.Classes = append(m.Classes, name)
	m.ParentOf[name] = parent
	m.MembersOf[name] = []Member{}
	m.RelatedOf[name] = []string{}
	return true
}

// AddMember records a member token for a known class.
// It returns false if the class is unknown or already has the token.
func (m *ClassModel) AddMember(class string, member Member) bool {
	members, ok := m.MembersOf[class]
	if !ok {
		return false
	}
	for _, existing := range members {
		if existing.Token == member.Token {
			return false
		}
	}
	m.MembersOf[class] = append(members, member)
	return true
}

// AddRelation records that class instantiates other.
// Self references and duplicates are ignored.
func (m *ClassModel) AddRelation(class, other string) bool {
	related, ok := m.RelatedOf[class]
	if !ok || other == "" || other == class {
		return false
	}
	for _, existing := range related {
		if existing == other {
			return false
		}
	}
	m.RelatedOf[class] = append(related, other)
	return true
}

// Variables returns the attribute tokens of class in discovery order.
func (m *ClassModel) Variables(class string) []string {
	var tokens []string
	for _, member := range m.MembersOf[class] {
		if member.Kind == MemberVariable {
			tokens = append(tokens, member.Token)
		}
	}
	return tokens
}

// Inheritance returns parent -> child pairs that form real edges. Classes
// without a parent, or whose parent is DefaultRootObject or rootObject,
// produce no edge.
func (m *ClassModel) Inheritance(rootObject string) [][2]string {
	var edges [][2]string
	for _, class := range m.Classes {
		parent := strings.TrimSpace(m.ParentOf[class])
		if parent == "" || parent == DefaultRootObject || parent == rootObject {
			continue
		}
		edges = append(edges, [2]string{parent, class})
	}
	return edges
}

// Associations returns class -> related pairs where related is a known class.
func (m *ClassModel) Associations() [][2]string {
	var edges [][2]string
	for _, class := range m.Classes {
		for _, related := range m.RelatedOf[class] {
			if related == class || !m.HasClass(related) {
				continue
			}
			edges = append(edges, [2]string{class, related})
		}
	}
	return edges
}
