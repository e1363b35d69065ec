package emitorcsv

// TagKind sorts element names into their schema roles. The vocabulary is
// small and fixed; "status" appears in both the group and leaf sets and is
// disambiguated by nesting, at top level it opens a group, inside one it is
// a terminal measurement.
type TagKind int

const (
	KindUnknown TagKind = iota
	KindEmitor
	KindGroup
	KindLeaf
)

func (k TagKind) String() string {
	switch k {
	case KindEmitor:
		return "emitor"
	case KindGroup:
		return "group"
	case KindLeaf:
		return "leaf"
	default:
		return "unknown"
	}
}

const tagEmitor = "emitor"

// Attribute keys as they appear in the source documents.
const (
	attrName  = "nazwa"
	attrType  = "typ"
	attrPoint = "pkt"
)

var groupTags = map[string]struct{}{
	"status":   {},
	"parametr": {},
	"stezenie": {},
}

var leafTags = map[string]struct{}{
	"auto":       {},
	"reka":       {},
	"wartosc":    {},
	"status":     {},
	"niepewnosc": {},
	"standard":   {},
}

// Classify resolves an element name to its schema kind. inGroup reports
// whether a group element is currently open; it decides which of the two
// vocabularies applies.
func Classify(name string, inGroup bool) TagKind {
	if name == tagEmitor {
		return KindEmitor
	}
	if !inGroup {
		if _, ok := groupTags[name]; ok {
			return KindGroup
		}
		return KindUnknown
	}
	if _, ok := leafTags[name]; ok {
		return KindLeaf
	}
	return KindUnknown
}

// Attr is one element attribute as present in the source. Attributes are
// passed through in document order and may repeat; the tracker decides
// which occurrence wins.
type Attr struct {
	Name  string
	Value string
}

func attrValue(attrs []Attr, key string) (string, bool) {
	for _, a := range attrs {
		if a.Name == key {
			return a.Value, true
		}
	}
	return "", false
}
