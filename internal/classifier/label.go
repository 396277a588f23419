package classifier

import "fmt"

// Label is the closed set of shape classes.
type Label int

const (
	Uncertain Label = iota
	Diagram
	Connector
	Handwriting
)

// Labels lists every label in declaration order.
var Labels = []Label{Uncertain, Diagram, Connector, Handwriting}

func (l Label) String() string {
	switch l {
	case Uncertain:
		return "uncertain"
	case Diagram:
		return "diagram"
	case Connector:
		return "connector"
	case Handwriting:
		return "handwriting"
	default:
		return fmt.Sprintf("Label(%d)", int(l))
	}
}

// ParseLabel is the inverse of String.
func ParseLabel(s string) (Label, error) {
	switch s {
	case "uncertain":
		return Uncertain, nil
	case "diagram":
		return Diagram, nil
	case "connector":
		return Connector, nil
	case "handwriting":
		return Handwriting, nil
	default:
		return Uncertain, fmt.Errorf("unknown label %q", s)
	}
}

// MarshalText encodes the label as its lowercase name.
func (l Label) MarshalText() ([]byte, error) {
	switch l {
	case Uncertain, Diagram, Connector, Handwriting:
		return []byte(l.String()), nil
	default:
		return nil, fmt.Errorf("invalid label %d", int(l))
	}
}

// UnmarshalText decodes a lowercase label name.
func (l *Label) UnmarshalText(text []byte) error {
	parsed, err := ParseLabel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
