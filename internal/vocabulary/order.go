package vocabulary

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/mrlokans/vocabdaily/internal/entities"
)

// Field selects the sort key of a word list.
type Field string

const (
	FieldTerm      Field = "term"
	FieldTimestamp Field = "timestamp"
	FieldColor     Field = "color"
	// FieldDescription is accepted but has no sort key; lists ordered by it
	// keep their incoming order.
	FieldDescription Field = "description"
)

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Ordering is a field and direction pair. It is compared by value and
// always replaced as a whole.
type Ordering struct {
	Field     Field     `json:"field"`
	Direction Direction `json:"direction"`
}

// DefaultOrdering shows the newest words first.
var DefaultOrdering = Ordering{Field: FieldTimestamp, Direction: Descending}

func (o Ordering) String() string {
	return string(o.Field) + ":" + string(o.Direction)
}

// ParseOrdering validates user-supplied field and direction names.
// An empty direction means ascending.
func ParseOrdering(field, direction string) (Ordering, error) {
	o := Ordering{
		Field:     Field(strings.ToLower(strings.TrimSpace(field))),
		Direction: Direction(strings.ToLower(strings.TrimSpace(direction))),
	}
	if o.Direction == "" {
		o.Direction = Ascending
	}

	switch o.Field {
	case FieldTerm, FieldTimestamp, FieldColor, FieldDescription:
	default:
		return Ordering{}, fmt.Errorf("unknown order field %q", field)
	}

	switch o.Direction {
	case Ascending, Descending:
	default:
		return Ordering{}, fmt.Errorf("unknown order direction %q", direction)
	}

	return o, nil
}

// Order returns a sorted copy of words. The sort is stable, so words with
// equal keys keep their relative order. A field or direction without a sort
// key returns the words in their original order.
func Order(words []entities.Word, o Ordering) []entities.Word {
	sorted := append(make([]entities.Word, 0, len(words)), words...)

	compare := comparator(o.Field)
	if compare == nil {
		return sorted
	}

	switch o.Direction {
	case Ascending:
		slices.SortStableFunc(sorted, compare)
	case Descending:
		slices.SortStableFunc(sorted, func(a, b entities.Word) int {
			return compare(b, a)
		})
	}

	return sorted
}

func comparator(field Field) func(a, b entities.Word) int {
	switch field {
	case FieldTerm:
		return func(a, b entities.Word) int {
			return strings.Compare(strings.ToLower(a.Term), strings.ToLower(b.Term))
		}
	case FieldTimestamp:
		return func(a, b entities.Word) int {
			return cmp.Compare(a.Timestamp, b.Timestamp)
		}
	case FieldColor:
		return func(a, b entities.Word) int {
			return cmp.Compare(a.Color, b.Color)
		}
	default:
		return nil
	}
}
