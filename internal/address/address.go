package address

import (
	"slices"
	"strings"
	"unicode"
)

// Address is a structured postal address. The zero value is an empty address.
//
// Fields can be read and written by name, or generically through a Field
// with Value, SetValue, RepeatedValue and IsFieldEmpty. Address carries no
// synchronization; share copies (see Clone) across goroutines.
type Address struct {
	RegionCode         string   `json:"region_code"`
	AdministrativeArea string   `json:"admin_area"`
	Locality           string   `json:"locality"`
	DependentLocality  string   `json:"dependent_locality"`
	SortingCode        string   `json:"sorting_code"`
	PostalCode         string   `json:"postal_code"`
	AddressLines       []string `json:"address_lines"`
	Recipient          string   `json:"recipient"`
}

// Value returns the value of a scalar field.
// It panics with a *PreconditionError if f is StreetAddress.
func (a Address) Value(f Field) string {
	return *a.scalar("address.Value", f)
}

// SetValue replaces the value of a scalar field. No other field changes.
// It panics with a *PreconditionError if f is StreetAddress.
func (a *Address) SetValue(f Field, value string) {
	*a.scalar("address.SetValue", f) = value
}

// RepeatedValue returns a copy of the lines of a repeated field.
// It panics with a *PreconditionError if f is a scalar field.
func (a Address) RepeatedValue(f Field) []string {
	return slices.Clone(*a.repeated("address.RepeatedValue", f))
}

// SetAddressLines replaces all street address lines.
func (a *Address) SetAddressLines(lines ...string) {
	a.AddressLines = slices.Clone(lines)
}

// AppendAddressLine adds a street address line after the existing ones.
func (a *Address) AppendAddressLine(line string) {
	a.AddressLines = append(a.AddressLines, line)
}

// IsFieldEmpty reports whether f has no visible content. A repeated field is
// empty when every line is blank, so ["", " "] is as empty as no lines.
func (a Address) IsFieldEmpty(f Field) bool {
	switch s := lookup("address.IsFieldEmpty", f).(type) {
	case scalarSlot:
		return isBlank(*s(&a))
	case repeatedSlot:
		return !slices.ContainsFunc(*s(&a), func(line string) bool { return !isBlank(line) })
	}
	panic("unreachable")
}

// EmptyFields returns the fields with no visible content, in field order.
func (a Address) EmptyFields() []Field {
	var empty []Field
	for _, f := range Fields() {
		if a.IsFieldEmpty(f) {
			empty = append(empty, f)
		}
	}
	return empty
}

// Clone returns a copy that shares no storage with a.
func (a Address) Clone() Address {
	c := a
	c.AddressLines = slices.Clone(a.AddressLines)
	return c
}

// String renders one "name: value" line per field, for debugging.
func (a Address) String() string {
	var b strings.Builder
	for _, f := range Fields() {
		b.WriteString(f.String())
		b.WriteString(":")
		if IsRepeated(f) {
			for _, line := range a.RepeatedValue(f) {
				b.WriteString(" ")
				b.WriteString(line)
				b.WriteString(";")
			}
		} else {
			b.WriteString(" ")
			b.WriteString(a.Value(f))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (a *Address) scalar(op string, f Field) *string {
	s, ok := lookup(op, f).(scalarSlot)
	if !ok {
		panic(&PreconditionError{Op: op, Field: f, Err: ErrWrongStorageKind})
	}
	return s(a)
}

func (a *Address) repeated(op string, f Field) *[]string {
	s, ok := lookup(op, f).(repeatedSlot)
	if !ok {
		panic(&PreconditionError{Op: op, Field: f, Err: ErrWrongStorageKind})
	}
	return s(a)
}

// isBlank reports whether s has no non-whitespace rune.
func isBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}
