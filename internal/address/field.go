package address

import "fmt"

// Field identifies one semantic slot of an Address.
// Ordinal values are stable and may be persisted by collaborators.
type Field int

const (
	RegionCode Field = iota
	AdminArea
	Locality
	DependentLocality
	SortingCode
	PostalCode
	StreetAddress
	Recipient

	fieldCount int = iota
)

// StorageKind describes how a field's value is stored.
type StorageKind int

const (
	Scalar   StorageKind = iota // a single string
	Repeated                    // an ordered list of strings
)

func (k StorageKind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Repeated:
		return "repeated"
	default:
		return fmt.Sprintf("StorageKind(%d)", int(k))
	}
}

// slot is the storage for one field. Every entry of the field table is
// exactly one of scalarSlot or repeatedSlot.
type slot interface {
	kind() StorageKind
}

type scalarSlot func(a *Address) *string

type repeatedSlot func(a *Address) *[]string

func (scalarSlot) kind() StorageKind   { return Scalar }
func (repeatedSlot) kind() StorageKind { return Repeated }

// fieldTable maps every Field to its storage. The array length is pinned to
// fieldCount so an out-of-range key fails to compile; init catches gaps.
var fieldTable = [fieldCount]slot{
	RegionCode:        scalarSlot(func(a *Address) *string { return &a.RegionCode }),
	AdminArea:         scalarSlot(func(a *Address) *string { return &a.AdministrativeArea }),
	Locality:          scalarSlot(func(a *Address) *string { return &a.Locality }),
	DependentLocality: scalarSlot(func(a *Address) *string { return &a.DependentLocality }),
	SortingCode:       scalarSlot(func(a *Address) *string { return &a.SortingCode }),
	PostalCode:        scalarSlot(func(a *Address) *string { return &a.PostalCode }),
	StreetAddress:     repeatedSlot(func(a *Address) *[]string { return &a.AddressLines }),
	Recipient:         scalarSlot(func(a *Address) *string { return &a.Recipient }),
}

var fieldNames = [fieldCount]string{
	RegionCode:        "region_code",
	AdminArea:         "admin_area",
	Locality:          "locality",
	DependentLocality: "dependent_locality",
	SortingCode:       "sorting_code",
	PostalCode:        "postal_code",
	StreetAddress:     "street_address",
	Recipient:         "recipient",
}

func init() {
	for i := range fieldTable {
		switch s := fieldTable[i].(type) {
		case scalarSlot:
			if s == nil {
				panic(fmt.Sprintf("address: nil scalar slot for field %d", i))
			}
		case repeatedSlot:
			if s == nil {
				panic(fmt.Sprintf("address: nil repeated slot for field %d", i))
			}
		default:
			panic(fmt.Sprintf("address: no storage registered for field %d", i))
		}
		if fieldNames[i] == "" {
			panic(fmt.Sprintf("address: no name registered for field %d", i))
		}
	}
}

// Valid reports whether f is one of the declared fields.
func (f Field) Valid() bool {
	return f >= 0 && int(f) < fieldCount
}

func (f Field) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// ParseField returns the field with the given snake_case name.
func ParseField(name string) (Field, error) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Fields returns every field in ordinal order.
func Fields() []Field {
	fields := make([]Field, fieldCount)
	for i := range fields {
		fields[i] = Field(i)
	}
	return fields
}

// KindOf returns the storage kind of f. It panics with a *PreconditionError
// if f is not a declared field.
func KindOf(f Field) StorageKind {
	return lookup("address.KindOf", f).kind()
}

// IsRepeated reports whether f holds an ordered list of strings.
func IsRepeated(f Field) bool {
	return KindOf(f) == Repeated
}

func lookup(op string, f Field) slot {
	if !f.Valid() {
		panic(&PreconditionError{Op: op, Field: f, Err: ErrUnknownField})
	}
	return fieldTable[f]
}
