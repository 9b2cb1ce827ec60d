package address_test

import (
	"testing"

	"github.com/dukerupert/addressdata/internal/address"
	"github.com/stretchr/testify/assert"
)

func scalarFields() []address.Field {
	var fields []address.Field
	for _, f := range address.Fields() {
		if !address.IsRepeated(f) {
			fields = append(fields, f)
		}
	}
	return fields
}

func TestAddress_ZeroValueIsEmpty(t *testing.T) {
	var a address.Address
	for _, f := range address.Fields() {
		assert.True(t, a.IsFieldEmpty(f), f.String())
	}
	assert.Equal(t, address.Fields(), a.EmptyFields())
	assert.Empty(t, a.RepeatedValue(address.StreetAddress))
}

func TestAddress_SetValueRoundTrip(t *testing.T) {
	values := []string{"", "  ", "CH", "  A  ", "Zürich"}
	for _, f := range scalarFields() {
		for _, v := range values {
			var a address.Address
			a.SetValue(f, v)
			assert.Equal(t, v, a.Value(f), "%s = %q", f, v)
		}
	}
}

func TestAddress_SetValueWritesNamedAttribute(t *testing.T) {
	var a address.Address
	a.SetValue(address.RegionCode, "US")
	a.SetValue(address.AdminArea, "CA")
	a.SetValue(address.Locality, "Mountain View")
	a.SetValue(address.DependentLocality, "Old Mountain View")
	a.SetValue(address.SortingCode, "CEDEX 7")
	a.SetValue(address.PostalCode, "94043")
	a.SetValue(address.Recipient, "Jane Doe")

	assert.Equal(t, address.Address{
		RegionCode:         "US",
		AdministrativeArea: "CA",
		Locality:           "Mountain View",
		DependentLocality:  "Old Mountain View",
		SortingCode:        "CEDEX 7",
		PostalCode:         "94043",
		Recipient:          "Jane Doe",
	}, a)
}

func TestAddress_IsFieldEmpty_Scalar(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"empty", "", true},
		{"spaces", "   ", true},
		{"tabs and newlines", "\t\n\r ", true},
		{"non-breaking space", "\u00a0", true},
		{"padded letter", "  A  ", false},
		{"plain", "Jane", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a address.Address
			a.SetValue(address.Recipient, tt.value)
			assert.Equal(t, tt.want, a.IsFieldEmpty(address.Recipient))
		})
	}
}

func TestAddress_IsFieldEmpty_Repeated(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  bool
	}{
		{"no lines", []string{}, true},
		{"nil lines", nil, true},
		{"blank lines", []string{"", "  "}, true},
		{"one real line", []string{"", "Main St"}, false},
		{"real line first", []string{"1600 Amphitheatre Pkwy", ""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a address.Address
			a.SetAddressLines(tt.lines...)
			assert.Equal(t, tt.want, a.IsFieldEmpty(address.StreetAddress))
		})
	}
}

func TestAddress_WrongStorageKindPanics(t *testing.T) {
	var a address.Address

	assertPrecondition(t, address.ErrWrongStorageKind, func() { a.Value(address.StreetAddress) })
	assertPrecondition(t, address.ErrWrongStorageKind, func() { a.SetValue(address.StreetAddress, "x") })
	assertPrecondition(t, address.ErrWrongStorageKind, func() { a.RepeatedValue(address.Recipient) })
}

func TestAddress_UnknownFieldPanics(t *testing.T) {
	var a address.Address

	assertPrecondition(t, address.ErrUnknownField, func() { a.Value(address.Field(99)) })
	assertPrecondition(t, address.ErrUnknownField, func() { a.IsFieldEmpty(address.Field(-1)) })
}

func TestAddress_MutationIsIsolated(t *testing.T) {
	for _, target := range address.Fields() {
		var a address.Address
		if address.IsRepeated(target) {
			a.AppendAddressLine("Main St")
		} else {
			a.SetValue(target, "value")
		}

		for _, other := range address.Fields() {
			if other == target {
				assert.False(t, a.IsFieldEmpty(other), other.String())
				continue
			}
			assert.True(t, a.IsFieldEmpty(other), "setting %s changed %s", target, other)
		}
	}
}

func TestAddress_AddressLineMutators(t *testing.T) {
	var a address.Address
	a.AppendAddressLine("Line 1")
	a.AppendAddressLine("Line 2")
	assert.Equal(t, []string{"Line 1", "Line 2"}, a.RepeatedValue(address.StreetAddress))

	a.SetAddressLines("Only")
	assert.Equal(t, []string{"Only"}, a.RepeatedValue(address.StreetAddress))
}

func TestAddress_RepeatedValueIsACopy(t *testing.T) {
	var a address.Address
	a.SetAddressLines("Main St")

	lines := a.RepeatedValue(address.StreetAddress)
	lines[0] = "changed"

	assert.Equal(t, []string{"Main St"}, a.RepeatedValue(address.StreetAddress))
}

func TestAddress_SetAddressLinesCopiesInput(t *testing.T) {
	in := []string{"Main St"}
	var a address.Address
	a.SetAddressLines(in...)
	in[0] = "changed"

	assert.Equal(t, "Main St", a.AddressLines[0])
}

func TestAddress_Clone(t *testing.T) {
	var a address.Address
	a.SetValue(address.PostalCode, "94043")
	a.SetAddressLines("Main St")

	c := a.Clone()
	c.AddressLines[0] = "Side St"
	c.SetValue(address.PostalCode, "10001")

	assert.Equal(t, "Main St", a.AddressLines[0])
	assert.Equal(t, "94043", a.Value(address.PostalCode))
}

func TestAddress_EmptyFields(t *testing.T) {
	a := address.Address{
		RegionCode:   "US",
		AddressLines: []string{" "},
		Recipient:    "Jane",
	}
	assert.Equal(t, []address.Field{
		address.AdminArea,
		address.Locality,
		address.DependentLocality,
		address.SortingCode,
		address.PostalCode,
		address.StreetAddress,
	}, a.EmptyFields())
}

func TestAddress_String(t *testing.T) {
	a := address.Address{
		RegionCode:   "US",
		AddressLines: []string{"1 Main St", "Apt 2"},
	}
	s := a.String()
	assert.Contains(t, s, "region_code: US\n")
	assert.Contains(t, s, "street_address: 1 Main St; Apt 2;\n")
}
