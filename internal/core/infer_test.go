package core

import "testing"

func TestInferColumn(t *testing.T) {
	tests := []struct {
		name         string
		cells        []string
		wantCategory Category
		wantType     PrimitiveType
	}{
		{"integers", []string{"1", "22", "-3", "+4"}, CategoryNumeric, TypeInteger},
		{"floats", []string{"1.5", "2", ".5", "3."}, CategoryNumeric, TypeFloat},
		{"scientific", []string{"1e3", "2.5E-2"}, CategoryNumeric, TypeFloat},
		{"infinities", []string{"1", "inf", "-Infinity", "+INF"}, CategoryNumeric, TypeFloat},
		{"inf prefix word", []string{"info"}, CategoryAlphanumeric, TypeText},
		{"integers with missing become float", []string{"1", "", "3"}, CategoryNumeric, TypeFloat},
		{"integers with NA token", []string{"1", "NA", "null"}, CategoryNumeric, TypeFloat},
		{"all missing", []string{"", "NA", "  "}, CategoryNumeric, TypeFloat},
		{"zero rows", nil, CategoryNumeric, TypeFloat},
		{"dates", []string{"2021-01-01", "1999-12-31"}, CategoryDate, TypeText},
		{"dates with missing", []string{"2021-01-01", "", "N/A"}, CategoryDate, TypeText},
		{"impossible date", []string{"2021-02-30"}, CategoryAlphanumeric, TypeText},
		{"loose date form", []string{"2021-1-1"}, CategoryAlphanumeric, TypeText},
		{"slashed date", []string{"01/02/2021"}, CategoryAlphanumeric, TypeText},
		{"number then date", []string{"1", "2021-01-01"}, CategoryAlphanumeric, TypeText},
		{"date then number", []string{"2021-01-01", "1"}, CategoryAlphanumeric, TypeText},
		{"words", []string{"alice", "bob"}, CategoryAlphanumeric, TypeText},
		{"mixed", []string{"1", "two"}, CategoryAlphanumeric, TypeText},
		{"thousands separator", []string{"1,000"}, CategoryAlphanumeric, TypeText},
		{"surrounding spaces", []string{" 12 ", "3"}, CategoryNumeric, TypeInteger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotCategory, gotType := InferColumn(tt.cells)
			if gotCategory != tt.wantCategory {
				t.Errorf("category = %s, want %s", gotCategory, tt.wantCategory)
			}
			if gotType != tt.wantType {
				t.Errorf("type = %s, want %s", gotType, tt.wantType)
			}
		})
	}
}

func TestIsMissing(t *testing.T) {
	for _, cell := range []string{"", " ", "NA", "N/A", "NaN", "NULL", "None", "#N/A", "<NA>"} {
		if !IsMissing(cell) {
			t.Errorf("IsMissing(%q) = false, want true", cell)
		}
	}
	for _, cell := range []string{"0", "na", "none", "-", "x"} {
		if IsMissing(cell) {
			t.Errorf("IsMissing(%q) = true, want false", cell)
		}
	}
}

func TestIsDate(t *testing.T) {
	tests := []struct {
		cell string
		want bool
	}{
		{"2024-02-29", true},
		{"2023-02-29", false},
		{"2024-13-01", false},
		{"2024-01-01T00:00:00", false},
		{"20240101", false},
	}
	for _, tt := range tests {
		if got := IsDate(tt.cell); got != tt.want {
			t.Errorf("IsDate(%q) = %v, want %v", tt.cell, got, tt.want)
		}
	}
}

func TestCategoryMarshalText(t *testing.T) {
	b, err := CategoryDate.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(b) != "date" {
		t.Errorf("MarshalText() = %q, want %q", b, "date")
	}
	if TypeInteger.String() != "integer" {
		t.Errorf("TypeInteger.String() = %q, want %q", TypeInteger.String(), "integer")
	}
}

func TestUnmarshalText(t *testing.T) {
	var c Category
	if err := c.UnmarshalText([]byte("alphanumeric")); err != nil || c != CategoryAlphanumeric {
		t.Errorf("Category.UnmarshalText() = %v, %v", c, err)
	}
	if err := c.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("Category.UnmarshalText() expected error for unknown name")
	}

	var p PrimitiveType
	if err := p.UnmarshalText([]byte("float")); err != nil || p != TypeFloat {
		t.Errorf("PrimitiveType.UnmarshalText() = %v, %v", p, err)
	}
	if err := p.UnmarshalText([]byte("")); err == nil {
		t.Error("PrimitiveType.UnmarshalText() expected error for empty name")
	}
}
