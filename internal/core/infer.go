package core

// infer.go classifies a column from its raw cell text.
//
// Missing cells (blank, or one of the placeholder tokens below) never
// disqualify a column from a category. A column with no present values at
// all is numeric with primitive type float, matching how a dataframe would
// coerce an all-null column.

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Category is the coarse semantic class of a column.
type Category uint8

const (
	CategoryNumeric Category = iota
	CategoryDate
	CategoryAlphanumeric
)

func (c Category) String() string {
	switch c {
	case CategoryNumeric:
		return "numeric"
	case CategoryDate:
		return "date"
	case CategoryAlphanumeric:
		return "alphanumeric"
	}
	return ""
}

// MarshalText renders the category by name in JSON and YAML output.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	for _, v := range []Category{CategoryNumeric, CategoryDate, CategoryAlphanumeric} {
		if v.String() == string(b) {
			*c = v
			return nil
		}
	}
	return fmt.Errorf("unknown category %q", b)
}

// PrimitiveType is the storage type a column's values fit in.
type PrimitiveType uint8

const (
	TypeInteger PrimitiveType = iota
	TypeFloat
	TypeText
)

func (t PrimitiveType) String() string {
	switch t {
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeText:
		return "text"
	}
	return ""
}

// MarshalText renders the type by name in JSON and YAML output.
func (t PrimitiveType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *PrimitiveType) UnmarshalText(b []byte) error {
	for _, v := range []PrimitiveType{TypeInteger, TypeFloat, TypeText} {
		if v.String() == string(b) {
			*t = v
			return nil
		}
	}
	return fmt.Errorf("unknown primitive type %q", b)
}

var (
	// numericRegex matches integers, decimals, scientific notation and the
	// infinity spellings strconv.ParseFloat accepts.
	numericRegex = regexp.MustCompile(`^[+-]?((\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?|(?i:inf|infinity))$`)

	integerRegex = regexp.MustCompile(`^[+-]?\d+$`)

	// dateRegex pins the shape; time.Parse then rejects impossible dates.
	dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// dateLayout is the only accepted calendar date form.
const dateLayout = "2006-01-02"

// missingTokens are cell values read as "no value".
var missingTokens = map[string]bool{
	"":         true,
	"NA":       true,
	"N/A":      true,
	"n/a":      true,
	"NaN":      true,
	"nan":      true,
	"-NaN":     true,
	"-nan":     true,
	"NULL":     true,
	"null":     true,
	"None":     true,
	"#N/A":     true,
	"#NA":      true,
	"<NA>":     true,
	"#N/A N/A": true,
	"-1.#IND":  true,
	"-1.#QNAN": true,
	"1.#IND":   true,
	"1.#QNAN":  true,
}

// IsMissing reports whether a cell holds no value.
func IsMissing(cell string) bool {
	return missingTokens[strings.TrimSpace(cell)]
}

// IsNumeric reports whether a present cell parses as a number.
func IsNumeric(cell string) bool {
	return numericRegex.MatchString(strings.TrimSpace(cell))
}

// IsDate reports whether a present cell is a valid YYYY-MM-DD date.
func IsDate(cell string) bool {
	s := strings.TrimSpace(cell)
	if !dateRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// InferColumn returns the category and primitive type of a column.
// Numeric takes precedence over date.
func InferColumn(cells []string) (Category, PrimitiveType) {
	allNumeric, allDate := true, true
	allInteger, anyMissing := true, false

	for _, cell := range cells {
		if IsMissing(cell) {
			anyMissing = true
			continue
		}
		if allNumeric {
			if IsNumeric(cell) {
				if !integerRegex.MatchString(strings.TrimSpace(cell)) {
					allInteger = false
				}
			} else {
				allNumeric = false
			}
		}
		if allDate && !IsDate(cell) {
			allDate = false
		}
		if !allNumeric && !allDate {
			break
		}
	}

	switch {
	case allNumeric:
		if allInteger && !anyMissing && len(cells) > 0 {
			return CategoryNumeric, TypeInteger
		}
		return CategoryNumeric, TypeFloat
	case allDate:
		return CategoryDate, TypeText
	default:
		return CategoryAlphanumeric, TypeText
	}
}
