package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// This file defines unit-safe lengths and named page sizes. Layout works in points.

// Unit represents the original unit of a length value.
type Unit int

const (
	UnitPT Unit = iota // points, the default when no suffix is given
	UnitMM             // millimeters
	UnitCM             // centimeters
	UnitIN             // inches
)

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// String returns the unit suffix.
func (u Unit) String() string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	default:
		return "pt"
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// Points converts the length to PDF points.
func (l Length) Points() float64 {
	switch l.Unit {
	case UnitMM:
		return l.Value * MmToPt
	case UnitCM:
		return l.Value * 10 * MmToPt
	case UnitIN:
		return l.Value * 72
	default:
		return l.Value
	}
}

// Millimeters converts the length to millimeters.
func (l Length) Millimeters() float64 { return l.Points() * PtToMm }

// ParseLength parses "12", "12pt", "5mm", "1.5cm" or "1in". Bare numbers are points.
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, fmt.Errorf("长度为空")
	}
	unit := UnitPT
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("无法解析长度 %q: %w", value, err)
	}
	return Length{Value: f, Unit: unit}, nil
}

// PageSize is a page width and height in points.
type PageSize struct {
	Width  float64
	Height float64
}

// Landscape swaps width and height.
func (s PageSize) Landscape() PageSize { return PageSize{Width: s.Height, Height: s.Width} }

var (
	A4     = PageSize{Width: 595.28, Height: 841.89}
	A5     = PageSize{Width: 419.53, Height: 595.28}
	Letter = PageSize{Width: 612, Height: 792}
	Legal  = PageSize{Width: 612, Height: 1008}
)

// LookupPageSize resolves a case-insensitive page size name.
func LookupPageSize(name string) (PageSize, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "A4":
		return A4, true
	case "A5":
		return A5, true
	case "LETTER":
		return Letter, true
	case "LEGAL":
		return Legal, true
	default:
		return PageSize{}, false
	}
}
