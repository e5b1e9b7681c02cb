package domain

import "fmt"

type PrintMode string

const (
	PrintBlackWhite PrintMode = "BW"
	PrintColor      PrintMode = "Color"
)

type Sides string

const (
	SidesSingle Sides = "Single"
	SidesDouble Sides = "Double"
)

type Binding string

const (
	BindingNone   Binding = "None"
	BindingSpiral Binding = "Spiral"
	BindingWire   Binding = "Wire"
	BindingHard   Binding = "Hard"
)

func ParsePrintMode(s string) (PrintMode, error) {
	switch PrintMode(s) {
	case PrintBlackWhite, PrintColor:
		return PrintMode(s), nil
	}
	return "", fmt.Errorf("unknown print mode %q", s)
}

func ParseSides(s string) (Sides, error) {
	switch Sides(s) {
	case SidesSingle, SidesDouble:
		return Sides(s), nil
	}
	return "", fmt.Errorf("unknown sides %q", s)
}

func ParseBinding(s string) (Binding, error) {
	switch Binding(s) {
	case BindingNone, BindingSpiral, BindingWire, BindingHard:
		return Binding(s), nil
	}
	return "", fmt.Errorf("unknown binding %q", s)
}

// PrintFile describes the uploaded document behind a custom print line.
type PrintFile struct {
	Name      string    `json:"file_name"`
	Ref       string    `json:"file_ref"`
	PageCount int       `json:"page_count"`
	Mode      PrintMode `json:"print_mode"`
	Sides     Sides     `json:"sides"`
	Binding   Binding   `json:"binding"`
}
