// Package types provides the value types shared across the deal document generator.
package types

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Industry identifies a business vertical used to select catalog content.
type Industry string

// Known industries.
const (
	IndustryManagedITServices Industry = "managed_it_services"
	IndustryEngineering       Industry = "engineering"
)

// Industries lists every known industry in display order.
func Industries() []Industry {
	return []Industry{IndustryManagedITServices, IndustryEngineering}
}

// Known reports whether i is one of the declared industries.
func (i Industry) Known() bool {
	for _, known := range Industries() {
		if i == known {
			return true
		}
	}
	return false
}

// Title returns the human-readable form, e.g. "Managed It Services".
func (i Industry) Title() string {
	return TitleCase(string(i))
}

// DocumentType identifies the kind of document to generate.
type DocumentType string

// Known document types.
const (
	DocumentInformationMemorandum DocumentType = "information_memorandum"
	DocumentSalesProspectus       DocumentType = "sales_prospectus"
	DocumentBusinessOverview      DocumentType = "business_overview"
	DocumentInvestmentThesis      DocumentType = "investment_thesis"
)

// DocumentTypes lists every known document type in display order.
func DocumentTypes() []DocumentType {
	return []DocumentType{
		DocumentInformationMemorandum,
		DocumentSalesProspectus,
		DocumentBusinessOverview,
		DocumentInvestmentThesis,
	}
}

// Known reports whether d is one of the declared document types.
func (d DocumentType) Known() bool {
	for _, known := range DocumentTypes() {
		if d == known {
			return true
		}
	}
	return false
}

// Title returns the human-readable form, e.g. "Information Memorandum".
func (d DocumentType) Title() string {
	return TitleCase(string(d))
}

// TitleCase replaces underscores with spaces and upper-cases the first
// letter of each word. The remaining letters are left untouched.
func TitleCase(id string) string {
	words := strings.Split(strings.ReplaceAll(id, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		if r == utf8.RuneError {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// MissingSelectionMessage is returned to callers that omit either field.
const MissingSelectionMessage = "Missing document type or industry selection."

// UnknownSelectionMessage is returned when strict selection rejects a value.
const UnknownSelectionMessage = "Unknown document type or industry selection."

// GenerationRequest is the body accepted by the generate endpoint.
type GenerationRequest struct {
	DocumentType DocumentType `json:"documentType" validate:"required"`
	Industry     Industry     `json:"industry" validate:"required"`
}

// ValidationError indicates the caller supplied an unusable selection.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Message
	}
	return "validation error: " + e.Field + " - " + e.Message
}

var validate = validator.New()

// Validate checks that both fields are present. When strict is set the
// values must also belong to the declared sets.
func (r *GenerationRequest) Validate(strict bool) error {
	if err := validate.Struct(r); err != nil {
		field := ""
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			field = fieldErrs[0].Field()
		}
		return &ValidationError{Field: field, Message: MissingSelectionMessage}
	}

	if strict {
		if !r.DocumentType.Known() {
			return &ValidationError{Field: "DocumentType", Message: UnknownSelectionMessage}
		}
		if !r.Industry.Known() {
			return &ValidationError{Field: "Industry", Message: UnknownSelectionMessage}
		}
	}

	return nil
}
