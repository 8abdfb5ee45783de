// internal/productform/validation.go
package productform

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shamaim/admin-dashboard/internal/models"
	"github.com/shamaim/admin-dashboard/internal/utils"
)

// Operation selects which rule set applies to a submission.
type Operation int

const (
	OperationCreate Operation = iota
	OperationUpdate
)

func (o Operation) String() string {
	if o == OperationUpdate {
		return "update"
	}
	return "create"
}

type textField struct {
	name  string
	value func(d ProductDraft) string
}

var commonTextFields = []textField{
	{"title", func(d ProductDraft) string { return d.Title }},
	{"style", func(d ProductDraft) string { return d.Style }},
	{"code", func(d ProductDraft) string { return d.Code }},
	{"gender", func(d ProductDraft) string { return d.Gender }},
	{"color", func(d ProductDraft) string { return d.Color }},
	{"gsm", func(d ProductDraft) string { return d.GSM }},
	{"aboutDesign", func(d ProductDraft) string { return d.AboutDesign }},
	{"material", func(d ProductDraft) string { return d.Material }},
	{"sleeve", func(d ProductDraft) string { return d.Sleeve }},
	{"fit", func(d ProductDraft) string { return d.Fit }},
	{"neckType", func(d ProductDraft) string { return d.NeckType }},
	{"pattern", func(d ProductDraft) string { return d.Pattern }},
}

var createTextFields = []textField{
	{"category", func(d ProductDraft) string { return d.Category }},
	{"subcategory", func(d ProductDraft) string { return d.Subcategory }},
	{"highlight", func(d ProductDraft) string { return d.Highlight }},
}

// Validate checks a draft before submission. Rule classes run in order and
// the first failing class is returned: missing fields, invalid fields, empty
// genre (create only), empty size, stock.
func Validate(d ProductDraft, op Operation) error {
	if missing := missingFields(d, op); len(missing) > 0 {
		return &ValidationError{MissingFields: missing}
	}
	if invalid := invalidFields(d); len(invalid) > 0 {
		return &ValidationError{InvalidFields: invalid}
	}
	if op == OperationCreate && len(d.Genre) == 0 {
		return &ValidationError{EmptyGenre: true}
	}
	if len(d.Size) == 0 {
		return &ValidationError{EmptySize: true}
	}
	for _, size := range d.Size {
		if qty, ok := d.Stock[size]; !ok || qty <= 0 {
			return &ValidationError{InvalidStock: true}
		}
	}
	return nil
}

func missingFields(d ProductDraft, op Operation) []string {
	var missing []string

	for _, f := range commonTextFields[:3] {
		if isBlank(f.value(d)) {
			missing = append(missing, f.name)
		}
	}
	if d.MRP.IsZero() {
		missing = append(missing, "mrp")
	}
	for _, f := range commonTextFields[3:] {
		if isBlank(f.value(d)) {
			missing = append(missing, f.name)
		}
	}

	if op == OperationCreate {
		for _, f := range createTextFields {
			if isBlank(f.value(d)) {
				missing = append(missing, f.name)
			}
		}
		if d.Thumbnail.IsEmpty() {
			missing = append(missing, "thumbnail")
		}
		if len(d.Images) == 0 {
			missing = append(missing, "images")
		}
	}

	return missing
}

func invalidFields(d ProductDraft) []string {
	var invalid []string

	if d.MRP.IsNegative() {
		invalid = append(invalid, "mrp")
	}
	if d.DiscountPercentage.IsNegative() || d.DiscountPercentage.GreaterThan(decimal.NewFromInt(100)) {
		invalid = append(invalid, "discountPercentage")
	}
	if !models.IsValidGender(d.Gender) {
		invalid = append(invalid, "gender")
	}
	if d.Category != "" {
		if _, ok := models.FindCategory(d.Category); !ok {
			invalid = append(invalid, "category")
		}
	}
	if d.Subcategory != "" && !containsString(models.SubcategoriesOf(d.Category), d.Subcategory) {
		invalid = append(invalid, "subcategory")
	}
	for _, g := range d.Genre {
		if !models.IsKnownGenre(g) {
			invalid = append(invalid, "genre")
			break
		}
	}
	for _, s := range d.Size {
		if !models.IsKnownSize(s) {
			invalid = append(invalid, "size")
			break
		}
	}
	for _, asset := range d.Images {
		if asset.IsEmpty() {
			invalid = append(invalid, "images")
			break
		}
	}

	return invalid
}

func isBlank(v string) bool {
	return utils.ValidateVar(strings.TrimSpace(v), "required") != nil
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
