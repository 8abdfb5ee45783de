// internal/productform/normalize.go
package productform

import (
	"strings"

	"github.com/shamaim/admin-dashboard/internal/models"
)

// Normalize maps a validated draft and its resolved assets onto the catalog
// backend's record shape. The offer price is left out; the backend derives it
// from price and discountPercentage. nextID is only used when creating.
func Normalize(d ProductDraft, assets ResolvedAssets, op Operation, nextID int64) models.ProductRecord {
	record := models.ProductRecord{
		Title:              strings.TrimSpace(d.Title),
		Style:              strings.TrimSpace(d.Style),
		ProductCode:        strings.TrimSpace(d.Code),
		Price:              d.MRP.InexactFloat64(),
		DiscountPercentage: d.DiscountPercentage.InexactFloat64(),
		Gender:             d.Gender,
		Category:           d.Category,
		Subcategory:        d.Subcategory,
		Genre:              append([]string{}, d.Genre...),
		Color:              strings.TrimSpace(d.Color),
		Size:               append([]string{}, d.Size...),
		Stock:              make(map[string]int, len(d.Size)),
		GSM:                strings.TrimSpace(d.GSM),
		AboutTheDesign:     strings.TrimSpace(d.AboutDesign),
		Material:           strings.TrimSpace(d.Material),
		SleeveLength:       strings.TrimSpace(d.Sleeve),
		Fit:                strings.TrimSpace(d.Fit),
		NeckType:           strings.TrimSpace(d.NeckType),
		Pattern:            strings.TrimSpace(d.Pattern),
		NetQTY:             models.ProductNetQTY,
		CountryOfOrigin:    models.ProductCountryOfOrigin,
		CareInstructions:   models.ProductCareInstructions,
		Thumbnail:          assets.ThumbnailURL,
		Images:             append([]string{}, assets.ImageURLs...),
	}

	// Only sizes still selected are persisted.
	for _, size := range d.Size {
		record.Stock[size] = d.Stock[size]
	}

	if op == OperationCreate {
		id := nextID
		record.ID = &id
	}

	return record
}

// NextProductID returns one more than the largest identifier in records, or 1
// when there are none.
func NextProductID(records []models.ProductRecord) int64 {
	var max int64
	for _, r := range records {
		if id := r.ProductID(); id > max {
			max = id
		}
	}
	return max + 1
}
