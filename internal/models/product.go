// internal/models/product.go
package models

import "strings"

// Fixed values the catalog backend expects on every product.
const (
	ProductNetQTY           = 1
	ProductCountryOfOrigin  = "India"
	ProductCareInstructions = "Please read the brand tag."
)

// ProductRecord is the product shape persisted by the catalog backend. Field
// names follow the backend schema, not Go conventions.
type ProductRecord struct {
	ID                 *int64         `json:"id,omitempty"`
	Title              string         `json:"title"`
	Style              string         `json:"Style"`
	ProductCode        string         `json:"ProductCode"`
	Price              float64        `json:"price"`
	DiscountPercentage float64        `json:"discountPercentage"`
	Gender             string         `json:"gender"`
	Category           string         `json:"category"`
	Subcategory        string         `json:"subcategory"`
	Genre              []string       `json:"genre"`
	Color              string         `json:"color"`
	Size               []string       `json:"size"`
	Stock              map[string]int `json:"stock"`
	GSM                string         `json:"GSM"`
	AboutTheDesign     string         `json:"AboutTheDesign"`
	Material           string         `json:"Material"`
	SleeveLength       string         `json:"SleeveLength"`
	Fit                string         `json:"Fit"`
	NeckType           string         `json:"NeckType"`
	Pattern            string         `json:"Pattern"`
	NetQTY             int            `json:"NetQTY"`
	CountryOfOrigin    string         `json:"CountryOfOrigin"`
	CareInstructions   string         `json:"CareInstructions"`
	Thumbnail          string         `json:"thumbnail"`
	Images             []string       `json:"images"`
}

// ProductID returns the record identifier, or 0 when the backend sent none.
func (p ProductRecord) ProductID() int64 {
	if p.ID == nil {
		return 0
	}
	return *p.ID
}

// MatchesSearch reports whether q appears in the title, style or product
// code, ignoring case. An empty query matches everything.
func (p ProductRecord) MatchesSearch(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, field := range []string{p.Title, p.Style, p.ProductCode} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
