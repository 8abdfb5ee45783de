// internal/productform/draft.go
package productform

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shamaim/admin-dashboard/internal/models"
)

var (
	ErrImageIndexOutOfRange = errors.New("image index out of range")
	ErrInvalidAsset         = errors.New("asset must be a URL string or an object with a url field")
)

// PendingFile is a local file staged by the admin that has not been uploaded
// to the asset store yet.
type PendingFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// Asset is either a resolved URL or a pending local file. The zero value is
// an empty asset.
type Asset struct {
	URL  string
	File *PendingFile
}

func URLAsset(url string) Asset {
	return Asset{URL: url}
}

func FileAsset(file PendingFile) Asset {
	return Asset{File: &file}
}

func (a Asset) IsPending() bool {
	return a.File != nil
}

func (a Asset) IsEmpty() bool {
	return a.File == nil && strings.TrimSpace(a.URL) == ""
}

func (a Asset) MarshalJSON() ([]byte, error) {
	switch {
	case a.File != nil:
		return json.Marshal(map[string]interface{}{
			"pending":      true,
			"name":         a.File.Name,
			"content_type": a.File.ContentType,
			"size":         len(a.File.Data),
		})
	case a.URL != "":
		return json.Marshal(map[string]interface{}{"url": a.URL})
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a bare URL string or {"url": "..."}. Pending files
// can only be staged through multipart uploads.
func (a *Asset) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = Asset{}
		return nil
	}

	var url string
	if err := json.Unmarshal(data, &url); err == nil {
		*a = URLAsset(url)
		return nil
	}

	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(data, &obj); err != nil || obj.URL == "" {
		return ErrInvalidAsset
	}
	*a = URLAsset(obj.URL)
	return nil
}

// ProductDraft is the in-progress product owned by one form session.
type ProductDraft struct {
	Title              string          `json:"title"`
	Style              string          `json:"style"`
	Code               string          `json:"code"`
	Color              string          `json:"color"`
	GSM                string          `json:"gsm"`
	Highlight          string          `json:"highlight"`
	AboutDesign        string          `json:"aboutDesign"`
	Material           string          `json:"material"`
	Sleeve             string          `json:"sleeve"`
	Fit                string          `json:"fit"`
	NeckType           string          `json:"neckType"`
	Pattern            string          `json:"pattern"`
	MRP                decimal.Decimal `json:"mrp"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	Gender             string          `json:"gender"`
	Category           string          `json:"category"`
	Subcategory        string          `json:"subcategory"`
	Genre              []string        `json:"genre"`
	Size               []string        `json:"size"`
	Stock              map[string]int  `json:"stock"`
	Thumbnail          Asset           `json:"thumbnail"`
	Images             []Asset         `json:"images"`
}

// NewDraft returns an empty draft with all defaults.
func NewDraft() ProductDraft {
	return ProductDraft{
		Genre:  []string{},
		Size:   []string{},
		Stock:  map[string]int{},
		Images: []Asset{},
	}
}

// DraftFromRecord populates a draft from a persisted product for an edit
// session. Assets start as resolved URLs.
func DraftFromRecord(r models.ProductRecord) ProductDraft {
	d := NewDraft()
	d.Title = r.Title
	d.Style = r.Style
	d.Code = r.ProductCode
	d.MRP = decimal.NewFromFloat(r.Price)
	d.DiscountPercentage = decimal.NewFromFloat(r.DiscountPercentage)
	d.Gender = normalizeGender(r.Gender)
	d.Category = r.Category
	d.Subcategory = r.Subcategory
	d.Color = r.Color
	d.GSM = r.GSM
	d.AboutDesign = r.AboutTheDesign
	d.Material = r.Material
	d.Sleeve = r.SleeveLength
	d.Fit = r.Fit
	d.NeckType = r.NeckType
	d.Pattern = r.Pattern
	d.Genre = append(d.Genre, r.Genre...)
	d.Size = append(d.Size, r.Size...)
	for size, qty := range r.Stock {
		d.Stock[size] = qty
	}
	if r.Thumbnail != "" {
		d.Thumbnail = URLAsset(r.Thumbnail)
	}
	for _, url := range r.Images {
		d.Images = append(d.Images, URLAsset(url))
	}
	return d
}

// Older records store gender as "men"/"women".
func normalizeGender(g string) string {
	if g == "men" || g == string(models.GenderMale) {
		return string(models.GenderMale)
	}
	return string(models.GenderFemale)
}

// OfferPrice is derived from MRP and discount; it is never stored.
func (d ProductDraft) OfferPrice() decimal.Decimal {
	return OfferPrice(d.MRP, d.DiscountPercentage)
}

func (d ProductDraft) MarshalJSON() ([]byte, error) {
	type draft ProductDraft
	return json.Marshal(struct {
		draft
		OfferPrice string `json:"offerPrice"`
	}{
		draft:      draft(d),
		OfferPrice: d.OfferPrice().StringFixed(2),
	})
}

// Clone returns a deep copy so a submission can work on a stable snapshot.
func (d ProductDraft) Clone() ProductDraft {
	c := d
	c.Genre = append([]string{}, d.Genre...)
	c.Size = append([]string{}, d.Size...)
	c.Stock = make(map[string]int, len(d.Stock))
	for k, v := range d.Stock {
		c.Stock[k] = v
	}
	c.Images = append([]Asset{}, d.Images...)
	return c
}

// ImageMove reorders one gallery entry.
type ImageMove struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// DraftUpdate is a partial change to a draft. Nil fields are left alone.
type DraftUpdate struct {
	Title              *string          `json:"title,omitempty" validate:"omitempty,max=255"`
	Style              *string          `json:"style,omitempty" validate:"omitempty,max=255"`
	Code               *string          `json:"code,omitempty" validate:"omitempty,max=100"`
	Color              *string          `json:"color,omitempty" validate:"omitempty,max=100"`
	GSM                *string          `json:"gsm,omitempty" validate:"omitempty,max=50"`
	Highlight          *string          `json:"highlight,omitempty"`
	AboutDesign        *string          `json:"aboutDesign,omitempty"`
	Material           *string          `json:"material,omitempty" validate:"omitempty,max=255"`
	Sleeve             *string          `json:"sleeve,omitempty" validate:"omitempty,max=100"`
	Fit                *string          `json:"fit,omitempty" validate:"omitempty,max=100"`
	NeckType           *string          `json:"neckType,omitempty" validate:"omitempty,max=100"`
	Pattern            *string          `json:"pattern,omitempty" validate:"omitempty,max=100"`
	MRP                *decimal.Decimal `json:"mrp,omitempty"`
	DiscountPercentage *decimal.Decimal `json:"discountPercentage,omitempty"`
	Gender             *string          `json:"gender,omitempty" validate:"omitempty,oneof=Male Female"`
	Category           *string          `json:"category,omitempty" validate:"omitempty,catalog_category"`
	Subcategory        *string          `json:"subcategory,omitempty"`
	Genre              *[]string        `json:"genre,omitempty"`
	ToggleGenre        *string          `json:"toggleGenre,omitempty" validate:"omitempty,catalog_genre"`
	Size               *[]string        `json:"size,omitempty"`
	ToggleSize         *string          `json:"toggleSize,omitempty" validate:"omitempty,catalog_size"`
	Stock              map[string]int   `json:"stock,omitempty"`
	Thumbnail          *Asset           `json:"thumbnail,omitempty"`
	Images             *[]Asset         `json:"images,omitempty"`
	AppendImages       []Asset          `json:"appendImages,omitempty"`
	RemoveImage        *int             `json:"removeImage,omitempty"`
	MoveImage          *ImageMove       `json:"moveImage,omitempty"`
}

// Apply is the single mutation path for a draft. On error the draft is left
// unchanged.
func (d *ProductDraft) Apply(u DraftUpdate) error {
	next := d.Clone()

	setString(&next.Title, u.Title)
	setString(&next.Style, u.Style)
	setString(&next.Code, u.Code)
	setString(&next.Color, u.Color)
	setString(&next.GSM, u.GSM)
	setString(&next.Highlight, u.Highlight)
	setString(&next.AboutDesign, u.AboutDesign)
	setString(&next.Material, u.Material)
	setString(&next.Sleeve, u.Sleeve)
	setString(&next.Fit, u.Fit)
	setString(&next.NeckType, u.NeckType)
	setString(&next.Pattern, u.Pattern)
	setString(&next.Gender, u.Gender)

	if u.MRP != nil {
		next.MRP = *u.MRP
	}
	if u.DiscountPercentage != nil {
		next.DiscountPercentage = *u.DiscountPercentage
	}

	// Choosing a category clears the subcategory; a subcategory sent in the
	// same update is applied afterwards.
	if u.Category != nil && *u.Category != next.Category {
		next.Category = *u.Category
		next.Subcategory = ""
	}
	setString(&next.Subcategory, u.Subcategory)

	if u.Genre != nil {
		next.Genre = uniqueStrings(*u.Genre)
	}
	if u.ToggleGenre != nil {
		next.Genre = toggle(next.Genre, *u.ToggleGenre)
	}
	if u.Size != nil {
		next.Size = uniqueStrings(*u.Size)
	}
	if u.ToggleSize != nil {
		next.Size = toggle(next.Size, *u.ToggleSize)
	}
	for size, qty := range u.Stock {
		next.Stock[size] = qty
	}

	if u.Thumbnail != nil {
		next.Thumbnail = *u.Thumbnail
	}
	if u.Images != nil {
		next.Images = append([]Asset{}, (*u.Images)...)
	}
	next.Images = append(next.Images, u.AppendImages...)

	if u.RemoveImage != nil {
		i := *u.RemoveImage
		if i < 0 || i >= len(next.Images) {
			return ErrImageIndexOutOfRange
		}
		next.Images = append(next.Images[:i], next.Images[i+1:]...)
	}
	if u.MoveImage != nil {
		from, to := u.MoveImage.From, u.MoveImage.To
		if from < 0 || from >= len(next.Images) || to < 0 || to >= len(next.Images) {
			return ErrImageIndexOutOfRange
		}
		img := next.Images[from]
		next.Images = append(next.Images[:from], next.Images[from+1:]...)
		next.Images = append(next.Images[:to], append([]Asset{img}, next.Images[to:]...)...)
	}

	*d = next
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func toggle(list []string, v string) []string {
	for i, item := range list {
		if item == v {
			return append(append([]string{}, list[:i]...), list[i+1:]...)
		}
	}
	return append(list, v)
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
