// internal/models/catalog.go
package models

// Category is one entry of the fixed product catalog together with the
// subcategories allowed under it.
type Category struct {
	Value         string   `json:"value"`
	Subcategories []string `json:"subcategories"`
}

var Categories = []Category{
	{Value: "TShirts", Subcategories: []string{"Classic Fit", "Drop Shoulder", "Polo Tees"}},
	{Value: "Hoodies", Subcategories: []string{"Classic Fit", "Drop Shoulder"}},
	{Value: "Sweatshirts", Subcategories: []string{"Classic Fit", "Drop Shoulder"}},
}

var Genres = []string{
	"Anime",
	"Movies & Series",
	"Superhero",
	"Abstract",
	"Bangla O Bangali",
	"Drip & Doodle",
	"Sports",
	"Music & Band",
}

var Sizes = []string{"M", "L", "XL"}

var Genders = []Gender{GenderMale, GenderFemale}

// FindCategory looks up a catalog category by value.
func FindCategory(value string) (Category, bool) {
	for _, c := range Categories {
		if c.Value == value {
			return c, true
		}
	}
	return Category{}, false
}

// SubcategoriesOf returns the allowed subcategories of a category, or nil if
// the category is unknown.
func SubcategoriesOf(category string) []string {
	if c, ok := FindCategory(category); ok {
		return c.Subcategories
	}
	return nil
}

func IsValidGender(g string) bool {
	for _, v := range Genders {
		if string(v) == g {
			return true
		}
	}
	return false
}

func IsKnownGenre(g string) bool {
	return contains(Genres, g)
}

func IsKnownSize(s string) bool {
	return contains(Sizes, s)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
