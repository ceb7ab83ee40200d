package models

// Category is the closed set of transaction categories. The categorization
// model is instructed to answer with one of these; anything else is coerced
// to CategoryOther.
type Category string

const (
	CategoryGroceries     Category = "GROCERIES"
	CategoryRestaurants   Category = "RESTAURANTS"
	CategoryTransport     Category = "TRANSPORT"
	CategoryShopping      Category = "SHOPPING"
	CategoryUtilities     Category = "UTILITIES"
	CategoryEntertainment Category = "ENTERTAINMENT"
	CategoryHealth        Category = "HEALTH"
	CategorySalary        Category = "SALARY"
	CategoryTransfers     Category = "TRANSFERS"
	CategoryRent          Category = "RENT"
	CategoryTravel        Category = "TRAVEL"
	CategoryOther         Category = "OTHER"
)

// Categories lists every member of the closed set, in a stable order.
func Categories() []Category {
	return []Category{
		CategoryGroceries,
		CategoryRestaurants,
		CategoryTransport,
		CategoryShopping,
		CategoryUtilities,
		CategoryEntertainment,
		CategoryHealth,
		CategorySalary,
		CategoryTransfers,
		CategoryRent,
		CategoryTravel,
		CategoryOther,
	}
}

var categorySet = func() map[Category]struct{} {
	s := make(map[Category]struct{})
	for _, c := range Categories() {
		s[c] = struct{}{}
	}
	return s
}()

// ParseCategory maps a raw string onto the closed category set. The second
// return value reports whether the input was a recognized member; callers
// that do not care simply use the returned category, which falls back to
// CategoryOther.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	if _, ok := categorySet[c]; ok {
		return c, true
	}
	return CategoryOther, false
}
