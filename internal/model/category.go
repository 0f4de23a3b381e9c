package model

// Category is the semantic family of a crop, used to pick a display color.
type Category string

// Known crop categories.
const (
	CategoryFruits     Category = "fruits"
	CategoryVegetables Category = "legumes"
	CategoryCereals    Category = "cereales"
	CategoryTubers     Category = "tubercules"
	CategoryLegumes    Category = "legumineuses"
	CategorySpices     Category = "epices"
	CategoryHerbs      Category = "aromates"
	CategoryOilseeds   Category = "oleagineux"
	CategoryIndustrial Category = "industrielles"
	CategoryForage     Category = "fourrages"
	CategoryFlowers    Category = "fleurs"
	CategoryTrees      Category = "arbres"
	CategoryCitrus     Category = "agrumes"
	CategoryNuts       Category = "noix"
	CategoryMushrooms  Category = "champignons"
	CategoryMedicinal  Category = "medicinales"
	CategoryStimulants Category = "stimulantes"
)

// Categories lists every known category in display order.
func Categories() []Category {
	return []Category{
		CategoryFruits,
		CategoryVegetables,
		CategoryCereals,
		CategoryTubers,
		CategoryLegumes,
		CategorySpices,
		CategoryHerbs,
		CategoryOilseeds,
		CategoryIndustrial,
		CategoryForage,
		CategoryFlowers,
		CategoryTrees,
		CategoryCitrus,
		CategoryNuts,
		CategoryMushrooms,
		CategoryMedicinal,
		CategoryStimulants,
	}
}

// IsKnown reports whether c is one of the known categories.
func (c Category) IsKnown() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}
