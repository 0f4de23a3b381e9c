package culture

import "github.com/Veraticus/cultiva/internal/model"

// DefaultColor is used for categories missing from the color table.
const DefaultColor = "#6B7280"

// DefaultIcon is returned when no curated record or keyword matches.
const DefaultIcon = "Leaf"

// categoryColors maps each known category to its display color.
var categoryColors = map[model.Category]string{
	model.CategoryFruits:     "#DC2626",
	model.CategoryVegetables: "#16A34A",
	model.CategoryCereals:    "#CA8A04",
	model.CategoryTubers:     "#92400E",
	model.CategoryLegumes:    "#65A30D",
	model.CategorySpices:     "#EA580C",
	model.CategoryHerbs:      "#059669",
	model.CategoryOilseeds:   "#D97706",
	model.CategoryIndustrial: "#4B5563",
	model.CategoryForage:     "#84CC16",
	model.CategoryFlowers:    "#DB2777",
	model.CategoryTrees:      "#15803D",
	model.CategoryCitrus:     "#F59E0B",
	model.CategoryNuts:       "#A16207",
	model.CategoryMushrooms:  "#78716C",
	model.CategoryMedicinal:  "#7C3AED",
	model.CategoryStimulants: "#7C2D12",
}

// ColorFor returns the color token for a category, or DefaultColor.
func ColorFor(category string) string {
	if color, ok := categoryColors[model.Category(category)]; ok {
		return color
	}
	return DefaultColor
}
