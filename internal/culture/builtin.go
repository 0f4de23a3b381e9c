package culture

import "github.com/Veraticus/cultiva/internal/model"

// Mapping is a built-in keyword rule. Keyword is already normalized.
type Mapping struct {
	Keyword  string
	Icon     string
	Category model.Category
}

// builtinMappings is searched in order and the first match wins, so longer
// keywords must come before the shorter keywords they contain. A name equal to
// a keyword always resolves to that keyword's row; see builtinIndex.
var builtinMappings = []Mapping{
	// Tubers
	{Keyword: "pomme de terre", Icon: "Sprout", Category: model.CategoryTubers},
	{Keyword: "patate", Icon: "Sprout", Category: model.CategoryTubers},
	{Keyword: "igname", Icon: "Sprout", Category: model.CategoryTubers},
	{Keyword: "manioc", Icon: "Sprout", Category: model.CategoryTubers},
	{Keyword: "taro", Icon: "Sprout", Category: model.CategoryTubers},

	// Cereals
	{Keyword: "mais", Icon: "Wheat", Category: model.CategoryCereals},
	{Keyword: "riz", Icon: "Wheat", Category: model.CategoryCereals},
	{Keyword: "sorgho", Icon: "Wheat", Category: model.CategoryCereals},
	{Keyword: "fonio", Icon: "Wheat", Category: model.CategoryCereals},
	{Keyword: "mil", Icon: "Wheat", Category: model.CategoryCereals},
	{Keyword: "ble", Icon: "Wheat", Category: model.CategoryCereals},

	// Legumes
	{Keyword: "haricot", Icon: "Bean", Category: model.CategoryLegumes},
	{Keyword: "niebe", Icon: "Bean", Category: model.CategoryLegumes},
	{Keyword: "soja", Icon: "Bean", Category: model.CategoryLegumes},
	{Keyword: "lentille", Icon: "Bean", Category: model.CategoryLegumes},
	{Keyword: "pois", Icon: "Bean", Category: model.CategoryLegumes},

	// Oilseeds
	{Keyword: "arachide", Icon: "Nut", Category: model.CategoryOilseeds},
	{Keyword: "sesame", Icon: "Nut", Category: model.CategoryOilseeds},
	{Keyword: "tournesol", Icon: "Flower", Category: model.CategoryOilseeds},
	{Keyword: "palmier", Icon: "Palmtree", Category: model.CategoryOilseeds},
	{Keyword: "karite", Icon: "TreeDeciduous", Category: model.CategoryOilseeds},

	// Vegetables
	{Keyword: "tomate", Icon: "Cherry", Category: model.CategoryVegetables},
	{Keyword: "oignon", Icon: "Salad", Category: model.CategoryVegetables},
	{Keyword: "carotte", Icon: "Carrot", Category: model.CategoryVegetables},
	{Keyword: "chou", Icon: "Salad", Category: model.CategoryVegetables},
	{Keyword: "salade", Icon: "Salad", Category: model.CategoryVegetables},
	{Keyword: "laitue", Icon: "Salad", Category: model.CategoryVegetables},
	{Keyword: "aubergine", Icon: "Salad", Category: model.CategoryVegetables},
	{Keyword: "gombo", Icon: "Salad", Category: model.CategoryVegetables},
	{Keyword: "poivron", Icon: "Salad", Category: model.CategoryVegetables},
	{Keyword: "concombre", Icon: "Salad", Category: model.CategoryVegetables},

	// Spices and herbs
	{Keyword: "piment", Icon: "Flame", Category: model.CategorySpices},
	{Keyword: "gingembre", Icon: "Flame", Category: model.CategorySpices},
	{Keyword: "poivre", Icon: "Flame", Category: model.CategorySpices},
	{Keyword: "basilic", Icon: "Leaf", Category: model.CategoryHerbs},
	{Keyword: "menthe", Icon: "Leaf", Category: model.CategoryHerbs},
	{Keyword: "citronnelle", Icon: "Leaf", Category: model.CategoryHerbs},

	// Citrus
	{Keyword: "orange", Icon: "Citrus", Category: model.CategoryCitrus},
	{Keyword: "mandarine", Icon: "Citrus", Category: model.CategoryCitrus},
	{Keyword: "citron", Icon: "Citrus", Category: model.CategoryCitrus},

	// Fruits
	{Keyword: "mangue", Icon: "Apple", Category: model.CategoryFruits},
	{Keyword: "ananas", Icon: "Apple", Category: model.CategoryFruits},
	{Keyword: "banane", Icon: "Banana", Category: model.CategoryFruits},
	{Keyword: "papaye", Icon: "Apple", Category: model.CategoryFruits},
	{Keyword: "pasteque", Icon: "Apple", Category: model.CategoryFruits},
	{Keyword: "avocat", Icon: "Apple", Category: model.CategoryFruits},
	{Keyword: "raisin", Icon: "Grape", Category: model.CategoryFruits},
	{Keyword: "pomme", Icon: "Apple", Category: model.CategoryFruits},

	// Nuts
	{Keyword: "anacarde", Icon: "Nut", Category: model.CategoryNuts},
	{Keyword: "cajou", Icon: "Nut", Category: model.CategoryNuts},

	// Stimulants
	{Keyword: "cafe", Icon: "Coffee", Category: model.CategoryStimulants},
	{Keyword: "cacao", Icon: "Coffee", Category: model.CategoryStimulants},
	{Keyword: "kola", Icon: "Coffee", Category: model.CategoryStimulants},

	// Industrial crops
	{Keyword: "coton", Icon: "Flower2", Category: model.CategoryIndustrial},
	{Keyword: "hevea", Icon: "TreeDeciduous", Category: model.CategoryIndustrial},
	{Keyword: "canne", Icon: "Wheat", Category: model.CategoryIndustrial},

	// Forage
	{Keyword: "luzerne", Icon: "Wheat", Category: model.CategoryForage},
}

// builtinIndex maps each keyword to its row for exact lookups.
var builtinIndex = func() map[string]int {
	index := make(map[string]int, len(builtinMappings))
	for i, m := range builtinMappings {
		index[m.Keyword] = i
	}
	return index
}()

// BuiltinMappings returns a copy of the built-in keyword table, in search order.
func BuiltinMappings() []Mapping {
	out := make([]Mapping, len(builtinMappings))
	copy(out, builtinMappings)
	return out
}
