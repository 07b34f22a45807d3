// internal/domain/catalog/fixtures.go
package catalog

var categories = []Category{
	{ID: "vegetables", Name: "Vegetables", Icon: "🥬"},
	{ID: "fruits", Name: "Fruits", Icon: "🍎"},
	{ID: "bakery", Name: "Bakery", Icon: "🥖"},
	{ID: "dairy", Name: "Dairy", Icon: "🥛"},
	{ID: "meat", Name: "Meat", Icon: "🥩"},
	{ID: "seafood", Name: "Seafood", Icon: "🐟"},
	{ID: "groceries", Name: "Groceries", Icon: "🛒"},
}

var subCategories = []SubCategory{
	{ID: "leafy-greens", Name: "Leafy Greens", CategoryID: "vegetables"},
	{ID: "root-vegetables", Name: "Root Vegetables", CategoryID: "vegetables"},
	{ID: "other-vegetables", Name: "Other Vegetables", CategoryID: "vegetables"},
	{ID: "citrus", Name: "Citrus", CategoryID: "fruits"},
	{ID: "berries", Name: "Berries", CategoryID: "fruits"},
	{ID: "tropical", Name: "Tropical", CategoryID: "fruits"},
	{ID: "bread", Name: "Bread", CategoryID: "bakery"},
	{ID: "pastries", Name: "Pastries", CategoryID: "bakery"},
	{ID: "milk", Name: "Milk", CategoryID: "dairy"},
	{ID: "yogurt", Name: "Yogurt", CategoryID: "dairy"},
	{ID: "cheese", Name: "Cheese", CategoryID: "dairy"},
	{ID: "poultry", Name: "Poultry", CategoryID: "meat"},
	{ID: "fish", Name: "Fish", CategoryID: "seafood"},
	{ID: "staples", Name: "Staples", CategoryID: "groceries"},
}

var products = []Product{
	{
		ID:          "product-1",
		Name:        "Fresh Tomatoes",
		Price:       3.99,
		MRP:         4.99,
		Unit:        "500 g",
		Category:    "vegetables",
		Subcategory: "other-vegetables",
		Description: "Vine-ripened tomatoes, picked daily.",
		InStock:     true,
		Discount:    20,
	},
	{
		ID:          "product-2",
		Name:        "Organic Lettuce",
		Price:       4.49,
		MRP:         4.49,
		Unit:        "1 head",
		Category:    "vegetables",
		Subcategory: "leafy-greens",
		Description: "Crisp organic romaine lettuce.",
		InStock:     true,
	},
	{
		ID:          "product-3",
		Name:        "Baby Spinach",
		Price:       2.99,
		MRP:         3.49,
		Unit:        "250 g",
		Category:    "vegetables",
		Subcategory: "leafy-greens",
		Description: "Tender baby spinach leaves, washed and ready.",
		InStock:     true,
		Discount:    10,
	},
	{
		ID:          "product-4",
		Name:        "Carrots",
		Price:       1.99,
		MRP:         1.99,
		Unit:        "1 kg",
		Category:    "vegetables",
		Subcategory: "root-vegetables",
		Description: "Sweet crunchy carrots.",
		InStock:     true,
	},
	{
		ID:          "product-5",
		Name:        "Bananas",
		Price:       2.49,
		MRP:         2.49,
		Unit:        "1 dozen",
		Category:    "fruits",
		Subcategory: "tropical",
		Description: "Naturally ripened bananas.",
		InStock:     true,
	},
	{
		ID:          "product-6",
		Name:        "Strawberries",
		Price:       5.99,
		MRP:         6.99,
		Unit:        "400 g",
		Category:    "fruits",
		Subcategory: "berries",
		Description: "Juicy seasonal strawberries.",
		InStock:     true,
		Discount:    15,
	},
	{
		ID:          "product-7",
		Name:        "Oranges",
		Price:       3.49,
		MRP:         3.49,
		Unit:        "1 kg",
		Category:    "fruits",
		Subcategory: "citrus",
		Description: "Sweet navel oranges.",
		InStock:     true,
	},
	{
		ID:          "product-8",
		Name:        "Whole Wheat Bread",
		Price:       2.79,
		MRP:         2.79,
		Unit:        "400 g loaf",
		Category:    "bakery",
		Subcategory: "bread",
		Description: "Freshly baked whole wheat loaf.",
		InStock:     true,
	},
	{
		ID:          "product-9",
		Name:        "Butter Croissants",
		Price:       4.99,
		MRP:         5.49,
		Unit:        "pack of 4",
		Category:    "bakery",
		Subcategory: "pastries",
		Description: "Flaky all-butter croissants.",
		InStock:     true,
		Discount:    10,
	},
	{
		ID:          "product-10",
		Name:        "Whole Milk",
		Price:       1.89,
		MRP:         1.89,
		Unit:        "1 L",
		Category:    "dairy",
		Subcategory: "milk",
		Description: "Farm-fresh pasteurized whole milk.",
		InStock:     true,
	},
	{
		ID:          "product-11",
		Name:        "Greek Yogurt",
		Price:       3.29,
		MRP:         3.79,
		Unit:        "500 g",
		Category:    "dairy",
		Subcategory: "yogurt",
		Description: "Thick strained Greek yogurt.",
		InStock:     true,
		Discount:    12,
	},
	{
		ID:          "product-12",
		Name:        "Cheddar Cheese",
		Price:       6.49,
		MRP:         6.49,
		Unit:        "250 g",
		Category:    "dairy",
		Subcategory: "cheese",
		Description: "Aged mature cheddar block.",
		InStock:     true,
	},
	{
		ID:          "product-13",
		Name:        "Chicken Breast",
		Price:       8.99,
		MRP:         9.99,
		Unit:        "500 g",
		Category:    "meat",
		Subcategory: "poultry",
		Description: "Skinless boneless chicken breast.",
		InStock:     true,
		Discount:    10,
	},
	{
		ID:          "product-14",
		Name:        "Atlantic Salmon",
		Price:       12.99,
		MRP:         12.99,
		Unit:        "300 g",
		Category:    "seafood",
		Subcategory: "fish",
		Description: "Fresh Atlantic salmon fillet.",
		InStock:     false,
	},
	{
		ID:          "product-15",
		Name:        "Basmati Rice",
		Price:       9.49,
		MRP:         10.99,
		Unit:        "5 kg",
		Category:    "groceries",
		Subcategory: "staples",
		Description: "Long-grain aged basmati rice.",
		InStock:     true,
		Discount:    13,
	},
}
