package repository

var ToursTable = Table{
	Name:    "tours",
	Columns: []string{"name", "description", "price", "location", "available_spots", "image_url"},
	Filters: []Filter{
		{Param: "location", Column: "location", Op: OpEqualFold},
		{Param: "minPrice", Column: "price", Op: OpMin},
		{Param: "maxPrice", Column: "price", Op: OpMax},
		{Param: "search", Op: OpSearch},
		{Param: "available", Column: "available_spots", Op: OpPositive},
	},
}

var HotelsTable = Table{
	Name:    "hotels",
	Columns: []string{"name", "city", "description", "rating", "price_per_night", "address", "phone", "image_url"},
	Filters: []Filter{
		{Param: "city", Column: "city", Op: OpEqualFold},
		{Param: "minRating", Column: "rating", Op: OpMin},
		{Param: "maxPrice", Column: "price_per_night", Op: OpMax},
		{Param: "search", Op: OpSearch},
	},
}

var RestaurantsTable = Table{
	Name:    "restaurants",
	Columns: []string{"name", "city", "description", "cuisine", "rating", "average_price", "address", "phone", "image_url"},
	Filters: []Filter{
		{Param: "city", Column: "city", Op: OpEqualFold},
		{Param: "cuisine", Column: "cuisine", Op: OpEqualFold},
		{Param: "minRating", Column: "rating", Op: OpMin},
		{Param: "maxPrice", Column: "average_price", Op: OpMax},
		{Param: "search", Op: OpSearch},
	},
}

var HistoricalPlacesTable = Table{
	Name:    "historical_places",
	Columns: []string{"name", "city", "description", "era", "entry_fee", "rating", "image_url"},
	Filters: []Filter{
		{Param: "city", Column: "city", Op: OpEqualFold},
		{Param: "era", Column: "era", Op: OpEqualFold},
		{Param: "search", Op: OpSearch},
	},
}

var RecreationalPlacesTable = Table{
	Name:    "recreational_places",
	Columns: []string{"name", "city", "description", "category", "entry_fee", "rating", "image_url"},
	Filters: []Filter{
		{Param: "city", Column: "city", Op: OpEqualFold},
		{Param: "category", Column: "category", Op: OpEqualFold},
		{Param: "maxPrice", Column: "entry_fee", Op: OpMax},
		{Param: "search", Op: OpSearch},
	},
}

var TransportTable = Table{
	Name:    "transport_options",
	Columns: []string{"type", "name", "city", "description", "price", "schedule", "contact", "image_url"},
	Filters: []Filter{
		{Param: "city", Column: "city", Op: OpEqualFold},
		{Param: "type", Column: "type", Op: OpEqualFold},
		{Param: "maxPrice", Column: "price", Op: OpMax},
		{Param: "search", Op: OpSearch},
	},
}

var CitiesTable = Table{
	Name:    "cities",
	Columns: []string{"name", "description", "image_url"},
	Filters: []Filter{
		{Param: "search", Op: OpSearch},
	},
}
