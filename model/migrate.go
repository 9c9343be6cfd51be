package model

import "gorm.io/gorm"

// allModels lists every model of the application schema, parents first.
var allModels = []interface{}{
	&User{},
	&Player{},
	&Product{},
	&Move{},
	&Coffeemon{},
	&CoffeemonLearnsetMove{},
	&PlayerCoffeemon{},
	&PlayerCoffeemonMove{},
	&Order{},
	&OrderItem{},
	&ShoppingCart{},
	&ShoppingCartItem{},
}

// AutoMigrate creates or updates all tables in the given database.
// The application owns its schema in production; this is used for tests and
// for bootstrapping a throwaway SQLite file.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(allModels...)
}
