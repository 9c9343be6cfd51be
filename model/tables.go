package model

// Table names of the application schema. They follow the application's own
// naming, so several of them are reserved words that must always be quoted.
const (
	TableUser                = "user"
	TablePlayer              = "player"
	TableProduct             = "product"
	TableMove                = "move"
	TableCoffeemon           = "coffeemon"
	TableLearnsetMove        = "coffeemon_learnset_move"
	TablePlayerCoffeemon     = "player_coffeemons"
	TablePlayerCoffeemonMove = "player_coffeemon_move"
	TableOrder               = "order"
	TableOrderItem           = "order_item"
	TableShoppingCart        = "shopping_cart"
	TableShoppingCartItem    = "shopping_cart_item"
)
