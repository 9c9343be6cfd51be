package seed

import (
	"github.com/kasuganosora/coffeemon-seed/model"
	"github.com/shopspring/decimal"
)

const defaultPassword = "Jubarte@1234"

// Demo account emails.
const (
	AdminEmail  = "admin@coffeemon.com"
	DarkEmail   = "Dark@email.com"
	SilverEmail = "Silver@email.com"
)

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// DefaultDataset returns the demo data: three accounts, the coffee shop
// catalog, six Coffeemon species with their moves, two players with three
// species each and three sample orders.
func DefaultDataset() Dataset {
	return Dataset{
		Accounts: []AccountSeed{
			{Username: "admin", Email: AdminEmail, Password: defaultPassword},
			{Username: "Dark", Email: DarkEmail, Password: defaultPassword},
			{Username: "Silver", Email: SilverEmail, Password: defaultPassword},
		},
		AdminEmail: AdminEmail,
		Products:   defaultProducts(),
		Moves:      defaultMoves(),
		Species:    defaultSpecies(),
		Assignments: []Assignment{
			{Email: DarkEmail, SpeciesIDs: []int64{1, 2, 3}},
			{Email: SilverEmail, SpeciesIDs: []int64{4, 5, 6}},
		},
		Orders: []OrderSeed{
			{
				Email: DarkEmail, Status: model.OrderStatusCompleted, DaysAgo: 2,
				TotalAmount: money("25.50"), TotalQuantity: 2,
				Items: []OrderItemSeed{
					{Product: "Cappuccino Classico", Quantity: 1, UnitPrice: money("12.50")},
					{Product: "Cafe Latte", Quantity: 1, UnitPrice: money("13.00")},
				},
			},
			{
				Email: DarkEmail, Status: model.OrderStatusInCart, DaysAgo: 1,
				TotalAmount: money("30.00"), TotalQuantity: 2,
				Items: []OrderItemSeed{
					{Product: "Mocha", Quantity: 2, UnitPrice: money("15.00")},
				},
			},
			{
				Email: SilverEmail, Status: model.OrderStatusCompleted, DaysAgo: 3,
				TotalAmount: money("43.00"), TotalQuantity: 3,
				Items: []OrderItemSeed{
					{Product: "Flat White", Quantity: 1, UnitPrice: money("14.00")},
					{Product: "Cafe com Caramelo", Quantity: 2, UnitPrice: money("14.50")},
				},
			},
		},
	}
}

func defaultProducts() []ProductSeed {
	const img = "https://images.unsplash.com/"
	return []ProductSeed{
		{"Cappuccino Classico", "Cafe espresso com leite vaporizado e espuma cremosa. Perfeito para comecar o dia!", money("12.50"), img + "photo-1572442388796-11668a67e53d?w=400"},
		{"Cafe Expresso", "Cafe puro e intenso, preparado sob pressao. Para os verdadeiros amantes de cafe.", money("8.00"), img + "photo-1510591509098-f4fdc6d0ff04?w=400"},
		{"Cafe Latte", "Espresso suave com muito leite vaporizado. Cremoso e delicioso.", money("13.00"), img + "photo-1461023058943-07fcbe16d735?w=400"},
		{"Mocha", "Espresso com chocolate e leite vaporizado. Uma combinacao irresistivel!", money("15.00"), img + "photo-1578314675249-a6910f80cc4e?w=400"},
		{"Macchiato", "Espresso manchado com espuma de leite. Forte e marcante.", money("10.00"), img + "photo-1557006021-b85faa2bc5e2?w=400"},
		{"Cafe Americano", "Espresso diluido em agua quente. Suave e aromatico.", money("9.00"), img + "photo-1514432324607-a09d9b4aefdd?w=400"},
		{"Flat White", "Espresso duplo com microespuma aveludada. Textura perfeita.", money("14.00"), img + "photo-1570968915860-54d5c301fa9f?w=400"},
		{"Cafe Gelado", "Cafe frio refrescante com gelo. Ideal para dias quentes.", money("11.00"), img + "photo-1517487881594-2787fef5ebf7?w=400"},
		{"Affogato", "Sorvete de baunilha coberto com espresso quente. Uma sobremesa deliciosa!", money("16.00"), img + "photo-1563729784474-d77dbb933a9e?w=400"},
		{"Cafe com Caramelo", "Latte cremoso com calda de caramelo. Doce e saboroso.", money("14.50"), img + "photo-1534778101976-62847782c213?w=400"},
	}
}

func defaultMoves() []MoveSeed {
	return []MoveSeed{
		{ID: 1, Name: "Bitter Jab", Type: "roasted", Power: 40, Description: "A quick strike with a bitter aftertaste."},
		{ID: 2, Name: "Crema Shield", Type: "roasted", Power: 0, Description: "Raises a foamy barrier.",
			Effects: `[{"type":"defense_up","target":"self","chance":1,"value":0.2}]`},
		{ID: 3, Name: "Petal Dance", Type: "floral", Power: 55, Description: "Whirls in a storm of jasmine petals."},
		{ID: 4, Name: "Jasmine Mist", Type: "floral", Power: 0, Description: "A calming mist that can put the target to sleep.",
			Effects: `[{"type":"sleep","target":"enemy","chance":0.2}]`},
		{ID: 5, Name: "Citrus Splash", Type: "sour", Power: 45, Description: "Sprays sharp lemon juice."},
		{ID: 6, Name: "Acid Zest", Type: "sour", Power: 60, Description: "A corrosive zest that may lower defense.",
			Effects: `[{"type":"defense_down","target":"enemy","chance":0.3,"value":0.1}]`},
		{ID: 7, Name: "Syrup Trap", Type: "sweet", Power: 35, Description: "Sticky syrup that may slow the target.",
			Effects: `[{"type":"speed_down","target":"enemy","chance":0.5}]`},
		{ID: 8, Name: "Caramel Crush", Type: "sweet", Power: 65, Description: "Slams with a hardened caramel shell."},
		{ID: 9, Name: "Nut Cracker", Type: "nutty", Power: 50, Description: "A crunching bite."},
		{ID: 10, Name: "Cocoa Guard", Type: "nutty", Power: 0, Description: "Hardens into a cocoa shell.",
			Effects: `[{"type":"defense_up","target":"self","chance":1,"value":0.3}]`},
		{ID: 11, Name: "Cinnamon Burn", Type: "spicy", Power: 55, Description: "A fiery dash that may burn.",
			Effects: `[{"type":"burn","target":"enemy","chance":0.2}]`},
		{ID: 12, Name: "Espresso Shot", Type: "roasted", Power: 80, Description: "A concentrated blast of espresso."},
	}
}

func start(moveID int64) LearnsetSeed {
	return LearnsetSeed{MoveID: moveID, Method: model.LearnStart}
}

func levelUp(moveID int64, lvl int) LearnsetSeed {
	return LearnsetSeed{MoveID: moveID, Method: model.LearnLevelUp, Level: lvl}
}

func defaultSpecies() []SpeciesSeed {
	return []SpeciesSeed{
		{ID: 1, Name: "Jasminelle", Type: "floral", BaseHP: 85, BaseAttack: 18, BaseDefense: 14,
			Learnset: []LearnsetSeed{start(3), start(4), start(1), levelUp(8, 10)}},
		{ID: 2, Name: "Limonetto", Type: "sour", BaseHP: 78, BaseAttack: 22, BaseDefense: 12,
			Learnset: []LearnsetSeed{start(5), start(6), levelUp(11, 8), start(1)}},
		{ID: 3, Name: "Maprion", Type: "sweet", BaseHP: 92, BaseAttack: 17, BaseDefense: 18,
			Learnset: []LearnsetSeed{start(7), start(8), start(10), levelUp(9, 12)}},
		{ID: 4, Name: "Cocoly", Type: "nutty", BaseHP: 95, BaseAttack: 16, BaseDefense: 20,
			Learnset: []LearnsetSeed{start(9), start(10), start(2), levelUp(12, 15)}},
		// Espressaur knows five start moves; only the first four get a slot.
		{ID: 5, Name: "Espressaur", Type: "roasted", BaseHP: 88, BaseAttack: 24, BaseDefense: 15,
			Learnset: []LearnsetSeed{start(12), start(1), start(2), start(9), start(11)}},
		{ID: 6, Name: "Cinnara", Type: "spicy", BaseHP: 80, BaseAttack: 23, BaseDefense: 13,
			Learnset: []LearnsetSeed{start(11), start(5), start(7), levelUp(6, 9)}},
	}
}
