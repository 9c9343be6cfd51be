package model

// Player is the game profile of an account (at most one per account).
type Player struct {
	ID         int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Coins      int64 `gorm:"column:coins;not null" json:"coins"`
	Level      int   `gorm:"column:level;not null" json:"level"`
	Experience int64 `gorm:"column:experience;not null" json:"experience"`
	UserID     int64 `gorm:"column:userId;uniqueIndex;not null" json:"user_id"`
}

func (Player) TableName() string { return TablePlayer }

// PlayerCoffeemon is a player-owned instance of a Coffeemon species.
type PlayerCoffeemon struct {
	ID          int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	HP          int   `gorm:"column:hp;not null" json:"hp"`
	Attack      int   `gorm:"column:attack;not null" json:"attack"`
	Defense     int   `gorm:"column:defense;not null" json:"defense"`
	Level       int   `gorm:"column:level;not null" json:"level"`
	Experience  int64 `gorm:"column:experience;not null" json:"experience"`
	IsInParty   bool  `gorm:"column:isInParty;not null" json:"is_in_party"`
	PlayerID    int64 `gorm:"column:playerId;index:idx_player_coffeemon;not null" json:"player_id"`
	CoffeemonID int64 `gorm:"column:coffeemonId;index:idx_player_coffeemon;not null" json:"coffeemon_id"`
}

func (PlayerCoffeemon) TableName() string { return TablePlayerCoffeemon }

// MaxMoveSlots is the number of move slots a PlayerCoffeemon has.
const MaxMoveSlots = 4

// PlayerCoffeemonMove is a move equipped in one slot of a PlayerCoffeemon.
type PlayerCoffeemonMove struct {
	ID                int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	PlayerCoffeemonID int64 `gorm:"column:playerCoffeemonId;index;not null" json:"player_coffeemon_id"`
	MoveID            int64 `gorm:"column:moveId;not null" json:"move_id"`
	Slot              int   `gorm:"column:slot;not null" json:"slot"` // 1..MaxMoveSlots
}

func (PlayerCoffeemonMove) TableName() string { return TablePlayerCoffeemonMove }
