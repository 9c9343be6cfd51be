package model

import "gorm.io/datatypes"

// Move is a capability a Coffeemon can learn.
type Move struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"uniqueIndex;size:64;not null" json:"name"`
	Description string         `gorm:"size:255;not null" json:"description"`
	Power       int            `gorm:"column:power;not null" json:"power"`
	Type        string         `gorm:"column:type;size:16;not null" json:"type"`
	Effects     datatypes.JSON `gorm:"column:effects" json:"effects,omitempty"`
}

func (Move) TableName() string { return TableMove }

// Coffeemon is a species template.
type Coffeemon struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"uniqueIndex;size:64;not null" json:"name"`
	Type        string `gorm:"column:type;size:16;not null" json:"type"`
	BaseHP      int    `gorm:"column:baseHp;not null" json:"base_hp"`
	BaseAttack  int    `gorm:"column:baseAttack;not null" json:"base_attack"`
	BaseDefense int    `gorm:"column:baseDefense;not null" json:"base_defense"`
}

func (Coffeemon) TableName() string { return TableCoffeemon }

// LearnMethod tags how a species acquires a move.
type LearnMethod string

const (
	LearnLevelUp   LearnMethod = "level_up"
	LearnMachine   LearnMethod = "machine"
	LearnTutor     LearnMethod = "tutor"
	LearnEgg       LearnMethod = "egg"
	LearnEvolution LearnMethod = "evolution"
	LearnStart     LearnMethod = "start"
)

// CoffeemonLearnsetMove links a species to a move it can learn.
type CoffeemonLearnsetMove struct {
	ID           int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	CoffeemonID  int64       `gorm:"column:coffeemonId;index;not null" json:"coffeemon_id"`
	MoveID       int64       `gorm:"column:moveId;not null" json:"move_id"`
	LearnMethod  LearnMethod `gorm:"column:learnMethod;type:varchar(16);not null" json:"learn_method"`
	LevelLearned *int        `gorm:"column:levelLearned" json:"level_learned,omitempty"`
}

func (CoffeemonLearnsetMove) TableName() string { return TableLearnsetMove }
