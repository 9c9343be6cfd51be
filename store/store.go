// Package store is the seeder's read/write adapter over the application
// database. Every method takes a context and runs a parameterized statement;
// writes fill the generated id back into the passed model.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/kasuganosora/coffeemon-seed/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store wraps a *gorm.DB. A Store handed to a Transaction callback is bound
// to that transaction.
type Store struct {
	db *gorm.DB
}

// New creates a Store on top of db.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle.
func (s *Store) DB() *gorm.DB { return s.db }

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction runs fn inside a database transaction. The transaction is
// committed when fn returns nil and rolled back when fn returns an error or
// panics; a panic is re-raised after the rollback.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) with(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// found maps gorm.ErrRecordNotFound to (false, nil).
func found(err error) (bool, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ---- Accounts ----

// AccountExists reports whether an account with the given email exists.
func (s *Store) AccountExists(ctx context.Context, email string) (bool, error) {
	var n int64
	err := s.with(ctx).Model(&model.User{}).Where("email = ?", email).Count(&n).Error
	return n > 0, err
}

// AccountIDByEmail returns the id of the account with the given email.
func (s *Store) AccountIDByEmail(ctx context.Context, email string) (int64, bool, error) {
	var u model.User
	err := s.with(ctx).Select("id").Where("email = ?", email).Take(&u).Error
	ok, err := found(err)
	return u.ID, ok, err
}

// PromoteRole sets role on the account matching email unless it already has
// it, and returns the number of rows changed.
func (s *Store) PromoteRole(ctx context.Context, email string, role model.Role) (int64, error) {
	res := s.with(ctx).Model(&model.User{}).
		Where("email = ? AND role <> ?", email, role).
		Update("role", role)
	return res.RowsAffected, res.Error
}

// AccountsWithoutPlayer returns every account that has no player row,
// ordered by id.
func (s *Store) AccountsWithoutPlayer(ctx context.Context) ([]model.User, error) {
	userCol := func(name string) clause.Column { return clause.Column{Table: model.TableUser, Name: name} }
	playerCol := func(name string) clause.Column { return clause.Column{Table: model.TablePlayer, Name: name} }

	// Left anti-join: player.userId may be NULL on application-created rows.
	var users []model.User
	err := s.with(ctx).Model(&model.User{}).
		Select("?, ?, ?", userCol("id"), userCol("email"), userCol("username")).
		Joins("LEFT JOIN ? ON ? = ?", clause.Table{Name: model.TablePlayer}, playerCol("userId"), userCol("id")).
		Where("? IS NULL", playerCol("id")).
		Order(clause.OrderByColumn{Column: userCol("id")}).
		Find(&users).Error
	return users, err
}

// ---- Players ----

// CreatePlayer inserts p and fills p.ID.
func (s *Store) CreatePlayer(ctx context.Context, p *model.Player) error {
	return s.with(ctx).Create(p).Error
}

// PlayerIDByUserID returns the player id owned by the given account.
func (s *Store) PlayerIDByUserID(ctx context.Context, userID int64) (int64, bool, error) {
	var p model.Player
	err := s.with(ctx).Select("id").Where(&model.Player{UserID: userID}).Take(&p).Error
	ok, err := found(err)
	return p.ID, ok, err
}

// PlayerIDByEmail resolves an account email to its player id.
func (s *Store) PlayerIDByEmail(ctx context.Context, email string) (int64, bool, error) {
	userID, ok, err := s.AccountIDByEmail(ctx, email)
	if err != nil || !ok {
		return 0, false, err
	}
	return s.PlayerIDByUserID(ctx, userID)
}

// HasPlayerCoffeemon reports whether the player already owns an instance of
// the species.
func (s *Store) HasPlayerCoffeemon(ctx context.Context, playerID, coffeemonID int64) (bool, error) {
	var n int64
	err := s.with(ctx).Model(&model.PlayerCoffeemon{}).
		Where(&model.PlayerCoffeemon{PlayerID: playerID, CoffeemonID: coffeemonID}).
		Count(&n).Error
	return n > 0, err
}

// CreatePlayerCoffeemon inserts pc and fills pc.ID.
func (s *Store) CreatePlayerCoffeemon(ctx context.Context, pc *model.PlayerCoffeemon) error {
	return s.with(ctx).Create(pc).Error
}

// EquipMove inserts one equipped move row.
func (s *Store) EquipMove(ctx context.Context, m *model.PlayerCoffeemonMove) error {
	if m.Slot < 1 || m.Slot > model.MaxMoveSlots {
		return fmt.Errorf("store: slot %d out of range 1..%d", m.Slot, model.MaxMoveSlots)
	}
	return s.with(ctx).Create(m).Error
}

// EquippedMoves returns the equipped moves of an instance ordered by slot.
func (s *Store) EquippedMoves(ctx context.Context, playerCoffeemonID int64) ([]model.PlayerCoffeemonMove, error) {
	var moves []model.PlayerCoffeemonMove
	err := s.with(ctx).
		Where(&model.PlayerCoffeemonMove{PlayerCoffeemonID: playerCoffeemonID}).
		Order("slot").
		Find(&moves).Error
	return moves, err
}

// ---- Catalog ----

// Species returns the species with the given id.
func (s *Store) Species(ctx context.Context, id int64) (*model.Coffeemon, bool, error) {
	var c model.Coffeemon
	err := s.with(ctx).Where("id = ?", id).Take(&c).Error
	ok, err := found(err)
	if !ok {
		return nil, false, err
	}
	return &c, true, nil
}

// CreateSpecies inserts c (keeping an explicit id) followed by its learnset
// rows. Call it inside Transaction so a failing learnset row leaves no
// half-created species.
func (s *Store) CreateSpecies(ctx context.Context, c *model.Coffeemon, learnset []model.CoffeemonLearnsetMove) error {
	if err := s.with(ctx).Create(c).Error; err != nil {
		return err
	}
	for i := range learnset {
		learnset[i].CoffeemonID = c.ID
		if err := s.with(ctx).Create(&learnset[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Learnset returns every learnset row of a species in insertion order.
func (s *Store) Learnset(ctx context.Context, coffeemonID int64) ([]model.CoffeemonLearnsetMove, error) {
	var rows []model.CoffeemonLearnsetMove
	err := s.with(ctx).
		Where(&model.CoffeemonLearnsetMove{CoffeemonID: coffeemonID}).
		Order("id").
		Find(&rows).Error
	return rows, err
}

// MoveExists reports whether a move with the given id exists.
func (s *Store) MoveExists(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := s.with(ctx).Model(&model.Move{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// CreateMove inserts m, keeping an explicit id when set.
func (s *Store) CreateMove(ctx context.Context, m *model.Move) error {
	return s.with(ctx).Create(m).Error
}

// ProductIDByName returns the id of the first product with the given name.
func (s *Store) ProductIDByName(ctx context.Context, name string) (int64, bool, error) {
	var p model.Product
	err := s.with(ctx).Select("id").Where("name = ?", name).Order("id").Take(&p).Error
	ok, err := found(err)
	return p.ID, ok, err
}

// CreateProduct inserts p and fills p.ID.
func (s *Store) CreateProduct(ctx context.Context, p *model.Product) error {
	return s.with(ctx).Create(p).Error
}

// ---- Orders ----

// OrdersFor returns the orders of an account with the given status.
func (s *Store) OrdersFor(ctx context.Context, userID int64, status string) ([]model.Order, error) {
	var orders []model.Order
	err := s.with(ctx).
		Where(&model.Order{UserID: userID, Status: status}).
		Order("id").
		Find(&orders).Error
	return orders, err
}

// CreateOrder inserts o and fills o.ID.
func (s *Store) CreateOrder(ctx context.Context, o *model.Order) error {
	return s.with(ctx).Create(o).Error
}

// CreateOrderItem inserts it and fills it.ID.
func (s *Store) CreateOrderItem(ctx context.Context, it *model.OrderItem) error {
	return s.with(ctx).Create(it).Error
}

// ---- Maintenance ----

// HasTable reports whether the table exists.
func (s *Store) HasTable(ctx context.Context, table string) bool {
	return s.with(ctx).Migrator().HasTable(table)
}

// ClearTable deletes every row of table. A table that does not exist is
// reported as skipped instead of failing.
func (s *Store) ClearTable(ctx context.Context, table string) (deleted int64, skipped bool, err error) {
	if !s.HasTable(ctx, table) {
		return 0, true, nil
	}
	res := s.with(ctx).Exec("DELETE FROM ?", clause.Table{Name: table})
	return res.RowsAffected, false, res.Error
}

// Count returns the number of rows in table, or 0 if it does not exist.
func (s *Store) Count(ctx context.Context, table string) (int64, error) {
	if !s.HasTable(ctx, table) {
		return 0, nil
	}
	var n int64
	err := s.with(ctx).Table(table).Count(&n).Error
	return n, err
}
