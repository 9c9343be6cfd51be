package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/kasuganosora/coffeemon-seed/config"
	dbadapter "github.com/kasuganosora/coffeemon-seed/db"
	"github.com/kasuganosora/coffeemon-seed/model"
	"github.com/kasuganosora/coffeemon-seed/store"
	"github.com/kasuganosora/coffeemon-seed/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(testutil.SetupTestDB(t))
}

func addUser(t *testing.T, st *store.Store, email string) int64 {
	t.Helper()
	u := &model.User{Username: email, Password: "hash", Email: email}
	require.NoError(t, st.DB().Create(u).Error)
	return u.ID
}

func TestAccountExistsAndID(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	ok, err := st.AccountExists(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, ok)

	id := addUser(t, st, "a@x.com")

	ok, err = st.AccountExists(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, ok)

	got, ok, err := st.AccountIDByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, id, got)

	_, ok, err = st.AccountIDByEmail(ctx, "missing@x.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPromoteRole(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	addUser(t, st, "admin@coffeemon.com")

	n, err := st.PromoteRole(ctx, "admin@coffeemon.com", model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// Already promoted: no-op.
	n, err = st.PromoteRole(ctx, "admin@coffeemon.com", model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	// Unknown email: no-op, no error.
	n, err = st.PromoteRole(ctx, "ghost@coffeemon.com", model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestAccountsWithoutPlayer(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	a := addUser(t, st, "a@x.com")
	b := addUser(t, st, "b@x.com")
	c := addUser(t, st, "c@x.com")

	require.NoError(t, st.CreatePlayer(ctx, &model.Player{Coins: 100, Level: 1, UserID: b}))

	users, err := st.AccountsWithoutPlayer(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, a, users[0].ID)
	assert.Equal(t, "a@x.com", users[0].Email)
	assert.Equal(t, c, users[1].ID)

	pid, ok, err := st.PlayerIDByEmail(ctx, "b@x.com")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Positive(t, pid)

	_, ok, err = st.PlayerIDByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAccountsWithoutPlayer_NullOwner(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	// The application declares player.userId without NOT NULL.
	db := st.DB()
	require.NoError(t, db.Exec("DROP TABLE player").Error)
	require.NoError(t, db.Exec(`CREATE TABLE player (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		coins INTEGER NOT NULL DEFAULT 0,
		level INTEGER NOT NULL DEFAULT 1,
		experience INTEGER NOT NULL DEFAULT 0,
		userId INTEGER NULL UNIQUE
	)`).Error)

	a := addUser(t, st, "a@x.com")
	b := addUser(t, st, "b@x.com")
	require.NoError(t, db.Exec("INSERT INTO player (coins, level, experience, userId) VALUES (0, 1, 0, NULL)").Error)
	require.NoError(t, db.Exec("INSERT INTO player (coins, level, experience, userId) VALUES (100, 1, 0, ?)", b).Error)

	users, err := st.AccountsWithoutPlayer(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, a, users[0].ID)
	assert.Equal(t, "a@x.com", users[0].Email)
	assert.Equal(t, "a@x.com", users[0].Username)
}

func TestSpeciesAndLearnset(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	for id := int64(1); id <= 3; id++ {
		require.NoError(t, st.CreateMove(ctx, &model.Move{ID: id, Name: "m" + string(rune('0'+id)), Description: "d", Power: 10, Type: "sweet"}))
	}
	ok, err := st.MoveExists(ctx, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	learnset := []model.CoffeemonLearnsetMove{
		{MoveID: 3, LearnMethod: model.LearnStart},
		{MoveID: 1, LearnMethod: model.LearnLevelUp},
		{MoveID: 2, LearnMethod: model.LearnStart},
	}
	err = st.Transaction(ctx, func(tx *store.Store) error {
		return tx.CreateSpecies(ctx, &model.Coffeemon{ID: 9, Name: "Nino", Type: "sweet", BaseHP: 50, BaseAttack: 10, BaseDefense: 8}, learnset)
	})
	require.NoError(t, err)

	sp, ok, err := st.Species(ctx, 9)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Nino", sp.Name)
	assert.Equal(t, 50, sp.BaseHP)

	rows, err := st.Learnset(ctx, 9)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []int64{3, 1, 2}, []int64{rows[0].MoveID, rows[1].MoveID, rows[2].MoveID}, "insertion order kept")

	_, ok, err = st.Species(ctx, 404)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPlayerCoffeemonAndMoves(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	uid := addUser(t, st, "p@x.com")
	p := &model.Player{Coins: 100, Level: 1, UserID: uid}
	require.NoError(t, st.CreatePlayer(ctx, p))

	has, err := st.HasPlayerCoffeemon(ctx, p.ID, 1)
	require.NoError(t, err)
	assert.False(t, has)

	pc := &model.PlayerCoffeemon{HP: 10, Attack: 5, Defense: 5, Level: 1, IsInParty: true, PlayerID: p.ID, CoffeemonID: 1}
	require.NoError(t, st.CreatePlayerCoffeemon(ctx, pc))
	assert.Positive(t, pc.ID)

	has, err = st.HasPlayerCoffeemon(ctx, p.ID, 1)
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, st.EquipMove(ctx, &model.PlayerCoffeemonMove{PlayerCoffeemonID: pc.ID, MoveID: 7, Slot: 2}))
	require.NoError(t, st.EquipMove(ctx, &model.PlayerCoffeemonMove{PlayerCoffeemonID: pc.ID, MoveID: 5, Slot: 1}))
	assert.Error(t, st.EquipMove(ctx, &model.PlayerCoffeemonMove{PlayerCoffeemonID: pc.ID, MoveID: 9, Slot: 5}))
	assert.Error(t, st.EquipMove(ctx, &model.PlayerCoffeemonMove{PlayerCoffeemonID: pc.ID, MoveID: 9, Slot: 0}))

	moves, err := st.EquippedMoves(ctx, pc.ID)
	require.NoError(t, err)
	require.Len(t, moves, 2)
	assert.Equal(t, 1, moves[0].Slot)
	assert.Equal(t, int64(5), moves[0].MoveID)
}

func TestProductsAndOrders(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	uid := addUser(t, st, "o@x.com")

	prod := &model.Product{Name: "Mocha", Description: "d", Price: decimal.RequireFromString("15.00"), Image: "img"}
	require.NoError(t, st.CreateProduct(ctx, prod))

	id, ok, err := st.ProductIDByName(ctx, "Mocha")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, prod.ID, id)

	ord := &model.Order{TotalAmount: decimal.RequireFromString("30.00"), TotalQuantity: 2, Status: model.OrderStatusInCart, UserID: uid}
	require.NoError(t, st.CreateOrder(ctx, ord))
	require.NoError(t, st.CreateOrderItem(ctx, &model.OrderItem{Quantity: 2, UnitPrice: prod.Price, Price: prod.Price,
		Total: decimal.RequireFromString("30.00"), OrderID: ord.ID, ProductID: prod.ID}))

	orders, err := st.OrdersFor(ctx, uid, model.OrderStatusInCart)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.True(t, orders[0].TotalAmount.Equal(decimal.NewFromInt(30)))

	orders, err = st.OrdersFor(ctx, uid, model.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestTransaction_RollbackOnError(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	uid := addUser(t, st, "tx@x.com")

	boom := errors.New("boom")
	err := st.Transaction(ctx, func(tx *store.Store) error {
		require.NoError(t, tx.CreatePlayer(ctx, &model.Player{Coins: 100, Level: 1, UserID: uid}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := st.Count(ctx, model.TablePlayer)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTransaction_RollbackOnPanic(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	uid := addUser(t, st, "panic@x.com")

	assert.Panics(t, func() {
		_ = st.Transaction(ctx, func(tx *store.Store) error {
			_ = tx.CreatePlayer(ctx, &model.Player{Coins: 100, Level: 1, UserID: uid})
			panic("mid-stage failure")
		})
	})

	n, err := st.Count(ctx, model.TablePlayer)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTransaction_Commit(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	uid := addUser(t, st, "commit@x.com")

	var pid int64
	err := st.Transaction(ctx, func(tx *store.Store) error {
		p := &model.Player{Coins: 100, Level: 1, UserID: uid}
		if err := tx.CreatePlayer(ctx, p); err != nil {
			return err
		}
		pid = p.ID
		return nil
	})
	require.NoError(t, err)
	assert.Positive(t, pid)

	n, _ := st.Count(ctx, model.TablePlayer)
	assert.Equal(t, int64(1), n)
}

func TestClearTable(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	addUser(t, st, "a@x.com")
	addUser(t, st, "b@x.com")

	deleted, skipped, err := st.ClearTable(ctx, model.TableUser)
	require.NoError(t, err)
	assert.False(t, skipped)
	assert.Equal(t, int64(2), deleted)

	n, _ := st.Count(ctx, model.TableUser)
	assert.Zero(t, n)

	// Reserved-word table names are quoted.
	_, skipped, err = st.ClearTable(ctx, model.TableOrder)
	require.NoError(t, err)
	assert.False(t, skipped)
}

func TestClearTable_MissingTable(t *testing.T) {
	// A database with no schema at all.
	gdb, err := dbadapter.Open(config.DatabaseConfig{
		Mode:         dbadapter.ModeSQLite,
		SQLitePath:   filepath.Join(t.TempDir(), "empty.sqlite"),
		SQLiteCreate: true,
	})
	require.NoError(t, err)
	st := store.New(gdb)
	t.Cleanup(func() { _ = st.Close() })

	deleted, skipped, err := st.ClearTable(context.Background(), model.TableShoppingCartItem)
	require.NoError(t, err)
	assert.True(t, skipped)
	assert.Zero(t, deleted)

	n, err := st.Count(context.Background(), model.TableUser)
	require.NoError(t, err)
	assert.Zero(t, n)
}
