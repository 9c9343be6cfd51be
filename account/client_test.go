package account_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kasuganosora/coffeemon-seed/account"
	"github.com/kasuganosora/coffeemon-seed/config"
	"github.com/kasuganosora/coffeemon-seed/model"
	"github.com/kasuganosora/coffeemon-seed/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newClient(baseURL string) *account.Client {
	return account.NewClient(config.AccountServiceConfig{
		BaseURL:       baseURL,
		Timeout:       2 * time.Second,
		HealthTimeout: time.Second,
	}, zap.NewNop())
}

func TestHealth(t *testing.T) {
	srv := testutil.NewAccountServer(t, testutil.SetupTestDB(t))
	c := newClient(srv.URL)

	require.NoError(t, c.Health(context.Background()))

	srv.SetDown(true)
	err := c.Health(context.Background())
	assert.ErrorIs(t, err, account.ErrUnavailable)
	assert.Contains(t, err.Error(), "503")
}

func TestHealth_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := newClient(url).Health(context.Background())
	assert.ErrorIs(t, err, account.ErrUnavailable)
}

func TestCreateUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	srv := testutil.NewAccountServer(t, db)
	c := newClient(srv.URL + "/")

	err := c.CreateUser(context.Background(), account.NewUser{
		Username: "Dark", Email: "Dark@email.com", Password: "Jubarte@1234",
	})
	require.NoError(t, err)

	var u model.User
	require.NoError(t, db.Where("email = ?", "Dark@email.com").First(&u).Error)
	assert.Equal(t, "Dark", u.Username)
	assert.NotEqual(t, "Jubarte@1234", u.Password, "password is hashed by the service")
	assert.Equal(t, []string{"Dark@email.com"}, srv.Created())
}

func TestCreateUser_Conflict(t *testing.T) {
	srv := testutil.NewAccountServer(t, testutil.SetupTestDB(t))
	c := newClient(srv.URL)
	u := account.NewUser{Username: "Silver", Email: "Silver@email.com", Password: "Jubarte@1234"}

	require.NoError(t, c.CreateUser(context.Background(), u))
	err := c.CreateUser(context.Background(), u)

	var rej *account.RejectedError
	require.True(t, errors.As(err, &rej))
	assert.True(t, rej.Conflict())
	assert.Equal(t, "Email already registered", rej.Message)
}

func TestCreateUser_ValidationMessageArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"statusCode":400,"message":["password is not strong enough","email must be an email"],"error":"Bad Request"}`))
	}))
	t.Cleanup(srv.Close)

	err := newClient(srv.URL).CreateUser(context.Background(), account.NewUser{Username: "x", Email: "bad", Password: "weak"})
	var rej *account.RejectedError
	require.True(t, errors.As(err, &rej))
	assert.False(t, rej.Conflict())
	assert.Equal(t, http.StatusBadRequest, rej.Status)
	assert.Equal(t, "password is not strong enough; email must be an email", rej.Message)
}

func TestCreateUser_PlainTextError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway exploded", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	err := newClient(srv.URL).CreateUser(context.Background(), account.NewUser{Username: "x", Email: "x@x.com", Password: "Jubarte@1234"})
	var rej *account.RejectedError
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, "gateway exploded", rej.Message)
}

func TestCreateUser_CancelledContext(t *testing.T) {
	srv := testutil.NewAccountServer(t, testutil.SetupTestDB(t))
	c := account.NewClient(config.AccountServiceConfig{BaseURL: srv.URL, RateLimitRPS: 0.001, RateLimitBurst: 1}, zap.NewNop())

	ctx := context.Background()
	require.NoError(t, c.CreateUser(ctx, account.NewUser{Username: "aa", Email: "a@x.com", Password: "Jubarte@1234"}))

	// The burst is spent; the limiter cannot grant another token before the
	// deadline.
	ctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	err := c.CreateUser(ctx, account.NewUser{Username: "bb", Email: "b@x.com", Password: "Jubarte@1234"})
	assert.Error(t, err)
	assert.Equal(t, 1, srv.Posts())
}

func TestTraceHeader(t *testing.T) {
	srv := testutil.NewAccountServer(t, testutil.SetupTestDB(t))
	c := newClient(srv.URL)

	ctx := account.WithTraceID(context.Background(), "run-42")
	require.NoError(t, c.Health(ctx))
	require.NoError(t, c.CreateUser(ctx, account.NewUser{Username: "Dark", Email: "Dark@email.com", Password: "Jubarte@1234"}))
	require.NoError(t, c.Health(context.Background()))

	reqs := srv.Requests()
	require.Len(t, reqs, 3)
	assert.Equal(t, "run-42", reqs[0].TraceID)
	assert.Equal(t, "run-42", reqs[1].TraceID)
	assert.Equal(t, http.StatusCreated, reqs[1].Status)
	assert.NotEqual(t, "run-42", reqs[2].TraceID, "untraced requests get a fresh id")
	assert.NotEmpty(t, reqs[2].TraceID)
}
