package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/kasuganosora/coffeemon-seed/account"
	"github.com/kasuganosora/coffeemon-seed/model"
	"go.uber.org/zap"
)

// ensureAccounts creates missing accounts through the Account Service so
// they get the application's password hashing and validation. A rejected
// account does not stop the stage.
func (s *Seeder) ensureAccounts(ctx context.Context, log *zap.Logger, sum *Summary) error {
	for _, a := range s.data.Accounts {
		alog := log.With(zap.String("email", a.Email))

		exists, err := s.store.AccountExists(ctx, a.Email)
		if err != nil {
			return fmt.Errorf("look up account %s: %w", a.Email, err)
		}
		if exists {
			alog.Debug("account exists")
			fmt.Fprintf(s.opts.Out, "  > Already exists: %s\n", a.Email)
			sum.Accounts.Existing++
			continue
		}

		err = s.accounts.CreateUser(ctx, account.NewUser{
			Username: a.Username,
			Email:    a.Email,
			Password: a.Password,
		})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			var rej *account.RejectedError
			if errors.As(err, &rej) && rej.Conflict() {
				alog.Info("account service reports account exists")
				fmt.Fprintf(s.opts.Out, "  > Already exists: %s\n", a.Email)
				sum.Accounts.Existing++
				continue
			}
			alog.Warn("account not created", zap.Error(err))
			fmt.Fprintf(s.opts.Out, "  > Rejected: %s (%v)\n", a.Email, err)
			sum.Accounts.Rejected++
			continue
		}
		alog.Info("account created")
		fmt.Fprintf(s.opts.Out, "  > Created: %s\n", a.Email)
		sum.Accounts.Created++
	}
	return nil
}

func (s *Seeder) promoteAdmin(ctx context.Context, log *zap.Logger, sum *Summary) error {
	n, err := s.store.PromoteRole(ctx, s.data.AdminEmail, model.RoleAdmin)
	if err != nil {
		return fmt.Errorf("promote %s: %w", s.data.AdminEmail, err)
	}
	sum.AdminPromoted = n > 0
	log = log.With(zap.String("email", s.data.AdminEmail))
	if n > 0 {
		log.Info("admin role granted")
		fmt.Fprintf(s.opts.Out, "  > %s is now admin\n", s.data.AdminEmail)
	} else {
		log.Info("no account changed; already admin or missing")
		fmt.Fprintf(s.opts.Out, "  > %s unchanged\n", s.data.AdminEmail)
	}
	return nil
}
