package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-realm/internal/storage"
)

// handleLogin verifies credentials and promotes the connection to the
// authenticated tier. A failed verification is a user error, not a fault.
func (d *Dispatcher) handleLogin(ctx context.Context, req *Request) (any, error) {
	var payload LoginPayload
	if err := decode(req.Data, &payload); err != nil {
		return nil, err
	}

	account, err := d.accounts.Verify(ctx, payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, storage.ErrBadCredentials) {
			return nil, NewUserError(err.Error())
		}
		return nil, fmt.Errorf("verifying credentials: %w", err)
	}

	req.Session.SetAccount(account.ID, account.Username)
	d.tracker.OnAuthenticated(ctx, req.Session.ConnID, account.ID, account.Username)

	slog.InfoContext(ctx, "login succeeded",
		"conn", req.Session.ConnID, "account", account.ID, "username", account.Username)

	return LoginResponse{
		Ack:       Ack{Success: true},
		AccountID: account.ID,
		Username:  account.Username,
	}, nil
}
