// Package authz implements C12: resolving a caller's external identifier
// to an internal user id and answering admin/master membership questions.
package authz

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// Authorizer resolves identity and role membership against the database
// and the boot-time admin allowlist.
type Authorizer struct {
	db       *sqlx.DB
	adminIDs map[int64]bool
}

// New builds an Authorizer. adminIDs is the boot-env ADMIN_IDS list.
func New(db *sqlx.DB, adminIDs []int64) *Authorizer {
	set := make(map[int64]bool, len(adminIDs))
	for _, id := range adminIDs {
		set[id] = true
	}
	return &Authorizer{db: db, adminIDs: set}
}

// ResolveUser maps an external (messaging-platform) id to the internal
// user id, creating the user row if it does not yet exist is the caller's
// responsibility (user provisioning lives in the façade's auth layer) —
// this only resolves, it never creates.
func (a *Authorizer) ResolveUser(ctx context.Context, externalID int64) (int64, error) {
	var id int64
	err := a.db.GetContext(ctx, &id, `SELECT id FROM users WHERE telegram_id = $1`, externalID)
	if err == sql.ErrNoRows {
		return 0, ErrUserNotFound
	}
	return id, err
}

// IsAdmin reports whether externalID is a boot-listed admin or carries the
// is_admin flag on its user row.
func (a *Authorizer) IsAdmin(ctx context.Context, externalID int64) (bool, error) {
	if a.adminIDs[externalID] {
		return true, nil
	}
	var isAdmin bool
	err := a.db.GetContext(ctx, &isAdmin, `SELECT is_admin FROM users WHERE telegram_id = $1`, externalID)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return isAdmin, err
}

// IsMaster reports whether externalID corresponds to a row in masters.
func (a *Authorizer) IsMaster(ctx context.Context, externalID int64) (bool, error) {
	var count int
	err := a.db.GetContext(ctx, &count, `SELECT count(*) FROM masters WHERE telegram_id = $1`, externalID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CanMutateBooking reports whether callerUserID may act on a booking owned
// by ownerUserID, given the caller's master/admin standing.
func CanMutateBooking(callerUserID, ownerUserID int64, callerIsMasterOrAdmin bool) bool {
	return callerUserID == ownerUserID || callerIsMasterOrAdmin
}

type authzError string

func (e authzError) Error() string { return string(e) }

// ErrUserNotFound is returned by ResolveUser when no user row exists for
// the given external id.
const ErrUserNotFound authzError = "authz: user not found"
