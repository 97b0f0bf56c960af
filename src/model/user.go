package model

import "github.com/shopspring/decimal"

type KYCStatus string

const (
	KYCStatusNone     KYCStatus = "none"
	KYCStatusPending  KYCStatus = "pending"
	KYCStatusApproved KYCStatus = "approved"
	KYCStatusRejected KYCStatus = "rejected"
)

// UserProfile is the authoritative snapshot of the signed-in principal.
// The backend owns it; the client only holds a cached, possibly-stale copy
// and replaces it wholesale. There are no partial field patches.
type UserProfile struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Balance     int64     `json:"balance"` // minor currency units
	KYCLevel    int       `json:"kyc_level"`
	KYCStatus   KYCStatus `json:"kyc_status"`
	IsAdmin     bool      `json:"is_admin"`

	// Holdings maps asset symbol to the quantity currently held. Used only
	// for the advisory sell/convert preflight; the backend re-validates.
	Holdings map[string]decimal.Decimal `json:"holdings,omitempty"`
}

// Held returns the cached quantity of an asset, zero if unknown.
func (p UserProfile) Held(asset string) decimal.Decimal {
	if p.Holdings == nil {
		return decimal.Zero
	}
	return p.Holdings[asset]
}

// Equal reports whether two snapshots carry the same data. Subscribers use
// it to stay idempotent when the same snapshot is published twice.
func (p UserProfile) Equal(other UserProfile) bool {
	if p.ID != other.ID ||
		p.DisplayName != other.DisplayName ||
		p.Balance != other.Balance ||
		p.KYCLevel != other.KYCLevel ||
		p.KYCStatus != other.KYCStatus ||
		p.IsAdmin != other.IsAdmin {
		return false
	}
	if len(p.Holdings) != len(other.Holdings) {
		return false
	}
	for asset, qty := range p.Holdings {
		if !qty.Equal(other.Holdings[asset]) {
			return false
		}
	}
	return true
}
