package model

import "time"

type NotificationType string

const (
	NotificationOrderApproved   NotificationType = "order_approved"
	NotificationOrderRejected   NotificationType = "order_rejected"
	NotificationDepositApproved NotificationType = "deposit_approved"
	NotificationDepositRejected NotificationType = "deposit_rejected"
	NotificationKYCApproved     NotificationType = "kyc_approved"
	NotificationKYCRejected     NotificationType = "kyc_rejected"
	NotificationPriceAlert      NotificationType = "price_alert"
	NotificationOther           NotificationType = "other"
)

// ToastWorthy reports whether an event of this type may produce a toast.
// Only order/deposit/KYC approval-or-rejection events do; informational
// types stay in the notification panel.
func (t NotificationType) ToastWorthy() bool {
	switch t {
	case NotificationOrderApproved, NotificationOrderRejected,
		NotificationDepositApproved, NotificationDepositRejected,
		NotificationKYCApproved, NotificationKYCRejected:
		return true
	}
	return false
}

// NotificationEvent is created by the backend. The client never mutates
// its content, only the read flag, via an explicit mark-read call.
type NotificationEvent struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
	Read      bool             `json:"read"`
}

// NotificationFeed is the notifications list response.
type NotificationFeed struct {
	Notifications []NotificationEvent `json:"notifications"`
	UnreadCount   int                 `json:"unread_count"`
}
