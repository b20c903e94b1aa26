package domain

// Status is a customer's lifecycle status, derived from the number of
// days left until expiration. It is recomputed on every batch run, so a
// customer can move between statuses as real time advances.
type Status string

const (
	// StatusActive means the subscription has 5 or more days left.
	StatusActive Status = "Ativo"

	// StatusExpiring means the subscription expires within 5 days.
	StatusExpiring Status = "Expirando em breve"

	// StatusExpired means the expiration date is already past.
	StatusExpired Status = "Expirado"
)

// StatusForDaysLeft classifies a customer by days until expiration.
func StatusForDaysLeft(daysLeft int) Status {
	switch {
	case daysLeft < 0:
		return StatusExpired
	case daysLeft < 5:
		return StatusExpiring
	default:
		return StatusActive
	}
}

// NeedsNotification reports whether a customer in the given status must
// receive a debit-note email.
func (s Status) NeedsNotification() bool {
	return s == StatusExpired || s == StatusExpiring
}
