package models

// SubscriptionStatusActive is the only status that qualifies for reminders.
const SubscriptionStatusActive = "active"

// Subscription represents a recurring payment tracked by a user.
type Subscription struct {
	ID       string  `bson:"id" json:"id"`
	UserID   string  `bson:"userId" json:"userId"`
	Name     string  `bson:"name" json:"name"`
	Amount   float64 `bson:"amount" json:"amount"`
	Currency string  `bson:"currency" json:"currency"`

	// Older client versions wrote nextPaymentDate; newer ones write
	// nextBillingDate. Both are accepted, billing date wins.
	NextBillingDate FlexTime `bson:"nextBillingDate,omitempty" json:"nextBillingDate,omitempty"`
	NextPaymentDate FlexTime `bson:"nextPaymentDate,omitempty" json:"nextPaymentDate,omitempty"`

	ReminderEnabled    bool    `bson:"reminderEnabled" json:"reminderEnabled"`
	Status             string  `bson:"status" json:"status"`
	ReminderDaysBefore FlexInt `bson:"reminderDaysBefore,omitempty" json:"reminderDaysBefore,omitempty"`
}

// DueDate returns the effective due date, preferring nextBillingDate.
func (s *Subscription) DueDate() FlexTime {
	if s.NextBillingDate.Valid {
		return s.NextBillingDate
	}
	return s.NextPaymentDate
}

// ReminderEligible reports whether this subscription qualifies for a billing
// reminder at all. The repository query already filters on the flag and status;
// the due-date check has to happen here because parseability is only known
// after decoding.
func (s *Subscription) ReminderEligible() bool {
	return s.ReminderEnabled && s.Status == SubscriptionStatusActive && s.DueDate().Valid
}
