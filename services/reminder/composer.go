package reminder

import (
	"fmt"

	"subwatch/models"
)

// Reminder class identifiers. These also tag the "type" entry of the push data
// map so the client can route taps.
const (
	ClassBilling    = "billing_reminder"
	ClassPayday     = "payday"
	ClassEngagement = "engagement"
	ClassMarketing  = "marketing"
)

const clickAction = "FLUTTER_NOTIFICATION_CLICK"

// Engagement nudges rotate on day-of-year parity so users don't see the same
// prompt two days in a row.
var engagementPrompts = [2]struct {
	title string
	body  string
}{
	{
		title: "Quick check-in 👀",
		body:  "You have payments coming up. Take a minute to review your subscriptions.",
	},
	{
		title: "Stay ahead of renewals ✍️",
		body:  "Added a new subscription lately? Keep your list fresh to avoid surprise charges.",
	},
}

// payloadData builds the data map every push carries. The id entry is always
// present: absent identifiers become the empty string so the client-side
// schema stays stable.
func payloadData(eventType, route, itemID string) map[string]string {
	return map[string]string{
		"type":         eventType,
		"route":        route,
		"id":           itemID,
		"click_action": clickAction,
	}
}

// ComposeBillingReminder builds the payment-due push for a matched
// subscription. daysLeft is the matched lead time.
func ComposeBillingReminder(u models.User, s models.Subscription, daysLeft int) models.PushMessage {
	var body string
	switch daysLeft {
	case 0:
		body = fmt.Sprintf("%s (%.2f %s) is due today!", s.Name, s.Amount, s.Currency)
	case 1:
		body = fmt.Sprintf("%s (%.2f %s) is due tomorrow!", s.Name, s.Amount, s.Currency)
	default:
		body = fmt.Sprintf("%s (%.2f %s) is due in %d days.", s.Name, s.Amount, s.Currency, daysLeft)
	}

	return models.PushMessage{
		Token: u.FCMToken,
		Title: "Payment reminder 💸",
		Body:  body,
		Data:  payloadData(ClassBilling, "/subscriptions", s.ID),
	}
}

// ComposePayday builds the payday-morning announcement.
func ComposePayday(u models.User) models.PushMessage {
	return models.PushMessage{
		Token: u.FCMToken,
		Title: "It's payday! 🎉",
		Body:  "Your salary just landed. A good moment to review this month's subscriptions.",
		Data:  payloadData(ClassPayday, "/home", ""),
	}
}

// ComposeEngagement builds the rotating evening nudge. dayOfYear selects which
// of the two canned prompts fires.
func ComposeEngagement(u models.User, dayOfYear int) models.PushMessage {
	p := engagementPrompts[dayOfYear%2]
	return models.PushMessage{
		Token: u.FCMToken,
		Title: p.title,
		Body:  p.body,
		Data:  payloadData(ClassEngagement, "/subscriptions", ""),
	}
}

// ComposeMarketing builds the premium upsell. Callers must gate on
// User.Premium(): only an explicit true suppresses it.
func ComposeMarketing(u models.User) models.PushMessage {
	return models.PushMessage{
		Token: u.FCMToken,
		Title: "Go Premium ✨",
		Body:  "Unlock unlimited subscriptions and smart spending insights with SubWatch Premium.",
		Data:  payloadData(ClassMarketing, "/paywall", ""),
	}
}
