// models/user.go
package models

import "time"

// User represents an app user document. Owned by the mobile application; the
// reminder engine only ever reads these.
type User struct {
	ID         string    `bson:"id" json:"id"`
	Name       string    `bson:"name,omitempty" json:"name,omitempty"`
	Email      string    `bson:"email,omitempty" json:"email,omitempty"`
	FCMToken   string    `bson:"fcmToken,omitempty" json:"fcmToken,omitempty"`
	UTCOffset  int       `bson:"utcOffset" json:"utcOffset"`
	IsPremium  *bool     `bson:"isPremium,omitempty" json:"isPremium,omitempty"`
	NextPayday FlexTime  `bson:"nextPayday,omitempty" json:"nextPayday,omitempty"`
	CreatedAt  time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// Premium reports whether the user has an explicit premium flag set to true.
// Missing and false are both treated as non-premium.
func (u *User) Premium() bool {
	return u.IsPremium != nil && *u.IsPremium
}

// Reachable reports whether the user can receive pushes at all.
func (u *User) Reachable() bool {
	return u.FCMToken != ""
}
