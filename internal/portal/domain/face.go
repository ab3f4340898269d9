package domain

import "time"

// FaceEnrollment stores an opaque encoded biometric payload for a user.
// The portal never interprets the payload; matching is an external
// capability behind the face.Matcher interface.
type FaceEnrollment struct {
	ID        string
	UserID    string
	Encoding  string
	CreatedAt time.Time
}
