package service

import "errors"

var (
	// ErrInvalidCredentials covers unknown usernames and wrong passwords
	// alike, so login failures don't leak which half was wrong.
	ErrInvalidCredentials = errors.New("service: invalid credentials")

	// ErrUsernameTaken reports a duplicate username at user creation.
	ErrUsernameTaken = errors.New("service: username already taken")

	// ErrInvalidValidUntil reports a valid-until date that is malformed or
	// not after the issue date.
	ErrInvalidValidUntil = errors.New("service: invalid valid_until date")

	// ErrFarmerNotFound reports a rating referencing a nonexistent farmer.
	ErrFarmerNotFound = errors.New("service: farmer not found")

	// ErrInvalidScore reports a rating sub-score outside 1..5.
	ErrInvalidScore = errors.New("service: rating score out of range")

	// ErrNoFaceMatch reports that no enrolled face matched the submitted
	// payload.
	ErrNoFaceMatch = errors.New("service: no matching face found")
)
