package usecase

import "errors"

var (
	// ErrInvalidInput rejects a send before any I/O: blank content or a
	// missing participant id. Surfaced to the initiating client only.
	ErrInvalidInput = errors.New("invalid message input")

	// ErrPersistence indicates the durable store failed; the send is
	// abandoned and nothing is delivered. The caller retries explicitly.
	ErrPersistence = errors.New("message store unavailable")

	// ErrSameRole rejects messaging between two participants of the same
	// role; the support chat only connects users with admins.
	ErrSameRole = errors.New("sender and recipient share a role")

	// ErrUnknownParticipant is returned when either end of a send does not
	// exist in the directory.
	ErrUnknownParticipant = errors.New("unknown participant")
)
