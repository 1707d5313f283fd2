package email

// Service delivers transactional mail. Implementations must not block the
// caller on provider round-trips.
type Service interface {
	Send(toName, toAddr, subject, body string)
}
