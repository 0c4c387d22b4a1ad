package mailer

import "errors"

var (
	// ErrConfig reports an unusable SMTP configuration before any network
	// activity takes place.
	ErrConfig = errors.New("invalid smtp configuration")

	// ErrConnection reports a failure to reach the SMTP server at all.
	ErrConnection = errors.New("smtp connection failed")

	// ErrAuthentication reports any failure after the TCP connection was
	// established: STARTTLS negotiation, credential rejection, or a dropped
	// session. The server was reachable, so the configuration that remains
	// suspect is the credentials.
	ErrAuthentication = errors.New("smtp authentication failed")

	// ErrSend reports a failure while delivering a composed message.
	ErrSend = errors.New("smtp send failed")
)
