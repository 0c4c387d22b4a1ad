package mailbox

import "errors"

var (
	// ErrConfig reports an unusable IMAP configuration before any network
	// activity takes place.
	ErrConfig = errors.New("invalid imap configuration")

	// ErrConnection reports any failure talking to the IMAP server, from the
	// initial dial through fetching.
	ErrConnection = errors.New("imap connection failed")
)
