// Package mailbox reads recent messages out of an IMAP inbox.
//
// Each fetch is a complete session: dial, login, select INBOX, fetch, logout.
// Nothing is cached between calls and no connection is kept open.
package mailbox

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"github.com/emersion/go-message/mail"
)

// DefaultFetchLimit is how many messages a fetch returns when the caller
// does not say otherwise.
const DefaultFetchLimit = 50

// Config holds the connection parameters for one IMAP server.
type Config struct {
	Server   string `json:"imap_server"`
	Port     int    `json:"imap_port"`
	Username string `json:"imap_username"`
	Password string `json:"imap_password"`
	UseSSL   bool   `json:"use_ssl"`
}

// Validate rejects configurations that cannot possibly connect.
func (c Config) Validate() error {
	if c.Server == "" {
		return fmt.Errorf("%w: missing server", ErrConfig)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrConfig, c.Port)
	}
	if c.Username == "" {
		return fmt.Errorf("%w: missing username", ErrConfig)
	}
	return nil
}

func (c Config) addr() string {
	return fmt.Sprintf("%s:%d", c.Server, c.Port)
}

// MessageSummary is one inbox message reduced to its display fields.
type MessageSummary struct {
	UID     uint32 `json:"id"`
	Subject string `json:"subject"`
	Sender  string `json:"sender"`
	Date    string `json:"date"`
	Body    string `json:"body"`
}

// FetchRecent returns the newest messages in INBOX, oldest first and newest
// last. A limit of zero or less means DefaultFetchLimit. An inbox with fewer
// messages than the limit returns them all; an empty inbox returns an empty
// slice, not an error.
func FetchRecent(ctx context.Context, cfg Config, limit int) ([]MessageSummary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultFetchLimit
	}

	var client *imapclient.Client
	var err error
	if cfg.UseSSL {
		client, err = imapclient.DialTLS(cfg.addr(), nil)
	} else {
		client, err = imapclient.DialInsecure(cfg.addr(), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", ErrConnection, cfg.addr(), err)
	}
	defer func() { _ = client.Logout().Wait() }()

	if err := client.Login(cfg.Username, cfg.Password).Wait(); err != nil {
		return nil, fmt.Errorf("%w: login %s: %v", ErrConnection, cfg.Username, err)
	}

	if _, err := client.Select("INBOX", nil).Wait(); err != nil {
		return nil, fmt.Errorf("%w: select INBOX: %v", ErrConnection, err)
	}

	searchData, err := client.UIDSearch(&imap.SearchCriteria{}, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("%w: search: %v", ErrConnection, err)
	}

	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		return []MessageSummary{}, nil
	}
	if len(uids) > limit {
		uids = uids[len(uids)-limit:]
	}

	bodySection := &imap.FetchItemBodySection{Peek: true}
	fetchCmd := client.Fetch(imap.UIDSetNum(uids...), &imap.FetchOptions{
		Envelope:    true,
		UID:         true,
		BodySection: []*imap.FetchItemBodySection{bodySection},
	})
	defer fetchCmd.Close()

	var summaries []MessageSummary
	for {
		msg := fetchCmd.Next()
		if msg == nil {
			break
		}
		buf, err := msg.Collect()
		if err != nil {
			continue
		}
		summaries = append(summaries, summarize(buf, buf.FindBodySection(bodySection)))
	}
	if err := fetchCmd.Close(); err != nil {
		return nil, fmt.Errorf("%w: fetch: %v", ErrConnection, err)
	}

	sortByUID(summaries)
	if summaries == nil {
		summaries = []MessageSummary{}
	}
	return summaries, nil
}

// sortByUID orders summaries oldest first, newest last, regardless of the
// order fetch responses arrived in.
func sortByUID(summaries []MessageSummary) {
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UID < summaries[j].UID
	})
}

func summarize(buf *imapclient.FetchMessageBuffer, raw []byte) MessageSummary {
	s := MessageSummary{UID: uint32(buf.UID)}

	if buf.Envelope != nil {
		s.Subject = buf.Envelope.Subject
		if len(buf.Envelope.From) > 0 {
			s.Sender = buf.Envelope.From[0].Addr()
		}
		if !buf.Envelope.Date.IsZero() {
			s.Date = buf.Envelope.Date.Format(time.RFC1123Z)
		}
	}

	s.Body, s.Date = extractBody(raw, s.Date)
	return s
}

// extractBody pulls the body out of a raw RFC 5322 message: the first
// text/plain part of a multipart message (empty when it has none), or the
// single decoded part of a non-multipart message whatever its type. Raw input
// that cannot be parsed as a message at all is returned as-is. It also
// prefers the message's own Date header over the envelope date when one is
// present.
func extractBody(raw []byte, envelopeDate string) (body, date string) {
	date = envelopeDate
	if len(raw) == 0 {
		return "", date
	}

	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		return string(raw), date
	}
	defer mr.Close()

	if d := mr.Header.Get("Date"); d != "" {
		date = d
	}
	contentType, _, _ := mr.Header.ContentType()
	isMultipart := strings.HasPrefix(contentType, "multipart/")

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}
		h, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		partType, _, _ := h.ContentType()
		if isMultipart && !strings.HasPrefix(partType, "text/plain") {
			continue
		}
		b, err := io.ReadAll(part.Body)
		if err != nil {
			continue
		}
		return string(b), date
	}
	return "", date
}
