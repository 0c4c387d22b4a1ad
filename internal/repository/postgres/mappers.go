// Package postgres implements the service repository contracts against
// PostgreSQL, through the generic store adapter.
package postgres

import (
	"github.com/ignite/mailroom/internal/domain"
	"github.com/ignite/mailroom/internal/store"
)

var campaignMapper = store.Mapper[domain.Campaign]{
	Table:   "campaigns",
	Columns: []string{"name", "created_at"},
	OrderBy: "created_at DESC",
	Scan: func(s store.Scanner) (domain.Campaign, error) {
		var c domain.Campaign
		err := s.Scan(&c.ID, &c.Name, &c.CreatedAt)
		return c, err
	},
}

var targetMapper = store.Mapper[domain.TargetAddress]{
	Table:   "campaign_targets",
	Columns: []string{"campaign_id", "email", "added_at"},
	OrderBy: "added_at DESC",
	Scan: func(s store.Scanner) (domain.TargetAddress, error) {
		var t domain.TargetAddress
		err := s.Scan(&t.ID, &t.CampaignID, &t.Email, &t.AddedAt)
		return t, err
	},
}

var templateMapper = store.Mapper[domain.Template]{
	Table:   "templates",
	Columns: []string{"template_name", "date_ts", "sender", "subject", "from_email", "body"},
	OrderBy: "date_ts DESC",
	Scan: func(s store.Scanner) (domain.Template, error) {
		var t domain.Template
		err := s.Scan(&t.ID, &t.Name, &t.DateTS, &t.Sender, &t.Subject, &t.FromEmail, &t.Body)
		return t, err
	},
}
