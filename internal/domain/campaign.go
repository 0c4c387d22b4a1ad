package domain

import "time"

// Campaign represents a named collection of target email addresses for a
// mailing effort.
type Campaign struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Targets is populated on detail/list reads; nil on bare rows.
	Targets []TargetAddress `json:"emails,omitempty"`
}

// TargetAddress is one recipient email bound to exactly one campaign.
// The pair (CampaignID, Email) is unique.
type TargetAddress struct {
	ID         int64     `json:"id" db:"id"`
	CampaignID int64     `json:"campaign_id" db:"campaign_id"`
	Email      string    `json:"email" db:"email"`
	AddedAt    time.Time `json:"added_at" db:"added_at"`
}

// Dict returns the wire representation of a campaign used by the campaign
// mutation endpoints.
func (c *Campaign) Dict() map[string]interface{} {
	return map[string]interface{}{
		"id":         c.ID,
		"name":       c.Name,
		"created_at": c.CreatedAt.Format(time.RFC3339),
	}
}

// Dict returns the wire representation of a target, including its owning
// campaign, used by the campaign list endpoint.
func (t *TargetAddress) Dict(campaignName string) map[string]interface{} {
	return map[string]interface{}{
		"id":            t.ID,
		"campaign_id":   t.CampaignID,
		"campaign_name": campaignName,
		"email":         t.Email,
		"added_at":      t.AddedAt.Format(time.RFC3339),
	}
}
