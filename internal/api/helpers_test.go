package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ignite/mailroom/internal/domain"
	"github.com/ignite/mailroom/internal/mailbox"
	"github.com/ignite/mailroom/internal/mailer"
	"github.com/ignite/mailroom/internal/pkg/logger"
	"github.com/ignite/mailroom/internal/service/campaign"
	"github.com/ignite/mailroom/internal/service/template"
)

// memCampaignRepo is an in-memory campaign.Repository for handler tests.
type memCampaignRepo struct {
	nextID    int64
	campaigns map[int64]*domain.Campaign
}

func newMemCampaignRepo() *memCampaignRepo {
	return &memCampaignRepo{nextID: 1, campaigns: map[int64]*domain.Campaign{}}
}

func (m *memCampaignRepo) Create(_ context.Context, name string, emails []string) (*domain.Campaign, error) {
	c := &domain.Campaign{ID: m.nextID, Name: name, CreatedAt: time.Now()}
	for _, e := range emails {
		c.Targets = append(c.Targets, domain.TargetAddress{
			ID: int64(len(c.Targets) + 1), CampaignID: c.ID, Email: e, AddedAt: time.Now(),
		})
	}
	m.campaigns[c.ID] = c
	m.nextID++
	return c, nil
}

func (m *memCampaignRepo) List(_ context.Context) ([]domain.Campaign, error) {
	ids := make([]int64, 0, len(m.campaigns))
	for id := range m.campaigns {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	out := make([]domain.Campaign, 0, len(ids))
	for _, id := range ids {
		out = append(out, *m.campaigns[id])
	}
	return out, nil
}

func (m *memCampaignRepo) Get(_ context.Context, id int64) (*domain.Campaign, error) {
	c, ok := m.campaigns[id]
	if !ok {
		return nil, campaign.ErrNotFound
	}
	return c, nil
}

func (m *memCampaignRepo) Update(_ context.Context, id int64, name string, emails []string) (*domain.Campaign, error) {
	c, ok := m.campaigns[id]
	if !ok {
		return nil, campaign.ErrNotFound
	}
	c.Name = name
	c.Targets = nil
	for _, e := range emails {
		c.Targets = append(c.Targets, domain.TargetAddress{
			ID: int64(len(c.Targets) + 1), CampaignID: id, Email: e, AddedAt: time.Now(),
		})
	}
	return c, nil
}

func (m *memCampaignRepo) Delete(_ context.Context, id int64) (*domain.Campaign, error) {
	c, ok := m.campaigns[id]
	if !ok {
		return nil, campaign.ErrNotFound
	}
	delete(m.campaigns, id)
	return c, nil
}

// memTemplateRepo is an in-memory template.Repository for handler tests.
type memTemplateRepo struct {
	nextID    int64
	templates map[int64]*domain.Template
}

func newMemTemplateRepo() *memTemplateRepo {
	return &memTemplateRepo{nextID: 1, templates: map[int64]*domain.Template{}}
}

func (m *memTemplateRepo) Create(_ context.Context, in template.Input) (*domain.Template, error) {
	t := &domain.Template{
		ID: m.nextID, Name: in.Name, DateTS: time.Now(),
		Sender: in.Sender, Subject: in.Subject, FromEmail: in.FromEmail, Body: in.Body,
	}
	m.templates[t.ID] = t
	m.nextID++
	return t, nil
}

func (m *memTemplateRepo) All(_ context.Context) ([]domain.Template, error) {
	ids := make([]int64, 0, len(m.templates))
	for id := range m.templates {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	out := make([]domain.Template, 0, len(ids))
	for _, id := range ids {
		out = append(out, *m.templates[id])
	}
	return out, nil
}

func (m *memTemplateRepo) Get(_ context.Context, id int64) (*domain.Template, error) {
	t, ok := m.templates[id]
	if !ok {
		return nil, template.ErrNotFound
	}
	return t, nil
}

func (m *memTemplateRepo) Update(_ context.Context, id int64, in template.Input) (*domain.Template, error) {
	t, ok := m.templates[id]
	if !ok {
		return nil, template.ErrNotFound
	}
	t.Name, t.Sender, t.Subject, t.FromEmail, t.Body = in.Name, in.Sender, in.Subject, in.FromEmail, in.Body
	return t, nil
}

func (m *memTemplateRepo) Delete(_ context.Context, id int64) (*domain.Template, error) {
	t, ok := m.templates[id]
	if !ok {
		return nil, template.ErrNotFound
	}
	delete(m.templates, id)
	return t, nil
}

func newTestHandlers() *Handlers {
	log := logger.New(logger.Options{Level: logger.ERROR, Sink: io.Discard})
	h := NewHandlers(
		campaign.NewService(newMemCampaignRepo(), log),
		template.NewService(newMemTemplateRepo(), log),
		log,
		mailbox.DefaultFetchLimit,
	)
	// No network in tests.
	h.sendMail = func(mailer.Config, string, string, string, string) error { return nil }
	h.testSMTP = func(mailer.Config) error { return nil }
	h.fetchInbox = func(context.Context, mailbox.Config, int) ([]mailbox.MessageSummary, error) {
		return []mailbox.MessageSummary{}, nil
	}
	return h
}

func doRequest(t *testing.T, h *Handlers, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	SetupRoutes(h, []string{"*"}).ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}
