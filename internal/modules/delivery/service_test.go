package delivery

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/stationeryhq/stationery-backend/internal/modules/catalog"
	"github.com/stationeryhq/stationery-backend/internal/modules/office"
)

type nopSink struct{}

func (nopSink) Log(_ context.Context, _, _ string, _ interface{}) {}

type fakeRepo struct {
	mu         sync.Mutex
	deliveries map[uuid.UUID]*Delivery
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{deliveries: make(map[uuid.UUID]*Delivery)}
}

func (r *fakeRepo) Create(_ context.Context, d *Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries[d.ID] = d
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	d, ok := r.deliveries[uid]
	if !ok {
		return nil, fmt.Errorf("delivery %s not found", id)
	}
	return d, nil
}

func (r *fakeRepo) List(_ context.Context, status Status, officeName string) ([]*Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Delivery
	for _, d := range r.deliveries {
		if status != "" && d.Status != status {
			continue
		}
		if officeName != "" && d.Office != officeName {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, d *Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.deliveries[d.ID]; !ok {
		return fmt.Errorf("delivery %s not found", d.ID)
	}
	r.deliveries[d.ID] = d
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	if _, ok := r.deliveries[uid]; !ok {
		return fmt.Errorf("delivery %s not found", id)
	}
	delete(r.deliveries, uid)
	return nil
}

type fakeItemRepo struct {
	items map[string]*catalog.Item
}

func (r *fakeItemRepo) Create(_ context.Context, _ *catalog.Item) error { return nil }
func (r *fakeItemRepo) Update(_ context.Context, _ *catalog.Item) error { return nil }
func (r *fakeItemRepo) Delete(_ context.Context, _ string) error        { return nil }
func (r *fakeItemRepo) List(_ context.Context, _ string) ([]*catalog.Item, error) {
	return nil, nil
}
func (r *fakeItemRepo) GetByID(_ context.Context, id string) (*catalog.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("item %s not found", id)
	}
	return item, nil
}

type fakeOfficeRepo struct {
	offices map[string]*office.Office
}

func (r *fakeOfficeRepo) Create(_ context.Context, _ *office.Office) error { return nil }
func (r *fakeOfficeRepo) Update(_ context.Context, _ *office.Office) error { return nil }
func (r *fakeOfficeRepo) Delete(_ context.Context, _ string) error         { return nil }
func (r *fakeOfficeRepo) List(_ context.Context) ([]*office.Office, error) { return nil, nil }
func (r *fakeOfficeRepo) GetByName(_ context.Context, name string) (*office.Office, error) {
	for _, o := range r.offices {
		if o.Name == name {
			return o, nil
		}
	}
	return nil, fmt.Errorf("office %s not found", name)
}
func (r *fakeOfficeRepo) GetByID(_ context.Context, id string) (*office.Office, error) {
	o, ok := r.offices[id]
	if !ok {
		return nil, fmt.Errorf("office %s not found", id)
	}
	return o, nil
}

func newTestService() (Service, *fakeRepo, uuid.UUID, uuid.UUID) {
	repo := newFakeRepo()
	itemID := uuid.New()
	officeID := uuid.New()
	itemRepo := &fakeItemRepo{items: map[string]*catalog.Item{
		itemID.String(): {ID: itemID, Name: "Ballpoint Pens"},
	}}
	officeRepo := &fakeOfficeRepo{offices: map[string]*office.Office{
		officeID.String(): {ID: officeID, Name: "London"},
	}}
	svc := NewService(repo, itemRepo, officeRepo, nopSink{})
	return svc, repo, itemID, officeID
}

func TestCreateDelivery_Defaults(t *testing.T) {
	svc, _, _, _ := newTestService()

	d, err := svc.CreateDelivery(context.Background(), CreateDeliveryRequest{
		Product: "Paper", Office: "London",
	}, "actor")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if d.Status != StatusOrdered {
		t.Errorf("expected Ordered, got %s", d.Status)
	}
	if d.ScheduledAt.Before(time.Now().UTC().AddDate(0, 0, 6)) {
		t.Errorf("expected default schedule about a week out, got %s", d.ScheduledAt)
	}
}

func TestCreateDelivery_Validation(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateDelivery(ctx, CreateDeliveryRequest{Office: "London"}, "actor"); err == nil {
		t.Error("expected error for missing product")
	}
	if _, err := svc.CreateDelivery(ctx, CreateDeliveryRequest{Product: "Paper"}, "actor"); err == nil {
		t.Error("expected error for missing office")
	}
}

func TestRaiseFromSuggestions_CreatesOrderedDeliveries(t *testing.T) {
	svc, repo, itemID, officeID := newTestService()

	created, err := svc.RaiseFromSuggestions(context.Background(), RaiseRequest{
		Lines: []RaiseLine{
			{ItemID: itemID.String(), OfficeID: officeID.String(), Quantity: 17},
			{ItemID: itemID.String(), OfficeID: officeID.String(), Quantity: 0}, // skipped
		},
	}, "actor")
	if err != nil {
		t.Fatalf("raise failed: %v", err)
	}
	if created != 1 {
		t.Fatalf("expected 1 delivery created, got %d", created)
	}

	deliveries, _ := repo.List(context.Background(), "", "")
	if len(deliveries) != 1 {
		t.Fatalf("expected 1 stored delivery, got %d", len(deliveries))
	}
	d := deliveries[0]
	if d.Product != "Ballpoint Pens" {
		t.Errorf("expected resolved item name, got %q", d.Product)
	}
	if d.Office != "London" {
		t.Errorf("expected resolved office name, got %q", d.Office)
	}
	if d.Status != StatusOrdered {
		t.Errorf("expected Ordered, got %s", d.Status)
	}
}

func TestRaiseFromSuggestions_EmptyIsNoop(t *testing.T) {
	svc, repo, _, _ := newTestService()

	created, err := svc.RaiseFromSuggestions(context.Background(), RaiseRequest{}, "actor")
	if err != nil {
		t.Fatalf("raise failed: %v", err)
	}
	if created != 0 {
		t.Errorf("expected 0 created, got %d", created)
	}
	if deliveries, _ := repo.List(context.Background(), "", ""); len(deliveries) != 0 {
		t.Errorf("expected no deliveries, got %d", len(deliveries))
	}
}

func TestParseDeliveryStatus(t *testing.T) {
	cases := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"ordered", StatusOrdered, false},
		{"On Time", StatusOnTime, false},
		{"ontime", StatusOnTime, false},
		{"DELAYED", StatusDelayed, false},
		{"lost", "", true},
	}
	for _, tc := range cases {
		got, err := ParseStatus(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseStatus(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseStatus(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestDelayDays(t *testing.T) {
	scheduled := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	d := &Delivery{ScheduledAt: scheduled}

	if _, ok := d.DelayDays(); ok {
		t.Error("expected no delay before arrival")
	}

	arrived := scheduled.AddDate(0, 0, 3)
	d.ArrivedAt = &arrived
	if days, ok := d.DelayDays(); !ok || days != 3 {
		t.Errorf("expected 3 days late, got %d (%v)", days, ok)
	}

	early := scheduled.AddDate(0, 0, -2)
	d.ArrivedAt = &early
	if days, ok := d.DelayDays(); !ok || days != -2 {
		t.Errorf("expected 2 days early, got %d (%v)", days, ok)
	}
}

func TestUpdateStatus_RecordsArrival(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	d, err := svc.CreateDelivery(ctx, CreateDeliveryRequest{Product: "Paper", Office: "London"}, "actor")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	arrived := time.Now().UTC()
	got, err := svc.UpdateStatus(ctx, d.ID.String(), "on time", &arrived, "actor")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got.Status != StatusOnTime {
		t.Errorf("expected On Time, got %s", got.Status)
	}
	if got.ArrivedAt == nil || !got.ArrivedAt.Equal(arrived) {
		t.Errorf("arrival not recorded: %v", got.ArrivedAt)
	}
}
