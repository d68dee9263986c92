package request

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
)

type nopSink struct{}

func (nopSink) Log(_ context.Context, _, _ string, _ interface{}) {}

type fakeRepo struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*Request
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{requests: make(map[uuid.UUID]*Request)}
}

func (r *fakeRepo) Create(_ context.Context, req *Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[req.ID] = req
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	req, ok := r.requests[uid]
	if !ok {
		return nil, fmt.Errorf("request %s not found", id)
	}
	copied := *req
	return &copied, nil
}

func (r *fakeRepo) List(_ context.Context, status Status, office string) ([]*Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Request
	for _, req := range r.requests {
		if status != "" && req.Status != status {
			continue
		}
		if office != "" && req.Office != office {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id string, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	req, ok := r.requests[uid]
	if !ok {
		return fmt.Errorf("request %s not found", id)
	}
	req.Status = status
	return nil
}

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"Pending", StatusPending, false},
		{"approved", StatusApproved, false},
		{"  REJECTED ", StatusRejected, false},
		{"done", "", true},
		{"", "", true},
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

func TestCreateRequest_Validation(t *testing.T) {
	svc := NewService(newFakeRepo(), nopSink{})
	ctx := context.Background()

	cases := []struct {
		name string
		req  CreateRequest
		want string
	}{
		{"missing item", CreateRequest{Office: "London", Quantity: 1}, "item_name"},
		{"missing office", CreateRequest{ItemName: "Pens", Quantity: 1}, "office"},
		{"zero quantity", CreateRequest{ItemName: "Pens", Office: "London"}, "quantity"},
		{"negative quantity", CreateRequest{ItemName: "Pens", Office: "London", Quantity: -2}, "quantity"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateRequest(ctx, tc.req, "actor")
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateRequest_StartsPending(t *testing.T) {
	svc := NewService(newFakeRepo(), nopSink{})

	r, err := svc.CreateRequest(context.Background(), CreateRequest{
		ItemName: "Pens", Office: "London", Quantity: 3, Purpose: "meeting",
	}, "actor")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if r.Status != StatusPending {
		t.Errorf("expected new request to be Pending, got %s", r.Status)
	}
}

func TestDecide_Transitions(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopSink{})
	ctx := context.Background()

	seed := func(t *testing.T) *Request {
		t.Helper()
		r, err := svc.CreateRequest(ctx, CreateRequest{ItemName: "Pens", Office: "London", Quantity: 1}, "actor")
		if err != nil {
			t.Fatalf("seed request failed: %v", err)
		}
		return r
	}

	t.Run("approve pending", func(t *testing.T) {
		r := seed(t)
		got, err := svc.Decide(ctx, r.ID.String(), DecideRequest{Status: "approved"}, "manager")
		if err != nil {
			t.Fatalf("decide failed: %v", err)
		}
		if got.Status != StatusApproved {
			t.Errorf("expected Approved, got %s", got.Status)
		}
	})

	t.Run("reject pending", func(t *testing.T) {
		r := seed(t)
		got, err := svc.Decide(ctx, r.ID.String(), DecideRequest{Status: "Rejected"}, "manager")
		if err != nil {
			t.Fatalf("decide failed: %v", err)
		}
		if got.Status != StatusRejected {
			t.Errorf("expected Rejected, got %s", got.Status)
		}
	})

	t.Run("cannot decide twice", func(t *testing.T) {
		r := seed(t)
		if _, err := svc.Decide(ctx, r.ID.String(), DecideRequest{Status: "approved"}, "manager"); err != nil {
			t.Fatalf("first decision failed: %v", err)
		}
		_, err := svc.Decide(ctx, r.ID.String(), DecideRequest{Status: "rejected"}, "manager")
		if err == nil || !strings.Contains(err.Error(), "already") {
			t.Errorf("expected already-decided error, got %v", err)
		}
	})

	t.Run("cannot decide back to pending", func(t *testing.T) {
		r := seed(t)
		_, err := svc.Decide(ctx, r.ID.String(), DecideRequest{Status: "pending"}, "manager")
		if err == nil || !strings.Contains(err.Error(), "Approved or Rejected") {
			t.Errorf("expected decision validation error, got %v", err)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		r := seed(t)
		_, err := svc.Decide(ctx, r.ID.String(), DecideRequest{Status: "maybe"}, "manager")
		if err == nil || !strings.Contains(err.Error(), "unknown request status") {
			t.Errorf("expected parse error, got %v", err)
		}
	})
}
