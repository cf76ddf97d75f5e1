package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"rent-property-service/internal/auth"
	"rent-property-service/internal/model"
	"rent-property-service/internal/repository/memrepo"
)

func TestSignupOncePerEmail(t *testing.T) {
	store := memrepo.New()
	svc := NewAuthService(store.Users(), auth.NewTokenService("secret", time.Hour))
	ctx := context.Background()

	res, err := svc.Signup(ctx, &model.User{Email: "a@x.com", Role: model.RoleAdmin}, "pw")
	if err != nil {
		t.Fatalf("first signup: %v", err)
	}
	if !res.Acknowledged || res.InsertedID == "" {
		t.Errorf("result = %+v", res)
	}

	u, _ := store.Users().FindByEmail(ctx, "a@x.com")
	if u.Role != "" {
		t.Errorf("signup kept role %q", u.Role)
	}
	if u.Password == "pw" {
		t.Error("password stored in plaintext")
	}

	if _, err := svc.Signup(ctx, &model.User{Email: "a@x.com"}, "other"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("second signup err = %v, want ErrEmailTaken", err)
	}
}

func TestConcurrentSignupSingleWinner(t *testing.T) {
	store := memrepo.New()
	svc := NewAuthService(store.Users(), auth.NewTokenService("secret", time.Hour))

	const n = 8
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Signup(context.Background(), &model.User{Email: "race@x.com"}, "pw")
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("%d signups succeeded, want 1", wins)
	}
}

func TestLogin(t *testing.T) {
	store := memrepo.New()
	tokens := auth.NewTokenService("secret", time.Hour)
	svc := NewAuthService(store.Users(), tokens)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, &model.User{Email: "a@x.com"}, "pw"); err != nil {
		t.Fatal(err)
	}

	u, token, err := svc.Login(ctx, "a@x.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.Email != "a@x.com" {
		t.Errorf("user = %+v", u)
	}
	if email, err := tokens.Verify(token); err != nil || email != "a@x.com" {
		t.Errorf("Verify = %q, %v", email, err)
	}

	for _, tc := range []struct{ email, pw string }{
		{"a@x.com", "wrong"},
		{"b@x.com", "pw"},
		{"a@x.com", ""},
	} {
		_, token, err := svc.Login(ctx, tc.email, tc.pw)
		if !errors.Is(err, ErrBadCredentials) || token != "" {
			t.Errorf("Login(%q, %q) = %q, %v", tc.email, tc.pw, token, err)
		}
	}
}

func TestApplyFillsFromProperty(t *testing.T) {
	store := memrepo.New()
	svc := NewApplicationService(store.Applications(), store.Properties())
	ctx := context.Background()

	p := &model.Property{SellerEmail: "s@x.com", Title: "Loft"}
	store.Properties().Insert(ctx, p)

	a := &model.Application{PropertyID: p.ID.Hex(), RenterEmail: "spoof@x.com", SellerEmail: "spoof@x.com"}
	res, err := svc.Apply(ctx, "r@x.com", a)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.InsertedID == "" {
		t.Error("no inserted id")
	}
	if a.RenterEmail != "r@x.com" || a.SellerEmail != "s@x.com" || a.Status != model.StatusPending || a.PropertyTitle != "Loft" {
		t.Errorf("application = %+v", a)
	}
}

func TestApplyDanglingProperty(t *testing.T) {
	store := memrepo.New()
	svc := NewApplicationService(store.Applications(), store.Properties())

	a := &model.Application{PropertyID: "missing", SellerEmail: "s@x.com"}
	if _, err := svc.Apply(context.Background(), "r@x.com", a); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if a.SellerEmail != "s@x.com" {
		t.Errorf("seller = %q", a.SellerEmail)
	}

}

func TestApplyAlwaysPending(t *testing.T) {
	store := memrepo.New()
	svc := NewApplicationService(store.Applications(), store.Properties())

	for _, status := range []model.ApplicationStatus{model.StatusAccepted, model.StatusRejected, "approved"} {
		a := &model.Application{PropertyID: "p1", Status: status}
		if _, err := svc.Apply(context.Background(), "r@x.com", a); err != nil {
			t.Fatalf("Apply(%q): %v", status, err)
		}
		if a.Status != model.StatusPending {
			t.Errorf("Apply(%q) stored status %q", status, a.Status)
		}
	}
}

func TestDecide(t *testing.T) {
	store := memrepo.New()
	apps := store.Applications()
	svc := NewApplicationService(apps, store.Properties())
	ctx := context.Background()

	mine := &model.Application{PropertyID: "p1", RenterEmail: "r@x.com", SellerEmail: "s@x.com", Status: model.StatusPending}
	other := &model.Application{PropertyID: "p2", RenterEmail: "r@x.com", SellerEmail: "t@x.com", Status: model.StatusPending}
	apps.Insert(ctx, mine)
	apps.Insert(ctx, other)

	if _, _, err := svc.Decide(ctx, other.ID.Hex(), "s@x.com", "accepted"); !errors.Is(err, ErrNotSeller) {
		t.Fatalf("foreign application: err = %v, want ErrNotSeller", err)
	}

	res, status, err := svc.Decide(ctx, mine.ID.Hex(), "s@x.com", "accepted")
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if status != model.StatusAccepted || res.ModifiedCount != 1 {
		t.Errorf("status = %q, res = %+v", status, res)
	}

	for _, a := range apps.All() {
		want := model.StatusPending
		if a.ID == mine.ID {
			want = model.StatusAccepted
		}
		if a.Status != want {
			t.Errorf("application %s status = %q, want %q", a.ID.Hex(), a.Status, want)
		}
	}

	if _, _, err := svc.Decide(ctx, mine.ID.Hex(), "s@x.com", "maybe"); !errors.Is(err, model.ErrInvalidStatus) {
		t.Errorf("err = %v, want ErrInvalidStatus", err)
	}
}
