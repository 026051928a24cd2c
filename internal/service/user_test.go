package service_test

import (
	"testing"

	"github.com/saadjs/bmi-cli/internal/service"
)

func TestGetOrCreateUserReusesExisting(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	first, err := service.GetOrCreateUser(sqldb, "Ava")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	second, err := service.GetOrCreateUser(sqldb, "Ava")
	if err != nil {
		t.Fatalf("reuse user: %v", err)
	}
	if first != second {
		t.Fatalf("expected same user id, got %d and %d", first, second)
	}
}

func TestUserNamesAreCaseSensitive(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	upper, err := service.GetOrCreateUser(sqldb, "Bob")
	if err != nil {
		t.Fatalf("create Bob: %v", err)
	}
	lower, err := service.GetOrCreateUser(sqldb, "bob")
	if err != nil {
		t.Fatalf("create bob: %v", err)
	}
	if upper == lower {
		t.Fatalf("expected distinct users for Bob and bob")
	}
}

func TestFindUserByNameMissing(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	if _, err := service.FindUserByName(sqldb, "nobody"); err == nil {
		t.Fatalf("expected not-found error")
	}
}

func TestListUsersOrdersCaseInsensitively(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	for _, name := range []string{"charlie", "Alice", "bob"} {
		if _, err := service.GetOrCreateUser(sqldb, name); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	users, err := service.ListUsers(sqldb)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
	got := []string{users[0].Name, users[1].Name, users[2].Name}
	want := []string{"Alice", "bob", "charlie"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}
