package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/aditigupta-200/ESG-Questionnaire/internal/api"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "esg_test.db")
	sqliteDB, err := sql.Open("sqlite3", "file:"+filepath.ToSlash(path))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqliteDB.Close() })
	if err := RunMigrations(sqliteDB, ""); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	store, err := NewSQLiteStore(sqliteDB)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	return store
}

func addTestUser(t *testing.T, store *SQLiteStore, id, email string) {
	t.Helper()
	if err := store.AddUser(&api.User{ID: id, Name: "Test", Email: email, PassHash: []byte("hash")}); err != nil {
		t.Fatalf("add user %s: %v", id, err)
	}
}

func TestSQLiteUserUniqueEmail(t *testing.T) {
	store := newTestStore(t)
	addTestUser(t, store, "u1", "a@example.com")

	err := store.AddUser(&api.User{ID: "u2", Name: "Other", Email: "A@example.com", PassHash: []byte("x")})
	if err != api.ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	u, err := store.FindUserByEmail("a@EXAMPLE.com")
	if err != nil || u == nil {
		t.Fatalf("find user: %+v, %v", u, err)
	}
	if u.ID != "u1" || u.Name != "Test" {
		t.Fatalf("existing row altered: %+v", u)
	}
	missing, err := store.FindUserByEmail("nobody@example.com")
	if err != nil || missing != nil {
		t.Fatalf("expected nil for unknown email, got %+v, %v", missing, err)
	}
}

func TestSQLiteUpsertResponseMerge(t *testing.T) {
	store := newTestStore(t)
	addTestUser(t, store, "u1", "a@example.com")

	stored, err := store.UpsertResponse(&api.Response{
		UserID:          "u1",
		FinancialYear:   "FY2023-24",
		CarbonEmissions: fptr(50),
		TotalRevenue:    fptr(1000),
		TotalEmployees:  iptr(100),
		CarbonIntensity: fptr(0.05),
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if stored.CarbonIntensity == nil || *stored.CarbonIntensity != 0.05 {
		t.Fatalf("stored carbon intensity = %v", stored.CarbonIntensity)
	}

	// Partial update: untouched columns survive, present ones change.
	merged, err := store.UpsertResponse(&api.Response{
		UserID:          "u1",
		FinancialYear:   "FY2023-24",
		TotalRevenue:    fptr(2000),
		CarbonIntensity: fptr(0.025),
	})
	if err != nil {
		t.Fatalf("upsert (merge): %v", err)
	}
	if merged.CarbonEmissions == nil || *merged.CarbonEmissions != 50 {
		t.Fatalf("merge lost carbon emissions: %+v", merged)
	}
	if merged.TotalEmployees == nil || *merged.TotalEmployees != 100 {
		t.Fatalf("merge lost employees: %+v", merged)
	}
	if merged.TotalRevenue == nil || *merged.TotalRevenue != 2000 {
		t.Fatalf("merge did not apply revenue: %+v", merged)
	}
	if merged.CarbonIntensity == nil || *merged.CarbonIntensity != 0.025 {
		t.Fatalf("merge did not apply derived field: %+v", merged)
	}
	if merged.CreatedAt.IsZero() || merged.UpdatedAt.Before(merged.CreatedAt) {
		t.Fatalf("timestamps wrong: created=%v updated=%v", merged.CreatedAt, merged.UpdatedAt)
	}

	list, err := store.ListResponses("u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("upsert duplicated the row: %d", len(list))
	}
}

func TestSQLiteListOrderAndIsolation(t *testing.T) {
	store := newTestStore(t)
	addTestUser(t, store, "alice", "alice@example.com")
	addTestUser(t, store, "bob", "bob@example.com")

	for _, year := range []string{"FY2024-25", "FY2021-22", "FY2023-24"} {
		if _, err := store.UpsertResponse(&api.Response{UserID: "alice", FinancialYear: year}); err != nil {
			t.Fatalf("upsert %s: %v", year, err)
		}
	}
	if _, err := store.UpsertResponse(&api.Response{UserID: "bob", FinancialYear: "FY2023-24", TotalRevenue: fptr(7)}); err != nil {
		t.Fatalf("upsert bob: %v", err)
	}

	list, err := store.ListResponses("alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"FY2021-22", "FY2023-24", "FY2024-25"}
	if len(list) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(list))
	}
	for i, y := range want {
		if list[i].FinancialYear != y {
			t.Fatalf("list[%d] = %s, want %s", i, list[i].FinancialYear, y)
		}
		if list[i].TotalRevenue != nil {
			t.Fatalf("bob's data leaked into alice's list: %+v", list[i])
		}
	}
}

func TestSQLiteDeleteResponse(t *testing.T) {
	store := newTestStore(t)
	addTestUser(t, store, "u1", "a@example.com")
	if _, err := store.UpsertResponse(&api.Response{UserID: "u1", FinancialYear: "FY2021-22"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	ok, err := store.DeleteResponse("u1", "FY2021-22")
	if err != nil || !ok {
		t.Fatalf("delete = %v, %v", ok, err)
	}
	got, err := store.GetResponse("u1", "FY2021-22")
	if err != nil || got != nil {
		t.Fatalf("expected nil after delete, got %+v, %v", got, err)
	}
	ok, err = store.DeleteResponse("u1", "FY2021-22")
	if err != nil || ok {
		t.Fatalf("second delete should match nothing: %v, %v", ok, err)
	}
}
