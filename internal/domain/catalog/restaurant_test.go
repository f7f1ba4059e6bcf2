package catalog

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/mealdash/mealdash/internal/infra/sqlite"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.NewDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck
	if err := sqlite.MigrateUp(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestCreateAndGet(t *testing.T) {
	svc := NewRestaurantService(newTestDB(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRestaurantInput{
		Name:       "Udupi Palace",
		Cuisines:   []string{"South Indian", "Tiffin"},
		AreaName:   "Jayanagar",
		AvgRating:  4.3,
		CostForTwo: 300,
		Veg:        true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("empty id")
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Udupi Palace" || !got.Veg || len(got.Cuisines) != 2 {
		t.Errorf("got %+v", got)
	}
}

func TestGetNotFound(t *testing.T) {
	svc := NewRestaurantService(newTestDB(t))
	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateRequiresName(t *testing.T) {
	svc := NewRestaurantService(newTestDB(t))
	if _, err := svc.Create(context.Background(), CreateRestaurantInput{}); err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestListAllStableOrder(t *testing.T) {
	svc := NewRestaurantService(newTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"Zaika", "Anand Bhavan", "Meghana Foods"} {
		if _, err := svc.Create(ctx, CreateRestaurantInput{Name: name}); err != nil {
			t.Fatalf("create %q: %v", name, err)
		}
	}

	all, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("listAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].Name != "Anand Bhavan" || all[2].Name != "Zaika" {
		t.Errorf("order = %q, %q, %q", all[0].Name, all[1].Name, all[2].Name)
	}
}

func TestGetByIDsPreservesOrderAndSkipsUnknown(t *testing.T) {
	svc := NewRestaurantService(newTestDB(t))
	ctx := context.Background()

	a, _ := svc.Create(ctx, CreateRestaurantInput{Name: "A"})
	b, _ := svc.Create(ctx, CreateRestaurantInput{Name: "B"})

	got, err := svc.GetByIDs(ctx, []string{b.ID, "ghost", a.ID, b.ID})
	if err != nil {
		t.Fatalf("getByIDs: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (unknowns skipped, dupes removed)", len(got))
	}
	if got[0].ID != b.ID || got[1].ID != a.ID {
		t.Errorf("order = %q, %q, want b then a", got[0].ID, got[1].ID)
	}
}

func TestListPagination(t *testing.T) {
	svc := NewRestaurantService(newTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		if _, err := svc.Create(ctx, CreateRestaurantInput{Name: name}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	page, err := svc.List(ctx, 2, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page) != 2 || page[0].Name != "B" {
		t.Errorf("page = %+v", page)
	}
}
