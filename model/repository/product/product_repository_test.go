package product

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"atelier.GO/catalog"
	productEntity "atelier.GO/model/entity/product"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&productEntity.Product{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestProductRepository_CRUD(t *testing.T) {
	repo := NewProductRepository(testDB(t))

	all, err := repo.FindAll()
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("FindAll empty DB: got %d, want 0", len(all))
	}

	row := productEntity.FromCatalog(catalog.Product{
		ID: "hui-001", Title: "Huipil", Price: 45, Discount: 10,
		Category: "blusas", Color: "blanco", Material: "algodón",
		Sizes: []string{"S", "M"}, Rating: 4.8, Reviews: 24,
	})
	if err := repo.Create(&row); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := repo.FindByID("hui-001")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	back := found.ToCatalog()
	if back.Title != "Huipil" || back.Price != 45 || len(back.Sizes) != 2 {
		t.Errorf("round trip lost fields: %+v", back)
	}

	found.Title = "Huipil bordado"
	if err := repo.Update(found); err != nil {
		t.Fatalf("Update: %v", err)
	}
	again, _ := repo.FindByID("hui-001")
	if again.Title != "Huipil bordado" {
		t.Errorf("Update: title = %q", again.Title)
	}

	if err := repo.Delete("hui-001"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n, _ := repo.Count(); n != 0 {
		t.Errorf("Count after delete = %d, want 0", n)
	}
}

func TestProductRepository_Upsert(t *testing.T) {
	repo := NewProductRepository(testDB(t))

	row := productEntity.FromCatalog(catalog.Product{ID: "p1", Title: "v1", Price: 10})
	if err := repo.Upsert(&row); err != nil {
		t.Fatalf("Upsert insert: %v", err)
	}
	row2 := productEntity.FromCatalog(catalog.Product{ID: "p1", Title: "v2", Price: 12})
	if err := repo.Upsert(&row2); err != nil {
		t.Fatalf("Upsert update: %v", err)
	}
	if n, _ := repo.Count(); n != 1 {
		t.Fatalf("Count = %d, want 1 after double upsert", n)
	}
	found, _ := repo.FindByID("p1")
	if found.Title != "v2" || found.Price != 12 {
		t.Errorf("Upsert did not replace: %+v", found)
	}
}

func TestSource_LoadsCatalog(t *testing.T) {
	repo := NewProductRepository(testDB(t))
	for _, id := range []string{"a", "b"} {
		row := productEntity.FromCatalog(catalog.Product{ID: id, Title: id, Price: 1})
		if err := repo.Create(&row); err != nil {
			t.Fatalf("Create %s: %v", id, err)
		}
	}
	products, err := NewSource(repo).Products(context.Background())
	if err != nil {
		t.Fatalf("Products: %v", err)
	}
	if len(products) != 2 {
		t.Errorf("got %d products, want 2", len(products))
	}
	if err := catalog.ValidateAll(products); err != nil {
		t.Errorf("DB source yields invalid catalog: %v", err)
	}
}
