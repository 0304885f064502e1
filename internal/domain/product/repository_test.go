package product

import (
	"context"
	"testing"
)

func TestCreateWithImagesIsAtomic(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	p := &Product{Name: "Shoes", Price: "300000", Currency: "VND"}
	images := []ProductImage{
		{Key: "products/5-eee-0.jpg"},
		{Key: ""}, // violates the key <> '' check, forcing the tx to roll back
	}

	if _, err := repo.CreateWithImages(context.Background(), p, images); err == nil {
		t.Fatal("expected constraint violation, got nil")
	}

	var productCount, imageCount int64
	db.Model(&Product{}).Count(&productCount)
	db.Model(&ProductImage{}).Count(&imageCount)
	if productCount != 0 {
		t.Fatalf("product row leaked out of failed transaction: %d rows", productCount)
	}
	if imageCount != 0 {
		t.Fatalf("image rows leaked out of failed transaction: %d rows", imageCount)
	}
}

func TestListNewestFirstWithGroupedImages(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	first := &Product{Name: "Older", Price: "100", Currency: "VND"}
	if _, err := repo.CreateWithImages(context.Background(), first, []ProductImage{{Key: "k1"}}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	second := &Product{Name: "Newer", Price: "200", Currency: "VND"}
	if _, err := repo.CreateWithImages(context.Background(), second, []ProductImage{
		{Key: "k3", Ordering: 1},
		{Key: "k2", Ordering: 0},
	}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	products, err := repo.List(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].ID != second.ID {
		t.Errorf("expected newest product first, got id %d", products[0].ID)
	}
	imgs := products[0].Images
	if len(imgs) != 2 || imgs[0].Key != "k2" || imgs[1].Key != "k3" {
		t.Errorf("images not ordered by ordering: %+v", imgs)
	}
}
