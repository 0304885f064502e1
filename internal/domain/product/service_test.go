package product

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:product_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(&Product{}, &ProductImage{}); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return db
}

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewService(NewRepository(db), nil, nil), db
}

func doneImage(key string) ImagePayload {
	return ImagePayload{
		Key:    key,
		URL:    "https://shop-images.s3.ap-southeast-1.amazonaws.com/" + key,
		Status: StatusDone,
	}
}

func TestCreatePersistsProductWithOrderedImages(t *testing.T) {
	svc, db := setupTestService(t)

	p, err := svc.Create(context.Background(), &CreateProductRequest{
		Name:     "Shirt",
		Price:    "100000",
		Currency: "VND",
		Images: []ImagePayload{
			doneImage("products/1-aaa-0.jpg"),
			doneImage("products/1-aaa-1.jpg"),
			doneImage("products/1-aaa-2.jpg"),
		},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	var count int64
	db.Model(&Product{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 product row, got %d", count)
	}

	var images []ProductImage
	if err := db.Where("product_id = ?", p.ID).Order("ordering ASC").Find(&images).Error; err != nil {
		t.Fatalf("failed to load images: %v", err)
	}
	if len(images) != 3 {
		t.Fatalf("expected 3 image rows, got %d", len(images))
	}
	for i, img := range images {
		if img.Ordering != i {
			t.Errorf("image %d: ordering %d, want %d", i, img.Ordering, i)
		}
		want := fmt.Sprintf("products/1-aaa-%d.jpg", i)
		if img.Key != want {
			t.Errorf("image %d: key %q, want %q (original relative order lost)", i, img.Key, want)
		}
	}
	if !images[0].IsPrimary {
		t.Error("first image should be primary when none is flagged")
	}
}

func TestCreateDropsNonDoneImagesSilently(t *testing.T) {
	svc, db := setupTestService(t)

	p, err := svc.Create(context.Background(), &CreateProductRequest{
		Name:     "Hat",
		Price:    "49000",
		Currency: "VND",
		Images: []ImagePayload{
			{Status: StatusUploading, FileName: "still-going.jpg"},
			doneImage("products/2-bbb-1.jpg"),
			{Status: StatusError, FileName: "failed.jpg"},
		},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	var images []ProductImage
	db.Where("product_id = ?", p.ID).Find(&images)
	if len(images) != 1 {
		t.Fatalf("expected only the done image persisted, got %d rows", len(images))
	}
	if images[0].Key != "products/2-bbb-1.jpg" {
		t.Fatalf("unexpected persisted key %q", images[0].Key)
	}
}

func TestCreateRejectsWhenNoDoneImages(t *testing.T) {
	svc, db := setupTestService(t)

	_, err := svc.Create(context.Background(), &CreateProductRequest{
		Name:     "Hat",
		Price:    "49000",
		Currency: "VND",
		Images: []ImagePayload{
			{Status: StatusUploading, FileName: "still-going.jpg"},
			{Status: StatusError, FileName: "failed.jpg"},
		},
	})
	if !errors.Is(err, ErrNoUsableImages) {
		t.Fatalf("expected ErrNoUsableImages, got %v", err)
	}

	var count int64
	db.Model(&Product{}).Count(&count)
	if count != 0 {
		t.Fatalf("validation failure must not persist anything, found %d products", count)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := setupTestService(t)
	images := []ImagePayload{doneImage("products/3-ccc-0.jpg")}

	cases := []struct {
		name string
		req  CreateProductRequest
		want error
	}{
		{"empty name", CreateProductRequest{Name: "  ", Price: "100", Currency: "VND", Images: images}, ErrNameRequired},
		{"non-numeric price", CreateProductRequest{Name: "X", Price: "abc", Currency: "VND", Images: images}, ErrInvalidPrice},
		{"zero price", CreateProductRequest{Name: "X", Price: "0", Currency: "VND", Images: images}, ErrInvalidPrice},
		{"negative price", CreateProductRequest{Name: "X", Price: "-5", Currency: "VND", Images: images}, ErrInvalidPrice},
		{"empty currency", CreateProductRequest{Name: "X", Price: "100", Currency: "", Images: images}, ErrCurrencyRequired},
		{"no images", CreateProductRequest{Name: "X", Price: "100", Currency: "VND"}, ErrNoUsableImages},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), &tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateHonorsExplicitOrderingAndPrimary(t *testing.T) {
	svc, db := setupTestService(t)

	two := 2
	yes := true
	first := doneImage("products/4-ddd-0.jpg")
	second := doneImage("products/4-ddd-1.jpg")
	second.Ordering = &two
	second.IsPrimary = &yes

	p, err := svc.Create(context.Background(), &CreateProductRequest{
		Name:     "Bag",
		Price:    "250000",
		Currency: "VND",
		Images:   []ImagePayload{first, second},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	var images []ProductImage
	db.Where("product_id = ?", p.ID).Order("ordering ASC").Find(&images)
	if images[0].IsPrimary {
		t.Error("first image should not be primary when another is flagged")
	}
	if images[1].Ordering != 2 || !images[1].IsPrimary {
		t.Errorf("explicit ordering/primary not honored: %+v", images[1])
	}
}
