package main

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"storefront/internal/database"
	"storefront/internal/domain/auth"
	"storefront/internal/domain/product"
)

func main() {
	db, err := database.Connect("storefront.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db,
		&auth.User{},
		&product.Product{},
		&product.ProductImage{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM product_images")
	db.Exec("DELETE FROM products")
	db.Exec("DELETE FROM users")

	log.Println("Creating demo user...")
	hash, _ := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	user := auth.User{
		Email:        "demo@storefront.vn",
		PasswordHash: string(hash),
		Name:         "Demo Seller",
	}
	db.Create(&user)
	log.Println("Demo user created: demo@storefront.vn / demo1234")

	log.Println("Creating demo products...")
	demo := []struct {
		name     string
		price    string
		images   int
		currency string
	}{
		{"Áo thun basic", "100000", 3, "VND"},
		{"Quần jeans slim", "350000", 2, "VND"},
		{"Giày sneaker trắng", "790000", 4, "VND"},
		{"Túi tote canvas", "150000", 1, "VND"},
	}

	for i, d := range demo {
		p := product.Product{
			Name:     d.name,
			Price:    d.price,
			Currency: d.currency,
		}
		if err := db.Create(&p).Error; err != nil {
			log.Fatal("seed product failed:", err)
		}
		for ord := 0; ord < d.images; ord++ {
			key := fmt.Sprintf("products/seed-%d-%d.jpg", i, ord)
			url := "https://storefront-demo.s3.ap-southeast-1.amazonaws.com/" + key
			img := product.ProductImage{
				ProductID: p.ID,
				Key:       key,
				URL:       &url,
				Ordering:  ord,
				IsPrimary: ord == 0,
			}
			if err := db.Create(&img).Error; err != nil {
				log.Fatal("seed image failed:", err)
			}
		}
		log.Printf("Seeded %q with %d images", d.name, d.images)
	}

	log.Println("Done.")
}
