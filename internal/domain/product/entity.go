package product

import "time"

// Product is a storefront listing. Price is stored as a decimal string so no
// precision is lost between the form, the DB and the JSON response.
type Product struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description *string   `json:"description" gorm:"type:text"`
	Price       string    `json:"price" gorm:"type:numeric(12,2);not null"`
	Currency    string    `json:"currency" gorm:"size:10;not null;default:VND"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	Images []ProductImage `json:"images,omitempty" gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string { return "products" }

// ProductImage is one stored object attached to a product. Rows cascade away
// with their product.
type ProductImage struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	ProductID int64     `json:"product_id" gorm:"not null;index;constraint:OnDelete:CASCADE"`
	Key       string    `json:"key" gorm:"size:1024;not null;check:key <> ''"`
	URL       *string   `json:"url" gorm:"type:text"`
	Alt       *string   `json:"alt" gorm:"size:255"`
	Mime      *string   `json:"mime" gorm:"size:100"`
	Ordering  int       `json:"ordering" gorm:"not null;default:0"`
	IsPrimary bool      `json:"is_primary" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Product *Product `json:"-" gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (ProductImage) TableName() string { return "product_images" }
