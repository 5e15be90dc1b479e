package product

import (
	"encoding/json"

	"gorm.io/datatypes"

	"atelier.GO/catalog"
)

// Product represents the catalog_product table.
type Product struct {
	ID          string         `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	Title       string         `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Description string         `gorm:"column:description;type:text" json:"description"`
	Price       float64        `gorm:"column:price;type:decimal(12,4);not null;default:0" json:"price"`
	Discount    int            `gorm:"column:discount;not null;default:0" json:"discount"`
	Category    string         `gorm:"column:category;type:varchar(64);index" json:"category"`
	Color       string         `gorm:"column:color;type:varchar(64)" json:"color"`
	Material    string         `gorm:"column:material;type:varchar(128)" json:"material"`
	Sizes       datatypes.JSON `gorm:"column:sizes" json:"sizes"`
	Rating      float64        `gorm:"column:rating;type:decimal(3,2);not null;default:0" json:"rating"`
	Reviews     int            `gorm:"column:reviews;not null;default:0" json:"reviews"`
}

func (Product) TableName() string {
	return "catalog_product"
}

// ToCatalog maps the row to the canonical catalog shape.
func (p Product) ToCatalog() catalog.Product {
	var sizes []string
	if len(p.Sizes) > 0 {
		_ = json.Unmarshal(p.Sizes, &sizes)
	}
	return catalog.Product{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Discount:    p.Discount,
		Category:    p.Category,
		Color:       p.Color,
		Material:    p.Material,
		Sizes:       sizes,
		Rating:      p.Rating,
		Reviews:     p.Reviews,
	}
}

// FromCatalog maps a canonical product to a row.
func FromCatalog(p catalog.Product) Product {
	sizes, _ := json.Marshal(p.Sizes)
	return Product{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Discount:    p.Discount,
		Category:    p.Category,
		Color:       p.Color,
		Material:    p.Material,
		Sizes:       datatypes.JSON(sizes),
		Rating:      p.Rating,
		Reviews:     p.Reviews,
	}
}
