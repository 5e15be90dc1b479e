package product

import (
	"context"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"atelier.GO/catalog"
	productEntity "atelier.GO/model/entity/product"
)

type ProductRepository struct {
	db *gorm.DB
}

var (
	repoInstance *ProductRepository
	repoOnce     sync.Once
)

// GetProductRepository returns the singleton repository for the DB.
func GetProductRepository(db *gorm.DB) *ProductRepository {
	repoOnce.Do(func() {
		repoInstance = NewProductRepository(db)
	})
	return repoInstance
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) FindAll() ([]productEntity.Product, error) {
	var products []productEntity.Product
	err := r.db.Order("id").Find(&products).Error
	return products, err
}

func (r *ProductRepository) FindByID(id string) (*productEntity.Product, error) {
	var p productEntity.Product
	if err := r.db.Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Create(p *productEntity.Product) error {
	return r.db.Create(p).Error
}

func (r *ProductRepository) Update(p *productEntity.Product) error {
	return r.db.Save(p).Error
}

// Upsert inserts or fully replaces a product row by id.
func (r *ProductRepository) Upsert(p *productEntity.Product) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(p).Error
}

// UpsertBatch upserts rows in batches of batchSize.
func (r *ProductRepository) UpsertBatch(products []productEntity.Product, batchSize int) error {
	if len(products) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).CreateInBatches(products, batchSize).Error
}

func (r *ProductRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&productEntity.Product{}).Error
}

func (r *ProductRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&productEntity.Product{}).Count(&n).Error
	return n, err
}

// Source adapts the repository to catalog.Source so the snapshot can load
// from the database like from any other source.
type Source struct {
	repo *ProductRepository
}

func NewSource(repo *ProductRepository) *Source {
	return &Source{repo: repo}
}

func (s *Source) Products(ctx context.Context) ([]catalog.Product, error) {
	rows, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}
	out := make([]catalog.Product, len(rows))
	for i, row := range rows {
		out[i] = row.ToCatalog()
	}
	return out, nil
}
