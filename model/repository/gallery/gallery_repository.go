package gallery

import (
	"sync"

	"gorm.io/gorm"

	galleryEntity "atelier.GO/model/entity/gallery"
)

type GalleryRepository struct {
	db *gorm.DB
}

var (
	repoInstance *GalleryRepository
	repoOnce     sync.Once
)

// GetGalleryRepository returns the singleton repository for the DB.
func GetGalleryRepository(db *gorm.DB) *GalleryRepository {
	repoOnce.Do(func() {
		repoInstance = NewGalleryRepository(db)
	})
	return repoInstance
}

func NewGalleryRepository(db *gorm.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

func (r *GalleryRepository) FindAll() ([]galleryEntity.GalleryImage, error) {
	var images []galleryEntity.GalleryImage
	err := r.db.Order("position, image_id").Find(&images).Error
	return images, err
}

func (r *GalleryRepository) FindByID(id uint) (*galleryEntity.GalleryImage, error) {
	var img galleryEntity.GalleryImage
	if err := r.db.First(&img, id).Error; err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *GalleryRepository) Create(img *galleryEntity.GalleryImage) error {
	return r.db.Create(img).Error
}

func (r *GalleryRepository) Delete(id uint) error {
	return r.db.Delete(&galleryEntity.GalleryImage{}, id).Error
}
