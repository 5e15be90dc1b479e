package gallery

// GalleryImage represents the gallery_image table.
type GalleryImage struct {
	ImageID   uint   `gorm:"column:image_id;primaryKey;autoIncrement" json:"image_id"`
	Title     string `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Path      string `gorm:"column:path;type:varchar(512);not null" json:"path"`
	ThumbPath string `gorm:"column:thumb_path;type:varchar(512)" json:"thumb_path"`
	WebpPath  string `gorm:"column:webp_path;type:varchar(512)" json:"webp_path"`
	Position  uint   `gorm:"column:position;not null;default:0" json:"position"`
}

func (GalleryImage) TableName() string {
	return "gallery_image"
}
