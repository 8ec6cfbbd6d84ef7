package menu

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// imageOverride and createdItem are the rows of the local customization
// database. Created items are stored as a JSON document so the catalog
// shape can evolve without migrations.
type imageOverride struct {
	ItemType  string `gorm:"primaryKey"`
	ItemID    int    `gorm:"primaryKey;autoIncrement:false"`
	ImageURL  string `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName moves overrides off the id-only table used before the type
// became part of the key.
func (imageOverride) TableName() string { return "item_image_overrides" }

type createdItem struct {
	ID        int    `gorm:"primaryKey;autoIncrement:false"`
	Document  string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

type SQLiteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) (*SQLiteRepository, error) {
	if err := db.AutoMigrate(&imageOverride{}, &createdItem{}); err != nil {
		return nil, err
	}
	return &SQLiteRepository{db: db}, nil
}

// --------------------------------------------------
// IMAGE OVERRIDES
// --------------------------------------------------

func (r *SQLiteRepository) LoadImageOverrides(ctx context.Context) (map[ImageKey]string, error) {
	var rows []imageOverride
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[ImageKey]string, len(rows))
	for _, row := range rows {
		out[ImageKey{Type: ItemType(row.ItemType), ID: row.ItemID}] = row.ImageURL
	}
	return out, nil
}

func (r *SQLiteRepository) SaveImageOverride(ctx context.Context, key ImageKey, imageURL string) error {
	row := imageOverride{ItemType: string(key.Type), ItemID: key.ID, ImageURL: imageURL}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "item_type"}, {Name: "item_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"image_url", "updated_at"}),
		}).
		Create(&row).Error
}

func (r *SQLiteRepository) ClearImageOverrides(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&imageOverride{}).Error
}

// --------------------------------------------------
// CREATED ITEMS
// --------------------------------------------------

func (r *SQLiteRepository) LoadCreatedItems(ctx context.Context) ([]Item, error) {
	var rows []createdItem
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		var it Item
		if err := json.Unmarshal([]byte(row.Document), &it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func (r *SQLiteRepository) SaveCreatedItem(ctx context.Context, item Item) error {
	doc, err := json.Marshal(item)
	if err != nil {
		return err
	}

	row := createdItem{ID: item.ID, Document: string(doc)}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
}

func (r *SQLiteRepository) ClearCreatedItems(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&createdItem{}).Error
}
