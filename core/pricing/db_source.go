package pricing

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ItemPrice is the database row backing a price table.
type ItemPrice struct {
	ID    uint   `gorm:"column:id;primaryKey;autoIncrement"`
	Name  string `gorm:"column:name;size:128;not null;uniqueIndex"`
	Price int64  `gorm:"column:price;not null;default:0"`
}

// TableName implements gorm's Tabler.
func (ItemPrice) TableName() string {
	return "item_prices"
}

// DBSource loads prices from the item_prices table.
type DBSource struct {
	db *gorm.DB
}

// NewDBSource creates a database-backed source.
func NewDBSource(db *gorm.DB) *DBSource {
	return &DBSource{db: db}
}

func (s *DBSource) Name() string { return SourceDatabase }

// Load reads every row in a single query.
func (s *DBSource) Load(ctx context.Context) (*Table, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	var rows []ItemPrice
	if err := s.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load item prices: %w", err)
	}

	prices := make(map[string]int64, len(rows))
	for _, row := range rows {
		prices[row.Name] = row.Price
	}
	return NewTable(prices), nil
}

// Seed writes every item of t into the item_prices table, creating it if needed.
// Existing rows are updated in place by name.
func Seed(ctx context.Context, db *gorm.DB, t *Table) (int, error) {
	if db == nil {
		return 0, fmt.Errorf("database connection is nil")
	}
	if err := db.WithContext(ctx).AutoMigrate(&ItemPrice{}); err != nil {
		return 0, fmt.Errorf("failed to migrate item_prices: %w", err)
	}

	items := t.Items()
	if len(items) == 0 {
		return 0, nil
	}

	rows := make([]ItemPrice, 0, len(items))
	for _, item := range items {
		rows = append(rows, ItemPrice{Name: item.Name, Price: item.Price})
	}

	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"price"}),
		}).
		CreateInBatches(rows, 100).Error
	if err != nil {
		return 0, fmt.Errorf("failed to seed item prices: %w", err)
	}
	return len(rows), nil
}
