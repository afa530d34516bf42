package repositories

import (
	"aftech-backend/models"

	"gorm.io/gorm"
)

type StockTakeRepository struct {
	db *gorm.DB
}

func NewStockTakeRepository(db *gorm.DB) *StockTakeRepository {
	return &StockTakeRepository{db}
}

// stockTakeDetail loads everything display names and lines need.
func stockTakeDetail(db *gorm.DB) *gorm.DB {
	return db.Preload("Location.Technician").
		Preload("Location.Customer").
		Preload("Items.ItemType").
		Preload("Items.Serials")
}

func (r *StockTakeRepository) List(userID *uint) ([]models.StockTakeOverview, error) {
	q := r.db.Preload("Location").Order("created_at DESC, id DESC")
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	var out []models.StockTakeOverview
	err := q.Find(&out).Error
	return out, err
}

func (r *StockTakeRepository) GetByID(db *gorm.DB, id uint) (*models.StockTakeOverview, error) {
	if db == nil {
		db = r.db
	}
	var take models.StockTakeOverview
	if err := stockTakeDetail(db).First(&take, id).Error; err != nil {
		return nil, err
	}
	return &take, nil
}

// StockTakeProgress compares the counted quantity of each line with the
// serials captured for it.
type StockTakeProgress struct {
	ItemTypeID     uint    `json:"item_type"`
	ItemTypeName   string  `json:"item_type_name"`
	RequiresSerial bool    `json:"requires_serial"`
	Quantity       int     `json:"quantity"`
	SerialCount    int     `json:"serial_count"`
	ProgressSerial float64 `json:"progress_serial"`
}

func (r *StockTakeRepository) Progress(stockTakeID uint) ([]StockTakeProgress, error) {
	sql := `WITH serial_counts AS
	(SELECT s.stock_take_item_id, COUNT(s.id) AS serial_count
	FROM stock_take_item_serials s
	GROUP BY s.stock_take_item_id)

	SELECT i.item_type_id, t.name AS item_type_name, t.requires_serial,
	i.quantity, COALESCE(sc.serial_count, 0) AS serial_count,
	CASE WHEN i.quantity > 0 THEN (COALESCE(sc.serial_count, 0) * 100.0) / i.quantity ELSE 0 END AS progress_serial
	FROM stock_take_items i
	JOIN item_types t ON t.id = i.item_type_id
	LEFT JOIN serial_counts sc ON sc.stock_take_item_id = i.id
	WHERE i.stock_take_id = ?
	ORDER BY t.name ASC`

	var progress []StockTakeProgress
	if err := r.db.Raw(sql, stockTakeID).Scan(&progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}
