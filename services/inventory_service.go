package services

import (
	"aftech-backend/models"
	"aftech-backend/repositories"
	"aftech-backend/utils"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ItemTypeInput struct {
	Name           string  `json:"name" validate:"required,max=100"`
	Barcode        *string `json:"barcode" validate:"omitempty,max=50"`
	RequiresSerial bool    `json:"requires_serial"`
	IsBulk         bool    `json:"is_bulk"`
}

type StockStatusInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

type StockLocationInput struct {
	Name        string `json:"name" validate:"max=255"`
	Region      uint   `json:"region" validate:"required"`
	Technician  *uint  `json:"technician"`
	Customer    *uint  `json:"customer"`
	IsWarehouse bool   `json:"is_warehouse"`
}

type StockTakeInput struct {
	User     uint `json:"user"`
	Location uint `json:"location" validate:"required"`
}

type StockTakeItemInput struct {
	StockTake uint `json:"stock_take" validate:"required"`
	ItemType  uint `json:"item_type" validate:"required"`
	Quantity  uint `json:"quantity"`
}

type StockTakeSerialInput struct {
	StockTakeItem uint   `json:"stock_take_item" validate:"required"`
	SerialNumber  string `json:"serial_number" validate:"required,max=64"`
}

// StockTakeSubmission records a whole count at once.
type StockTakeSubmission struct {
	User     uint            `json:"user"`
	Location uint            `json:"location" validate:"required"`
	Items    []StockTakeLine `json:"items" validate:"required,min=1,dive"`
}

type StockTakeLine struct {
	ItemType uint     `json:"item_type" validate:"required"`
	Quantity uint     `json:"quantity"`
	Serials  []string `json:"serials"`
}

const (
	uniqueItemPerTake   = "The fields stock_take, item_type must make a unique set."
	uniqueSerialPerLine = "The fields stock_take_item, serial_number must make a unique set."
)

type InventoryService struct {
	db   *gorm.DB
	repo *repositories.StockTakeRepository
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db, repo: repositories.NewStockTakeRepository(db)}
}

func (s *InventoryService) ListItemTypes(ctx context.Context) ([]models.ItemType, error) {
	var out []models.ItemType
	err := s.db.WithContext(ctx).Order("name").Find(&out).Error
	return out, err
}

func (s *InventoryService) CreateItemType(ctx context.Context, in ItemTypeInput) (*models.ItemType, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Barcode != nil {
		b := strings.TrimSpace(*in.Barcode)
		in.Barcode = &b
		if b == "" {
			in.Barcode = nil
		}
	}
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	item := models.ItemType{
		Name:           in.Name,
		Barcode:        in.Barcode,
		RequiresSerial: in.RequiresSerial,
		IsBulk:         in.IsBulk,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if n, err := countWhere(tx, &models.ItemType{}, "name = ?", item.Name); err != nil {
			return err
		} else if n > 0 {
			return utils.NewValidationError("name", "item type with this name already exists.")
		}
		if item.Barcode != nil {
			if n, err := countWhere(tx, &models.ItemType{}, "barcode = ?", *item.Barcode); err != nil {
				return err
			} else if n > 0 {
				return utils.NewValidationError("barcode", "item type with this barcode already exists.")
			}
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *InventoryService) ListStockStatuses(ctx context.Context) ([]models.StockStatus, error) {
	var out []models.StockStatus
	err := s.db.WithContext(ctx).Order("name").Find(&out).Error
	return out, err
}

func (s *InventoryService) CreateStockStatus(ctx context.Context, in StockStatusInput) (*models.StockStatus, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	status := models.StockStatus{Name: in.Name}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if n, err := countWhere(tx, &models.StockStatus{}, "name = ?", status.Name); err != nil {
			return err
		} else if n > 0 {
			return utils.NewValidationError("name", "stock status with this name already exists.")
		}
		return tx.Create(&status).Error
	})
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func locationDetail(db *gorm.DB) *gorm.DB {
	return db.Preload("Technician").Preload("Customer")
}

func (s *InventoryService) ListLocations(ctx context.Context, regionID *uint) ([]models.StockLocation, error) {
	q := locationDetail(s.db.WithContext(ctx)).Order("id")
	if regionID != nil {
		q = q.Where("region_id = ?", *regionID)
	}
	var out []models.StockLocation
	err := q.Find(&out).Error
	return out, err
}

func (s *InventoryService) GetLocation(ctx context.Context, id uint) (*models.StockLocation, error) {
	var location models.StockLocation
	if err := ensureExists(locationDetail(s.db.WithContext(ctx)), &location, id); err != nil {
		return nil, err
	}
	return &location, nil
}

// SaveLocation creates (id == 0) or replaces a stock location.
func (s *InventoryService) SaveLocation(ctx context.Context, id uint, in StockLocationInput) (*models.StockLocation, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	var saved models.StockLocation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		checks := []refCheck{{"region", &models.Region{}, in.Region}}
		if in.Technician != nil {
			checks = append(checks, refCheck{"technician", &models.Technician{}, *in.Technician})
		}
		if in.Customer != nil {
			checks = append(checks, refCheck{"customer", &models.Customer{}, *in.Customer})
		}
		if err := checkRefs(tx, checks...); err != nil {
			return err
		}

		location := models.StockLocation{}
		if id != 0 {
			if err := ensureExists(tx, &location, id); err != nil {
				return err
			}
		}
		location.Name = in.Name
		location.RegionID = in.Region
		location.TechnicianID = in.Technician
		location.CustomerID = in.Customer
		location.IsWarehouse = in.IsWarehouse
		location.Technician, location.Customer = nil, nil
		if err := tx.Omit(clause.Associations).Save(&location).Error; err != nil {
			return err
		}
		return locationDetail(tx).First(&saved, location.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *InventoryService) ListStockTakes(ctx context.Context, userID *uint) ([]models.StockTakeOverview, error) {
	return repositories.NewStockTakeRepository(s.db.WithContext(ctx)).List(userID)
}

func (s *InventoryService) GetStockTake(ctx context.Context, id uint) (*models.StockTakeOverview, error) {
	take, err := s.repo.GetByID(s.db.WithContext(ctx), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return take, err
}

func (s *InventoryService) StockTakeProgress(ctx context.Context, id uint) ([]repositories.StockTakeProgress, error) {
	if err := ensureExists(s.db.WithContext(ctx), &models.StockTakeOverview{}, id); err != nil {
		return nil, err
	}
	return repositories.NewStockTakeRepository(s.db.WithContext(ctx)).Progress(id)
}

func (s *InventoryService) CreateStockTake(ctx context.Context, in StockTakeInput) (*models.StockTakeOverview, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	var created *models.StockTakeOverview
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkRefs(tx,
			refCheck{"user", &models.User{}, in.User},
			refCheck{"location", &models.StockLocation{}, in.Location},
		); err != nil {
			return err
		}
		take := models.StockTakeOverview{UserID: in.User, LocationID: in.Location}
		if err := tx.Omit(clause.Associations).Create(&take).Error; err != nil {
			return err
		}
		var err error
		created, err = s.repo.GetByID(tx, take.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *InventoryService) ListItems(ctx context.Context, stockTakeID *uint) ([]models.StockTakeItem, error) {
	q := s.db.WithContext(ctx).Preload("ItemType").Order("id")
	if stockTakeID != nil {
		q = q.Where("stock_take_id = ?", *stockTakeID)
	}
	var out []models.StockTakeItem
	err := q.Find(&out).Error
	return out, err
}

// CreateItem adds one counted line. A second line for the same item type
// in the same stock take is rejected.
func (s *InventoryService) CreateItem(ctx context.Context, in StockTakeItemInput) (*models.StockTakeItem, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	var created models.StockTakeItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkRefs(tx,
			refCheck{"stock_take", &models.StockTakeOverview{}, in.StockTake},
			refCheck{"item_type", &models.ItemType{}, in.ItemType},
		); err != nil {
			return err
		}
		item, err := insertItem(tx, in.StockTake, in.ItemType, in.Quantity)
		if err != nil {
			return err
		}
		return tx.Preload("ItemType").First(&created, item.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func insertItem(tx *gorm.DB, stockTakeID, itemTypeID, quantity uint) (*models.StockTakeItem, error) {
	n, err := countWhere(tx, &models.StockTakeItem{}, "stock_take_id = ? AND item_type_id = ?", stockTakeID, itemTypeID)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, utils.NewValidationError("non_field_errors", uniqueItemPerTake)
	}
	item := models.StockTakeItem{StockTakeID: stockTakeID, ItemTypeID: itemTypeID, Quantity: quantity}
	if err := tx.Omit(clause.Associations).Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.NewValidationError("non_field_errors", uniqueItemPerTake)
		}
		return nil, err
	}
	return &item, nil
}

func (s *InventoryService) ListSerials(ctx context.Context, itemID *uint) ([]models.StockTakeItemSerial, error) {
	q := s.db.WithContext(ctx).Order("id")
	if itemID != nil {
		q = q.Where("stock_take_item_id = ?", *itemID)
	}
	var out []models.StockTakeItemSerial
	err := q.Find(&out).Error
	return out, err
}

func (s *InventoryService) CreateSerial(ctx context.Context, in StockTakeSerialInput) (*models.StockTakeItemSerial, error) {
	in.SerialNumber = strings.TrimSpace(in.SerialNumber)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	var created *models.StockTakeItemSerial
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkRefs(tx, refCheck{"stock_take_item", &models.StockTakeItem{}, in.StockTakeItem}); err != nil {
			return err
		}
		var err error
		created, err = insertSerial(tx, in.StockTakeItem, in.SerialNumber)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func insertSerial(tx *gorm.DB, itemID uint, serialNumber string) (*models.StockTakeItemSerial, error) {
	n, err := countWhere(tx, &models.StockTakeItemSerial{}, "stock_take_item_id = ? AND serial_number = ?", itemID, serialNumber)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, utils.NewValidationError("non_field_errors", uniqueSerialPerLine)
	}
	serial := models.StockTakeItemSerial{StockTakeItemID: itemID, SerialNumber: serialNumber}
	if err := tx.Omit(clause.Associations).Create(&serial).Error; err != nil {
		return nil, err
	}
	return &serial, nil
}

// Submit stores the header, its lines and their serials in one transaction.
// A line without a quantity counts its non-blank serials.
func (s *InventoryService) Submit(ctx context.Context, in StockTakeSubmission) (*models.StockTakeOverview, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	var created *models.StockTakeOverview
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkRefs(tx,
			refCheck{"user", &models.User{}, in.User},
			refCheck{"location", &models.StockLocation{}, in.Location},
		); err != nil {
			return err
		}
		itemTypes := make([]uint, 0, len(in.Items))
		for _, line := range in.Items {
			itemTypes = append(itemTypes, line.ItemType)
		}
		if len(uniqueIDs(itemTypes)) != len(itemTypes) {
			return utils.NewValidationError("items", uniqueItemPerTake)
		}
		var found int64
		if err := tx.Model(&models.ItemType{}).Where("id IN ?", itemTypes).Count(&found).Error; err != nil {
			return err
		}
		if int(found) != len(itemTypes) {
			return utils.NewValidationError("items", "One or more item types do not exist.")
		}

		take := models.StockTakeOverview{UserID: in.User, LocationID: in.Location}
		if err := tx.Omit(clause.Associations).Create(&take).Error; err != nil {
			return err
		}
		for _, line := range in.Items {
			serials := make([]string, 0, len(line.Serials))
			for _, sn := range line.Serials {
				if sn = strings.TrimSpace(sn); sn == "" {
					continue
				}
				if len(sn) > 64 {
					return utils.NewValidationError("serials", "Ensure this field has no more than 64 characters.")
				}
				serials = append(serials, sn)
			}
			quantity := line.Quantity
			if quantity == 0 {
				quantity = uint(len(serials))
			}
			item, err := insertItem(tx, take.ID, line.ItemType, quantity)
			if err != nil {
				return err
			}
			for _, sn := range serials {
				if _, err := insertSerial(tx, item.ID, sn); err != nil {
					return err
				}
			}
		}
		var err error
		created, err = s.repo.GetByID(tx, take.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
