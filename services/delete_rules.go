package services

import (
	"aftech-backend/models"
	"aftech-backend/repositories"
	"aftech-backend/utils"
	"context"
	"errors"

	"gorm.io/gorm"
)

type reference struct {
	label  string
	model  interface{}
	column string
}

func ensureExists(tx *gorm.DB, dest interface{}, id uint) error {
	if err := tx.First(dest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrNotFound
		}
		return err
	}
	return nil
}

// ensureUnreferenced returns a ProtectedError listing every reference that
// still points at id.
func ensureUnreferenced(tx *gorm.DB, entity string, id uint, refs ...reference) error {
	found := map[string]int64{}
	for _, ref := range refs {
		n, err := countWhere(tx, ref.model, ref.column+" = ?", id)
		if err != nil {
			return err
		}
		if n > 0 {
			found[ref.label] = n
		}
	}
	if len(found) > 0 {
		return &utils.ProtectedError{Entity: entity, References: found}
	}
	return nil
}

// DeletionService applies the protect, cascade and detach rules.
type DeletionService struct {
	db *gorm.DB
}

func NewDeletionService(db *gorm.DB) *DeletionService {
	return &DeletionService{db: db}
}

// DeleteRegion refuses while people or job cards point at the region,
// cascades its stock locations and unscopes user profiles.
func (s *DeletionService) DeleteRegion(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var region models.Region
		if err := ensureExists(tx, &region, id); err != nil {
			return err
		}
		if err := ensureUnreferenced(tx, "region", id,
			reference{"technician(s)", &models.Technician{}, "region_id"},
			reference{"customer(s)", &models.Customer{}, "region_id"},
			reference{"job card(s)", &models.JobCard{}, "region_id"},
		); err != nil {
			return err
		}

		var locationIDs []uint
		if err := tx.Model(&models.StockLocation{}).Where("region_id = ?", id).Pluck("id", &locationIDs).Error; err != nil {
			return err
		}
		if err := deleteStockLocations(tx, locationIDs); err != nil {
			return err
		}
		if err := tx.Model(&models.UserProfile{}).Where("region_id = ?", id).Update("region_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Region{}, id).Error
	})
}

// DeleteTechnician refuses while job cards reference the technician and
// detaches any stock location assigned to them.
func (s *DeletionService) DeleteTechnician(ctx context.Context, id uint, actor int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var technician models.Technician
		if err := ensureExists(tx.Preload("Region"), &technician, id); err != nil {
			return err
		}
		if err := ensureUnreferenced(tx, "technician", id,
			reference{"job card(s)", &models.JobCard{}, "technician_id"},
		); err != nil {
			return err
		}
		if err := tx.Model(&models.StockLocation{}).Where("technician_id = ?", id).Update("technician_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Technician{}, id).Error; err != nil {
			return err
		}
		return repositories.InsertChangeHistory(tx, models.EntityTechnician, id, models.ActionDelete, technician, actor)
	})
}

func (s *DeletionService) DeleteCustomer(ctx context.Context, id uint, actor int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := ensureExists(tx.Preload("Region"), &customer, id); err != nil {
			return err
		}
		if err := ensureUnreferenced(tx, "customer", id,
			reference{"job card(s)", &models.JobCard{}, "customer_id"},
		); err != nil {
			return err
		}
		if err := tx.Model(&models.StockLocation{}).Where("customer_id = ?", id).Update("customer_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Customer{}, id).Error; err != nil {
			return err
		}
		return repositories.InsertChangeHistory(tx, models.EntityCustomer, id, models.ActionDelete, customer, actor)
	})
}

func (s *DeletionService) DeleteItemType(ctx context.Context, id uint) error {
	return s.deleteProtected(ctx, &models.ItemType{}, "item type", id,
		reference{"stock take item(s)", &models.StockTakeItem{}, "item_type_id"})
}

func (s *DeletionService) DeleteJobType(ctx context.Context, id uint) error {
	return s.deleteProtected(ctx, &models.JobType{}, "job type", id,
		reference{"job card(s)", &models.JobCard{}, "job_type_id"})
}

func (s *DeletionService) DeleteSupportAgent(ctx context.Context, id uint) error {
	return s.deleteProtected(ctx, &models.SupportAgent{}, "support agent", id,
		reference{"job card(s)", &models.JobCard{}, "support_agent_id"})
}

func (s *DeletionService) DeleteStockStatus(ctx context.Context, id uint) error {
	return s.deleteProtected(ctx, &models.StockStatus{}, "stock status", id)
}

// DeleteAccessory unlinks the accessory from job cards first.
func (s *DeletionService) DeleteAccessory(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.Accessory{}, id); err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM "+jobCardAccessoriesTable+" WHERE accessory_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Accessory{}, id).Error
	})
}

func (s *DeletionService) DeleteStockLocation(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.StockLocation{}, id); err != nil {
			return err
		}
		return deleteStockLocations(tx, []uint{id})
	})
}

func (s *DeletionService) DeleteStockTake(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.StockTakeOverview{}, id); err != nil {
			return err
		}
		return deleteStockTakes(tx, []uint{id})
	})
}

// DeleteUser removes the account with its profile and sessions. Stock takes
// recorded by the user go with it.
func (s *DeletionService) DeleteUser(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.User{}, id); err != nil {
			return err
		}
		var takeIDs []uint
		if err := tx.Model(&models.StockTakeOverview{}).Where("user_id = ?", id).Pluck("id", &takeIDs).Error; err != nil {
			return err
		}
		if err := deleteStockTakes(tx, takeIDs); err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.UserProfile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.UserSession{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}

func (s *DeletionService) deleteProtected(ctx context.Context, model interface{}, entity string, id uint, refs ...reference) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, model, id); err != nil {
			return err
		}
		if err := ensureUnreferenced(tx, entity, id, refs...); err != nil {
			return err
		}
		return tx.Delete(model, id).Error
	})
}

func deleteStockLocations(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	var takeIDs []uint
	if err := tx.Model(&models.StockTakeOverview{}).Where("location_id IN ?", ids).Pluck("id", &takeIDs).Error; err != nil {
		return err
	}
	if err := deleteStockTakes(tx, takeIDs); err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.StockLocation{}).Error
}

func deleteStockTakes(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	var itemIDs []uint
	if err := tx.Model(&models.StockTakeItem{}).Where("stock_take_id IN ?", ids).Pluck("id", &itemIDs).Error; err != nil {
		return err
	}
	if err := deleteStockTakeItems(tx, itemIDs); err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.StockTakeOverview{}).Error
}

func deleteStockTakeItems(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("stock_take_item_id IN ?", ids).Delete(&models.StockTakeItemSerial{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.StockTakeItem{}).Error
}
