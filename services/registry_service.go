package services

import (
	"aftech-backend/models"
	"aftech-backend/repositories"
	"aftech-backend/utils"
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TechnicianInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Initials string `json:"initials" validate:"required,max=10"`
	Region   uint   `json:"region" validate:"required"`
}

type CustomerInput struct {
	Name   string `json:"name" validate:"required,max=255"`
	Region uint   `json:"region" validate:"required"`
}

// RegistryService owns technicians and customers, the two audited registries.
type RegistryService struct {
	db *gorm.DB
}

func NewRegistryService(db *gorm.DB) *RegistryService {
	return &RegistryService{db: db}
}

func (s *RegistryService) ListTechnicians(ctx context.Context, regionID *uint) ([]models.Technician, error) {
	var technicians []models.Technician
	q := s.db.WithContext(ctx).Preload("Region").Order("name")
	if regionID != nil {
		q = q.Where("region_id = ?", *regionID)
	}
	err := q.Find(&technicians).Error
	return technicians, err
}

func (s *RegistryService) GetTechnician(ctx context.Context, id uint) (*models.Technician, error) {
	var technician models.Technician
	if err := ensureExists(s.db.WithContext(ctx).Preload("Region"), &technician, id); err != nil {
		return nil, err
	}
	return &technician, nil
}

func (s *RegistryService) SaveTechnician(ctx context.Context, id uint, in TechnicianInput, actor int) (*models.Technician, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Initials = strings.ToUpper(strings.TrimSpace(in.Initials))
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	var saved models.Technician
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkRefs(tx, refCheck{"region", &models.Region{}, in.Region}); err != nil {
			return err
		}
		technician := models.Technician{}
		action := models.ActionCreate
		if id != 0 {
			if err := ensureExists(tx, &technician, id); err != nil {
				return err
			}
			action = models.ActionUpdate
		} else {
			technician.CreatedBy = actor
		}
		technician.Name = in.Name
		technician.Initials = in.Initials
		technician.RegionID = in.Region
		technician.UpdatedBy = actor
		if err := tx.Omit(clause.Associations).Save(&technician).Error; err != nil {
			return err
		}
		if err := tx.Preload("Region").First(&saved, technician.ID).Error; err != nil {
			return err
		}
		return repositories.InsertChangeHistory(tx, models.EntityTechnician, saved.ID, action, saved, actor)
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *RegistryService) ListCustomers(ctx context.Context, regionID *uint) ([]models.Customer, error) {
	var customers []models.Customer
	q := s.db.WithContext(ctx).Preload("Region").Order("name")
	if regionID != nil {
		q = q.Where("region_id = ?", *regionID)
	}
	err := q.Find(&customers).Error
	return customers, err
}

func (s *RegistryService) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := ensureExists(s.db.WithContext(ctx).Preload("Region"), &customer, id); err != nil {
		return nil, err
	}
	return &customer, nil
}

// SaveCustomer creates (id == 0) or replaces a customer. The name must be
// unique within the region.
func (s *RegistryService) SaveCustomer(ctx context.Context, id uint, in CustomerInput, actor int) (*models.Customer, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	var saved models.Customer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkRefs(tx, refCheck{"region", &models.Region{}, in.Region}); err != nil {
			return err
		}
		customer := models.Customer{}
		action := models.ActionCreate
		if id != 0 {
			if err := ensureExists(tx, &customer, id); err != nil {
				return err
			}
			action = models.ActionUpdate
		} else {
			customer.CreatedBy = actor
		}

		taken, err := customerNameTaken(tx, in.Name, in.Region, id)
		if err != nil {
			return err
		}
		if taken {
			return utils.NewValidationError("name", duplicateCustomerMessage)
		}

		customer.Name = in.Name
		customer.RegionID = in.Region
		customer.UpdatedBy = actor
		if err := tx.Omit(clause.Associations).Save(&customer).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return utils.NewValidationError("name", duplicateCustomerMessage)
			}
			return err
		}
		if err := tx.Preload("Region").First(&saved, customer.ID).Error; err != nil {
			return err
		}
		return repositories.InsertChangeHistory(tx, models.EntityCustomer, saved.ID, action, saved, actor)
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

const duplicateCustomerMessage = "A customer with this name already exists in this region."

// customerNameTaken ignores excludeID so a record never collides with itself.
func customerNameTaken(tx *gorm.DB, name string, regionID, excludeID uint) (bool, error) {
	q := tx.Model(&models.Customer{}).Where("name = ? AND region_id = ?", name, regionID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check customer name: %w", err)
	}
	return count > 0, nil
}
