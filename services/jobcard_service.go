package services

import (
	"aftech-backend/config"
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

type JobCardInput struct {
	Region       uint    `json:"region" validate:"required"`
	Technician   uint    `json:"technician" validate:"required"`
	Customer     uint    `json:"customer" validate:"required"`
	JobType      uint    `json:"job_type" validate:"required"`
	SupportAgent uint    `json:"support_agent" validate:"required"`
	Tampering    *string `json:"tampering" validate:"omitempty,oneof=YES NO"`
	DeviceIMEI   string  `json:"device_imei" validate:"max=30"`
	VehicleReg   string  `json:"vehicle_reg" validate:"max=30"`
	Accessories  []uint  `json:"accessories"`
	// UniqueID is accepted for compatibility and ignored; the counter issues it.
	UniqueID *string `json:"unique_id"`
}

type JobCardPatch struct {
	Region       *uint   `json:"region"`
	Technician   *uint   `json:"technician"`
	Customer     *uint   `json:"customer"`
	JobType      *uint   `json:"job_type"`
	SupportAgent *uint   `json:"support_agent"`
	Tampering    *string `json:"tampering" validate:"omitempty,oneof=YES NO"`
	DeviceIMEI   *string `json:"device_imei" validate:"omitempty,max=30"`
	VehicleReg   *string `json:"vehicle_reg" validate:"omitempty,max=30"`
	Accessories  *[]uint `json:"accessories"`
	UniqueID     *string `json:"unique_id"`

	clearTampering bool
}

// normalizeTampering upper-cases the flag; blank means unset.
func normalizeTampering(v *string) (*string, bool) {
	if v == nil {
		return nil, false
	}
	t := strings.ToUpper(strings.TrimSpace(*v))
	if t == "" {
		return nil, true
	}
	return &t, false
}

type JobCardService struct {
	db    *gorm.DB
	repo  *repositories.JobCardRepository
	cache ReportCache
	hooks []PostCreateHook
}

func NewJobCardService(db *gorm.DB, cache ReportCache, hooks ...PostCreateHook) *JobCardService {
	if cache == nil {
		cache = NopReportCache{}
	}
	return &JobCardService{
		db:    db,
		repo:  repositories.NewJobCardRepository(db),
		cache: cache,
		hooks: hooks,
	}
}

func (s *JobCardService) List(ctx context.Context, f repositories.JobCardFilter) ([]models.JobCard, error) {
	return repositories.NewJobCardRepository(s.db.WithContext(ctx)).List(f)
}

func (s *JobCardService) Get(ctx context.Context, id uint) (*models.JobCard, error) {
	jc, err := s.repo.GetByID(s.db.WithContext(ctx), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return jc, err
}

// Create issues the unique id and stores the job card in one transaction,
// then runs the post-create hooks.
func (s *JobCardService) Create(ctx context.Context, in JobCardInput, actor int) (*models.JobCard, error) {
	in.Tampering, _ = normalizeTampering(in.Tampering)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	var created *models.JobCard
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkRefs(tx,
			refCheck{"region", &models.Region{}, in.Region},
			refCheck{"technician", &models.Technician{}, in.Technician},
			refCheck{"customer", &models.Customer{}, in.Customer},
			refCheck{"job_type", &models.JobType{}, in.JobType},
			refCheck{"support_agent", &models.SupportAgent{}, in.SupportAgent},
		); err != nil {
			return err
		}
		accessoryIDs, err := checkAccessories(tx, in.Accessories)
		if err != nil {
			return err
		}

		var technician models.Technician
		if err := tx.First(&technician, in.Technician).Error; err != nil {
			return err
		}

		uniqueID, err := AllocateUniqueID(tx, technician.Initials)
		if err != nil {
			return err
		}

		jc := models.JobCard{
			UniqueID:       uniqueID,
			RegionID:       in.Region,
			TechnicianID:   in.Technician,
			CustomerID:     in.Customer,
			JobTypeID:      in.JobType,
			SupportAgentID: in.SupportAgent,
			Tampering:      in.Tampering,
			DeviceIMEI:     strings.TrimSpace(in.DeviceIMEI),
			VehicleReg:     strings.TrimSpace(in.VehicleReg),
			CreatedBy:      actor,
			UpdatedBy:      actor,
		}
		if err := tx.Omit(clause.Associations).Create(&jc).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("unique id %s already issued: %w", uniqueID, utils.ErrConflict)
			}
			return err
		}
		if err := setAccessories(tx, jc.ID, accessoryIDs); err != nil {
			return err
		}

		created, err = s.repo.GetByID(tx, jc.ID)
		if err != nil {
			return err
		}
		return repositories.InsertChangeHistory(tx, models.EntityJobCard, jc.ID, models.ActionCreate, created, actor)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateReports(ctx)
	s.runHooks(ctx, created)
	return created, nil
}

func (s *JobCardService) Update(ctx context.Context, id uint, patch JobCardPatch, actor int) (*models.JobCard, error) {
	if patch.UniqueID != nil {
		return nil, utils.NewValidationError("unique_id", "This field is issued by the system and cannot be changed.")
	}
	patch.Tampering, patch.clearTampering = normalizeTampering(patch.Tampering)
	if err := utils.ValidateStruct(patch); err != nil {
		return nil, err
	}

	var updated *models.JobCard
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var jc models.JobCard
		if err := tx.First(&jc, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrNotFound
			}
			return err
		}

		var checks []refCheck
		updates := map[string]interface{}{"updated_by": actor}
		addRef := func(field, column string, model interface{}, v *uint) {
			if v != nil {
				checks = append(checks, refCheck{field, model, *v})
				updates[column] = *v
			}
		}
		addRef("region", "region_id", &models.Region{}, patch.Region)
		addRef("technician", "technician_id", &models.Technician{}, patch.Technician)
		addRef("customer", "customer_id", &models.Customer{}, patch.Customer)
		addRef("job_type", "job_type_id", &models.JobType{}, patch.JobType)
		addRef("support_agent", "support_agent_id", &models.SupportAgent{}, patch.SupportAgent)
		if err := checkRefs(tx, checks...); err != nil {
			return err
		}

		switch {
		case patch.clearTampering:
			updates["tampering"] = nil
		case patch.Tampering != nil:
			updates["tampering"] = *patch.Tampering
		}
		if patch.DeviceIMEI != nil {
			updates["device_imei"] = strings.TrimSpace(*patch.DeviceIMEI)
		}
		if patch.VehicleReg != nil {
			updates["vehicle_reg"] = strings.TrimSpace(*patch.VehicleReg)
		}

		if err := tx.Model(&jc).Omit(clause.Associations).Updates(updates).Error; err != nil {
			return err
		}
		if patch.Accessories != nil {
			ids, err := checkAccessories(tx, *patch.Accessories)
			if err != nil {
				return err
			}
			if err := setAccessories(tx, jc.ID, ids); err != nil {
				return err
			}
		}

		var err error
		updated, err = s.repo.GetByID(tx, jc.ID)
		if err != nil {
			return err
		}
		return repositories.InsertChangeHistory(tx, models.EntityJobCard, jc.ID, models.ActionUpdate, updated, actor)
	})
	if err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)
	return updated, nil
}

// Delete removes the job card. The counter is never wound back.
func (s *JobCardService) Delete(ctx context.Context, id uint, actor int) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		jc, err := s.repo.GetByID(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrNotFound
			}
			return err
		}
		if err := setAccessories(tx, jc.ID, nil); err != nil {
			return err
		}
		if err := tx.Delete(&models.JobCard{}, jc.ID).Error; err != nil {
			return err
		}
		return repositories.InsertChangeHistory(tx, models.EntityJobCard, jc.ID, models.ActionDelete, jc, actor)
	})
	if err != nil {
		return err
	}
	s.invalidateReports(ctx)
	return nil
}

func (s *JobCardService) invalidateReports(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		config.LogError(config.GetLogger(), "services", "JobCardService.invalidateReports", "invalidate report cache", nil, err)
	}
}

func (s *JobCardService) runHooks(ctx context.Context, jc *models.JobCard) {
	for _, hook := range s.hooks {
		if err := hook.AfterCreate(ctx, jc); err != nil {
			config.LogError(config.GetLogger(), "services", "JobCardService.runHooks", hook.Name(), jc.UniqueID, err)
		}
	}
}

func checkAccessories(tx *gorm.DB, ids []uint) ([]uint, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return ids, nil
	}
	var found []uint
	if err := tx.Model(&models.Accessory{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	if len(found) == len(ids) {
		return ids, nil
	}
	have := make(map[uint]bool, len(found))
	for _, id := range found {
		have[id] = true
	}
	for _, id := range ids {
		if !have[id] {
			return nil, utils.NewValidationError("accessories", missingPK(id))
		}
	}
	return ids, nil
}

const jobCardAccessoriesTable = "job_card_accessories"

// setAccessories replaces the job card's accessory links.
func setAccessories(tx *gorm.DB, jobCardID uint, accessoryIDs []uint) error {
	if err := tx.Exec("DELETE FROM "+jobCardAccessoriesTable+" WHERE job_card_id = ?", jobCardID).Error; err != nil {
		return err
	}
	if len(accessoryIDs) == 0 {
		return nil
	}
	rows := make([]map[string]interface{}, 0, len(accessoryIDs))
	for _, id := range accessoryIDs {
		rows = append(rows, map[string]interface{}{"job_card_id": jobCardID, "accessory_id": id})
	}
	return tx.Table(jobCardAccessoriesTable).Create(rows).Error
}
