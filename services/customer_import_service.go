package services

import (
	"aftech-backend/config"
	"aftech-backend/models"
	"aftech-backend/repositories"
	"aftech-backend/utils"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	customerImportLockKey = "customer-import"
	customerImportLockTTL = 30 * time.Second
	customerSheet         = "Customers"
)

// CustomerRow is one spreadsheet line. Line is the 1-based sheet row.
type CustomerRow struct {
	Line   int
	ID     string
	Name   string
	Region string
}

type CustomerImportResult struct {
	TotalRows     int      `json:"total_rows"`
	CreatedCount  int      `json:"created_count"`
	UpdatedCount  int      `json:"updated_count"`
	SkippedCount  int      `json:"skipped_count"`
	ErrorCount    int      `json:"error_count"`
	SkippedItems  []string `json:"skipped_items"`
	ErrorMessages []string `json:"error_messages"`
}

func (r *CustomerImportResult) skip(format string, args ...interface{}) {
	r.SkippedCount++
	r.SkippedItems = append(r.SkippedItems, fmt.Sprintf(format, args...))
}

func (r *CustomerImportResult) fail(format string, args ...interface{}) {
	r.ErrorCount++
	r.ErrorMessages = append(r.ErrorMessages, fmt.Sprintf(format, args...))
}

type CustomerImportService struct {
	db     *gorm.DB
	locker ImportLocker
}

func NewCustomerImportService(db *gorm.DB, locker ImportLocker) *CustomerImportService {
	if locker == nil {
		locker = NewLocalImportLocker()
	}
	return &CustomerImportService{db: db, locker: locker}
}

// ImportExcel reads the first sheet. Columns are found by header name.
func (s *CustomerImportService) ImportExcel(ctx context.Context, r io.Reader, actor int) (*CustomerImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, utils.NewValidationError("file", "Failed to read Excel file.")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, utils.NewValidationError("file", "No sheets found in Excel file.")
	}
	grid, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	rows, err := parseCustomerSheet(grid)
	if err != nil {
		return nil, err
	}
	return s.Import(ctx, rows, actor)
}

func parseCustomerSheet(grid [][]string) ([]CustomerRow, error) {
	if len(grid) < 2 {
		return nil, utils.NewValidationError("file", "Excel file must contain header and at least one data row.")
	}
	col := map[string]int{}
	for i, h := range grid[0] {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"name", "region"} {
		if _, ok := col[required]; !ok {
			return nil, utils.NewValidationError("file", fmt.Sprintf("Missing '%s' column.", required))
		}
	}

	cell := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	rows := make([]CustomerRow, 0, len(grid)-1)
	for i, raw := range grid[1:] {
		row := CustomerRow{
			Line:   i + 2,
			ID:     cell(raw, "id"),
			Name:   cell(raw, "name"),
			Region: cell(raw, "region"),
		}
		if strings.TrimSpace(row.ID+row.Name+row.Region) == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Import applies each row in its own savepoint. Bad rows are reported and
// never abort the batch.
func (s *CustomerImportService) Import(ctx context.Context, rows []CustomerRow, actor int) (*CustomerImportResult, error) {
	release, err := s.locker.Obtain(ctx, customerImportLockKey, customerImportLockTTL)
	if err != nil {
		return nil, err
	}
	defer release()

	result := &CustomerImportResult{
		TotalRows:     len(rows),
		SkippedItems:  []string{},
		ErrorMessages: []string{},
	}
	regions := map[string]*uint{}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			s.importRow(tx, row, regions, result, actor)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	config.GetLogger().WithFields(logrus.Fields{
		"module":  "services",
		"total":   result.TotalRows,
		"created": result.CreatedCount,
		"updated": result.UpdatedCount,
		"skipped": result.SkippedCount,
		"errors":  result.ErrorCount,
	}).Info("customer import finished")
	return result, nil
}

func (s *CustomerImportService) importRow(tx *gorm.DB, row CustomerRow, regions map[string]*uint, result *CustomerImportResult, actor int) {
	name := strings.TrimSpace(row.Name)
	regionName := strings.TrimSpace(row.Region)

	if name == "" {
		result.fail("Row %d: name is required (region: '%s')", row.Line, regionName)
		return
	}
	if len(name) > 255 {
		result.fail("Row %d: name is longer than 255 characters (customer: %s)", row.Line, name)
		return
	}

	var existingID uint
	if raw := strings.TrimSpace(row.ID); raw != "" {
		v, err := strconv.ParseUint(strings.TrimSuffix(raw, ".0"), 10, 64)
		if err != nil || v == 0 {
			result.fail("Row %d: '%s' is not a valid id (customer: %s)", row.Line, raw, name)
			return
		}
		existingID = uint(v)
	}

	regionID, err := resolveRegion(tx, regionName, regions)
	if err != nil {
		result.fail("Row %d: %s (customer: %s)", row.Line, err.Error(), name)
		return
	}
	if regionID == nil {
		result.skip("Row %d: region '%s' not found (customer: %s)", row.Line, regionName, name)
		return
	}

	err = tx.Transaction(func(sp *gorm.DB) error {
		var customer models.Customer
		updating := false
		if existingID != 0 {
			err := sp.First(&customer, existingID).Error
			switch {
			case err == nil:
				updating = true
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
		}

		exclude := uint(0)
		if updating {
			exclude = customer.ID
		}
		taken, err := customerNameTaken(sp, name, *regionID, exclude)
		if err != nil {
			return err
		}
		if taken {
			return errDuplicateCustomer
		}

		action := models.ActionCreate
		if updating {
			action = models.ActionUpdate
		} else {
			customer = models.Customer{CreatedBy: actor}
		}
		customer.Name = name
		customer.RegionID = *regionID
		customer.UpdatedBy = actor
		if err := sp.Omit(clause.Associations).Save(&customer).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errDuplicateCustomer
			}
			return err
		}
		if err := repositories.InsertChangeHistory(sp, models.EntityCustomer, customer.ID, action, customer, actor); err != nil {
			return err
		}
		if updating {
			result.UpdatedCount++
		} else {
			result.CreatedCount++
		}
		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, errDuplicateCustomer):
		result.skip("Row %d: duplicate customer '%s' in region '%s'", row.Line, name, regionName)
	default:
		config.LogError(config.GetLogger(), "services", "CustomerImportService.importRow", "save customer", row, err)
		result.fail("Row %d: failed to save customer %s in region '%s' - %s", row.Line, name, regionName, err.Error())
	}
}

var errDuplicateCustomer = errors.New("duplicate customer")

// resolveRegion matches the trimmed name exactly. When names repeat the
// oldest region wins. A nil id means no match.
func resolveRegion(tx *gorm.DB, name string, cache map[string]*uint) (*uint, error) {
	if name == "" {
		return nil, nil
	}
	if id, ok := cache[name]; ok {
		return id, nil
	}
	var ids []uint
	if err := tx.Model(&models.Region{}).Where("name = ?", name).Order("id").Limit(1).Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("look up region '%s': %w", name, err)
	}
	var id *uint
	if len(ids) > 0 {
		id = &ids[0]
	}
	cache[name] = id
	return id, nil
}

// Export writes id, name and region columns, matching the import layout.
func (s *CustomerImportService) Export(ctx context.Context, regionID *uint, w io.Writer) error {
	var customers []models.Customer
	q := s.db.WithContext(ctx).Preload("Region").Order("id")
	if regionID != nil {
		q = q.Where("region_id = ?", *regionID)
	}
	if err := q.Find(&customers).Error; err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", customerSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(customerSheet, "A1", &[]interface{}{"id", "name", "region"}); err != nil {
		return err
	}
	for i, c := range customers {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(customerSheet, cell, &[]interface{}{c.ID, c.Name, c.RegionName}); err != nil {
			return err
		}
	}
	_, err := f.WriteTo(w)
	return err
}
