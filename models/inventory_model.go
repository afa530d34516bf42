package models

import "gorm.io/gorm"

type ItemType struct {
	Model
	Name           string  `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Barcode        *string `json:"barcode" gorm:"size:50;uniqueIndex"`
	RequiresSerial bool    `json:"requires_serial" gorm:"not null;default:false"`
	IsBulk         bool    `json:"is_bulk" gorm:"not null;default:false"`
}

type StockStatus struct {
	Model
	Name string `json:"name" gorm:"size:100;not null;uniqueIndex"`
}

const (
	LocationWarehouse  = "Warehouse"
	LocationTechnician = "Technician"
	LocationCustomer   = "Customer"
	LocationUnknown    = "Unknown"
)

// StockLocation is a warehouse, a technician's van stock or stock held at
// a customer site.
type StockLocation struct {
	Model
	Name         string      `json:"name" gorm:"size:255"`
	RegionID     uint        `json:"region" gorm:"not null;index"`
	Region       Region      `json:"-" gorm:"foreignKey:RegionID"`
	TechnicianID *uint       `json:"technician" gorm:"index"`
	Technician   *Technician `json:"-" gorm:"foreignKey:TechnicianID"`
	CustomerID   *uint       `json:"customer" gorm:"index"`
	Customer     *Customer   `json:"-" gorm:"foreignKey:CustomerID"`
	IsWarehouse  bool        `json:"is_warehouse" gorm:"not null;default:false"`

	LocationType string `json:"location_type" gorm:"-"`
	DisplayName  string `json:"display_name" gorm:"-"`
}

// Classify orders the checks warehouse, technician, customer.
func (l *StockLocation) Classify() string {
	switch {
	case l.IsWarehouse:
		return LocationWarehouse
	case l.TechnicianID != nil:
		return LocationTechnician
	case l.CustomerID != nil:
		return LocationCustomer
	default:
		return LocationUnknown
	}
}

// Label follows the same priority as Classify. Technician and customer
// names are only used when preloaded.
func (l *StockLocation) Label() string {
	switch l.Classify() {
	case LocationTechnician:
		if l.Technician != nil {
			return l.Technician.Name + " (Technician Stock)"
		}
	case LocationCustomer:
		if l.Customer != nil {
			return l.Customer.Name + " (Customer Stock)"
		}
	}
	return l.Name
}

func (l *StockLocation) AfterFind(tx *gorm.DB) error {
	l.LocationType = l.Classify()
	l.DisplayName = l.Label()
	return nil
}

func (l *StockLocation) AfterSave(tx *gorm.DB) error {
	return l.AfterFind(tx)
}
