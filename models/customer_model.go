package models

import "gorm.io/gorm"

// Customer names are unique per region.
type Customer struct {
	Model
	Name       string `json:"name" gorm:"size:255;not null;uniqueIndex:idx_customer_region_name,priority:2"`
	RegionID   uint   `json:"region" gorm:"not null;uniqueIndex:idx_customer_region_name,priority:1"`
	Region     Region `json:"-" gorm:"foreignKey:RegionID"`
	RegionName string `json:"region_name" gorm:"-"`
	CreatedBy  int    `json:"-"`
	UpdatedBy  int    `json:"-"`
}

func (c *Customer) AfterFind(tx *gorm.DB) error {
	if c.Region.ID != 0 {
		c.RegionName = c.Region.Name
	}
	return nil
}
