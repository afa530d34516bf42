package models

import "gorm.io/gorm"

type Region struct {
	Model
	Name string `json:"name" gorm:"size:100;not null"`
}

type Technician struct {
	Model
	Name       string `json:"name" gorm:"size:100;not null"`
	Initials   string `json:"initials" gorm:"size:10;not null"`
	RegionID   uint   `json:"region" gorm:"not null;index"`
	Region     Region `json:"-" gorm:"foreignKey:RegionID"`
	RegionName string `json:"region_name" gorm:"-"`
	CreatedBy  int    `json:"-"`
	UpdatedBy  int    `json:"-"`
}

func (t *Technician) AfterFind(tx *gorm.DB) error {
	if t.Region.ID != 0 {
		t.RegionName = t.Region.Name
	}
	return nil
}
