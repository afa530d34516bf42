package models

import (
	"gorm.io/gorm"
)

type SupportAgent struct {
	Model
	Name string `json:"name" gorm:"size:100;not null"`
}

type JobType struct {
	Model
	Name string `json:"name" gorm:"size:100;not null"`
}

type Accessory struct {
	Model
	Name string `json:"name" gorm:"size:100;not null"`
}

// DefaultJobCardSeed sits above every number issued by the legacy system.
const DefaultJobCardSeed int64 = 68746

// JobCardCounterID is the only id the counter table accepts.
const JobCardCounterID uint = 1

type JobCardCounter struct {
	ID            uint  `json:"id" gorm:"primaryKey;autoIncrement:false;check:chk_job_card_counter_singleton,id = 1"`
	CurrentNumber int64 `json:"current_number" gorm:"not null"`
}

const (
	TamperingYes = "YES"
	TamperingNo  = "NO"
)

type JobCard struct {
	Model
	UniqueID       string       `json:"unique_id" gorm:"size:20;not null;uniqueIndex"`
	RegionID       uint         `json:"region" gorm:"not null;index"`
	Region         Region       `json:"-" gorm:"foreignKey:RegionID"`
	TechnicianID   uint         `json:"technician" gorm:"not null;index"`
	Technician     Technician   `json:"-" gorm:"foreignKey:TechnicianID"`
	CustomerID     uint         `json:"customer" gorm:"not null;index"`
	Customer       Customer     `json:"-" gorm:"foreignKey:CustomerID"`
	JobTypeID      uint         `json:"job_type" gorm:"not null;index"`
	JobType        JobType      `json:"-" gorm:"foreignKey:JobTypeID"`
	SupportAgentID uint         `json:"support_agent" gorm:"not null;index"`
	SupportAgent   SupportAgent `json:"-" gorm:"foreignKey:SupportAgentID"`
	Tampering      *string      `json:"tampering" gorm:"size:3"`
	DeviceIMEI     string       `json:"device_imei" gorm:"size:30"`
	VehicleReg     string       `json:"vehicle_reg" gorm:"size:30"`
	Accessories    []Accessory  `json:"-" gorm:"many2many:job_card_accessories;"`
	CreatedBy      int          `json:"-"`
	UpdatedBy      int          `json:"-"`

	RegionName       string   `json:"region_name" gorm:"-"`
	TechnicianName   string   `json:"technician_name" gorm:"-"`
	CustomerName     string   `json:"customer_name" gorm:"-"`
	JobTypeName      string   `json:"job_type_name" gorm:"-"`
	SupportAgentName string   `json:"support_agent_name" gorm:"-"`
	AccessoryIDs     []uint   `json:"accessories" gorm:"-"`
	AccessoryNames   []string `json:"accessories_name" gorm:"-"`
}

// JobCardPreloads are the associations the denormalized fields read.
var JobCardPreloads = []string{"Region", "Technician", "Customer", "JobType", "SupportAgent", "Accessories"}

func (j *JobCard) AfterFind(tx *gorm.DB) error {
	j.fillDisplay()
	return nil
}

func (j *JobCard) fillDisplay() {
	j.RegionName = j.Region.Name
	j.TechnicianName = j.Technician.Name
	j.CustomerName = j.Customer.Name
	j.JobTypeName = j.JobType.Name
	j.SupportAgentName = j.SupportAgent.Name
	j.AccessoryIDs = make([]uint, 0, len(j.Accessories))
	j.AccessoryNames = make([]string, 0, len(j.Accessories))
	for _, a := range j.Accessories {
		j.AccessoryIDs = append(j.AccessoryIDs, a.ID)
		j.AccessoryNames = append(j.AccessoryNames, a.Name)
	}
}
