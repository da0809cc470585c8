package models

import "time"

// Asset status values. "Assigned" is entered and left only through the
// assignment workflow; "Under Repair" and "Disposed" are set by direct update.
const (
	StatusAvailable   = "Available"
	StatusAssigned    = "Assigned"
	StatusUnderRepair = "Under Repair"
	StatusDisposed    = "Disposed"
)

const (
	AssignmentPAR      = "PAR"
	AssignmentJobOrder = "Job Order"
)

const DefaultCondition = "Good"

var EquipmentTypes = []string{
	"Desktop Computer", "Laptop", "Monitor", "Keyboard", "Mouse",
	"Printer", "Scanner", "UPS", "External Hard Drive", "Network Device",
	"Projector", "Webcam", "Headset", "Other",
}

var FurnitureTypes = []string{
	"Office Chair", "Executive Chair", "Office Desk", "Conference Table",
	"Filing Cabinet", "Bookshelf", "Storage Cabinet", "Drawer",
	"Workstation", "Partition", "Other",
}

var Conditions = []string{"Excellent", "Good", "Fair", "Poor", "For Repair"}

var Statuses = []string{StatusAvailable, StatusAssigned, StatusUnderRepair, StatusDisposed}

var AssignmentTypes = []string{AssignmentPAR, AssignmentJobOrder}

// Equipment is an IT asset tracked by property number.
type Equipment struct {
	ID             string  `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyNumber string  `gorm:"uniqueIndex;not null" json:"property_number"`
	GSDCode        *string `json:"gsd_code,omitempty"`
	ItemNumber     *string `json:"item_number,omitempty"`

	EquipmentType  string  `gorm:"not null" json:"equipment_type"`
	Brand          string  `gorm:"not null" json:"brand"`
	Model          string  `gorm:"not null" json:"model"`
	SerialNumber   *string `json:"serial_number,omitempty"`
	Specifications *string `json:"specifications,omitempty"`

	AcquisitionDate *time.Time `json:"acquisition_date,omitempty"`
	AcquisitionCost *float64   `json:"acquisition_cost,omitempty"`

	AssignedToUserID  *string    `gorm:"index" json:"assigned_to_user_id,omitempty"`
	AssignedToName    *string    `json:"assigned_to_name,omitempty"`
	AssignedDate      *time.Time `json:"assigned_date,omitempty"`
	AssignmentType    *string    `json:"assignment_type,omitempty"`
	PreviousRecipient *string    `json:"previous_recipient,omitempty"`

	Condition string  `gorm:"not null;default:Good" json:"condition"`
	Status    string  `gorm:"not null;default:Available;index" json:"status"`
	Remarks   *string `json:"remarks,omitempty"`

	PARFilePath *string `json:"par_file_path,omitempty"`
	PARNumber   *string `json:"par_number,omitempty"`

	CreatedBy string    `gorm:"not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Equipment) TableName() string { return "equipment" }

// Furniture is a furniture asset tracked by property number. Same lifecycle
// as Equipment; carries a location instead of a previous recipient.
type Furniture struct {
	ID             string  `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyNumber string  `gorm:"uniqueIndex;not null" json:"property_number"`
	GSDCode        *string `json:"gsd_code,omitempty"`
	ItemNumber     *string `json:"item_number,omitempty"`

	FurnitureType string  `gorm:"not null" json:"furniture_type"`
	Description   string  `gorm:"not null" json:"description"`
	Brand         *string `json:"brand,omitempty"`
	Material      *string `json:"material,omitempty"`
	Color         *string `json:"color,omitempty"`
	Dimensions    *string `json:"dimensions,omitempty"`

	AcquisitionDate *time.Time `json:"acquisition_date,omitempty"`
	AcquisitionCost *float64   `json:"acquisition_cost,omitempty"`

	AssignedToUserID *string    `gorm:"index" json:"assigned_to_user_id,omitempty"`
	AssignedToName   *string    `json:"assigned_to_name,omitempty"`
	AssignedDate     *time.Time `json:"assigned_date,omitempty"`
	AssignmentType   *string    `json:"assignment_type,omitempty"`
	Location         *string    `json:"location,omitempty"`

	Condition string  `gorm:"not null;default:Good" json:"condition"`
	Status    string  `gorm:"not null;default:Available;index" json:"status"`
	Remarks   *string `json:"remarks,omitempty"`

	PARFilePath *string `json:"par_file_path,omitempty"`
	PARNumber   *string `json:"par_number,omitempty"`

	CreatedBy string    `gorm:"not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Furniture) TableName() string { return "furniture" }

// AssetStats is the per-collection count breakdown by status.
type AssetStats struct {
	Total       int64 `json:"total"`
	Available   int64 `json:"available"`
	Assigned    int64 `json:"assigned"`
	UnderRepair int64 `json:"under_repair"`
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func ValidEquipmentType(v string) bool  { return contains(EquipmentTypes, v) }
func ValidFurnitureType(v string) bool  { return contains(FurnitureTypes, v) }
func ValidCondition(v string) bool      { return contains(Conditions, v) }
func ValidStatus(v string) bool         { return contains(Statuses, v) }
func ValidAssignmentType(v string) bool { return contains(AssignmentTypes, v) }
