package fulfillment

// Warehouse represents a physical warehouse location. The fulfillment flow
// only checks that the referenced warehouse exists.
type Warehouse struct {
	ID   int    `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}
