// Package catalogrepo persists the reference tables (products, processes,
// machines and their mappings) that work orders and inventory point at.
package catalogrepo

// ProductDTO is a row of the products table.
type ProductDTO struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(255);not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}

// ProcessDTO is a row of the processes table.
type ProcessDTO struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(255);not null"`
}

func (ProcessDTO) TableName() string {
	return "processes"
}

// ProductProcessDTO maps the processes a product goes through.
type ProductProcessDTO struct {
	ProductID int64       `gorm:"primaryKey;autoIncrement:false"`
	ProcessID int64       `gorm:"primaryKey;autoIncrement:false"`
	Product   *ProductDTO `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Process   *ProcessDTO `gorm:"foreignKey:ProcessID;constraint:OnDelete:CASCADE"`
}

func (ProductProcessDTO) TableName() string {
	return "product_processes"
}

// MachineDTO is a row of the machines table.
type MachineDTO struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(255);not null"`
}

func (MachineDTO) TableName() string {
	return "machines"
}

// MachineProcessDTO maps the processes a machine can run.
type MachineProcessDTO struct {
	MachineID int64       `gorm:"primaryKey;autoIncrement:false"`
	ProcessID int64       `gorm:"primaryKey;autoIncrement:false"`
	Machine   *MachineDTO `gorm:"foreignKey:MachineID;constraint:OnDelete:CASCADE"`
	Process   *ProcessDTO `gorm:"foreignKey:ProcessID;constraint:OnDelete:CASCADE"`
}

func (MachineProcessDTO) TableName() string {
	return "machine_processes"
}

// Models lists the catalog tables in dependency order for AutoMigrate.
func Models() []any {
	return []any{
		&ProductDTO{},
		&ProcessDTO{},
		&ProductProcessDTO{},
		&MachineDTO{},
		&MachineProcessDTO{},
	}
}
