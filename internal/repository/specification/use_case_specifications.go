package specification

import "gorm.io/gorm"

// ByUseCaseName matches the display name case-insensitively.
type ByUseCaseName struct {
	Name string
}

func (s ByUseCaseName) Apply(db *gorm.DB) *gorm.DB {
	return EqualsIgnoreCase{Field: "use_case", Value: s.Name}.Apply(db)
}

type ByIndustry struct {
	Industry string
}

func (s ByIndustry) Apply(db *gorm.DB) *gorm.DB {
	return EqualsIgnoreCase{Field: "industry", Value: s.Industry}.Apply(db)
}

type ByDepartment struct {
	Department string
}

func (s ByDepartment) Apply(db *gorm.DB) *gorm.DB {
	return EqualsIgnoreCase{Field: "department", Value: s.Department}.Apply(db)
}

type ByValueChainStep struct {
	ValueChainStep string
}

func (s ByValueChainStep) Apply(db *gorm.DB) *gorm.DB {
	return EqualsIgnoreCase{Field: "value_chain_step", Value: s.ValueChainStep}.Apply(db)
}
