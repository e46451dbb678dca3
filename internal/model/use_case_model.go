package model

import (
	"time"
)

type UseCase struct {
	Id                     uint64    `gorm:"primaryKey;autoIncrement"`
	UseCase                string    `gorm:"type:varchar(500);not null"`
	ConceptDescription     string    `gorm:"type:text;not null"`
	ConcreteImplementation *string   `gorm:"type:text"`
	Benefit                *string   `gorm:"type:text"`
	Industry               *string   `gorm:"type:varchar(200);index"`
	Department             *string   `gorm:"type:varchar(200);index"`
	ValueChainStep         *string   `gorm:"type:varchar(200);index"`
	Url                    *string   `gorm:"type:text"`
	CreatedAt              time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime"`
}

func (UseCase) TableName() string {
	return "use_cases"
}
