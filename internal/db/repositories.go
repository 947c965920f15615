package db

import "gorm.io/gorm"

type Repositories struct {
	Users *UserRepository
	Days  *DayDocumentRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users: NewUserRepository(database),
		Days:  NewDayDocumentRepository(database),
	}
}
