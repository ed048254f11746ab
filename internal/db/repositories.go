package db

import "gorm.io/gorm"

type Repositories struct {
	database *gorm.DB

	Users     *UserRepository
	Cycles    *CycleRepository
	Symptoms  *SymptomRepository
	Reminders *ReminderRepository
	KeyValues *KeyValueRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		database:  database,
		Users:     NewUserRepository(database),
		Cycles:    NewCycleRepository(database),
		Symptoms:  NewSymptomRepository(database),
		Reminders: NewReminderRepository(database),
		KeyValues: NewKeyValueRepository(database),
	}
}

// ReadTransaction runs fn with repositories bound to one transaction, so every
// read inside fn observes the same database state. An error from fn rolls back.
func (repos *Repositories) ReadTransaction(fn func(tx *Repositories) error) error {
	return repos.database.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
