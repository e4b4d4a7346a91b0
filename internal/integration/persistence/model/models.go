package model

// AllModels lists every model migrated by AutoMigrate on the embedded backend.
func AllModels() []interface{} {
	return []interface{}{
		&CategoryModel{},
		&TransactionModel{},
		&BudgetModel{},
		&SavingsGoalModel{},
		&EmailQueueModel{},
	}
}
