// Package validator registers the custom binding tags used by the request DTOs.
package validator

import (
	"reflect"
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

var registerOnce sync.Once

// Register registers all custom validators with the Gin binding engine.
// Calling it more than once is harmless.
func Register() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
			_ = v.RegisterValidation("hex_color", validateHexColor)
			_ = v.RegisterValidation("transaction_type", validateTransactionType)
			_ = v.RegisterValidation("category_type", validateCategoryType)
			_ = v.RegisterValidation("budget_period", validateBudgetPeriod)
			_ = v.RegisterValidation("recurring_frequency", validateRecurringFrequency)
			_ = v.RegisterValidation("savings_goal_status", validateSavingsGoalStatus)
		}
	})
}

// decimalValue lets numeric tags such as gt=0 apply to decimal amounts.
func decimalValue(field reflect.Value) interface{} {
	d, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	f, _ := d.Float64()
	return f
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateTransactionType(fl validator.FieldLevel) bool {
	return entity.TransactionType(fl.Field().String()).IsValid()
}

func validateCategoryType(fl validator.FieldLevel) bool {
	return entity.CategoryType(fl.Field().String()).IsValid()
}

func validateBudgetPeriod(fl validator.FieldLevel) bool {
	return entity.BudgetPeriod(fl.Field().String()).IsValid()
}

func validateRecurringFrequency(fl validator.FieldLevel) bool {
	return entity.RecurringFrequency(fl.Field().String()).IsValid()
}

func validateSavingsGoalStatus(fl validator.FieldLevel) bool {
	return entity.SavingsGoalStatus(fl.Field().String()).IsValid()
}
