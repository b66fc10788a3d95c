package domain

// TransactionType indicates whether a transaction is money coming in or going out.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Category is a closed set of transaction categories. Each category belongs
// to exactly one transaction type; the pairing is validated at the boundary
// rather than by scattered string comparisons.
type Category string

// Income categories.
const (
	CategorySalary      Category = "salary"
	CategoryFreelance   Category = "freelance"
	CategoryInvestment  Category = "investment"
	CategoryOtherIncome Category = "other_income"
)

// Expense categories. Budgets are defined over this subset only.
const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryHousing       Category = "housing"
	CategoryUtilities     Category = "utilities"
	CategoryEntertainment Category = "entertainment"
	CategoryHealthcare    Category = "healthcare"
	CategoryEducation     Category = "education"
	CategoryShopping      Category = "shopping"
	CategoryTravel        Category = "travel"
	CategoryOtherExpense  Category = "other_expense"
)

var incomeCategories = map[Category]struct{}{
	CategorySalary:      {},
	CategoryFreelance:   {},
	CategoryInvestment:  {},
	CategoryOtherIncome: {},
}

var expenseCategories = map[Category]struct{}{
	CategoryFood:          {},
	CategoryTransport:     {},
	CategoryHousing:       {},
	CategoryUtilities:     {},
	CategoryEntertainment: {},
	CategoryHealthcare:    {},
	CategoryEducation:     {},
	CategoryShopping:      {},
	CategoryTravel:        {},
	CategoryOtherExpense:  {},
}

// IsIncomeCategory reports whether c is a valid income category.
func IsIncomeCategory(c Category) bool {
	_, ok := incomeCategories[c]
	return ok
}

// IsExpenseCategory reports whether c is a valid expense category.
func IsExpenseCategory(c Category) bool {
	_, ok := expenseCategories[c]
	return ok
}

// ValidCategoryForType reports whether category c may appear on a
// transaction of type t.
func ValidCategoryForType(t TransactionType, c Category) bool {
	switch t {
	case Income:
		return IsIncomeCategory(c)
	case Expense:
		return IsExpenseCategory(c)
	default:
		return false
	}
}

// RecurringFrequency is the cadence of a recurring transaction.
type RecurringFrequency string

const (
	FrequencyDaily   RecurringFrequency = "daily"
	FrequencyWeekly  RecurringFrequency = "weekly"
	FrequencyMonthly RecurringFrequency = "monthly"
	FrequencyYearly  RecurringFrequency = "yearly"
)

// ValidRecurringFrequency reports whether f is a known cadence.
func ValidRecurringFrequency(f RecurringFrequency) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}
