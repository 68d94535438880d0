package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Violations отображает имя поля на список нарушенных правил.
// Пустое значение означает, что форма корректна.
type Violations map[string][]string

// Valid сообщает, что нарушений нет
func (v Violations) Valid() bool {
	return len(v) == 0
}

// Fields возвращает отсортированные имена полей с нарушениями
func (v Violations) Fields() []string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Has сообщает, нарушено ли правило rule у поля field
func (v Violations) Has(field, rule string) bool {
	for _, r := range v[field] {
		if r == rule {
			return true
		}
	}
	return false
}

func (v Violations) Error() string {
	parts := make([]string, 0, len(v))
	for _, f := range v.Fields() {
		parts = append(parts, f+": "+strings.Join(v[f], ","))
	}
	return "invalid fields: " + strings.Join(parts, "; ")
}

// Validator проверяет значения формы по таблице правил
type Validator struct {
	validate *validator.Validate
	rules    map[string][]Rule
}

// New создаёт валидатор с правилами записи о сотруднике
func New() *Validator {
	return NewWithRules(EmployeeRules)
}

// NewWithRules создаёт валидатор с произвольной таблицей правил
func NewWithRules(rules map[string][]Rule) *Validator {
	v := validator.New()
	RegisterValidators(v)
	return &Validator{validate: v, rules: rules}
}

// Validate проверяет все правила всех полей, а не только первое нарушенное
func (val *Validator) Validate(values map[string]any) Violations {
	violations := Violations{}

	for field, rules := range val.rules {
		value := values[field]
		for _, rule := range rules {
			if err := val.validate.Var(value, rule.Tag); err != nil {
				violations[field] = append(violations[field], rule.Name)
			}
		}
	}

	for field := range violations {
		sort.Strings(violations[field])
	}

	return violations
}

// Message возвращает человекочитаемое описание нарушения
func Message(field, rule string) string {
	label := fieldLabel(field)

	switch rule {
	case RuleRequired:
		return fmt.Sprintf("%s is required", label)
	case RuleMaxLength:
		if limit, ok := maxLength(field); ok {
			return fmt.Sprintf("%s must be at most %s characters", label, limit)
		}
		return fmt.Sprintf("%s is too long", label)
	case RulePattern:
		return fmt.Sprintf("%s must contain 10 to 15 digits", label)
	case RuleEmail:
		return fmt.Sprintf("%s must be a valid email address", label)
	case RuleDate:
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", label)
	case RuleMin:
		return fmt.Sprintf("%s must not be negative", label)
	default:
		return fmt.Sprintf("%s is invalid (%s)", label, rule)
	}
}

var fieldLabels = map[string]string{
	FieldName:          "Name",
	FieldPhone:         "Phone",
	FieldEmail:         "Email",
	FieldNationalID:    "National ID",
	FieldDateOfBirth:   "Date of birth",
	FieldAddress:       "Address",
	FieldQualification: "Qualification",
	FieldReligion:      "Religion",
	FieldExperience:    "Experience",
	FieldLastWorkplace: "Last workplace",
	FieldSalary:        "Salary",
}

func fieldLabel(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return field
}

func maxLength(field string) (string, bool) {
	for _, rule := range EmployeeRules[field] {
		if rule.Name == RuleMaxLength {
			return strings.TrimPrefix(rule.Tag, "max="), true
		}
	}
	return "", false
}
