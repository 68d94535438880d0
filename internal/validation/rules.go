package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Имена полей формы; совпадают с JSON-ключами записи
const (
	FieldName          = "name"
	FieldPhone         = "phone"
	FieldEmail         = "email"
	FieldNationalID    = "nationalId"
	FieldDateOfBirth   = "dateOfBirth"
	FieldAddress       = "address"
	FieldQualification = "qualification"
	FieldReligion      = "religion"
	FieldExperience    = "experience"
	FieldLastWorkplace = "lastWorkplace"
	FieldSalary        = "salary"
)

// Имена правил, которые попадают в отчёт о нарушениях
const (
	RuleRequired  = "required"
	RuleMaxLength = "maxlength"
	RulePattern   = "pattern"
	RuleEmail     = "email"
	RuleDate      = "date"
	RuleMin       = "min"
)

// Rule связывает имя правила с тегом validator/v10
type Rule struct {
	Name string
	Tag  string
}

// Fields перечисляет все поля формы в порядке отображения
var Fields = []string{
	FieldName, FieldPhone, FieldEmail, FieldNationalID, FieldDateOfBirth, FieldAddress,
	FieldQualification, FieldReligion, FieldExperience, FieldLastWorkplace, FieldSalary,
}

// EmployeeRules - декларативные ограничения для каждого поля формы.
// Необязательные форматы пропускают пустое значение через omitempty.
var EmployeeRules = map[string][]Rule{
	FieldName: {
		{Name: RuleRequired, Tag: "required"},
		{Name: RuleMaxLength, Tag: "max=100"},
	},
	FieldPhone: {
		{Name: RuleRequired, Tag: "required"},
		{Name: RulePattern, Tag: "omitempty,phone_digits"},
	},
	FieldEmail: {
		{Name: RuleEmail, Tag: "omitempty,email"},
	},
	FieldNationalID: {
		{Name: RuleRequired, Tag: "required"},
		{Name: RuleMaxLength, Tag: "max=30"},
	},
	FieldDateOfBirth: {
		{Name: RuleRequired, Tag: "required"},
		{Name: RuleDate, Tag: "omitempty,datetime=2006-01-02"},
	},
	FieldAddress: {
		{Name: RuleRequired, Tag: "required"},
		{Name: RuleMaxLength, Tag: "max=250"},
	},
	FieldQualification: {
		{Name: RuleRequired, Tag: "required"},
		{Name: RuleMaxLength, Tag: "max=120"},
	},
	FieldExperience: {
		{Name: RuleMin, Tag: "min=0"},
	},
	FieldSalary: {
		{Name: RuleMin, Tag: "min=0"},
	},
}

// phoneRegex - только цифры, от 10 до 15
var phoneRegex = regexp.MustCompile(`^[0-9]{10,15}$`)

// RegisterValidators регистрирует собственные проверки в экземпляре валидатора
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("phone_digits", PhoneDigits)
}

// PhoneDigits проверяет, что телефон состоит из 10-15 цифр
func PhoneDigits(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}
