package service

import (
	"strings"

	"github.com/employee-records/internal/domain"
	"github.com/employee-records/internal/validation"
)

// Fields - значения полей формы черновика
type Fields struct {
	Name          string
	Phone         string
	Email         string
	NationalID    string
	DateOfBirth   string
	Address       string
	Qualification string
	Religion      string
	Experience    float64
	LastWorkplace string
	Salary        float64
}

// FieldsPatch - частичное изменение формы; nil означает "не менять"
type FieldsPatch struct {
	Name          *string
	Phone         *string
	Email         *string
	NationalID    *string
	DateOfBirth   *string
	Address       *string
	Qualification *string
	Religion      *string
	Experience    *float64
	LastWorkplace *string
	Salary        *float64
}

// Values возвращает значения формы в виде отображения имя поля -> значение
func (f Fields) Values() map[string]any {
	return map[string]any{
		validation.FieldName:          f.Name,
		validation.FieldPhone:         f.Phone,
		validation.FieldEmail:         f.Email,
		validation.FieldNationalID:    f.NationalID,
		validation.FieldDateOfBirth:   f.DateOfBirth,
		validation.FieldAddress:       f.Address,
		validation.FieldQualification: f.Qualification,
		validation.FieldReligion:      f.Religion,
		validation.FieldExperience:    f.Experience,
		validation.FieldLastWorkplace: f.LastWorkplace,
		validation.FieldSalary:        f.Salary,
	}
}

// Trimmed возвращает копию формы без пробелов по краям строковых полей
func (f Fields) Trimmed() Fields {
	f.Name = strings.TrimSpace(f.Name)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Email = strings.TrimSpace(f.Email)
	f.NationalID = strings.TrimSpace(f.NationalID)
	f.DateOfBirth = strings.TrimSpace(f.DateOfBirth)
	f.Address = strings.TrimSpace(f.Address)
	f.Qualification = strings.TrimSpace(f.Qualification)
	f.Religion = strings.TrimSpace(f.Religion)
	f.LastWorkplace = strings.TrimSpace(f.LastWorkplace)
	return f
}

// apply применяет изменение и возвращает имена затронутых полей
func (f *Fields) apply(p FieldsPatch) []string {
	var touched []string

	setString := func(dst *string, src *string, field string) {
		if src != nil {
			*dst = *src
			touched = append(touched, field)
		}
	}
	setNumber := func(dst *float64, src *float64, field string) {
		if src != nil {
			*dst = *src
			touched = append(touched, field)
		}
	}

	setString(&f.Name, p.Name, validation.FieldName)
	setString(&f.Phone, p.Phone, validation.FieldPhone)
	setString(&f.Email, p.Email, validation.FieldEmail)
	setString(&f.NationalID, p.NationalID, validation.FieldNationalID)
	setString(&f.DateOfBirth, p.DateOfBirth, validation.FieldDateOfBirth)
	setString(&f.Address, p.Address, validation.FieldAddress)
	setString(&f.Qualification, p.Qualification, validation.FieldQualification)
	setString(&f.Religion, p.Religion, validation.FieldReligion)
	setNumber(&f.Experience, p.Experience, validation.FieldExperience)
	setString(&f.LastWorkplace, p.LastWorkplace, validation.FieldLastWorkplace)
	setNumber(&f.Salary, p.Salary, validation.FieldSalary)

	return touched
}

// fieldsFromEmployee копирует поля записи в форму
func fieldsFromEmployee(emp domain.Employee) Fields {
	return Fields{
		Name:          emp.Name,
		Phone:         emp.Phone,
		Email:         emp.Email,
		NationalID:    emp.NationalID,
		DateOfBirth:   emp.DateOfBirth,
		Address:       emp.Address,
		Qualification: emp.Qualification,
		Religion:      emp.Religion,
		Experience:    emp.Experience,
		LastWorkplace: emp.LastWorkplace,
		Salary:        emp.Salary,
	}
}

// toEmployee объединяет форму, фото и документы в запись
func (f Fields) toEmployee(photo string, docs []domain.Document) domain.Employee {
	return domain.Employee{
		Name:          f.Name,
		Phone:         f.Phone,
		Email:         f.Email,
		NationalID:    f.NationalID,
		DateOfBirth:   f.DateOfBirth,
		Address:       f.Address,
		Qualification: f.Qualification,
		Religion:      f.Religion,
		Experience:    f.Experience,
		LastWorkplace: f.LastWorkplace,
		Salary:        f.Salary,
		Photo:         photo,
		Documents:     domain.CloneDocuments(docs),
	}
}
