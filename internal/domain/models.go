package domain

import (
	"time"
)

// Employee представляет запись о сотруднике
type Employee struct {
	Name          string     `json:"name"`
	Phone         string     `json:"phone"`
	Email         string     `json:"email,omitempty"`
	NationalID    string     `json:"nationalId"`
	DateOfBirth   string     `json:"dateOfBirth"`
	Address       string     `json:"address"`
	Qualification string     `json:"qualification"`
	Religion      string     `json:"religion,omitempty"`
	Experience    float64    `json:"experience"`
	LastWorkplace string     `json:"lastWorkplace,omitempty"`
	Salary        float64    `json:"salary"`
	Photo         string     `json:"photo,omitempty"`
	Documents     []Document `json:"documents,omitempty"`
}

// Clone возвращает копию записи, не разделяющую список документов с оригиналом
func (e Employee) Clone() Employee {
	e.Documents = CloneDocuments(e.Documents)
	return e
}

// Document описывает приложенный файл; содержимое не хранится
type Document struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// CloneDocuments копирует список документов; nil остаётся nil
func CloneDocuments(docs []Document) []Document {
	if docs == nil {
		return nil
	}
	out := make([]Document, len(docs))
	copy(out, docs)
	return out
}

// CloneEmployees копирует список записей вместе с вложенными документами
func CloneEmployees(list []Employee) []Employee {
	out := make([]Employee, len(list))
	for i, emp := range list {
		out[i] = emp.Clone()
	}
	return out
}

// KVEntry представляет строку хранилища ключ-значение
type KVEntry struct {
	Key       string    `gorm:"primaryKey;type:varchar(255)"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName задаёт имя таблицы для GORM
func (KVEntry) TableName() string {
	return "kv_entries"
}
