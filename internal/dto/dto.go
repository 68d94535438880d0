package dto

// UpdateDraftRequest - частичное изменение полей черновика
type UpdateDraftRequest struct {
	Name          *string  `json:"name"`
	Phone         *string  `json:"phone"`
	Email         *string  `json:"email"`
	NationalID    *string  `json:"nationalId"`
	DateOfBirth   *string  `json:"dateOfBirth"`
	Address       *string  `json:"address"`
	Qualification *string  `json:"qualification"`
	Religion      *string  `json:"religion"`
	Experience    *float64 `json:"experience"`
	LastWorkplace *string  `json:"lastWorkplace"`
	Salary        *float64 `json:"salary"`
}

// DocumentRequest - метаданные выбранного файла
type DocumentRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	Size int64  `json:"size" validate:"min=0"`
}

// AddDocumentsRequest - запрос на добавление документов в черновик
type AddDocumentsRequest struct {
	Documents []DocumentRequest `json:"documents" validate:"required,min=1,dive"`
}

// SetPhotoRequest - фото, уже закодированное клиентом в data URL
type SetPhotoRequest struct {
	DataURL string `json:"dataUrl" validate:"required,datauri"`
}

// DocumentResponse - документ с размером в читаемом виде
type DocumentResponse struct {
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	SizeLabel string `json:"sizeLabel"`
}

// EmployeeResponse - запись в списке
type EmployeeResponse struct {
	Index         int                `json:"index"`
	Initials      string             `json:"initials"`
	Name          string             `json:"name"`
	Phone         string             `json:"phone"`
	Email         string             `json:"email,omitempty"`
	NationalID    string             `json:"nationalId"`
	DateOfBirth   string             `json:"dateOfBirth"`
	Address       string             `json:"address"`
	Qualification string             `json:"qualification"`
	Religion      string             `json:"religion,omitempty"`
	Experience    float64            `json:"experience"`
	LastWorkplace string             `json:"lastWorkplace,omitempty"`
	Salary        float64            `json:"salary"`
	Photo         string             `json:"photo,omitempty"`
	Documents     []DocumentResponse `json:"documents"`
}

// EmployeeListResponse - список записей и состояние сохранения
type EmployeeListResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	Count     int                `json:"count"`
	Pending   bool               `json:"pending"`
}

// DraftFields - значения полей черновика
type DraftFields struct {
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Email         string  `json:"email"`
	NationalID    string  `json:"nationalId"`
	DateOfBirth   string  `json:"dateOfBirth"`
	Address       string  `json:"address"`
	Qualification string  `json:"qualification"`
	Religion      string  `json:"religion"`
	Experience    float64 `json:"experience"`
	LastWorkplace string  `json:"lastWorkplace"`
	Salary        float64 `json:"salary"`
}

// DraftResponse - состояние черновика
type DraftResponse struct {
	Fields       DraftFields             `json:"fields"`
	Photo        string                  `json:"photo,omitempty"`
	Documents    []DocumentResponse      `json:"documents"`
	IsEditing    bool                    `json:"isEditing"`
	EditingIndex *int                    `json:"editingIndex"`
	Touched      []string                `json:"touched"`
	Errors       map[string][]FieldError `json:"errors"`
}

// FieldError - нарушенное правило поля
type FieldError struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// CommitResponse - результат сохранения черновика
type CommitResponse struct {
	Created  bool             `json:"created"`
	Index    int              `json:"index"`
	Employee EmployeeResponse `json:"employee"`
}

// ValidationErrorResponse - ответ при непрошедшей проверке формы
type ValidationErrorResponse struct {
	Error  string                  `json:"error"`
	Fields map[string][]FieldError `json:"fields"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
