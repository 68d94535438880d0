package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/employee-records/internal/domain"
	"github.com/employee-records/internal/observable"
	"github.com/employee-records/internal/repository"
	"github.com/employee-records/internal/validation"
)

// NoEdit - индекс редактирования, когда составляется новая запись
const NoEdit = -1

// PhotoTicket - порядковый номер чтения фото. Превью может установить
// только самое позднее начатое чтение.
type PhotoTicket uint64

// Draft - снимок состояния черновика для отображения
type Draft struct {
	Fields       Fields
	Photo        string
	Documents    []domain.Document
	EditingIndex int
	Touched      []string
	Errors       validation.Violations
}

// IsEditing вычисляется из EditingIndex и нигде не хранится отдельно
func (d Draft) IsEditing() bool {
	return d.EditingIndex != NoEdit
}

// CommitResult описывает результат сохранения черновика
type CommitResult struct {
	Created    bool
	Index      int
	Employee   domain.Employee
	Violations validation.Violations
}

// DraftService определяет операции над черновиком записи
type DraftService interface {
	StartNew()
	StartEdit(index int) error
	UpdateFields(patch FieldsPatch)
	SetPhoto(data string)
	ClearPhoto()
	BeginPhotoRead() PhotoTicket
	FinishPhotoRead(ticket PhotoTicket, data string, readErr error) error
	AddDocuments(docs []domain.Document)
	RemoveStagedDocument(index int) error
	Commit(ctx context.Context) (CommitResult, error)
	Delete(ctx context.Context, index int) error
	IsEditing() bool
	Snapshot() Draft
	Observe() *observable.Value[Draft]
}

// Вызовы хранилища идут без s.mu: хранилище уведомляет подписчиков синхронно,
// и подписчик может читать черновик. opMu упорядочивает операции, которые
// согласуют индекс редактирования со списком.
type draftService struct {
	opMu      sync.Mutex
	mu        sync.Mutex
	publishMu sync.Mutex

	version   uint64
	published uint64

	store     *repository.RecordStore
	validator *validation.Validator

	fields       Fields
	photo        string
	documents    []domain.Document
	editingIndex int
	touched      map[string]bool
	photoSeq     PhotoTicket

	observed *observable.Value[Draft]
}

// NewDraftService создаёт черновик в состоянии "новая запись"
func NewDraftService(store *repository.RecordStore, validator *validation.Validator) DraftService {
	s := &draftService{
		store:        store,
		validator:    validator,
		documents:    []domain.Document{},
		editingIndex: NoEdit,
		touched:      make(map[string]bool),
	}
	s.observed = observable.New(s.snapshotLocked(), cloneDraft)
	return s
}

func (s *draftService) StartNew() {
	s.mu.Lock()
	s.resetLocked()
	s.unlockAndPublish()
}

func (s *draftService) StartEdit(index int) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	emp, err := s.store.At(index)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.fields = fieldsFromEmployee(emp)
	s.photo = emp.Photo
	s.documents = domain.CloneDocuments(emp.Documents)
	if s.documents == nil {
		s.documents = []domain.Document{}
	}
	s.editingIndex = index
	s.touched = make(map[string]bool)
	s.photoSeq++
	s.unlockAndPublish()
	return nil
}

func (s *draftService) UpdateFields(patch FieldsPatch) {
	s.mu.Lock()
	for _, field := range s.fields.apply(patch) {
		s.touched[field] = true
	}
	s.unlockAndPublish()
}

func (s *draftService) SetPhoto(data string) {
	s.mu.Lock()
	s.photo = data
	s.photoSeq++
	s.unlockAndPublish()
}

func (s *draftService) ClearPhoto() {
	s.SetPhoto("")
}

func (s *draftService) BeginPhotoRead() PhotoTicket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.photoSeq++
	return s.photoSeq
}

// FinishPhotoRead применяет результат чтения. Устаревший билет отбрасывается,
// неудачное чтение оставляет прежнее превью.
func (s *draftService) FinishPhotoRead(ticket PhotoTicket, data string, readErr error) error {
	s.mu.Lock()
	if ticket != s.photoSeq {
		s.mu.Unlock()
		return domain.ErrStalePhotoRead
	}
	if readErr != nil {
		s.mu.Unlock()
		return readErr
	}
	s.photo = data
	s.unlockAndPublish()
	return nil
}

func (s *draftService) AddDocuments(docs []domain.Document) {
	if len(docs) == 0 {
		return
	}
	s.mu.Lock()
	s.documents = append(s.documents, docs...)
	s.unlockAndPublish()
}

func (s *draftService) RemoveStagedDocument(index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.documents) {
		s.mu.Unlock()
		return fmt.Errorf("document index %d: %w", index, domain.ErrDocumentNotFound)
	}
	s.documents = append(s.documents[:index], s.documents[index+1:]...)
	s.unlockAndPublish()
	return nil
}

// Commit сохраняет черновик. Ошибка записи в хранилище возвращается уже после
// сброса черновика: запись остаётся в памяти и будет сохранена следующей записью.
func (s *draftService) Commit(ctx context.Context) (CommitResult, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()

	fields := s.fields.Trimmed()
	violations := s.validator.Validate(fields.Values())
	if !violations.Valid() {
		for _, field := range validation.Fields {
			s.touched[field] = true
		}
		s.unlockAndPublish()
		return CommitResult{Violations: violations}, fmt.Errorf("%w: %s", domain.ErrValidationFailed, violations.Error())
	}

	emp := fields.toEmployee(s.photo, s.documents)
	result := CommitResult{Created: s.editingIndex == NoEdit, Index: s.editingIndex, Employee: emp.Clone()}
	s.mu.Unlock()

	var err error
	if result.Created {
		result.Index = 0
		err = s.store.Prepend(ctx, emp)
	} else {
		err = s.store.UpdateAt(ctx, result.Index, emp)
	}
	if err != nil && !errors.Is(err, domain.ErrPersistFailed) {
		return CommitResult{}, err
	}

	s.mu.Lock()
	s.resetLocked()
	s.unlockAndPublish()
	return result, err
}

// Delete удаляет запись и согласует с этим цель редактирования:
// удалённая цель сбрасывает черновик, удаление выше по списку сдвигает индекс.
func (s *draftService) Delete(ctx context.Context, index int) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	err := s.store.RemoveAt(ctx, index)
	if err != nil && !errors.Is(err, domain.ErrPersistFailed) {
		return err
	}

	s.mu.Lock()
	switch {
	case s.editingIndex == index:
		s.resetLocked()
	case s.editingIndex > index:
		s.editingIndex--
	}

	s.unlockAndPublish()
	return err
}

func (s *draftService) IsEditing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingIndex != NoEdit
}

func (s *draftService) Snapshot() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Observe возвращает наблюдаемый снимок черновика.
// Подписчики не должны изменять черновик из обработчика.
func (s *draftService) Observe() *observable.Value[Draft] {
	return s.observed
}

// resetLocked вызывается под s.mu
func (s *draftService) resetLocked() {
	s.fields = Fields{}
	s.photo = ""
	s.documents = []domain.Document{}
	s.editingIndex = NoEdit
	s.touched = make(map[string]bool)
	s.photoSeq++
}

// snapshotLocked вызывается под s.mu
func (s *draftService) snapshotLocked() Draft {
	touched := make([]string, 0, len(s.touched))
	for _, field := range validation.Fields {
		if s.touched[field] {
			touched = append(touched, field)
		}
	}

	errs := validation.Violations{}
	if len(touched) > 0 {
		for field, rules := range s.validator.Validate(s.fields.Trimmed().Values()) {
			if s.touched[field] {
				errs[field] = rules
			}
		}
	}

	docs := domain.CloneDocuments(s.documents)
	if docs == nil {
		docs = []domain.Document{}
	}

	return Draft{
		Fields:       s.fields,
		Photo:        s.photo,
		Documents:    docs,
		EditingIndex: s.editingIndex,
		Touched:      touched,
		Errors:       errs,
	}
}

// unlockAndPublish снимает s.mu и рассылает снимок подписчикам.
// Снимок, опоздавший к рассылке после более нового, отбрасывается.
func (s *draftService) unlockAndPublish() {
	s.version++
	version := s.version
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.publishMu.Lock()
	defer s.publishMu.Unlock()
	if version <= s.published {
		return
	}
	s.published = version
	s.observed.Set(snapshot)
}

func cloneDraft(d Draft) Draft {
	d.Documents = domain.CloneDocuments(d.Documents)
	d.Touched = slices.Clone(d.Touched)
	errs := make(validation.Violations, len(d.Errors))
	for field, rules := range d.Errors {
		errs[field] = slices.Clone(rules)
	}
	d.Errors = errs
	return d
}
