package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/KarpovAlexandrGo/task-manager/internal/entity"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// CreateTaskRequest тело POST /api/v1/task. Статус принимается, но новая задача всегда Pending.
type CreateTaskRequest struct {
	Title       string             `json:"title" validate:"required,min=3,max=200" example:"Prepare release notes"`
	Description string             `json:"description" validate:"required,min=3,max=1000" example:"Collect merged PRs for 1.4"`
	DueDate     string             `json:"dueDate" validate:"required" example:"2025-01-31"`
	AssignedTo  string             `json:"assignedTo" validate:"required" example:"alice@example.com"`
	Category    string             `json:"category" validate:"required" example:"release"`
	Status      *entity.TaskStatus `json:"status,omitempty" validate:"omitempty,oneof=Pending Completed" enums:"Pending,Completed"`
}

func (r CreateTaskRequest) Task() entity.Task {
	return entity.Task{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		AssignedTo:  r.AssignedTo,
		Category:    r.Category,
	}
}

// UpdateTaskRequest тело PUT /api/v1/task/{id}: меняются только переданные поля.
type UpdateTaskRequest struct {
	Title       *string            `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description *string            `json:"description,omitempty" validate:"omitempty,min=3,max=1000"`
	DueDate     *string            `json:"dueDate,omitempty" validate:"omitempty,min=1"`
	AssignedTo  *string            `json:"assignedTo,omitempty" validate:"omitempty,min=1"`
	Category    *string            `json:"category,omitempty" validate:"omitempty,min=1"`
	Status      *entity.TaskStatus `json:"status,omitempty" validate:"omitempty,oneof=Pending Completed" enums:"Pending,Completed"`
}

func (r UpdateTaskRequest) Patch() entity.TaskPatch {
	return entity.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		AssignedTo:  r.AssignedTo,
		Category:    r.Category,
		Status:      r.Status,
	}
}

var (
	// errInvalidPayload означает, что тело запроса не разобралось как JSON.
	errInvalidPayload = errors.New(messageInvalidPayload)
	// errPayloadTooLarge тело длиннее REQ_BODY_LIMIT.
	errPayloadTooLarge = errors.New(messagePayloadTooLarge)
)

// decodeAndValidate читает JSON-тело в dst и проверяет его схему.
// Ошибка разбора возвращается как errInvalidPayload или errPayloadTooLarge,
// ошибка схемы как текст для клиента.
func decodeAndValidate(body io.Reader, dst any) error {
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return errPayloadTooLarge
		}
		return errInvalidPayload
	}
	if err := validate.Struct(dst); err != nil {
		return errors.New(validationMessage(err))
	}
	return nil
}

// requestErrorStatus код ответа на ошибку decodeAndValidate.
func requestErrorStatus(err error) int {
	if errors.Is(err, errPayloadTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", fe.Field())
	case "min":
		return fmt.Sprintf("%q length must be at least %s characters long", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%q length must be less than or equal to %s characters long", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%q must be one of [%s]", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%q is invalid", fe.Field())
	}
}

// parseListQuery собирает фильтр из query-параметров. Пустое значение равно отсутствию параметра.
func parseListQuery(q url.Values) (entity.TaskFilter, error) {
	filter := entity.TaskFilter{
		AssignedTo: q.Get("assignedTo"),
		Category:   q.Get("category"),
	}

	var err error
	if filter.Offset, err = nonNegativeParam(q, "offset"); err != nil {
		return entity.TaskFilter{}, err
	}
	if filter.Limit, err = nonNegativeParam(q, "limit"); err != nil {
		return entity.TaskFilter{}, err
	}
	return filter, nil
}

func nonNegativeParam(q url.Values, name string) (*int, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%q must be a non-negative integer", name)
	}
	return &n, nil
}
