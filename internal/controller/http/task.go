package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/KarpovAlexandrGo/task-manager/internal/entity"
	"github.com/KarpovAlexandrGo/task-manager/internal/usecase"
	"github.com/KarpovAlexandrGo/task-manager/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// TaskHandler обрабатывает HTTP-запросы для работы с задачами.
type TaskHandler struct {
	taskUseCase usecase.TaskUseCase
}

// NewTaskHandler создает новый экземпляр TaskHandler.
func NewTaskHandler(taskUseCase usecase.TaskUseCase) *TaskHandler {
	return &TaskHandler{
		taskUseCase: taskUseCase,
	}
}

// RegisterRoutes регистрирует маршруты для обработки задач.
func (h *TaskHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/task", h.CreateTask)
		r.Get("/task/{id}", h.GetTask)
		r.Put("/task/{id}", h.UpdateTask)
		r.Delete("/task/{id}", h.DeleteTask)
		r.Get("/tasks", h.ListTasks)
	})
}

type createdTask struct {
	ID string `json:"id"`
}

// CreateTask обрабатывает создание новой задачи.
// @Summary      Создать задачу
// @Description  Создает новую задачу; статус новой задачи всегда Pending
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        task body     CreateTaskRequest true "Данные задачи"
// @Success      200  {object} Response{body=createdTask}
// @Failure      400  {object} Response "Неверный формат или ошибка валидации"
// @Failure      413  {object} Response "Тело запроса слишком большое"
// @Failure      500  {object} Response "Внутренняя ошибка сервера"
// @Router       /api/v1/task [post]
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req CreateTaskRequest
	if err := decodeAndValidate(r.Body, &req); err != nil {
		log.WithError(err).Warn("Invalid create task request")
		respondWithMessage(w, requestErrorStatus(err), err.Error())
		return
	}

	task, err := h.taskUseCase.Create(r.Context(), req.Task())
	if err != nil {
		log.WithError(err).Error("Failed to create task")
		respondWithMessage(w, http.StatusInternalServerError, messageInternalError)
		return
	}

	respondWithJSON(w, http.StatusOK, Response{
		Body:    createdTask{ID: task.ID},
		Message: fmt.Sprintf("%s task created successfully", task.ID),
	})
}

// GetTask обрабатывает получение задачи по ID.
// @Summary      Получить задачу
// @Description  Возвращает задачу по её ID
// @Tags         tasks
// @Produce      json
// @Param        id   path     string true "ID задачи"
// @Success      200  {object} Response{body=entity.Task}
// @Success      204  "Задача не найдена"
// @Failure      500  {object} Response "Внутренняя ошибка сервера"
// @Router       /api/v1/task/{id} [get]
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	task, err := h.taskUseCase.Get(r.Context(), id)
	if err != nil {
		h.respondWithTaskError(w, r, id, err)
		return
	}

	respondWithJSON(w, http.StatusOK, Response{
		Body:    task,
		Message: fmt.Sprintf("%s task retrieved successfully", id),
	})
}

// ListTasks обрабатывает получение списка задач.
// @Summary      Список задач
// @Description  Фильтр по assignedTo и category; пагинация применяется, только если заданы и offset, и limit
// @Tags         tasks
// @Produce      json
// @Param        assignedTo query    string false "Исполнитель"
// @Param        category   query    string false "Категория"
// @Param        offset     query    int    false "Смещение" minimum(0)
// @Param        limit      query    int    false "Количество элементов" minimum(0)
// @Success      200        {object} Response{body=[]entity.Task}
// @Failure      400        {object} Response "Неверные параметры пагинации"
// @Failure      500        {object} Response "Внутренняя ошибка сервера"
// @Router       /api/v1/tasks [get]
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListQuery(r.URL.Query())
	if err != nil {
		logger.FromContext(r.Context()).WithError(err).Warn("Invalid list query")
		respondWithMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	tasks, err := h.taskUseCase.List(r.Context(), filter)
	if err != nil {
		logger.FromContext(r.Context()).WithError(err).Error("Failed to list tasks")
		respondWithMessage(w, http.StatusInternalServerError, messageInternalError)
		return
	}
	if tasks == nil {
		tasks = []entity.Task{}
	}

	respondWithJSON(w, http.StatusOK, Response{
		Body:    tasks,
		Message: fmt.Sprintf("%d tasks retrieved successfully", len(tasks)),
	})
}

// UpdateTask обрабатывает обновление задачи.
// @Summary      Обновить задачу
// @Description  Частично обновляет задачу: меняются только переданные поля
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id   path     string            true "ID задачи"
// @Param        task body     UpdateTaskRequest true "Обновляемые поля"
// @Success      200  {object} Response{body=entity.Task}
// @Success      204  "Задача не найдена"
// @Failure      400  {object} Response "Неверный формат или ошибка валидации"
// @Failure      413  {object} Response "Тело запроса слишком большое"
// @Failure      500  {object} Response "Внутренняя ошибка сервера"
// @Router       /api/v1/task/{id} [put]
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateTaskRequest
	if err := decodeAndValidate(r.Body, &req); err != nil {
		logger.FromContext(r.Context()).WithError(err).Warn("Invalid update task request")
		respondWithMessage(w, requestErrorStatus(err), err.Error())
		return
	}

	task, err := h.taskUseCase.Update(r.Context(), id, req.Patch())
	if err != nil {
		h.respondWithTaskError(w, r, id, err)
		return
	}

	respondWithJSON(w, http.StatusOK, Response{
		Body:    task,
		Message: fmt.Sprintf("%s task updated successfully", id),
	})
}

// DeleteTask обрабатывает удаление задачи.
// @Summary      Удалить задачу
// @Description  Удаляет задачу по её ID
// @Tags         tasks
// @Produce      json
// @Param        id   path     string true "ID задачи"
// @Success      200  {object} Response
// @Success      204  "Задача не найдена"
// @Failure      500  {object} Response "Внутренняя ошибка сервера"
// @Router       /api/v1/task/{id} [delete]
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.taskUseCase.Delete(r.Context(), id); err != nil {
		h.respondWithTaskError(w, r, id, err)
		return
	}

	respondWithMessage(w, http.StatusOK, fmt.Sprintf("%s task deleted successfully", id))
}

// respondWithTaskError: отсутствующая задача это 204 без тела, остальное 500.
func (h *TaskHandler) respondWithTaskError(w http.ResponseWriter, r *http.Request, id string, err error) {
	if errors.Is(err, usecase.ErrTaskNotFound) {
		respondNoContent(w)
		return
	}
	logger.FromContext(r.Context()).WithField("task_id", id).WithError(err).Error("Task operation failed")
	respondWithMessage(w, http.StatusInternalServerError, messageInternalError)
}
