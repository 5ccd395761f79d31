package server

import (
	"kiroku/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetTodos handles GET /api/todos
func (s *Server) GetTodos(c *fiber.Ctx) error {
	ctx := c.UserContext()

	todos, err := s.todoRepo.List(ctx)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError("ToDoの取得に失敗しました", err))
	}

	return c.JSON(todos)
}

// CreateTodo handles POST /api/todos
func (s *Server) CreateTodo(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		DueDate     string `json:"dueDate"`
		Priority    string `json:"priority"`
		Completed   bool   `json:"completed"`
		CategoryID  string `json:"categoryId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("リクエストボディが不正です"))
	}

	if req.Title == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("タイトルを入力してください"))
	}

	priority := models.Priority(req.Priority)
	if req.Priority == "" {
		priority = models.PriorityMedium
	} else if !priority.Valid() {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("優先度はlow、medium、highのいずれかです"))
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("期限の形式が正しくありません"))
	}

	todo := &models.Todo{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		Priority:    priority,
		Completed:   req.Completed,
	}

	if err := s.todoRepo.Create(ctx, todo, req.CategoryID); err != nil {
		return respondRepoError(c, err, "カテゴリが見つかりません", "ToDoの作成に失敗しました")
	}

	return c.JSON(todo)
}

// GetTodo handles GET /api/todos/:id
func (s *Server) GetTodo(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id := c.Params("id")

	todo, err := s.todoRepo.GetByID(ctx, id)
	if err != nil {
		return respondRepoError(c, err, "ToDoが見つかりません", "データの取得に失敗しました")
	}

	return c.JSON(todo)
}

// UpdateTodo handles PUT /api/todos/:id.
// The body is a patch: only supplied fields change. A supplied category
// array (even an empty one) replaces the whole tag set.
func (s *Server) UpdateTodo(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id := c.Params("id")

	var req struct {
		Title       *string        `json:"title"`
		Description *string        `json:"description"`
		DueDate     *string        `json:"dueDate"`
		Priority    *string        `json:"priority"`
		Completed   *bool          `json:"completed"`
		Category    *[]CategoryRef `json:"category"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("リクエストボディが不正です"))
	}

	todo, err := s.todoRepo.GetByID(ctx, id)
	if err != nil {
		return respondRepoError(c, err, "ToDoが見つかりません", "データの取得に失敗しました")
	}

	if req.Title != nil {
		if *req.Title == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("タイトルを入力してください"))
		}
		todo.Title = *req.Title
	}
	if req.Description != nil {
		todo.Description = *req.Description
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(*req.DueDate)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("期限の形式が正しくありません"))
		}
		todo.DueDate = dueDate
	}
	if req.Priority != nil {
		priority := models.Priority(*req.Priority)
		if !priority.Valid() {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("優先度はlow、medium、highのいずれかです"))
		}
		todo.Priority = priority
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}

	if err := s.todoRepo.Update(ctx, todo); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError("ToDoの更新に失敗しました", err))
	}

	if req.Category != nil {
		categories, err := s.resolveCategories(ctx, *req.Category)
		if err != nil {
			return respondRepoError(c, err, "カテゴリが見つかりません", "ToDoの更新に失敗しました")
		}
		if err := s.todoRepo.ReplaceCategories(ctx, todo, categories); err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError("ToDoの更新に失敗しました", err))
		}
	}

	return c.JSON(todo)
}

// DeleteTodo handles DELETE /api/todos/:id
func (s *Server) DeleteTodo(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id := c.Params("id")

	if err := s.todoRepo.Delete(ctx, id); err != nil {
		return respondRepoError(c, err, "ToDoが見つかりません", "ToDoの削除に失敗しました")
	}

	return c.JSON(fiber.Map{"message": "ToDoの削除に成功しました"})
}
