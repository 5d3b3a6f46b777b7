package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskdeck/taskdeck/internal/account"
	"github.com/taskdeck/taskdeck/internal/todo"
)

// createTodoRequest is the request body for POST /api/todos.
type createTodoRequest struct {
	Label string `json:"label"`
}

// toggleTodoRequest is the request body for PATCH /api/todos/{id}.
// Done is optional: absent means flip the current state.
type toggleTodoRequest struct {
	Done *bool `json:"done"`
}

// todoResponse carries a single task.
type todoResponse struct {
	Todo account.Task `json:"todo"`
}

// todosResponse carries an account's full task list, newest first.
type todosResponse struct {
	Todos []account.Task `json:"todos"`
}

// handleListTodos returns the caller's tasks.
func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	grant, ok := s.authenticate(w, r, "")
	if !ok {
		return
	}
	defer grant.Close()

	writeJSON(w, http.StatusOK, todosResponse{Todos: todo.List(grant.Account)})
}

// handleCreateTodo prepends a new task to the caller's list and persists.
func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	grant, ok := s.authenticate(w, r, "")
	if !ok {
		return
	}
	defer grant.Close()

	var req createTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "invalid JSON body")
		return
	}

	task, err := todo.Create(grant.Account, req.Label)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if err := grant.Save(r.Context()); err != nil {
		s.logger.Error("persisting task creation", "error", err)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusCreated, todoResponse{Todo: task})
}

// handleToggleTodo sets or flips a task's done flag and persists.
// An empty request body means flip.
func (s *Server) handleToggleTodo(w http.ResponseWriter, r *http.Request) {
	grant, ok := s.authenticate(w, r, "")
	if !ok {
		return
	}
	defer grant.Close()

	var req toggleTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeValidationError(w, "invalid JSON body")
		return
	}

	task, err := todo.Toggle(grant.Account, chi.URLParam(r, "id"), req.Done)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if err := grant.Save(r.Context()); err != nil {
		s.logger.Error("persisting task toggle", "error", err)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, todoResponse{Todo: task})
}

// handleDeleteTodo removes a task by id. A miss returns 404 without touching
// durable state.
func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	grant, ok := s.authenticate(w, r, "")
	if !ok {
		return
	}
	defer grant.Close()

	if !todo.Delete(grant.Account, chi.URLParam(r, "id")) {
		writeDomainError(w, todo.ErrTaskNotFound)
		return
	}

	if err := grant.Save(r.Context()); err != nil {
		s.logger.Error("persisting task deletion", "error", err)
		writeInternalError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
