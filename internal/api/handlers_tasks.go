package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sradha-notes/backend/internal/api/respond"
	"github.com/sradha-notes/backend/internal/model"
)

// --- Todos ---

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := s.store.Todos().List(r.Context(), r.URL.Query().Get("filter"))
	if err != nil {
		s.fail(w, err, "")
		return
	}
	if todos == nil {
		todos = []*model.Todo{}
	}
	respond.List(w, todos, len(todos))
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	var in model.Todo
	if err := decodeJSON(r, &in); err != nil {
		s.fail(w, err, "")
		return
	}
	todo, err := s.store.Todos().Create(r.Context(), &in)
	if err != nil {
		s.fail(w, err, "")
		return
	}
	respond.Created(w, "Todo added! ✅", todo)
}

func (s *Server) handleToggleTodo(w http.ResponseWriter, r *http.Request) {
	todo, err := s.store.Todos().Toggle(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, err, "Todo not found 🔍")
		return
	}
	msg := "Task reopened"
	if todo.Completed {
		msg = "Task completed! 🎉"
	}
	respond.OK(w, msg, todo)
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Todos().Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.fail(w, err, "Todo not found 🔍")
		return
	}
	respond.OK(w, "Todo deleted! 🗑️", nil)
}

func (s *Server) handleClearCompletedTodos(w http.ResponseWriter, r *http.Request) {
	n, err := s.store.Todos().ClearCompleted(r.Context())
	if err != nil {
		s.fail(w, err, "")
		return
	}
	respond.OK(w, fmt.Sprintf("%d completed todos cleared! 🧹", n), nil)
}

// --- Events ---

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := model.EventFilter{
		Date:     q.Get("date"),
		Upcoming: q.Get("upcoming") == "true",
	}
	events, err := s.store.Events().List(r.Context(), f)
	if err != nil {
		s.fail(w, err, "")
		return
	}
	if events == nil {
		events = []*model.Event{}
	}
	respond.List(w, events, len(events))
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var in model.Event
	if err := decodeJSON(r, &in); err != nil {
		s.fail(w, err, "")
		return
	}
	event, err := s.store.Events().Create(r.Context(), &in)
	if err != nil {
		s.fail(w, err, "")
		return
	}
	respond.Created(w, "Event created! 📅", event)
}

func (s *Server) handleListEventsByDate(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	if err := model.ValidDate(date); err != nil {
		s.fail(w, err, "")
		return
	}
	events, err := s.store.Events().ListByDate(r.Context(), date)
	if err != nil {
		s.fail(w, err, "")
		return
	}
	if events == nil {
		events = []*model.Event{}
	}
	respond.List(w, events, len(events))
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Title *string `json:"title"`
		Emoji *string `json:"emoji"`
		Date  *string `json:"date"`
		Time  *string `json:"time"`
	}
	if err := decodeJSON(r, &in); err != nil {
		s.fail(w, err, "")
		return
	}
	event, err := s.store.Events().Update(r.Context(), mux.Vars(r)["id"], model.EventUpdate{
		Title: in.Title, Emoji: in.Emoji, Date: in.Date, Time: in.Time,
	})
	if err != nil {
		s.fail(w, err, "Event not found 🔍")
		return
	}
	respond.OK(w, "Event updated! ✨", event)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Events().Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.fail(w, err, "Event not found 🔍")
		return
	}
	respond.OK(w, "Event deleted! 🗑️", nil)
}
