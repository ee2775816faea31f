package api

import (
	"net/http"
	"strconv"

	"github.com/quillworks/mimic/internal/store"
)

func (s *Server) createTopic(w http.ResponseWriter, r *http.Request) {
	var req createTopicRequest
	if err := decodeValid(r, &req); err != nil {
		failWith(w, http.StatusBadRequest, err.Error())
		return
	}

	topic, err := s.orch.CreateTopic(r.Context(), store.Topic{
		Name:        req.Name,
		Level:       req.Level,
		ParentID:    req.ParentID,
		Description: req.Description,
	})
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusCreated, map[string]any{"success": true, "topic": topic})
}

func (s *Server) getTopic(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		failWith(w, http.StatusBadRequest, err.Error())
		return
	}
	topic, err := s.catalog.GetTopic(r.Context(), id)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"success": true, "topic": topic})
}

func (s *Server) listTopics(w http.ResponseWriter, r *http.Request) {
	var (
		level    *int
		parentID *int64
	)
	if raw := r.URL.Query().Get("level"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			failWith(w, http.StatusBadRequest, "invalid level")
			return
		}
		level = &n
	}
	if raw := r.URL.Query().Get("parent_id"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			failWith(w, http.StatusBadRequest, "invalid parent_id")
			return
		}
		parentID = &n
	}

	topics, err := s.catalog.ListTopics(r.Context(), level, parentID)
	if err != nil {
		fail(w, err)
		return
	}
	if topics == nil {
		topics = []store.Topic{}
	}
	respond(w, http.StatusOK, map[string]any{"success": true, "topics": topics})
}

func (s *Server) topicHierarchy(w http.ResponseWriter, r *http.Request) {
	nodes, err := s.catalog.Hierarchy(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	if nodes == nil {
		nodes = []*store.TopicNode{}
	}
	respond(w, http.StatusOK, map[string]any{"success": true, "hierarchy": nodes})
}

func (s *Server) updateTopic(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		failWith(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateTopicRequest
	if err := decodeValid(r, &req); err != nil {
		failWith(w, http.StatusBadRequest, err.Error())
		return
	}

	topic, err := s.catalog.UpdateTopic(r.Context(), id, store.TopicUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"success": true, "topic": topic})
}

func (s *Server) deleteTopic(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		failWith(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.catalog.DeleteTopic(r.Context(), id); err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) associateStyle(w http.ResponseWriter, r *http.Request) {
	topicID, err := idParam(r, "id")
	if err != nil {
		failWith(w, http.StatusBadRequest, err.Error())
		return
	}
	styleID, err := idParam(r, "styleID")
	if err != nil {
		failWith(w, http.StatusBadRequest, err.Error())
		return
	}

	assoc, err := s.catalog.AssociateStyle(r.Context(), topicID, styleID)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"success": true, "association": assoc})
}

func (s *Server) dissociateStyle(w http.ResponseWriter, r *http.Request) {
	topicID, err := idParam(r, "id")
	if err != nil {
		failWith(w, http.StatusBadRequest, err.Error())
		return
	}
	styleID, err := idParam(r, "styleID")
	if err != nil {
		failWith(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.catalog.DissociateStyle(r.Context(), topicID, styleID); err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) associatedStyles(w http.ResponseWriter, r *http.Request) {
	topicID, err := idParam(r, "id")
	if err != nil {
		failWith(w, http.StatusBadRequest, err.Error())
		return
	}

	styles, err := s.catalog.AssociatedStyles(r.Context(), topicID)
	if err != nil {
		fail(w, err)
		return
	}
	if styles == nil {
		styles = []store.StyleRecord{}
	}
	respond(w, http.StatusOK, map[string]any{"success": true, "styles": styles})
}
