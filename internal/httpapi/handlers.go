package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/p-n-ai/codelearn/internal/content"
	"github.com/p-n-ai/codelearn/internal/progress"
)

// respondContent writes a successful content response. Errors never reach
// it, so a missing id or bad filter is not answered with 304.
func (h *handler) respondContent(c *gin.Context, body any) {
	if h.notModified(c) {
		return
	}
	respondOK(c, body)
}

// notModified sets the catalog ETag on anonymous responses and answers
// 304 when the client already holds it. Personalized responses are
// marked private instead.
func (h *handler) notModified(c *gin.Context) bool {
	if currentUser(c) != "" {
		c.Header("Cache-Control", "private, no-cache")
		return false
	}
	etag := `"` + h.svc.Catalog().Digest() + `"`
	c.Header("ETag", etag)
	c.Header("Cache-Control", "public, no-cache")
	if match := c.GetHeader("If-None-Match"); match != "" {
		for _, candidate := range strings.Split(match, ",") {
			candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
			if candidate == etag || candidate == "*" {
				c.Status(http.StatusNotModified)
				return true
			}
		}
	}
	return false
}

func (h *handler) internalError(c *gin.Context, err error) {
	respondError(c, http.StatusInternalServerError, CodeInternal, err)
}

func (h *handler) listTopics(c *gin.Context) {
	topics, err := h.svc.Topics(c.Request.Context(), currentUser(c))
	if err != nil {
		h.internalError(c, err)
		return
	}
	h.respondContent(c, gin.H{"topics": topics})
}

func (h *handler) getTopic(c *gin.Context) {
	id := c.Param("id")
	detail, ok, err := h.svc.Topic(c.Request.Context(), currentUser(c), id)
	if err != nil {
		h.internalError(c, err)
		return
	}
	if !ok {
		respondError(c, http.StatusNotFound, CodeTopicNotFound, fmt.Errorf("topic %q not found", id))
		return
	}
	h.respondContent(c, detail)
}

func (h *handler) learnScreen(c *gin.Context) {
	view, err := h.svc.Learn(c.Request.Context(), currentUser(c), c.Query("topicId"), c.Query("lessonId"))
	if err != nil {
		h.internalError(c, err)
		return
	}
	h.respondContent(c, view)
}

func (h *handler) practiceScreen(c *gin.Context) {
	view, err := h.svc.Practice(c.Request.Context(), currentUser(c), c.Query("difficulty"))
	if err != nil {
		if errors.Is(err, content.ErrUnknownDifficulty) {
			respondError(c, http.StatusBadRequest, CodeInvalidDifficulty, err)
			return
		}
		h.internalError(c, err)
		return
	}
	h.respondContent(c, view)
}

func (h *handler) getLesson(c *gin.Context) {
	id := c.Param("id")
	view, ok, err := h.svc.LessonDetail(c.Request.Context(), currentUser(c), id)
	if err != nil {
		h.internalError(c, err)
		return
	}
	if !ok {
		respondError(c, http.StatusNotFound, CodeLessonNotFound, fmt.Errorf("lesson %q not found", id))
		return
	}
	if queryBool(c, "bookmarked") {
		view.ToggleBookmark()
	}
	h.respondContent(c, view)
}

func (h *handler) getExercise(c *gin.Context) {
	id := c.Param("id")
	view, ok, err := h.svc.ExerciseDetail(c.Request.Context(), currentUser(c), id)
	if err != nil {
		h.internalError(c, err)
		return
	}
	if !ok {
		respondError(c, http.StatusNotFound, CodeExerciseNotFound, fmt.Errorf("exercise %q not found", id))
		return
	}
	if raw := c.Query("hint"); raw != "" {
		i, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, CodeInvalidHint, fmt.Errorf("hint must be an integer, got %q", raw))
			return
		}
		if _, err := view.ToggleHint(i); err != nil {
			respondError(c, http.StatusBadRequest, CodeInvalidHint, err)
			return
		}
	}
	if queryBool(c, "solution") {
		view.ToggleSolution()
	}
	h.respondContent(c, view)
}

func (h *handler) home(c *gin.Context) {
	view, err := h.svc.Home(c.Request.Context(), currentUser(c))
	if err != nil {
		h.internalError(c, err)
		return
	}
	respondOK(c, view)
}

func (h *handler) myProgress(c *gin.Context) {
	p, err := h.svc.Progress(c.Request.Context(), currentUser(c))
	if err != nil {
		h.internalError(c, err)
		return
	}
	respondOK(c, p)
}

func (h *handler) completeLesson(c *gin.Context) {
	res, err := h.svc.CompleteLesson(c.Request.Context(), currentUser(c), c.Param("id"))
	h.respondCompletion(c, res, err, CodeLessonNotFound)
}

func (h *handler) completeExercise(c *gin.Context) {
	res, err := h.svc.CompleteExercise(c.Request.Context(), currentUser(c), c.Param("id"))
	h.respondCompletion(c, res, err, CodeExerciseNotFound)
}

func (h *handler) respondCompletion(c *gin.Context, res progress.Result, err error, notFoundCode string) {
	if err != nil {
		if errors.Is(err, progress.ErrUnknownItem) {
			respondError(c, http.StatusNotFound, notFoundCode, err)
			return
		}
		h.internalError(c, err)
		return
	}
	respondOK(c, res)
}

func queryBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.Query(key))
	return err == nil && v
}
