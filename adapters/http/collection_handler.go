package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	contentUC "github.com/khoahotran/scholar-folio/internal/application/usecase/content"
	"github.com/khoahotran/scholar-folio/internal/domain/content"
	"github.com/khoahotran/scholar-folio/pkg/apperror"
	"github.com/khoahotran/scholar-folio/pkg/logger"
)

const jsonContentType = "application/json; charset=utf-8"

// CollectionHandler exposes every collection by name. Bodies are passed to
// the store as raw JSON so one handler serves all item types.
type CollectionHandler struct {
	store  *contentUC.Store
	logger logger.Logger
}

func NewCollectionHandler(store *contentUC.Store, log logger.Logger) *CollectionHandler {
	return &CollectionHandler{
		store:  store,
		logger: log,
	}
}

func (h *CollectionHandler) GetCollection(c *gin.Context) {
	raw, err := h.store.CollectionJSON(content.Name(c.Param("name")))
	if err != nil {
		c.Error(err)
		return
	}
	c.Data(http.StatusOK, jsonContentType, raw)
}

func (h *CollectionHandler) ReplaceCollection(c *gin.Context) {
	name := content.Name(c.Param("name"))
	body, ok := readBody(c)
	if !ok {
		return
	}
	if err := h.store.SetCollectionJSON(c.Request.Context(), name, body); err != nil {
		c.Error(err)
		return
	}
	h.GetCollection(c)
}

func (h *CollectionHandler) AddItem(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	id, err := h.store.AddItemJSON(c.Request.Context(), content.Name(c.Param("name")), body)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, itemCreatedResponse{ID: id})
}

func (h *CollectionHandler) UpdateItem(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	err := h.store.UpdateItemJSON(c.Request.Context(), content.Name(c.Param("name")), c.Param("id"), body)
	if err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CollectionHandler) DeleteItem(c *gin.Context) {
	if err := h.store.DeleteItem(c.Request.Context(), content.Name(c.Param("name")), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func readBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Error(apperror.NewValidation("cannot read request body", err))
		return nil, false
	}
	return body, true
}
