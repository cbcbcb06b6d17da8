package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"safaruz/internal/service"
)

// catalogHandler обслуживает CRUD одной сущности каталога.
type catalogHandler[T any] struct {
	svc *service.CatalogService[T]
}

// registerCatalog вешает список и просмотр в открытый доступ, изменения - только для администратора.
func registerCatalog[T any](r gin.IRouter, path string, svc *service.CatalogService[T], authed, admin gin.HandlerFunc) {
	if svc == nil {
		return
	}
	h := &catalogHandler[T]{svc: svc}
	r.GET(path, h.list)
	r.GET(path+"/:id", h.get)
	r.POST(path, authed, admin, h.create)
	r.PUT(path+"/:id", authed, admin, h.update)
	r.DELETE(path+"/:id", authed, admin, h.delete)
}

func (h *catalogHandler[T]) list(c *gin.Context) {
	params := make(map[string]string)
	for k, v := range c.Request.URL.Query() {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	items, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *catalogHandler[T]) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *catalogHandler[T]) create(c *gin.Context) {
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, "Некорректные данные: "+err.Error())
		return
	}
	created, err := h.svc.Create(c.Request.Context(), &item)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *catalogHandler[T]) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, "Некорректные данные: "+err.Error())
		return
	}
	updated, err := h.svc.Update(c.Request.Context(), id, &item)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *catalogHandler[T]) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Удалено"})
}
