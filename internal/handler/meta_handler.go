package handler

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/xxxsen/volcano/internal/config"
	"github.com/xxxsen/volcano/internal/pkg/response"
)

//go:embed docs/api.md
var apiDoc []byte

type Pinger interface {
	Ping(ctx context.Context) error
}

type MetaHandler struct {
	about   config.AboutConfig
	db      Pinger
	docHTML []byte
}

func NewMetaHandler(about config.AboutConfig, db Pinger) (*MetaHandler, error) {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>Volcano API</title></head><body>\n")
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert(apiDoc, &buf); err != nil {
		return nil, fmt.Errorf("render api doc: %w", err)
	}
	buf.WriteString("</body></html>\n")
	return &MetaHandler{about: about, db: db, docHTML: buf.Bytes()}, nil
}

func (h *MetaHandler) Docs(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", h.docHTML)
}

func (h *MetaHandler) Me(c *gin.Context) {
	response.Success(c, gin.H{"name": h.about.Name, "student_number": h.about.StudentNumber})
}

func (h *MetaHandler) Health(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		handleError(c, fmt.Errorf("ping database: %w", err))
		return
	}
	response.Success(c, gin.H{"status": "ok"})
}
