// Package web serves the transposer over HTTP with gin.
package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"capotokeys/internal/application"
	"capotokeys/internal/application/commands"
	"capotokeys/internal/domain"
	"capotokeys/internal/ports"
)

// User-facing messages
const (
	msgBadCapo       = "Capo must be a number from 0 to 11."
	msgNoText        = "Paste some chord sheet text first."
	msgTooLarge      = "Request body is too large. Reduce input size and try again."
	msgNotFound      = "File not found."
	msgInvalidPath   = "Invalid file path."
	msgInvalidGroup  = "Invalid group key."
	msgInternalError = "Something went wrong. Please try again."
)

// Options configures a Handler
type Options struct {
	Layout        domain.Layout
	Conflict      domain.ConflictMode
	MaxTextLength int
	ListLimit     int
}

// Handler exposes generate, listing and file routes
type Handler struct {
	repo     ports.OutputRepository
	renderer ports.DocumentRenderer
	opts     Options
	logger   *zap.Logger
}

// NewHandler creates a new Handler
func NewHandler(repo ports.OutputRepository, renderer ports.DocumentRenderer, opts Options, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		repo:     repo,
		renderer: renderer,
		opts:     opts,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.health)
	rg.POST("/generate", h.generate)
	rg.GET("/outputs", h.listOutputs)
	rg.POST("/delete-group", h.deleteGroup)
	rg.GET("/view/:name", h.view)
	rg.GET("/download/:name", h.download)
	rg.POST("/delete/:name", h.deleteFile)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type generateRequest struct {
	Text  string
	Title string
	Capo  string
}

// bindGenerate accepts a JSON body or a form post. JSON capo may be a
// number or a string.
func bindGenerate(c *gin.Context) (generateRequest, error) {
	if c.ContentType() == binding.MIMEJSON {
		var body struct {
			Text  string `json:"text"`
			Title string `json:"title"`
			Capo  any    `json:"capo"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			return generateRequest{}, err
		}
		req := generateRequest{Text: body.Text, Title: body.Title}
		if body.Capo != nil {
			req.Capo = fmt.Sprint(body.Capo)
		}
		return req, nil
	}

	if err := c.Request.ParseForm(); err != nil {
		return generateRequest{}, err
	}
	return generateRequest{
		Text:  c.PostForm("text"),
		Title: c.PostForm("title"),
		Capo:  c.PostForm("capo"),
	}, nil
}

func (h *Handler) generate(c *gin.Context) {
	req, err := bindGenerate(c)
	if err != nil {
		if isTooLarge(err) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": msgTooLarge})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	capo, err := strconv.Atoi(strings.TrimSpace(req.Capo))
	if err != nil || !domain.TransposeAmount(capo).Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgBadCapo})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoText})
		return
	}

	cmd := commands.NewGenerateCommand(h.repo, h.renderer, req.Text, req.Title, capo)
	cmd.PDF = true
	cmd.Conflict = h.opts.Conflict
	cmd.Layout = h.opts.Layout
	cmd.MaxTextLength = h.opts.MaxTextLength

	result, err := cmd.Execute(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.logger.Info("generated sheet",
		zap.String("stem", result.Stem),
		zap.Int("capo", int(result.Amount)),
		zap.Bool("renamed", result.Renamed))

	resp := gin.H{
		"result":    result.Text,
		"title":     result.Title,
		"capo":      int(result.Amount),
		"stem":      result.Stem,
		"base_stem": result.BaseStem,
		"txt_name":  result.TextName(),
		"pdf_name":  result.PDFName(),
		"message":   result.Message,
	}
	if result.Renamed {
		resp["notice"] = result.Message
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) listOutputs(c *gin.Context) {
	result, err := commands.NewListOutputsCommand(h.repo, h.opts.ListLimit).Execute(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	groups := result.Groups
	if groups == nil {
		groups = []domain.OutputGroup{}
	}
	resp := gin.H{
		"groups":       groups,
		"selected_key": "",
		"selected":     nil,
	}
	if g, ok := result.Group(strings.TrimSpace(c.Query("group"))); ok {
		resp["selected_key"] = g.Key
		resp["selected"] = g
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) deleteGroup(c *gin.Context) {
	var key string
	if c.ContentType() == binding.MIMEJSON {
		var body struct {
			GroupKey string `json:"group_key"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidGroup})
			return
		}
		key = body.GroupKey
	} else {
		key = c.PostForm("group_key")
	}

	if strings.TrimSpace(key) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidGroup})
		return
	}

	result, err := commands.NewDeleteGroupCommand(h.repo, key).Execute(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	deleted := result.Deleted
	if deleted == nil {
		deleted = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"group_key": result.GroupKey,
		"deleted":   deleted,
		"message":   result.Message,
	})
}

func (h *Handler) view(c *gin.Context) {
	h.serveFile(c, false)
}

func (h *Handler) download(c *gin.Context) {
	h.serveFile(c, true)
}

func (h *Handler) serveFile(c *gin.Context, attachment bool) {
	name := c.Param("name")
	result, err := commands.NewReadOutputCommand(h.repo, name).Execute(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	disposition := "inline"
	if attachment {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, result.Name))
	c.Data(http.StatusOK, contentType(result.Name), result.Content)
}

func (h *Handler) deleteFile(c *gin.Context) {
	result, err := commands.NewDeleteOutputCommand(h.repo, c.Param("name")).Execute(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": result.Message})
}

// writeError maps application errors onto status codes
func (h *Handler) writeError(c *gin.Context, err error) {
	var valErr *application.ValidationError
	switch {
	case errors.As(err, &valErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": valErr.Message, "field": valErr.Field})
	case errors.Is(err, application.ErrInvalidPath):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidPath})
	case errors.Is(err, application.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
	default:
		h.logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternalError})
	}
}

func contentType(name string) string {
	switch domain.OutputExtension(name) {
	case domain.ExtPDF:
		return "application/pdf"
	case domain.ExtText:
		return "text/plain; charset=utf-8"
	}
	return "application/octet-stream"
}
