package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/notiongram/app/feed"
	"github.com/lysyi3m/notiongram/app/notion"
	"github.com/lysyi3m/notiongram/app/view"
)

const fallbackErrorMessage = "Failed to fetch data from Notion"

const rssTitle = "Notiongram"

// NewHandler wires the endpoints. pages feeds the HTML and RSS views and may
// be the assembler itself or a remote feed client; source names it in /health.
func NewHandler(assembler Assembler, pages view.Fetcher, renderer *view.Renderer,
	schemas *feed.SchemaCache, source string) *Handler {
	return &Handler{
		assembler: assembler,
		pages:     pages,
		renderer:  renderer,
		generator: feed.NewGenerator(),
		schemas:   schemas,
		source:    source,
	}
}

func (h *Handler) GetNotionFeed(c *gin.Context) {
	items, err := h.assembler.Run(c.Request.Context())
	if err != nil {
		if errors.Is(err, feed.ErrMissingDatabaseID) {
			slog.Error("Feed configuration error", "error", err)
		} else {
			slog.Error("Notion query error", "operation", "query_database", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": errorMessage(err)})
		return
	}

	c.Header("X-Feed-Items", strconv.Itoa(len(items)))
	c.JSON(http.StatusOK, items)
}

// errorMessage prefers the message Notion sent back over the wrapped chain.
// An error whose root cause has no message gets the generic fallback.
func errorMessage(err error) string {
	var apiErr *notion.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, feed.ErrMissingDatabaseID) {
		return feed.ErrMissingDatabaseID.Error()
	}

	root := err
	for next := errors.Unwrap(root); next != nil; next = errors.Unwrap(root) {
		root = next
	}
	if root.Error() == "" {
		return fallbackErrorMessage
	}
	return err.Error()
}

// GetPage streams the HTML page in the given layout.
func (h *Handler) GetPage(layout view.Layout) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Header("Cache-Control", "no-store")
		c.Status(http.StatusOK)

		req := view.PageRequest{
			Layout:         layout,
			Path:           c.Request.URL.Path,
			Query:          c.Request.URL.Query(),
			AcceptLanguage: c.GetHeader("Accept-Language"),
		}

		shell, err := h.renderer.Stream(c.Request.Context(), c.Writer, c.Writer.Flush, req, h.pages)
		if err != nil {
			slog.Error("Page rendering error", "layout", string(layout), "error", err)
			return
		}

		slog.Debug("Page rendered", "layout", string(layout), "phase", shell.Phase().String(), "items", len(shell.Items()))
	}
}

func (h *Handler) GetRSS(c *gin.Context) {
	items, err := h.pages.Fetch(c.Request.Context())
	if err != nil {
		slog.Error("Feed fetch error", "operation", "rss", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errorMessage(err)})
		return
	}

	rss, err := h.generator.Run(rssTitle, items)
	if err != nil {
		slog.Error("RSS generation error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.Header("X-Feed-Items", strconv.Itoa(len(items)))

	c.String(http.StatusOK, rss)
}

func (h *Handler) GetHealth(c *gin.Context) {
	schema := h.schemas.GetSchema()

	health := map[string]interface{}{
		"timestamp":   time.Now().In(time.Local).Format(time.RFC3339),
		"source":      h.source,
		"schema_file": h.schemas.GetSchemaFile(),
		"filters":     len(schema.Filters),
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) APIGetSchema(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"file":   h.schemas.GetSchemaFile(),
		"schema": h.schemas.GetSchema(),
	})
}

func (h *Handler) APIReloadSchema(c *gin.Context) {
	schema, err := h.schemas.LoadSchema()
	if err != nil {
		slog.Error("Error reloading schema", "file", h.schemas.GetSchemaFile(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to reload schema",
			"details": err.Error(),
		})
		return
	}

	slog.Info("Schema reloaded", "file", h.schemas.GetSchemaFile(), "filters", len(schema.Filters))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Schema reloaded successfully",
		"schema":  schema,
	})
}
