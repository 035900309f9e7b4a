package handlers

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"inviteme_backend/internal/config"
	"inviteme_backend/internal/storage"
	"inviteme_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadHandler - загрузка картинок для приглашений и шаблонов.
// Файлы кладутся в storage под префиксом владельца, раздача публичная.
type UploadHandler struct {
	*BaseHandler
	storage storage.Storage
	cfg     *config.Config
}

func NewUploadHandler(base *BaseHandler, store storage.Storage, cfg *config.Config) *UploadHandler {
	return &UploadHandler{
		BaseHandler: base,
		storage:     store,
		cfg:         cfg,
	}
}

func (h *UploadHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	uploads := rg.Group("/uploads")
	uploads.Use(authMW)
	{
		uploads.POST("", h.Upload)
		uploads.DELETE("/*path", h.Delete)
	}

	// Раздача без аутентификации: картинки видны гостям приглашения
	rg.GET("/files/*path", h.Serve)
}

func (h *UploadHandler) Upload(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("No file provided"))
		return
	}

	if fileHeader.Size > h.cfg.Upload.MaxSize {
		apperrors.HandleError(c, apperrors.ErrFileTooLarge)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !h.allowedType(contentType) {
		apperrors.HandleError(c, apperrors.ErrInvalidFileType)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	path := userID + "/" + uuid.NewString() + strings.ToLower(filepath.Ext(fileHeader.Filename))

	ctx := c.Request.Context()
	if err := h.storage.Save(ctx, path, file, contentType); err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}

	url, err := h.storage.GetURL(ctx, path)
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"path": path,
		"url":  url,
		"size": fileHeader.Size,
	})
}

// Delete удаляет файл владельца. Путь начинается с userID, чужие файлы
// недоступны.
func (h *UploadHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	path := strings.TrimPrefix(c.Param("path"), "/")
	if !strings.HasPrefix(path, userID+"/") {
		apperrors.HandleError(c, apperrors.NewForbiddenError("Not authorized to delete this file"))
		return
	}

	ctx := c.Request.Context()
	exists, err := h.storage.Exists(ctx, path)
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	if !exists {
		apperrors.HandleError(c, apperrors.New(apperrors.CodeNotFound, "storage", "File not found", http.StatusNotFound))
		return
	}

	if err := h.storage.Delete(ctx, path); err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
}

func (h *UploadHandler) Serve(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	ctx := c.Request.Context()

	exists, err := h.storage.Exists(ctx, path)
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	if !exists {
		apperrors.HandleError(c, apperrors.New(apperrors.CodeNotFound, "storage", "File not found", http.StatusNotFound))
		return
	}

	size, err := h.storage.GetSize(ctx, path)
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}

	reader, err := h.storage.Get(ctx, path)
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	defer reader.Close()

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.DataFromReader(http.StatusOK, size, contentType, reader, nil)
}

func (h *UploadHandler) allowedType(contentType string) bool {
	for _, t := range h.cfg.Upload.AllowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}
