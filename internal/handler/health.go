package handler

import (
	"github.com/andersonjr667/MeuControle/internal/storage"
	"github.com/andersonjr667/MeuControle/internal/util"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports which storage backend is serving requests.
type HealthHandler struct {
	Conn *storage.MongoConn
	File *storage.FileStore
}

func NewHealthHandler(conn *storage.MongoConn, file *storage.FileStore) *HealthHandler {
	return &HealthHandler{Conn: conn, File: file}
}

// Status pings the document database on every call, so the reported
// backend always matches the one the next request would use.
func (h *HealthHandler) Status(c *gin.Context) {
	backend := "file"
	if h.Conn != nil && h.Conn.IsConnected() {
		backend = "mongodb"
	}

	util.Success(c, util.Response{
		"status":  "ok",
		"backend": backend,
		"store":   h.File.Path(),
	})
}
