package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"monagenda.fr/myagenda/pkg/response"
	"monagenda.fr/myagenda/pkg/storage"
)

// maxAttachmentSize bounds uploaded homework attachments (10 MiB).
const maxAttachmentSize = 10 << 20

type UploadHandler struct {
	storage storage.FileStorage
}

func NewUploadHandler(storage storage.FileStorage) *UploadHandler {
	return &UploadHandler{storage: storage}
}

// Upload stores a homework attachment and returns its public URL. The URL is
// then submitted as the homework's attachment field.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun fichier reçu"})
		return
	}

	if fileHeader.Size > maxAttachmentSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "le fichier dépasse 10 Mo"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	defer file.Close()

	url, err := h.storage.UploadFile(c.Request.Context(), file, "attachments", fileHeader.Filename)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
