package main

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"bitbucket.org/mmdatafocus/quotes_backend/config"
	"bitbucket.org/mmdatafocus/quotes_backend/models"
	"bitbucket.org/mmdatafocus/quotes_backend/utils"
)

const maxStampUploadBytes int64 = 5 * 1024 * 1024

// bindQuoteForm reads and validates the form payload shared by the export
// endpoints. A nil return means the response has already been written.
func bindQuoteForm(c *gin.Context) *models.QuoteData {
	var input models.QuoteFormData
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return nil
	}

	quote, err := models.BuildQuote(&input)
	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": vErr.Fields})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return nil
	}

	// Advisory only: the contact field is free text on the printed document.
	if contact := strings.TrimSpace(quote.Supplier.Contact); contact != "" {
		if err := utils.ValidatePhoneNumber(contact, utils.CountryCode); err != nil {
			config.GetLogger().WithFields(logrus.Fields{
				"module":  "quotes",
				"contact": contact,
			}).Debug("supplier contact is not a dialable number")
		}
	}

	return quote
}

func (a *app) exportQuoteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		quote := bindQuoteForm(c)
		if quote == nil {
			return
		}

		id, result, err := a.exports.run(c.Request.Context(), quote)
		if err != nil {
			config.LogError(config.GetLogger(), "quotes", "exportQuoteHandler", "exporting quote", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "quote export failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"previewId":   id,
			"filename":    result.Filename,
			"pages":       result.Pages,
			"downloadUrl": "/exports/" + id,
		})
	}
}

func (a *app) downloadExportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		result, ok := a.exports.get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "export not found or expired"})
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", urlEscapeFilename(result.Filename)))
		c.Header("Content-Length", strconv.Itoa(len(result.Bytes)))
		c.Data(http.StatusOK, "application/pdf", result.Bytes)
	}
}

func (a *app) exportExcelHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		quote := bindQuoteForm(c)
		if quote == nil {
			return
		}

		f, err := models.BuildQuoteWorkbook(quote)
		if err != nil {
			config.LogError(config.GetLogger(), "quotes", "exportExcelHandler", "building workbook", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "excel export failed"})
			return
		}

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", "attachment; filename=quote.xlsx")
		if err := f.Write(c.Writer); err != nil {
			config.LogError(config.GetLogger(), "quotes", "exportExcelHandler", "writing workbook", nil, err)
		}
	}
}

// uploadStampHandler accepts one image file, re-encodes it as an inline PNG
// data URI and hands it back for attachment to the form snapshot.
func (a *app) uploadStampHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("stamp")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "stamp file is required"})
			return
		}
		if fileHeader.Size > maxStampUploadBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "stamp image exceeds 5MB"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read stamp file"})
			return
		}
		defer file.Close()

		img, err := imaging.Decode(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "stamp file is not an image"})
			return
		}

		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
			config.LogError(config.GetLogger(), "quotes", "uploadStampHandler", "re-encoding stamp", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "stamp processing failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"stampImage": "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		})
	}
}

func urlEscapeFilename(name string) string {
	// RFC 5987 percent-encoding for the UTF-8 download name.
	var b strings.Builder
	for _, r := range []byte(name) {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteByte(r)
		} else {
			b.WriteString(fmt.Sprintf("%%%02X", r))
		}
	}
	return b.String()
}
