package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bitbucket.org/mmdatafocus/quotes_backend/config"
	"bitbucket.org/mmdatafocus/quotes_backend/models"
	"bitbucket.org/mmdatafocus/quotes_backend/utils"
)

func (a *app) listRecordsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		quotes, err := a.store.List()
		if err != nil {
			config.LogError(config.GetLogger(), "records", "listRecordsHandler", "listing saved quotes", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list saved quotes"})
			return
		}
		c.JSON(http.StatusOK, quotes)
	}
}

func (a *app) saveRecordHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.QuoteFormData
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
			return
		}

		saved, err := a.store.Save(input)
		if err != nil {
			config.LogError(config.GetLogger(), "records", "saveRecordHandler", "saving quote", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "quote could not be saved"})
			return
		}
		c.JSON(http.StatusCreated, saved)
	}
}

func (a *app) getRecordHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		saved, err := a.store.GetById(c.Param("id"))
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "saved quote not found"})
				return
			}
			config.LogError(config.GetLogger(), "records", "getRecordHandler", "loading saved quote", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load saved quote"})
			return
		}
		c.JSON(http.StatusOK, saved)
	}
}

func (a *app) deleteRecordHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		deleted, err := a.store.DeleteById(c.Param("id"))
		if err != nil {
			config.LogError(config.GetLogger(), "records", "deleteRecordHandler", "deleting saved quote", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "quote could not be deleted"})
			return
		}
		if !deleted {
			c.JSON(http.StatusNotFound, gin.H{"deleted": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}

func (a *app) deleteAllRecordsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		deleted, err := a.store.DeleteAll()
		if err != nil {
			config.LogError(config.GetLogger(), "records", "deleteAllRecordsHandler", "clearing saved quotes", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "saved quotes could not be cleared"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": deleted})
	}
}
