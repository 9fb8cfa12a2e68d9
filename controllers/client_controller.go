package controllers

import (
	"net/http"

	"github.com/juud-8/buildledger02/config"
	"github.com/juud-8/buildledger02/models"
	"github.com/juud-8/buildledger02/utils"

	"github.com/gin-gonic/gin"
)

type ClientInput struct {
	Name        string `json:"name" binding:"required,max=100"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone" binding:"max=30"`
	CompanyName string `json:"company_name" binding:"max=100"`
	Address     string `json:"address" binding:"max=200"`
	City        string `json:"city" binding:"max=50"`
	State       string `json:"state" binding:"max=50"`
	ZipCode     string `json:"zip_code" binding:"max=10"`
	Notes       string `json:"notes" binding:"max=500"`
}

func CreateClient(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var in ClientInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}

	client := models.Client{
		UserID:      uid,
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		CompanyName: in.CompanyName,
		Address:     in.Address,
		City:        in.City,
		State:       in.State,
		ZipCode:     in.ZipCode,
		Notes:       in.Notes,
	}
	if err := config.DB.Create(&client).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not create client", err)
		return
	}
	utils.Created(c, "Client created", client)
}

func ListClients(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var clients []models.Client
	q := config.DB.Where("user_id = ?", uid).Order("name ASC")
	if search := c.Query("search"); search != "" {
		q = q.Where("name ILIKE ? OR company_name ILIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if err := q.Find(&clients).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not fetch clients", err)
		return
	}
	utils.Success(c, "Clients fetched", clients)
}

func GetClient(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid client id", nil)
		return
	}

	var client models.Client
	if err := config.DB.First(&client, "id = ? AND user_id = ?", id, uid).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Client not found", nil)
		return
	}
	utils.Success(c, "Client fetched", client)
}

func UpdateClient(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid client id", nil)
		return
	}

	var client models.Client
	if err := config.DB.First(&client, "id = ? AND user_id = ?", id, uid).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Client not found", nil)
		return
	}

	var in ClientInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}

	updates := models.Client{
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		CompanyName: in.CompanyName,
		Address:     in.Address,
		City:        in.City,
		State:       in.State,
		ZipCode:     in.ZipCode,
		Notes:       in.Notes,
	}
	if err := config.DB.Model(&client).Updates(updates).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not update client", err)
		return
	}
	utils.Success(c, "Client updated", client)
}

func DeleteClient(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid client id", nil)
		return
	}

	var client models.Client
	if err := config.DB.First(&client, "id = ? AND user_id = ?", id, uid).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Client not found", nil)
		return
	}

	var projectCount int64
	config.DB.Model(&models.Project{}).Where("client_id = ?", client.ID).Count(&projectCount)
	if projectCount > 0 {
		utils.Error(c, http.StatusConflict, "Client has projects and cannot be deleted", nil)
		return
	}

	if err := config.DB.Delete(&client).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not delete client", err)
		return
	}
	utils.Success(c, "Client deleted", nil)
}
