package controllers

import (
	"net/http"
	"time"

	"github.com/juud-8/buildledger02/config"
	"github.com/juud-8/buildledger02/ledger"
	"github.com/juud-8/buildledger02/models"
	"github.com/juud-8/buildledger02/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProjectInput struct {
	ClientID    uuid.UUID            `json:"client_id" binding:"required"`
	Name        string               `json:"name" binding:"required,max=100"`
	Description string               `json:"description" binding:"max=500"`
	Address     string               `json:"address" binding:"max=200"`
	City        string               `json:"city" binding:"max=50"`
	State       string               `json:"state" binding:"max=50"`
	ZipCode     string               `json:"zip_code" binding:"max=10"`
	Status      models.ProjectStatus `json:"status" binding:"omitempty,oneof=draft quoted approved in_progress completed cancelled"`
	StartDate   *time.Time           `json:"start_date"`
	EndDate     *time.Time           `json:"end_date"`
}

func (in *ProjectInput) validateDates() bool {
	if in.StartDate != nil && in.EndDate != nil {
		return !in.EndDate.Before(*in.StartDate)
	}
	return true
}

func CreateProject(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var in ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}
	if !in.validateDates() {
		utils.Error(c, http.StatusBadRequest, "End date must be after start date", nil)
		return
	}

	// The client must belong to the caller.
	var client models.Client
	if err := config.DB.First(&client, "id = ? AND user_id = ?", in.ClientID, uid).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Client not found", nil)
		return
	}

	status := in.Status
	if status == "" {
		status = models.ProjectDraft
	}
	project := models.Project{
		UserID:      uid,
		ClientID:    in.ClientID,
		Name:        in.Name,
		Description: in.Description,
		Address:     in.Address,
		City:        in.City,
		State:       in.State,
		ZipCode:     in.ZipCode,
		Status:      status,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}
	if err := config.DB.Create(&project).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not create project", err)
		return
	}
	utils.Created(c, "Project created", project)
}

func ListProjects(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var projects []models.Project
	q := config.DB.Preload("Client").Where("user_id = ?", uid).Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if clientID := c.Query("client_id"); clientID != "" {
		q = q.Where("client_id = ?", clientID)
	}
	if err := q.Find(&projects).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not fetch projects", err)
		return
	}
	utils.Success(c, "Projects fetched", projects)
}

func GetProject(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid project id", nil)
		return
	}

	var project models.Project
	if err := config.DB.Preload("Client").Preload("LineItems").
		First(&project, "id = ? AND user_id = ?", id, uid).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Project not found", nil)
		return
	}
	utils.Success(c, "Project fetched", project)
}

func UpdateProject(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid project id", nil)
		return
	}

	var project models.Project
	if err := config.DB.First(&project, "id = ? AND user_id = ?", id, uid).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Project not found", nil)
		return
	}

	var in ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}
	if !in.validateDates() {
		utils.Error(c, http.StatusBadRequest, "End date must be after start date", nil)
		return
	}

	updates := map[string]interface{}{
		"client_id":   in.ClientID,
		"name":        in.Name,
		"description": in.Description,
		"address":     in.Address,
		"city":        in.City,
		"state":       in.State,
		"zip_code":    in.ZipCode,
		"start_date":  in.StartDate,
		"end_date":    in.EndDate,
	}
	if in.Status != "" {
		updates["status"] = in.Status
	}
	if err := config.DB.Model(&project).Updates(updates).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not update project", err)
		return
	}
	utils.Success(c, "Project updated", project)
}

func DeleteProject(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid project id", nil)
		return
	}

	var project models.Project
	if err := config.DB.First(&project, "id = ? AND user_id = ?", id, uid).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Project not found", nil)
		return
	}

	var docCount int64
	config.DB.Model(&models.Invoice{}).Where("project_id = ?", project.ID).Count(&docCount)
	if docCount > 0 {
		utils.Error(c, http.StatusConflict, "Project has invoices and cannot be deleted", nil)
		return
	}

	if err := config.DB.Select("LineItems").Delete(&project).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not delete project", err)
		return
	}
	utils.Success(c, "Project deleted", nil)
}

// ===== Line items =====

type LineItemInput struct {
	ItemType    models.ItemType `json:"item_type" binding:"omitempty,oneof=service material labor"`
	Description string          `json:"description" binding:"required,max=200"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

func ListLineItems(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid project id", nil)
		return
	}

	var project models.Project
	if err := config.DB.First(&project, "id = ? AND user_id = ?", id, uid).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Project not found", nil)
		return
	}

	var items []models.LineItem
	if err := config.DB.Where("project_id = ?", project.ID).
		Order("created_at ASC, id ASC").Find(&items).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not fetch line items", err)
		return
	}
	utils.Success(c, "Line items fetched", items)
}

// ReplaceLineItems swaps the project's full line-item set in one
// transaction. Edits are idempotent set replacement, never row patches.
func ReplaceLineItems(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid project id", nil)
		return
	}

	var in struct {
		LineItems []LineItemInput `json:"line_items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}

	items, err := buildLineItems(id, in.LineItems)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid line items", err)
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, "id = ? AND user_id = ?", id, uid).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.LineItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not replace line items", err)
		return
	}
	utils.Success(c, "Line items replaced", items)
}

// buildLineItems validates input rows through the ledger and snapshots the
// derived line totals.
func buildLineItems(projectID uuid.UUID, inputs []LineItemInput) ([]models.LineItem, error) {
	items := make([]models.LineItem, 0, len(inputs))
	for _, in := range inputs {
		itemType := in.ItemType
		if itemType == "" {
			itemType = models.ItemService
		}
		items = append(items, models.LineItem{
			ProjectID:   projectID,
			ItemType:    itemType,
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			TotalPrice:  in.Quantity.Mul(in.UnitPrice),
		})
	}
	// Surfaces ErrInvalidInput for negative quantities or prices.
	if _, err := ledger.ComputeSubtotal(items); err != nil {
		return nil, err
	}
	return items, nil
}
