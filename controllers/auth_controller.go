package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/juud-8/buildledger02/config"
	"github.com/juud-8/buildledger02/models"
	"github.com/juud-8/buildledger02/utils"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FullName    string `json:"full_name" binding:"max=100"`
	CompanyName string `json:"company_name" binding:"max=100"`
}

func Register(c *gin.Context) {
	var in RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not create account", err)
		return
	}

	user := models.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		CompanyName:  in.CompanyName,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			utils.Error(c, http.StatusConflict, "Email is already registered", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "Could not create account", err)
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), user.Email, 72*time.Hour)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not issue token", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created",
		"token":   token,
		"data":    user,
	})
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var in LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", in.Email).First(&user).Error; err != nil {
		utils.Error(c, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		utils.Error(c, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), user.Email, 72*time.Hour)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not issue token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"data":    user,
	})
}
