package controllers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/juud-8/buildledger02/config"
	"github.com/juud-8/buildledger02/models"
	"github.com/juud-8/buildledger02/utils"

	"github.com/gin-gonic/gin"
)

func GetProfile(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", uid).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Profile not found", nil)
		return
	}
	utils.Success(c, "Profile fetched", user)
}

type UpdateProfileInput struct {
	FullName      *string `json:"full_name,omitempty"`
	CompanyName   *string `json:"company_name,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Address       *string `json:"address,omitempty"`
	City          *string `json:"city,omitempty"`
	State         *string `json:"state,omitempty"`
	ZipCode       *string `json:"zip_code,omitempty"`
	Country       *string `json:"country,omitempty"`
	TradeType     *string `json:"trade_type,omitempty"`
	LicenseNumber *string `json:"license_number,omitempty"`
	Website       *string `json:"website,omitempty"`
	TaxID         *string `json:"tax_id,omitempty"`
}

func UpdateProfile(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", uid).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Profile not found", nil)
		return
	}

	var in UpdateProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}

	updates := map[string]interface{}{}
	set := func(col string, v *string) {
		if v != nil {
			updates[col] = *v
		}
	}
	set("full_name", in.FullName)
	set("company_name", in.CompanyName)
	set("phone", in.Phone)
	set("address", in.Address)
	set("city", in.City)
	set("state", in.State)
	set("zip_code", in.ZipCode)
	set("country", in.Country)
	set("trade_type", in.TradeType)
	set("license_number", in.LicenseNumber)
	set("website", in.Website)
	set("tax_id", in.TaxID)

	if len(updates) > 0 {
		if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not update profile", err)
			return
		}
	}
	utils.Success(c, "Profile updated", user)
}

type UpdateSettingsInput struct {
	NotificationsEmail  *bool   `json:"notifications_email,omitempty"`
	NotificationsSMS    *bool   `json:"notifications_sms,omitempty"`
	DefaultPaymentTerms *int    `json:"default_payment_terms,omitempty"`
	DefaultCurrency     *string `json:"default_currency,omitempty"`
	InvoicePrefix       *string `json:"invoice_prefix,omitempty"`
	QuotePrefix         *string `json:"quote_prefix,omitempty"`
	AutoSendReminders   *bool   `json:"auto_send_reminders,omitempty"`
	ReminderDays        *int    `json:"reminder_days,omitempty"`
	Theme               *string `json:"theme,omitempty"`
	Timezone            *string `json:"timezone,omitempty"`
	LogoEnabled         *bool   `json:"logo_enabled,omitempty"`
	LogoPosition        *string `json:"logo_position,omitempty"`
	LogoWidth           *int    `json:"logo_width,omitempty"`
	LogoHeight          *int    `json:"logo_height,omitempty"`
}

func GetSettings(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", uid).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Profile not found", nil)
		return
	}
	utils.Success(c, "Settings fetched", gin.H{
		"notifications_email":   user.NotificationsEmail,
		"notifications_sms":     user.NotificationsSMS,
		"default_payment_terms": user.DefaultPaymentTerms,
		"default_currency":      user.DefaultCurrency,
		"invoice_prefix":        user.InvoicePrefix,
		"quote_prefix":          user.QuotePrefix,
		"auto_send_reminders":   user.AutoSendReminders,
		"reminder_days":         user.ReminderDays,
		"theme":                 user.Theme,
		"timezone":              user.Timezone,
		"logo_enabled":          user.LogoEnabled,
		"logo_position":         user.LogoPosition,
		"logo_width":            user.LogoWidth,
		"logo_height":           user.LogoHeight,
	})
}

func UpdateSettings(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", uid).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Profile not found", nil)
		return
	}

	var in UpdateSettingsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}
	if in.DefaultPaymentTerms != nil && (*in.DefaultPaymentTerms < 1 || *in.DefaultPaymentTerms > 365) {
		utils.Error(c, http.StatusBadRequest, "Payment terms must be between 1 and 365 days", nil)
		return
	}
	if in.DefaultCurrency != nil && len(*in.DefaultCurrency) != 3 {
		utils.Error(c, http.StatusBadRequest, "Currency must be a 3-letter code", nil)
		return
	}

	updates := map[string]interface{}{}
	if in.NotificationsEmail != nil {
		updates["notifications_email"] = *in.NotificationsEmail
	}
	if in.NotificationsSMS != nil {
		updates["notifications_sms"] = *in.NotificationsSMS
	}
	if in.DefaultPaymentTerms != nil {
		updates["default_payment_terms"] = *in.DefaultPaymentTerms
	}
	if in.DefaultCurrency != nil {
		updates["default_currency"] = *in.DefaultCurrency
	}
	if in.InvoicePrefix != nil {
		updates["invoice_prefix"] = *in.InvoicePrefix
	}
	if in.QuotePrefix != nil {
		updates["quote_prefix"] = *in.QuotePrefix
	}
	if in.AutoSendReminders != nil {
		updates["auto_send_reminders"] = *in.AutoSendReminders
	}
	if in.ReminderDays != nil {
		updates["reminder_days"] = *in.ReminderDays
	}
	if in.Theme != nil {
		updates["theme"] = *in.Theme
	}
	if in.Timezone != nil {
		updates["timezone"] = *in.Timezone
	}
	if in.LogoEnabled != nil {
		updates["logo_enabled"] = *in.LogoEnabled
	}
	if in.LogoPosition != nil {
		updates["logo_position"] = *in.LogoPosition
	}
	if in.LogoWidth != nil {
		updates["logo_width"] = *in.LogoWidth
	}
	if in.LogoHeight != nil {
		updates["logo_height"] = *in.LogoHeight
	}

	if len(updates) > 0 {
		if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not update settings", err)
			return
		}
	}
	utils.Success(c, "Settings updated", user)
}

// UploadLogo stores the company logo under the upload dir and records its
// public path on the profile.
func UploadLogo(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	file, err := c.FormFile("logo")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Missing logo file", err)
		return
	}
	if file.Size > 2<<20 {
		utils.Error(c, http.StatusBadRequest, "Logo must be 2MB or smaller", nil)
		return
	}

	name, err := utils.LogoFilename(uid.String(), file.Filename)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Unsupported file type", err)
		return
	}

	dest := filepath.Join(config.Cfg.UploadDir, name)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not store logo", err)
		return
	}
	if err := c.SaveUploadedFile(file, dest); err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not store logo", err)
		return
	}

	updates := map[string]interface{}{
		"logo_url":      "/uploads/" + name,
		"logo_filename": file.Filename,
		"logo_enabled":  true,
	}
	if err := config.DB.Model(&models.User{}).Where("id = ?", uid).Updates(updates).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Could not save logo reference", err)
		return
	}

	utils.Success(c, "Logo uploaded", gin.H{"logo_url": updates["logo_url"]})
}
