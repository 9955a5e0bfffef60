package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/doganiot/mywordismyword/config"
	"github.com/doganiot/mywordismyword/internal/lifecycle"
	"github.com/doganiot/mywordismyword/models"
)

// ListTemplatesHandler returns active templates visible to the caller:
// system templates, public ones and the caller's own.
func ListTemplatesHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	query := config.DB.Model(&models.ContractTemplate{}).
		Where("is_active = ?", true).
		Where("creator_id IS NULL OR is_public = ? OR creator_id = ?", true, user.ID)
	if t := c.Query("type"); t != "" {
		query = query.Where("template_type = ?", t)
	}
	if cat := c.Query("category"); cat != "" {
		query = query.Where("category = ?", cat)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count templates"})
		return
	}

	var templates []models.ContractTemplate
	if err := query.Scopes(Paginate(c)).
		Order("usage_count DESC, created_at DESC").Find(&templates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load templates"})
		return
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, templates, total))
}

func templateByParam(c *gin.Context) (*models.ContractTemplate, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template id"})
		return nil, false
	}
	var tpl models.ContractTemplate
	if err := config.DB.First(&tpl, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return nil, false
	}
	return &tpl, true
}

// GetTemplateHandler returns one template if the caller may see it.
func GetTemplateHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	tpl, ok := templateByParam(c)
	if !ok {
		return
	}
	if !tpl.IsSystemTemplate() && !tpl.IsPublic && *tpl.CreatorID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "No access to this template"})
		return
	}
	c.JSON(http.StatusOK, tpl)
}

type templateRequest struct {
	Title        string `json:"title" binding:"required"`
	TemplateType string `json:"template_type"`
	Description  string `json:"description"`
	Content      string `json:"content" binding:"required"`
	Category     string `json:"category"`
	Tags         string `json:"tags"`
	IsPublic     bool   `json:"is_public"`
}

// CreateTemplateHandler stores a user template.
func CreateTemplateHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.TemplateType == "" {
		req.TemplateType = models.TemplateCustom
	}

	tpl := models.ContractTemplate{
		Title:        req.Title,
		TemplateType: req.TemplateType,
		Description:  req.Description,
		Content:      req.Content,
		Category:     req.Category,
		Tags:         req.Tags,
		CreatorID:    &user.ID,
		IsPublic:     req.IsPublic,
		IsActive:     true,
	}
	if err := config.DB.Create(&tpl).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create template"})
		return
	}
	c.JSON(http.StatusCreated, tpl)
}

// UpdateTemplateHandler edits the caller's own template.
func UpdateTemplateHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	tpl, ok := templateByParam(c)
	if !ok {
		return
	}
	if tpl.IsSystemTemplate() || *tpl.CreatorID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the template owner can edit it"})
		return
	}

	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]any{
		"title":       req.Title,
		"description": req.Description,
		"content":     req.Content,
		"category":    req.Category,
		"tags":        req.Tags,
		"is_public":   req.IsPublic,
	}
	if req.TemplateType != "" {
		updates["template_type"] = req.TemplateType
	}
	if err := config.DB.Model(tpl).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update template"})
		return
	}
	c.JSON(http.StatusOK, tpl)
}

// DeleteTemplateHandler deactivates the caller's own template. Rows are
// kept so existing contracts retain their template reference.
func DeleteTemplateHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	tpl, ok := templateByParam(c)
	if !ok {
		return
	}
	if tpl.IsSystemTemplate() || *tpl.CreatorID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the template owner can delete it"})
		return
	}

	if err := config.DB.Model(tpl).Update("is_active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete template"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template deleted"})
}

// ShareTemplateHandler issues a share code so non-owners can use the
// template until it expires.
func ShareTemplateHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	tpl, ok := templateByParam(c)
	if !ok {
		return
	}
	if tpl.IsSystemTemplate() || *tpl.CreatorID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the template owner can share it"})
		return
	}

	// Reuse a still-valid code instead of minting a new one.
	if !tpl.ShareLinkValid() {
		code, err := lifecycle.ShareCode(10)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate share code"})
			return
		}
		expires := time.Now().AddDate(0, 0, config.App.TemplateShareDays)
		if err := config.DB.Model(tpl).Updates(map[string]any{
			"is_shareable":     true,
			"share_code":       code,
			"share_expires_at": expires,
		}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to share template"})
			return
		}
		tpl.ShareCode = &code
		tpl.ShareExpiresAt = &expires
	}

	c.JSON(http.StatusOK, gin.H{
		"share_code": tpl.ShareCode,
		"share_url":  config.App.BaseURL + "/templates/shared/" + *tpl.ShareCode,
		"expires_at": tpl.ShareExpiresAt,
	})
}

// SharedTemplateHandler resolves a share code to its template. This is
// the one template endpoint that works without authentication.
func SharedTemplateHandler(c *gin.Context) {
	code := c.Param("code")

	var tpl models.ContractTemplate
	if err := config.DB.Where("share_code = ?", code).First(&tpl).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}
	if !tpl.ShareLinkValid() || !tpl.IsActive {
		c.JSON(http.StatusGone, gin.H{"error": "Share link expired"})
		return
	}
	c.JSON(http.StatusOK, tpl)
}

// UseTemplateHandler returns the template content with the caller's
// name filled into the placeholders, and counts the usage. Non-owners of
// a private template must present its share code.
func UseTemplateHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	tpl, ok := templateByParam(c)
	if !ok {
		return
	}
	if !tpl.IsActive {
		c.JSON(http.StatusGone, gin.H{"error": "Template is no longer available"})
		return
	}
	shared := tpl.ShareLinkValid() && tpl.ShareCode != nil &&
		c.Query("share_code") == *tpl.ShareCode
	visible := tpl.IsSystemTemplate() || tpl.IsPublic ||
		*tpl.CreatorID == user.ID || shared
	if !visible {
		c.JSON(http.StatusForbidden, gin.H{"error": "No access to this template"})
		return
	}

	content := strings.ReplaceAll(tpl.Content, "[Full Name]", user.FullName())

	config.DB.Model(tpl).UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))

	c.JSON(http.StatusOK, gin.H{
		"template_id":   tpl.ID,
		"title":         tpl.Title,
		"template_type": tpl.TemplateType,
		"content":       content,
	})
}
