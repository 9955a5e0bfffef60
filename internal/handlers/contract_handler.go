package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/doganiot/mywordismyword/config"
	"github.com/doganiot/mywordismyword/internal/lifecycle"
	"github.com/doganiot/mywordismyword/models"
)

type createContractRequest struct {
	Title          string     `json:"title" binding:"required"`
	Content        string     `json:"content" binding:"required"`
	Visibility     string     `json:"visibility"`
	ContractType   string     `json:"contract_type"`
	TemplateID     *uint      `json:"template_id"`
	SecondPartyID  *uint      `json:"second_party_id"`
	StartDate      *time.Time `json:"start_date"`
	DurationMonths *int       `json:"duration_months"`
	IsIndefinite   bool       `json:"is_indefinite"`
}

// CreateContractHandler creates a draft contract with the creator
// enrolled and, when given, the second party invited.
func CreateContractHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := lifecycle.CreateInput{
		Title:          req.Title,
		Content:        req.Content,
		Visibility:     models.ContractVisibility(req.Visibility),
		ContractType:   req.ContractType,
		TemplateID:     req.TemplateID,
		SecondPartyID:  req.SecondPartyID,
		DurationMonths: req.DurationMonths,
		IsIndefinite:   req.IsIndefinite,
	}
	if req.StartDate != nil {
		in.StartDate = *req.StartDate
	} else {
		in.StartDate = time.Now()
	}
	if in.Visibility == "" {
		in.Visibility = models.VisibilityPrivate
	}

	contract, err := ctrl.Create(user, in)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, contract)
}

// GetContractHandler returns one contract with all relations, access
// permitting.
func GetContractHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := contractID(c)
	if !ok {
		return
	}

	contract, err := ctrl.Get(id)
	if err != nil {
		abortWith(c, err)
		return
	}
	if !ctrl.CanView(contract, user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "No access to this contract"})
		return
	}
	c.JSON(http.StatusOK, contract)
}

type updateContractRequest struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	Visibility *string `json:"visibility"`
}

// UpdateContractHandler edits title, content or visibility while the
// contract is still editable.
func UpdateContractHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := contractID(c)
	if !ok {
		return
	}

	var req updateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := lifecycle.EditInput{Title: req.Title, Content: req.Content}
	if req.Visibility != nil {
		v := models.ContractVisibility(*req.Visibility)
		in.Visibility = &v
	}

	contract, err := ctrl.Edit(id, user, in)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

// DeleteContractHandler removes a contract unless it is completed.
func DeleteContractHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := contractID(c)
	if !ok {
		return
	}

	if err := ctrl.Delete(id, user); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contract deleted"})
}

// ListMyContractsHandler returns contracts the user created, newest
// first, optionally filtered by status.
func ListMyContractsHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	query := config.DB.Model(&models.Contract{}).Where("creator_id = ?", user.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count contracts"})
		return
	}

	var contracts []models.Contract
	if err := query.Preload("Parties.User").Scopes(Paginate(c)).
		Order("created_at DESC").Find(&contracts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load contracts"})
		return
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, contracts, total))
}

// ListSignedContractsHandler returns contracts the user has signed.
func ListSignedContractsHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	query := config.DB.Model(&models.Contract{}).
		Joins("JOIN contract_signatures ON contract_signatures.contract_id = contracts.id").
		Where("contract_signatures.user_id = ? AND contract_signatures.is_signed = ?", user.ID, true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count contracts"})
		return
	}

	var contracts []models.Contract
	if err := query.Preload("Parties.User").Scopes(Paginate(c)).
		Order("contracts.created_at DESC").Find(&contracts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load contracts"})
		return
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, contracts, total))
}

// ListInvitedContractsHandler returns contracts where the user has a
// pending invitation.
func ListInvitedContractsHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	listByInvitationStatus(c, user, models.InvitationPending)
}

// ListDeclinedContractsHandler returns contracts the user declined.
func ListDeclinedContractsHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	listByInvitationStatus(c, user, models.InvitationDeclined)
}

func listByInvitationStatus(c *gin.Context, user *models.User, status models.InvitationStatus) {
	query := config.DB.Model(&models.Contract{}).
		Joins("JOIN contract_parties ON contract_parties.contract_id = contracts.id").
		Where("contract_parties.user_id = ? AND contract_parties.invitation_status = ?", user.ID, status).
		Where("contracts.creator_id <> ?", user.ID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count contracts"})
		return
	}

	var contracts []models.Contract
	if err := query.Preload("Creator").Preload("Parties.User").Scopes(Paginate(c)).
		Order("contracts.created_at DESC").Find(&contracts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load contracts"})
		return
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, contracts, total))
}

// PublicPoolHandler lists public contracts for browsing. No auth
// required.
func PublicPoolHandler(c *gin.Context) {
	query := config.DB.Model(&models.Contract{}).
		Where("visibility = ?", models.VisibilityPublic).
		Where("status NOT IN ?", []models.ContractStatus{models.StatusArchived, models.StatusCancelled})
	if ctype := c.Query("type"); ctype != "" {
		query = query.Where("contract_type = ?", ctype)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count contracts"})
		return
	}

	var contracts []models.Contract
	if err := query.Preload("Creator").Scopes(Paginate(c)).
		Order("created_at DESC").Find(&contracts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load contracts"})
		return
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, contracts, total))
}

type signRequest struct {
	Code string `json:"code" binding:"required"`
}

// SignContractHandler verifies the emailed code and records the
// signature. Completion happens automatically at quorum.
func SignContractHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := contractID(c)
	if !ok {
		return
	}

	var req signRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := ctrl.Sign(id, user, req.Code, c.ClientIP())
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"contract":       result.Contract,
		"already_signed": result.AlreadySigned,
		"completed":      result.Completed,
	})
}

type declineRequest struct {
	Reason string `json:"reason"`
}

// DeclineContractHandler records a party's rejection.
func DeclineContractHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := contractID(c)
	if !ok {
		return
	}

	var req declineRequest
	// The reason is optional, an empty body is fine.
	_ = c.ShouldBindJSON(&req)

	result, err := ctrl.Decline(id, user, req.Reason)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"party":            result.Party,
		"already_declined": result.AlreadyDeclined,
	})
}

type recreateRequest struct {
	Title          *string    `json:"title"`
	Content        *string    `json:"content"`
	SecondPartyID  *uint      `json:"second_party_id"`
	StartDate      *time.Time `json:"start_date"`
	DurationMonths *int       `json:"duration_months"`
	IsIndefinite   *bool      `json:"is_indefinite"`
}

// RecreateContractHandler clones a declined contract into a fresh
// draft and archives the original.
func RecreateContractHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := contractID(c)
	if !ok {
		return
	}

	var req recreateRequest
	_ = c.ShouldBindJSON(&req)

	clone, err := ctrl.Recreate(id, user, lifecycle.RecreateInput{
		Title:          req.Title,
		Content:        req.Content,
		SecondPartyID:  req.SecondPartyID,
		StartDate:      req.StartDate,
		DurationMonths: req.DurationMonths,
		IsIndefinite:   req.IsIndefinite,
	})
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, clone)
}

type approveRequest struct {
	Note string `json:"note"`
}

// ApproveContractHandler records a non-binding endorsement.
func ApproveContractHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := contractID(c)
	if !ok {
		return
	}

	var req approveRequest
	_ = c.ShouldBindJSON(&req)

	approval, err := ctrl.Approve(id, user, req.Note, c.ClientIP())
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, approval)
}
