package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/expertbi/expertbi-api/internal/auth"
	"github.com/expertbi/expertbi-api/internal/constants"
	"github.com/expertbi/expertbi-api/internal/db"
)

// APIKeyHandler handles API key management operations
type APIKeyHandler struct {
	common *CommonServices
}

// NewAPIKeyHandler creates a new APIKeyHandler instance
func NewAPIKeyHandler(common *CommonServices) *APIKeyHandler {
	return &APIKeyHandler{common: common}
}

// CreateAPIKeyRequest represents the request body for creating an API key
type CreateAPIKeyRequest struct {
	Name          string `json:"name" binding:"required"`
	AccessLevel   string `json:"access_level"`
	ExpiresInDays int    `json:"expires_in_days"`
}

// APIKeyResponse represents the standardized API response for an API key.
// The key value is only returned on creation.
type APIKeyResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Key         string     `json:"key,omitempty"`
	AccessLevel string     `json:"access_level"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// newAPIKeyValue generates an opaque key with a recognizable prefix.
func newAPIKeyValue() string {
	return "ebi_" + strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

// CreateAPIKey godoc
// @Summary Create API key
// @Description Issues a new API key for the authenticated user
// @Tags api-keys
// @Accept json
// @Produce json
// @Param request body CreateAPIKeyRequest true "Key details"
// @Success 201 {object} APIKeyResponse
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api-keys [post]
func (h *APIKeyHandler) CreateAPIKey(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		sendError(c, http.StatusUnauthorized, "Not authenticated", nil)
		return
	}

	var req CreateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	accessLevel := req.AccessLevel
	switch accessLevel {
	case "":
		accessLevel = constants.AccessLevelRead
	case constants.AccessLevelRead, constants.AccessLevelWrite, constants.AccessLevelAdmin:
	default:
		sendError(c, http.StatusBadRequest, "Invalid access level", nil)
		return
	}

	expiresAt := pgtype.Timestamptz{}
	if req.ExpiresInDays > 0 {
		expiresAt = pgtype.Timestamptz{
			Time:  time.Now().AddDate(0, 0, req.ExpiresInDays),
			Valid: true,
		}
	}

	key, err := h.common.db.CreateAPIKey(c.Request.Context(), db.CreateAPIKeyParams{
		UserID:      userID,
		Name:        req.Name,
		Key:         newAPIKeyValue(),
		AccessLevel: accessLevel,
		ExpiresAt:   expiresAt,
	})
	if err != nil {
		handleDBError(c, err, "API key not found")
		return
	}

	sendSuccess(c, http.StatusCreated, APIKeyResponse{
		ID:          key.ID.String(),
		Name:        key.Name,
		Key:         key.Key,
		AccessLevel: key.AccessLevel,
		ExpiresAt:   timeOrNil(key.ExpiresAt),
		CreatedAt:   timeOrNil(key.CreatedAt),
	})
}

// DeleteAPIKey godoc
// @Summary Delete API key
// @Description Revokes an API key by ID
// @Tags api-keys
// @Produce json
// @Param key_id path string true "API key ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api-keys/{key_id} [delete]
func (h *APIKeyHandler) DeleteAPIKey(c *gin.Context) {
	keyID, err := uuid.Parse(c.Param("key_id"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid API key ID format", err)
		return
	}

	if err := h.common.db.DeleteAPIKey(c.Request.Context(), keyID); err != nil {
		handleDBError(c, err, "API key not found")
		return
	}

	sendSuccessMessage(c, http.StatusOK, "API key deleted successfully")
}
