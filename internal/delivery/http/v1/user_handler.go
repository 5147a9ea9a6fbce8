package v1

import (
	"net/http"

	"go-devnetwork-backend/internal/delivery/http/response"
	"go-devnetwork-backend/internal/domain"
	"go-devnetwork-backend/pkg/apperror"
	"go-devnetwork-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	authUC domain.AuthUsecase
}

func NewUserHandler(public *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &UserHandler{authUC: authUC}

	public.POST("/users", handler.Register)
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Register godoc
// @Summary      Register user
// @Description  Create an account and return a signed token.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user  body      RegisterRequest  true  "New user"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]interface{}
// @Router       /users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(validation.Messages(err)...))
		return
	}

	signed, err := h.authUC.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"token": signed})
}
