package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/application/usecase"
)

// DirectoryController serves the contact lists: GET /admins for users and
// GET /utilisateurs?search= for admins.
type DirectoryController struct {
	listAdmins  *usecase.ListAdminsUseCase
	searchUsers *usecase.SearchUsersUseCase
}

func NewDirectoryController(listAdmins *usecase.ListAdminsUseCase, searchUsers *usecase.SearchUsersUseCase) *DirectoryController {
	return &DirectoryController{listAdmins: listAdmins, searchUsers: searchUsers}
}

func (ctl *DirectoryController) HandleAdmins() gin.HandlerFunc {
	return func(c *gin.Context) {
		admins, err := ctl.listAdmins.Execute(c.Request.Context())
		if err != nil {
			respondUseCaseError(c, err)
			return
		}
		c.JSON(http.StatusOK, admins)
	}
}

func (ctl *DirectoryController) HandleUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := ctl.searchUsers.Execute(c.Request.Context(), c.Query("search"))
		if err != nil {
			respondUseCaseError(c, err)
			return
		}
		c.JSON(http.StatusOK, users)
	}
}
