package api

import (
	"alcyxob/coach-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type LinkHandler struct {
	linkService service.LinkService
}

func NewLinkHandler(linkService service.LinkService) *LinkHandler {
	return &LinkHandler{linkService: linkService}
}

// LinkRequest names the other side by username or profile code.
type LinkRequest struct {
	Identifier string `json:"identifier" binding:"required"`
}

type LinkResponse struct {
	Coach      UserResponse `json:"coach"`
	Client     UserResponse `json:"client"`
	ClientCode string       `json:"clientCode"`
	RedirectTo string       `json:"redirectTo"`
}

// Link godoc
// @Summary Link a coach and a client
// @Description Coaches add a client, clients add their coach, by username or code.
// @Tags Links
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LinkRequest true "Username or code"
// @Success 200 {object} LinkResponse
// @Failure 400 {object} gin.H "Identifier too short or role mismatch"
// @Failure 404 {object} gin.H "No user with that identifier"
// @Failure 409 {object} gin.H "Client already has a coach"
// @Router /links [post]
func (h *LinkHandler) Link(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var req LinkRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.linkService.LinkByIdentifier(c.Request.Context(), actor, req.Identifier)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, LinkResponse{
		Coach:      MapUserToResponse(res.Coach),
		Client:     MapUserToResponse(res.Client),
		ClientCode: res.Profile.Code,
		RedirectTo: res.RedirectTo,
	})
}
