package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/td-scout/internal/nfl"
	"github.com/jstittsworth/td-scout/pkg/utils"
)

type TeamHandler struct {
	resolver *nfl.Resolver
}

func NewTeamHandler(resolver *nfl.Resolver) *TeamHandler {
	return &TeamHandler{resolver: resolver}
}

// ListTeams returns the full franchise table.
func (h *TeamHandler) ListTeams(c *gin.Context) {
	utils.SendSuccess(c, nfl.AllTeams())
}

// ResolveTeam maps an arbitrary team string to its canonical name.
func (h *TeamHandler) ResolveTeam(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		utils.SendValidationError(c, "missing name", "name query parameter is required")
		return
	}

	team, ok := h.resolver.Lookup(name)
	if !ok {
		utils.SendNotFound(c, "no team matches the given name")
		return
	}

	utils.SendSuccess(c, gin.H{
		"input":     name,
		"canonical": team.Name,
		"team":      team,
	})
}
