package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teamsite/internal/service"
)

// ListMembers returns all active team members.
func (a *API) ListMembers(c *gin.Context) {
	members, err := a.members.ListActive()
	if err != nil {
		logError("member", "list", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch members")
		return
	}

	c.JSON(http.StatusOK, members)
}

// CreateMember creates a team member from a multipart or JSON submission.
func (a *API) CreateMember(c *gin.Context) {
	sub, err := decodeSubmission(c, "photo")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	input := service.MemberInput{
		Name:    sub.field("name"),
		Role:    sub.field("role"),
		Bio:     sub.field("bio"),
		Photo:   sub.field("photo"),
		Socials: sub.field("socials"),
	}

	member, err := a.members.Create(c.Request.Context(), input, sub.upload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMemberNameRequired), errors.Is(err, service.ErrMemberRoleRequired):
			respondError(c, http.StatusBadRequest, "Name and role are required")
		case errors.Is(err, service.ErrMemberSocialInvalid):
			respondError(c, http.StatusBadRequest, "Socials must map known platforms to URLs")
		default:
			logError("member", "create", err)
			respondError(c, http.StatusInternalServerError, "Failed to create member")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member created successfully", "id": member.ID})
}

// DeleteMember removes a member by the id in the JSON body.
func (a *API) DeleteMember(c *gin.Context) {
	var payload idPayload
	if !bindJSON(c, &payload, "Member ID is required") {
		return
	}
	if payload.ID == 0 {
		respondError(c, http.StatusBadRequest, "Member ID is required")
		return
	}

	if err := a.members.Delete(payload.ID); err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			respondError(c, http.StatusNotFound, "Member not found")
			return
		}
		logError("member", "delete", err)
		respondError(c, http.StatusInternalServerError, "Failed to delete member")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member deleted successfully"})
}
