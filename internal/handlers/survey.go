package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allinhq/allin-backend/internal/services"
	"github.com/allinhq/allin-backend/internal/types"
)

type SurveyHandler struct {
	intake services.IntakeService
	daily  services.DailyStateService
}

func NewSurveyHandler(intake services.IntakeService, daily services.DailyStateService) *SurveyHandler {
	return &SurveyHandler{intake: intake, daily: daily}
}

type intakeProfileRequest struct {
	Pronouns                  types.Pronouns                  `json:"pronouns"`
	FavoriteColor             types.FavoriteColor             `json:"favorite_color"`
	Hobby                     types.Hobby                     `json:"hobby"`
	AgeRange                  types.AgeRange                  `json:"age_range"`
	ClosePersonPresence       types.ClosePersonPresence       `json:"close_person_presence"`
	FamilyRelationshipQuality types.FamilyRelationshipQuality `json:"family_relationship_quality"`
	CloseRelationshipsQuality types.CloseRelationshipsQuality `json:"close_relationships_quality"`
}

func (r intakeProfileRequest) toProfile() *types.IntakeProfile {
	return &types.IntakeProfile{
		Pronouns:                  r.Pronouns,
		FavoriteColor:             r.FavoriteColor,
		Hobby:                     r.Hobby,
		AgeRange:                  r.AgeRange,
		ClosePersonPresence:       r.ClosePersonPresence,
		FamilyRelationshipQuality: r.FamilyRelationshipQuality,
		CloseRelationshipsQuality: r.CloseRelationshipsQuality,
	}
}

func (sh *SurveyHandler) CreateIntake(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req intakeProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	profile := req.toProfile()
	profile.UserID = userID
	created, err := sh.intake.Create(c.Request.Context(), profile)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (sh *SurveyHandler) GetMyIntake(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	profile, err := sh.intake.ByUserID(c.Request.Context(), userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, profile)
}

func (sh *SurveyHandler) UpdateMyIntake(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req intakeProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	updated, err := sh.intake.Update(c.Request.Context(), userID, req.toProfile())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, updated)
}

func (sh *SurveyHandler) SubmitDaily(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req struct {
		Satisfaction int    `json:"satisfaction"`
		Physical     int    `json:"physical"`
		Motivation   int    `json:"motivation"`
		Focus        int    `json:"focus"`
		Openness     int    `json:"openness"`
		FilledAt     string `json:"filled_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	state := &types.DailyState{
		UserID:       userID,
		Satisfaction: req.Satisfaction,
		Physical:     req.Physical,
		Motivation:   req.Motivation,
		Focus:        req.Focus,
		Openness:     req.Openness,
	}
	if req.FilledAt != "" {
		if filledAt, err := time.Parse(time.RFC3339, req.FilledAt); err == nil {
			state.FilledAt = filledAt
		}
	}
	created, err := sh.daily.Submit(c.Request.Context(), state)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (sh *SurveyHandler) GetTodaysDaily(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	state, err := sh.daily.TodaysState(c.Request.Context(), userID, time.Now())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, state)
}
