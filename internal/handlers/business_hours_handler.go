package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clipperdesk/barber-booking/internal/httperr"
	"github.com/clipperdesk/barber-booking/internal/httpresp"
	"github.com/clipperdesk/barber-booking/internal/models"
)

type BusinessHoursHandler struct {
	db *gorm.DB
}

func NewBusinessHoursHandler(db *gorm.DB) *BusinessHoursHandler {
	return &BusinessHoursHandler{db: db}
}

type BusinessDayConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	IsClosed  bool   `json:"is_closed"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type BusinessHoursUpdateRequest struct {
	Days []BusinessDayConfig `json:"days" binding:"required"`
}

type BusinessRulesUpdateRequest struct {
	ReservationInterval int `json:"reservation_interval" binding:"required,min=1"`
	ReservationWindow   int `json:"reservation_window" binding:"required,min=1"`
}

// --------------------------------------------------
// Business hours (semana inteira, substituição total)
// --------------------------------------------------

func (h *BusinessHoursHandler) Get(c *gin.Context) {
	var hours []models.BusinessHours
	if err := h.db.
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		httperr.Internal(c, "failed_to_get_business_hours", "Erro ao buscar horários.")
		return
	}

	httpresp.List(c, hours)
}

func (h *BusinessHoursHandler) Update(c *gin.Context) {
	var req BusinessHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	seen := make(map[int]bool, len(req.Days))
	for _, d := range req.Days {
		if seen[d.Weekday] {
			httperr.BadRequest(c, "duplicate_weekday", "Dia da semana repetido.")
			return
		}
		seen[d.Weekday] = true
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("1 = 1").
			Delete(&models.BusinessHours{}).Error; err != nil {
			return err
		}

		var toCreate []models.BusinessHours
		for _, d := range req.Days {
			toCreate = append(toCreate, models.BusinessHours{
				Weekday:   d.Weekday,
				IsClosed:  d.IsClosed,
				StartTime: d.StartTime,
				EndTime:   d.EndTime,
			})
		}

		if len(toCreate) > 0 {
			if err := tx.Create(&toCreate).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_business_hours", "Erro ao salvar horários.")
		return
	}

	httpresp.OK(c, gin.H{"status": "ok"})
}

// --------------------------------------------------
// Business rules (singleton)
// --------------------------------------------------

func (h *BusinessHoursHandler) GetRules(c *gin.Context) {
	var rules models.BusinessRules
	if err := h.db.First(&rules).Error; err != nil {
		httperr.NotFound(c, "rules_not_configured", "Regras de agenda não configuradas.")
		return
	}

	httpresp.OK(c, rules)
}

func (h *BusinessHoursHandler) UpdateRules(c *gin.Context) {
	var req BusinessRulesUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var rules models.BusinessRules
	err := h.db.First(&rules).Error

	rules.ReservationInterval = req.ReservationInterval
	rules.ReservationWindow = req.ReservationWindow

	if err != nil {
		err = h.db.Create(&rules).Error
	} else {
		err = h.db.Save(&rules).Error
	}

	if err != nil {
		httperr.Internal(c, "failed_to_save_rules", "Erro ao salvar regras.")
		return
	}

	httpresp.OK(c, rules)
}
