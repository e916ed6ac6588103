package http

import (
	"net/http"
	"strings"

	"github.com/DRSN-tech/grocery-merchant/internal/delivery/v1/presenter"
	"github.com/DRSN-tech/grocery-merchant/internal/usecase"
	"github.com/DRSN-tech/grocery-merchant/pkg/e"
	"github.com/DRSN-tech/grocery-merchant/pkg/logger"
)

type UpdateContextRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type ContextHandler struct {
	preferenceUsecase usecase.PreferenceUC
	logger            logger.Logger
}

func NewContextHandler(preferenceUsecase usecase.PreferenceUC, logger logger.Logger) *ContextHandler {
	return &ContextHandler{preferenceUsecase: preferenceUsecase, logger: logger}
}

// updateContext
//
//	@Summary		Обновление предпочтений
//	@Description	Добавляет значение к предпочтению сессии (diet или likes). Неизвестные ключи игнорируются.
//	@Tags			context
//	@Accept			json
//	@Produce		json
//	@Param			X-Session-ID	header		string					false	"Идентификатор сессии"
//	@Param			request			body		UpdateContextRequest	true	"Ключ и значение"
//	@Success		200				{object}	UpdateContextResponse
//	@Failure		400				{object}	ErrorResponse
//	@Router			/context [post]
func (c *ContextHandler) updateContext(w http.ResponseWriter, r *http.Request) {
	var req UpdateContextRequest
	if err := decodeJSON(w, r, &req); err != nil {
		c.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	if strings.TrimSpace(req.Key) == "" || strings.TrimSpace(req.Value) == "" {
		err := e.Wrap("key and value are required", e.ErrMissingFields)
		c.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	session := sessionID(r)
	c.logger.Infof("Update context: session=%s %s=%s", session, req.Key, req.Value)

	res, err := c.preferenceUsecase.UpdateContext(r.Context(), session, req.Key, req.Value)
	if err != nil {
		c.logger.Errorf(err, "Update context failed")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, &UpdateContextResponse{
		Key:     res.Key,
		Value:   res.Value,
		Changed: res.Changed,
		Message: res.Message,
	})
}

// getContext
//
//	@Summary		Текущие предпочтения
//	@Tags			context
//	@Produce		json
//	@Param			X-Session-ID	header		string	false	"Идентификатор сессии"
//	@Success		200				{object}	ContextResponse
//	@Router			/context [get]
func (c *ContextHandler) getContext(w http.ResponseWriter, r *http.Request) {
	snap, err := c.preferenceUsecase.GetContext(r.Context(), sessionID(r))
	if err != nil {
		c.logger.Errorf(err, "Get context failed")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, &ContextResponse{
		SessionID: snap.SessionID,
		Diet:      nonNil(snap.Diet),
		Likes:     nonNil(snap.Likes),
		Message:   presenter.Context(snap),
	})
}

// resetContext
//
//	@Summary		Сброс предпочтений сессии
//	@Tags			context
//	@Produce		json
//	@Param			X-Session-ID	header		string	false	"Идентификатор сессии"
//	@Success		200				{object}	ContextResponse
//	@Router			/context [delete]
func (c *ContextHandler) resetContext(w http.ResponseWriter, r *http.Request) {
	session := sessionID(r)
	if err := c.preferenceUsecase.ResetContext(r.Context(), session); err != nil {
		c.logger.Errorf(err, "Reset context failed")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, &ContextResponse{
		SessionID: session,
		Diet:      []string{},
		Likes:     []string{},
		Message:   "Preferences cleared.",
	})
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
