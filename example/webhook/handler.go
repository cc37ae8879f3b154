package main

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/tbxark/locationagent/agent"
	"github.com/tbxark/locationagent/types"
)

type turnRequest struct {
	ConversationID string       `json:"conversation_id" validate:"required"`
	UserID         string       `json:"user_id" validate:"required"`
	Text           string       `json:"text"`
	Point          *types.Point `json:"point" validate:"omitempty"`
}

type turnResponse struct {
	*agent.Response
	Reply string `json:"reply"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

type turnHandler struct {
	flow   *agent.LocationFlow
	logger *slog.Logger
}

func newServer(flow *agent.LocationFlow, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}
	e.Use(middleware.Recover())
	h := &turnHandler{flow: flow, logger: logger}
	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	e.POST("/begin", h.Begin)
	e.POST("/turn", h.Turn)
	return e
}

func (h *turnHandler) Begin(c echo.Context) error {
	var req turnRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	resp, err := h.flow.Begin(c.Request().Context(), agent.SessionKey{ConversationID: req.ConversationID, UserID: req.UserID})
	if err != nil {
		return h.fail(c, err)
	}
	return h.reply(c, resp)
}

func (h *turnHandler) Turn(c echo.Context) error {
	var req turnRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	if req.Point == nil && req.Text == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "text or point is required"})
	}
	resp, err := h.flow.Invoke(c.Request().Context(), &agent.Request{
		Session: agent.SessionKey{ConversationID: req.ConversationID, UserID: req.UserID},
		Input:   types.Input{Text: req.Text, Point: req.Point},
	})
	if err != nil {
		return h.fail(c, err)
	}
	return h.reply(c, resp)
}

func (h *turnHandler) reply(c echo.Context, resp *agent.Response) error {
	text, err := resp.Text()
	if err != nil {
		return h.fail(c, errors.Wrap(err, "render reply"))
	}
	return c.JSON(http.StatusOK, turnResponse{Response: resp, Reply: text})
}

func (h *turnHandler) fail(c echo.Context, err error) error {
	h.logger.Error("Turn failed", "path", c.Path(), "error", err)
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "turn failed, please retry"})
}
