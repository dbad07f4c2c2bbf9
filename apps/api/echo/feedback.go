package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/bouncebacklearning/backend/core/feedback"
)

type feedbackApi struct {
	svc      *feedback.Service
	validate *validator.Validate
}

func registerFeedbackAPI(g *echo.Group, adminOnly echo.MiddlewareFunc, api *feedbackApi) {
	g.POST("/submit-feedback", api.create)
	g.GET("/feedback", api.query, adminOnly)
	g.DELETE("/feedback/:id", api.destroy, adminOnly)
}

// Handlers

func (api *feedbackApi) create(ctx echo.Context) error {
	var data feedback.NewFeedback
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewFeedback")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	fb, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating feedback")
	}
	return ctx.JSON(http.StatusCreated, FeedbackResponse{Message: "Feedback submitted successfully", Feedback: fb})
}

func (api *feedbackApi) query(ctx echo.Context) error {
	fbs, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying feedback")
	}
	if fbs == nil {
		fbs = []feedback.Feedback{}
	}
	return ctx.JSON(http.StatusOK, fbs)
}

func (api *feedbackApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	deleted, err := api.svc.Delete(id)
	if err != nil {
		return errors.Wrap(err, "deleting feedback")
	}
	if !deleted {
		return feedback.ErrNotFound
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Feedback deleted successfully"})
}
