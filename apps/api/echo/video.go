package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/bouncebacklearning/backend/core/video"
)

type videoApi struct {
	svc      *video.Service
	validate *validator.Validate
	metrics  *metrics
}

func registerVideoAPI(g *echo.Group, adminOnly echo.MiddlewareFunc, api *videoApi) {
	g.GET("/videos", api.query)
	g.GET("/videos/:id", api.retrieve)
	g.POST("/add-video", api.create, adminOnly)
	g.DELETE("/videos/:id", api.destroy, adminOnly)
}

// Handlers

func (api *videoApi) query(ctx echo.Context) error {
	videos, err := api.svc.Query(bindVideoFilter(ctx))
	if err != nil {
		return errors.Wrap(err, "querying videos")
	}
	if videos == nil {
		videos = []video.Video{}
	}
	return ctx.JSON(http.StatusOK, videos)
}

// retrieve counts a view and returns the video with its updated count.
func (api *videoApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if _, err = api.svc.GetByID(id); err != nil {
		return errors.Wrap(err, "getting video")
	}
	if err = api.svc.IncrementViews(id); err != nil {
		return errors.Wrap(err, "incrementing views")
	}
	api.metrics.videoViews.Inc()

	v, err := api.svc.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "getting video")
	}
	return ctx.JSON(http.StatusOK, v)
}

func (api *videoApi) create(ctx echo.Context) error {
	var data video.NewVideo
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewVideo")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	v, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating video")
	}
	return ctx.JSON(http.StatusCreated, v)
}

func (api *videoApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	deleted, err := api.svc.Delete(id)
	if err != nil {
		return errors.Wrap(err, "deleting video")
	}
	if !deleted {
		return video.ErrNotFound
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Video deleted successfully"})
}
