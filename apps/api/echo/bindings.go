package echoapi

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bouncebacklearning/backend/core/paper"
	"github.com/bouncebacklearning/backend/core/video"
)

// allValue is sent by the client's filter dropdowns to mean "no constraint".
const allValue = "all"

func filterParam(ctx echo.Context, name string) string {
	v := strings.TrimSpace(ctx.QueryParam(name))
	if v == allValue {
		return ""
	}
	return v
}

func bindPaperFilter(ctx echo.Context) paper.QueryFilter {
	filter := paper.QueryFilter{
		Class:   filterParam(ctx, "class"),
		Subject: filterParam(ctx, "subject"),
		Phase:   filterParam(ctx, "phase"),
	}
	// an unparsable year does not constrain the listing
	if year, err := strconv.Atoi(filterParam(ctx, "year")); err == nil {
		filter.Year = year
	}
	return filter
}

func bindVideoFilter(ctx echo.Context) video.QueryFilter {
	return video.QueryFilter{
		Class:   filterParam(ctx, "class"),
		Subject: filterParam(ctx, "subject"),
	}
}

// pathID parses the :id path param; anything but a positive integer is a 404.
func pathID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id < 1 {
		return 0, errHttpNotFound
	}
	return id, nil
}
