package echoapi

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/bouncebacklearning/backend/core"
	"github.com/bouncebacklearning/backend/core/paper"
)

const (
	paperFileField = "file"
	pdfContentType = "application/pdf"

	// uploadFormSlack leaves room for the form fields and multipart framing around the file.
	uploadFormSlack = 1 << 20
)

type paperApi struct {
	svc      *paper.Service
	files    core.FileStore
	maxSize  int64
	validate *validator.Validate
	logger   core.Logger
	metrics  *metrics
}

func registerPaperAPI(g *echo.Group, adminOnly echo.MiddlewareFunc, api *paperApi) {
	g.GET("/question-papers", api.query)
	g.GET("/question-papers/:id", api.retrieve)
	g.GET("/question-papers/:id/download", api.download)
	bodyLimit := middleware.BodyLimit(strconv.FormatInt(api.maxSize+uploadFormSlack, 10))
	g.POST("/upload-paper", api.upload, adminOnly, bodyLimit)
	g.DELETE("/question-papers/:id", api.destroy, adminOnly)
}

// Handlers

func (api *paperApi) query(ctx echo.Context) error {
	papers, err := api.svc.Query(bindPaperFilter(ctx))
	if err != nil {
		return errors.Wrap(err, "querying papers")
	}
	if papers == nil {
		papers = []paper.Paper{}
	}
	return ctx.JSON(http.StatusOK, papers)
}

func (api *paperApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	p, err := api.svc.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "getting paper")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *paperApi) download(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	p, err := api.svc.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "getting paper")
	}

	rc, err := api.files.Open(ctx.Request().Context(), p.FilePath)
	if err != nil {
		return errors.Wrap(err, "opening paper file")
	}
	defer rc.Close()

	if err = api.svc.IncrementDownloads(id); err != nil {
		return errors.Wrap(err, "incrementing downloads")
	}
	api.metrics.paperDownloads.Inc()

	ctx.Response().Header().Set(
		echo.HeaderContentDisposition,
		mime.FormatMediaType("attachment", map[string]string{"filename": p.FileName}),
	)
	return ctx.Stream(http.StatusOK, pdfContentType, rc)
}

func (api *paperApi) upload(ctx echo.Context) error {
	fh, err := ctx.FormFile(paperFileField)
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: paperFileField, Error: "a PDF file is required"})
	}
	if fh.Size > api.maxSize {
		return core.NewValidationError(nil, core.FieldError{
			Field: paperFileField,
			Error: fmt.Sprintf("file exceeds the %d MB limit", api.maxSize>>20),
		})
	}

	var data paper.NewPaper
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPaper")
	}

	f, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening uploaded file")
	}
	defer f.Close()

	isPDF, err := sniffPDF(f)
	if err != nil {
		return errors.Wrap(err, "reading uploaded file")
	}
	if !isPDF {
		return core.NewValidationError(nil, core.FieldError{Field: paperFileField, Error: "only PDF files are allowed"})
	}

	stored, err := api.files.Save(ctx.Request().Context(), fh.Filename, f)
	if err != nil {
		return errors.Wrap(err, "storing paper file")
	}
	data.FileName = fh.Filename
	data.FilePath = stored.Path

	if err = data.Validate(api.validate); err != nil {
		api.removeFile(ctx, stored.Path)
		return err
	}
	p, err := api.svc.Create(data)
	if err != nil {
		api.removeFile(ctx, stored.Path)
		return errors.Wrap(err, "creating paper")
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *paperApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	p, err := api.svc.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "getting paper")
	}
	deleted, err := api.svc.Delete(id)
	if err != nil {
		return errors.Wrap(err, "deleting paper")
	}
	if !deleted {
		return paper.ErrNotFound
	}
	api.removeFile(ctx, p.FilePath)
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Question paper deleted successfully"})
}

// removeFile only logs failures: the paper record is the source of truth.
func (api *paperApi) removeFile(ctx echo.Context, path string) {
	err := api.files.Remove(ctx.Request().Context(), path)
	if err != nil && errors.Cause(err) != core.ErrFileNotFound {
		api.logger.Warn("removing paper file "+path, err)
	}
}

// sniffPDF checks the leading bytes of f and rewinds it.
func sniffPDF(f multipart.File) (bool, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}
	if _, err = f.Seek(0, io.SeekStart); err != nil {
		return false, err
	}
	return http.DetectContentType(head[:n]) == pdfContentType, nil
}
