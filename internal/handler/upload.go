package handler

import (
	"errors"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
)

var (
	errNoPart     = errors.New("no part")
	errNoFilename = errors.New("no selected file")
)

// formFile returns the uploaded file under field. A part sent with an
// empty filename is parsed as a plain value, so it is looked up there.
func formFile(c *fiber.Ctx, field string) (*multipart.FileHeader, error) {
	file, err := c.FormFile(field)
	if err == nil && file.Filename != "" {
		return file, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, errNoPart
	}
	if _, ok := form.Value[field]; ok {
		return nil, errNoFilename
	}
	if files := form.File[field]; len(files) > 0 {
		return nil, errNoFilename
	}
	return nil, errNoPart
}
