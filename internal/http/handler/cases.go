package handler

import (
	"context"
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"argprep/internal/model"
	"argprep/internal/preprocess"
	"argprep/internal/service"
)

// Case IDs end up in object keys, so they are restricted to a URL- and key-safe alphabet.
var caseIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)

var errFileOpen = errors.New("cannot open uploaded file")

type createCaseRequest struct {
	ID string `json:"id"`
}

// argumentRequest accepts the text under "text" or, for follow-ups, "argument".
type argumentRequest struct {
	Text     string `json:"text"`
	Argument string `json:"argument"`
}

func (r argumentRequest) body() string {
	if r.Text != "" {
		return r.Text
	}
	return r.Argument
}

type linkResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}

var (
	errInvalidID   = errors.New("invalid id format")
	errInvalidSide = errors.New("Side must be 'A' or 'B'")
)

func caseID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if !caseIDPattern.MatchString(id) {
		return "", errInvalidID
	}
	return id, nil
}

func caseAndSide(c *fiber.Ctx) (string, model.Side, error) {
	id, err := caseID(c)
	if err != nil {
		return "", "", err
	}
	side, err := model.ParseSide(c.Params("side"))
	if err != nil {
		return "", "", errInvalidSide
	}
	return id, side, nil
}

// writeParamError answers a rejected path or form parameter.
func writeParamError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errInvalidSide) {
		return writeError(c, fiber.StatusBadRequest, "INVALID_SIDE", err.Error())
	}
	return writeError(c, fiber.StatusBadRequest, "INVALID_ID", err.Error())
}

// readUploads collects the multipart files of a request (field "files", or "file"
// for single uploads). Admission runs on the declared size before any bytes are read.
func readUploads(c *fiber.Ctx, side model.Side) ([]model.UploadedFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, preprocess.ErrNoFiles
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		headers = form.File["file"]
	}
	if len(headers) == 0 {
		return nil, preprocess.ErrNoFiles
	}

	files := make([]model.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		if err := preprocess.Admit(fh.Filename, fh.Size); err != nil {
			return nil, &preprocess.PreprocessError{Filename: fh.Filename, Err: err}
		}
		f, err := fh.Open()
		if err != nil {
			return nil, errFileOpen
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, errFileOpen
		}
		files = append(files, model.UploadedFile{Filename: fh.Filename, Side: side, Content: data})
	}
	return files, nil
}

func writeUploadError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errFileOpen) {
		return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", err.Error())
	}
	return writeServiceError(c, err)
}

// PreviewFiles preprocesses uploaded files without creating a case.
//
// @Summary  Preprocess files
// @Tags     preprocess
// @Accept   multipart/form-data
// @Produce  json
// @Param    files formData file   true  "argument documents (.txt, .pdf, .docx, .doc)"
// @Param    side  formData string false "side label, A or B"
// @Success  200 {object} model.SideResult
// @Failure  400 {object} errorPayload
// @Router   /preprocess [post]
func PreviewFiles(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		side, err := model.ParseSide(c.FormValue("side", "A"))
		if err != nil {
			return writeParamError(c, errInvalidSide)
		}
		files, err := readUploads(c, side)
		if err != nil {
			return writeUploadError(c, err)
		}
		res, err := svc.Preview(c.UserContext(), side, files)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// CreateCase opens a new case.
//
// @Summary  Create case
// @Tags     cases
// @Accept   json
// @Produce  json
// @Param    body body createCaseRequest false "optional case id"
// @Success  201 {object} model.Case
// @Failure  409 {object} errorPayload
// @Router   /cases [post]
func CreateCase(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createCaseRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
			}
		}
		req.ID = strings.TrimSpace(req.ID)
		if req.ID != "" && !caseIDPattern.MatchString(req.ID) {
			return writeParamError(c, errInvalidID)
		}
		cs, err := svc.Create(c.UserContext(), req.ID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(cs)
	}
}

// ListCases lists cases with limit & offset.
//
// @Summary  List cases
// @Tags     cases
// @Produce  json
// @Param    limit  query int false "page size" default(10)
// @Param    offset query int false "offset"    default(0)
// @Success  200 {object} service.CaseListResult
// @Router   /cases [get]
func ListCases(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetCase returns a case with both sides and its sequence.
//
// @Summary  Get case
// @Tags     cases
// @Produce  json
// @Param    id path string true "case id"
// @Success  200 {object} service.CaseView
// @Failure  404 {object} errorPayload
// @Router   /cases/{id} [get]
func GetCase(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := caseID(c)
		if err != nil {
			return writeParamError(c, err)
		}
		v, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(v)
	}
}

// UploadFiles accepts one batch of documents for a side.
//
// @Summary  Upload side documents
// @Tags     cases
// @Accept   multipart/form-data
// @Produce  json
// @Param    id    path     string true "case id"
// @Param    side  path     string true "A or B"
// @Param    files formData file   true "argument documents"
// @Success  201 {object} service.SubmissionResult
// @Failure  400 {object} errorPayload
// @Failure  409 {object} errorPayload
// @Router   /cases/{id}/upload/{side} [post]
func UploadFiles(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, side, err := caseAndSide(c)
		if err != nil {
			return writeParamError(c, err)
		}
		files, err := readUploads(c, side)
		if err != nil {
			return writeUploadError(c, err)
		}
		res, err := svc.Upload(c.UserContext(), id, side, files)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

type submitFunc func(ctx context.Context, id string, side model.Side, text string) (*service.SubmissionResult, error)

func submitText(submit submitFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, side, err := caseAndSide(c)
		if err != nil {
			return writeParamError(c, err)
		}
		var req argumentRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		res, err := submit(c.UserContext(), id, side, req.body())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// SubmitArgument records typed argument text for a side.
//
// @Summary  Submit argument text
// @Tags     cases
// @Accept   json
// @Produce  json
// @Param    id   path string          true "case id"
// @Param    side path string          true "A or B"
// @Param    body body argumentRequest true "argument"
// @Success  201 {object} service.SubmissionResult
// @Router   /cases/{id}/argument/{side} [post]
func SubmitArgument(svc service.CaseService) fiber.Handler {
	return submitText(svc.SubmitArgument)
}

// SubmitFollowUp records a follow-up argument after a verdict.
//
// @Summary  Submit follow-up
// @Tags     cases
// @Accept   json
// @Produce  json
// @Param    id   path string          true "case id"
// @Param    side path string          true "A or B"
// @Param    body body argumentRequest true "argument"
// @Success  201 {object} service.SubmissionResult
// @Failure  409 {object} errorPayload
// @Router   /cases/{id}/follow-up/{side} [post]
func SubmitFollowUp(svc service.CaseService) fiber.Handler {
	return submitText(svc.FollowUp)
}

// ValidateCase reports whether the case may proceed to adjudication.
//
// @Summary  Validate case
// @Tags     cases
// @Produce  json
// @Param    id path string true "case id"
// @Success  200 {object} service.ValidationResult
// @Router   /cases/{id}/validate [get]
func ValidateCase(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := caseID(c)
		if err != nil {
			return writeParamError(c, err)
		}
		res, err := svc.Validate(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// RequestAdjudication hands a valid case to the adjudicator.
//
// @Summary  Request adjudication
// @Tags     cases
// @Produce  json
// @Param    id path string true "case id"
// @Success  202 {object} service.ValidationResult
// @Failure  409 {object} notReadyPayload
// @Router   /cases/{id}/adjudicate [post]
func RequestAdjudication(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := caseID(c)
		if err != nil {
			return writeParamError(c, err)
		}
		res, err := svc.RequestAdjudication(c.UserContext(), id)
		if errors.Is(err, service.ErrCaseNotReady) && res != nil {
			return c.Status(fiber.StatusConflict).JSON(notReadyPayload{
				errorPayload: errorPayload{
					RequestID: requestIDFromCtx(c),
					Error:     errorEnvelope{Code: "CASE_NOT_READY", Message: err.Error()},
				},
				Validation: res,
			})
		}
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusAccepted).JSON(res)
	}
}

// MarkAdjudicated is called back by the adjudicator once a verdict exists.
//
// @Summary  Mark case adjudicated
// @Tags     cases
// @Produce  json
// @Param    id path string true "case id"
// @Success  200 {object} model.Case
// @Failure  409 {object} errorPayload
// @Router   /cases/{id}/adjudicated [post]
func MarkAdjudicated(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := caseID(c)
		if err != nil {
			return writeParamError(c, err)
		}
		cs, err := svc.MarkAdjudicated(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(cs)
	}
}

// FileLink returns a presigned download link for a stored upload.
//
// @Summary  Download link
// @Tags     cases
// @Produce  json
// @Param    id     path string true "case id"
// @Param    fileId path string true "file id"
// @Success  200 {object} linkResponse
// @Failure  404 {object} errorPayload
// @Router   /cases/{id}/files/{fileId}/link [get]
func FileLink(svc service.CaseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := caseID(c)
		if err != nil {
			return writeParamError(c, err)
		}
		fileID := c.Params("fileId")
		if _, err := uuid.Parse(fileID); err != nil {
			return writeParamError(c, errInvalidID)
		}
		url, err := svc.FileLink(c.UserContext(), id, fileID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(linkResponse{URL: url, ExpiresIn: int(service.LinkExpiry.Seconds())})
	}
}
