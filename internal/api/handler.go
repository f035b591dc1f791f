package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/Lumos-Labs-HQ/datamock/internal/classify"
	"github.com/Lumos-Labs-HQ/datamock/internal/converter"
	"github.com/Lumos-Labs-HQ/datamock/internal/editor"
	"github.com/Lumos-Labs-HQ/datamock/internal/logger"
	"github.com/Lumos-Labs-HQ/datamock/internal/preview"
	"github.com/Lumos-Labs-HQ/datamock/internal/rule"
	"github.com/Lumos-Labs-HQ/datamock/internal/types"
)

const maxPreviewRows = 100

// Handler serves the rule conversion endpoints.
type Handler struct {
	reg         *converter.Registry
	dialect     classify.Dialect
	previewRows int
	log         logger.LoggerI
}

func NewHandler(reg *converter.Registry, dialect classify.Dialect, previewRows int, log logger.LoggerI) *Handler {
	return &Handler{reg: reg, dialect: dialect, previewRows: previewRows, log: log}
}

// numberJSON binds JSON bodies keeping numbers as json.Number, so loosely
// typed server values beyond 2^53 keep their digits.
type numberJSON struct{}

func (numberJSON) Name() string { return "json" }

func (numberJSON) Bind(req *http.Request, obj interface{}) error {
	if req == nil || req.Body == nil {
		return fmt.Errorf("invalid request")
	}
	dec := json.NewDecoder(req.Body)
	dec.UseNumber()
	if err := dec.Decode(obj); err != nil {
		return err
	}
	return binding.Validator.ValidateStruct(obj)
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (h *Handler) fail(c *gin.Context, err error) {
	var fe editor.FieldErrors
	switch {
	case errors.As(err, &fe):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Fields: fe})
		return
	case errors.Is(err, converter.ErrUnknownRule), errors.Is(err, classify.ErrUnknownDialect):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	h.log.Error("request failed", logger.String("path", c.FullPath()), logger.Error(err))
	c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

// resolveDialect falls back to the server dialect when the request names none.
func (h *Handler) resolveDialect(name string) (classify.Dialect, error) {
	if name == "" {
		return h.dialect, nil
	}
	return classify.ParseDialect(name)
}

type classifyRequest struct {
	Dialect    string `json:"dialect"`
	ColumnType string `json:"columnType" binding:"required"`
}

type classifyResponse struct {
	Category    rule.Category    `json:"category"`
	Matched     bool             `json:"matched"`
	Rules       []rule.Type      `json:"rules"`
	Generators  []rule.Generator `json:"generators"`
	DefaultRule rule.Type        `json:"defaultRule"`
}

func (h *Handler) Classify(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindWith(&req, numberJSON{}); err != nil {
		h.fail(c, err)
		return
	}
	d, err := h.resolveDialect(req.Dialect)
	if err != nil {
		h.fail(c, err)
		return
	}
	cat, ok := classify.Classify(d, req.ColumnType)
	if !ok {
		cat = rule.CategoryOther
	}
	c.JSON(http.StatusOK, classifyResponse{
		Category:    cat,
		Matched:     ok,
		Rules:       rule.Rules(cat),
		Generators:  rule.Generators(cat),
		DefaultRule: rule.DefaultRule(cat),
	})
}

type defaultsRequest struct {
	Dialect string       `json:"dialect"`
	Column  types.Column `json:"column"`
	Rule    rule.Type    `json:"rule"`
}

func (h *Handler) Defaults(c *gin.Context) {
	var req defaultsRequest
	if err := c.ShouldBindWith(&req, numberJSON{}); err != nil {
		h.fail(c, err)
		return
	}
	d, err := h.resolveDialect(req.Dialect)
	if err != nil {
		h.fail(c, err)
		return
	}
	if req.Rule == "" {
		c.JSON(http.StatusOK, h.reg.DefaultColumn(d, req.Column))
		return
	}
	v, err := h.reg.DefaultValue(d, req.Column, req.Rule)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, converter.FormColumn{Column: req.Column, Rule: req.Rule, TypeConfig: v})
}

type validateRequest struct {
	Dialect string               `json:"dialect"`
	Column  converter.FormColumn `json:"column"`
}

type validateResponse struct {
	Valid   bool   `json:"valid"`
	Summary string `json:"summary"`
}

func (h *Handler) Validate(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindWith(&req, numberJSON{}); err != nil {
		h.fail(c, err)
		return
	}
	d, err := h.resolveDialect(req.Dialect)
	if err != nil {
		h.fail(c, err)
		return
	}
	e, err := editor.FromColumn(h.reg, d, req.Column)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := editor.Validate(d, req.Column.Column, e.Category(), e.Rule(), e.Value()); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, validateResponse{Valid: true, Summary: e.Summary()})
}

type toServerRequest struct {
	Dialect string                 `json:"dialect"`
	Columns []converter.FormColumn `json:"columns" binding:"required"`
}

type toFormRequest struct {
	Dialect string                   `json:"dialect"`
	Columns []converter.ServerColumn `json:"columns" binding:"required"`
}

type columnsResponse struct {
	Columns interface{} `json:"columns"`
}

func (h *Handler) ToServer(c *gin.Context) {
	var req toServerRequest
	if err := c.ShouldBindWith(&req, numberJSON{}); err != nil {
		h.fail(c, err)
		return
	}
	d, err := h.resolveDialect(req.Dialect)
	if err != nil {
		h.fail(c, err)
		return
	}
	cols, err := h.reg.ConvertFormToServerColumns(d, req.Columns)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, columnsResponse{Columns: cols})
}

func (h *Handler) ToForm(c *gin.Context) {
	var req toFormRequest
	if err := c.ShouldBindWith(&req, numberJSON{}); err != nil {
		h.fail(c, err)
		return
	}
	d, err := h.resolveDialect(req.Dialect)
	if err != nil {
		h.fail(c, err)
		return
	}
	cols, err := h.reg.ConvertServerColumnsToFormColumns(d, req.Columns)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, columnsResponse{Columns: cols})
}

type previewRequest struct {
	Rows    int                      `json:"rows" binding:"omitempty,min=1,max=100"`
	Seed    int64                    `json:"seed"`
	Columns []converter.ServerColumn `json:"columns" binding:"required"`
}

type previewResponse struct {
	Rows []map[string]interface{} `json:"rows"`
}

func (h *Handler) Preview(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindWith(&req, numberJSON{}); err != nil {
		h.fail(c, err)
		return
	}
	n := req.Rows
	if n == 0 {
		n = h.previewRows
	}
	if n > maxPreviewRows {
		n = maxPreviewRows
	}
	s, err := preview.New(req.Seed, h.reg.Options())
	if err != nil {
		h.fail(c, err)
		return
	}
	rows, err := s.Rows(req.Columns, n)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, previewResponse{Rows: rows})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "dialect": h.dialect})
}
