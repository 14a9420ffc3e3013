package ui

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pratikkkbhere/DataPilot/adapters/fileio"
	"github.com/pratikkkbhere/DataPilot/domain/core"
	"github.com/pratikkkbhere/DataPilot/domain/dataset"
	"github.com/pratikkkbhere/DataPilot/domain/query"
	"github.com/pratikkkbhere/DataPilot/internal/chart"
	"github.com/pratikkkbhere/DataPilot/internal/clean"
	apperrors "github.com/pratikkkbhere/DataPilot/internal/errors"
	"github.com/pratikkkbhere/DataPilot/internal/report"
	"github.com/pratikkkbhere/DataPilot/internal/session"
	"github.com/pratikkkbhere/DataPilot/internal/testkit"
)

// handleUpload receives a CSV or Excel file, runs the automatic cleaning
// pipeline, and opens a new session over the result.
func (s *Server) handleUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}
	if fileHeader.Size > s.cfg.Upload.MaxFileSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds upload limit"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respondError(c, apperrors.Wrap(err, "failed to open upload"))
		return
	}
	defer f.Close()

	table, err := fileio.Parse(f, fileHeader.Filename)
	if err != nil {
		respondError(c, err)
		return
	}
	if table.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "the file contains no data rows"})
		return
	}

	s.createSession(c, fileHeader.Filename, table)
}

// handleDemo opens a session over a generated messy dataset.
func (s *Server) handleDemo(c *gin.Context) {
	table := testkit.GenerateSalesTable(testkit.DefaultGeneratorConfig())
	s.createSession(c, "demo_sales.csv", table)
}

func (s *Server) createSession(c *gin.Context, filename string, table *dataset.Table) {
	w, err := session.NewWorkbench(c.Request.Context(), filename, table, s.cfg.Undo.Window)
	if err != nil {
		respondError(c, err)
		return
	}
	s.store.Put(w)

	c.JSON(http.StatusCreated, gin.H{
		"sessionId":       w.ID.String(),
		"filename":        w.Filename,
		"summary":         w.Summary(),
		"cleaningSummary": w.CleaningSummary(),
		"columns":         w.Data().Columns,
		"rowCount":        w.Data().NumRows(),
		"undoWindowMs":    s.cfg.Undo.Window.Milliseconds(),
	})
}

func (s *Server) handleSummary(c *gin.Context) {
	s.withSession(c, func(w *session.Workbench) error {
		c.JSON(http.StatusOK, gin.H{
			"filename":    w.Filename,
			"summary":     w.Summary(),
			"actions":     w.Actions(),
			"undoPending": w.UndoPending(),
		})
		return nil
	})
}

func (s *Server) handleData(c *gin.Context) {
	limit := intQuery(c, "limit", 100)
	offset := intQuery(c, "offset", 0)

	s.withSession(c, func(w *session.Workbench) error {
		c.JSON(http.StatusOK, pageOf(w.Data(), limit, offset))
		return nil
	})
}

func (s *Server) handleActions(c *gin.Context) {
	s.withSession(c, func(w *session.Workbench) error {
		c.JSON(http.StatusOK, gin.H{"actions": w.Actions()})
		return nil
	})
}

func (s *Server) handleDelete(c *gin.Context) {
	id, err := core.ParseSessionID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.store.Delete(id)
	c.Status(http.StatusNoContent)
}

func (s *Server) handleMissingPreview(c *gin.Context) {
	var req struct {
		Configs []dataset.MissingValueConfig `json:"configs"`
	}
	if !bindJSON(c, &req) {
		return
	}
	s.withSession(c, func(w *session.Workbench) error {
		previews, err := w.PreviewMissingValues(req.Configs)
		if err != nil {
			return err
		}
		c.JSON(http.StatusOK, gin.H{"previews": previews})
		return nil
	})
}

func (s *Server) handleMissingApply(c *gin.Context) {
	var req struct {
		Configs []dataset.MissingValueConfig `json:"configs"`
	}
	if !bindJSON(c, &req) {
		return
	}
	s.withSession(c, func(w *session.Workbench) error {
		applied, err := w.ApplyMissingValues(c.Request.Context(), req.Configs)
		if err != nil {
			return err
		}
		c.JSON(http.StatusOK, gin.H{
			"applied":      applied,
			"summary":      w.Summary(),
			"rowCount":     w.Data().NumRows(),
			"undoPending":  w.UndoPending(),
			"undoWindowMs": s.cfg.Undo.Window.Milliseconds(),
		})
		return nil
	})
}

func (s *Server) handleFindReplacePreview(c *gin.Context) {
	var opts clean.FindReplaceOptions
	if !bindJSON(c, &opts) {
		return
	}
	s.withSession(c, func(w *session.Workbench) error {
		count, err := w.PreviewFindReplace(opts)
		if err != nil {
			return err
		}
		c.JSON(http.StatusOK, gin.H{"occurrences": count})
		return nil
	})
}

func (s *Server) handleFindReplace(c *gin.Context) {
	var opts clean.FindReplaceOptions
	if !bindJSON(c, &opts) {
		return
	}
	s.withSession(c, func(w *session.Workbench) error {
		action, err := w.FindReplace(c.Request.Context(), opts)
		if err != nil {
			return err
		}
		c.JSON(http.StatusOK, gin.H{
			"action":       action,
			"rowCount":     w.Data().NumRows(),
			"undoPending":  w.UndoPending(),
			"undoWindowMs": s.cfg.Undo.Window.Milliseconds(),
		})
		return nil
	})
}

func (s *Server) handleUndo(c *gin.Context) {
	s.withSession(c, func(w *session.Workbench) error {
		if err := w.Undo(c.Request.Context()); err != nil {
			return err
		}
		c.JSON(http.StatusOK, gin.H{
			"summary":  w.Summary(),
			"actions":  w.Actions(),
			"rowCount": w.Data().NumRows(),
		})
		return nil
	})
}

func (s *Server) handleView(c *gin.Context) {
	var req struct {
		Filters []dataset.FilterConfig `json:"filters"`
		Sorts   []dataset.SortConfig   `json:"sorts"`
		Limit   int                    `json:"limit"`
		Offset  int                    `json:"offset"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if req.Limit <= 0 {
		req.Limit = 100
	}
	s.withSession(c, func(w *session.Workbench) error {
		view, err := w.View(req.Filters, req.Sorts)
		if err != nil {
			return err
		}
		c.JSON(http.StatusOK, pageOf(view, req.Limit, req.Offset))
		return nil
	})
}

func (s *Server) handleAggregate(c *gin.Context) {
	var cfg dataset.AggregationConfig
	if !bindJSON(c, &cfg) {
		return
	}
	s.withSession(c, func(w *session.Workbench) error {
		result, err := w.Aggregate(cfg)
		if err != nil {
			return err
		}
		c.JSON(http.StatusOK, gin.H{
			"columns": result.Columns,
			"rows":    result.Rows,
		})
		return nil
	})
}

func (s *Server) handleChart(c *gin.Context) {
	var cfg dataset.ChartConfig
	if !bindJSON(c, &cfg) {
		return
	}
	s.withSession(c, func(w *session.Workbench) error {
		data := w.Data()
		switch cfg.Type {
		case dataset.ChartScatter:
			c.JSON(http.StatusOK, gin.H{"points": chart.PrepareScatterData(data, cfg.XAxis, cfg.YAxis)})
		case dataset.ChartHistogram:
			c.JSON(http.StatusOK, gin.H{"bins": chart.PrepareHistogramData(data, cfg.XAxis, cfg.Bins)})
		case dataset.ChartBar, dataset.ChartLine, dataset.ChartPie:
			c.JSON(http.StatusOK, gin.H{"points": chart.PrepareCategoryData(data, cfg.XAxis, cfg.YAxis, cfg.Aggregation)})
		default:
			return apperrors.ValidationError("unsupported chart type: " + string(cfg.Type))
		}
		return nil
	})
}

func (s *Server) handleSQL(c *gin.Context) {
	var req struct {
		Query string `json:"query"`
	}
	if !bindJSON(c, &req) {
		return
	}
	s.withSession(c, func(w *session.Workbench) error {
		result, err := w.ExecuteSQL(c.Request.Context(), req.Query)
		if err != nil {
			return err
		}
		c.JSON(http.StatusOK, result)
		return nil
	})
}

func (s *Server) handleVisualQuery(c *gin.Context) {
	var cfg query.VisualQueryConfig
	if !bindJSON(c, &cfg) {
		return
	}
	s.withSession(c, func(w *session.Workbench) error {
		sqlText, result, err := w.RunVisualQuery(c.Request.Context(), cfg)
		if err != nil {
			return err
		}
		c.JSON(http.StatusOK, gin.H{
			"sql":    sqlText,
			"result": result,
		})
		return nil
	})
}

func (s *Server) handleTemplates(c *gin.Context) {
	s.withSession(c, func(w *session.Workbench) error {
		c.JSON(http.StatusOK, gin.H{"templates": w.Templates()})
		return nil
	})
}

func (s *Server) handleSchema(c *gin.Context) {
	s.withSession(c, func(w *session.Workbench) error {
		c.JSON(http.StatusOK, w.SampleInfo(c.Request.Context(), 10))
		return nil
	})
}

func (s *Server) handleExport(c *gin.Context) {
	format := fileio.Format(c.DefaultQuery("format", "csv"))
	s.withSession(c, func(w *session.Workbench) error {
		payload, err := fileio.Serialize(w.Data(), format)
		if err != nil {
			return err
		}
		name := fileio.ExportFilename(w.Filename, format)
		c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
		c.Data(http.StatusOK, fileio.ContentType(format), payload)
		return nil
	})
}

func (s *Server) handleReport(c *gin.Context) {
	s.withSession(c, func(w *session.Workbench) error {
		md := report.BuildMarkdown(w.Filename, w.Summary(), w.Actions())
		if c.DefaultQuery("format", "html") == "markdown" {
			c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
			return nil
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", report.RenderHTML(md))
		return nil
	})
}

// withSession resolves the session ID path parameter and runs fn with
// exclusive access to the workbench, translating failures to HTTP.
func (s *Server) withSession(c *gin.Context, fn func(*session.Workbench) error) {
	id, err := core.ParseSessionID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.store.With(id, fn); err != nil {
		respondError(c, err)
	}
}

func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return false
	}
	return true
}

func intQuery(c *gin.Context, key string, fallback int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil && v >= 0 {
		return v
	}
	return fallback
}

// pageOf slices a table into a bounded JSON page.
func pageOf(t *dataset.Table, limit, offset int) gin.H {
	total := t.NumRows()
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return gin.H{
		"columns":  t.Columns,
		"rows":     t.Rows[offset:end],
		"offset":   offset,
		"returned": end - offset,
		"total":    total,
	}
}

// respondError maps domain and application errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, core.ErrSessionGone):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrNothingToUndo):
		status = http.StatusConflict
	case errors.Is(err, core.ErrEmptyDataset),
		errors.Is(err, core.ErrInvalidAggregation),
		errors.Is(err, core.ErrInvalidFilter),
		core.IsValidationError(err):
		status = http.StatusBadRequest
	default:
		switch apperrors.GetCode(err) {
		case apperrors.CodeParseError, apperrors.CodeValidationError, apperrors.CodeConfigInvalid:
			status = http.StatusBadRequest
		case apperrors.CodeNotFound:
			status = http.StatusNotFound
		case apperrors.CodeQueryExecutionError:
			status = http.StatusBadGateway
		}
	}

	c.JSON(status, gin.H{"error": err.Error(), "code": apperrors.GetCode(err)})
}
