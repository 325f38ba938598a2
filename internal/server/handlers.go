package server

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/piwi3910/BoardCut/internal/export"
	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/piwi3910/BoardCut/internal/orders"
	"github.com/piwi3910/BoardCut/internal/storage"
)

// orderSavedMessage is returned to the customer after a successful order.
const orderSavedMessage = "تم حفظ الطلب بنجاح"

type layoutRequest struct {
	Board          *model.BoardSize  `json:"board"`
	Pieces         []model.WoodPiece `json:"pieces"`
	RotationPolicy string            `json:"rotation_policy"`
}

func (r layoutRequest) board() model.BoardSize {
	if r.Board == nil {
		return model.DefaultBoardSize()
	}
	return *r.Board
}

type estimateRequest struct {
	layoutRequest
	WastePercent  float64 `json:"waste_percent"`
	PricePerBoard float64 `json:"price_per_board"`
}

type kdtRequest struct {
	layoutRequest
	ProjectName string         `json:"project_name"`
	Customer    model.Customer `json:"customer"`
}

type orderRequest struct {
	CustomerName string         `json:"customerName"`
	PhoneNumber  string         `json:"phoneNumber"`
	ExcelFile    string         `json:"excelFile"`
	ProjectName  string         `json:"projectName"`
	Layout       *layoutRequest `json:"layout"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// computeProject runs the engine for req and returns a project ready for
// export.
func (s *Server) computeProject(c *gin.Context, req layoutRequest) (model.Project, error) {
	eng, err := s.newEngine(req.RotationPolicy)
	if err != nil {
		return model.Project{}, err
	}
	board := req.board()
	layout, err := eng.ComputeLayout(c.Request.Context(), board, req.Pieces)
	if err != nil {
		return model.Project{}, err
	}
	proj := model.NewProject()
	proj.Board = board
	proj.Pieces = req.Pieces
	proj.Settings = eng.Settings()
	proj.Layout = &layout
	return proj, nil
}

func (s *Server) handleLayout(c *gin.Context) {
	var req layoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	proj, err := s.computeProject(c, req)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, proj.Layout)
}

func (s *Server) handleEstimate(c *gin.Context) {
	var req estimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	proj, err := s.computeProject(c, req.layoutRequest)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	est := model.CalculatePurchaseEstimate(proj.Pieces, proj.Board, req.WastePercent, req.PricePerBoard)
	c.JSON(http.StatusOK, est.WithLayout(*proj.Layout))
}

func (s *Server) handleKDT(c *gin.Context) {
	var req kdtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	proj, err := s.computeProject(c, req.layoutRequest)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	proj.Name = req.ProjectName
	proj.Customer = req.Customer

	data, err := export.KDTBytes(proj)
	if err != nil {
		internalError(c, "Failed to build workbook", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="KDT.xlsx"`)
	c.Data(http.StatusOK, export.XLSXContentType, data)
}

func (s *Server) handleChart(c *gin.Context) {
	var req layoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	proj, err := s.computeProject(c, req)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := export.RenderChart(c.Writer, *proj.Layout); err != nil {
		s.logger.Error("chart render failed", "error", err)
	}
}

func (s *Server) handleSubmitOrder(c *gin.Context) {
	ctx, span := s.tracer.Start(c.Request.Context(), "server.SubmitOrder")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var workbook []byte
	switch {
	case req.ExcelFile != "":
		data, err := base64.StdEncoding.DecodeString(req.ExcelFile)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid excelFile encoding"})
			return
		}
		workbook = data
	case req.Layout != nil:
		cust := model.Customer{Name: req.CustomerName, Phone: req.PhoneNumber}
		if err := cust.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		proj, err := s.computeProject(c, *req.Layout)
		if err != nil {
			writeEngineError(c, err)
			return
		}
		proj.Name = req.ProjectName
		proj.Customer = cust
		data, err := export.KDTBytes(proj)
		if err != nil {
			internalError(c, "Failed to build workbook", err)
			return
		}
		workbook = data
	}
	span.SetAttributes(attribute.Bool("order.server_built", req.ExcelFile == "" && req.Layout != nil))

	order, err := s.orders.Submit(ctx, orders.SubmitRequest{
		CustomerName: req.CustomerName,
		Phone:        req.PhoneNumber,
		Workbook:     workbook,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "submit failed")
		if errors.Is(err, model.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}
		internalError(c, "Failed to save order to database", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
		"message": orderSavedMessage,
	})
}

func (s *Server) handleListOrders(c *gin.Context) {
	list, err := s.orders.List(c.Request.Context())
	if err != nil {
		internalError(c, "Failed to list orders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": list})
}

func (s *Server) handleFile(c *gin.Context) {
	key := c.Param("filename")
	data, err := s.orders.Open(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
			return
		}
		internalError(c, "Failed to download file", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, path.Base(key)))
	c.Data(http.StatusOK, export.XLSXContentType, data)
}

// writeEngineError maps layout errors onto HTTP statuses.
func writeEngineError(c *gin.Context, err error) {
	var tooLarge *model.PieceTooLargeError
	var invalid *model.InvalidPieceError
	switch {
	case errors.As(err, &tooLarge):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "piece_id": tooLarge.PieceID})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "piece_id": invalid.PieceID})
	case errors.Is(err, model.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		internalError(c, "Layout failed", err)
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
}

func internalError(c *gin.Context, msg string, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg, "details": err.Error()})
}
