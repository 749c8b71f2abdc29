// Package http exposes the engine's operations over a JSON API.
package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/application/usecases/queries"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/parcel"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createBatchHandler            commands.CreateBatchCommandHandler
	scanItemHandler               commands.ScanItemCommandHandler
	completeBatchHandler          commands.CompleteBatchCommandHandler
	assignItemsHandler            commands.AssignItemsCommandHandler
	preAlertParcelHandler         commands.PreAlertParcelCommandHandler
	registerParcelHandler         commands.RegisterParcelCommandHandler
	changeParcelStatusHandler     commands.ChangeParcelStatusCommandHandler
	attachDocumentHandler         commands.AttachDocumentCommandHandler
	createShipmentHandler         commands.CreateShipmentCommandHandler
	quoteShipmentHandler          commands.QuoteShipmentCommandHandler
	completePaymentHandler        commands.CompletePaymentCommandHandler
	cancelShipmentHandler         commands.CancelShipmentCommandHandler
	recordShipmentProgressHandler commands.RecordShipmentProgressCommandHandler

	// Query handlers
	getAvailableServicesHandler queries.GetAvailableServicesQueryHandler
	getShipmentHandler          queries.GetShipmentQueryHandler
	getBatchItemsHandler        queries.GetBatchItemsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createBatchHandler commands.CreateBatchCommandHandler,
	scanItemHandler commands.ScanItemCommandHandler,
	completeBatchHandler commands.CompleteBatchCommandHandler,
	assignItemsHandler commands.AssignItemsCommandHandler,
	preAlertParcelHandler commands.PreAlertParcelCommandHandler,
	registerParcelHandler commands.RegisterParcelCommandHandler,
	changeParcelStatusHandler commands.ChangeParcelStatusCommandHandler,
	attachDocumentHandler commands.AttachDocumentCommandHandler,
	createShipmentHandler commands.CreateShipmentCommandHandler,
	quoteShipmentHandler commands.QuoteShipmentCommandHandler,
	completePaymentHandler commands.CompletePaymentCommandHandler,
	cancelShipmentHandler commands.CancelShipmentCommandHandler,
	recordShipmentProgressHandler commands.RecordShipmentProgressCommandHandler,
	getAvailableServicesHandler queries.GetAvailableServicesQueryHandler,
	getShipmentHandler queries.GetShipmentQueryHandler,
	getBatchItemsHandler queries.GetBatchItemsQueryHandler,
) *Server {
	return &Server{
		createBatchHandler:            createBatchHandler,
		scanItemHandler:               scanItemHandler,
		completeBatchHandler:          completeBatchHandler,
		assignItemsHandler:            assignItemsHandler,
		preAlertParcelHandler:         preAlertParcelHandler,
		registerParcelHandler:         registerParcelHandler,
		changeParcelStatusHandler:     changeParcelStatusHandler,
		attachDocumentHandler:         attachDocumentHandler,
		createShipmentHandler:         createShipmentHandler,
		quoteShipmentHandler:          quoteShipmentHandler,
		completePaymentHandler:        completePaymentHandler,
		cancelShipmentHandler:         cancelShipmentHandler,
		recordShipmentProgressHandler: recordShipmentProgressHandler,
		getAvailableServicesHandler:   getAvailableServicesHandler,
		getShipmentHandler:            getShipmentHandler,
		getBatchItemsHandler:          getBatchItemsHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/batches", s.CreateBatch)
	api.POST("/batches/:batchID/items", s.ScanItem)
	api.POST("/batches/:batchID/complete", s.CompleteBatch)
	api.GET("/batches/:batchID/items", s.GetBatchItems)
	api.POST("/items/assign", s.AssignItems)

	api.POST("/parcels/pre-alerts", s.PreAlertParcel)
	api.POST("/parcels", s.RegisterParcel)
	api.POST("/parcels/:parcelID/status", s.ChangeParcelStatus)
	api.POST("/parcels/:parcelID/documents", s.AttachDocument)

	api.GET("/services", s.GetAvailableServices)
	api.POST("/shipments", s.CreateShipment)
	api.POST("/shipments/:shipmentID/quote", s.QuoteShipment)
	api.POST("/shipments/:shipmentID/payment", s.CompletePayment)
	api.POST("/shipments/:shipmentID/cancel", s.CancelShipment)
	api.POST("/shipments/:shipmentID/progress", s.RecordShipmentProgress)
	api.GET("/shipments/:shipmentID", s.GetShipment)
}

// Error is the JSON error body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func errorJSON(ctx echo.Context, err error) error {
	code := statusFor(err)
	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}

// statusFor maps application errors onto HTTP status codes. Validation
// failures are client errors, missing objects are 404, domain rule
// violations are conflicts, everything else is a 500.
func statusFor(err error) int {
	var notFound *errs.ObjectNotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound
	}

	var invalid *errs.ValueIsInvalidError
	var required *errs.ValueIsRequiredError
	var outOfRange *errs.ValueIsOutOfRangeError
	if errors.As(err, &invalid) || errors.As(err, &required) || errors.As(err, &outOfRange) {
		return http.StatusBadRequest
	}

	var parcelTransition *parcel.InvalidTransitionError
	var shipmentTransition *shipment.InvalidTransitionError
	if errors.As(err, &parcelTransition) || errors.As(err, &shipmentTransition) {
		return http.StatusConflict
	}

	var notReady *commands.ParcelsNotReadyError
	var linked *commands.ParcelsAlreadyLinkedError
	var mismatch *commands.AmountMismatchError
	if errors.As(err, &notReady) || errors.As(err, &linked) || errors.As(err, &mismatch) {
		return http.StatusConflict
	}
	if errors.Is(err, commands.ErrParcelsSpanWarehouses) || errors.Is(err, commands.ErrPaymentNotSucceeded) {
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}

func parseUUID(s string) (kernel.UUID, error) {
	return kernel.UUIDFromString(s)
}

// --- Intake ---

type createBatchRequest struct {
	CourierID      string `json:"courier_id"`
	ExpectedPieces int    `json:"expected_pieces"`
}

type createBatchResponse struct {
	ID string `json:"id"`
}

// CreateBatch handles POST /api/v1/batches - opens a new receiving batch.
func (s *Server) CreateBatch(ctx echo.Context) error {
	var req createBatchRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}

	courierID, err := parseUUID(req.CourierID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	batchID := kernel.NewUUID()
	cmd, err := commands.NewCreateBatchCommand(batchID, courierID, req.ExpectedPieces)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if handleErr := s.createBatchHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorJSON(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, createBatchResponse{ID: batchID.String()})
}

type scanItemRequest struct {
	TrackingNumber string `json:"tracking_number"`
}

type scanItemResponse struct {
	ItemID    string `json:"item_id"`
	Duplicate bool   `json:"duplicate"`
}

// ScanItem handles POST /api/v1/batches/:batchID/items - records one scan.
func (s *Server) ScanItem(ctx echo.Context) error {
	batchID, err := parseUUID(ctx.Param("batchID"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req scanItemRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}

	cmd, err := commands.NewScanItemCommand(batchID, req.TrackingNumber)
	if err != nil {
		return errorJSON(ctx, err)
	}

	result, err := s.scanItemHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, scanItemResponse{
		ItemID:    result.ItemID.String(),
		Duplicate: result.Duplicate,
	})
}

// CompleteBatch handles POST /api/v1/batches/:batchID/complete.
func (s *Server) CompleteBatch(ctx echo.Context) error {
	batchID, err := parseUUID(ctx.Param("batchID"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewCompleteBatchCommand(batchID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if handleErr := s.completeBatchHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorJSON(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetBatchItems handles GET /api/v1/batches/:batchID/items.
func (s *Server) GetBatchItems(ctx echo.Context) error {
	batchID, err := parseUUID(ctx.Param("batchID"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	query, err := queries.NewGetBatchItemsQuery(batchID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	items, err := s.getBatchItemsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, items)
}

type assignItemsRequest struct {
	ItemIDs    []string `json:"item_ids"`
	CustomerID string   `json:"customer_id"`
}

// AssignItems handles POST /api/v1/items/assign - assigns scanned items to a
// customer, all or nothing.
func (s *Server) AssignItems(ctx echo.Context) error {
	var req assignItemsRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}

	customerID, err := parseUUID(req.CustomerID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	itemIDs := make([]kernel.UUID, 0, len(req.ItemIDs))
	for _, raw := range req.ItemIDs {
		itemID, idErr := parseUUID(raw)
		if idErr != nil {
			return errorJSON(ctx, idErr)
		}
		itemIDs = append(itemIDs, itemID)
	}

	cmd, err := commands.NewAssignItemsCommand(itemIDs, customerID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if handleErr := s.assignItemsHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorJSON(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// --- Parcels ---

type moneyRequest struct {
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
}

func (m moneyRequest) toDomain() (kernel.Money, error) {
	currency, err := kernel.CurrencyFromCode(m.Currency)
	if err != nil {
		return kernel.Money{}, err
	}
	return kernel.NewMoney(m.AmountMinor, currency)
}

type flagsRequest struct {
	Fragile           bool `json:"fragile"`
	HighValue         bool `json:"high_value"`
	Restricted        bool `json:"restricted"`
	RequiresSignature bool `json:"requires_signature"`
}

func (f flagsRequest) toDomain() parcel.Flags {
	return parcel.Flags{
		Fragile:           f.Fragile,
		HighValue:         f.HighValue,
		Restricted:        f.Restricted,
		RequiresSignature: f.RequiresSignature,
	}
}

type preAlertParcelRequest struct {
	CustomerID      string       `json:"customer_id"`
	WarehouseID     string       `json:"warehouse_id"`
	InboundTracking string       `json:"inbound_tracking"`
	DeclaredValue   moneyRequest `json:"declared_value"`
	Flags           flagsRequest `json:"flags"`
}

type parcelCreatedResponse struct {
	ID string `json:"id"`
}

// PreAlertParcel handles POST /api/v1/parcels/pre-alerts - announces a parcel
// before it arrives.
func (s *Server) PreAlertParcel(ctx echo.Context) error {
	var req preAlertParcelRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}

	customerID, err := parseUUID(req.CustomerID)
	if err != nil {
		return errorJSON(ctx, err)
	}
	warehouseID, err := parseUUID(req.WarehouseID)
	if err != nil {
		return errorJSON(ctx, err)
	}
	declaredValue, err := req.DeclaredValue.toDomain()
	if err != nil {
		return errorJSON(ctx, err)
	}

	parcelID := kernel.NewUUID()
	cmd, err := commands.NewPreAlertParcelCommand(
		parcelID, customerID, warehouseID,
		req.InboundTracking, declaredValue, req.Flags.toDomain(),
	)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if handleErr := s.preAlertParcelHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorJSON(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, parcelCreatedResponse{ID: parcelID.String()})
}

type registerParcelRequest struct {
	ScannedItemID string       `json:"scanned_item_id"`
	WarehouseID   string       `json:"warehouse_id"`
	WeightKg      float64      `json:"weight_kg"`
	LengthCm      float64      `json:"length_cm"`
	WidthCm       float64      `json:"width_cm"`
	HeightCm      float64      `json:"height_cm"`
	DeclaredValue moneyRequest `json:"declared_value"`
	Flags         flagsRequest `json:"flags"`
}

// RegisterParcel handles POST /api/v1/parcels - converts an assigned scanned
// item into a received, measured parcel.
func (s *Server) RegisterParcel(ctx echo.Context) error {
	var req registerParcelRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}

	scannedItemID, err := parseUUID(req.ScannedItemID)
	if err != nil {
		return errorJSON(ctx, err)
	}
	warehouseID, err := parseUUID(req.WarehouseID)
	if err != nil {
		return errorJSON(ctx, err)
	}
	weight, err := kernel.NewWeight(req.WeightKg)
	if err != nil {
		return errorJSON(ctx, err)
	}
	dimensions, err := kernel.NewDimensions(req.LengthCm, req.WidthCm, req.HeightCm)
	if err != nil {
		return errorJSON(ctx, err)
	}
	declaredValue, err := req.DeclaredValue.toDomain()
	if err != nil {
		return errorJSON(ctx, err)
	}

	parcelID := kernel.NewUUID()
	cmd, err := commands.NewRegisterParcelCommand(
		parcelID, scannedItemID, warehouseID,
		weight, dimensions, declaredValue, req.Flags.toDomain(),
	)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if handleErr := s.registerParcelHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorJSON(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, parcelCreatedResponse{ID: parcelID.String()})
}

type changeParcelStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
	Actor  string `json:"actor"`
}

// ChangeParcelStatus handles POST /api/v1/parcels/:parcelID/status.
func (s *Server) ChangeParcelStatus(ctx echo.Context) error {
	parcelID, err := parseUUID(ctx.Param("parcelID"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req changeParcelStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}

	to, err := parcel.StatusFromString(req.Status)
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewChangeParcelStatusCommand(parcelID, to, req.Reason, req.Actor)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if handleErr := s.changeParcelStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorJSON(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type attachDocumentRequest struct {
	DocumentID string `json:"document_id"`
}

// AttachDocument handles POST /api/v1/parcels/:parcelID/documents.
func (s *Server) AttachDocument(ctx echo.Context) error {
	parcelID, err := parseUUID(ctx.Param("parcelID"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req attachDocumentRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}

	cmd, err := commands.NewAttachDocumentCommand(parcelID, req.DocumentID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if handleErr := s.attachDocumentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorJSON(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// --- Shipments ---

// GetAvailableServices handles GET /api/v1/services - prices every service
// level for a lane and weight, cheapest first.
func (s *Server) GetAvailableServices(ctx echo.Context) error {
	warehouseID, err := parseUUID(ctx.QueryParam("warehouse_id"))
	if err != nil {
		return errorJSON(ctx, err)
	}
	zoneID, err := parseUUID(ctx.QueryParam("zone_id"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	var weightKg float64
	if err := echo.QueryParamsBinder(ctx).Float64("chargeable_weight_kg", &weightKg).BindError(); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid chargeable_weight_kg"})
	}
	weight, err := kernel.NewWeight(weightKg)
	if err != nil {
		return errorJSON(ctx, err)
	}

	query, err := queries.NewGetAvailableServicesQuery(warehouseID, zoneID, weight)
	if err != nil {
		return errorJSON(ctx, err)
	}

	services, err := s.getAvailableServicesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, services)
}

type createShipmentRequest struct {
	CustomerID        string   `json:"customer_id"`
	DestinationZoneID string   `json:"destination_zone_id"`
	ServiceType       string   `json:"service_type"`
	ParcelIDs         []string `json:"parcel_ids"`
}

type shipmentCreatedResponse struct {
	ID string `json:"id"`
}

// CreateShipment handles POST /api/v1/shipments - consolidates ready parcels
// into a shipment awaiting a quote.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var req createShipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}

	customerID, err := parseUUID(req.CustomerID)
	if err != nil {
		return errorJSON(ctx, err)
	}
	zoneID, err := parseUUID(req.DestinationZoneID)
	if err != nil {
		return errorJSON(ctx, err)
	}
	serviceType, err := shipment.ServiceTypeFromString(req.ServiceType)
	if err != nil {
		return errorJSON(ctx, err)
	}

	parcelIDs := make([]kernel.UUID, 0, len(req.ParcelIDs))
	for _, raw := range req.ParcelIDs {
		parcelID, idErr := parseUUID(raw)
		if idErr != nil {
			return errorJSON(ctx, idErr)
		}
		parcelIDs = append(parcelIDs, parcelID)
	}

	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(shipmentID, customerID, zoneID, serviceType, parcelIDs)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if handleErr := s.createShipmentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorJSON(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, shipmentCreatedResponse{ID: shipmentID.String()})
}

type customerScopedRequest struct {
	CustomerID string `json:"customer_id"`
}

// QuoteShipment handles POST /api/v1/shipments/:shipmentID/quote.
func (s *Server) QuoteShipment(ctx echo.Context) error {
	shipmentID, err := parseUUID(ctx.Param("shipmentID"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req customerScopedRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}
	customerID, err := parseUUID(req.CustomerID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewQuoteShipmentCommand(shipmentID, customerID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if handleErr := s.quoteShipmentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorJSON(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type completePaymentRequest struct {
	CustomerID       string `json:"customer_id"`
	PaymentReference string `json:"payment_reference"`
}

type completePaymentResponse struct {
	InvoiceID        string `json:"invoice_id"`
	InvoiceNumber    string `json:"invoice_number"`
	AlreadyProcessed bool   `json:"already_processed"`
}

// CompletePayment handles POST /api/v1/shipments/:shipmentID/payment -
// verifies the payment and reconciles it into an invoice. Replays return the
// original invoice.
func (s *Server) CompletePayment(ctx echo.Context) error {
	shipmentID, err := parseUUID(ctx.Param("shipmentID"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req completePaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}
	customerID, err := parseUUID(req.CustomerID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewCompletePaymentCommand(shipmentID, customerID, req.PaymentReference)
	if err != nil {
		return errorJSON(ctx, err)
	}

	result, err := s.completePaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	status := http.StatusCreated
	if result.AlreadyProcessed {
		status = http.StatusOK
	}
	return ctx.JSON(status, completePaymentResponse{
		InvoiceID:        result.InvoiceID.String(),
		InvoiceNumber:    result.InvoiceNumber,
		AlreadyProcessed: result.AlreadyProcessed,
	})
}

// CancelShipment handles POST /api/v1/shipments/:shipmentID/cancel.
func (s *Server) CancelShipment(ctx echo.Context) error {
	shipmentID, err := parseUUID(ctx.Param("shipmentID"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req customerScopedRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}
	customerID, err := parseUUID(req.CustomerID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewCancelShipmentCommand(shipmentID, customerID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if handleErr := s.cancelShipmentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorJSON(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type recordShipmentProgressRequest struct {
	Status           string `json:"status"`
	OutboundTracking string `json:"outbound_tracking"`
}

// RecordShipmentProgress handles POST /api/v1/shipments/:shipmentID/progress -
// applies a fulfillment or carrier status update.
func (s *Server) RecordShipmentProgress(ctx echo.Context) error {
	shipmentID, err := parseUUID(ctx.Param("shipmentID"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req recordShipmentProgressRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}

	to, err := shipment.StatusFromString(req.Status)
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewRecordShipmentProgressCommand(shipmentID, to, req.OutboundTracking)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if handleErr := s.recordShipmentProgressHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorJSON(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetShipment handles GET /api/v1/shipments/:shipmentID.
func (s *Server) GetShipment(ctx echo.Context) error {
	shipmentID, err := parseUUID(ctx.Param("shipmentID"))
	if err != nil {
		return errorJSON(ctx, err)
	}
	customerID, err := parseUUID(ctx.QueryParam("customer_id"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	query, err := queries.NewGetShipmentQuery(shipmentID, customerID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	response, err := s.getShipmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}
