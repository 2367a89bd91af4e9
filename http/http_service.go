package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/civkit/civkit-api-sub000/config"
	"github.com/civkit/civkit-api-sub000/events"
	"github.com/civkit/civkit-api-sub000/lnclient"
	"github.com/civkit/civkit-api-sub000/logger"
	"github.com/civkit/civkit-api-sub000/orders"
	"github.com/civkit/civkit-api-sub000/payouts"
	"github.com/civkit/civkit-api-sub000/pkg/version"
	"github.com/civkit/civkit-api-sub000/reconciliation"
	"github.com/civkit/civkit-api-sub000/service"
)

type jwtCustomClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

type HttpService struct {
	cfg               *config.AppConfig
	db                *gorm.DB
	lnClient          lnclient.LNClient
	ordersSvc         orders.OrdersService
	payoutsSvc        payouts.PayoutsService
	reconciliationSvc reconciliation.ReconciliationService
	eventPublisher    events.EventPublisher
}

func NewHttpService(svc service.Service, eventPublisher events.EventPublisher) *HttpService {
	return &HttpService{
		cfg:               svc.GetConfig(),
		db:                svc.GetDB(),
		lnClient:          svc.GetLNClient(),
		ordersSvc:         svc.GetOrdersService(),
		payoutsSvc:        svc.GetPayoutsService(),
		reconciliationSvc: svc.GetReconciliationService(),
		eventPublisher:    eventPublisher,
	}
}

func (httpSvc *HttpService) RegisterSharedRoutes(e *echo.Echo) {
	e.HideBanner = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			logger.HttpLogger.Info().
				Str("uri", values.URI).
				Int("status", values.Status).
				Str("remote_ip", values.RemoteIP).
				Str("user_agent", values.UserAgent).
				Str("request_id", values.RequestID).
				Msg("handled API request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.GET("/api/info", httpSvc.infoHandler)

	jwtMiddleware := echojwt.WithConfig(echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(jwtCustomClaims)
		},
		SigningKey: []byte(httpSvc.cfg.JWTSecret),
	})

	g := e.Group("/api", jwtMiddleware)
	g.POST("/orders", httpSvc.createOrderHandler)
	g.GET("/orders", httpSvc.listOrdersHandler)
	g.GET("/orders/:id", httpSvc.getOrderHandler)
	g.POST("/orders/:id/take", httpSvc.takeOrderHandler)
	g.POST("/orders/:id/settle", httpSvc.settleOrderHandler)
	g.POST("/orders/:id/payout", httpSvc.submitPayoutHandler)
	g.POST("/orders/:id/fiat-received", httpSvc.fiatReceivedHandler)
	g.POST("/reconcile", httpSvc.reconcileHandler)
}

func (httpSvc *HttpService) infoHandler(c echo.Context) error {
	nodeOnline := true
	if _, err := httpSvc.lnClient.GetInfo(c.Request().Context()); err != nil {
		nodeOnline = false
	}
	return c.JSON(http.StatusOK, &infoResponse{
		Version:    version.Tag,
		NodeOnline: nodeOnline,
	})
}

func (httpSvc *HttpService) createOrderHandler(c echo.Context) error {
	var requestBody createOrderRequest
	if err := c.Bind(&requestBody); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Bad request: " + err.Error()})
	}

	dbOrder, dbInvoices, err := httpSvc.ordersSvc.CreateOrder(c.Request().Context(), &orders.CreateOrderRequest{
		MakerID:       userIDFromContext(c),
		TradeDetails:  requestBody.TradeDetails,
		AmountMsat:    requestBody.AmountMsat,
		Currency:      requestBody.Currency,
		PaymentMethod: requestBody.PaymentMethod,
		Direction:     requestBody.Direction,
		Premium:       requestBody.Premium,
	}, httpSvc.lnClient)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, toOrderResponse(dbOrder, dbInvoices, userIDFromContext(c)))
}

func (httpSvc *HttpService) listOrdersHandler(c echo.Context) error {
	limit, _ := strconv.ParseUint(c.QueryParam("limit"), 10, 64)
	offset, _ := strconv.ParseUint(c.QueryParam("offset"), 10, 64)

	dbOrders, totalCount, err := httpSvc.ordersSvc.ListOrders(c.Request().Context(), limit, offset)
	if err != nil {
		return errorResponse(c, err)
	}

	orderResponses := make([]orderResponse, 0, len(dbOrders))
	for i := range dbOrders {
		orderResponses = append(orderResponses, *toOrderResponse(&dbOrders[i], nil, userIDFromContext(c)))
	}

	return c.JSON(http.StatusOK, &listOrdersResponse{
		Orders:     orderResponses,
		TotalCount: totalCount,
	})
}

func (httpSvc *HttpService) getOrderHandler(c echo.Context) error {
	orderID, err := orderIDFromPath(c)
	if err != nil {
		return err
	}

	dbOrder, dbInvoices, err := httpSvc.ordersSvc.GetOrder(c.Request().Context(), orderID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, toOrderResponse(dbOrder, dbInvoices, userIDFromContext(c)))
}

func (httpSvc *HttpService) takeOrderHandler(c echo.Context) error {
	orderID, err := orderIDFromPath(c)
	if err != nil {
		return err
	}

	dbOrder, err := httpSvc.ordersSvc.TakeOrder(c.Request().Context(), orderID, userIDFromContext(c), httpSvc.lnClient)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, toOrderResponse(dbOrder, nil, userIDFromContext(c)))
}

func (httpSvc *HttpService) settleOrderHandler(c echo.Context) error {
	orderID, err := orderIDFromPath(c)
	if err != nil {
		return err
	}

	dbOrder, err := httpSvc.ordersSvc.SettleOrder(c.Request().Context(), orderID, httpSvc.lnClient)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, toOrderResponse(dbOrder, nil, userIDFromContext(c)))
}

func (httpSvc *HttpService) submitPayoutHandler(c echo.Context) error {
	orderID, err := orderIDFromPath(c)
	if err != nil {
		return err
	}

	var requestBody submitPayoutRequest
	if err := c.Bind(&requestBody); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Bad request: " + err.Error()})
	}

	dbPayout, err := httpSvc.payoutsSvc.SubmitPayout(c.Request().Context(), orderID, requestBody.PaymentRequest)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, toPayoutResponse(dbPayout))
}

func (httpSvc *HttpService) fiatReceivedHandler(c echo.Context) error {
	orderID, err := orderIDFromPath(c)
	if err != nil {
		return err
	}

	dbPayout, err := httpSvc.payoutsSvc.HandleFiatReceived(c.Request().Context(), orderID, httpSvc.lnClient)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, toPayoutResponse(dbPayout))
}

// reconcileHandler triggers one reconciliation pass out of schedule
func (httpSvc *HttpService) reconcileHandler(c echo.Context) error {
	if err := httpSvc.reconciliationSvc.ReconcileInvoices(c.Request().Context()); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func userIDFromContext(c echo.Context) uint {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return 0
	}
	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok {
		return 0
	}
	return claims.UserID
}

func orderIDFromPath(c echo.Context) (uint, error) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid order id"})
	}
	return uint(orderID), nil
}

func errorResponse(c echo.Context, err error) error {
	var gatewayErr *lnclient.GatewayError

	status := http.StatusInternalServerError
	switch {
	case orders.IsValidationError(err) || payouts.IsValidationError(err):
		status = http.StatusBadRequest
	case orders.IsConsistencyError(err) || payouts.IsConsistencyError(err):
		status = http.StatusConflict
	case payouts.IsPaymentFailedError(err):
		status = http.StatusBadGateway
	case errors.As(err, &gatewayErr):
		status = http.StatusBadGateway
	}

	return c.JSON(status, ErrorResponse{Message: err.Error()})
}
