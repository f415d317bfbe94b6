package loyalty

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	model "github.com/richardgms/cicero-joias-sub001/internal/models"
	services "github.com/richardgms/cicero-joias-sub001/internal/services"
	"go.uber.org/zap"
)

// сообщения для витрины
const (
	msgUnauthenticated   = "Usuário não autenticado"
	msgForbidden         = "Acesso restrito a administradores"
	msgEmailMissing      = "Email do usuário não encontrado"
	msgOrderMissing      = "ID do pedido é obrigatório"
	msgCompleteMissing   = "ID do pedido e email do cliente são obrigatórios"
	msgBadBody           = "Corpo da requisição inválido"
	msgCustomerNotFound  = "Cliente não encontrado"
	msgCodesExhausted    = "Não foi possível gerar o cupom, tente novamente"
	msgInternal          = "Erro interno do servidor, tente novamente"
	msgAlreadyProcessed  = "Pedido já processado para fidelidade"
	msgPointAdded        = "Ponto de fidelidade adicionado!"
	msgCouponEarned      = "Parabéns! Você ganhou um cupom de fidelidade!"
	msgOrderPointAdded   = "Pedido concluído! Ponto de fidelidade adicionado!"
	msgOrderCouponEarned = "Pedido concluído! Cliente ganhou um cupom de fidelidade!"
	msgNewUserExists     = "Cliente já possui cupom de novo usuário"
	msgNewUserCreated    = "Cupom de novo usuário criado com sucesso!"

	orderDescription = "Ponto ganho por conserto/compra concluída"

	maxBodyBytes = 1 << 16
)

type LoyaltyHandler struct {
	router    *mux.Router
	ledger    *services.LoyaltyLedger
	issuer    *services.CouponIssuer
	customers *services.Customers
	auth      *Authenticator
	logger    *zap.Logger
}

type CheckRequest struct {
	OrderID string `json:"orderId"`
}

type CompleteRequest struct {
	OrderID     string `json:"orderId"`
	ClientEmail string `json:"clientEmail"`
}

type EarnResponse struct {
	Message string `json:"message"`
	model.EarnResult
}

type CouponsResponse struct {
	Coupons []model.Coupon `json:"coupons"`
}

type NewUserCouponResponse struct {
	Message       string       `json:"message"`
	Coupon        model.Coupon `json:"coupon"`
	AlreadyIssued bool         `json:"alreadyIssued"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewHandler(logger *zap.Logger, ledger *services.LoyaltyLedger, issuer *services.CouponIssuer, customers *services.Customers, auth *Authenticator) *LoyaltyHandler {
	router := mux.NewRouter()
	handler := &LoyaltyHandler{router, ledger, issuer, customers, auth, logger}
	router.Use(MiddlewareMetrics())
	router.HandleFunc("/health", handler.HealthHandler).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.NewRoute().Subrouter()
	api.Use(MiddlewareJSON())
	api.HandleFunc("/loyalty/points", auth.Customer(handler.PointsHandler)).Methods(http.MethodGet)
	api.HandleFunc("/loyalty/check", auth.Customer(handler.CheckHandler)).Methods(http.MethodPost)
	api.HandleFunc("/orders/complete", auth.Admin(handler.CompleteHandler)).Methods(http.MethodPost)
	api.HandleFunc("/coupons", auth.Customer(handler.CouponsHandler)).Methods(http.MethodGet)
	api.HandleFunc("/coupons/new-user", auth.Customer(handler.NewUserCouponHandler)).Methods(http.MethodPost)

	return handler
}

func (h *LoyaltyHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	h.router.ServeHTTP(w, req)
}

func (h *LoyaltyHandler) Log(msg string, service string, err error) {
	h.logger.Error(msg,
		zap.String("service", service),
		zap.Error(err),
	)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	j, err := json.Marshal(body)
	if err != nil {
		http.Error(w, msgInternal, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	w.Write(j)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{msg})
}

// ошибки сервисов -> HTTP статус; детали только в логе
func (h *LoyaltyHandler) fail(w http.ResponseWriter, service string, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, msgCustomerNotFound)
	case errors.Is(err, model.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, msgBadBody)
	case errors.Is(err, model.ErrCouponCodeExhausted):
		h.Log("Coupon code space exhausted", service, err)
		writeError(w, http.StatusConflict, msgCodesExhausted)
	default:
		h.Log("Request failed", service, err)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

// тело не больше maxBodyBytes
func decode(w http.ResponseWriter, req *http.Request, v any) error {
	defer req.Body.Close()
	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

func identityEmail(w http.ResponseWriter, req *http.Request) (string, bool) {
	identity, ok := IdentityFrom(req.Context())
	if !ok || strings.TrimSpace(identity.Email) == "" {
		writeError(w, http.StatusBadRequest, msgEmailMissing)
		return "", false
	}
	return identity.Email, true
}

// клиент вошедшего пользователя
func (h *LoyaltyHandler) caller(w http.ResponseWriter, req *http.Request, service string) (model.Customer, bool) {
	email, ok := identityEmail(w, req)
	if !ok {
		return model.Customer{}, false
	}
	customer, err := h.customers.ByEmail(req.Context(), email)
	if err != nil {
		h.fail(w, service, err)
		return model.Customer{}, false
	}
	return customer, true
}

func (h *LoyaltyHandler) HealthHandler(w http.ResponseWriter, req *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Баланс и последние транзакции; клиент без заказов получает нулевой отчет
func (h *LoyaltyHandler) PointsHandler(w http.ResponseWriter, req *http.Request) {
	email, ok := identityEmail(w, req)
	if !ok {
		return
	}
	customer, err := h.customers.ByEmail(req.Context(), email)
	if errors.Is(err, model.ErrNotFound) {
		writeJSON(w, http.StatusOK, model.BalanceReport{Transactions: []model.LoyaltyTransaction{}})
		return
	}
	if err != nil {
		h.fail(w, "PointsHandler", err)
		return
	}
	report, err := h.ledger.ReportBalance(req.Context(), customer.ID)
	if err != nil {
		h.fail(w, "PointsHandler", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Начисление балла за заказ покупателем
func (h *LoyaltyHandler) CheckHandler(w http.ResponseWriter, req *http.Request) {
	check := CheckRequest{}
	err := decode(w, req, &check)
	if err != nil {
		h.logger.Info("Unmarshal", zap.String("service", "CheckHandler"), zap.Error(err))
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}
	if strings.TrimSpace(check.OrderID) == "" {
		writeError(w, http.StatusBadRequest, msgOrderMissing)
		return
	}

	customer, ok := h.caller(w, req, "CheckHandler")
	if !ok {
		return
	}
	result, err := h.ledger.EarnPoint(req.Context(), customer.ID, strings.TrimSpace(check.OrderID), "")
	if err != nil {
		h.fail(w, "CheckHandler", err)
		return
	}
	writeJSON(w, http.StatusOK, EarnResponse{earnMessage(result, msgPointAdded, msgCouponEarned), result})
}

// Завершение заказа администратором
func (h *LoyaltyHandler) CompleteHandler(w http.ResponseWriter, req *http.Request) {
	complete := CompleteRequest{}
	err := decode(w, req, &complete)
	if err != nil {
		h.logger.Info("Unmarshal", zap.String("service", "CompleteHandler"), zap.Error(err))
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}
	orderID := strings.TrimSpace(complete.OrderID)
	if orderID == "" || strings.TrimSpace(complete.ClientEmail) == "" {
		writeError(w, http.StatusBadRequest, msgCompleteMissing)
		return
	}

	customer, err := h.customers.ByEmail(req.Context(), complete.ClientEmail)
	if err != nil {
		h.fail(w, "CompleteHandler", err)
		return
	}
	result, err := h.ledger.EarnPoint(req.Context(), customer.ID, orderID, orderDescription)
	if err != nil {
		h.fail(w, "CompleteHandler", err)
		return
	}
	writeJSON(w, http.StatusOK, EarnResponse{earnMessage(result, msgOrderPointAdded, msgOrderCouponEarned), result})
}

func earnMessage(result model.EarnResult, added, coupon string) string {
	switch {
	case result.AlreadyProcessed:
		return msgAlreadyProcessed
	case result.NewCoupon != nil:
		return coupon
	}
	return added
}

// Действующие купоны
func (h *LoyaltyHandler) CouponsHandler(w http.ResponseWriter, req *http.Request) {
	customer, ok := h.caller(w, req, "CouponsHandler")
	if !ok {
		return
	}
	coupons, err := h.issuer.ActiveCoupons(req.Context(), customer.ID)
	if err != nil {
		h.fail(w, "CouponsHandler", err)
		return
	}
	writeJSON(w, http.StatusOK, CouponsResponse{coupons})
}

// Купон нового пользователя; клиент создается при первом обращении
func (h *LoyaltyHandler) NewUserCouponHandler(w http.ResponseWriter, req *http.Request) {
	identity, ok := IdentityFrom(req.Context())
	if !ok || strings.TrimSpace(identity.Email) == "" {
		writeError(w, http.StatusBadRequest, msgEmailMissing)
		return
	}
	customer, err := h.customers.Resolve(req.Context(), identity)
	if err != nil {
		h.fail(w, "NewUserCouponHandler", err)
		return
	}
	coupon, already, err := h.issuer.NewUserCoupon(req.Context(), customer.ID)
	if err != nil {
		h.fail(w, "NewUserCouponHandler", err)
		return
	}
	msg := msgNewUserCreated
	if already {
		msg = msgNewUserExists
	}
	writeJSON(w, http.StatusOK, NewUserCouponResponse{msg, coupon, already})
}
