package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"fintrack/internal/auth"
	"fintrack/internal/domain"
	"fintrack/internal/service"
	"fintrack/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users        service.UserService
	transactions service.TransactionService
	summary      service.SummaryService
	exports      service.ExportService
	tokens       *auth.TokenManager
	logger       *logrus.Logger
}

func NewHandler(
	users service.UserService,
	transactions service.TransactionService,
	summary service.SummaryService,
	exports service.ExportService,
	tokens *auth.TokenManager,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		users:        users,
		transactions: transactions,
		summary:      summary,
		exports:      exports,
		tokens:       tokens,
		logger:       logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	if h.logger != nil {
		router.Use(requestLogger(h.logger))
	}

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", h.register)
		authRoutes.POST("/login", h.login)
	}

	protected := router.Group("/")
	protected.Use(h.authMiddleware())
	{
		protected.GET("/auth/me", h.me)
		protected.POST("/transactions", h.createTransactions)
		protected.GET("/transactions", h.listTransactions)
		protected.GET("/transactions/export", h.listExports)
		protected.POST("/transactions/export", h.exportTransactions)
		protected.GET("/transactions/:id", h.getTransaction)
		protected.PUT("/transactions/:id", h.updateTransaction)
		protected.DELETE("/transactions/:id", h.deleteTransaction)
		protected.DELETE("/transactions", h.deleteAllTransactions)
		protected.GET("/summary", h.getSummary)
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	if _, err := h.users.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		switch {
		case err == service.ErrMissingCredentials:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case err == service.ErrUserAlreadyExists:
			c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "user registered successfully"})
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid username or password"})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		// Missing fields, unknown user and wrong password all share one
		// response so usernames cannot be enumerated.
		if err == service.ErrInvalidCredentials {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": token})
}

func (h *Handler) me(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization token required"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username})
}

type transactionRequest struct {
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

func (r transactionRequest) toDomain() domain.Transaction {
	return domain.Transaction{
		Type:        r.Type,
		Category:    r.Category,
		Amount:      r.Amount,
		Date:        r.Date,
		Description: r.Description,
	}
}

// createTransactions accepts a single transaction object or an array of
// them. Inserts are sequential; the first failure aborts the batch and
// rows inserted before it remain.
func (h *Handler) createTransactions(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization token required"})
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var reqs []transactionRequest
	if isJSONArray(body) {
		if err := json.Unmarshal(body, &reqs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	} else {
		var single transactionRequest
		if err := json.Unmarshal(body, &single); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		reqs = []transactionRequest{single}
	}

	txs := make([]domain.Transaction, len(reqs))
	for i, req := range reqs {
		txs[i] = req.toDomain()
	}

	ids, err := h.transactions.Create(c.Request.Context(), claims.UserID, txs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	results := make([]gin.H, len(ids))
	for i, id := range ids {
		results[i] = gin.H{"transactionId": id}
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "transaction(s) added successfully",
		"results": results,
	})
}

func (h *Handler) listTransactions(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization token required"})
		return
	}

	// Non-numeric values fall through as zero; the service applies the
	// page=1, limit=10 defaults.
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	pageResult, err := h.transactions.List(c.Request.Context(), claims.UserID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]TransactionResponse, len(pageResult.Transactions))
	for i := range pageResult.Transactions {
		resp[i] = transactionToResponse(pageResult.Transactions[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"page":              pageResult.Page,
		"totalPages":        pageResult.TotalPages,
		"limit":             pageResult.Limit,
		"totalTransactions": pageResult.Total,
		"transactions":      resp,
	})
}

func (h *Handler) getTransaction(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization token required"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
		return
	}

	tx, err := h.transactions.Get(c.Request.Context(), claims.UserID, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
		return
	}

	c.JSON(http.StatusOK, transactionToResponse(*tx))
}

func (h *Handler) updateTransaction(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization token required"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found or no changes made"})
		return
	}

	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.transactions.Update(c.Request.Context(), claims.UserID, id, req.toDomain()); err != nil {
		if err == service.ErrTransactionNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found or no changes made"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "transaction updated successfully"})
}

func (h *Handler) deleteTransaction(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization token required"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
		return
	}

	if err := h.transactions.Delete(c.Request.Context(), claims.UserID, id); err != nil {
		if err == service.ErrTransactionNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "transaction deleted successfully"})
}

func (h *Handler) deleteAllTransactions(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization token required"})
		return
	}

	deleted, err := h.transactions.DeleteAll(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%d transactions deleted", deleted),
		"deleted": deleted,
	})
}

func (h *Handler) getSummary(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization token required"})
		return
	}

	filter := domain.SummaryFilter{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Category:  c.Query("category"),
		Period:    domain.SummaryPeriod(c.Query("timePeriod")),
	}

	rows, err := h.summary.Summarize(c.Request.Context(), claims.UserID, filter)
	if err != nil {
		if err == service.ErrInvalidPeriod || err == service.ErrIncompleteDateRange {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]SummaryRowResponse, len(rows))
	for i, row := range rows {
		resp[i] = SummaryRowResponse{
			Type:   row.Type,
			Period: row.Period,
			Total:  row.Total,
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) exportTransactions(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization token required"})
		return
	}

	result, err := h.exports.Export(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"location": result.Location, "count": result.Count})
}

func (h *Handler) listExports(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization token required"})
		return
	}

	objects, err := h.exports.ListExports(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]ExportObjectResponse, len(objects))
	for i := range objects {
		resp[i] = objectToResponse(objects[i])
	}
	c.JSON(http.StatusOK, resp)
}

type TransactionResponse struct {
	ID          int64   `json:"id"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	UserID      int64   `json:"userId"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type SummaryRowResponse struct {
	Type   string  `json:"type"`
	Period string  `json:"period,omitempty"`
	Total  float64 `json:"total"`
}

type ExportObjectResponse struct {
	Key          string  `json:"key"`
	Size         int64   `json:"size"`
	LastModified *string `json:"lastModified,omitempty"`
}

func transactionToResponse(tx domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID,
		Type:        tx.Type,
		Category:    tx.Category,
		Amount:      tx.Amount,
		Date:        tx.Date,
		Description: tx.Description,
		UserID:      tx.UserID,
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   tx.UpdatedAt.Format(time.RFC3339),
	}
}

func objectToResponse(obj storage.ObjectInfo) ExportObjectResponse {
	resp := ExportObjectResponse{
		Key:  obj.Key,
		Size: obj.Size,
	}
	if obj.LastModified != nil && !obj.LastModified.IsZero() {
		v := obj.LastModified.Format(time.RFC3339)
		resp.LastModified = &v
	}
	return resp
}

func isJSONArray(body []byte) bool {
	trimmed := strings.TrimSpace(string(body))
	return strings.HasPrefix(trimmed, "[")
}
