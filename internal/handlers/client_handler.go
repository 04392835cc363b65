package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/prestamos-api/internal/middleware"
	"github.com/sjperalta/prestamos-api/internal/models"
	"github.com/sjperalta/prestamos-api/internal/services"
)

type ClientHandler struct {
	clientService *services.ClientService
	loanService   *services.LoanService
}

func NewClientHandler(clientService *services.ClientService, loanService *services.LoanService) *ClientHandler {
	return &ClientHandler{clientService: clientService, loanService: loanService}
}

type CreateClientRequest struct {
	DNI          string `json:"dni"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Email        string `json:"email"`
	Workplace    string `json:"workplace"`
	ClientTypeID *uint  `json:"client_type_id"`
}

// @Summary Create Client
// @Description Register a client. The DNI must be unique.
// @Tags Clients
// @Accept json
// @Produce json
// @Param request body CreateClientRequest true "Client Data"
// @Success 201 {object} map[string]interface{}
// @Failure 400,409,422 {object} map[string]string
// @Security BearerAuth
// @Router /clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := BindNestedOrFlat(c, "client", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON inválido"})
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), &models.Client{
		DNI:       req.DNI,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
		Email:     req.Email,
		Workplace: req.Workplace,
		TypeID:    req.ClientTypeID,
	}, middleware.GetUserID(c), c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"client": client})
}

// @Summary Search Clients
// @Description Search clients by DNI or name prefix
// @Tags Clients
// @Produce json
// @Param search query string false "DNI or name prefix"
// @Param limit query int false "Maximum results" default(20)
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /clients [get]
func (h *ClientHandler) Index(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	clients, err := h.clientService.Search(c.Request.Context(), c.Query("search"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

// @Summary Get Client
// @Description Get a client by ID
// @Tags Clients
// @Produce json
// @Param client_id path int true "Client ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /clients/{client_id} [get]
func (h *ClientHandler) Show(c *gin.Context) {
	id, ok := parseID(c, "client_id")
	if !ok {
		return
	}
	client, err := h.clientService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": client})
}

// @Summary List Client Loans
// @Description List a client's loans ordered by status, with per-status counts
// @Tags Clients
// @Produce json
// @Param client_id path int true "Client ID"
// @Param status query string false "Comma separated status codes (1,2,3)"
// @Success 200 {object} services.ClientLoans
// @Failure 400,404 {object} map[string]string
// @Security BearerAuth
// @Router /clients/{client_id}/loans [get]
func (h *ClientHandler) Loans(c *gin.Context) {
	id, ok := parseID(c, "client_id")
	if !ok {
		return
	}

	var statuses []int
	if raw := c.Query("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			status, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "status inválido"})
				return
			}
			statuses = append(statuses, status)
		}
	}

	summary, err := h.loanService.ClientSummary(c.Request.Context(), id, statuses)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

type CreateClientTypeRequest struct {
	Name string `json:"name" binding:"required"`
}

// @Summary Create Client Type
// @Tags Clients
// @Accept json
// @Produce json
// @Param request body CreateClientTypeRequest true "Client Type"
// @Success 201 {object} map[string]interface{}
// @Failure 400,409 {object} map[string]string
// @Security BearerAuth
// @Router /clients/types [post]
func (h *ClientHandler) CreateType(c *gin.Context) {
	var req CreateClientTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El nombre es requerido"})
		return
	}

	ct, err := h.clientService.CreateType(c.Request.Context(), req.Name, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"client_type": ct})
}

// @Summary List Client Types
// @Tags Clients
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /clients/types [get]
func (h *ClientHandler) ListTypes(c *gin.Context) {
	types, err := h.clientService.ListTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"client_types": types})
}
