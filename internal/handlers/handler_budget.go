package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/finance_tracker_core/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker_core/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_core/internal/dto"
	"github.com/SscSPs/finance_tracker_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

func newBudgetHandler(bs portssvc.BudgetSvcFacade) *budgetHandler {
	return &budgetHandler{budgetService: bs}
}

// registerBudgetRoutes registers routes related to budgets.
func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := newBudgetHandler(budgetService)

	budgets := rg.Group("/budgets")
	{
		budgets.POST("", h.createBudget)
		budgets.GET("", h.listBudgets)
		budgets.GET("/:budgetID", h.getBudget)
		budgets.PATCH("/:budgetID/limit", h.changeLimit)
		budgets.PATCH("/:budgetID/category", h.changeCategory)
		budgets.POST("/:budgetID/renew", h.renewBudget)
		budgets.POST("/:budgetID/deactivate", h.deactivateBudget)
		budgets.GET("/:budgetID/analysis", h.analyzeBudget)
	}
}

// createBudget godoc
// @Summary Create a monthly budget
// @Description Creates an active budget for one category. Only one active budget per category is allowed.
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   budget body dto.CreateBudgetRequest true "Budget details"
// @Success 201 {object} dto.BudgetResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "An active budget for the category already exists"
// @Security BearerAuth
// @Router /budgets [post]
func (h *budgetHandler) createBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBudgetRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	budget, err := h.budgetService.CreateBudget(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, err, "create budget")
		return
	}

	logger.Info("Budget created successfully", slog.Int64("budget_id", int64(budget.ID())))
	c.JSON(http.StatusCreated, dto.ToBudgetResponse(budget))
}

// listBudgets godoc
// @Summary List budgets
// @Tags budgets
// @Produce  json
// @Param   activeOnly query bool false "Only active budgets"
// @Success 200 {array} dto.BudgetResponse
// @Security BearerAuth
// @Router /budgets [get]
func (h *budgetHandler) listBudgets(c *gin.Context) {
	var params dto.ListBudgetsParams
	if !bindQuery(c, &params) {
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	budgets, err := h.budgetService.ListBudgets(c.Request.Context(), userID, params)
	if err != nil {
		respondWithError(c, err, "list budgets")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetResponses(budgets))
}

// getBudget godoc
// @Summary Get a budget by ID
// @Tags budgets
// @Produce  json
// @Param   budgetID path int true "Budget ID"
// @Success 200 {object} dto.BudgetResponse
// @Failure 404 {object} map[string]string "Budget not found"
// @Security BearerAuth
// @Router /budgets/{budgetID} [get]
func (h *budgetHandler) getBudget(c *gin.Context) {
	h.withBudget(c, "retrieve budget", func(userID domain.UserID, id domain.BudgetID) (*domain.Budget, error) {
		return h.budgetService.GetBudgetByID(c.Request.Context(), userID, id)
	})
}

// changeLimit godoc
// @Summary Change a budget's limit
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   budgetID path int true "Budget ID"
// @Param   limit body dto.ChangeBudgetLimitRequest true "New limit"
// @Success 200 {object} dto.BudgetResponse
// @Failure 400 {object} map[string]string "Invalid limit or currency mismatch"
// @Security BearerAuth
// @Router /budgets/{budgetID}/limit [patch]
func (h *budgetHandler) changeLimit(c *gin.Context) {
	var req dto.ChangeBudgetLimitRequest
	if !bindJSON(c, &req) {
		return
	}
	h.withBudget(c, "change budget limit", func(userID domain.UserID, id domain.BudgetID) (*domain.Budget, error) {
		return h.budgetService.ChangeBudgetLimit(c.Request.Context(), userID, id, req)
	})
}

// changeCategory godoc
// @Summary Move a budget to another category
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   budgetID path int true "Budget ID"
// @Param   category body dto.ChangeBudgetCategoryRequest true "New category"
// @Success 200 {object} dto.BudgetResponse
// @Failure 409 {object} map[string]string "An active budget for the category already exists"
// @Security BearerAuth
// @Router /budgets/{budgetID}/category [patch]
func (h *budgetHandler) changeCategory(c *gin.Context) {
	var req dto.ChangeBudgetCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	h.withBudget(c, "change budget category", func(userID domain.UserID, id domain.BudgetID) (*domain.Budget, error) {
		return h.budgetService.ChangeBudgetCategory(c.Request.Context(), userID, id, req)
	})
}

// renewBudget godoc
// @Summary Renew a budget for the next month
// @Tags budgets
// @Produce  json
// @Param   budgetID path int true "Budget ID"
// @Success 200 {object} dto.BudgetResponse
// @Failure 409 {object} map[string]string "Budget is inactive"
// @Security BearerAuth
// @Router /budgets/{budgetID}/renew [post]
func (h *budgetHandler) renewBudget(c *gin.Context) {
	h.withBudget(c, "renew budget", func(userID domain.UserID, id domain.BudgetID) (*domain.Budget, error) {
		return h.budgetService.RenewBudget(c.Request.Context(), userID, id)
	})
}

// deactivateBudget godoc
// @Summary Deactivate a budget
// @Tags budgets
// @Produce  json
// @Param   budgetID path int true "Budget ID"
// @Success 200 {object} dto.BudgetResponse
// @Failure 409 {object} map[string]string "Budget is already inactive"
// @Security BearerAuth
// @Router /budgets/{budgetID}/deactivate [post]
func (h *budgetHandler) deactivateBudget(c *gin.Context) {
	h.withBudget(c, "deactivate budget", func(userID domain.UserID, id domain.BudgetID) (*domain.Budget, error) {
		return h.budgetService.DeactivateBudget(c.Request.Context(), userID, id)
	})
}

func (h *budgetHandler) withBudget(c *gin.Context, action string, call func(domain.UserID, domain.BudgetID) (*domain.Budget, error)) {
	id, ok := pathID(c, "budgetID")
	if !ok {
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	budget, err := call(userID, domain.BudgetID(id))
	if err != nil {
		respondWithError(c, err, action)
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

// analyzeBudget godoc
// @Summary Compare a budget with this period's spend
// @Description Reports spent, remaining, usage percentage and whether the budget is exceeded or near its limit (80%).
// @Tags budgets
// @Produce  json
// @Param   budgetID path int true "Budget ID"
// @Success 200 {object} dto.BudgetAnalysisResponse
// @Failure 404 {object} map[string]string "Budget not found"
// @Security BearerAuth
// @Router /budgets/{budgetID}/analysis [get]
func (h *budgetHandler) analyzeBudget(c *gin.Context) {
	id, ok := pathID(c, "budgetID")
	if !ok {
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	analysis, err := h.budgetService.AnalyzeBudget(c.Request.Context(), userID, domain.BudgetID(id))
	if err != nil {
		respondWithError(c, err, "analyze budget")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetAnalysisResponse(analysis))
}
