package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/location"
	"storefront/internal/metrics"
	"storefront/internal/usecase"
)

// ViewHandler is the HTTP face of the location synchronizer. Every
// response carries a location directive (query + history mode) so the
// render layer applies exactly the history operation the protocol
// prescribes, and nothing else.
type ViewHandler struct {
	catalog  usecase.CatalogUseCase
	sessions domain.SessionRepository
	sync     *location.Synchronizer
	m        *metrics.Metrics
	log      *logrus.Logger
}

func NewViewHandler(catalog usecase.CatalogUseCase, sessions domain.SessionRepository, sync *location.Synchronizer, m *metrics.Metrics, logger *logrus.Logger) *ViewHandler {
	return &ViewHandler{
		catalog:  catalog,
		sessions: sessions,
		sync:     sync,
		m:        m,
		log:      logger,
	}
}

func (h *ViewHandler) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api")
	{
		api.GET("/view", h.GetView)
		api.POST("/view/category", h.SetCategory)
		api.POST("/view/search", h.SetSearchText)
		api.POST("/view/reset", h.Reset)
	}
}

type viewPayload struct {
	Criteria     domain.FilterCriteria `json:"criteria"`
	Visible      usecase.VisibleResult `json:"visible"`
	Location     location.Update       `json:"location"`
	CatalogError string                `json:"catalog_error,omitempty"`
}

type criteriaEditRequest struct {
	Value string `json:"value"`
}

// GetView handles the Location→State edge: the request's query string
// is the externally navigated location (back/forward or a shared link).
// The parsed criteria are committed only when they differ from the
// session's current ones, and the returned directive is always mode
// "none" — an externally originated commit never writes back to the
// location.
func (h *ViewHandler) GetView(c *gin.Context) {
	session, err := h.sessions.GetOrCreate(c.Request.Context(), sessionID(c))
	if err != nil {
		h.log.Errorf("Failed to load session for view: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to load view state: "+err.Error())
		return
	}

	next, update, changed := h.sync.ExternalChange(session.Criteria, c.Request.URL.RawQuery)
	if changed {
		session.Criteria = next
		if err := h.sessions.Save(c.Request.Context(), session); err != nil {
			h.log.Errorf("Failed to commit externally navigated criteria: %v", err)
			ErrorResponse(c, mapErrorToStatus(err), "Failed to save view state: "+err.Error())
			return
		}
	}

	h.respondWithView(c, next, update)
}

// SetCategory handles a user category edit (State→Location, push).
func (h *ViewHandler) SetCategory(c *gin.Context) {
	h.applyUserEdit(c, h.sync.SetCategory)
}

// SetSearchText handles a user search edit (State→Location, replace).
func (h *ViewHandler) SetSearchText(c *gin.Context) {
	h.applyUserEdit(c, h.sync.SetSearchText)
}

func (h *ViewHandler) applyUserEdit(c *gin.Context, transition func(domain.FilterCriteria, string) (domain.FilterCriteria, location.Update)) {
	var req criteriaEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Failed to bind criteria edit request: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	session, err := h.sessions.GetOrCreate(c.Request.Context(), sessionID(c))
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to load view state: "+err.Error())
		return
	}

	next, update := transition(session.Criteria, req.Value)
	session.Criteria = next
	if err := h.sessions.Save(c.Request.Context(), session); err != nil {
		h.log.Errorf("Failed to commit criteria edit: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to save view state: "+err.Error())
		return
	}

	h.recordLocationWrite(update)
	h.respondWithView(c, next, update)
}

// Reset handles the home-link signal: one atomic transition clears the
// criteria and the location together. Consecutive resets collapse, a
// second firing commits and writes nothing.
func (h *ViewHandler) Reset(c *gin.Context) {
	session, err := h.sessions.GetOrCreate(c.Request.Context(), sessionID(c))
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to load view state: "+err.Error())
		return
	}

	next, update := h.sync.Reset(session.Criteria)
	if update.Mode != location.ModeNone {
		session.Criteria = next
		if err := h.sessions.Save(c.Request.Context(), session); err != nil {
			h.log.Errorf("Failed to commit reset: %v", err)
			ErrorResponse(c, mapErrorToStatus(err), "Failed to save view state: "+err.Error())
			return
		}
	}

	h.recordLocationWrite(update)
	h.respondWithView(c, next, update)
}

func (h *ViewHandler) recordLocationWrite(update location.Update) {
	if update.Mode == location.ModeNone {
		return
	}
	h.m.LocationWrites.WithLabelValues(string(update.Mode)).Inc()
}

func (h *ViewHandler) respondWithView(c *gin.Context, criteria domain.FilterCriteria, update location.Update) {
	payload := viewPayload{
		Criteria: criteria,
		Visible:  h.catalog.Visible(criteria),
		Location: update,
	}
	if err := h.catalog.LastError(); err != nil {
		payload.CatalogError = err.Error()
	}
	SuccessResponse(c, http.StatusOK, "View derived successfully", payload)
}
