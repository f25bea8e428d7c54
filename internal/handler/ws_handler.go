package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/xperienceoutdoors/Resav2/internal/domain"
	"github.com/xperienceoutdoors/Resav2/internal/dto"
	"github.com/xperienceoutdoors/Resav2/internal/service"
	"github.com/xperienceoutdoors/Resav2/internal/ws"
	"github.com/xperienceoutdoors/Resav2/pkg/logger"
	"go.uber.org/zap"
)

// WSHandler upgrades dashboard connections and hands them to the hub
type WSHandler struct {
	hub            *ws.Hub
	authService    service.AuthService
	bookingService service.BookingService
	companyService service.CompanyService
	log            *logger.Logger

	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler
func NewWSHandler(
	hub *ws.Hub,
	authService service.AuthService,
	bookingService service.BookingService,
	companyService service.CompanyService,
	log *logger.Logger,
) *WSHandler {
	return &WSHandler{
		hub:            hub,
		authService:    authService,
		bookingService: bookingService,
		companyService: companyService,
		log:            log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Cross origin policy is enforced by the CORS layer on the
			// HTTP side, the upgrade accepts any origin
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve handles GET /ws?token=<jwt>. The browser WebSocket API cannot set
// an Authorization header, so the token rides in the query string and is
// checked after the upgrade. Rejections use application close codes the
// client can tell apart.
func (h *WSHandler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		return
	}

	token := c.Query("token")
	if token == "" {
		h.reject(conn, ws.CloseMissingToken, "Missing token")
		return
	}

	claims, err := h.authService.ValidateToken(token)
	if err != nil {
		h.reject(conn, ws.CloseInvalidToken, "Invalid token")
		return
	}

	session := ws.NewSession(uuid.New().String(), claims.CompanyID, conn)
	h.hub.Register(session)

	go session.WritePump()
	h.sendInitialData(c, session)
	session.ReadPump(h.hub.Unregister)
}

// sendInitialData pushes today's bookings as the first frame so the
// dashboard renders without an extra fetch. Today is evaluated in the
// company's timezone.
func (h *WSHandler) sendInitialData(c *gin.Context, session *ws.Session) {
	loc := time.UTC
	if company, err := h.companyService.Get(c.Request.Context(), session.CompanyID); err == nil {
		if l, err := time.LoadLocation(company.Timezone); err == nil {
			loc = l
		}
	}

	today := domain.Today(loc)
	bookings, err := h.bookingService.ListOnDate(c.Request.Context(), session.CompanyID, today)
	if err != nil {
		h.log.Warn("failed to load initial bookings",
			zap.String("company_id", session.CompanyID),
			zap.Error(err),
		)
		bookings = []dto.BookingBroadcast{}
	}

	session.SendMessage(ws.Message{
		Type: ws.MessageTypeInitialData,
		Data: gin.H{
			"date":     today.String(),
			"bookings": bookings,
		},
	})
}

func (h *WSHandler) reject(conn *websocket.Conn, code int, reason string) {
	deadline := time.Now().Add(5 * time.Second)
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
	_ = conn.Close()
}
