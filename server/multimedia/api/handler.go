package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	commonauth "lodging_server/server/common/auth"
	commonlog "lodging_server/server/common/log"
	"lodging_server/server/common/middleware"
	"lodging_server/server/common/transport/httpresp"
	"lodging_server/server/multimedia/domain"
	"lodging_server/server/multimedia/service"
)

var streamUpgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

type Handler struct {
	transfers  *service.TransferService
	statistics *service.StatisticsService
	auth       *commonauth.Service
}

func NewHandler(transfers *service.TransferService, statistics *service.StatisticsService, auth *commonauth.Service) *Handler {
	return &Handler{transfers: transfers, statistics: statistics, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	ws := r.Group("/ws/v1")
	{
		ws.GET("/users/profile-photo/upload", h.uploadProfilePhoto)
		ws.GET("/users/profile-photo/download", h.downloadProfilePhoto)
		ws.GET("/accommodations/multimedia/upload", h.uploadAccommodationMultimedia)
		ws.GET("/accommodations/multimedia/download", h.downloadAccommodationMultimedia)
		ws.GET("/accommodations/multimedia/update", h.updateAccommodationMultimedia)
	}

	statistics := r.Group("/api/v1/statistics")
	{
		guest := statistics.Group("")
		guest.Use(middleware.Authorize(h.auth, domain.RoleGuest))
		guest.GET("/most-booked", h.mostBookedAccommodations)
		guest.GET("/best-rated", h.bestRatedAccommodations)

		host := statistics.Group("")
		host.Use(middleware.Authorize(h.auth, domain.RoleHost))
		host.GET("/hosts/:id/most-booked", h.mostBookedAccommodationsOfHost)
		host.GET("/hosts/:id/earnings", h.hostEarnings)
	}
}

func (h *Handler) uploadProfilePhoto(c *gin.Context) {
	h.receiveStream(c, h.transfers.ReceiveProfilePhoto)
}

func (h *Handler) uploadAccommodationMultimedia(c *gin.Context) {
	h.receiveStream(c, h.transfers.ReceiveAccommodationMultimedia)
}

func (h *Handler) updateAccommodationMultimedia(c *gin.Context) {
	h.receiveStream(c, h.transfers.ReceiveAccommodationMultimediaUpdate)
}

// receiveStream runs one client-streaming call over a fresh websocket:
// frames in, exactly one result message out, then a normal close. When the
// transfer service reports a transport abort there is nobody left to
// acknowledge, so the socket is just torn down.
func (h *Handler) receiveStream(c *gin.Context, receive func(context.Context, service.ChunkReceiver) (domain.TransferResult, error)) {
	conn, err := streamUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpresp.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	result, err := receive(c.Request.Context(), &wsChunkReceiver{conn: conn})
	if err != nil {
		return
	}
	if err := conn.WriteJSON(resultMessage{Description: result.Description}); err != nil {
		commonlog.Warnf("write transfer result: %v", err)
		return
	}
	h.closeStream(conn)
}

func (h *Handler) downloadProfilePhoto(c *gin.Context) {
	conn, err := streamUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpresp.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	var req downloadRequest
	if err := conn.ReadJSON(&req); err != nil {
		return
	}

	if err := h.transfers.StreamProfilePhoto(c.Request.Context(), req.ModelID, &wsChunkSender{conn: conn}); err != nil {
		commonlog.Warnf("stream profile photo user_id=%s: %v", req.ModelID, err)
		return
	}
	h.finishDownload(conn)
}

func (h *Handler) downloadAccommodationMultimedia(c *gin.Context) {
	conn, err := streamUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpresp.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	var req downloadRequest
	if err := conn.ReadJSON(&req); err != nil {
		return
	}
	index := 0
	if req.MultimediaIndex != nil {
		index = *req.MultimediaIndex
	}

	if err := h.transfers.StreamAccommodationMultimedia(c.Request.Context(), req.ModelID, index, &wsChunkSender{conn: conn}); err != nil {
		commonlog.Warnf("stream multimedia accommodation_id=%s index=%d: %v", req.ModelID, index, err)
		return
	}
	h.finishDownload(conn)
}

func (h *Handler) finishDownload(conn *websocket.Conn) {
	if err := conn.WriteJSON(chunkMessage{Done: true}); err != nil {
		return
	}
	h.closeStream(conn)
}

func (h *Handler) closeStream(conn *websocket.Conn) {
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (h *Handler) mostBookedAccommodations(c *gin.Context) {
	items, err := h.statistics.MostBookedAccommodations(c.Request.Context())
	if err != nil {
		commonlog.Errorf("most booked accommodations: %v", err)
		c.JSON(http.StatusInternalServerError, httpresp.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"accommodations": items})
}

func (h *Handler) bestRatedAccommodations(c *gin.Context) {
	items, err := h.statistics.BestRatedAccommodations(c.Request.Context())
	if err != nil {
		commonlog.Errorf("best rated accommodations: %v", err)
		c.JSON(http.StatusInternalServerError, httpresp.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"accommodations": items})
}

func (h *Handler) mostBookedAccommodationsOfHost(c *gin.Context) {
	hostID := c.Param("id")
	items, err := h.statistics.MostBookedAccommodationsOfHost(c.Request.Context(), hostID)
	if err != nil {
		commonlog.Errorf("most booked accommodations host_id=%s: %v", hostID, err)
		c.JSON(http.StatusInternalServerError, httpresp.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"accommodations": items})
}

func (h *Handler) hostEarnings(c *gin.Context) {
	hostID := c.Param("id")
	items, err := h.statistics.Earnings(c.Request.Context(), hostID)
	if err != nil {
		commonlog.Errorf("host earnings host_id=%s: %v", hostID, err)
		c.JSON(http.StatusInternalServerError, httpresp.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"earnings": items})
}
