package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/smsvault/smsvault/internal/events"
	"github.com/smsvault/smsvault/internal/models"
	"github.com/smsvault/smsvault/internal/sms"
	"github.com/smsvault/smsvault/internal/stats"
)

// StatsHandler 统计信息处理器
type StatsHandler struct {
	smsRepo        *sms.Repository
	requestCounter *stats.RequestCounter
	eventService   *events.Service
}

// NewStatsHandler 创建统计处理器
func NewStatsHandler(smsRepo *sms.Repository, requestCounter *stats.RequestCounter, eventService *events.Service) *StatsHandler {
	return &StatsHandler{
		smsRepo:        smsRepo,
		requestCounter: requestCounter,
		eventService:   eventService,
	}
}

// SystemStats 系统统计信息响应
type SystemStats struct {
	Messages     MessageStats `json:"messages"`
	Requests     RequestStats `json:"requests"`
	RecentEvents []Event      `json:"recent_events"`
}

// MessageStats 短信统计
type MessageStats struct {
	Total int64 `json:"total"`
}

// RequestStats 请求统计
type RequestStats struct {
	Total      int64   `json:"total"`
	CurrentQPS float64 `json:"current_qps"`
}

// Event 事件日志
type Event struct {
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Level     string `json:"level"`
	Message   string `json:"message"`
}

// GetStats 获取系统统计信息
// GET /api/stats
func (h *StatsHandler) GetStats(c *gin.Context) {
	total, err := h.smsRepo.Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to collect stats",
			},
		})
		return
	}

	requestStats := h.requestCounter.GetStats()

	// 最近事件（最多 10 条），失败时退化为空列表
	recentEventsData, err := h.eventService.GetRecentEvents(10)
	recentEvents := make([]Event, 0, len(recentEventsData))
	if err == nil {
		for _, evt := range recentEventsData {
			recentEvents = append(recentEvents, Event{
				Timestamp: evt.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
				Type:      evt.Type,
				Level:     evt.Level,
				Message:   evt.Message,
			})
		}
	}

	c.JSON(http.StatusOK, SystemStats{
		Messages: MessageStats{Total: total},
		Requests: RequestStats{
			Total:      requestStats.Total,
			CurrentQPS: requestStats.CurrentQPS,
		},
		RecentEvents: recentEvents,
	})
}

// ListEvents 查询系统事件
// GET /api/events?type=&limit=50
func (h *StatsHandler) ListEvents(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	eventType := c.Query("type")

	var data []models.SystemEvent
	if eventType != "" {
		data, err = h.eventService.GetEventsByType(eventType, limit)
	} else {
		data, err = h.eventService.GetRecentEvents(limit)
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to query events",
			},
		})
		return
	}

	list := make([]Event, 0, len(data))
	for _, evt := range data {
		list = append(list, Event{
			Timestamp: evt.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			Type:      evt.Type,
			Level:     evt.Level,
			Message:   evt.Message,
		})
	}

	c.JSON(http.StatusOK, gin.H{"events": list})
}
