package server

import (
	"net/http"

	"MoodSync/core/auth"
	"MoodSync/logger"
	"MoodSync/service"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// emotionFrame is one detected-emotion message sent by the client over the
// websocket.
type emotionFrame struct {
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

// emotionReply acknowledges a recorded frame and carries the refreshed
// recommendation list for the detected mood.
type emotionReply struct {
	SessionID       string                    `json:"sessionId"`
	Mood            string                    `json:"mood"`
	Recommendations []*service.Recommendation `json:"recommendations"`
}

type wsEmotionError struct {
	Error string `json:"error"`
}

// WSEmotionHandler streams live emotion detections. Browsers cannot set an
// Authorization header on websocket upgrades, so the token arrives as a
// query parameter. Every frame is persisted to the user's emotion history
// and answered with recommendations for the detected mood.
type WSEmotionHandler struct {
	emotions        *service.EmotionService
	recommendations *service.RecommendationService
}

// NewWSEmotionHandler creates the websocket emotion handler.
func NewWSEmotionHandler(emotions *service.EmotionService, recommendations *service.RecommendationService) *WSEmotionHandler {
	return &WSEmotionHandler{emotions: emotions, recommendations: recommendations}
}

func (h *WSEmotionHandler) StreamHandler(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusUnauthorized, "token query parameter is required")
		return
	}
	claims, err := auth.ParseToken(token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", logger.ErrorField(err))
		return
	}
	defer conn.Close()

	sessionID := uuid.NewString()
	logger.Info("emotion stream opened",
		logger.Int64("userId", claims.UserID),
		logger.String("sessionId", sessionID))

	for {
		var frame emotionFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("emotion stream read failed", logger.ErrorField(err))
			}
			break
		}

		source := frame.Source
		if source == "" {
			source = "websocket"
		}
		record, err := h.emotions.Record(r.Context(), claims.UserID, service.RecordEmotionInput{
			Emotion:    frame.Emotion,
			Confidence: frame.Confidence,
			Source:     source,
			SessionID:  sessionID,
		})
		if err != nil {
			if writeErr := conn.WriteJSON(wsEmotionError{Error: err.Error()}); writeErr != nil {
				break
			}
			continue
		}

		recs, err := h.recommendations.ForMood(r.Context(), &claims.UserID, record.Emotion, service.DefaultPageSize)
		if err != nil {
			logger.Error("recommendation lookup failed",
				logger.String("mood", record.Emotion),
				logger.ErrorField(err))
			recs = nil
		}

		if err := conn.WriteJSON(emotionReply{
			SessionID:       sessionID,
			Mood:            record.Emotion,
			Recommendations: recs,
		}); err != nil {
			break
		}
	}

	logger.Info("emotion stream closed",
		logger.Int64("userId", claims.UserID),
		logger.String("sessionId", sessionID))
}
