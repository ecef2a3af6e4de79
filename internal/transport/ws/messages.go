package ws

import "encoding/json"

// Типы событий сигналинга
const (
	// от клиента
	TypeJoin         = "join"          // вход в сессию
	TypeOffer        = "offer"         // WebRTC offer
	TypeAnswer       = "answer"        // WebRTC answer
	TypeICECandidate = "ice-candidate" // ICE candidate
	TypeEndCall      = "end-call"      // завершение звонка

	// к клиенту
	TypePeerJoined = "peer-joined" // участник присоединился
	TypePeerLeft   = "peer-left"   // участник отключился
	TypeCallEnded  = "call-ended"  // звонок завершён другой стороной
)

// Message — конверт сигналинга. Payload (тело offer/answer/candidate)
// не разбирается сервером и ретранслируется как есть.
type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"session_id,omitempty"`
	UserID    string          `json:"user_id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}
