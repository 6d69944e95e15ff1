package ws

import "strconv"

// Event type tags carried in the outbound frame envelope.
const (
	EventChatMessage         = "chat_message"
	EventCardStatusUpdate    = "card_status_update"
	EventLatestMessageUpdate = "latest_message_update"
)

// BoardGroup returns the broadcast group name for a board's chat and
// card status events.
func BoardGroup(boardID int64) string {
	return "board_" + strconv.FormatInt(boardID, 10)
}

// UserInboxGroup returns the broadcast group name for a user's private
// event inbox.
func UserInboxGroup(userID int64) string {
	return "user_" + strconv.FormatInt(userID, 10) + "_latest_messages"
}
