package bus

const (
	// TopicServerStatus carries ServerStatus payloads on scheduler transitions.
	TopicServerStatus = "server_status"
	// TopicMarketStatus carries session open/close metadata.
	TopicMarketStatus = "market-status"

	stockUpdatePrefix = "stock-update-"
	userAlertPrefix   = "alert-"
)

// TopicStockUpdate is the per-symbol tick broadcast topic.
func TopicStockUpdate(symbol string) string {
	return stockUpdatePrefix + symbol
}

// TopicUserAlert is the per-user alert push topic.
func TopicUserAlert(userID string) string {
	return userAlertPrefix + userID
}
