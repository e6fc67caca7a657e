package discord

import "time"

const (
	webhookURLTemplate = "https://discord.com/api/webhooks/%s/%s"

	ColorGreen  = 3066993
	ColorYellow = 16776960
	ColorRed    = 15158332

	ColorSuccess = ColorGreen
	ColorWarning = ColorYellow
	ColorError   = ColorRed

	MaxMessageLength = 2000
	MaxEmbedLength   = 6000

	MaxTitleLen       = 256
	MaxDescriptionLen = 4096
)

const (
	DefaultTimeout    = 30 * time.Second
	DefaultRetryCount = 3
	DefaultRetryDelay = 1 * time.Second
)

const (
	DefaultUsername = "StockWatch Bot"
	UserAgent       = "StockWatch-Bot/1.0"
)
