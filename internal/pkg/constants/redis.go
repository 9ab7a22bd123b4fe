package constants

// Redis key formats
const (
	// Payments service
	KeyWebhookDelivery = "payments:webhook:%s" // Format: payments:webhook:{delivery_key}

	// Rate Limiting
	KeyUserRateLimit = "rate:user" // Prefix, full key: rate:user:{path}:{user_id}
)
