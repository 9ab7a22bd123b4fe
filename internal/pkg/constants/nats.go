package constants

// NATS Subjects
const (
	// Payments service
	SubjectPaymentReconciled = "payments.reconciled"
)

// NSQ topics and channels
const (
	TopicPaymentNotifications = "payments.notifications"
	ChannelMailer             = "mailer"
)
