package services

// Notifier delivers best-effort emails after committed transitions.
// Implementations must never panic; delivery failures are logged only.
type Notifier interface {
	SendEmail(toName, toEmail, subject, htmlContent string)
}
