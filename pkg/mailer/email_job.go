package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Messages are fully rendered at enqueue time; the worker only transports
// them.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html,omitempty"`
}
