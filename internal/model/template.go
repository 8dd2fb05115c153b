package model

// EmailTemplate is the editable invoice email template. Subject and body may
// contain {{placeholder}} markers that are substituted at send time.
type EmailTemplate struct {
	Subject string `json:"subject" yaml:"subject"`
	Body    string `json:"body" yaml:"body"`
}
