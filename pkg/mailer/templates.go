package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<h1>Welcome to Our Newsletter!</h1>
<p>Thank you for subscribing to our newsletter. You'll now receive updates about our courses, announcements, and educational content.</p>
<p>Best regards,<br>Your Coaching Team</p>
`))

var contactTemplate = template.Must(template.New("contact").Parse(`<h2>New Contact Form Submission</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{.Phone}}</p>
{{if .Course}}<p><strong>Course:</strong> {{.Course}}</p>
{{end}}<p><strong>Message:</strong> {{.Message}}</p>
`))

// ContactDetails is the content of an admin contact notification.
type ContactDetails struct {
	Name    string
	Email   string
	Phone   string
	Course  string
	Message string
}

// WelcomeMessage builds the newsletter welcome email.
func WelcomeMessage(to string) (Message, error) {
	return render(welcomeTemplate, to, "Welcome to Our Newsletter!", nil)
}

// ContactNotification builds the email telling admins about an enquiry.
func ContactNotification(to string, details ContactDetails) (Message, error) {
	return render(contactTemplate, to, "New Contact Form Submission", details)
}

func render(tpl *template.Template, to, subject string, data interface{}) (Message, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("render %s: %w", tpl.Name(), err)
	}
	return Message{To: []string{to}, Subject: subject, HTML: buf.String()}, nil
}
