package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"wardwatch-be/models"

	"gopkg.in/gomail.v2"
)

// DefaultDispatchTimeout bounds the SMTP round trip. Expiry counts as a
// dispatch failure.
const DefaultDispatchTimeout = 15 * time.Second

// EmailDispatcher sends ward-assignment notifications to the responsible
// officer over SMTP. It fails closed: configuration or transport problems are
// logged and reported as "not sent", never raised past this boundary.
type EmailDispatcher struct {
	Sender   string
	Password string
	Host     string
	Port     int
	Timeout  time.Duration
}

// NewEmailDispatcherFromEnv reads EMAIL_SENDER, EMAIL_PASSWORD, SMTP_SERVER
// (default smtp.gmail.com) and SMTP_PORT (default 587).
func NewEmailDispatcherFromEnv() *EmailDispatcher {
	host := os.Getenv("SMTP_SERVER")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}
	return &EmailDispatcher{
		Sender:   os.Getenv("EMAIL_SENDER"),
		Password: os.Getenv("EMAIL_PASSWORD"),
		Host:     host,
		Port:     port,
		Timeout:  DefaultDispatchTimeout,
	}
}

// Notify sends one email describing the issue to the ward officer. Returns
// true only if the transport accepted the message within the timeout.
func (d *EmailDispatcher) Notify(ctx context.Context, officerEmail string, issue *models.Issue, ward *models.Ward) bool {
	if d.Sender == "" || d.Password == "" {
		log.Println("email credentials not configured, skipping notification")
		return false
	}

	m := gomail.NewMessage()
	m.SetHeader("From", d.Sender)
	m.SetHeader("To", officerEmail)
	m.SetHeader("Subject", fmt.Sprintf("New Issue Reported in %s - %s", ward.Name, issue.Category))
	m.SetBody("text/html", d.buildBody(issue, ward))

	dialer := gomail.NewDialer(d.Host, d.Port, d.Sender, d.Password)

	timeout := d.Timeout
	if timeout <= 0 {
		timeout = DefaultDispatchTimeout
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- dialer.DialAndSend(m)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Printf("failed to send email to %s: %v", officerEmail, err)
			return false
		}
	case <-time.After(timeout):
		log.Printf("email dispatch to %s timed out after %v", officerEmail, timeout)
		return false
	case <-ctx.Done():
		log.Printf("email dispatch to %s canceled: %v", officerEmail, ctx.Err())
		return false
	}

	log.Printf("email notification sent to %s", officerEmail)
	return true
}

func (d *EmailDispatcher) buildBody(issue *models.Issue, ward *models.Ward) string {
	lat, lon := "N/A", "N/A"
	if issue.Latitude != nil {
		lat = fmt.Sprintf("%v", *issue.Latitude)
	}
	if issue.Longitude != nil {
		lon = fmt.Sprintf("%v", *issue.Longitude)
	}

	description := issue.Description
	if description == "" {
		description = "No description provided"
	}

	return fmt.Sprintf(`
	<html>
	<body>
		<h2>New Issue Reported in Your Ward</h2>
		<p><strong>Ward:</strong> %s (ID: %s)</p>
		<p><strong>Category:</strong> %s</p>
		<p><strong>Description:</strong> %s</p>
		<p><strong>Location:</strong> %s, %s</p>
		<p><strong>Reported on:</strong> %s</p>
		<p><strong>Issue ID:</strong> %s</p>
		<p>Please check the admin dashboard for more details.</p>
	</body>
	</html>
	`, ward.Name, ward.ID, issue.Category, description, lat, lon,
		issue.CreatedAt.Format("2006-01-02 15:04:05"), issue.ID)
}
