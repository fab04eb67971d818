package smtp

import (
	"fmt"
	"time"

	"github.com/JMURv/club-auth/internal/config"
	"github.com/JMURv/club-auth/internal/dto"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type EmailServer struct {
	enabled bool
	server  string
	port    int
	user    string
	pass    string
	admin   string
}

func New(conf config.Config) *EmailServer {
	return &EmailServer{
		enabled: conf.Email.Enabled,
		server:  conf.Email.Server,
		port:    conf.Email.Port,
		user:    conf.Email.User,
		pass:    conf.Email.Pass,
		admin:   conf.Email.Admin,
	}
}

// SendLoginNotification tells the account owner about a new sign-in.
// Best effort, a failure is logged and never blocks the login.
func (s *EmailServer) SendLoginNotification(toEmail string, d *dto.DeviceRequest) error {
	if !s.enabled {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.user)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "New sign-in to your account")
	m.SetBody(
		"text/plain",
		fmt.Sprintf(
			"A new sign-in to your account was detected at %s.\n\nDevice: %s\nIP: %s\nUser-Agent: %s\n\nIf this wasn't you, revoke the session from your account settings.",
			time.Now().Format(time.RFC1123),
			d.Info,
			d.IP,
			d.UA,
		),
	)

	return s.Send(m)
}

func (s *EmailServer) Send(m *gomail.Message) error {
	d := gomail.NewDialer(s.server, s.port, s.user, s.pass)
	if err := d.DialAndSend(m); err != nil {
		zap.L().Error(
			"Failed to send an email",
			zap.Error(err),
		)
		return err
	}
	return nil
}
