package email

import (
	"log"

	"courseapp/internal/platform/config"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

type SendgridService struct {
	client *sendgrid.Client
	from   *sgmail.Email
}

func NewSendgridService() *SendgridService {
	return &SendgridService{
		client: sendgrid.NewSendClient(config.AppConfig.SendgridAPIKey),
		from:   sgmail.NewEmail(config.AppConfig.EmailFromName, config.AppConfig.EmailFromAddr),
	}
}

// Send delivers asynchronously; a delivery failure is logged, never surfaced
// to the request that triggered it.
func (s *SendgridService) Send(toName, toAddr, subject, body string) {
	message := sgmail.NewSingleEmail(s.from, subject, sgmail.NewEmail(toName, toAddr), body, "")
	go func() {
		if _, err := s.client.Send(message); err != nil {
			log.Printf("ERROR: sendgrid delivery to %s failed: %v", toAddr, err)
		}
	}()
}
