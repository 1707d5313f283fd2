package email

import (
	"log"
)

// ConsoleService logs mail instead of sending it. Used when no SendGrid key
// is configured (local development, tests).
type ConsoleService struct{}

func NewConsoleService() *ConsoleService {
	return &ConsoleService{}
}

func (s *ConsoleService) Send(toName, toAddr, subject, body string) {
	log.Printf("email to %s <%s>: %s\n%s", toName, toAddr, subject, body)
}
