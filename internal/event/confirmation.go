package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/mailer"
	"github.com/google/uuid"
)

const TopicAccountConfirmation = "account.confirmation-requested"

type AccountConfirmationPayload struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
}

type ConfirmationTokenIssuer interface {
	GenerateConfirmationToken(ctx context.Context, userID uuid.UUID) (string, error)
}

// AccountConfirmationHandler issues a fresh confirmation token and mails it
// to the address the account was registered with.
func AccountConfirmationHandler(tokens ConfirmationTokenIssuer, sender mailer.Mailer) HandlerFunc {
	return func(ctx context.Context, payload []byte) error {
		var p AccountConfirmationPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return fmt.Errorf("decode confirmation payload: %w", err)
		}

		token, err := tokens.GenerateConfirmationToken(ctx, p.UserID)
		if err != nil {
			return fmt.Errorf("generate confirmation token: %w", err)
		}

		html := fmt.Sprintf(`
            <body>
                <h3>Confirmation account</h3>
                <p>This is your confirmation token
                <strong>%s</strong>
                </p>
                <p>This token expire in 15 min</p>
            </body>`, token)

		return sender.Send(ctx, mailer.Message{
			To:      p.Email,
			Subject: "Confirmation Account Micro Blog",
			HTML:    html,
		})
	}
}
